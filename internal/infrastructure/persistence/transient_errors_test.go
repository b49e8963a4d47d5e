package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestIsTransientError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"nil", nil, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"bad connection", driver.ErrBadConn, true},
		{"network timeout", &net.DNSError{IsTimeout: true}, true},
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"deadlock", &pq.Error{Code: "40P01"}, true},
		{"query canceled", &pq.Error{Code: "57014"}, true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transient, IsTransientError(tt.err))
		})
	}
}

func TestTranslateTransientError(t *testing.T) {
	t.Run("wraps retryable failures in ErrTransient", func(t *testing.T) {
		err := TranslateTransientError(&pq.Error{Code: "40001"})

		assert.ErrorIs(t, err, shared.ErrTransient)
		assert.Contains(t, err.Error(), "40001")
	})

	t.Run("leaves other errors untouched", func(t *testing.T) {
		cause := errors.New("duplicate key")
		assert.Equal(t, cause, TranslateTransientError(cause))
		assert.Nil(t, TranslateTransientError(nil))
	})
}

func TestTransientErrorPlugin(t *testing.T) {
	t.Run("queries surface driver timeouts as transient", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		dialector := postgres.New(postgres.Config{
			Conn:       mockDB,
			DriverName: "postgres",
		})
		gormDB, err := gorm.Open(dialector, &gorm.Config{
			SkipDefaultTransaction: true,
		})
		require.NoError(t, err)
		require.NoError(t, gormDB.Use(TransientErrorPlugin{}))

		mock.ExpectQuery(`SELECT \* FROM "bills"`).
			WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access"})

		var rows []map[string]interface{}
		err = gormDB.Table("bills").Find(&rows).Error

		assert.ErrorIs(t, err, shared.ErrTransient)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
