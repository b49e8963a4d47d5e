package persistence

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockBillRepository creates a GormBillRepository with a mocked SQL connection
func newMockBillRepository(t *testing.T) (*GormBillRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormBillRepository(gormDB), mock, mockDB
}

func newTestBill(t *testing.T) *billing.Bill {
	t.Helper()
	item, err := billing.NewBillItem("Steel rods", decimal.NewFromInt(10), valueobject.NewMoneyINRFromFloat(250))
	require.NoError(t, err)
	bill, err := billing.NewBill(
		uuid.New(), uuid.New(), "BILL-20260115-00001", time.Now(),
		billing.BillTypeNormal, []*billing.BillItem{item}, valueobject.ZeroINR(),
	)
	require.NoError(t, err)
	return bill
}

func TestGormBillRepository_FindByIDForTenant(t *testing.T) {
	t.Run("returns not found for unknown bill", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "bills" WHERE tenant_id = \$1 AND id = \$2 ORDER BY .* LIMIT .*`).
			WillReturnError(gorm.ErrRecordNotFound)

		bill, err := repo.FindByIDForTenant(context.Background(), uuid.New(), uuid.New())

		assert.Nil(t, bill)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillRepository_SaveWithLock(t *testing.T) {
	t.Run("returns concurrency conflict when the version moved", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepository(t)
		defer mockDB.Close()

		bill := newTestBill(t)
		require.NoError(t, bill.Authorize(uuid.New()))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "bills" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.SaveWithLock(context.Background(), bill)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("compares against the version the row was loaded with", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepository(t)
		defer mockDB.Close()

		bill := newTestBill(t)
		bill.MarkPersisted()
		loadedVersion := bill.Version

		// Several mutations between load and save bump the in-memory
		// version more than once.
		require.NoError(t, bill.AttachImage("bills/scan-001.jpg"))
		bill.SetOCRText("INVOICE 4821 TOTAL 2500.00")
		require.Equal(t, loadedVersion+2, bill.Version)

		args := make([]driver.Value, 0, 20)
		for i := 0; i < 18; i++ {
			args = append(args, sqlmock.AnyArg())
		}
		args = append(args, bill.ID, loadedVersion)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "bills" SET .* WHERE id = \$19 AND version = \$20`).
			WithArgs(args...).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "bill_items" WHERE bill_id = \$1 AND id NOT IN`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`UPDATE "bill_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveWithLock(context.Background(), bill)

		require.NoError(t, err)
		assert.Equal(t, bill.Version, bill.PersistedVersion())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates the bill and rewrites its items", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepository(t)
		defer mockDB.Close()

		bill := newTestBill(t)
		require.NoError(t, bill.Authorize(uuid.New()))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "bills" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "bill_items" WHERE bill_id = \$1 AND id NOT IN`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`UPDATE "bill_items" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveWithLock(context.Background(), bill)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillRepository_FindAllForTenant(t *testing.T) {
	t.Run("falls back to default ordering for sort fields outside the allowlist", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		filter := shared.Filter{
			OrderBy:  "(SELECT password_hash FROM users LIMIT 1)",
			OrderDir: "desc; DROP TABLE bills",
		}

		mock.ExpectQuery(`SELECT \* FROM "bills" WHERE tenant_id = \$1 ORDER BY bill_date DESC`).
			WithArgs(tenantID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		bills, err := repo.FindAllForTenant(context.Background(), tenantID, filter)

		assert.NoError(t, err)
		assert.Empty(t, bills)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bounds results by the filter date window", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
		filter := shared.Filter{DateFrom: &from, DateTo: &to}

		mock.ExpectQuery(`SELECT \* FROM "bills" WHERE tenant_id = \$1 AND bill_date >= \$2 AND bill_date <= \$3 ORDER BY bill_date DESC`).
			WithArgs(tenantID, from, to).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		bills, err := repo.FindAllForTenant(context.Background(), tenantID, filter)

		assert.NoError(t, err)
		assert.Empty(t, bills)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillRepository_SumConfirmedByVendor(t *testing.T) {
	t.Run("sums confirmed bills only", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		vendorID := uuid.New()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_total\), 0\) FROM "bills" WHERE tenant_id = \$1 AND vendor_id = \$2 AND status = \$3`).
			WithArgs(tenantID, vendorID, string(billing.BillStatusConfirmed)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(decimal.NewFromInt(12500)))

		total, err := repo.SumConfirmedByVendor(context.Background(), tenantID, vendorID, nil)

		assert.NoError(t, err)
		assert.True(t, total.Amount().Equal(decimal.NewFromInt(12500)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies the as-of cutoff on bill date", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()
		vendorID := uuid.New()
		asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_total\), 0\) FROM "bills" WHERE .* AND bill_date <= \$4`).
			WithArgs(tenantID, vendorID, string(billing.BillStatusConfirmed), asOf).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(decimal.Zero))

		total, err := repo.SumConfirmedByVendor(context.Background(), tenantID, vendorID, &asOf)

		assert.NoError(t, err)
		assert.True(t, total.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBillRepository_ExistsByNumber(t *testing.T) {
	t.Run("returns true for a taken number", func(t *testing.T) {
		repo, mock, mockDB := newMockBillRepository(t)
		defer mockDB.Close()

		tenantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "bills" WHERE tenant_id = \$1 AND bill_number = \$2`).
			WithArgs(tenantID, "BILL-20260115-00001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByNumber(context.Background(), tenantID, "BILL-20260115-00001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
