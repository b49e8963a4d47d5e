package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres error classes that signal a retryable condition rather than a
// caller mistake: serialization failures, deadlocks, cancelled statements
// and lost connections.
var transientPgCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"57014": true, // query_canceled
	"53300": true, // too_many_connections
	"08000": true, // connection_exception
	"08006": true, // connection_failure
}

// IsTransientError reports whether err is a temporary storage failure the
// caller may retry.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return transientPgCodes[string(pqErr.Code)]
	}
	return false
}

// TranslateTransientError wraps retryable driver failures in
// shared.ErrTransient so the HTTP layer answers 503 instead of 500. The
// original error stays in the chain.
func TranslateTransientError(err error) error {
	if err == nil || !IsTransientError(err) {
		return err
	}
	return fmt.Errorf("%w: %v", shared.ErrTransient, err)
}

// TransientErrorPlugin rewrites retryable driver failures on every GORM
// operation so repositories surface shared.ErrTransient without each call
// site classifying errors itself.
type TransientErrorPlugin struct{}

// Name returns the plugin name
func (TransientErrorPlugin) Name() string {
	return "transient_errors"
}

// Initialize registers the translation callback after every operation type
func (TransientErrorPlugin) Initialize(db *gorm.DB) error {
	translate := func(db *gorm.DB) {
		if db.Error != nil {
			db.Error = TranslateTransientError(db.Error)
		}
	}

	if err := db.Callback().Create().After("gorm:create").Register("transient:after_create", translate); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("transient:after_query", translate); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("transient:after_update", translate); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("transient:after_delete", translate); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("transient:after_row", translate); err != nil {
		return err
	}
	if err := db.Callback().Raw().After("gorm:raw").Register("transient:after_raw", translate); err != nil {
		return err
	}
	return nil
}

var _ gorm.Plugin = TransientErrorPlugin{}
