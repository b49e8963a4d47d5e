// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics provides business metrics for the billing system.
// It tracks bill creation, credit ledger activity, and outstanding balances.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	billCreatedTotal  *Counter
	billAmountTotal   *Counter
	proxyCreatedTotal *Counter
	creditEntryTotal  *Counter

	// Gauge metrics (point-in-time values)
	outstandingBalance *Gauge
	draftBillCount     *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	ledgerProvider LedgerMetricsProvider
}

// LedgerMetricsProvider provides ledger data for periodic metrics collection.
// This interface allows the telemetry layer to query ledger state without
// depending on the billing domain directly.
type LedgerMetricsProvider interface {
	// GetOutstandingByDirection returns the summed ledger amount in paise
	// per entry direction (INCOMING/OUTGOING) for a tenant
	GetOutstandingByDirection(ctx context.Context, tenantID uuid.UUID) (map[string]int64, error)

	// GetDraftBillCount returns the number of draft bills for a tenant
	GetDraftBillCount(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	LedgerProvider  LedgerMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:          cfg.Meter,
		logger:         logger,
		stopChan:       make(chan struct{}),
		ledgerProvider: cfg.LedgerProvider,
	}

	// Initialize counter metrics
	var err error

	// Bill metrics
	bm.billCreatedTotal, err = NewCounter(
		cfg.Meter,
		"billing_bill_created_total",
		"Total number of bills created",
		"{bills}",
	)
	if err != nil {
		return nil, err
	}

	bm.billAmountTotal, err = NewCounter(
		cfg.Meter,
		"billing_bill_amount_total",
		"Total bill amount in paise",
		"{paise}",
	)
	if err != nil {
		return nil, err
	}

	bm.proxyCreatedTotal, err = NewCounter(
		cfg.Meter,
		"billing_proxy_bill_created_total",
		"Total number of proxy bills created",
		"{proxy_bills}",
	)
	if err != nil {
		return nil, err
	}

	// Ledger metrics
	bm.creditEntryTotal, err = NewCounter(
		cfg.Meter,
		"billing_credit_entry_total",
		"Total number of credit ledger entries appended",
		"{entries}",
	)
	if err != nil {
		return nil, err
	}

	// Gauge metrics
	bm.outstandingBalance, err = NewGauge(
		cfg.Meter,
		"billing_ledger_outstanding_paise",
		"Summed ledger amount by direction in paise",
		"{paise}",
	)
	if err != nil {
		return nil, err
	}

	bm.draftBillCount, err = NewGauge(
		cfg.Meter,
		"billing_bill_draft_count",
		"Number of bills still in draft",
		"{bills}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Bill Metrics
// =============================================================================

// RecordBillCreated records a bill creation event.
// This should be called from the application layer when a bill is created.
func (bm *BusinessMetrics) RecordBillCreated(ctx context.Context, tenantID uuid.UUID, billType string) {
	bm.billCreatedTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrBillType.String(billType),
	)
}

// RecordBillAmount records the bill amount.
// Amount should be in the smallest currency unit (paise).
func (bm *BusinessMetrics) RecordBillAmount(ctx context.Context, tenantID uuid.UUID, billType string, amountPaise int64) {
	bm.billAmountTotal.Add(ctx, amountPaise,
		AttrTenantID.String(tenantID.String()),
		AttrBillType.String(billType),
	)
}

// RecordBillWithAmount is a convenience method that records both bill count and amount.
func (bm *BusinessMetrics) RecordBillWithAmount(ctx context.Context, tenantID uuid.UUID, billType string, amount decimal.Decimal) {
	bm.RecordBillCreated(ctx, tenantID, billType)

	// Convert to paise (multiply by 100)
	amountPaise := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordBillAmount(ctx, tenantID, billType, amountPaise)
}

// RecordProxyBillCreated records a proxy bill split event.
func (bm *BusinessMetrics) RecordProxyBillCreated(ctx context.Context, tenantID uuid.UUID) {
	bm.proxyCreatedTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
	)
}

// =============================================================================
// Ledger Metrics
// =============================================================================

// RecordCreditEntry records an appended credit ledger entry.
// This should be called when a payment or credit is recorded.
func (bm *BusinessMetrics) RecordCreditEntry(ctx context.Context, tenantID uuid.UUID, direction, method string) {
	bm.creditEntryTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrDirection.String(direction),
		AttrPaymentMethod.String(method),
	)
}

// RecordOutstandingBalance records the summed ledger amount for a direction.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordOutstandingBalance(ctx context.Context, tenantID uuid.UUID, direction string, amountPaise int64) {
	bm.outstandingBalance.Record(ctx, amountPaise,
		AttrTenantID.String(tenantID.String()),
		AttrDirection.String(direction),
	)
}

// RecordDraftBillCount records the number of bills still in draft.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordDraftBillCount(ctx context.Context, tenantID uuid.UUID, count int64) {
	bm.draftBillCount.Record(ctx, count,
		AttrTenantID.String(tenantID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// TenantProvider provides tenant IDs for periodic metrics collection.
type TenantProvider interface {
	GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects ledger metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, tenantProvider, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, tenantProvider TenantProvider, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectLedgerMetrics(ctx, tenantProvider)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectLedgerMetrics(ctx, tenantProvider)
		}
	}
}

// collectLedgerMetrics collects ledger gauge metrics for all tenants.
func (bm *BusinessMetrics) collectLedgerMetrics(ctx context.Context, tenantProvider TenantProvider) {
	if bm.ledgerProvider == nil {
		bm.logger.Debug("No ledger provider configured, skipping ledger metrics collection")
		return
	}

	tenantIDs, err := tenantProvider.GetActiveTenantIDs(ctx)
	if err != nil {
		bm.logger.Error("Failed to get tenant IDs for metrics collection", zap.Error(err))
		return
	}

	for _, tenantID := range tenantIDs {
		bm.collectTenantLedgerMetrics(ctx, tenantID)
	}
}

// collectTenantLedgerMetrics collects ledger metrics for a single tenant.
func (bm *BusinessMetrics) collectTenantLedgerMetrics(ctx context.Context, tenantID uuid.UUID) {
	// Collect outstanding balance by direction
	byDirection, err := bm.ledgerProvider.GetOutstandingByDirection(ctx, tenantID)
	if err != nil {
		bm.logger.Warn("Failed to get outstanding balance for tenant",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	} else {
		for direction, amountPaise := range byDirection {
			bm.RecordOutstandingBalance(ctx, tenantID, direction, amountPaise)
		}
	}

	// Collect draft bill count
	draftCount, err := bm.ledgerProvider.GetDraftBillCount(ctx, tenantID)
	if err != nil {
		bm.logger.Warn("Failed to get draft bill count for tenant",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	} else {
		bm.RecordDraftBillCount(ctx, tenantID, draftCount)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
