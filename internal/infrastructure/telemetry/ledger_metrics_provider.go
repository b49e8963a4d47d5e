// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormLedgerMetricsProvider implements LedgerMetricsProvider using GORM.
// It queries the credit_entries and bills tables directly for aggregated metrics.
type GormLedgerMetricsProvider struct {
	db *gorm.DB
}

// NewGormLedgerMetricsProvider creates a new GormLedgerMetricsProvider.
func NewGormLedgerMetricsProvider(db *gorm.DB) *GormLedgerMetricsProvider {
	return &GormLedgerMetricsProvider{db: db}
}

// GetOutstandingByDirection returns the summed ledger amount in paise per
// entry direction for a tenant.
func (p *GormLedgerMetricsProvider) GetOutstandingByDirection(ctx context.Context, tenantID uuid.UUID) (map[string]int64, error) {
	type result struct {
		Direction string          `gorm:"column:direction"`
		Total     decimal.Decimal `gorm:"column:total"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("credit_entries").
		Select("direction, COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ?", tenantID).
		Group("direction").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[string]int64, len(results))
	for _, r := range results {
		m[r.Direction] = r.Total.Mul(decimal.NewFromInt(100)).IntPart()
	}

	return m, nil
}

// GetDraftBillCount returns the number of draft bills for a tenant.
func (p *GormLedgerMetricsProvider) GetDraftBillCount(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("bills").
		Where("tenant_id = ? AND status = ?", tenantID, "DRAFT").
		Count(&count).Error

	return count, err
}

// GormTenantProvider implements TenantProvider using GORM.
type GormTenantProvider struct {
	db *gorm.DB
}

// NewGormTenantProvider creates a new GormTenantProvider.
func NewGormTenantProvider(db *gorm.DB) *GormTenantProvider {
	return &GormTenantProvider{db: db}
}

// GetActiveTenantIDs returns all active tenant IDs.
func (p *GormTenantProvider) GetActiveTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := p.db.WithContext(ctx).
		Table("tenants").
		Select("id").
		Where("status = ?", "active").
		Find(&ids).Error

	return ids, err
}

// Interface assertions
var (
	_ LedgerMetricsProvider = (*GormLedgerMetricsProvider)(nil)
	_ TenantProvider        = (*GormTenantProvider)(nil)
)
