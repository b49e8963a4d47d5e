package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/billcore/backend/internal/domain/credit"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/billcore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCreditEntryRepository implements CreditEntryRepository using GORM.
// The ledger is append-only: rows are only ever inserted.
type GormCreditEntryRepository struct {
	db *gorm.DB
}

// NewGormCreditEntryRepository creates a new GormCreditEntryRepository
func NewGormCreditEntryRepository(db *gorm.DB) *GormCreditEntryRepository {
	return &GormCreditEntryRepository{db: db}
}

// FindByID finds an entry by its ID
func (r *GormCreditEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*credit.CreditEntry, error) {
	var model models.CreditEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds an entry by ID within a tenant
func (r *GormCreditEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*credit.CreditEntry, error) {
	var model models.CreditEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all entries for a tenant with filtering
func (r *GormCreditEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]credit.CreditEntry, error) {
	var entryModels []models.CreditEntryModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CreditEntryModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(entryModels), nil
}

// FindByVendor finds entries of a vendor in insertion order
func (r *GormCreditEntryRepository) FindByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, filter shared.Filter) ([]credit.CreditEntry, error) {
	var entryModels []models.CreditEntryModel
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.CreditEntryModel{}).
			Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID),
		filter,
	)
	query = query.Order("created_at ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(entryModels), nil
}

// FindByBill finds entries referencing a bill
func (r *GormCreditEntryRepository) FindByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]credit.CreditEntry, error) {
	var entryModels []models.CreditEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND bill_id = ?", tenantID, billID).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(entryModels), nil
}

// FindByProxyBill finds entries referencing a proxy bill
func (r *GormCreditEntryRepository) FindByProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID) ([]credit.CreditEntry, error) {
	var entryModels []models.CreditEntryModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND proxy_bill_id = ?", tenantID, proxyBillID).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(entryModels), nil
}

// Append persists a new entry. Existing entries are never modified.
func (r *GormCreditEntryRepository) Append(ctx context.Context, entry *credit.CreditEntry) error {
	model := models.CreditEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// SumByVendor sums entry amounts of a vendor for one direction with
// payment_date up to asOf
func (r *GormCreditEntryRepository) SumByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, direction credit.Direction, asOf *time.Time) (valueobject.Money, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CreditEntryModel{}).
		Where("tenant_id = ? AND vendor_id = ? AND direction = ?", tenantID, vendorID, direction)
	if asOf != nil {
		query = query.Where("payment_date <= ?", *asOf)
	}

	var total decimal.Decimal
	if err := query.
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return valueobject.ZeroINR(), err
	}
	return valueobject.NewMoneyINR(total), nil
}

// CountForTenant counts entries for a tenant with optional filters
func (r *GormCreditEntryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CreditEntryModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByBill checks whether any entry references the bill
func (r *GormCreditEntryRepository) ExistsByBill(ctx context.Context, tenantID, billID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CreditEntryModel{}).
		Where("tenant_id = ? AND bill_id = ?", tenantID, billID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByProxyBill checks whether any entry references the proxy bill
func (r *GormCreditEntryRepository) ExistsByProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CreditEntryModel{}).
		Where("tenant_id = ? AND proxy_bill_id = ?", tenantID, proxyBillID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByVendor checks whether any entry references the vendor
func (r *GormCreditEntryRepository) ExistsByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CreditEntryModel{}).
		Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCreditEntryRepository) toDomainSlice(entryModels []models.CreditEntryModel) []credit.CreditEntry {
	entries := make([]credit.CreditEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries
}

// applyFilter applies filter options to the query
func (r *GormCreditEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	orderBy := ValidateSortField(filter.OrderBy, CreditEntrySortFields, "payment_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCreditEntryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("reference_number ILIKE ? OR notes ILIKE ?",
			searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		case "direction":
			query = query.Where("direction = ?", value)
		case "method":
			query = query.Where("method = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("payment_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("payment_date <= ?", t)
			}
		}
	}

	if filter.DateFrom != nil {
		query = query.Where("payment_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("payment_date <= ?", *filter.DateTo)
	}

	return query
}

// Ensure GormCreditEntryRepository implements CreditEntryRepository
var _ credit.CreditEntryRepository = (*GormCreditEntryRepository)(nil)
