package persistence

import (
	"context"
	"errors"

	"github.com/billcore/backend/internal/domain/partner"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by its ID
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a vendor by ID within a tenant
func (r *GormVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	var model models.VendorModel
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

// FindAllForTenant finds all vendors for a tenant with filtering
func (r *GormVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Vendor, error) {
	var vendorModels []models.VendorModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.VendorModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&vendorModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(vendorModels), nil
}

// FindByType finds vendors by type within a tenant
func (r *GormVendorRepository) FindByType(ctx context.Context, tenantID uuid.UUID, vendorType partner.VendorType, filter shared.Filter) ([]partner.Vendor, error) {
	var vendorModels []models.VendorModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.VendorModel{}).
			Where("tenant_id = ? AND type = ?", tenantID, vendorType),
		filter,
	)

	if err := query.Find(&vendorModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(vendorModels), nil
}

// FindActive finds active vendors within a tenant
func (r *GormVendorRepository) FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Vendor, error) {
	var vendorModels []models.VendorModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.VendorModel{}).
			Where("tenant_id = ? AND status = ?", tenantID, partner.VendorStatusActive),
		filter,
	)

	if err := query.Find(&vendorModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(vendorModels), nil
}

// Save creates or updates a vendor
func (r *GormVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	model := models.VendorModelFromDomain(vendor)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a vendor. The delete is refused while bills, proxy bills,
// or credit entries still reference the vendor.
func (r *GormVendorRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var billCount int64
		if err := tx.Model(&models.BillModel{}).
			Where("tenant_id = ? AND vendor_id = ?", tenantID, id).
			Count(&billCount).Error; err != nil {
			return err
		}
		if billCount > 0 {
			return shared.NewDomainError("CONFLICT", "Cannot delete a vendor with bills")
		}

		var proxyCount int64
		if err := tx.Model(&models.ProxyBillModel{}).
			Where("tenant_id = ? AND vendor_id = ?", tenantID, id).
			Count(&proxyCount).Error; err != nil {
			return err
		}
		if proxyCount > 0 {
			return shared.NewDomainError("CONFLICT", "Cannot delete a vendor with proxy bills")
		}

		var entryCount int64
		if err := tx.Model(&models.CreditEntryModel{}).
			Where("tenant_id = ? AND vendor_id = ?", tenantID, id).
			Count(&entryCount).Error; err != nil {
			return err
		}
		if entryCount > 0 {
			return shared.NewDomainError("CONFLICT", "Cannot delete a vendor with credit entries")
		}

		result := tx.Delete(&models.VendorModel{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountForTenant counts vendors for a tenant with optional filters
func (r *GormVendorRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.VendorModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsForTenant checks that a vendor belongs to the tenant
func (r *GormVendorRepository) ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.VendorModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormVendorRepository) toDomainSlice(vendorModels []models.VendorModel) []partner.Vendor {
	vendors := make([]partner.Vendor, len(vendorModels))
	for i, model := range vendorModels {
		vendors[i] = *model.ToDomain()
	}
	return vendors
}

// applyFilter applies filter options to the query
func (r *GormVendorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	orderBy := ValidateSortField(filter.OrderBy, VendorSortFields, "name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormVendorRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR contact_phone ILIKE ? OR gst_number ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormVendorRepository implements VendorRepository
var _ partner.VendorRepository = (*GormVendorRepository)(nil)
