package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/billcore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProxyBillRepository implements ProxyBillRepository using GORM
type GormProxyBillRepository struct {
	db *gorm.DB
}

// NewGormProxyBillRepository creates a new GormProxyBillRepository
func NewGormProxyBillRepository(db *gorm.DB) *GormProxyBillRepository {
	return &GormProxyBillRepository{db: db}
}

// FindByID finds a proxy bill by its ID, items included
func (r *GormProxyBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.ProxyBill, error) {
	var model models.ProxyBillModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a proxy bill by ID within a tenant
func (r *GormProxyBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.ProxyBill, error) {
	var model models.ProxyBillModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByParent finds all proxy bills derived from a parent bill in insertion order
func (r *GormProxyBillRepository) FindByParent(ctx context.Context, tenantID, parentBillID uuid.UUID) ([]billing.ProxyBill, error) {
	var proxyModels []models.ProxyBillModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND parent_bill_id = ?", tenantID, parentBillID).
		Order("created_at ASC").
		Find(&proxyModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(proxyModels), nil
}

// FindAllForTenant finds all proxy bills for a tenant with filtering
func (r *GormProxyBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.ProxyBill, error) {
	var proxyModels []models.ProxyBillModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ProxyBillModel{}).
			Preload("Items").
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&proxyModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(proxyModels), nil
}

// Save creates or updates a proxy bill with its items
func (r *GormProxyBillRepository) Save(ctx context.Context, proxy *billing.ProxyBill) error {
	model := models.ProxyBillModelFromDomain(proxy)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		return r.saveItems(tx, model)
	})
	if err != nil {
		return err
	}
	proxy.MarkPersisted()
	return nil
}

// SaveWithLock saves a proxy bill using optimistic locking on its version.
// The row must still hold the version the proxy was loaded with for the
// update to apply.
func (r *GormProxyBillRepository) SaveWithLock(ctx context.Context, proxy *billing.ProxyBill) error {
	model := models.ProxyBillModelFromDomain(proxy)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ProxyBillModel{}).
			Where("id = ? AND version = ?", proxy.ID, proxy.PersistedVersion()).
			Updates(map[string]interface{}{
				"parent_bill_id": model.ParentBillID,
				"vendor_id":      model.VendorID,
				"proxy_number":   model.ProxyNumber,
				"status":         model.Status,
				"amount_total":   model.AmountTotal,
				"version":        model.Version,
				"updated_at":     time.Now(),
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return r.saveItems(tx, model)
	})
	if err != nil {
		return err
	}
	proxy.MarkPersisted()
	return nil
}

// saveItems replaces the proxy bill's item rows with the current item list
func (r *GormProxyBillRepository) saveItems(tx *gorm.DB, model *models.ProxyBillModel) error {
	currentItemIDs := make([]uuid.UUID, len(model.Items))
	for i, item := range model.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("proxy_bill_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
			Delete(&models.ProxyBillItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("proxy_bill_id = ?", model.ID).
			Delete(&models.ProxyBillItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range model.Items {
		model.Items[i].ProxyBillID = model.ID
		if err := tx.Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// SumActiveByParent sums amount_total of non-cancelled proxy bills of a parent bill
func (r *GormProxyBillRepository) SumActiveByParent(ctx context.Context, tenantID, parentBillID uuid.UUID) (valueobject.Money, error) {
	var total decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.ProxyBillModel{}).
		Where("tenant_id = ? AND parent_bill_id = ? AND status <> ?",
			tenantID, parentBillID, billing.BillStatusCancelled).
		Select("COALESCE(SUM(amount_total), 0)").
		Scan(&total).Error; err != nil {
		return valueobject.ZeroINR(), err
	}
	return valueobject.NewMoneyINR(total), nil
}

// SumActiveByVendor sums amount_total of non-cancelled proxy bills of a
// vendor whose parent bill is confirmed, with parent bill_date up to asOf
func (r *GormProxyBillRepository) SumActiveByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, asOf *time.Time) (valueobject.Money, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ProxyBillModel{}).
		Joins("JOIN bills ON bills.id = proxy_bills.parent_bill_id").
		Where("proxy_bills.tenant_id = ? AND proxy_bills.vendor_id = ? AND proxy_bills.status <> ?",
			tenantID, vendorID, billing.BillStatusCancelled).
		Where("bills.status = ?", billing.BillStatusConfirmed)
	if asOf != nil {
		query = query.Where("bills.bill_date <= ?", *asOf)
	}

	var total decimal.Decimal
	if err := query.
		Select("COALESCE(SUM(proxy_bills.amount_total), 0)").
		Scan(&total).Error; err != nil {
		return valueobject.ZeroINR(), err
	}
	return valueobject.NewMoneyINR(total), nil
}

// SumActiveForParentVendor sums amount_total of non-cancelled proxy bills
// whose confirmed parent bill belongs to the given vendor, with parent
// bill_date up to asOf
func (r *GormProxyBillRepository) SumActiveForParentVendor(ctx context.Context, tenantID, parentVendorID uuid.UUID, asOf *time.Time) (valueobject.Money, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ProxyBillModel{}).
		Joins("JOIN bills ON bills.id = proxy_bills.parent_bill_id").
		Where("proxy_bills.tenant_id = ? AND proxy_bills.status <> ?",
			tenantID, billing.BillStatusCancelled).
		Where("bills.vendor_id = ? AND bills.status = ?", parentVendorID, billing.BillStatusConfirmed)
	if asOf != nil {
		query = query.Where("bills.bill_date <= ?", *asOf)
	}

	var total decimal.Decimal
	if err := query.
		Select("COALESCE(SUM(proxy_bills.amount_total), 0)").
		Scan(&total).Error; err != nil {
		return valueobject.ZeroINR(), err
	}
	return valueobject.NewMoneyINR(total), nil
}

// ExistsActiveByParent checks whether any non-cancelled proxy bill references the parent bill
func (r *GormProxyBillRepository) ExistsActiveByParent(ctx context.Context, tenantID, parentBillID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProxyBillModel{}).
		Where("tenant_id = ? AND parent_bill_id = ? AND status <> ?",
			tenantID, parentBillID, billing.BillStatusCancelled).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByVendor checks whether any proxy bill references the vendor
func (r *GormProxyBillRepository) ExistsByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProxyBillModel{}).
		Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByNumber checks if a proxy number exists for a tenant
func (r *GormProxyBillRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, proxyNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProxyBillModel{}).
		Where("tenant_id = ? AND proxy_number = ?", tenantID, proxyNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateProxyNumber generates a unique proxy number for a tenant.
// Format: PRX-YYYYMMDD-NNNNN (e.g. PRX-20260115-00001)
func (r *GormProxyBillRepository) GenerateProxyNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	prefix := fmt.Sprintf("PRX-%s-", time.Now().Format("20060102"))

	var lastModel models.ProxyBillModel
	err := r.db.WithContext(ctx).
		Model(&models.ProxyBillModel{}).
		Where("tenant_id = ? AND proxy_number LIKE ?", tenantID, prefix+"%").
		Order("proxy_number DESC").
		First(&lastModel).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastModel.ProxyNumber != "" {
		parts := strings.Split(lastModel.ProxyNumber, "-")
		if len(parts) == 3 {
			var num int64
			_, parseErr := fmt.Sscanf(parts[2], "%d", &num)
			if parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	proxyNumber := fmt.Sprintf("%s%05d", prefix, nextNum)

	exists, err := r.ExistsByNumber(ctx, tenantID, proxyNumber)
	if err != nil {
		return "", err
	}
	if exists {
		for i := 0; i < 100; i++ {
			nextNum++
			proxyNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
			exists, err = r.ExistsByNumber(ctx, tenantID, proxyNumber)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
		}
	}

	return proxyNumber, nil
}

func (r *GormProxyBillRepository) toDomainSlice(proxyModels []models.ProxyBillModel) []billing.ProxyBill {
	proxies := make([]billing.ProxyBill, len(proxyModels))
	for i, model := range proxyModels {
		proxies[i] = *model.ToDomain()
	}
	return proxies
}

// applyFilter applies filter options to the query
func (r *GormProxyBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	orderBy := ValidateSortField(filter.OrderBy, ProxyBillSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProxyBillRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("proxy_number ILIKE ?", searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		case "parent_bill_id":
			query = query.Where("parent_bill_id = ?", value)
		}
	}

	return query
}

// Ensure GormProxyBillRepository implements ProxyBillRepository
var _ billing.ProxyBillRepository = (*GormProxyBillRepository)(nil)
