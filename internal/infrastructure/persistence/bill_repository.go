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

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// FindByID finds a bill by its ID, items included
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
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

// FindByIDForTenant finds a bill by ID within a tenant
func (r *GormBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
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

// FindByNumber finds a bill by bill number for a tenant
func (r *GormBillRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND bill_number = ?", tenantID, billNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all bills for a tenant with filtering
func (r *GormBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	var billModels []models.BillModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.BillModel{}).
			Preload("Items").
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&billModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(billModels), nil
}

// FindByVendor finds bills of a vendor within a tenant
func (r *GormBillRepository) FindByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	var billModels []models.BillModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.BillModel{}).
			Preload("Items").
			Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID),
		filter,
	)

	if err := query.Find(&billModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(billModels), nil
}

// Save creates or updates a bill with its items
func (r *GormBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		return r.saveItems(tx, model)
	})
	if err != nil {
		return err
	}
	bill.MarkPersisted()
	return nil
}

// SaveWithLock saves a bill using optimistic locking on its version. The
// row must still hold the version the bill was loaded with for the update
// to apply, regardless of how many mutations happened in memory since.
func (r *GormBillRepository) SaveWithLock(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.BillModel{}).
			Where("id = ? AND version = ?", bill.ID, bill.PersistedVersion()).
			Updates(map[string]interface{}{
				"vendor_id":       model.VendorID,
				"bill_number":     model.BillNumber,
				"bill_date":       model.BillDate,
				"type":            model.Type,
				"status":          model.Status,
				"amount_subtotal": model.AmountSubtotal,
				"amount_tax":      model.AmountTax,
				"amount_total":    model.AmountTotal,
				"is_authorized":   model.IsAuthorized,
				"authorized_by":   model.AuthorizedBy,
				"authorized_at":   model.AuthorizedAt,
				"ocr_text":        model.OCRText,
				"image_path":      model.ImagePath,
				"delivery_date":   model.DeliveryDate,
				"billed_to_name":  model.BilledToName,
				"shipped_to_name": model.ShippedToName,
				"version":         model.Version,
				"updated_at":      time.Now(),
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
	bill.MarkPersisted()
	return nil
}

// saveItems replaces the bill's item rows with the current item list
func (r *GormBillRepository) saveItems(tx *gorm.DB, model *models.BillModel) error {
	currentItemIDs := make([]uuid.UUID, len(model.Items))
	for i, item := range model.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("bill_id = ? AND id NOT IN ?", model.ID, currentItemIDs).
			Delete(&models.BillItemModel{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("bill_id = ?", model.ID).
			Delete(&models.BillItemModel{}).Error; err != nil {
			return err
		}
	}

	for i := range model.Items {
		model.Items[i].BillID = model.ID
		if err := tx.Save(&model.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete hard-deletes a bill and its items. Credit entries referencing the
// bill keep their history with the reference nulled.
func (r *GormBillRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CreditEntryModel{}).
			Where("tenant_id = ? AND bill_id = ?", tenantID, id).
			Update("bill_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("bill_id = ?", id).Delete(&models.BillItemModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.BillModel{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountForTenant counts bills for a tenant with optional filters
func (r *GormBillRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.BillModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumConfirmedByVendor sums amount_total of confirmed bills of a vendor
// with bill_date up to asOf
func (r *GormBillRepository) SumConfirmedByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, asOf *time.Time) (valueobject.Money, error) {
	query := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("tenant_id = ? AND vendor_id = ? AND status = ?", tenantID, vendorID, billing.BillStatusConfirmed)
	if asOf != nil {
		query = query.Where("bill_date <= ?", *asOf)
	}

	var total decimal.Decimal
	if err := query.
		Select("COALESCE(SUM(amount_total), 0)").
		Scan(&total).Error; err != nil {
		return valueobject.ZeroINR(), err
	}
	return valueobject.NewMoneyINR(total), nil
}

// ExistsByNumber checks if a bill number exists for a tenant
func (r *GormBillRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("tenant_id = ? AND bill_number = ?", tenantID, billNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByVendor checks whether any bill references the vendor
func (r *GormBillRepository) ExistsByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("tenant_id = ? AND vendor_id = ?", tenantID, vendorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateBillNumber generates a unique bill number for a tenant.
// Format: BILL-YYYYMMDD-NNNNN (e.g. BILL-20260115-00001)
func (r *GormBillRepository) GenerateBillNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	prefix := fmt.Sprintf("BILL-%s-", time.Now().Format("20060102"))
	return r.nextSequentialNumber(ctx, tenantID, prefix)
}

func (r *GormBillRepository) nextSequentialNumber(ctx context.Context, tenantID uuid.UUID, prefix string) (string, error) {
	var lastModel models.BillModel
	err := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("tenant_id = ? AND bill_number LIKE ?", tenantID, prefix+"%").
		Order("bill_number DESC").
		First(&lastModel).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastModel.BillNumber != "" {
		parts := strings.Split(lastModel.BillNumber, "-")
		if len(parts) == 3 {
			var num int64
			_, parseErr := fmt.Sscanf(parts[2], "%d", &num)
			if parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	billNumber := fmt.Sprintf("%s%05d", prefix, nextNum)

	exists, err := r.ExistsByNumber(ctx, tenantID, billNumber)
	if err != nil {
		return "", err
	}
	if exists {
		for i := 0; i < 100; i++ {
			nextNum++
			billNumber = fmt.Sprintf("%s%05d", prefix, nextNum)
			exists, err = r.ExistsByNumber(ctx, tenantID, billNumber)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
		}
	}

	return billNumber, nil
}

func (r *GormBillRepository) toDomainSlice(billModels []models.BillModel) []billing.Bill {
	bills := make([]billing.Bill, len(billModels))
	for i, model := range billModels {
		bills[i] = *model.ToDomain()
	}
	return bills
}

// applyFilter applies filter options to the query
func (r *GormBillRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	orderBy := ValidateSortField(filter.OrderBy, BillSortFields, "bill_date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormBillRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("bill_number ILIKE ? OR billed_to_name ILIKE ?",
			searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "bill_type":
			query = query.Where("type = ?", value)
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("bill_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("bill_date <= ?", t)
			}
		}
	}

	if filter.DateFrom != nil {
		query = query.Where("bill_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("bill_date <= ?", *filter.DateTo)
	}

	return query
}

// Ensure GormBillRepository implements BillRepository
var _ billing.BillRepository = (*GormBillRepository)(nil)
