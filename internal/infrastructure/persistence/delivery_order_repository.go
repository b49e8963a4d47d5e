package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/billcore/backend/internal/domain/delivery"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryOrderRepository implements DeliveryOrderRepository using GORM
type GormDeliveryOrderRepository struct {
	db *gorm.DB
}

// NewGormDeliveryOrderRepository creates a new GormDeliveryOrderRepository
func NewGormDeliveryOrderRepository(db *gorm.DB) *GormDeliveryOrderRepository {
	return &GormDeliveryOrderRepository{db: db}
}

// FindByID finds a delivery order by its ID
func (r *GormDeliveryOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*delivery.DeliveryOrder, error) {
	var model models.DeliveryOrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a delivery order by ID within a tenant
func (r *GormDeliveryOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*delivery.DeliveryOrder, error) {
	var model models.DeliveryOrderModel
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

// FindAllForTenant finds all delivery orders for a tenant with filtering
func (r *GormDeliveryOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]delivery.DeliveryOrder, error) {
	var orderModels []models.DeliveryOrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DeliveryOrderModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(orderModels), nil
}

// FindByBill finds delivery orders referencing a bill
func (r *GormDeliveryOrderRepository) FindByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]delivery.DeliveryOrder, error) {
	var orderModels []models.DeliveryOrderModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND bill_id = ?", tenantID, billID).
		Order("created_at ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(orderModels), nil
}

// FindByDeliveryUser finds delivery orders assigned to a delivery user
func (r *GormDeliveryOrderRepository) FindByDeliveryUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) ([]delivery.DeliveryOrder, error) {
	var orderModels []models.DeliveryOrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DeliveryOrderModel{}).
			Where("tenant_id = ? AND delivery_user_id = ?", tenantID, userID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	return r.toDomainSlice(orderModels), nil
}

// Save creates or updates a delivery order
func (r *GormDeliveryOrderRepository) Save(ctx context.Context, order *delivery.DeliveryOrder) error {
	model := models.DeliveryOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a delivery order
func (r *GormDeliveryOrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DeliveryOrderModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForTenant counts delivery orders for a tenant with optional filters
func (r *GormDeliveryOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.DeliveryOrderModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDeliveryOrderRepository) toDomainSlice(orderModels []models.DeliveryOrderModel) []delivery.DeliveryOrder {
	orders := make([]delivery.DeliveryOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders
}

// applyFilter applies filter options to the query
func (r *GormDeliveryOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	orderBy := ValidateSortField(filter.OrderBy, DeliveryOrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDeliveryOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("delivery_address ILIKE ? OR remarks ILIKE ?",
			searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "delivery_user_id":
			query = query.Where("delivery_user_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("delivery_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("delivery_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormDeliveryOrderRepository implements DeliveryOrderRepository
var _ delivery.DeliveryOrderRepository = (*GormDeliveryOrderRepository)(nil)
