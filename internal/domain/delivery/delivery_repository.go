package delivery

import (
	"context"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryOrderRepository defines the interface for delivery order persistence
type DeliveryOrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryOrder, error)

	// FindByIDForTenant finds an order by ID scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*DeliveryOrder, error)

	// FindAllForTenant finds orders of a tenant matching the filter.
	// Recognized filter keys: status, delivery_user_id.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]DeliveryOrder, error)

	// FindByBill finds orders referencing a bill
	FindByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]DeliveryOrder, error)

	// FindByDeliveryUser finds orders assigned to a delivery user
	FindByDeliveryUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) ([]DeliveryOrder, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *DeliveryOrder) error

	// Delete deletes an order
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts orders of a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
