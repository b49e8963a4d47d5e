package delivery

import (
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const AggregateTypeDeliveryOrder = "DeliveryOrder"

const (
	EventTypeDeliveryOrderCreated   = "DeliveryOrderCreated"
	EventTypeDeliveryOrderDelivered = "DeliveryOrderDelivered"
	EventTypeDeliveryOrderCancelled = "DeliveryOrderCancelled"
)

// DeliveryOrderCreatedEvent is published when a delivery order is created
type DeliveryOrderCreatedEvent struct {
	shared.BaseDomainEvent
	DeliveryUserID uuid.UUID  `json:"delivery_user_id"`
	BillID         *uuid.UUID `json:"bill_id,omitempty"`
	ProxyBillID    *uuid.UUID `json:"proxy_bill_id,omitempty"`
}

// NewDeliveryOrderCreatedEvent creates a new DeliveryOrderCreatedEvent
func NewDeliveryOrderCreatedEvent(order *DeliveryOrder) *DeliveryOrderCreatedEvent {
	return &DeliveryOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryOrderCreated, AggregateTypeDeliveryOrder, order.ID, order.TenantID),
		DeliveryUserID:  order.DeliveryUserID,
		BillID:          order.BillID,
		ProxyBillID:     order.ProxyBillID,
	}
}

// DeliveryOrderDeliveredEvent is published when an order is marked delivered
type DeliveryOrderDeliveredEvent struct {
	shared.BaseDomainEvent
	DeliveryUserID uuid.UUID `json:"delivery_user_id"`
}

// NewDeliveryOrderDeliveredEvent creates a new DeliveryOrderDeliveredEvent
func NewDeliveryOrderDeliveredEvent(order *DeliveryOrder) *DeliveryOrderDeliveredEvent {
	return &DeliveryOrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryOrderDelivered, AggregateTypeDeliveryOrder, order.ID, order.TenantID),
		DeliveryUserID:  order.DeliveryUserID,
	}
}

// DeliveryOrderCancelledEvent is published when an order is cancelled
type DeliveryOrderCancelledEvent struct {
	shared.BaseDomainEvent
	Remarks string `json:"remarks,omitempty"`
}

// NewDeliveryOrderCancelledEvent creates a new DeliveryOrderCancelledEvent
func NewDeliveryOrderCancelledEvent(order *DeliveryOrder) *DeliveryOrderCancelledEvent {
	return &DeliveryOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryOrderCancelled, AggregateTypeDeliveryOrder, order.ID, order.TenantID),
		Remarks:         order.Remarks,
	}
}
