package delivery

import (
	"strings"
	"time"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryStatus represents the lifecycle state of a delivery order
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
	DeliveryStatusCancelled DeliveryStatus = "CANCELLED"
)

// IsValid checks if the status is valid
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered, DeliveryStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transition is possible
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusCancelled
}

// String returns the string representation
func (s DeliveryStatus) String() string {
	return string(s)
}

// DeliveryOrder correlates a physical delivery with a bill or proxy bill.
// It reads ledger identity only and never feeds back into ledger state.
type DeliveryOrder struct {
	shared.TenantAggregateRoot
	BillID          *uuid.UUID
	ProxyBillID     *uuid.UUID
	DeliveryUserID  uuid.UUID
	DeliveryAddress string
	DeliveryDate    *time.Time
	Status          DeliveryStatus
	Remarks         string
}

// NewDeliveryOrder creates a pending delivery order against a bill or a
// proxy bill, never both.
func NewDeliveryOrder(tenantID, deliveryUserID uuid.UUID, billID, proxyBillID *uuid.UUID, address string) (*DeliveryOrder, error) {
	if deliveryUserID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Delivery user is required")
	}
	if billID != nil && proxyBillID != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order may reference a bill or a proxy bill, not both")
	}
	if billID == nil && proxyBillID == nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Order must reference a bill or a proxy bill")
	}
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Delivery address cannot be empty")
	}

	order := &DeliveryOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BillID:              billID,
		ProxyBillID:         proxyBillID,
		DeliveryUserID:      deliveryUserID,
		DeliveryAddress:     address,
		Status:              DeliveryStatusPending,
	}
	order.AddDomainEvent(NewDeliveryOrderCreatedEvent(order))

	return order, nil
}

// Schedule sets the planned delivery date
func (o *DeliveryOrder) Schedule(date time.Time) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Order is already "+o.Status.String())
	}

	o.DeliveryDate = &date
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Dispatch moves the order from PENDING to IN_TRANSIT
func (o *DeliveryOrder) Dispatch() error {
	if o.Status != DeliveryStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be dispatched")
	}

	o.Status = DeliveryStatusInTransit
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkDelivered moves the order from IN_TRANSIT to DELIVERED
func (o *DeliveryOrder) MarkDelivered(remarks string) error {
	if o.Status != DeliveryStatusInTransit {
		return shared.NewDomainError("INVALID_STATE", "Only in-transit orders can be delivered")
	}

	o.Status = DeliveryStatusDelivered
	o.Remarks = remarks
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewDeliveryOrderDeliveredEvent(o))

	return nil
}

// Cancel cancels a pending or in-transit order
func (o *DeliveryOrder) Cancel(remarks string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Order is already "+o.Status.String())
	}

	o.Status = DeliveryStatusCancelled
	o.Remarks = remarks
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.AddDomainEvent(NewDeliveryOrderCancelledEvent(o))

	return nil
}

// Reassign changes the assigned delivery user on a non-terminal order
func (o *DeliveryOrder) Reassign(deliveryUserID uuid.UUID) error {
	if deliveryUserID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Delivery user is required")
	}
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Order is already "+o.Status.String())
	}

	o.DeliveryUserID = deliveryUserID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}
