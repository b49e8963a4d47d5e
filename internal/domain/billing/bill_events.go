package billing

import (
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeBill      = "Bill"
	AggregateTypeProxyBill = "ProxyBill"
)

// Event type constants
const (
	EventTypeBillCreated        = "BillCreated"
	EventTypeBillAuthorized     = "BillAuthorized"
	EventTypeBillCancelled      = "BillCancelled"
	EventTypeProxyBillCreated   = "ProxyBillCreated"
	EventTypeProxyBillCancelled = "ProxyBillCancelled"
)

// BillCreatedEvent is published when a new bill is created
type BillCreatedEvent struct {
	shared.BaseDomainEvent
	BillNumber  string    `json:"bill_number"`
	VendorID    uuid.UUID `json:"vendor_id"`
	AmountTotal string    `json:"amount_total"`
}

// NewBillCreatedEvent creates a new BillCreatedEvent
func NewBillCreatedEvent(bill *Bill) *BillCreatedEvent {
	return &BillCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillCreated, AggregateTypeBill, bill.ID, bill.TenantID),
		BillNumber:      bill.BillNumber,
		VendorID:        bill.VendorID,
		AmountTotal:     bill.AmountTotal.StringFixed(2),
	}
}

// BillAuthorizedEvent is published when a bill is authorized
type BillAuthorizedEvent struct {
	shared.BaseDomainEvent
	BillNumber   string    `json:"bill_number"`
	AuthorizedBy uuid.UUID `json:"authorized_by"`
	AmountTotal  string    `json:"amount_total"`
}

// NewBillAuthorizedEvent creates a new BillAuthorizedEvent
func NewBillAuthorizedEvent(bill *Bill, userID uuid.UUID) *BillAuthorizedEvent {
	return &BillAuthorizedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillAuthorized, AggregateTypeBill, bill.ID, bill.TenantID),
		BillNumber:      bill.BillNumber,
		AuthorizedBy:    userID,
		AmountTotal:     bill.AmountTotal.StringFixed(2),
	}
}

// BillCancelledEvent is published when a bill is cancelled
type BillCancelledEvent struct {
	shared.BaseDomainEvent
	BillNumber string `json:"bill_number"`
}

// NewBillCancelledEvent creates a new BillCancelledEvent
func NewBillCancelledEvent(bill *Bill) *BillCancelledEvent {
	return &BillCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillCancelled, AggregateTypeBill, bill.ID, bill.TenantID),
		BillNumber:      bill.BillNumber,
	}
}

// ProxyBillCreatedEvent is published when a proxy bill is created
type ProxyBillCreatedEvent struct {
	shared.BaseDomainEvent
	ProxyNumber  string    `json:"proxy_number"`
	ParentBillID uuid.UUID `json:"parent_bill_id"`
	AmountTotal  string    `json:"amount_total"`
}

// NewProxyBillCreatedEvent creates a new ProxyBillCreatedEvent
func NewProxyBillCreatedEvent(proxy *ProxyBill) *ProxyBillCreatedEvent {
	return &ProxyBillCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProxyBillCreated, AggregateTypeProxyBill, proxy.ID, proxy.TenantID),
		ProxyNumber:     proxy.ProxyNumber,
		ParentBillID:    proxy.ParentBillID,
		AmountTotal:     proxy.AmountTotal.StringFixed(2),
	}
}

// ProxyBillCancelledEvent is published when a proxy bill is cancelled
type ProxyBillCancelledEvent struct {
	shared.BaseDomainEvent
	ProxyNumber  string    `json:"proxy_number"`
	ParentBillID uuid.UUID `json:"parent_bill_id"`
}

// NewProxyBillCancelledEvent creates a new ProxyBillCancelledEvent
func NewProxyBillCancelledEvent(proxy *ProxyBill) *ProxyBillCancelledEvent {
	return &ProxyBillCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProxyBillCancelled, AggregateTypeProxyBill, proxy.ID, proxy.TenantID),
		ProxyNumber:     proxy.ProxyNumber,
		ParentBillID:    proxy.ParentBillID,
	}
}
