package partner

import (
	"github.com/billcore/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeVendor = "Vendor"

// Event type constants
const (
	EventTypeVendorCreated     = "VendorCreated"
	EventTypeVendorUpdated     = "VendorUpdated"
	EventTypeVendorDeactivated = "VendorDeactivated"
)

// VendorCreatedEvent is published when a new vendor is created
type VendorCreatedEvent struct {
	shared.BaseDomainEvent
	Name string     `json:"name"`
	Kind VendorType `json:"type"`
}

// NewVendorCreatedEvent creates a new VendorCreatedEvent
func NewVendorCreatedEvent(vendor *Vendor) *VendorCreatedEvent {
	return &VendorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorCreated, AggregateTypeVendor, vendor.ID, vendor.TenantID),
		Name:            vendor.Name,
		Kind:            vendor.Type,
	}
}

// VendorUpdatedEvent is published when a vendor is updated
type VendorUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string     `json:"name"`
	Kind VendorType `json:"type"`
}

// NewVendorUpdatedEvent creates a new VendorUpdatedEvent
func NewVendorUpdatedEvent(vendor *Vendor) *VendorUpdatedEvent {
	return &VendorUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorUpdated, AggregateTypeVendor, vendor.ID, vendor.TenantID),
		Name:            vendor.Name,
		Kind:            vendor.Type,
	}
}

// VendorDeactivatedEvent is published when a vendor is deactivated
type VendorDeactivatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewVendorDeactivatedEvent creates a new VendorDeactivatedEvent
func NewVendorDeactivatedEvent(vendor *Vendor) *VendorDeactivatedEvent {
	return &VendorDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorDeactivated, AggregateTypeVendor, vendor.ID, vendor.TenantID),
		Name:            vendor.Name,
	}
}
