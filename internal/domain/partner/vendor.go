package partner

import (
	"strings"
	"time"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// VendorType classifies the trading relationship with a vendor
type VendorType string

const (
	VendorTypeSupplier VendorType = "SUPPLIER"
	VendorTypeCustomer VendorType = "CUSTOMER"
	VendorTypeBoth     VendorType = "BOTH"
)

// IsValid checks if the vendor type is valid
func (t VendorType) IsValid() bool {
	switch t {
	case VendorTypeSupplier, VendorTypeCustomer, VendorTypeBoth:
		return true
	default:
		return false
	}
}

// String returns the string representation
func (t VendorType) String() string {
	return string(t)
}

// VendorStatus represents the status of a vendor
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "active"
	VendorStatusInactive VendorStatus = "inactive"
)

// Vendor represents a trading party (supplier, customer, or both). Bills,
// proxy bills, and credit entries all reference a vendor; a vendor with
// such references cannot be deleted.
type Vendor struct {
	shared.TenantAggregateRoot
	Name         string
	Type         VendorType
	ContactPhone string
	Email        string
	Address      string
	GSTNumber    string
	CreditLimit  valueobject.Money
	Status       VendorStatus
	Notes        string
}

// NewVendor creates a new active vendor
func NewVendor(tenantID uuid.UUID, name string, vendorType VendorType, creditLimit valueobject.Money) (*Vendor, error) {
	if err := validateVendorName(name); err != nil {
		return nil, err
	}
	if !vendorType.IsValid() {
		return nil, shared.NewDomainError("INVALID_VENDOR_TYPE", "Vendor type must be SUPPLIER, CUSTOMER, or BOTH")
	}
	if creditLimit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	vendor := &Vendor{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Type:                vendorType,
		CreditLimit:         creditLimit.Round(2),
		Status:              VendorStatusActive,
	}

	vendor.AddDomainEvent(NewVendorCreatedEvent(vendor))

	return vendor, nil
}

// Update updates the vendor's basic information
func (v *Vendor) Update(name string, vendorType VendorType) error {
	if err := validateVendorName(name); err != nil {
		return err
	}
	if !vendorType.IsValid() {
		return shared.NewDomainError("INVALID_VENDOR_TYPE", "Vendor type must be SUPPLIER, CUSTOMER, or BOTH")
	}

	v.Name = strings.TrimSpace(name)
	v.Type = vendorType
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorUpdatedEvent(v))

	return nil
}

// SetContact sets the vendor's contact details
func (v *Vendor) SetContact(phone, email, address string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	v.ContactPhone = strings.TrimSpace(phone)
	v.Email = strings.ToLower(strings.TrimSpace(email))
	v.Address = address
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetGSTNumber sets the vendor's GST registration number
func (v *Vendor) SetGSTNumber(gst string) error {
	gst = strings.ToUpper(strings.TrimSpace(gst))
	if gst != "" && len(gst) > 20 {
		return shared.NewDomainError("INVALID_GST_NUMBER", "GST number cannot exceed 20 characters")
	}

	v.GSTNumber = gst
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetCreditLimit sets the vendor's credit limit
func (v *Vendor) SetCreditLimit(limit valueobject.Money) error {
	if limit.IsNegative() {
		return shared.NewDomainError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}

	v.CreditLimit = limit.Round(2)
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetNotes sets free-form notes
func (v *Vendor) SetNotes(notes string) {
	v.Notes = notes
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// Activate re-activates the vendor
func (v *Vendor) Activate() error {
	if v.Status == VendorStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Vendor is already active")
	}

	v.Status = VendorStatusActive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// Deactivate deactivates the vendor. Existing bills and credit entries are
// unaffected; new bills may not be raised against an inactive vendor.
func (v *Vendor) Deactivate() error {
	if v.Status == VendorStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Vendor is already inactive")
	}

	v.Status = VendorStatusInactive
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	v.AddDomainEvent(NewVendorDeactivatedEvent(v))

	return nil
}

// IsActive returns true if the vendor is active
func (v *Vendor) IsActive() bool {
	return v.Status == VendorStatusActive
}

// IsSupplier returns true if the vendor supplies goods to us
func (v *Vendor) IsSupplier() bool {
	return v.Type == VendorTypeSupplier || v.Type == VendorTypeBoth
}

// IsCustomer returns true if the vendor buys goods from us
func (v *Vendor) IsCustomer() bool {
	return v.Type == VendorTypeCustomer || v.Type == VendorTypeBoth
}

func validateVendorName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Vendor name cannot exceed 200 characters")
	}
	return nil
}
