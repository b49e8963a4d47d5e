package billing

import (
	"strings"
	"time"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillStatus represents the lifecycle state of a bill
type BillStatus string

const (
	BillStatusDraft     BillStatus = "DRAFT"
	BillStatusConfirmed BillStatus = "CONFIRMED"
	BillStatusCancelled BillStatus = "CANCELLED"
)

// IsValid checks if the status is valid
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusDraft, BillStatusConfirmed, BillStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transition is possible
func (s BillStatus) IsTerminal() bool {
	return s == BillStatusCancelled
}

// CanConfirm returns true if the bill can be confirmed from this status
func (s BillStatus) CanConfirm() bool {
	return s == BillStatusDraft
}

// CanCancel returns true if the bill can be cancelled from this status
func (s BillStatus) CanCancel() bool {
	return s == BillStatusDraft || s == BillStatusConfirmed
}

// String returns the string representation
func (s BillStatus) String() string {
	return string(s)
}

// BillType distinguishes regular bills from handwritten counter bills
type BillType string

const (
	BillTypeNormal   BillType = "NORMAL"
	BillTypeHandbill BillType = "HANDBILL"
)

// IsValid checks if the bill type is valid
func (t BillType) IsValid() bool {
	switch t {
	case BillTypeNormal, BillTypeHandbill:
		return true
	default:
		return false
	}
}

// String returns the string representation
func (t BillType) String() string {
	return string(t)
}

// BillItem is a line item owned exclusively by a bill. Its amount is always
// quantity times unit price rounded to 2 decimals.
type BillItem struct {
	shared.BaseEntity
	BillID      uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   valueobject.Money
	Amount      valueobject.Money
}

// NewBillItem creates a bill line item with a computed amount
func NewBillItem(description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*BillItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item description cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item unit price must be positive")
	}

	return &BillItem{
		BaseEntity:  shared.NewBaseEntity(),
		Description: description,
		Quantity:    quantity.Round(2),
		UnitPrice:   unitPrice.Round(2),
		Amount:      unitPrice.Multiply(quantity).Round(2),
	}, nil
}

// Bill is the primary invoice record for a vendor transaction. Totals are
// derived from the owned items plus an opaque tax amount supplied at
// creation; authorization freezes them permanently.
type Bill struct {
	shared.TenantAggregateRoot
	VendorID       uuid.UUID
	BillNumber     string
	BillDate       time.Time
	Type           BillType
	Status         BillStatus
	AmountSubtotal valueobject.Money
	AmountTax      valueobject.Money
	AmountTotal    valueobject.Money
	IsAuthorized   bool
	AuthorizedBy   *uuid.UUID
	AuthorizedAt   *time.Time
	OCRText        string
	ImagePath      string
	DeliveryDate   *time.Time
	BilledToName   string
	ShippedToName  string
	Items          []BillItem
}

// NewBill creates a bill in DRAFT with totals computed from its items.
// The tax amount is taken as supplied and only checked for sign; subtotal
// and total arithmetic is always recomputed from the items.
func NewBill(tenantID, vendorID uuid.UUID, billNumber string, billDate time.Time, billType BillType, items []*BillItem, tax valueobject.Money) (*Bill, error) {
	if err := validateBillNumber(billNumber); err != nil {
		return nil, err
	}
	if !billType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bill type must be NORMAL or HANDBILL")
	}
	if billDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bill date is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Bill must have at least one item")
	}
	if tax.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tax amount cannot be negative")
	}

	bill := &Bill{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		VendorID:            vendorID,
		BillNumber:          strings.TrimSpace(billNumber),
		BillDate:            billDate,
		Type:                billType,
		Status:              BillStatusDraft,
		Items:               make([]BillItem, 0, len(items)),
	}

	if err := bill.setItems(items, tax); err != nil {
		return nil, err
	}

	bill.AddDomainEvent(NewBillCreatedEvent(bill))

	return bill, nil
}

func (b *Bill) setItems(items []*BillItem, tax valueobject.Money) error {
	subtotal := valueobject.ZeroINR()
	owned := make([]BillItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			return shared.NewDomainError("VALIDATION_ERROR", "Bill item cannot be nil")
		}
		sum, err := subtotal.Add(item.Amount)
		if err != nil {
			return shared.NewDomainError("VALIDATION_ERROR", "Bill items must share one currency")
		}
		subtotal = sum
		it := *item
		it.BillID = b.ID
		owned = append(owned, it)
	}

	total, err := subtotal.Add(tax)
	if err != nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Tax currency must match item currency")
	}

	b.Items = owned
	b.AmountSubtotal = subtotal.Round(2)
	b.AmountTax = tax.Round(2)
	b.AmountTotal = total.Round(2)
	return nil
}

// ReplaceItems replaces the line items of a draft bill and recomputes all
// totals. Only DRAFT bills are mutable.
func (b *Bill) ReplaceItems(items []*BillItem, tax valueobject.Money) error {
	if b.Status != BillStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft bills can be modified")
	}
	if len(items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Bill must have at least one item")
	}
	if tax.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Tax amount cannot be negative")
	}

	if err := b.setItems(items, tax); err != nil {
		return err
	}

	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Authorize confirms the bill and freezes its totals. The transition is
// strictly one-way: a second call fails and must not touch the recorded
// authorization fields.
func (b *Bill) Authorize(userID uuid.UUID) error {
	if !b.Status.CanConfirm() {
		return shared.NewDomainError("INVALID_STATE", "Bill is already "+b.Status.String())
	}
	if userID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Authorizing user is required")
	}

	now := time.Now()
	b.Status = BillStatusConfirmed
	b.IsAuthorized = true
	b.AuthorizedBy = &userID
	b.AuthorizedAt = &now
	b.UpdatedAt = now
	b.IncrementVersion()

	b.AddDomainEvent(NewBillAuthorizedEvent(b, userID))

	return nil
}

// Cancel moves the bill to its terminal CANCELLED state. Callers must first
// verify that no active proxy bills or credit entries reference the bill.
func (b *Bill) Cancel() error {
	if !b.Status.CanCancel() {
		return shared.NewDomainError("INVALID_STATE", "Bill is already "+b.Status.String())
	}

	b.Status = BillStatusCancelled
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	b.AddDomainEvent(NewBillCancelledEvent(b))

	return nil
}

// AttachImage stores the object storage key of a scanned bill image
func (b *Bill) AttachImage(objectKey string) error {
	if objectKey == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Image key cannot be empty")
	}
	if len(objectKey) > 500 {
		return shared.NewDomainError("VALIDATION_ERROR", "Image key cannot exceed 500 characters")
	}

	b.ImagePath = objectKey
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// SetOCRText stores extracted text supplied by an external OCR collaborator.
// The text is opaque to the ledger.
func (b *Bill) SetOCRText(text string) {
	b.OCRText = text
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
}

// SetDeliveryInfo sets optional delivery annotations on a draft bill
func (b *Bill) SetDeliveryInfo(deliveryDate *time.Time, billedTo, shippedTo string) error {
	if b.Status != BillStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft bills can be modified")
	}
	if len(billedTo) > 200 || len(shippedTo) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Recipient names cannot exceed 200 characters")
	}

	b.DeliveryDate = deliveryDate
	b.BilledToName = strings.TrimSpace(billedTo)
	b.ShippedToName = strings.TrimSpace(shippedTo)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// IsDraft returns true if the bill is in DRAFT
func (b *Bill) IsDraft() bool {
	return b.Status == BillStatusDraft
}

// IsConfirmed returns true if the bill is CONFIRMED
func (b *Bill) IsConfirmed() bool {
	return b.Status == BillStatusConfirmed
}

// IsCancelled returns true if the bill is CANCELLED
func (b *Bill) IsCancelled() bool {
	return b.Status == BillStatusCancelled
}

func validateBillNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Bill number cannot be empty")
	}
	if len(number) > 50 {
		return shared.NewDomainError("VALIDATION_ERROR", "Bill number cannot exceed 50 characters")
	}
	return nil
}
