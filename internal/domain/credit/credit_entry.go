package credit

import (
	"strings"
	"time"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Direction records which way money moved
type Direction string

const (
	DirectionIncoming Direction = "INCOMING"
	DirectionOutgoing Direction = "OUTGOING"
)

// IsValid checks if the direction is valid
func (d Direction) IsValid() bool {
	return d == DirectionIncoming || d == DirectionOutgoing
}

// String returns the string representation
func (d Direction) String() string {
	return string(d)
}

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodUPI          PaymentMethod = "UPI"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheque       PaymentMethod = "CHEQUE"
	MethodCard         PaymentMethod = "CARD"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodUPI, MethodBankTransfer, MethodCheque, MethodCard:
		return true
	default:
		return false
	}
}

// String returns the string representation
func (m PaymentMethod) String() string {
	return string(m)
}

// CreditEntry is an immutable, append-only record of money received from or
// paid to a vendor. An entry may reference a bill or a proxy bill, never
// both; a free-standing payment references neither. Corrections are new
// offsetting entries, never updates.
type CreditEntry struct {
	shared.TenantAggregateRoot
	VendorID        uuid.UUID
	BillID          *uuid.UUID
	ProxyBillID     *uuid.UUID
	Amount          valueobject.Money
	Direction       Direction
	Method          PaymentMethod
	PaymentDate     time.Time
	ReferenceNumber string
	Notes           string
}

// NewCreditEntry creates an immutable credit entry. The amount is always
// positive; the direction carries the sign.
func NewCreditEntry(tenantID, vendorID uuid.UUID, amount valueobject.Money, direction Direction, method PaymentMethod, paymentDate time.Time, billID, proxyBillID *uuid.UUID) (*CreditEntry, error) {
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Vendor is required")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Amount must be positive")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Direction must be INCOMING or OUTGOING")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid payment method")
	}
	if paymentDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment date is required")
	}
	if billID != nil && proxyBillID != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Entry may reference a bill or a proxy bill, not both")
	}

	entry := &CreditEntry{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		VendorID:            vendorID,
		BillID:              billID,
		ProxyBillID:         proxyBillID,
		Amount:              amount.Round(2),
		Direction:           direction,
		Method:              method,
		PaymentDate:         paymentDate,
	}

	entry.AddDomainEvent(NewCreditEntryRecordedEvent(entry))

	return entry, nil
}

// SetReference sets the external payment reference. Permitted only before
// the entry is first persisted; the ledger exposes no update path.
func (e *CreditEntry) SetReference(referenceNumber, notes string) error {
	referenceNumber = strings.TrimSpace(referenceNumber)
	if len(referenceNumber) > 100 {
		return shared.NewDomainError("VALIDATION_ERROR", "Reference number cannot exceed 100 characters")
	}

	e.ReferenceNumber = referenceNumber
	e.Notes = notes
	return nil
}

// IsIncoming returns true for money received
func (e *CreditEntry) IsIncoming() bool {
	return e.Direction == DirectionIncoming
}

// IsOutgoing returns true for money paid out
func (e *CreditEntry) IsOutgoing() bool {
	return e.Direction == DirectionOutgoing
}

// IsFreeStanding returns true when the entry references neither a bill nor
// a proxy bill
func (e *CreditEntry) IsFreeStanding() bool {
	return e.BillID == nil && e.ProxyBillID == nil
}

// SignedAmount returns the amount with INCOMING negative-reducing semantics
// applied: incoming money reduces what a vendor owes, outgoing money adds
// back.
func (e *CreditEntry) SignedAmount() valueobject.Money {
	if e.Direction == DirectionIncoming {
		return e.Amount.Negate()
	}
	return e.Amount
}
