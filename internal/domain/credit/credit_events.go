package credit

import (
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCreditEntry = "CreditEntry"

// Event type constants
const (
	EventTypeCreditEntryRecorded = "CreditEntryRecorded"
)

// CreditEntryRecordedEvent is published when a credit entry is appended
type CreditEntryRecordedEvent struct {
	shared.BaseDomainEvent
	VendorID  uuid.UUID `json:"vendor_id"`
	Amount    string    `json:"amount"`
	Direction Direction `json:"direction"`
}

// NewCreditEntryRecordedEvent creates a new CreditEntryRecordedEvent
func NewCreditEntryRecordedEvent(entry *CreditEntry) *CreditEntryRecordedEvent {
	return &CreditEntryRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCreditEntryRecorded, AggregateTypeCreditEntry, entry.ID, entry.TenantID),
		VendorID:        entry.VendorID,
		Amount:          entry.Amount.StringFixed(2),
		Direction:       entry.Direction,
	}
}
