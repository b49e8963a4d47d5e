package models

import (
	"time"

	"github.com/billcore/backend/internal/domain/credit"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditEntryModel is the persistence model for the append-only CreditEntry
// ledger. Rows are inserted and read, never updated.
type CreditEntryModel struct {
	TenantAggregateModel
	VendorID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	BillID          *uuid.UUID           `gorm:"type:uuid;index"`
	ProxyBillID     *uuid.UUID           `gorm:"type:uuid;index"`
	Amount          decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Direction       credit.Direction     `gorm:"type:varchar(10);not null;index"`
	Method          credit.PaymentMethod `gorm:"type:varchar(20);not null"`
	PaymentDate     time.Time            `gorm:"not null;index"`
	ReferenceNumber string               `gorm:"type:varchar(100)"`
	Notes           string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CreditEntryModel) TableName() string {
	return "credit_entries"
}

// ToDomain converts the persistence model to a domain CreditEntry entity.
func (m *CreditEntryModel) ToDomain() *credit.CreditEntry {
	return &credit.CreditEntry{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			TenantID:  m.TenantID,
			CreatedBy: m.CreatedBy,
		},
		VendorID:        m.VendorID,
		BillID:          m.BillID,
		ProxyBillID:     m.ProxyBillID,
		Amount:          valueobject.NewMoneyINR(m.Amount),
		Direction:       m.Direction,
		Method:          m.Method,
		PaymentDate:     m.PaymentDate,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
	}
}

// FromDomain populates the persistence model from a domain CreditEntry entity.
func (m *CreditEntryModel) FromDomain(e *credit.CreditEntry) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.VendorID = e.VendorID
	m.BillID = e.BillID
	m.ProxyBillID = e.ProxyBillID
	m.Amount = e.Amount.Amount()
	m.Direction = e.Direction
	m.Method = e.Method
	m.PaymentDate = e.PaymentDate
	m.ReferenceNumber = e.ReferenceNumber
	m.Notes = e.Notes
}

// CreditEntryModelFromDomain creates a new persistence model from a domain CreditEntry.
func CreditEntryModelFromDomain(e *credit.CreditEntry) *CreditEntryModel {
	m := &CreditEntryModel{}
	m.FromDomain(e)
	return m
}
