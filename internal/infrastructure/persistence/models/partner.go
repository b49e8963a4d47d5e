package models

import (
	"github.com/billcore/backend/internal/domain/partner"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// VendorModel is the persistence model for the Vendor domain entity.
type VendorModel struct {
	TenantAggregateModel
	Name         string               `gorm:"type:varchar(200);not null;index"`
	Type         partner.VendorType   `gorm:"type:varchar(20);not null"`
	ContactPhone string               `gorm:"type:varchar(50)"`
	Email        string               `gorm:"type:varchar(200)"`
	Address      string               `gorm:"type:text"`
	GSTNumber    string               `gorm:"type:varchar(30)"`
	CreditLimit  decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status       partner.VendorStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes        string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *partner.Vendor {
	return &partner.Vendor{
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
		Name:         m.Name,
		Type:         m.Type,
		ContactPhone: m.ContactPhone,
		Email:        m.Email,
		Address:      m.Address,
		GSTNumber:    m.GSTNumber,
		CreditLimit:  valueobject.NewMoneyINR(m.CreditLimit),
		Status:       m.Status,
		Notes:        m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Vendor entity.
func (m *VendorModel) FromDomain(v *partner.Vendor) {
	m.FromDomainTenantAggregateRoot(v.TenantAggregateRoot)
	m.Name = v.Name
	m.Type = v.Type
	m.ContactPhone = v.ContactPhone
	m.Email = v.Email
	m.Address = v.Address
	m.GSTNumber = v.GSTNumber
	m.CreditLimit = v.CreditLimit.Amount()
	m.Status = v.Status
	m.Notes = v.Notes
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor.
func VendorModelFromDomain(v *partner.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}
