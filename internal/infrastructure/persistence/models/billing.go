package models

import (
	"time"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for the Bill aggregate root.
type BillModel struct {
	TenantAggregateModel
	VendorID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	BillNumber     string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_bill_tenant_number,priority:2"`
	BillDate       time.Time          `gorm:"not null;index"`
	Type           billing.BillType   `gorm:"type:varchar(20);not null;default:'NORMAL'"`
	Status         billing.BillStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	AmountSubtotal decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	AmountTax      decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	AmountTotal    decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	IsAuthorized   bool               `gorm:"not null;default:false"`
	AuthorizedBy   *uuid.UUID         `gorm:"type:uuid"`
	AuthorizedAt   *time.Time
	OCRText        string `gorm:"type:text"`
	ImagePath      string `gorm:"type:varchar(500)"`
	DeliveryDate   *time.Time
	BilledToName   string          `gorm:"type:varchar(200)"`
	ShippedToName  string          `gorm:"type:varchar(200)"`
	Items          []BillItemModel `gorm:"foreignKey:BillID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill entity.
func (m *BillModel) ToDomain() *billing.Bill {
	bill := &billing.Bill{
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
		VendorID:       m.VendorID,
		BillNumber:     m.BillNumber,
		BillDate:       m.BillDate,
		Type:           m.Type,
		Status:         m.Status,
		AmountSubtotal: valueobject.NewMoneyINR(m.AmountSubtotal),
		AmountTax:      valueobject.NewMoneyINR(m.AmountTax),
		AmountTotal:    valueobject.NewMoneyINR(m.AmountTotal),
		IsAuthorized:   m.IsAuthorized,
		AuthorizedBy:   m.AuthorizedBy,
		AuthorizedAt:   m.AuthorizedAt,
		OCRText:        m.OCRText,
		ImagePath:      m.ImagePath,
		DeliveryDate:   m.DeliveryDate,
		BilledToName:   m.BilledToName,
		ShippedToName:  m.ShippedToName,
	}
	bill.Items = make([]billing.BillItem, len(m.Items))
	for i, item := range m.Items {
		bill.Items[i] = *item.ToDomain()
	}
	bill.MarkPersisted()
	return bill
}

// FromDomain populates the persistence model from a domain Bill entity.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.VendorID = b.VendorID
	m.BillNumber = b.BillNumber
	m.BillDate = b.BillDate
	m.Type = b.Type
	m.Status = b.Status
	m.AmountSubtotal = b.AmountSubtotal.Amount()
	m.AmountTax = b.AmountTax.Amount()
	m.AmountTotal = b.AmountTotal.Amount()
	m.IsAuthorized = b.IsAuthorized
	m.AuthorizedBy = b.AuthorizedBy
	m.AuthorizedAt = b.AuthorizedAt
	m.OCRText = b.OCRText
	m.ImagePath = b.ImagePath
	m.DeliveryDate = b.DeliveryDate
	m.BilledToName = b.BilledToName
	m.ShippedToName = b.ShippedToName
	m.Items = make([]BillItemModel, len(b.Items))
	for i := range b.Items {
		b.Items[i].BillID = b.ID
		m.Items[i].FromDomain(&b.Items[i])
	}
}

// BillModelFromDomain creates a new persistence model from a domain Bill.
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}

// BillItemModel is the persistence model for a bill line item.
type BillItemModel struct {
	BaseModel
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (BillItemModel) TableName() string {
	return "bill_items"
}

// ToDomain converts the persistence model to a domain BillItem entity.
func (m *BillItemModel) ToDomain() *billing.BillItem {
	return &billing.BillItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		BillID:      m.BillID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   valueobject.NewMoneyINR(m.UnitPrice),
		Amount:      valueobject.NewMoneyINR(m.Amount),
	}
}

// FromDomain populates the persistence model from a domain BillItem entity.
func (m *BillItemModel) FromDomain(item *billing.BillItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.BillID = item.BillID
	m.Description = item.Description
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice.Amount()
	m.Amount = item.Amount.Amount()
}

// ProxyBillModel is the persistence model for the ProxyBill aggregate root.
type ProxyBillModel struct {
	TenantAggregateModel
	ParentBillID uuid.UUID            `gorm:"type:uuid;not null;index"`
	VendorID     uuid.UUID            `gorm:"type:uuid;not null;index"`
	ProxyNumber  string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_proxy_tenant_number,priority:2"`
	Status       billing.BillStatus   `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	AmountTotal  decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Items        []ProxyBillItemModel `gorm:"foreignKey:ProxyBillID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProxyBillModel) TableName() string {
	return "proxy_bills"
}

// ToDomain converts the persistence model to a domain ProxyBill entity.
func (m *ProxyBillModel) ToDomain() *billing.ProxyBill {
	proxy := &billing.ProxyBill{
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
		ParentBillID: m.ParentBillID,
		VendorID:     m.VendorID,
		ProxyNumber:  m.ProxyNumber,
		Status:       m.Status,
		AmountTotal:  valueobject.NewMoneyINR(m.AmountTotal),
	}
	proxy.Items = make([]billing.ProxyBillItem, len(m.Items))
	for i, item := range m.Items {
		proxy.Items[i] = *item.ToDomain()
	}
	proxy.MarkPersisted()
	return proxy
}

// FromDomain populates the persistence model from a domain ProxyBill entity.
func (m *ProxyBillModel) FromDomain(p *billing.ProxyBill) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.ParentBillID = p.ParentBillID
	m.VendorID = p.VendorID
	m.ProxyNumber = p.ProxyNumber
	m.Status = p.Status
	m.AmountTotal = p.AmountTotal.Amount()
	m.Items = make([]ProxyBillItemModel, len(p.Items))
	for i := range p.Items {
		p.Items[i].ProxyBillID = p.ID
		m.Items[i].FromDomain(&p.Items[i])
	}
}

// ProxyBillModelFromDomain creates a new persistence model from a domain ProxyBill.
func ProxyBillModelFromDomain(p *billing.ProxyBill) *ProxyBillModel {
	m := &ProxyBillModel{}
	m.FromDomain(p)
	return m
}

// ProxyBillItemModel is the persistence model for a proxy bill line item.
type ProxyBillItemModel struct {
	BaseModel
	ProxyBillID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProxyBillItemModel) TableName() string {
	return "proxy_bill_items"
}

// ToDomain converts the persistence model to a domain ProxyBillItem entity.
func (m *ProxyBillItemModel) ToDomain() *billing.ProxyBillItem {
	return &billing.ProxyBillItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		ProxyBillID: m.ProxyBillID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   valueobject.NewMoneyINR(m.UnitPrice),
		Amount:      valueobject.NewMoneyINR(m.Amount),
	}
}

// FromDomain populates the persistence model from a domain ProxyBillItem entity.
func (m *ProxyBillItemModel) FromDomain(item *billing.ProxyBillItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.ProxyBillID = item.ProxyBillID
	m.Description = item.Description
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice.Amount()
	m.Amount = item.Amount.Amount()
}
