package models

import (
	"time"

	"github.com/billcore/backend/internal/domain/delivery"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryOrderModel is the persistence model for the DeliveryOrder aggregate root.
type DeliveryOrderModel struct {
	TenantAggregateModel
	BillID          *uuid.UUID              `gorm:"type:uuid;index"`
	ProxyBillID     *uuid.UUID              `gorm:"type:uuid;index"`
	DeliveryUserID  uuid.UUID               `gorm:"type:uuid;not null;index"`
	DeliveryAddress string                  `gorm:"type:varchar(500);not null"`
	DeliveryDate    *time.Time              `gorm:"index"`
	Status          delivery.DeliveryStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Remarks         string                  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DeliveryOrderModel) TableName() string {
	return "delivery_orders"
}

// ToDomain converts the persistence model to a domain DeliveryOrder entity.
func (m *DeliveryOrderModel) ToDomain() *delivery.DeliveryOrder {
	return &delivery.DeliveryOrder{
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
		BillID:          m.BillID,
		ProxyBillID:     m.ProxyBillID,
		DeliveryUserID:  m.DeliveryUserID,
		DeliveryAddress: m.DeliveryAddress,
		DeliveryDate:    m.DeliveryDate,
		Status:          m.Status,
		Remarks:         m.Remarks,
	}
}

// FromDomain populates the persistence model from a domain DeliveryOrder entity.
func (m *DeliveryOrderModel) FromDomain(o *delivery.DeliveryOrder) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.BillID = o.BillID
	m.ProxyBillID = o.ProxyBillID
	m.DeliveryUserID = o.DeliveryUserID
	m.DeliveryAddress = o.DeliveryAddress
	m.DeliveryDate = o.DeliveryDate
	m.Status = o.Status
	m.Remarks = o.Remarks
}

// DeliveryOrderModelFromDomain creates a new persistence model from a domain DeliveryOrder.
func DeliveryOrderModelFromDomain(o *delivery.DeliveryOrder) *DeliveryOrderModel {
	m := &DeliveryOrderModel{}
	m.FromDomain(o)
	return m
}
