package delivery

import (
	"time"

	"github.com/billcore/backend/internal/domain/delivery"
	"github.com/google/uuid"
)

// CreateDeliveryOrderRequest represents a request to create a delivery order
type CreateDeliveryOrderRequest struct {
	BillID          *uuid.UUID `json:"bill_id"`
	ProxyBillID     *uuid.UUID `json:"proxy_bill_id"`
	DeliveryUserID  uuid.UUID  `json:"delivery_user_id" binding:"required"`
	DeliveryAddress string     `json:"delivery_address" binding:"required,max=500"`
	DeliveryDate    *time.Time `json:"delivery_date"`
}

// DeliveryOrderListFilter represents filter options for delivery order list
type DeliveryOrderListFilter struct {
	Status         string     `form:"status" binding:"omitempty,oneof=PENDING IN_TRANSIT DELIVERED CANCELLED"`
	DeliveryUserID *uuid.UUID `form:"delivery_user_id"`
	Page           int        `form:"page" binding:"min=0"`
	PageSize       int        `form:"page_size" binding:"min=0,max=100"`
}

// DeliveryOrderResponse represents a delivery order in API responses
type DeliveryOrderResponse struct {
	ID              uuid.UUID  `json:"id"`
	TenantID        uuid.UUID  `json:"tenant_id"`
	BillID          *uuid.UUID `json:"bill_id,omitempty"`
	ProxyBillID     *uuid.UUID `json:"proxy_bill_id,omitempty"`
	DeliveryUserID  uuid.UUID  `json:"delivery_user_id"`
	DeliveryAddress string     `json:"delivery_address"`
	DeliveryDate    *time.Time `json:"delivery_date,omitempty"`
	Status          string     `json:"status"`
	Remarks         string     `json:"remarks,omitempty"`
	Version         int        `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToDeliveryOrderResponse converts a domain delivery order to a response DTO
func ToDeliveryOrderResponse(o *delivery.DeliveryOrder) DeliveryOrderResponse {
	return DeliveryOrderResponse{
		ID:              o.ID,
		TenantID:        o.TenantID,
		BillID:          o.BillID,
		ProxyBillID:     o.ProxyBillID,
		DeliveryUserID:  o.DeliveryUserID,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryDate:    o.DeliveryDate,
		Status:          o.Status.String(),
		Remarks:         o.Remarks,
		Version:         o.Version,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToDeliveryOrderResponses converts a slice of domain delivery orders to response DTOs
func ToDeliveryOrderResponses(orders []delivery.DeliveryOrder) []DeliveryOrderResponse {
	responses := make([]DeliveryOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToDeliveryOrderResponse(&orders[i])
	}
	return responses
}
