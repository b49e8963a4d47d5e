package partner

import (
	"time"

	"github.com/billcore/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateVendorRequest represents a request to create a vendor
type CreateVendorRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Type        string           `json:"type" binding:"required,oneof=SUPPLIER CUSTOMER BOTH"`
	Phone       string           `json:"phone"`
	Email       string           `json:"email" binding:"omitempty,email"`
	Address     string           `json:"address"`
	GSTNumber   string           `json:"gst_number"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	Notes       string           `json:"notes"`
}

// UpdateVendorRequest represents a request to update a vendor
type UpdateVendorRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Type        *string          `json:"type" binding:"omitempty,oneof=SUPPLIER CUSTOMER BOTH"`
	Phone       *string          `json:"phone"`
	Email       *string          `json:"email" binding:"omitempty,email"`
	Address     *string          `json:"address"`
	GSTNumber   *string          `json:"gst_number"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	Notes       *string          `json:"notes"`
}

// VendorListFilter represents filter options for vendor list
type VendorListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=SUPPLIER CUSTOMER BOTH"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Address     string          `json:"address,omitempty"`
	GSTNumber   string          `json:"gst_number,omitempty"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes,omitempty"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToVendorResponse converts a domain vendor to a response DTO
func ToVendorResponse(v *partner.Vendor) VendorResponse {
	return VendorResponse{
		ID:          v.ID,
		Name:        v.Name,
		Type:        v.Type.String(),
		Phone:       v.ContactPhone,
		Email:       v.Email,
		Address:     v.Address,
		GSTNumber:   v.GSTNumber,
		CreditLimit: v.CreditLimit.Amount(),
		Status:      string(v.Status),
		Notes:       v.Notes,
		Version:     v.Version,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// ToVendorResponses converts a slice of domain vendors to response DTOs
func ToVendorResponses(vendors []partner.Vendor) []VendorResponse {
	responses := make([]VendorResponse, len(vendors))
	for i := range vendors {
		responses[i] = ToVendorResponse(&vendors[i])
	}
	return responses
}
