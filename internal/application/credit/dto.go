package credit

import (
	"time"

	"github.com/billcore/backend/internal/domain/credit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest represents a request to append a credit entry.
// At most one of BillID and ProxyBillID may be set; with neither the
// payment is free-standing against the vendor.
type RecordPaymentRequest struct {
	VendorID        uuid.UUID       `json:"vendor_id" binding:"required"`
	BillID          *uuid.UUID      `json:"bill_id"`
	ProxyBillID     *uuid.UUID      `json:"proxy_bill_id"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Direction       string          `json:"direction" binding:"required,oneof=INCOMING OUTGOING"`
	Method          string          `json:"method" binding:"required,oneof=CASH UPI BANK_TRANSFER CHEQUE CARD"`
	PaymentDate     time.Time       `json:"payment_date" binding:"required"`
	ReferenceNumber string          `json:"reference_number" binding:"omitempty,max=100"`
	Notes           string          `json:"notes"`
}

// CreditEntryListFilter represents filter options for credit entry list
type CreditEntryListFilter struct {
	VendorID  *uuid.UUID `form:"vendor_id"`
	Direction string     `form:"direction" binding:"omitempty,oneof=INCOMING OUTGOING"`
	Method    string     `form:"method" binding:"omitempty,oneof=CASH UPI BANK_TRANSFER CHEQUE CARD"`
	DateFrom  *time.Time `form:"date_from"`
	DateTo    *time.Time `form:"date_to"`
	Page      int        `form:"page" binding:"min=0"`
	PageSize  int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreditEntryResponse represents a credit entry in API responses
type CreditEntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	VendorID        uuid.UUID       `json:"vendor_id"`
	BillID          *uuid.UUID      `json:"bill_id,omitempty"`
	ProxyBillID     *uuid.UUID      `json:"proxy_bill_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Direction       string          `json:"direction"`
	Method          string          `json:"method"`
	PaymentDate     time.Time       `json:"payment_date"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToCreditEntryResponse converts a domain credit entry to a response DTO
func ToCreditEntryResponse(e *credit.CreditEntry) CreditEntryResponse {
	return CreditEntryResponse{
		ID:              e.ID,
		VendorID:        e.VendorID,
		BillID:          e.BillID,
		ProxyBillID:     e.ProxyBillID,
		Amount:          e.Amount.Amount(),
		Direction:       string(e.Direction),
		Method:          string(e.Method),
		PaymentDate:     e.PaymentDate,
		ReferenceNumber: e.ReferenceNumber,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
	}
}

// ToCreditEntryResponses converts a slice of domain credit entries to response DTOs
func ToCreditEntryResponses(entries []credit.CreditEntry) []CreditEntryResponse {
	responses := make([]CreditEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToCreditEntryResponse(&entries[i])
	}
	return responses
}
