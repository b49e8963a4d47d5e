package billing

import (
	"time"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Bill DTOs ====================

// BillItemInput represents a line item in a bill request
type BillItemInput struct {
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateBillRequest represents a request to create a bill.
// When BillNumber is empty a sequential number is generated.
// When PaidAmount is set, a credit entry for the immediate payment is
// appended in the same transaction as the bill.
type CreateBillRequest struct {
	VendorID      uuid.UUID        `json:"vendor_id" binding:"required"`
	BillNumber    string           `json:"bill_number" binding:"omitempty,max=50"`
	BillDate      time.Time        `json:"bill_date" binding:"required"`
	BillType      string           `json:"bill_type" binding:"required,oneof=NORMAL HANDBILL"`
	Items         []BillItemInput  `json:"items" binding:"required,min=1"`
	Tax           *decimal.Decimal `json:"tax"`
	DeliveryDate  *time.Time       `json:"delivery_date"`
	BilledToName  string           `json:"billed_to_name"`
	ShippedToName string           `json:"shipped_to_name"`
	PaidAmount    *decimal.Decimal `json:"paid_amount"`
	PaymentMethod string           `json:"payment_method" binding:"omitempty,oneof=CASH UPI BANK_TRANSFER CHEQUE CARD"`
}

// UpdateBillRequest represents a request to update a draft bill
type UpdateBillRequest struct {
	Items         []BillItemInput  `json:"items" binding:"omitempty,min=1"`
	Tax           *decimal.Decimal `json:"tax"`
	DeliveryDate  *time.Time       `json:"delivery_date"`
	BilledToName  *string          `json:"billed_to_name"`
	ShippedToName *string          `json:"shipped_to_name"`
}

// AttachBillImageRequest carries the stored object key of an uploaded bill image
type AttachBillImageRequest struct {
	ObjectKey string `json:"object_key" binding:"required,max=500"`
	OCRText   string `json:"ocr_text"`
}

// InitiateImageUploadRequest asks for a presigned upload URL for a bill image
type InitiateImageUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required,max=100"`
}

// InitiateImageUploadResponse returns the presigned upload URL and the
// storage key the client confirms after uploading
type InitiateImageUploadResponse struct {
	ObjectKey string    `json:"object_key"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BillImageURLResponse returns a presigned download URL for a stored bill image
type BillImageURLResponse struct {
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BillListFilter represents filter options for bill list
type BillListFilter struct {
	Search   string     `form:"search"`
	Status   string     `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED CANCELLED"`
	BillType string     `form:"bill_type" binding:"omitempty,oneof=NORMAL HANDBILL"`
	VendorID *uuid.UUID `form:"vendor_id"`
	DateFrom *time.Time `form:"date_from"`
	DateTo   *time.Time `form:"date_to"`
	Page     int        `form:"page" binding:"min=0"`
	PageSize int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// BillItemResponse represents a bill line item in API responses
type BillItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID             uuid.UUID          `json:"id"`
	VendorID       uuid.UUID          `json:"vendor_id"`
	BillNumber     string             `json:"bill_number"`
	BillDate       time.Time          `json:"bill_date"`
	BillType       string             `json:"bill_type"`
	Status         string             `json:"status"`
	AmountSubtotal decimal.Decimal    `json:"amount_subtotal"`
	AmountTax      decimal.Decimal    `json:"amount_tax"`
	AmountTotal    decimal.Decimal    `json:"amount_total"`
	IsAuthorized   bool               `json:"is_authorized"`
	AuthorizedBy   *uuid.UUID         `json:"authorized_by,omitempty"`
	AuthorizedAt   *time.Time         `json:"authorized_at,omitempty"`
	ImagePath      string             `json:"image_path,omitempty"`
	ImageURL       string             `json:"image_url,omitempty"`
	OCRText        string             `json:"ocr_text,omitempty"`
	DeliveryDate   *time.Time         `json:"delivery_date,omitempty"`
	BilledToName   string             `json:"billed_to_name,omitempty"`
	ShippedToName  string             `json:"shipped_to_name,omitempty"`
	Items          []BillItemResponse `json:"items"`
	Version        int                `json:"version"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// ToBillResponse converts a domain bill to a response DTO
func ToBillResponse(b *billing.Bill) BillResponse {
	items := make([]BillItemResponse, len(b.Items))
	for i := range b.Items {
		item := &b.Items[i]
		items[i] = BillItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Amount(),
			Amount:      item.Amount.Amount(),
		}
	}

	return BillResponse{
		ID:             b.ID,
		VendorID:       b.VendorID,
		BillNumber:     b.BillNumber,
		BillDate:       b.BillDate,
		BillType:       b.Type.String(),
		Status:         b.Status.String(),
		AmountSubtotal: b.AmountSubtotal.Amount(),
		AmountTax:      b.AmountTax.Amount(),
		AmountTotal:    b.AmountTotal.Amount(),
		IsAuthorized:   b.IsAuthorized,
		AuthorizedBy:   b.AuthorizedBy,
		AuthorizedAt:   b.AuthorizedAt,
		ImagePath:      b.ImagePath,
		OCRText:        b.OCRText,
		DeliveryDate:   b.DeliveryDate,
		BilledToName:   b.BilledToName,
		ShippedToName:  b.ShippedToName,
		Items:          items,
		Version:        b.Version,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// ToBillResponses converts a slice of domain bills to response DTOs
func ToBillResponses(bills []billing.Bill) []BillResponse {
	responses := make([]BillResponse, len(bills))
	for i := range bills {
		responses[i] = ToBillResponse(&bills[i])
	}
	return responses
}

// ==================== Proxy Bill DTOs ====================

// CreateProxyBillRequest represents a request to split a proxy bill off a
// confirmed parent bill. When ProxyNumber is empty a sequential number is
// generated.
type CreateProxyBillRequest struct {
	ParentBillID uuid.UUID       `json:"parent_bill_id" binding:"required"`
	VendorID     uuid.UUID       `json:"vendor_id" binding:"required"`
	ProxyNumber  string          `json:"proxy_number" binding:"omitempty,max=50"`
	Items        []BillItemInput `json:"items" binding:"required,min=1"`
}

// ProxySplitInput is one split in a batch request
type ProxySplitInput struct {
	VendorID    uuid.UUID       `json:"vendor_id" binding:"required"`
	ProxyNumber string          `json:"proxy_number" binding:"omitempty,max=50"`
	Items       []BillItemInput `json:"items" binding:"required,min=1"`
}

// CreateProxySplitsRequest splits a parent bill into several proxy bills in
// one transaction. Either all splits are created or none.
type CreateProxySplitsRequest struct {
	ParentBillID uuid.UUID         `json:"parent_bill_id" binding:"required"`
	Splits       []ProxySplitInput `json:"splits" binding:"required,min=1"`
}

// ProxyBillListFilter represents filter options for proxy bill list
type ProxyBillListFilter struct {
	Status       string     `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED CANCELLED"`
	VendorID     *uuid.UUID `form:"vendor_id"`
	ParentBillID *uuid.UUID `form:"parent_bill_id"`
	Page         int        `form:"page" binding:"min=0"`
	PageSize     int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProxyBillItemResponse represents a proxy bill line item in API responses
type ProxyBillItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// ProxyBillResponse represents a proxy bill in API responses
type ProxyBillResponse struct {
	ID           uuid.UUID               `json:"id"`
	ParentBillID uuid.UUID               `json:"parent_bill_id"`
	VendorID     uuid.UUID               `json:"vendor_id"`
	ProxyNumber  string                  `json:"proxy_number"`
	Status       string                  `json:"status"`
	AmountTotal  decimal.Decimal         `json:"amount_total"`
	Items        []ProxyBillItemResponse `json:"items"`
	Version      int                     `json:"version"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// ToProxyBillResponse converts a domain proxy bill to a response DTO
func ToProxyBillResponse(p *billing.ProxyBill) ProxyBillResponse {
	items := make([]ProxyBillItemResponse, len(p.Items))
	for i := range p.Items {
		item := &p.Items[i]
		items[i] = ProxyBillItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Amount(),
			Amount:      item.Amount.Amount(),
		}
	}

	return ProxyBillResponse{
		ID:           p.ID,
		ParentBillID: p.ParentBillID,
		VendorID:     p.VendorID,
		ProxyNumber:  p.ProxyNumber,
		Status:       p.Status.String(),
		AmountTotal:  p.AmountTotal.Amount(),
		Items:        items,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProxyBillResponses converts a slice of domain proxy bills to response DTOs
func ToProxyBillResponses(proxies []billing.ProxyBill) []ProxyBillResponse {
	responses := make([]ProxyBillResponse, len(proxies))
	for i := range proxies {
		responses[i] = ToProxyBillResponse(&proxies[i])
	}
	return responses
}
