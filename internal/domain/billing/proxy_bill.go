package billing

import (
	"strings"
	"time"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProxyBillItem is a line item owned exclusively by a proxy bill
type ProxyBillItem struct {
	shared.BaseEntity
	ProxyBillID uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   valueobject.Money
	Amount      valueobject.Money
}

// NewProxyBillItem creates a proxy bill line item with a computed amount
func NewProxyBillItem(description string, quantity decimal.Decimal, unitPrice valueobject.Money) (*ProxyBillItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item description cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item quantity must be positive")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Item unit price must be positive")
	}

	return &ProxyBillItem{
		BaseEntity:  shared.NewBaseEntity(),
		Description: description,
		Quantity:    quantity.Round(2),
		UnitPrice:   unitPrice.Round(2),
		Amount:      unitPrice.Multiply(quantity).Round(2),
	}, nil
}

// ProxyBill re-splits part of a confirmed parent bill toward another vendor.
// The sum of all non-cancelled sibling totals must never exceed the parent
// bill's total; that ceiling is enforced at creation time under the parent's
// optimistic lock.
type ProxyBill struct {
	shared.TenantAggregateRoot
	ParentBillID uuid.UUID
	VendorID     uuid.UUID
	ProxyNumber  string
	Status       BillStatus
	AmountTotal  valueobject.Money
	Items        []ProxyBillItem
}

// NewProxyBill creates a proxy bill in DRAFT with a total computed from its
// items. Parent state and capacity checks are the creating service's job.
func NewProxyBill(tenantID, parentBillID, vendorID uuid.UUID, proxyNumber string, items []*ProxyBillItem) (*ProxyBill, error) {
	proxyNumber = strings.TrimSpace(proxyNumber)
	if proxyNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Proxy number cannot be empty")
	}
	if len(proxyNumber) > 50 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Proxy number cannot exceed 50 characters")
	}
	if parentBillID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Parent bill is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Proxy bill must have at least one item")
	}

	total := valueobject.ZeroINR()
	owned := make([]ProxyBillItem, 0, len(items))
	proxy := &ProxyBill{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ParentBillID:        parentBillID,
		VendorID:            vendorID,
		ProxyNumber:         proxyNumber,
		Status:              BillStatusDraft,
	}
	for _, item := range items {
		if item == nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Proxy bill item cannot be nil")
		}
		sum, err := total.Add(item.Amount)
		if err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Proxy bill items must share one currency")
		}
		total = sum
		it := *item
		it.ProxyBillID = proxy.ID
		owned = append(owned, it)
	}

	proxy.Items = owned
	proxy.AmountTotal = total.Round(2)

	proxy.AddDomainEvent(NewProxyBillCreatedEvent(proxy))

	return proxy, nil
}

// Confirm moves the proxy bill from DRAFT to CONFIRMED
func (p *ProxyBill) Confirm() error {
	if !p.Status.CanConfirm() {
		return shared.NewDomainError("INVALID_STATE", "Proxy bill is already "+p.Status.String())
	}

	p.Status = BillStatusConfirmed
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Cancel moves the proxy bill to its terminal CANCELLED state. Callers must
// first verify that no credit entries reference the proxy bill.
func (p *ProxyBill) Cancel() error {
	if !p.Status.CanCancel() {
		return shared.NewDomainError("INVALID_STATE", "Proxy bill is already "+p.Status.String())
	}

	p.Status = BillStatusCancelled
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProxyBillCancelledEvent(p))

	return nil
}

// IsCancelled returns true if the proxy bill is CANCELLED
func (p *ProxyBill) IsCancelled() bool {
	return p.Status == BillStatusCancelled
}

// IsActive returns true if the proxy bill counts toward the parent's ceiling
func (p *ProxyBill) IsActive() bool {
	return p.Status != BillStatusCancelled
}
