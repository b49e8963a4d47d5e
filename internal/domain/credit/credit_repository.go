package credit

import (
	"context"
	"time"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CreditEntryRepository defines the interface for the append-only credit
// ledger. There is deliberately no update or delete of individual entries;
// corrections are modeled as new offsetting entries.
type CreditEntryRepository interface {
	// FindByID finds an entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CreditEntry, error)

	// FindByIDForTenant finds an entry by ID scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CreditEntry, error)

	// FindAllForTenant finds entries of a tenant matching the filter.
	// Recognized filter keys: vendor_id, direction, method.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CreditEntry, error)

	// FindByVendor finds entries of a vendor in insertion order
	FindByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, filter shared.Filter) ([]CreditEntry, error)

	// FindByBill finds entries referencing a bill
	FindByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]CreditEntry, error)

	// FindByProxyBill finds entries referencing a proxy bill
	FindByProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID) ([]CreditEntry, error)

	// Append persists a new entry. Existing entries are never modified.
	Append(ctx context.Context, entry *CreditEntry) error

	// SumByVendor sums entry amounts of a vendor for one direction with
	// payment_date up to asOf (nil for no cutoff)
	SumByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, direction Direction, asOf *time.Time) (valueobject.Money, error)

	// CountForTenant counts entries of a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByBill checks whether any entry references the bill
	ExistsByBill(ctx context.Context, tenantID, billID uuid.UUID) (bool, error)

	// ExistsByProxyBill checks whether any entry references the proxy bill
	ExistsByProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID) (bool, error)

	// ExistsByVendor checks whether any entry references the vendor
	ExistsByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (bool, error)
}
