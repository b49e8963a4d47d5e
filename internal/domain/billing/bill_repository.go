package billing

import (
	"context"
	"time"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BillRepository defines the interface for bill persistence. Saves always
// persist the bill together with its items in one transaction.
type BillRepository interface {
	// FindByID finds a bill by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)

	// FindByIDForTenant finds a bill by ID scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Bill, error)

	// FindByNumber finds a bill by its number within a tenant
	FindByNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (*Bill, error)

	// FindAllForTenant finds bills of a tenant matching the filter.
	// Recognized filter keys: status, bill_type, vendor_id.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Bill, error)

	// FindByVendor finds bills of a vendor within a tenant
	FindByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, filter shared.Filter) ([]Bill, error)

	// Save creates or updates a bill with its items
	Save(ctx context.Context, bill *Bill) error

	// SaveWithLock updates a bill using optimistic locking on its version.
	// Returns shared.ErrConcurrencyConflict when the stored version moved.
	SaveWithLock(ctx context.Context, bill *Bill) error

	// Delete hard-deletes a bill and cascades to its items. Credit entries
	// referencing the bill keep their history with the reference nulled.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts bills of a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// SumConfirmedByVendor sums amount_total of confirmed bills of a vendor
	// with bill_date up to asOf (nil for no cutoff)
	SumConfirmedByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, asOf *time.Time) (valueobject.Money, error)

	// ExistsByNumber checks if a bill number is taken within a tenant
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (bool, error)

	// ExistsByVendor checks whether any bill references the vendor
	ExistsByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (bool, error)

	// GenerateBillNumber generates the next sequential bill number for the day
	GenerateBillNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}

// ProxyBillRepository defines the interface for proxy bill persistence
type ProxyBillRepository interface {
	// FindByID finds a proxy bill by its ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*ProxyBill, error)

	// FindByIDForTenant finds a proxy bill by ID scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ProxyBill, error)

	// FindByParent finds all proxy bills derived from a parent bill in
	// insertion order
	FindByParent(ctx context.Context, tenantID, parentBillID uuid.UUID) ([]ProxyBill, error)

	// FindAllForTenant finds proxy bills of a tenant matching the filter.
	// Recognized filter keys: status, vendor_id, parent_bill_id.
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProxyBill, error)

	// Save creates or updates a proxy bill with its items
	Save(ctx context.Context, proxy *ProxyBill) error

	// SaveWithLock updates a proxy bill using optimistic locking
	SaveWithLock(ctx context.Context, proxy *ProxyBill) error

	// SumActiveByParent sums amount_total of non-cancelled proxy bills of a
	// parent bill
	SumActiveByParent(ctx context.Context, tenantID, parentBillID uuid.UUID) (valueobject.Money, error)

	// SumActiveByVendor sums amount_total of non-cancelled proxy bills of a
	// vendor whose parent bill is confirmed, with parent bill_date up to asOf
	SumActiveByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, asOf *time.Time) (valueobject.Money, error)

	// SumActiveForParentVendor sums amount_total of non-cancelled proxy bills
	// whose confirmed parent bill belongs to the given vendor, with parent
	// bill_date up to asOf. This is the split-away portion of that vendor's
	// billed total.
	SumActiveForParentVendor(ctx context.Context, tenantID, parentVendorID uuid.UUID, asOf *time.Time) (valueobject.Money, error)

	// ExistsActiveByParent checks whether any non-cancelled proxy bill
	// references the parent bill
	ExistsActiveByParent(ctx context.Context, tenantID, parentBillID uuid.UUID) (bool, error)

	// ExistsByVendor checks whether any proxy bill references the vendor
	ExistsByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (bool, error)

	// ExistsByNumber checks if a proxy number is taken within a tenant
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, proxyNumber string) (bool, error)

	// GenerateProxyNumber generates the next sequential proxy number for the day
	GenerateProxyNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
