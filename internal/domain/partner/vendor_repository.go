package partner

import (
	"context"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	// FindByID finds a vendor by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)

	// FindByIDForTenant finds a vendor by ID scoped to a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Vendor, error)

	// FindAllForTenant finds all vendors of a tenant matching the filter
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Vendor, error)

	// FindByType finds vendors by type within a tenant
	FindByType(ctx context.Context, tenantID uuid.UUID, vendorType VendorType, filter shared.Filter) ([]Vendor, error)

	// FindActive finds active vendors within a tenant
	FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Vendor, error)

	// Save creates or updates a vendor
	Save(ctx context.Context, vendor *Vendor) error

	// Delete deletes a vendor. Implementations must refuse the delete while
	// bills, proxy bills, or credit entries reference the vendor.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts vendors of a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsForTenant checks that a vendor belongs to the tenant
	ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}
