package identity

import (
	"context"

	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantRepository persists tenants. Lookups by code match the uppercase
// form NewTenant stores.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByCode(ctx context.Context, code string) (*Tenant, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	FindByStatus(ctx context.Context, status TenantStatus, filter shared.Filter) ([]Tenant, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Tenant, error)
	Save(ctx context.Context, tenant *Tenant) error

	// Delete cascades to every record the tenant owns.
	Delete(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
