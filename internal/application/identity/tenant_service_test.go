package identity

import (
	"context"
	"testing"

	"github.com/billcore/backend/internal/domain/identity"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type tenantServiceFixture struct {
	tenantRepo *MockTenantRepository
	userRepo   *MockUserRepository
	service    *TenantService
}

func newTenantService() *tenantServiceFixture {
	tenantRepo := new(MockTenantRepository)
	userRepo := new(MockUserRepository)
	service := NewTenantService(tenantRepo, userRepo, zap.NewNop())
	return &tenantServiceFixture{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		service:    service,
	}
}

func TestTenantService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions tenant with admin user", func(t *testing.T) {
		f := newTenantService()

		f.tenantRepo.On("ExistsByCode", ctx, "ACME").Return(false, nil)
		f.tenantRepo.On("Save", ctx, mock.AnythingOfType("*identity.Tenant")).Return(nil)
		f.userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := f.service.Create(ctx, CreateTenantRequest{
			Code:          "ACME",
			Name:          "Acme Traders",
			ContactName:   "Rajesh Kumar",
			Phone:         "+91 98765 43210",
			Email:         "rajesh@acme.example",
			AdminUsername: "admin",
			AdminPassword: "admin-password-1",
		})

		require.NoError(t, err)
		assert.Equal(t, "ACME", result.Code)
		assert.Equal(t, "Acme Traders", result.Name)
		assert.Equal(t, "active", result.Status)

		f.userRepo.AssertCalled(t, "Save", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.Username == "admin" && u.Role == identity.RoleAdmin && u.TenantID == result.ID
		}))
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		f := newTenantService()

		f.tenantRepo.On("ExistsByCode", ctx, "ACME").Return(true, nil)

		_, err := f.service.Create(ctx, CreateTenantRequest{
			Code:          "ACME",
			Name:          "Acme Traders",
			AdminUsername: "admin",
			AdminPassword: "admin-password-1",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		f.tenantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTenantService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only supplied fields", func(t *testing.T) {
		f := newTenantService()
		tenant, err := identity.NewTenant("ACME", "Acme Traders")
		require.NoError(t, err)
		require.NoError(t, tenant.SetContact("Rajesh Kumar", "+91 98765 43210", "rajesh@acme.example"))

		f.tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		f.tenantRepo.On("Save", ctx, tenant).Return(nil)

		newName := "Acme Trading Co"
		result, err := f.service.Update(ctx, tenant.ID, UpdateTenantRequest{Name: &newName})

		require.NoError(t, err)
		assert.Equal(t, "Acme Trading Co", result.Name)
		assert.Equal(t, "Rajesh Kumar", result.ContactName)
		assert.Equal(t, "rajesh@acme.example", result.Email)
	})
}

func TestTenantService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses to delete a tenant with users", func(t *testing.T) {
		f := newTenantService()
		tenant, err := identity.NewTenant("ACME", "Acme Traders")
		require.NoError(t, err)

		f.tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		f.userRepo.On("CountForTenant", ctx, tenant.ID).Return(int64(3), nil)

		err = f.service.Delete(ctx, tenant.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		f.tenantRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes an empty tenant", func(t *testing.T) {
		f := newTenantService()
		tenant, err := identity.NewTenant("ACME", "Acme Traders")
		require.NoError(t, err)

		f.tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		f.userRepo.On("CountForTenant", ctx, tenant.ID).Return(int64(0), nil)
		f.tenantRepo.On("Delete", ctx, tenant.ID).Return(nil)

		require.NoError(t, f.service.Delete(ctx, tenant.ID))
		f.tenantRepo.AssertCalled(t, "Delete", ctx, tenant.ID)
	})

	t.Run("returns not found for unknown tenant", func(t *testing.T) {
		f := newTenantService()
		id := uuid.New()

		f.tenantRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := f.service.Delete(ctx, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTenantService_Deactivate(t *testing.T) {
	ctx := context.Background()

	f := newTenantService()
	tenant, err := identity.NewTenant("ACME", "Acme Traders")
	require.NoError(t, err)

	f.tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
	f.tenantRepo.On("Save", ctx, tenant).Return(nil)

	require.NoError(t, f.service.Deactivate(ctx, tenant.ID))
	assert.False(t, tenant.IsActive())
}
