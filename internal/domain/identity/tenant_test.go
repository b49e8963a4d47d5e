package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTenant(t *testing.T) {
	t.Run("creates active tenant with uppercased code", func(t *testing.T) {
		tenant, err := NewTenant("acme-01", "Acme Trading Co")
		require.NoError(t, err)
		assert.Equal(t, "ACME-01", tenant.Code)
		assert.Equal(t, "Acme Trading Co", tenant.Name)
		assert.Equal(t, TenantStatusActive, tenant.Status)
		assert.True(t, tenant.IsActive())
		assert.Equal(t, 1, tenant.GetVersion())
		assert.Len(t, tenant.GetDomainEvents(), 1)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewTenant("", "Acme")
		assert.Error(t, err)
	})

	t.Run("rejects code with invalid characters", func(t *testing.T) {
		_, err := NewTenant("acme 01", "Acme")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewTenant("ACME", "")
		assert.Error(t, err)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		_, err := NewTenant("ACME", strings.Repeat("x", 201))
		assert.Error(t, err)
	})
}

func TestTenantUpdate(t *testing.T) {
	tenant, err := NewTenant("ACME", "Acme")
	require.NoError(t, err)

	require.NoError(t, tenant.Update("Acme Traders"))
	assert.Equal(t, "Acme Traders", tenant.Name)
	assert.Equal(t, 2, tenant.GetVersion())

	assert.Error(t, tenant.Update(""))
}

func TestTenantSetContact(t *testing.T) {
	tenant, err := NewTenant("ACME", "Acme")
	require.NoError(t, err)

	require.NoError(t, tenant.SetContact("Ravi", "+91-98765", "ravi@acme.in"))
	assert.Equal(t, "Ravi", tenant.ContactName)
	assert.Equal(t, "+91-98765", tenant.ContactPhone)

	assert.Error(t, tenant.SetContact(strings.Repeat("x", 101), "", ""))
}

func TestTenantActivateDeactivate(t *testing.T) {
	tenant, err := NewTenant("ACME", "Acme")
	require.NoError(t, err)

	t.Run("deactivate active tenant", func(t *testing.T) {
		require.NoError(t, tenant.Deactivate())
		assert.Equal(t, TenantStatusInactive, tenant.Status)
		assert.False(t, tenant.IsActive())
	})

	t.Run("deactivate twice fails", func(t *testing.T) {
		assert.Error(t, tenant.Deactivate())
	})

	t.Run("reactivate", func(t *testing.T) {
		require.NoError(t, tenant.Activate())
		assert.True(t, tenant.IsActive())
	})

	t.Run("activate twice fails", func(t *testing.T) {
		assert.Error(t, tenant.Activate())
	})
}
