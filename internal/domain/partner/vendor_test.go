package partner

import (
	"strings"
	"testing"

	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestVendor(t *testing.T) *Vendor {
	vendor, err := NewVendor(uuid.New(), "Sharma Traders", VendorTypeBoth, valueobject.NewMoneyINRFromFloat(50000))
	require.NoError(t, err)
	return vendor
}

func TestVendorType_IsValid(t *testing.T) {
	tests := []struct {
		vendorType VendorType
		isValid    bool
	}{
		{VendorTypeSupplier, true},
		{VendorTypeCustomer, true},
		{VendorTypeBoth, true},
		{VendorType("RESELLER"), false},
		{VendorType(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.vendorType), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.vendorType.IsValid())
		})
	}
}

func TestNewVendor(t *testing.T) {
	t.Run("creates active vendor", func(t *testing.T) {
		tenantID := uuid.New()
		vendor, err := NewVendor(tenantID, "  Sharma Traders  ", VendorTypeSupplier, valueobject.ZeroINR())
		require.NoError(t, err)
		assert.Equal(t, "Sharma Traders", vendor.Name)
		assert.Equal(t, tenantID, vendor.TenantID)
		assert.Equal(t, VendorStatusActive, vendor.Status)
		assert.True(t, vendor.IsSupplier())
		assert.False(t, vendor.IsCustomer())
		assert.Len(t, vendor.GetDomainEvents(), 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewVendor(uuid.New(), "   ", VendorTypeSupplier, valueobject.ZeroINR())
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewVendor(uuid.New(), "Sharma", VendorType("RESELLER"), valueobject.ZeroINR())
		assert.Error(t, err)
	})

	t.Run("rejects negative credit limit", func(t *testing.T) {
		_, err := NewVendor(uuid.New(), "Sharma", VendorTypeSupplier, valueobject.NewMoneyINRFromFloat(-1))
		assert.Error(t, err)
	})
}

func TestVendorUpdate(t *testing.T) {
	vendor := createTestVendor(t)

	require.NoError(t, vendor.Update("Sharma & Sons", VendorTypeCustomer))
	assert.Equal(t, "Sharma & Sons", vendor.Name)
	assert.True(t, vendor.IsCustomer())
	assert.False(t, vendor.IsSupplier())

	assert.Error(t, vendor.Update("", VendorTypeCustomer))
	assert.Error(t, vendor.Update("Sharma", VendorType("X")))
}

func TestVendorSetContact(t *testing.T) {
	vendor := createTestVendor(t)

	require.NoError(t, vendor.SetContact("+91-9876543210", "Sales@Sharma.IN", "12 MG Road, Pune"))
	assert.Equal(t, "+91-9876543210", vendor.ContactPhone)
	assert.Equal(t, "sales@sharma.in", vendor.Email)

	assert.Error(t, vendor.SetContact(strings.Repeat("9", 51), "", ""))
}

func TestVendorSetGSTNumber(t *testing.T) {
	vendor := createTestVendor(t)

	require.NoError(t, vendor.SetGSTNumber("27aapfu0939f1zv"))
	assert.Equal(t, "27AAPFU0939F1ZV", vendor.GSTNumber)

	assert.Error(t, vendor.SetGSTNumber(strings.Repeat("A", 21)))
}

func TestVendorSetCreditLimit(t *testing.T) {
	vendor := createTestVendor(t)

	require.NoError(t, vendor.SetCreditLimit(valueobject.NewMoneyINRFromFloat(75000)))
	assert.Equal(t, 75000.0, vendor.CreditLimit.Float64())

	assert.Error(t, vendor.SetCreditLimit(valueobject.NewMoneyINRFromFloat(-5)))
}

func TestVendorActivateDeactivate(t *testing.T) {
	vendor := createTestVendor(t)

	require.NoError(t, vendor.Deactivate())
	assert.False(t, vendor.IsActive())
	assert.Error(t, vendor.Deactivate())

	require.NoError(t, vendor.Activate())
	assert.True(t, vendor.IsActive())
	assert.Error(t, vendor.Activate())
}
