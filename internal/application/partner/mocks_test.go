package partner

import (
	"context"
	"time"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/credit"
	"github.com/billcore/backend/internal/domain/partner"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockVendorRepository is a mock implementation of VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByType(ctx context.Context, tenantID uuid.UUID, vendorType partner.VendorType, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, tenantID, vendorType, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindActive(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Vendor, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockVendorRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVendorRepository) ExistsForTenant(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Bool(0), args.Error(1)
}

// MockBillRepository is a mock implementation of billing.BillRepository
type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Bill, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (*billing.Bill, error) {
	args := m.Called(ctx, tenantID, billNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) FindByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, filter shared.Filter) ([]billing.Bill, error) {
	args := m.Called(ctx, tenantID, vendorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Bill), args.Error(1)
}

func (m *MockBillRepository) Save(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) SaveWithLock(ctx context.Context, bill *billing.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockBillRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBillRepository) SumConfirmedByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, asOf *time.Time) (valueobject.Money, error) {
	args := m.Called(ctx, tenantID, vendorID, asOf)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockBillRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, billNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillRepository) ExistsByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, vendorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBillRepository) GenerateBillNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// MockProxyBillRepository is a mock implementation of billing.ProxyBillRepository
type MockProxyBillRepository struct {
	mock.Mock
}

func (m *MockProxyBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.ProxyBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.ProxyBill), args.Error(1)
}

func (m *MockProxyBillRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.ProxyBill, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.ProxyBill), args.Error(1)
}

func (m *MockProxyBillRepository) FindByParent(ctx context.Context, tenantID, parentBillID uuid.UUID) ([]billing.ProxyBill, error) {
	args := m.Called(ctx, tenantID, parentBillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.ProxyBill), args.Error(1)
}

func (m *MockProxyBillRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.ProxyBill, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.ProxyBill), args.Error(1)
}

func (m *MockProxyBillRepository) Save(ctx context.Context, proxy *billing.ProxyBill) error {
	args := m.Called(ctx, proxy)
	return args.Error(0)
}

func (m *MockProxyBillRepository) SaveWithLock(ctx context.Context, proxy *billing.ProxyBill) error {
	args := m.Called(ctx, proxy)
	return args.Error(0)
}

func (m *MockProxyBillRepository) SumActiveByParent(ctx context.Context, tenantID, parentBillID uuid.UUID) (valueobject.Money, error) {
	args := m.Called(ctx, tenantID, parentBillID)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockProxyBillRepository) SumActiveByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, asOf *time.Time) (valueobject.Money, error) {
	args := m.Called(ctx, tenantID, vendorID, asOf)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockProxyBillRepository) SumActiveForParentVendor(ctx context.Context, tenantID, parentVendorID uuid.UUID, asOf *time.Time) (valueobject.Money, error) {
	args := m.Called(ctx, tenantID, parentVendorID, asOf)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockProxyBillRepository) ExistsActiveByParent(ctx context.Context, tenantID, parentBillID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, parentBillID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProxyBillRepository) ExistsByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, vendorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProxyBillRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, proxyNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, proxyNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockProxyBillRepository) GenerateProxyNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// MockCreditEntryRepository is a mock implementation of credit.CreditEntryRepository
type MockCreditEntryRepository struct {
	mock.Mock
}

func (m *MockCreditEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*credit.CreditEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.CreditEntry), args.Error(1)
}

func (m *MockCreditEntryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*credit.CreditEntry, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credit.CreditEntry), args.Error(1)
}

func (m *MockCreditEntryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]credit.CreditEntry, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]credit.CreditEntry), args.Error(1)
}

func (m *MockCreditEntryRepository) FindByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, filter shared.Filter) ([]credit.CreditEntry, error) {
	args := m.Called(ctx, tenantID, vendorID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]credit.CreditEntry), args.Error(1)
}

func (m *MockCreditEntryRepository) FindByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]credit.CreditEntry, error) {
	args := m.Called(ctx, tenantID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]credit.CreditEntry), args.Error(1)
}

func (m *MockCreditEntryRepository) FindByProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID) ([]credit.CreditEntry, error) {
	args := m.Called(ctx, tenantID, proxyBillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]credit.CreditEntry), args.Error(1)
}

func (m *MockCreditEntryRepository) Append(ctx context.Context, entry *credit.CreditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCreditEntryRepository) SumByVendor(ctx context.Context, tenantID, vendorID uuid.UUID, direction credit.Direction, asOf *time.Time) (valueobject.Money, error) {
	args := m.Called(ctx, tenantID, vendorID, direction, asOf)
	return args.Get(0).(valueobject.Money), args.Error(1)
}

func (m *MockCreditEntryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditEntryRepository) ExistsByBill(ctx context.Context, tenantID, billID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, billID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCreditEntryRepository) ExistsByProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, proxyBillID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCreditEntryRepository) ExistsByVendor(ctx context.Context, tenantID, vendorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, vendorID)
	return args.Bool(0), args.Error(1)
}
