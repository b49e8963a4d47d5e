package billing

import (
	"context"
	"testing"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type proxyServiceFixture struct {
	svc        *ProxyBillService
	billRepo   *MockBillRepository
	proxyRepo  *MockProxyBillRepository
	creditRepo *MockCreditEntryRepository
	vendorRepo *MockVendorRepository
}

func newProxyServiceFixture() *proxyServiceFixture {
	billRepo := new(MockBillRepository)
	proxyRepo := new(MockProxyBillRepository)
	creditRepo := new(MockCreditEntryRepository)
	vendorRepo := new(MockVendorRepository)
	txScope := NewNoOpTransactionScope(billRepo, proxyRepo, creditRepo)

	return &proxyServiceFixture{
		svc:        NewProxyBillService(txScope, billRepo, proxyRepo, vendorRepo),
		billRepo:   billRepo,
		proxyRepo:  proxyRepo,
		creditRepo: creditRepo,
		vendorRepo: vendorRepo,
	}
}

func splitItems(qty, price int64) []BillItemInput {
	return []BillItemInput{
		{Description: "Rice bags 25kg", Quantity: decimal.NewFromInt(qty), UnitPrice: decimal.NewFromInt(price)},
	}
}

func activeProxy(t *testing.T, tenantID, parentID, vendorID uuid.UUID) *billing.ProxyBill {
	item, err := billing.NewProxyBillItem("Rice bags 25kg", decimal.NewFromInt(1), valueobject.NewMoneyINRFromFloat(150))
	require.NoError(t, err)
	proxy, err := billing.NewProxyBill(tenantID, parentID, vendorID, "PRX-20260829-00001", []*billing.ProxyBillItem{item})
	require.NoError(t, err)
	return proxy
}

func TestProxyBillService_Create(t *testing.T) {
	t.Run("splits within capacity", func(t *testing.T) {
		f := newProxyServiceFixture()
		tenantID := uuid.New()
		vendorID := uuid.New()
		parent := confirmedBill(t, tenantID, uuid.New())

		f.vendorRepo.On("ExistsForTenant", mock.Anything, tenantID, vendorID).Return(true, nil)
		f.proxyRepo.On("GenerateProxyNumber", mock.Anything, tenantID).Return("PRX-20260829-00002", nil)
		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, parent.ID).Return(parent, nil)
		f.proxyRepo.On("SumActiveByParent", mock.Anything, tenantID, parent.ID).Return(valueobject.ZeroINR(), nil)
		f.proxyRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.ProxyBill")).Return(nil)
		f.billRepo.On("SaveWithLock", mock.Anything, parent).Return(nil)

		resp, err := f.svc.Create(context.Background(), tenantID, uuid.New(), CreateProxyBillRequest{
			ParentBillID: parent.ID,
			VendorID:     vendorID,
			Items:        splitItems(1, 150),
		})

		require.NoError(t, err)
		assert.Equal(t, parent.ID, resp.ParentBillID)
		assert.True(t, decimal.NewFromInt(150).Equal(resp.AmountTotal))
		f.billRepo.AssertExpectations(t)
	})

	t.Run("rejects split over remaining capacity", func(t *testing.T) {
		f := newProxyServiceFixture()
		tenantID := uuid.New()
		vendorID := uuid.New()
		parent := confirmedBill(t, tenantID, uuid.New()) // total 200

		f.vendorRepo.On("ExistsForTenant", mock.Anything, tenantID, vendorID).Return(true, nil)
		f.proxyRepo.On("GenerateProxyNumber", mock.Anything, tenantID).Return("PRX-20260829-00003", nil)
		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, parent.ID).Return(parent, nil)
		f.proxyRepo.On("SumActiveByParent", mock.Anything, tenantID, parent.ID).Return(valueobject.NewMoneyINRFromFloat(150), nil)

		_, err := f.svc.Create(context.Background(), tenantID, uuid.New(), CreateProxyBillRequest{
			ParentBillID: parent.ID,
			VendorID:     vendorID,
			Items:        splitItems(1, 60), // 150+60 > 200
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CAPACITY_EXCEEDED", domainErr.Code)
		f.proxyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("allows split exactly at capacity", func(t *testing.T) {
		f := newProxyServiceFixture()
		tenantID := uuid.New()
		vendorID := uuid.New()
		parent := confirmedBill(t, tenantID, uuid.New()) // total 200

		f.vendorRepo.On("ExistsForTenant", mock.Anything, tenantID, vendorID).Return(true, nil)
		f.proxyRepo.On("GenerateProxyNumber", mock.Anything, tenantID).Return("PRX-20260829-00004", nil)
		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, parent.ID).Return(parent, nil)
		f.proxyRepo.On("SumActiveByParent", mock.Anything, tenantID, parent.ID).Return(valueobject.NewMoneyINRFromFloat(150), nil)
		f.proxyRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.ProxyBill")).Return(nil)
		f.billRepo.On("SaveWithLock", mock.Anything, parent).Return(nil)

		resp, err := f.svc.Create(context.Background(), tenantID, uuid.New(), CreateProxyBillRequest{
			ParentBillID: parent.ID,
			VendorID:     vendorID,
			Items:        splitItems(1, 50), // 150+50 == 200
		})

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(50).Equal(resp.AmountTotal))
	})

	t.Run("rejects draft parent", func(t *testing.T) {
		f := newProxyServiceFixture()
		tenantID := uuid.New()
		vendorID := uuid.New()
		parent := draftBill(t, tenantID, uuid.New())

		f.vendorRepo.On("ExistsForTenant", mock.Anything, tenantID, vendorID).Return(true, nil)
		f.proxyRepo.On("GenerateProxyNumber", mock.Anything, tenantID).Return("PRX-20260829-00005", nil)
		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, parent.ID).Return(parent, nil)

		_, err := f.svc.Create(context.Background(), tenantID, uuid.New(), CreateProxyBillRequest{
			ParentBillID: parent.ID,
			VendorID:     vendorID,
			Items:        splitItems(1, 50),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("rejects unknown vendor", func(t *testing.T) {
		f := newProxyServiceFixture()
		tenantID := uuid.New()
		vendorID := uuid.New()

		f.vendorRepo.On("ExistsForTenant", mock.Anything, tenantID, vendorID).Return(false, nil)

		_, err := f.svc.Create(context.Background(), tenantID, uuid.New(), CreateProxyBillRequest{
			ParentBillID: uuid.New(),
			VendorID:     vendorID,
			Items:        splitItems(1, 50),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("propagates parent version conflict", func(t *testing.T) {
		f := newProxyServiceFixture()
		tenantID := uuid.New()
		vendorID := uuid.New()
		parent := confirmedBill(t, tenantID, uuid.New())

		f.vendorRepo.On("ExistsForTenant", mock.Anything, tenantID, vendorID).Return(true, nil)
		f.proxyRepo.On("GenerateProxyNumber", mock.Anything, tenantID).Return("PRX-20260829-00006", nil)
		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, parent.ID).Return(parent, nil)
		f.proxyRepo.On("SumActiveByParent", mock.Anything, tenantID, parent.ID).Return(valueobject.ZeroINR(), nil)
		f.proxyRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.ProxyBill")).Return(nil)
		f.billRepo.On("SaveWithLock", mock.Anything, parent).Return(shared.ErrConcurrencyConflict)

		_, err := f.svc.Create(context.Background(), tenantID, uuid.New(), CreateProxyBillRequest{
			ParentBillID: parent.ID,
			VendorID:     vendorID,
			Items:        splitItems(1, 50),
		})

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestProxyBillService_CreateSplits(t *testing.T) {
	t.Run("creates all splits in one transaction", func(t *testing.T) {
		f := newProxyServiceFixture()
		tenantID := uuid.New()
		vendorA := uuid.New()
		vendorB := uuid.New()
		parent := confirmedBill(t, tenantID, uuid.New()) // total 200

		f.vendorRepo.On("ExistsForTenant", mock.Anything, tenantID, vendorA).Return(true, nil)
		f.vendorRepo.On("ExistsForTenant", mock.Anything, tenantID, vendorB).Return(true, nil)
		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, parent.ID).Return(parent, nil)
		f.proxyRepo.On("GenerateProxyNumber", mock.Anything, tenantID).Return("PRX-20260829-00007", nil).Once()
		f.proxyRepo.On("GenerateProxyNumber", mock.Anything, tenantID).Return("PRX-20260829-00008", nil).Once()
		f.proxyRepo.On("SumActiveByParent", mock.Anything, tenantID, parent.ID).Return(valueobject.ZeroINR(), nil).Once()
		f.proxyRepo.On("SumActiveByParent", mock.Anything, tenantID, parent.ID).Return(valueobject.NewMoneyINRFromFloat(120), nil).Once()
		f.proxyRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.ProxyBill")).Return(nil)
		f.billRepo.On("SaveWithLock", mock.Anything, parent).Return(nil)

		resps, err := f.svc.CreateSplits(context.Background(), tenantID, uuid.New(), CreateProxySplitsRequest{
			ParentBillID: parent.ID,
			Splits: []ProxySplitInput{
				{VendorID: vendorA, Items: splitItems(1, 120)},
				{VendorID: vendorB, Items: splitItems(1, 80)},
			},
		})

		require.NoError(t, err)
		require.Len(t, resps, 2)
		assert.Equal(t, "PRX-20260829-00007", resps[0].ProxyNumber)
		assert.Equal(t, "PRX-20260829-00008", resps[1].ProxyNumber)
	})

	t.Run("rejects batch that would overshoot jointly", func(t *testing.T) {
		f := newProxyServiceFixture()
		tenantID := uuid.New()
		vendorA := uuid.New()
		vendorB := uuid.New()
		parent := confirmedBill(t, tenantID, uuid.New()) // total 200

		f.vendorRepo.On("ExistsForTenant", mock.Anything, tenantID, vendorA).Return(true, nil)
		f.vendorRepo.On("ExistsForTenant", mock.Anything, tenantID, vendorB).Return(true, nil)
		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, parent.ID).Return(parent, nil)
		f.proxyRepo.On("GenerateProxyNumber", mock.Anything, tenantID).Return("PRX-20260829-00009", nil).Once()
		f.proxyRepo.On("GenerateProxyNumber", mock.Anything, tenantID).Return("PRX-20260829-00010", nil).Once()
		f.proxyRepo.On("SumActiveByParent", mock.Anything, tenantID, parent.ID).Return(valueobject.ZeroINR(), nil).Once()
		f.proxyRepo.On("SumActiveByParent", mock.Anything, tenantID, parent.ID).Return(valueobject.NewMoneyINRFromFloat(150), nil).Once()
		f.proxyRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.ProxyBill")).Return(nil)
		f.billRepo.On("SaveWithLock", mock.Anything, parent).Return(nil)

		_, err := f.svc.CreateSplits(context.Background(), tenantID, uuid.New(), CreateProxySplitsRequest{
			ParentBillID: parent.ID,
			Splits: []ProxySplitInput{
				{VendorID: vendorA, Items: splitItems(1, 150)},
				{VendorID: vendorB, Items: splitItems(1, 60)}, // 150+60 > 200
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CAPACITY_EXCEEDED", domainErr.Code)
	})
}

func TestProxyBillService_Cancel(t *testing.T) {
	t.Run("cancels proxy without credit entries", func(t *testing.T) {
		f := newProxyServiceFixture()
		tenantID := uuid.New()
		proxy := activeProxy(t, tenantID, uuid.New(), uuid.New())

		f.proxyRepo.On("FindByIDForTenant", mock.Anything, tenantID, proxy.ID).Return(proxy, nil)
		f.creditRepo.On("ExistsByProxyBill", mock.Anything, tenantID, proxy.ID).Return(false, nil)
		f.proxyRepo.On("SaveWithLock", mock.Anything, proxy).Return(nil)

		resp, err := f.svc.Cancel(context.Background(), tenantID, proxy.ID)

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
	})

	t.Run("refuses cancel with credit entries", func(t *testing.T) {
		f := newProxyServiceFixture()
		tenantID := uuid.New()
		proxy := activeProxy(t, tenantID, uuid.New(), uuid.New())

		f.proxyRepo.On("FindByIDForTenant", mock.Anything, tenantID, proxy.ID).Return(proxy, nil)
		f.creditRepo.On("ExistsByProxyBill", mock.Anything, tenantID, proxy.ID).Return(true, nil)

		_, err := f.svc.Cancel(context.Background(), tenantID, proxy.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.True(t, proxy.IsActive())
	})
}
