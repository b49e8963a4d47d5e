package billing

import (
	"context"
	"testing"
	"time"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/partner"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type billServiceFixture struct {
	svc        *BillService
	billRepo   *MockBillRepository
	proxyRepo  *MockProxyBillRepository
	creditRepo *MockCreditEntryRepository
	vendorRepo *MockVendorRepository
}

func newBillServiceFixture() *billServiceFixture {
	billRepo := new(MockBillRepository)
	proxyRepo := new(MockProxyBillRepository)
	creditRepo := new(MockCreditEntryRepository)
	vendorRepo := new(MockVendorRepository)
	txScope := NewNoOpTransactionScope(billRepo, proxyRepo, creditRepo)

	return &billServiceFixture{
		svc:        NewBillService(txScope, billRepo, proxyRepo, creditRepo, vendorRepo),
		billRepo:   billRepo,
		proxyRepo:  proxyRepo,
		creditRepo: creditRepo,
		vendorRepo: vendorRepo,
	}
}

func activeVendor(t *testing.T, tenantID uuid.UUID) *partner.Vendor {
	vendor, err := partner.NewVendor(tenantID, "Patil Agencies", partner.VendorTypeCustomer, valueobject.ZeroINR())
	require.NoError(t, err)
	return vendor
}

func draftBill(t *testing.T, tenantID, vendorID uuid.UUID) *billing.Bill {
	item, err := billing.NewBillItem("Rice bags 25kg", decimal.NewFromInt(2), valueobject.NewMoneyINRFromFloat(100))
	require.NoError(t, err)
	bill, err := billing.NewBill(tenantID, vendorID, "BILL-20260829-00001", time.Now(), billing.BillTypeNormal, []*billing.BillItem{item}, valueobject.ZeroINR())
	require.NoError(t, err)
	return bill
}

func confirmedBill(t *testing.T, tenantID, vendorID uuid.UUID) *billing.Bill {
	bill := draftBill(t, tenantID, vendorID)
	require.NoError(t, bill.Authorize(uuid.New()))
	return bill
}

func TestBillService_Create(t *testing.T) {
	t.Run("creates draft bill with generated number", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		vendor := activeVendor(t, tenantID)

		f.vendorRepo.On("FindByIDForTenant", mock.Anything, tenantID, vendor.ID).Return(vendor, nil)
		f.billRepo.On("GenerateBillNumber", mock.Anything, tenantID).Return("BILL-20260829-00007", nil)
		f.billRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Bill")).Return(nil)

		resp, err := f.svc.Create(context.Background(), tenantID, uuid.New(), CreateBillRequest{
			VendorID: vendor.ID,
			BillDate: time.Now(),
			BillType: "NORMAL",
			Items: []BillItemInput{
				{Description: "Rice bags 25kg", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "BILL-20260829-00007", resp.BillNumber)
		assert.Equal(t, "DRAFT", resp.Status)
		assert.False(t, resp.IsAuthorized)
		assert.True(t, decimal.NewFromInt(200).Equal(resp.AmountTotal))
		f.creditRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})

	t.Run("appends credit entry for immediate payment", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		vendor := activeVendor(t, tenantID)

		f.vendorRepo.On("FindByIDForTenant", mock.Anything, tenantID, vendor.ID).Return(vendor, nil)
		f.billRepo.On("GenerateBillNumber", mock.Anything, tenantID).Return("BILL-20260829-00008", nil)
		f.billRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Bill")).Return(nil)
		f.creditRepo.On("Append", mock.Anything, mock.AnythingOfType("*credit.CreditEntry")).Return(nil)

		paid := decimal.NewFromInt(150)
		_, err := f.svc.Create(context.Background(), tenantID, uuid.New(), CreateBillRequest{
			VendorID: vendor.ID,
			BillDate: time.Now(),
			BillType: "NORMAL",
			Items: []BillItemInput{
				{Description: "Rice bags 25kg", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
			},
			PaidAmount:    &paid,
			PaymentMethod: "UPI",
		})

		require.NoError(t, err)
		f.creditRepo.AssertExpectations(t)
	})

	t.Run("rejects inactive vendor", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		vendor := activeVendor(t, tenantID)
		require.NoError(t, vendor.Deactivate())

		f.vendorRepo.On("FindByIDForTenant", mock.Anything, tenantID, vendor.ID).Return(vendor, nil)

		_, err := f.svc.Create(context.Background(), tenantID, uuid.New(), CreateBillRequest{
			VendorID: vendor.ID,
			BillDate: time.Now(),
			BillType: "NORMAL",
			Items: []BillItemInput{
				{Description: "Rice bags 25kg", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("rejects duplicate bill number", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		vendor := activeVendor(t, tenantID)

		f.vendorRepo.On("FindByIDForTenant", mock.Anything, tenantID, vendor.ID).Return(vendor, nil)
		f.billRepo.On("ExistsByNumber", mock.Anything, tenantID, "BILL-X").Return(true, nil)

		_, err := f.svc.Create(context.Background(), tenantID, uuid.New(), CreateBillRequest{
			VendorID:   vendor.ID,
			BillNumber: "BILL-X",
			BillDate:   time.Now(),
			BillType:   "NORMAL",
			Items: []BillItemInput{
				{Description: "Rice bags 25kg", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
			},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestBillService_Authorize(t *testing.T) {
	t.Run("authorizes draft bill", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		userID := uuid.New()
		bill := draftBill(t, tenantID, uuid.New())

		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		f.billRepo.On("SaveWithLock", mock.Anything, bill).Return(nil)

		resp, err := f.svc.Authorize(context.Background(), tenantID, bill.ID, userID)

		require.NoError(t, err)
		assert.Equal(t, "CONFIRMED", resp.Status)
		assert.True(t, resp.IsAuthorized)
		assert.Equal(t, userID, *resp.AuthorizedBy)
	})

	t.Run("second authorization fails", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		bill := confirmedBill(t, tenantID, uuid.New())
		originalAuthorizer := *bill.AuthorizedBy

		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)

		_, err := f.svc.Authorize(context.Background(), tenantID, bill.ID, uuid.New())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		assert.Equal(t, originalAuthorizer, *bill.AuthorizedBy)
		f.billRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("propagates version conflict", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		bill := draftBill(t, tenantID, uuid.New())

		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		f.billRepo.On("SaveWithLock", mock.Anything, bill).Return(shared.ErrConcurrencyConflict)

		_, err := f.svc.Authorize(context.Background(), tenantID, bill.ID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestBillService_Cancel(t *testing.T) {
	t.Run("cancels bill without dependents", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		bill := confirmedBill(t, tenantID, uuid.New())

		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		f.proxyRepo.On("ExistsActiveByParent", mock.Anything, tenantID, bill.ID).Return(false, nil)
		f.creditRepo.On("ExistsByBill", mock.Anything, tenantID, bill.ID).Return(false, nil)
		f.billRepo.On("SaveWithLock", mock.Anything, bill).Return(nil)

		resp, err := f.svc.Cancel(context.Background(), tenantID, bill.ID)

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
	})

	t.Run("refuses cancel with active proxy bills", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		bill := confirmedBill(t, tenantID, uuid.New())

		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		f.proxyRepo.On("ExistsActiveByParent", mock.Anything, tenantID, bill.ID).Return(true, nil)

		_, err := f.svc.Cancel(context.Background(), tenantID, bill.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		assert.Equal(t, billing.BillStatusConfirmed, bill.Status)
		f.billRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("refuses cancel with credit entries", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		bill := confirmedBill(t, tenantID, uuid.New())

		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		f.proxyRepo.On("ExistsActiveByParent", mock.Anything, tenantID, bill.ID).Return(false, nil)
		f.creditRepo.On("ExistsByBill", mock.Anything, tenantID, bill.ID).Return(true, nil)

		_, err := f.svc.Cancel(context.Background(), tenantID, bill.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})
}

func TestBillService_Delete(t *testing.T) {
	t.Run("refuses delete with active proxy bills", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		bill := confirmedBill(t, tenantID, uuid.New())

		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		f.proxyRepo.On("ExistsActiveByParent", mock.Anything, tenantID, bill.ID).Return(true, nil)

		err := f.svc.Delete(context.Background(), tenantID, bill.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
		f.billRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deletes bill without active proxies", func(t *testing.T) {
		f := newBillServiceFixture()
		tenantID := uuid.New()
		bill := draftBill(t, tenantID, uuid.New())

		f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
		f.proxyRepo.On("ExistsActiveByParent", mock.Anything, tenantID, bill.ID).Return(false, nil)
		f.billRepo.On("Delete", mock.Anything, tenantID, bill.ID).Return(nil)

		require.NoError(t, f.svc.Delete(context.Background(), tenantID, bill.ID))
		f.billRepo.AssertExpectations(t)
	})
}

func TestBillService_RemainingCapacity(t *testing.T) {
	f := newBillServiceFixture()
	tenantID := uuid.New()
	bill := confirmedBill(t, tenantID, uuid.New())

	f.billRepo.On("FindByIDForTenant", mock.Anything, tenantID, bill.ID).Return(bill, nil)
	f.proxyRepo.On("SumActiveByParent", mock.Anything, tenantID, bill.ID).Return(valueobject.NewMoneyINRFromFloat(150), nil)

	remaining, err := f.svc.RemainingCapacity(context.Background(), tenantID, bill.ID)

	require.NoError(t, err)
	assert.Equal(t, "50.00", remaining.StringFixed(2))
}
