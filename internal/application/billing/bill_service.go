package billing

import (
	"context"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/credit"
	"github.com/billcore/backend/internal/domain/partner"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/billcore/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// BillService handles bill lifecycle operations
type BillService struct {
	txScope         TransactionScope
	billRepo        billing.BillRepository
	proxyRepo       billing.ProxyBillRepository
	creditRepo      credit.CreditEntryRepository
	vendorRepo      partner.VendorRepository
	businessMetrics *telemetry.BusinessMetrics
}

// NewBillService creates a new BillService
func NewBillService(
	txScope TransactionScope,
	billRepo billing.BillRepository,
	proxyRepo billing.ProxyBillRepository,
	creditRepo credit.CreditEntryRepository,
	vendorRepo partner.VendorRepository,
) *BillService {
	return &BillService{
		txScope:    txScope,
		billRepo:   billRepo,
		proxyRepo:  proxyRepo,
		creditRepo: creditRepo,
		vendorRepo: vendorRepo,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *BillService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

func buildBillItems(inputs []BillItemInput) ([]*billing.BillItem, error) {
	items := make([]*billing.BillItem, 0, len(inputs))
	for _, in := range inputs {
		item, err := billing.NewBillItem(in.Description, in.Quantity, valueobject.NewMoneyINR(in.UnitPrice))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Create creates a new draft bill with its items. The bill and its items are
// written in one transaction; when an immediate payment is supplied the
// credit entry joins the same transaction, so a validation failure anywhere
// rolls back the whole operation.
func (s *BillService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateBillRequest) (*BillResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, req.VendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot raise a bill against an inactive vendor")
	}

	billNumber := req.BillNumber
	if billNumber == "" {
		billNumber, err = s.billRepo.GenerateBillNumber(ctx, tenantID)
		if err != nil {
			return nil, err
		}
	} else {
		exists, err := s.billRepo.ExistsByNumber(ctx, tenantID, billNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Bill with this number already exists")
		}
	}

	items, err := buildBillItems(req.Items)
	if err != nil {
		return nil, err
	}

	tax := valueobject.ZeroINR()
	if req.Tax != nil {
		tax = valueobject.NewMoneyINR(*req.Tax)
	}

	bill, err := billing.NewBill(tenantID, req.VendorID, billNumber, req.BillDate, billing.BillType(req.BillType), items, tax)
	if err != nil {
		return nil, err
	}
	bill.SetCreatedBy(userID)

	if req.DeliveryDate != nil || req.BilledToName != "" || req.ShippedToName != "" {
		if err := bill.SetDeliveryInfo(req.DeliveryDate, req.BilledToName, req.ShippedToName); err != nil {
			return nil, err
		}
	}

	var payment *credit.CreditEntry
	if req.PaidAmount != nil {
		method := credit.MethodCash
		if req.PaymentMethod != "" {
			method = credit.PaymentMethod(req.PaymentMethod)
		}
		payment, err = credit.NewCreditEntry(
			tenantID,
			req.VendorID,
			valueobject.NewMoneyINR(*req.PaidAmount),
			credit.DirectionIncoming,
			method,
			req.BillDate,
			&bill.ID,
			nil,
		)
		if err != nil {
			return nil, err
		}
		payment.SetCreatedBy(userID)
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.BillRepo().Save(ctx, bill); err != nil {
			return err
		}
		if payment != nil {
			return repos.CreditRepo().Append(ctx, payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordBillWithAmount(ctx, tenantID, string(bill.Type), bill.AmountTotal.Amount())
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// GetByID retrieves a bill by ID
func (s *BillService) GetByID(ctx context.Context, tenantID, billID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// GetByNumber retrieves a bill by its number
func (s *BillService) GetByNumber(ctx context.Context, tenantID uuid.UUID, billNumber string) (*BillResponse, error) {
	bill, err := s.billRepo.FindByNumber(ctx, tenantID, billNumber)
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// List retrieves a list of bills with filtering and pagination
func (s *BillService) List(ctx context.Context, tenantID uuid.UUID, filter BillListFilter) ([]BillResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "bill_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.BillType != "" {
		domainFilter.Filters["bill_type"] = filter.BillType
	}
	if filter.VendorID != nil {
		domainFilter.Filters["vendor_id"] = *filter.VendorID
	}

	bills, err := s.billRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.billRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToBillResponses(bills), total, nil
}

// Update updates a draft bill. Items are replaced wholesale and totals are
// recomputed.
func (s *BillService) Update(ctx context.Context, tenantID, billID uuid.UUID, req UpdateBillRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	if len(req.Items) > 0 {
		items, err := buildBillItems(req.Items)
		if err != nil {
			return nil, err
		}
		tax := bill.AmountTax
		if req.Tax != nil {
			tax = valueobject.NewMoneyINR(*req.Tax)
		}
		if err := bill.ReplaceItems(items, tax); err != nil {
			return nil, err
		}
	} else if req.Tax != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Tax can only be changed together with items")
	}

	if req.DeliveryDate != nil || req.BilledToName != nil || req.ShippedToName != nil {
		deliveryDate := bill.DeliveryDate
		billedTo := bill.BilledToName
		shippedTo := bill.ShippedToName
		if req.DeliveryDate != nil {
			deliveryDate = req.DeliveryDate
		}
		if req.BilledToName != nil {
			billedTo = *req.BilledToName
		}
		if req.ShippedToName != nil {
			shippedTo = *req.ShippedToName
		}
		if err := bill.SetDeliveryInfo(deliveryDate, billedTo, shippedTo); err != nil {
			return nil, err
		}
	}

	if err := s.billRepo.SaveWithLock(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// Authorize confirms a draft bill and freezes its totals. The transition is
// one-way: a second call fails with INVALID_STATE and leaves the original
// authorization record untouched. The version check on save ensures two
// concurrent calls cannot both succeed.
func (s *BillService) Authorize(ctx context.Context, tenantID, billID, userID uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	if err := bill.Authorize(userID); err != nil {
		return nil, err
	}

	if err := s.billRepo.SaveWithLock(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// Cancel cancels a draft or confirmed bill. The cancel is refused while any
// non-cancelled proxy bill or any credit entry still references the bill;
// the dependency check and the status write share one transaction.
func (s *BillService) Cancel(ctx context.Context, tenantID, billID uuid.UUID) (*BillResponse, error) {
	var bill *billing.Bill

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		bill, err = repos.BillRepo().FindByIDForTenant(ctx, tenantID, billID)
		if err != nil {
			return err
		}

		hasProxies, err := repos.ProxyBillRepo().ExistsActiveByParent(ctx, tenantID, billID)
		if err != nil {
			return err
		}
		if hasProxies {
			return shared.NewDomainError("CONFLICT", "Cannot cancel a bill with active proxy bills")
		}

		hasCredits, err := repos.CreditRepo().ExistsByBill(ctx, tenantID, billID)
		if err != nil {
			return err
		}
		if hasCredits {
			return shared.NewDomainError("CONFLICT", "Cannot cancel a bill with credit entries")
		}

		if err := bill.Cancel(); err != nil {
			return err
		}

		return repos.BillRepo().SaveWithLock(ctx, bill)
	})
	if err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// Delete hard-deletes a bill and its items. Credit entries referencing the
// bill survive with the reference nulled. Deletion is refused while active
// proxy bills still derive from the bill.
func (s *BillService) Delete(ctx context.Context, tenantID, billID uuid.UUID) error {
	if _, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID); err != nil {
		return err
	}

	hasProxies, err := s.proxyRepo.ExistsActiveByParent(ctx, tenantID, billID)
	if err != nil {
		return err
	}
	if hasProxies {
		return shared.NewDomainError("CONFLICT", "Cannot delete a bill with active proxy bills")
	}

	return s.billRepo.Delete(ctx, tenantID, billID)
}

// AttachImage records the stored image of a draft bill, with any text the
// OCR collaborator extracted from it.
func (s *BillService) AttachImage(ctx context.Context, tenantID, billID uuid.UUID, req AttachBillImageRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	if err := bill.AttachImage(req.ObjectKey); err != nil {
		return nil, err
	}
	if req.OCRText != "" {
		bill.SetOCRText(req.OCRText)
	}

	if err := s.billRepo.SaveWithLock(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// RemainingCapacity returns how much of a confirmed bill's total is still
// available for proxy splits as of now.
func (s *BillService) RemainingCapacity(ctx context.Context, tenantID, billID uuid.UUID) (valueobject.Money, error) {
	bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID)
	if err != nil {
		return valueobject.ZeroINR(), err
	}

	split, err := s.proxyRepo.SumActiveByParent(ctx, tenantID, billID)
	if err != nil {
		return valueobject.ZeroINR(), err
	}

	return bill.AmountTotal.Subtract(split)
}
