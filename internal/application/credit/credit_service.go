package credit

import (
	"context"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/credit"
	"github.com/billcore/backend/internal/domain/partner"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/billcore/backend/internal/infrastructure/logger"
	"github.com/billcore/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreditService records and queries the append-only payment ledger.
// Entries are never updated or deleted; corrections are new entries with
// the opposite direction.
type CreditService struct {
	creditRepo      credit.CreditEntryRepository
	vendorRepo      partner.VendorRepository
	billRepo        billing.BillRepository
	proxyRepo       billing.ProxyBillRepository
	idempotency     shared.IdempotencyStore
	idemConfig      shared.IdempotencyConfig
	businessMetrics *telemetry.BusinessMetrics
}

// NewCreditService creates a new CreditService
func NewCreditService(
	creditRepo credit.CreditEntryRepository,
	vendorRepo partner.VendorRepository,
	billRepo billing.BillRepository,
	proxyRepo billing.ProxyBillRepository,
	idempotency shared.IdempotencyStore,
) *CreditService {
	return &CreditService{
		creditRepo:  creditRepo,
		vendorRepo:  vendorRepo,
		billRepo:    billRepo,
		proxyRepo:   proxyRepo,
		idempotency: idempotency,
		idemConfig:  shared.DefaultIdempotencyConfig(),
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *CreditService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// RecordPayment appends a credit entry. When the entry references a bill or
// proxy bill, the reference must exist in the same tenant and carry the same
// vendor as the entry. A non-empty idempotencyKey makes replayed submissions
// no-ops: the second call fails instead of appending a duplicate entry.
func (s *CreditService) RecordPayment(ctx context.Context, tenantID, userID uuid.UUID, idempotencyKey string, req RecordPaymentRequest) (*CreditEntryResponse, error) {
	exists, err := s.vendorRepo.ExistsForTenant(ctx, tenantID, req.VendorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Vendor not found")
	}

	if req.BillID != nil && req.ProxyBillID != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Entry may reference a bill or a proxy bill, not both")
	}

	if req.BillID != nil {
		bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, *req.BillID)
		if err != nil {
			return nil, err
		}
		if bill.VendorID != req.VendorID {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Referenced bill belongs to a different vendor")
		}
	}

	if req.ProxyBillID != nil {
		proxy, err := s.proxyRepo.FindByIDForTenant(ctx, tenantID, *req.ProxyBillID)
		if err != nil {
			return nil, err
		}
		if proxy.VendorID != req.VendorID {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Referenced proxy bill belongs to a different vendor")
		}
	}

	entry, err := credit.NewCreditEntry(
		tenantID,
		req.VendorID,
		valueobject.NewMoneyINR(req.Amount),
		credit.Direction(req.Direction),
		credit.PaymentMethod(req.Method),
		req.PaymentDate,
		req.BillID,
		req.ProxyBillID,
	)
	if err != nil {
		return nil, err
	}
	entry.SetCreatedBy(userID)

	if req.ReferenceNumber != "" || req.Notes != "" {
		if err := entry.SetReference(req.ReferenceNumber, req.Notes); err != nil {
			return nil, err
		}
	}

	idemKey := ""
	if idempotencyKey != "" && s.idempotency != nil && s.idemConfig.Enabled {
		idemKey = "credit:" + tenantID.String() + ":" + idempotencyKey
		fresh, err := s.idempotency.MarkProcessed(ctx, idemKey, s.idemConfig.TTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Payment with this idempotency key was already recorded")
		}
	}

	if err := s.creditRepo.Append(ctx, entry); err != nil {
		// The entry was never written, so release the key and let the
		// client retry with the same one.
		if idemKey != "" {
			if unmarkErr := s.idempotency.Unmark(ctx, idemKey); unmarkErr != nil {
				logger.L(ctx).Warn("Failed to release idempotency key after append failure",
					zap.String("key", idemKey), zap.Error(unmarkErr))
			}
		}
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordCreditEntry(ctx, tenantID, string(entry.Direction), string(entry.Method))
	}

	response := ToCreditEntryResponse(entry)
	return &response, nil
}

// GetByID retrieves a credit entry by ID
func (s *CreditService) GetByID(ctx context.Context, tenantID, entryID uuid.UUID) (*CreditEntryResponse, error) {
	entry, err := s.creditRepo.FindByIDForTenant(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	response := ToCreditEntryResponse(entry)
	return &response, nil
}

// List retrieves a list of credit entries with filtering and pagination
func (s *CreditService) List(ctx context.Context, tenantID uuid.UUID, filter CreditEntryListFilter) ([]CreditEntryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "payment_date"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
		Filters:  make(map[string]any),
	}
	if filter.VendorID != nil {
		domainFilter.Filters["vendor_id"] = *filter.VendorID
	}
	if filter.Direction != "" {
		domainFilter.Filters["direction"] = filter.Direction
	}
	if filter.Method != "" {
		domainFilter.Filters["method"] = filter.Method
	}

	entries, err := s.creditRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.creditRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCreditEntryResponses(entries), total, nil
}

// ListByBill retrieves the credit entries referencing a bill
func (s *CreditService) ListByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]CreditEntryResponse, error) {
	if _, err := s.billRepo.FindByIDForTenant(ctx, tenantID, billID); err != nil {
		return nil, err
	}

	entries, err := s.creditRepo.FindByBill(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	return ToCreditEntryResponses(entries), nil
}

// ListByProxyBill retrieves the credit entries referencing a proxy bill
func (s *CreditService) ListByProxyBill(ctx context.Context, tenantID, proxyBillID uuid.UUID) ([]CreditEntryResponse, error) {
	if _, err := s.proxyRepo.FindByIDForTenant(ctx, tenantID, proxyBillID); err != nil {
		return nil, err
	}

	entries, err := s.creditRepo.FindByProxyBill(ctx, tenantID, proxyBillID)
	if err != nil {
		return nil, err
	}

	return ToCreditEntryResponses(entries), nil
}
