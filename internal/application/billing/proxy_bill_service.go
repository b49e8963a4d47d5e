package billing

import (
	"context"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/partner"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/billcore/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// ProxyBillService handles proxy bill splitting operations
type ProxyBillService struct {
	txScope         TransactionScope
	billRepo        billing.BillRepository
	proxyRepo       billing.ProxyBillRepository
	vendorRepo      partner.VendorRepository
	businessMetrics *telemetry.BusinessMetrics
}

// NewProxyBillService creates a new ProxyBillService
func NewProxyBillService(
	txScope TransactionScope,
	billRepo billing.BillRepository,
	proxyRepo billing.ProxyBillRepository,
	vendorRepo partner.VendorRepository,
) *ProxyBillService {
	return &ProxyBillService{
		txScope:    txScope,
		billRepo:   billRepo,
		proxyRepo:  proxyRepo,
		vendorRepo: vendorRepo,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *ProxyBillService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

func buildProxyItems(inputs []BillItemInput) ([]*billing.ProxyBillItem, error) {
	items := make([]*billing.ProxyBillItem, 0, len(inputs))
	for _, in := range inputs {
		item, err := billing.NewProxyBillItem(in.Description, in.Quantity, valueobject.NewMoneyINR(in.UnitPrice))
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// createInTx validates the parent state and the split ceiling and writes the
// proxy bill. The parent is saved through its version lock even though only
// its version moves: a concurrent split against the same parent then fails
// the version check instead of both passing the capacity read.
func (s *ProxyBillService) createInTx(ctx context.Context, repos TransactionalRepositories, tenantID, userID uuid.UUID, parent *billing.Bill, vendorID uuid.UUID, proxyNumber string, items []*billing.ProxyBillItem) (*billing.ProxyBill, error) {
	if !parent.IsConfirmed() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only confirmed bills can be split")
	}

	proxy, err := billing.NewProxyBill(tenantID, parent.ID, vendorID, proxyNumber, items)
	if err != nil {
		return nil, err
	}
	proxy.SetCreatedBy(userID)

	split, err := repos.ProxyBillRepo().SumActiveByParent(ctx, tenantID, parent.ID)
	if err != nil {
		return nil, err
	}
	newTotal, err := split.Add(proxy.AmountTotal)
	if err != nil {
		return nil, err
	}
	over, err := newTotal.GreaterThan(parent.AmountTotal)
	if err != nil {
		return nil, err
	}
	if over {
		return nil, shared.NewDomainError("CAPACITY_EXCEEDED", "Split total exceeds parent bill capacity")
	}

	if err := repos.ProxyBillRepo().Save(ctx, proxy); err != nil {
		return nil, err
	}

	parent.IncrementVersion()
	if err := repos.BillRepo().SaveWithLock(ctx, parent); err != nil {
		return nil, err
	}

	return proxy, nil
}

// Create splits a new proxy bill off a confirmed parent bill
func (s *ProxyBillService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateProxyBillRequest) (*ProxyBillResponse, error) {
	exists, err := s.vendorRepo.ExistsForTenant(ctx, tenantID, req.VendorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("NOT_FOUND", "Vendor not found")
	}

	proxyNumber := req.ProxyNumber
	if proxyNumber == "" {
		proxyNumber, err = s.proxyRepo.GenerateProxyNumber(ctx, tenantID)
		if err != nil {
			return nil, err
		}
	} else {
		taken, err := s.proxyRepo.ExistsByNumber(ctx, tenantID, proxyNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Proxy bill with this number already exists")
		}
	}

	items, err := buildProxyItems(req.Items)
	if err != nil {
		return nil, err
	}

	var proxy *billing.ProxyBill
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		parent, err := repos.BillRepo().FindByIDForTenant(ctx, tenantID, req.ParentBillID)
		if err != nil {
			return err
		}

		proxy, err = s.createInTx(ctx, repos, tenantID, userID, parent, req.VendorID, proxyNumber, items)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.businessMetrics != nil {
		s.businessMetrics.RecordProxyBillCreated(ctx, tenantID)
	}

	response := ToProxyBillResponse(proxy)
	return &response, nil
}

// CreateSplits splits a parent bill into several proxy bills in one
// transaction. If any split fails validation or the combined total would
// exceed the parent's capacity, none are created.
func (s *ProxyBillService) CreateSplits(ctx context.Context, tenantID, userID uuid.UUID, req CreateProxySplitsRequest) ([]ProxyBillResponse, error) {
	for _, split := range req.Splits {
		exists, err := s.vendorRepo.ExistsForTenant(ctx, tenantID, split.VendorID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, shared.NewDomainError("NOT_FOUND", "Vendor not found")
		}
	}

	var proxies []*billing.ProxyBill
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		parent, err := repos.BillRepo().FindByIDForTenant(ctx, tenantID, req.ParentBillID)
		if err != nil {
			return err
		}

		proxies = proxies[:0]
		for _, split := range req.Splits {
			proxyNumber := split.ProxyNumber
			if proxyNumber == "" {
				proxyNumber, err = repos.ProxyBillRepo().GenerateProxyNumber(ctx, tenantID)
				if err != nil {
					return err
				}
			}

			items, err := buildProxyItems(split.Items)
			if err != nil {
				return err
			}

			proxy, err := s.createInTx(ctx, repos, tenantID, userID, parent, split.VendorID, proxyNumber, items)
			if err != nil {
				return err
			}
			proxies = append(proxies, proxy)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.businessMetrics != nil {
		for range proxies {
			s.businessMetrics.RecordProxyBillCreated(ctx, tenantID)
		}
	}

	responses := make([]ProxyBillResponse, len(proxies))
	for i, proxy := range proxies {
		responses[i] = ToProxyBillResponse(proxy)
	}
	return responses, nil
}

// GetByID retrieves a proxy bill by ID
func (s *ProxyBillService) GetByID(ctx context.Context, tenantID, proxyID uuid.UUID) (*ProxyBillResponse, error) {
	proxy, err := s.proxyRepo.FindByIDForTenant(ctx, tenantID, proxyID)
	if err != nil {
		return nil, err
	}

	response := ToProxyBillResponse(proxy)
	return &response, nil
}

// ListByParent retrieves all proxy bills of a parent bill in insertion order
func (s *ProxyBillService) ListByParent(ctx context.Context, tenantID, parentBillID uuid.UUID) ([]ProxyBillResponse, error) {
	if _, err := s.billRepo.FindByIDForTenant(ctx, tenantID, parentBillID); err != nil {
		return nil, err
	}

	proxies, err := s.proxyRepo.FindByParent(ctx, tenantID, parentBillID)
	if err != nil {
		return nil, err
	}

	return ToProxyBillResponses(proxies), nil
}

// List retrieves a list of proxy bills with filtering and pagination
func (s *ProxyBillService) List(ctx context.Context, tenantID uuid.UUID, filter ProxyBillListFilter) ([]ProxyBillResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.VendorID != nil {
		domainFilter.Filters["vendor_id"] = *filter.VendorID
	}
	if filter.ParentBillID != nil {
		domainFilter.Filters["parent_bill_id"] = *filter.ParentBillID
	}

	proxies, err := s.proxyRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToProxyBillResponses(proxies), nil
}

// Confirm confirms a draft proxy bill
func (s *ProxyBillService) Confirm(ctx context.Context, tenantID, proxyID uuid.UUID) (*ProxyBillResponse, error) {
	proxy, err := s.proxyRepo.FindByIDForTenant(ctx, tenantID, proxyID)
	if err != nil {
		return nil, err
	}

	if err := proxy.Confirm(); err != nil {
		return nil, err
	}

	if err := s.proxyRepo.SaveWithLock(ctx, proxy); err != nil {
		return nil, err
	}

	response := ToProxyBillResponse(proxy)
	return &response, nil
}

// Cancel cancels a proxy bill and frees its share of the parent's capacity.
// The cancel is refused while credit entries reference the proxy bill.
func (s *ProxyBillService) Cancel(ctx context.Context, tenantID, proxyID uuid.UUID) (*ProxyBillResponse, error) {
	var proxy *billing.ProxyBill

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		proxy, err = repos.ProxyBillRepo().FindByIDForTenant(ctx, tenantID, proxyID)
		if err != nil {
			return err
		}

		hasCredits, err := repos.CreditRepo().ExistsByProxyBill(ctx, tenantID, proxyID)
		if err != nil {
			return err
		}
		if hasCredits {
			return shared.NewDomainError("CONFLICT", "Cannot cancel a proxy bill with credit entries")
		}

		if err := proxy.Cancel(); err != nil {
			return err
		}

		return repos.ProxyBillRepo().SaveWithLock(ctx, proxy)
	})
	if err != nil {
		return nil, err
	}

	response := ToProxyBillResponse(proxy)
	return &response, nil
}
