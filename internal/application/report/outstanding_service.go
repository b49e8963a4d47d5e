package report

import (
	"context"
	"time"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/credit"
	"github.com/billcore/backend/internal/domain/partner"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VendorOutstandingResponse is the per-vendor balance projection
type VendorOutstandingResponse struct {
	VendorID      uuid.UUID       `json:"vendor_id"`
	VendorName    string          `json:"vendor_name"`
	TotalBilled   decimal.Decimal `json:"total_billed"`
	TotalReceived decimal.Decimal `json:"total_received"`
	TotalPaidOut  decimal.Decimal `json:"total_paid_out"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	AsOf          *time.Time      `json:"as_of,omitempty"`
}

// TenantOutstandingResponse aggregates the projection across all vendors of
// a tenant
type TenantOutstandingResponse struct {
	Vendors          []VendorOutstandingResponse `json:"vendors"`
	TotalOutstanding decimal.Decimal             `json:"total_outstanding"`
	AsOf             *time.Time                  `json:"as_of,omitempty"`
}

// OutstandingService computes per-vendor outstanding balances on demand.
// It is a pure read-side projection over the bill ledger, the proxy splits,
// and the credit ledger; it owns no persistent state.
type OutstandingService struct {
	vendorRepo partner.VendorRepository
	billRepo   billing.BillRepository
	proxyRepo  billing.ProxyBillRepository
	creditRepo credit.CreditEntryRepository
}

// NewOutstandingService creates a new OutstandingService
func NewOutstandingService(
	vendorRepo partner.VendorRepository,
	billRepo billing.BillRepository,
	proxyRepo billing.ProxyBillRepository,
	creditRepo credit.CreditEntryRepository,
) *OutstandingService {
	return &OutstandingService{
		vendorRepo: vendorRepo,
		billRepo:   billRepo,
		proxyRepo:  proxyRepo,
		creditRepo: creditRepo,
	}
}

// ForVendor computes the outstanding balance of one vendor as of the given
// cutoff (nil for now). Billed total counts the vendor's confirmed bills
// minus the portion split away into proxy bills, plus the non-cancelled
// proxy bills issued to the vendor; received and paid-out totals come from
// the credit ledger.
func (s *OutstandingService) ForVendor(ctx context.Context, tenantID, vendorID uuid.UUID, asOf *time.Time) (*VendorOutstandingResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}

	return s.computeForVendor(ctx, tenantID, vendor, asOf)
}

func (s *OutstandingService) computeForVendor(ctx context.Context, tenantID uuid.UUID, vendor *partner.Vendor, asOf *time.Time) (*VendorOutstandingResponse, error) {
	confirmed, err := s.billRepo.SumConfirmedByVendor(ctx, tenantID, vendor.ID, asOf)
	if err != nil {
		return nil, err
	}

	splitAway, err := s.proxyRepo.SumActiveForParentVendor(ctx, tenantID, vendor.ID, asOf)
	if err != nil {
		return nil, err
	}

	proxied, err := s.proxyRepo.SumActiveByVendor(ctx, tenantID, vendor.ID, asOf)
	if err != nil {
		return nil, err
	}

	received, err := s.creditRepo.SumByVendor(ctx, tenantID, vendor.ID, credit.DirectionIncoming, asOf)
	if err != nil {
		return nil, err
	}

	paidOut, err := s.creditRepo.SumByVendor(ctx, tenantID, vendor.ID, credit.DirectionOutgoing, asOf)
	if err != nil {
		return nil, err
	}

	billed := confirmed.MustSubtract(splitAway).MustAdd(proxied)
	outstanding := billed.MustSubtract(received).MustAdd(paidOut)

	return &VendorOutstandingResponse{
		VendorID:      vendor.ID,
		VendorName:    vendor.Name,
		TotalBilled:   billed.Amount(),
		TotalReceived: received.Amount(),
		TotalPaidOut:  paidOut.Amount(),
		Outstanding:   outstanding.Amount(),
		AsOf:          asOf,
	}, nil
}

// ForTenant computes the outstanding balance of every vendor of a tenant
func (s *OutstandingService) ForTenant(ctx context.Context, tenantID uuid.UUID, asOf *time.Time) (*TenantOutstandingResponse, error) {
	vendors, err := s.vendorRepo.FindAllForTenant(ctx, tenantID, shared.Filter{Page: 1, PageSize: 0})
	if err != nil {
		return nil, err
	}

	report := &TenantOutstandingResponse{
		Vendors: make([]VendorOutstandingResponse, 0, len(vendors)),
		AsOf:    asOf,
	}

	total := valueobject.ZeroINR()
	for i := range vendors {
		entry, err := s.computeForVendor(ctx, tenantID, &vendors[i], asOf)
		if err != nil {
			return nil, err
		}
		// Vendors with no ledger activity are left out of the report
		if entry.Outstanding.IsZero() && !entry.TotalBilled.IsPositive() {
			continue
		}
		report.Vendors = append(report.Vendors, *entry)
		total = total.MustAdd(valueobject.NewMoneyINR(entry.Outstanding))
	}
	report.TotalOutstanding = total.Amount()

	return report, nil
}
