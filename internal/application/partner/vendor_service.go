package partner

import (
	"context"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/credit"
	"github.com/billcore/backend/internal/domain/partner"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/billcore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// VendorService handles vendor-related business operations
type VendorService struct {
	vendorRepo partner.VendorRepository
	billRepo   billing.BillRepository
	proxyRepo  billing.ProxyBillRepository
	creditRepo credit.CreditEntryRepository
}

// NewVendorService creates a new VendorService
func NewVendorService(
	vendorRepo partner.VendorRepository,
	billRepo billing.BillRepository,
	proxyRepo billing.ProxyBillRepository,
	creditRepo credit.CreditEntryRepository,
) *VendorService {
	return &VendorService{
		vendorRepo: vendorRepo,
		billRepo:   billRepo,
		proxyRepo:  proxyRepo,
		creditRepo: creditRepo,
	}
}

// Create creates a new vendor
func (s *VendorService) Create(ctx context.Context, tenantID uuid.UUID, req CreateVendorRequest) (*VendorResponse, error) {
	creditLimit := valueobject.ZeroINR()
	if req.CreditLimit != nil {
		creditLimit = valueobject.NewMoneyINR(*req.CreditLimit)
	}

	vendor, err := partner.NewVendor(tenantID, req.Name, partner.VendorType(req.Type), creditLimit)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" || req.Email != "" || req.Address != "" {
		if err := vendor.SetContact(req.Phone, req.Email, req.Address); err != nil {
			return nil, err
		}
	}
	if req.GSTNumber != "" {
		if err := vendor.SetGSTNumber(req.GSTNumber); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		vendor.SetNotes(req.Notes)
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetByID retrieves a vendor by ID
func (s *VendorService) GetByID(ctx context.Context, tenantID, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// List retrieves a list of vendors with filtering and pagination
func (s *VendorService) List(ctx context.Context, tenantID uuid.UUID, filter VendorListFilter) ([]VendorResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	vendors, err := s.vendorRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.vendorRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToVendorResponses(vendors), total, nil
}

// Update updates a vendor
func (s *VendorService) Update(ctx context.Context, tenantID, vendorID uuid.UUID, req UpdateVendorRequest) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Type != nil {
		name := vendor.Name
		vendorType := vendor.Type
		if req.Name != nil {
			name = *req.Name
		}
		if req.Type != nil {
			vendorType = partner.VendorType(*req.Type)
		}
		if err := vendor.Update(name, vendorType); err != nil {
			return nil, err
		}
	}

	if req.Phone != nil || req.Email != nil || req.Address != nil {
		phone := vendor.ContactPhone
		email := vendor.Email
		address := vendor.Address
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := vendor.SetContact(phone, email, address); err != nil {
			return nil, err
		}
	}

	if req.GSTNumber != nil {
		if err := vendor.SetGSTNumber(*req.GSTNumber); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != nil {
		if err := vendor.SetCreditLimit(valueobject.NewMoneyINR(*req.CreditLimit)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		vendor.SetNotes(*req.Notes)
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Delete deletes a vendor. The delete is refused while any bill, proxy bill,
// or credit entry still references the vendor.
func (s *VendorService) Delete(ctx context.Context, tenantID, vendorID uuid.UUID) error {
	if _, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, vendorID); err != nil {
		return err
	}

	hasBills, err := s.billRepo.ExistsByVendor(ctx, tenantID, vendorID)
	if err != nil {
		return err
	}
	if hasBills {
		return shared.NewDomainError("CONFLICT", "Cannot delete vendor with existing bills")
	}

	hasProxies, err := s.proxyRepo.ExistsByVendor(ctx, tenantID, vendorID)
	if err != nil {
		return err
	}
	if hasProxies {
		return shared.NewDomainError("CONFLICT", "Cannot delete vendor with existing proxy bills")
	}

	hasCredits, err := s.creditRepo.ExistsByVendor(ctx, tenantID, vendorID)
	if err != nil {
		return err
	}
	if hasCredits {
		return shared.NewDomainError("CONFLICT", "Cannot delete vendor with existing credit entries")
	}

	return s.vendorRepo.Delete(ctx, tenantID, vendorID)
}

// Activate re-activates a vendor
func (s *VendorService) Activate(ctx context.Context, tenantID, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}

	if err := vendor.Activate(); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}

// Deactivate deactivates a vendor
func (s *VendorService) Deactivate(ctx context.Context, tenantID, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendorRepo.FindByIDForTenant(ctx, tenantID, vendorID)
	if err != nil {
		return nil, err
	}

	if err := vendor.Deactivate(); err != nil {
		return nil, err
	}

	if err := s.vendorRepo.Save(ctx, vendor); err != nil {
		return nil, err
	}

	response := ToVendorResponse(vendor)
	return &response, nil
}
