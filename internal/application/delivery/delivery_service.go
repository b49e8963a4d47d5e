package delivery

import (
	"context"

	"github.com/billcore/backend/internal/domain/billing"
	"github.com/billcore/backend/internal/domain/delivery"
	"github.com/billcore/backend/internal/domain/identity"
	"github.com/billcore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryService handles delivery order operations
type DeliveryService struct {
	deliveryRepo delivery.DeliveryOrderRepository
	billRepo     billing.BillRepository
	proxyRepo    billing.ProxyBillRepository
	userRepo     identity.UserRepository
}

// NewDeliveryService creates a new delivery service
func NewDeliveryService(
	deliveryRepo delivery.DeliveryOrderRepository,
	billRepo billing.BillRepository,
	proxyRepo billing.ProxyBillRepository,
	userRepo identity.UserRepository,
) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		billRepo:     billRepo,
		proxyRepo:    proxyRepo,
		userRepo:     userRepo,
	}
}

// Create creates a delivery order for a confirmed bill or an active proxy bill
func (s *DeliveryService) Create(ctx context.Context, tenantID, userID uuid.UUID, req CreateDeliveryOrderRequest) (*DeliveryOrderResponse, error) {
	if req.BillID != nil && req.ProxyBillID != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "A delivery order references either a bill or a proxy bill, not both")
	}

	if req.BillID != nil {
		bill, err := s.billRepo.FindByIDForTenant(ctx, tenantID, *req.BillID)
		if err != nil {
			return nil, err
		}
		if !bill.IsConfirmed() {
			return nil, shared.NewDomainError("INVALID_STATE", "Only confirmed bills can be delivered")
		}
	}
	if req.ProxyBillID != nil {
		proxy, err := s.proxyRepo.FindByIDForTenant(ctx, tenantID, *req.ProxyBillID)
		if err != nil {
			return nil, err
		}
		if !proxy.IsActive() {
			return nil, shared.NewDomainError("INVALID_STATE", "Only active proxy bills can be delivered")
		}
	}

	deliveryUser, err := s.userRepo.FindByIDForTenant(ctx, tenantID, req.DeliveryUserID)
	if err != nil {
		return nil, err
	}
	if deliveryUser.Role != identity.RoleDelivery && deliveryUser.Role != identity.RoleAdmin {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Assigned user does not have the delivery role")
	}
	if !deliveryUser.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Assigned delivery user is not active")
	}

	order, err := delivery.NewDeliveryOrder(tenantID, req.DeliveryUserID, req.BillID, req.ProxyBillID, req.DeliveryAddress)
	if err != nil {
		return nil, err
	}
	order.SetCreatedBy(userID)

	if req.DeliveryDate != nil {
		if err := order.Schedule(*req.DeliveryDate); err != nil {
			return nil, err
		}
	}

	if err := s.deliveryRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToDeliveryOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a delivery order by ID
func (s *DeliveryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*DeliveryOrderResponse, error) {
	order, err := s.deliveryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	response := ToDeliveryOrderResponse(order)
	return &response, nil
}

// List retrieves delivery orders with pagination and filtering
func (s *DeliveryService) List(ctx context.Context, tenantID uuid.UUID, filter DeliveryOrderListFilter) ([]DeliveryOrderResponse, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.DeliveryUserID != nil {
		domainFilter.Filters["delivery_user_id"] = *filter.DeliveryUserID
	}

	orders, err := s.deliveryRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.deliveryRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDeliveryOrderResponses(orders), total, nil
}

// ListForUser retrieves delivery orders assigned to a delivery user
func (s *DeliveryService) ListForUser(ctx context.Context, tenantID, deliveryUserID uuid.UUID, filter DeliveryOrderListFilter) ([]DeliveryOrderResponse, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	orders, err := s.deliveryRepo.FindByDeliveryUser(ctx, tenantID, deliveryUserID, domainFilter)
	if err != nil {
		return nil, err
	}

	return ToDeliveryOrderResponses(orders), nil
}

// ListByBill retrieves delivery orders for a bill
func (s *DeliveryService) ListByBill(ctx context.Context, tenantID, billID uuid.UUID) ([]DeliveryOrderResponse, error) {
	orders, err := s.deliveryRepo.FindByBill(ctx, tenantID, billID)
	if err != nil {
		return nil, err
	}

	return ToDeliveryOrderResponses(orders), nil
}

// Dispatch marks a delivery order as in transit
func (s *DeliveryService) Dispatch(ctx context.Context, tenantID, id uuid.UUID) (*DeliveryOrderResponse, error) {
	order, err := s.deliveryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := order.Dispatch(); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToDeliveryOrderResponse(order)
	return &response, nil
}

// MarkDelivered marks an in-transit delivery order as delivered
func (s *DeliveryService) MarkDelivered(ctx context.Context, tenantID, id uuid.UUID, remarks string) (*DeliveryOrderResponse, error) {
	order, err := s.deliveryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := order.MarkDelivered(remarks); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToDeliveryOrderResponse(order)
	return &response, nil
}

// Cancel cancels a delivery order that has not been delivered
func (s *DeliveryService) Cancel(ctx context.Context, tenantID, id uuid.UUID, remarks string) (*DeliveryOrderResponse, error) {
	order, err := s.deliveryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(remarks); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToDeliveryOrderResponse(order)
	return &response, nil
}

// Reassign assigns a delivery order to a different delivery user
func (s *DeliveryService) Reassign(ctx context.Context, tenantID, id, deliveryUserID uuid.UUID) (*DeliveryOrderResponse, error) {
	order, err := s.deliveryRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	deliveryUser, err := s.userRepo.FindByIDForTenant(ctx, tenantID, deliveryUserID)
	if err != nil {
		return nil, err
	}
	if deliveryUser.Role != identity.RoleDelivery && deliveryUser.Role != identity.RoleAdmin {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Assigned user does not have the delivery role")
	}

	if err := order.Reassign(deliveryUserID); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToDeliveryOrderResponse(order)
	return &response, nil
}
