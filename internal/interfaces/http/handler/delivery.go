package handler

import (
	deliveryapp "github.com/billcore/backend/internal/application/delivery"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeliveryHandler handles delivery order API endpoints
type DeliveryHandler struct {
	BaseHandler
	deliveryService *deliveryapp.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService *deliveryapp.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{
		deliveryService: deliveryService,
	}
}

// DeliveryRemarksRequest carries optional remarks for a status transition
type DeliveryRemarksRequest struct {
	Remarks string `json:"remarks" binding:"omitempty,max=500"`
}

// ReassignDeliveryRequest names the delivery user taking over an order
type ReassignDeliveryRequest struct {
	DeliveryUserID uuid.UUID `json:"delivery_user_id" binding:"required"`
}

// Create godoc
// @Summary      Create a delivery order
// @Description  Create a delivery order for a bill or proxy bill, assigned to a delivery user
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        request body deliveryapp.CreateDeliveryOrderRequest true "Delivery order creation request"
// @Success      201 {object} dto.Response{data=deliveryapp.DeliveryOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deliveries [post]
func (h *DeliveryHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User context required")
		return
	}

	var req deliveryapp.CreateDeliveryOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.deliveryService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID godoc
// @Summary      Get a delivery order by ID
// @Description  Retrieve a delivery order
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery order ID" format(uuid)
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deliveries/{id} [get]
func (h *DeliveryHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery order ID")
		return
	}

	order, err := h.deliveryService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List godoc
// @Summary      List delivery orders
// @Description  List delivery orders in the current tenant with optional filters
// @Tags         deliveries
// @Produce      json
// @Param        status query string false "Filter by status" Enums(PENDING, IN_TRANSIT, DELIVERED, CANCELLED)
// @Param        delivery_user_id query string false "Filter by assigned delivery user" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]deliveryapp.DeliveryOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deliveries [get]
func (h *DeliveryHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var filter deliveryapp.DeliveryOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	orders, total, err := h.deliveryService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// ListMine godoc
// @Summary      List my delivery orders
// @Description  List delivery orders assigned to the authenticated delivery user
// @Tags         deliveries
// @Produce      json
// @Param        status query string false "Filter by status" Enums(PENDING, IN_TRANSIT, DELIVERED, CANCELLED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]deliveryapp.DeliveryOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deliveries/mine [get]
func (h *DeliveryHandler) ListMine(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User context required")
		return
	}

	var filter deliveryapp.DeliveryOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	orders, err := h.deliveryService.ListForUser(c.Request.Context(), tenantID, userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// ListByBill godoc
// @Summary      List delivery orders of a bill
// @Description  List all delivery orders created for the given bill
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]deliveryapp.DeliveryOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bills/{id}/deliveries [get]
func (h *DeliveryHandler) ListByBill(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	orders, err := h.deliveryService.ListByBill(c.Request.Context(), tenantID, billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// Dispatch godoc
// @Summary      Dispatch a delivery order
// @Description  Transition a pending delivery order to IN_TRANSIT
// @Tags         deliveries
// @Produce      json
// @Param        id path string true "Delivery order ID" format(uuid)
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deliveries/{id}/dispatch [post]
func (h *DeliveryHandler) Dispatch(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery order ID")
		return
	}

	order, err := h.deliveryService.Dispatch(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// MarkDelivered godoc
// @Summary      Mark a delivery order delivered
// @Description  Transition an in-transit delivery order to DELIVERED with optional remarks
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery order ID" format(uuid)
// @Param        request body DeliveryRemarksRequest false "Delivery remarks"
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deliveries/{id}/deliver [post]
func (h *DeliveryHandler) MarkDelivered(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery order ID")
		return
	}

	var req DeliveryRemarksRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
	}

	order, err := h.deliveryService.MarkDelivered(c.Request.Context(), tenantID, id, req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel godoc
// @Summary      Cancel a delivery order
// @Description  Cancel a pending or in-transit delivery order with optional remarks
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery order ID" format(uuid)
// @Param        request body DeliveryRemarksRequest false "Cancellation remarks"
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deliveries/{id}/cancel [post]
func (h *DeliveryHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery order ID")
		return
	}

	var req DeliveryRemarksRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
	}

	order, err := h.deliveryService.Cancel(c.Request.Context(), tenantID, id, req.Remarks)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Reassign godoc
// @Summary      Reassign a delivery order
// @Description  Assign a pending or in-transit delivery order to a different delivery user
// @Tags         deliveries
// @Accept       json
// @Produce      json
// @Param        id path string true "Delivery order ID" format(uuid)
// @Param        request body ReassignDeliveryRequest true "Reassignment request"
// @Success      200 {object} dto.Response{data=deliveryapp.DeliveryOrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deliveries/{id}/reassign [post]
func (h *DeliveryHandler) Reassign(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid delivery order ID")
		return
	}

	var req ReassignDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.deliveryService.Reassign(c.Request.Context(), tenantID, id, req.DeliveryUserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
