package handler

import (
	billingapp "github.com/billcore/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProxyBillHandler handles proxy bill API endpoints
type ProxyBillHandler struct {
	BaseHandler
	proxyService *billingapp.ProxyBillService
}

// NewProxyBillHandler creates a new ProxyBillHandler
func NewProxyBillHandler(proxyService *billingapp.ProxyBillService) *ProxyBillHandler {
	return &ProxyBillHandler{
		proxyService: proxyService,
	}
}

// Create godoc
// @Summary      Create a proxy bill
// @Description  Carve a proxy bill out of an authorized parent bill's remaining capacity
// @Tags         proxy-bills
// @Accept       json
// @Produce      json
// @Param        request body billingapp.CreateProxyBillRequest true "Proxy bill creation request"
// @Success      201 {object} dto.Response{data=billingapp.ProxyBillResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /proxy-bills [post]
func (h *ProxyBillHandler) Create(c *gin.Context) {
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

	var req billingapp.CreateProxyBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	proxy, err := h.proxyService.Create(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, proxy)
}

// CreateSplits godoc
// @Summary      Split a parent bill into proxy bills
// @Description  Create several proxy bills against one parent in a single transaction. Either all splits succeed or none are created.
// @Tags         proxy-bills
// @Accept       json
// @Produce      json
// @Param        request body billingapp.CreateProxySplitsRequest true "Batch split request"
// @Success      201 {object} dto.Response{data=[]billingapp.ProxyBillResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /proxy-bills/splits [post]
func (h *ProxyBillHandler) CreateSplits(c *gin.Context) {
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

	var req billingapp.CreateProxySplitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	proxies, err := h.proxyService.CreateSplits(c.Request.Context(), tenantID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, proxies)
}

// GetByID godoc
// @Summary      Get a proxy bill by ID
// @Description  Retrieve a proxy bill with its line items
// @Tags         proxy-bills
// @Produce      json
// @Param        id path string true "Proxy bill ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.ProxyBillResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /proxy-bills/{id} [get]
func (h *ProxyBillHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid proxy bill ID")
		return
	}

	proxy, err := h.proxyService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, proxy)
}

// List godoc
// @Summary      List proxy bills
// @Description  List proxy bills in the current tenant with optional filters
// @Tags         proxy-bills
// @Produce      json
// @Param        status query string false "Filter by status" Enums(DRAFT, CONFIRMED, CANCELLED)
// @Param        vendor_id query string false "Filter by vendor ID" format(uuid)
// @Param        parent_bill_id query string false "Filter by parent bill ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]billingapp.ProxyBillResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /proxy-bills [get]
func (h *ProxyBillHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var filter billingapp.ProxyBillListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	proxies, err := h.proxyService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, proxies)
}

// ListByParent godoc
// @Summary      List proxy bills of a parent
// @Description  List all proxy bills carved out of the given parent bill
// @Tags         proxy-bills
// @Produce      json
// @Param        id path string true "Parent bill ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]billingapp.ProxyBillResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bills/{id}/proxy-bills [get]
func (h *ProxyBillHandler) ListByParent(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	parentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	proxies, err := h.proxyService.ListByParent(c.Request.Context(), tenantID, parentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, proxies)
}

// Confirm godoc
// @Summary      Confirm a proxy bill
// @Description  Transition a draft proxy bill to CONFIRMED, locking in its amount against the parent
// @Tags         proxy-bills
// @Produce      json
// @Param        id path string true "Proxy bill ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.ProxyBillResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /proxy-bills/{id}/confirm [post]
func (h *ProxyBillHandler) Confirm(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid proxy bill ID")
		return
	}

	proxy, err := h.proxyService.Confirm(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, proxy)
}

// Cancel godoc
// @Summary      Cancel a proxy bill
// @Description  Cancel a proxy bill, releasing its amount back to the parent's capacity
// @Tags         proxy-bills
// @Produce      json
// @Param        id path string true "Proxy bill ID" format(uuid)
// @Success      200 {object} dto.Response{data=billingapp.ProxyBillResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /proxy-bills/{id}/cancel [post]
func (h *ProxyBillHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid proxy bill ID")
		return
	}

	proxy, err := h.proxyService.Cancel(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, proxy)
}
