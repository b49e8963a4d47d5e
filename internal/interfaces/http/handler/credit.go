package handler

import (
	creditapp "github.com/billcore/backend/internal/application/credit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IdempotencyKeyHeader carries the client-chosen key that makes payment
// submissions safe to retry.
const IdempotencyKeyHeader = "Idempotency-Key"

// CreditHandler handles credit ledger API endpoints
type CreditHandler struct {
	BaseHandler
	creditService *creditapp.CreditService
}

// NewCreditHandler creates a new CreditHandler
func NewCreditHandler(creditService *creditapp.CreditService) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
	}
}

// RecordPayment godoc
// @Summary      Record a payment
// @Description  Append an immutable credit entry to the ledger. Pass an Idempotency-Key header to make retries safe.
// @Tags         credits
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Client-chosen idempotency key"
// @Param        request body creditapp.RecordPaymentRequest true "Payment record request"
// @Success      201 {object} dto.Response{data=creditapp.CreditEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /credits [post]
func (h *CreditHandler) RecordPayment(c *gin.Context) {
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

	var req creditapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)

	entry, err := h.creditService.RecordPayment(c.Request.Context(), tenantID, userID, idempotencyKey, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, entry)
}

// GetByID godoc
// @Summary      Get a credit entry by ID
// @Description  Retrieve a single credit entry
// @Tags         credits
// @Produce      json
// @Param        id path string true "Credit entry ID" format(uuid)
// @Success      200 {object} dto.Response{data=creditapp.CreditEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /credits/{id} [get]
func (h *CreditHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid credit entry ID")
		return
	}

	entry, err := h.creditService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entry)
}

// List godoc
// @Summary      List credit entries
// @Description  List credit entries in the current tenant with optional filters
// @Tags         credits
// @Produce      json
// @Param        vendor_id query string false "Filter by vendor ID" format(uuid)
// @Param        direction query string false "Filter by direction" Enums(INCOMING, OUTGOING)
// @Param        method query string false "Filter by payment method" Enums(CASH, UPI, BANK_TRANSFER, CHEQUE, CARD)
// @Param        date_from query string false "Payment date lower bound (RFC 3339)"
// @Param        date_to query string false "Payment date upper bound (RFC 3339)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]creditapp.CreditEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /credits [get]
func (h *CreditHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	var filter creditapp.CreditEntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	entries, total, err := h.creditService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// ListByBill godoc
// @Summary      List credit entries of a bill
// @Description  List all credit entries recorded against the given bill
// @Tags         credits
// @Produce      json
// @Param        id path string true "Bill ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]creditapp.CreditEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bills/{id}/credits [get]
func (h *CreditHandler) ListByBill(c *gin.Context) {
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

	entries, err := h.creditService.ListByBill(c.Request.Context(), tenantID, billID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// ListByProxyBill godoc
// @Summary      List credit entries of a proxy bill
// @Description  List all credit entries recorded against the given proxy bill
// @Tags         credits
// @Produce      json
// @Param        id path string true "Proxy bill ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]creditapp.CreditEntryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /proxy-bills/{id}/credits [get]
func (h *CreditHandler) ListByProxyBill(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	proxyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid proxy bill ID")
		return
	}

	entries, err := h.creditService.ListByProxyBill(c.Request.Context(), tenantID, proxyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}
