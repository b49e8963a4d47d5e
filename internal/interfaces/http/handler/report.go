package handler

import (
	"time"

	reportapp "github.com/billcore/backend/internal/application/report"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler handles read-side reporting endpoints
type ReportHandler struct {
	BaseHandler
	outstandingService *reportapp.OutstandingService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(outstandingService *reportapp.OutstandingService) *ReportHandler {
	return &ReportHandler{
		outstandingService: outstandingService,
	}
}

// parseAsOf reads the optional as_of cutoff from the query string
func parseAsOf(c *gin.Context) (*time.Time, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// VendorOutstanding godoc
// @Summary      Get a vendor's outstanding balance
// @Description  Compute the outstanding balance of one vendor, optionally as of a historic cutoff
// @Tags         reports
// @Produce      json
// @Param        id path string true "Vendor ID" format(uuid)
// @Param        as_of query string false "Cutoff timestamp (RFC 3339)"
// @Success      200 {object} dto.Response{data=reportapp.VendorOutstandingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/outstanding/vendors/{id} [get]
func (h *ReportHandler) VendorOutstanding(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vendor ID")
		return
	}

	asOf, ok := parseAsOf(c)
	if !ok {
		h.BadRequest(c, "Invalid as_of timestamp, expected RFC 3339")
		return
	}

	result, err := h.outstandingService.ForVendor(c.Request.Context(), tenantID, vendorID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// TenantOutstanding godoc
// @Summary      Get the tenant-wide outstanding report
// @Description  Compute outstanding balances for every vendor of the current tenant, optionally as of a historic cutoff
// @Tags         reports
// @Produce      json
// @Param        as_of query string false "Cutoff timestamp (RFC 3339)"
// @Success      200 {object} dto.Response{data=reportapp.TenantOutstandingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/outstanding [get]
func (h *ReportHandler) TenantOutstanding(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant context required")
		return
	}

	asOf, ok := parseAsOf(c)
	if !ok {
		h.BadRequest(c, "Invalid as_of timestamp, expected RFC 3339")
		return
	}

	result, err := h.outstandingService.ForTenant(c.Request.Context(), tenantID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
