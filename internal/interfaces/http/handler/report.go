package handler

import (
	"time"

	appreport "github.com/atlascrm/backend/internal/application/report"
	"github.com/atlascrm/backend/internal/domain/treasury"
	"github.com/atlascrm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles financial report API endpoints
type ReportHandler struct {
	BaseHandler
	reports *appreport.FinanceReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *appreport.FinanceReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports", middleware.RequireAction("reports", "read"))
	{
		reports.GET("/overdue", h.OverdueSummary)
		reports.GET("/vat-due", h.VatDue)
		reports.GET("/source-breakdown", h.SourceBreakdown)
		reports.GET("/category-breakdown", h.CategoryBreakdown)
	}
}

// OverdueSummary reports the company's overdue invoice position.
// The as_of query parameter (RFC 3339) defaults to now.
func (h *ReportHandler) OverdueSummary(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var asOf time.Time
	if raw := c.Query("as_of"); raw != "" {
		asOf, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "as_of must be an RFC 3339 timestamp")
			return
		}
	}

	summary, err := h.reports.OverdueSummary(c.Request.Context(), companyID, asOf)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// VatDue reports the company's VAT position
func (h *ReportHandler) VatDue(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	result, err := h.reports.VatDue(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SourceBreakdown reports receipts against disbursements per money source
func (h *ReportHandler) SourceBreakdown(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	lines, err := h.reports.SourceBreakdown(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}

// CategoryBreakdown reports one transaction kind's totals per category
func (h *ReportHandler) CategoryBreakdown(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	kind := treasury.TransactionKind(c.Query("kind"))
	lines, err := h.reports.CategoryBreakdown(c.Request.Context(), companyID, kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lines)
}
