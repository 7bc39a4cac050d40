package handler

import (
	appcompany "github.com/atlascrm/backend/internal/application/company"
	"github.com/atlascrm/backend/internal/domain/shared/valueobject"
	"github.com/atlascrm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CompanyHandler handles company tenant API endpoints
type CompanyHandler struct {
	BaseHandler
	companies *appcompany.Service
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companies *appcompany.Service) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// RegisterRoutes registers company routes
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	{
		companies.POST("", middleware.RequireAction("companies", "write"), h.Register)
		companies.GET("/me", middleware.RequireAction("companies", "read"), h.GetCurrent)
		companies.PUT("/me/vat-rate", middleware.RequireAction("companies", "write"), h.UpdateVatRate)
	}
}

// RegisterCompanyRequest is the payload for registering a company
type RegisterCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Country  string `json:"country"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
	VatRate  string `json:"vat_rate"`
}

// Register creates a company tenant
func (h *CompanyHandler) Register(c *gin.Context) {
	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companies.Register(c.Request.Context(), appcompany.RegisterInput{
		Name:     req.Name,
		Country:  req.Country,
		Currency: valueobject.Currency(req.Currency),
		VatRate:  req.VatRate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// GetCurrent loads the caller's company
func (h *CompanyHandler) GetCurrent(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	company, err := h.companies.Get(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}

// UpdateVatRateRequest is the payload for changing the company VAT rate.
// The rate stays free text; unparseable values disable VAT extraction.
type UpdateVatRateRequest struct {
	VatRate string `json:"vat_rate"`
}

// UpdateVatRate changes the company's VAT rate
func (h *CompanyHandler) UpdateVatRate(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var req UpdateVatRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companies.UpdateVatRate(c.Request.Context(), companyID, req.VatRate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, company)
}
