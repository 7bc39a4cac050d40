package handler

import (
	apptreasury "github.com/atlascrm/backend/internal/application/treasury"
	"github.com/atlascrm/backend/internal/domain/treasury"
	"github.com/atlascrm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TreasuryHandler handles transaction category, nature and source endpoints
type TreasuryHandler struct {
	BaseHandler
	categories *apptreasury.CategoryService
}

// NewTreasuryHandler creates a new TreasuryHandler
func NewTreasuryHandler(categories *apptreasury.CategoryService) *TreasuryHandler {
	return &TreasuryHandler{categories: categories}
}

// RegisterRoutes registers treasury routes
func (h *TreasuryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	treasuryGroup := rg.Group("/treasury")
	{
		treasuryGroup.POST("/categories", middleware.RequireAction("treasury", "write"), h.CreateCategory)
		treasuryGroup.GET("/categories", middleware.RequireAction("treasury", "read"), h.ListCategories)
		treasuryGroup.DELETE("/categories/:id", middleware.RequireAction("treasury", "delete"), h.DeleteCategory)
		treasuryGroup.POST("/categories/:id/natures", middleware.RequireAction("treasury", "write"), h.AddNature)
		treasuryGroup.POST("/sources", middleware.RequireAction("treasury", "write"), h.CreateSource)
		treasuryGroup.GET("/sources", middleware.RequireAction("treasury", "read"), h.ListSources)
	}
}

// CreateCategoryRequest is the payload for creating a transaction category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"required,oneof=RECEIPT DISBURSEMENT"`
}

// CreateCategory creates a transaction category
func (h *TreasuryHandler) CreateCategory(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), companyID,
		req.Name, treasury.TransactionKind(req.Kind))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// ListCategories lists the company's categories for one transaction kind
func (h *TreasuryHandler) ListCategories(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	categories, err := h.categories.ListCategories(c.Request.Context(), companyID,
		treasury.TransactionKind(c.Query("kind")))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// DeleteCategory removes a category that has no natures left
func (h *TreasuryHandler) DeleteCategory(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categories.DeleteCategory(c.Request.Context(), companyID, categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddNatureRequest is the payload for adding a nature to a category
type AddNatureRequest struct {
	Name         string `json:"name" binding:"required"`
	IsVatPayment bool   `json:"is_vat_payment"`
}

// AddNature adds a nature under a category
func (h *TreasuryHandler) AddNature(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req AddNatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	nature, err := h.categories.AddNature(c.Request.Context(), companyID, categoryID,
		req.Name, req.IsVatPayment)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, nature)
}

// CreateSourceRequest is the payload for creating a money source
type CreateSourceRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateSource creates a money source
func (h *TreasuryHandler) CreateSource(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var req CreateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	source, err := h.categories.CreateSource(c.Request.Context(), companyID, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, source)
}

// ListSources lists the company's money sources
func (h *TreasuryHandler) ListSources(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	sources, err := h.categories.ListSources(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sources)
}
