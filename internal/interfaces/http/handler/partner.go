package handler

import (
	apppartner "github.com/atlascrm/backend/internal/application/partner"
	"github.com/atlascrm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PartnerHandler handles client and supplier API endpoints
type PartnerHandler struct {
	BaseHandler
	partners *apppartner.Service
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partners *apppartner.Service) *PartnerHandler {
	return &PartnerHandler{partners: partners}
}

// RegisterRoutes registers partner routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	{
		clients.POST("", middleware.RequireAction("clients", "write"), h.CreateClient)
		clients.GET("", middleware.RequireAction("clients", "read"), h.ListClients)
		clients.GET("/:id", middleware.RequireAction("clients", "read"), h.GetClient)
	}
	suppliers := rg.Group("/suppliers")
	{
		suppliers.POST("", middleware.RequireAction("suppliers", "write"), h.CreateSupplier)
		suppliers.GET("", middleware.RequireAction("suppliers", "read"), h.ListSuppliers)
		suppliers.GET("/:id", middleware.RequireAction("suppliers", "read"), h.GetSupplier)
	}
}

// CreatePartnerRequest is the payload for creating a client or supplier
type CreatePartnerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// CreateClient creates a client
func (h *PartnerHandler) CreateClient(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var req CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.partners.CreateClient(c.Request.Context(), companyID, req.Name, req.Email, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, client)
}

// ListClients lists the company's clients
func (h *PartnerHandler) ListClients(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	clients, err := h.partners.ListClients(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, clients)
}

// GetClient loads one client
func (h *PartnerHandler) GetClient(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	client, err := h.partners.GetClient(c.Request.Context(), companyID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, client)
}

// CreateSupplier creates a supplier
func (h *PartnerHandler) CreateSupplier(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var req CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.partners.CreateSupplier(c.Request.Context(), companyID, req.Name, req.Email, req.Phone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// ListSuppliers lists the company's suppliers
func (h *PartnerHandler) ListSuppliers(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suppliers, err := h.partners.ListSuppliers(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suppliers)
}

// GetSupplier loads one supplier
func (h *PartnerHandler) GetSupplier(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.partners.GetSupplier(c.Request.Context(), companyID, supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}
