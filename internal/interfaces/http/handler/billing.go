package handler

import (
	"time"

	appbilling "github.com/atlascrm/backend/internal/application/billing"
	"github.com/atlascrm/backend/internal/domain/billing"
	"github.com/atlascrm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingHandler handles invoice and purchase order API endpoints
type BillingHandler struct {
	BaseHandler
	documents *appbilling.DocumentService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(documents *appbilling.DocumentService) *BillingHandler {
	return &BillingHandler{documents: documents}
}

// RegisterRoutes registers billing routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", middleware.RequireAction("invoices", "write"), h.CreateInvoice)
		invoices.GET("", middleware.RequireAction("invoices", "read"), h.ListInvoices)
		invoices.GET("/:id", middleware.RequireAction("invoices", "read"), h.GetInvoice)
	}
	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", middleware.RequireAction("purchase_orders", "write"), h.CreatePurchaseOrder)
		orders.GET("", middleware.RequireAction("purchase_orders", "read"), h.ListPurchaseOrders)
		orders.GET("/:id", middleware.RequireAction("purchase_orders", "read"), h.GetPurchaseOrder)
	}
}

// CreateInvoiceRequest is the payload for issuing an invoice
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number" binding:"required"`
	ClientID      string          `json:"client_id" binding:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	AmountType    string          `json:"amount_type" binding:"omitempty,oneof=HT TTC"`
	PaymentTerm   string          `json:"payment_term"`
	IssueDate     time.Time       `json:"issue_date" binding:"required"`
	Remark        string          `json:"remark"`
}

// CreateInvoice issues an invoice to a client
func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.documents.CreateInvoice(c.Request.Context(), appbilling.CreateInvoiceInput{
		CompanyID:     companyID,
		InvoiceNumber: req.InvoiceNumber,
		ClientID:      uuid.MustParse(req.ClientID),
		Amount:        req.Amount,
		AmountType:    billing.AmountType(req.AmountType),
		PaymentTerm:   billing.PaymentTerm(req.PaymentTerm),
		IssueDate:     req.IssueDate,
		Remark:        req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// ListInvoices lists the company's invoices
func (h *BillingHandler) ListInvoices(c *gin.Context) {
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

	invoices, err := h.documents.ListInvoices(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoices)
}

// GetInvoice loads one invoice
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.documents.GetInvoice(c.Request.Context(), companyID, invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// CreatePurchaseOrderRequest is the payload for recording a purchase order
type CreatePurchaseOrderRequest struct {
	OrderNumber string          `json:"order_number" binding:"required"`
	SupplierID  string          `json:"supplier_id" binding:"required,uuid"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	AmountType  string          `json:"amount_type" binding:"omitempty,oneof=HT TTC"`
	IssueDate   time.Time       `json:"issue_date" binding:"required"`
	Remark      string          `json:"remark"`
}

// CreatePurchaseOrder records a purchase order from a supplier
func (h *BillingHandler) CreatePurchaseOrder(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var req CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.documents.CreatePurchaseOrder(c.Request.Context(), appbilling.CreatePurchaseOrderInput{
		CompanyID:   companyID,
		OrderNumber: req.OrderNumber,
		SupplierID:  uuid.MustParse(req.SupplierID),
		Amount:      req.Amount,
		AmountType:  billing.AmountType(req.AmountType),
		IssueDate:   req.IssueDate,
		Remark:      req.Remark,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// ListPurchaseOrders lists the company's purchase orders
func (h *BillingHandler) ListPurchaseOrders(c *gin.Context) {
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

	orders, err := h.documents.ListPurchaseOrders(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetPurchaseOrder loads one purchase order
func (h *BillingHandler) GetPurchaseOrder(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	order, err := h.documents.GetPurchaseOrder(c.Request.Context(), companyID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
