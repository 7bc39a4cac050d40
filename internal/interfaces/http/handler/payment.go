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

// PaymentHandler handles payment lifecycle API endpoints
type PaymentHandler struct {
	BaseHandler
	payments *appbilling.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments *appbilling.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// RegisterRoutes registers payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", middleware.RequireAction("payments", "write"), h.CreatePayment)
		payments.GET("", middleware.RequireAction("payments", "read"), h.ListPayments)
		payments.DELETE("/:id", middleware.RequireAction("payments", "delete"), h.DeletePayment)
	}
}

// CreatePaymentRequest is the payload for recording a payment. Exactly one
// of invoice_id and purchase_order_id must be set.
type CreatePaymentRequest struct {
	InvoiceID       *string         `json:"invoice_id" binding:"omitempty,uuid"`
	PurchaseOrderID *string         `json:"purchase_order_id" binding:"omitempty,uuid"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Mode            string          `json:"mode" binding:"required"`
	Reference       string          `json:"reference"`
	PaidAt          time.Time       `json:"paid_at"`
}

// CreatePayment records a payment against an invoice or a purchase order
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := appbilling.CreatePaymentInput{
		CompanyID: companyID,
		Amount:    req.Amount,
		Mode:      billing.PaymentMode(req.Mode),
		Reference: req.Reference,
		PaidAt:    req.PaidAt,
	}
	if req.InvoiceID != nil {
		id := uuid.MustParse(*req.InvoiceID)
		input.InvoiceID = &id
	}
	if req.PurchaseOrderID != nil {
		id := uuid.MustParse(*req.PurchaseOrderID)
		input.PurchaseOrderID = &id
	}

	payment, err := h.payments.CreatePayment(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// ListPayments lists payments for one parent document, selected by the
// invoice_id or purchase_order_id query parameter.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	if _, err := getCompanyID(c); err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}

	if raw := c.Query("invoice_id"); raw != "" {
		invoiceID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid invoice ID")
			return
		}
		payments, err := h.payments.PaymentsForInvoice(c.Request.Context(), invoiceID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, payments)
		return
	}

	if raw := c.Query("purchase_order_id"); raw != "" {
		orderID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid purchase order ID")
			return
		}
		payments, err := h.payments.PaymentsForPurchaseOrder(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, payments)
		return
	}

	h.BadRequest(c, "invoice_id or purchase_order_id query parameter is required")
}

// DeletePayment removes a payment and reverses its effects
func (h *PaymentHandler) DeletePayment(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.Unauthorized(c, "Company context is required")
		return
	}
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.payments.DeletePayment(c.Request.Context(), companyID, paymentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
