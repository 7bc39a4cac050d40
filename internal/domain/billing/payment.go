package billing

import (
	"time"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMode represents the method of payment
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "CASH"
	PaymentModeBankTransfer PaymentMode = "BANK_TRANSFER"
	PaymentModeCheck        PaymentMode = "CHECK"
	PaymentModeMobileMoney  PaymentMode = "MOBILE_MONEY"
	PaymentModeOther        PaymentMode = "OTHER"
)

// IsValid checks if the payment mode is valid
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeBankTransfer, PaymentModeCheck,
		PaymentModeMobileMoney, PaymentModeOther:
		return true
	}
	return false
}

// Payment records money applied to exactly one of an invoice or a purchase
// order. Creating one produces the matching receipt or disbursement; deleting
// one reverses the parent document and partner balances atomically.
type Payment struct {
	shared.BaseEntity
	CompanyID       uuid.UUID       `json:"company_id"`
	Amount          decimal.Decimal `json:"amount"`
	Mode            PaymentMode     `json:"mode"`
	InvoiceID       *uuid.UUID      `json:"invoice_id"`
	PurchaseOrderID *uuid.UUID      `json:"purchase_order_id"`
	Reference       string          `json:"reference"`
	PaidAt          time.Time       `json:"paid_at"`
}

// NewInvoicePayment creates a payment linked to an invoice
func NewInvoicePayment(companyID, invoiceID uuid.UUID, amount decimal.Decimal, mode PaymentMode, paidAt time.Time) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	return newPayment(companyID, &invoiceID, nil, amount, mode, paidAt)
}

// NewPurchaseOrderPayment creates a payment linked to a purchase order
func NewPurchaseOrderPayment(companyID, purchaseOrderID uuid.UUID, amount decimal.Decimal, mode PaymentMode, paidAt time.Time) (*Payment, error) {
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PURCHASE_ORDER", "Purchase order ID cannot be empty")
	}
	return newPayment(companyID, nil, &purchaseOrderID, amount, mode, paidAt)
}

func newPayment(companyID uuid.UUID, invoiceID, purchaseOrderID *uuid.UUID, amount decimal.Decimal, mode PaymentMode, paidAt time.Time) (*Payment, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode is not valid")
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	return &Payment{
		BaseEntity:      shared.NewBaseEntity(),
		CompanyID:       companyID,
		Amount:          amount,
		Mode:            mode,
		InvoiceID:       invoiceID,
		PurchaseOrderID: purchaseOrderID,
		PaidAt:          paidAt,
	}, nil
}

// IsInvoicePayment returns true if the payment settles an invoice
func (p *Payment) IsInvoicePayment() bool {
	return p.InvoiceID != nil
}

// IsPurchaseOrderPayment returns true if the payment settles a purchase order
func (p *Payment) IsPurchaseOrderPayment() bool {
	return p.PurchaseOrderID != nil
}

// Validate enforces the linkage invariant: exactly one parent document
func (p *Payment) Validate() error {
	if p.InvoiceID == nil && p.PurchaseOrderID == nil {
		return shared.NewDomainError("ORPHAN_PAYMENT", "Payment must reference an invoice or a purchase order")
	}
	if p.InvoiceID != nil && p.PurchaseOrderID != nil {
		return shared.NewDomainError("AMBIGUOUS_PAYMENT", "Payment cannot reference both an invoice and a purchase order")
	}
	return nil
}
