package billing

import (
	"time"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrder represents a supplier purchase order aggregate root.
// Settlement tracking mirrors Invoice: PaidAmount accumulates disbursement
// payments and IsPaid flips once the remainder reaches zero.
type PurchaseOrder struct {
	shared.CompanyAggregateRoot
	OrderNumber  string          `json:"order_number"`
	SupplierID   uuid.UUID       `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Amount       decimal.Decimal `json:"amount"`
	AmountType   AmountType      `json:"amount_type"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	IsPaid       bool            `json:"is_paid"`
	IssueDate    time.Time       `json:"issue_date"`
	Remark       string          `json:"remark"`
}

// NewPurchaseOrder creates a new unpaid purchase order
func NewPurchaseOrder(
	companyID uuid.UUID,
	orderNumber string,
	supplierID uuid.UUID,
	supplierName string,
	amount decimal.Decimal,
	amountType AmountType,
	issueDate time.Time,
) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order amount must be positive")
	}
	if !amountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_AMOUNT_TYPE", "Amount type must be HT or TTC")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	return &PurchaseOrder{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		OrderNumber:          orderNumber,
		SupplierID:           supplierID,
		SupplierName:         supplierName,
		Amount:               amount,
		AmountType:           amountType,
		PaidAmount:           decimal.Zero,
		IssueDate:            issueDate,
	}, nil
}

// Total returns the order total for settlement purposes
func (p *PurchaseOrder) Total() decimal.Decimal {
	return p.Amount
}

// Remainder returns the unpaid portion, floored at zero
func (p *PurchaseOrder) Remainder() decimal.Decimal {
	remainder := p.Total().Sub(p.PaidAmount)
	if remainder.IsNegative() {
		return decimal.Zero
	}
	return remainder
}

// ApplyPayment records a payment against the order
func (p *PurchaseOrder) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(p.Remainder()) {
		return shared.NewDomainError("EXCEEDS_REMAINDER", "Payment exceeds the order remainder")
	}

	p.PaidAmount = p.PaidAmount.Add(amount)
	p.IsPaid = p.Remainder().IsZero()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// ReversePayment undoes a previously applied payment, floor-clamped at zero
func (p *PurchaseOrder) ReversePayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal amount must be positive")
	}

	p.PaidAmount = p.PaidAmount.Sub(amount)
	if p.PaidAmount.IsNegative() {
		p.PaidAmount = decimal.Zero
	}
	p.IsPaid = p.Remainder().IsZero()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
