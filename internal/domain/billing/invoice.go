package billing

import (
	"time"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmountType indicates whether a stored amount includes tax
type AmountType string

const (
	AmountTypeHT  AmountType = "HT"  // tax exclusive
	AmountTypeTTC AmountType = "TTC" // tax inclusive
)

// IsValid checks if the amount type is a known value
func (a AmountType) IsValid() bool {
	return a == AmountTypeHT || a == AmountTypeTTC
}

// Invoice represents a client invoice aggregate root.
// PaidAmount tracks how much of the total has been settled by payments;
// IsPaid flips once the remainder reaches zero.
type Invoice struct {
	shared.CompanyAggregateRoot
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      uuid.UUID       `json:"client_id"`
	ClientName    string          `json:"client_name"`
	Amount        decimal.Decimal `json:"amount"`
	AmountType    AmountType      `json:"amount_type"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	IsPaid        bool            `json:"is_paid"`
	PaymentTerm   PaymentTerm     `json:"payment_term"`
	IssueDate     time.Time       `json:"issue_date"`
	Remark        string          `json:"remark"`
}

// NewInvoice creates a new unpaid invoice
func NewInvoice(
	companyID uuid.UUID,
	invoiceNumber string,
	clientID uuid.UUID,
	clientName string,
	amount decimal.Decimal,
	amountType AmountType,
	paymentTerm PaymentTerm,
	issueDate time.Time,
) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount must be positive")
	}
	if !amountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_AMOUNT_TYPE", "Amount type must be HT or TTC")
	}
	if issueDate.IsZero() {
		issueDate = time.Now()
	}

	return &Invoice{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		InvoiceNumber:        invoiceNumber,
		ClientID:             clientID,
		ClientName:           clientName,
		Amount:               amount,
		AmountType:           amountType,
		PaidAmount:           decimal.Zero,
		PaymentTerm:          paymentTerm,
		IssueDate:            issueDate,
	}, nil
}

// Total returns the invoice total for settlement purposes
func (i *Invoice) Total() decimal.Decimal {
	return i.Amount
}

// Remainder returns the unpaid portion, floored at zero
func (i *Invoice) Remainder() decimal.Decimal {
	remainder := i.Total().Sub(i.PaidAmount)
	if remainder.IsNegative() {
		return decimal.Zero
	}
	return remainder
}

// DueDate returns the deadline derived from the issue date and payment term
func (i *Invoice) DueDate() time.Time {
	return i.PaymentTerm.DueDate(i.IssueDate)
}

// IsOverdue reports whether the invoice is past due with an open remainder
func (i *Invoice) IsOverdue(asOf time.Time) bool {
	return asOf.After(i.DueDate()) && i.Remainder().GreaterThan(decimal.Zero)
}

// ApplyPayment records a payment against the invoice
func (i *Invoice) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if amount.GreaterThan(i.Remainder()) {
		return shared.NewDomainError("EXCEEDS_REMAINDER", "Payment exceeds the invoice remainder")
	}

	i.PaidAmount = i.PaidAmount.Add(amount)
	i.IsPaid = i.Remainder().IsZero()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// ReversePayment undoes a previously applied payment. The paid amount is
// floor-clamped at zero so reversal of dirty historical data cannot push it
// negative.
func (i *Invoice) ReversePayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Reversal amount must be positive")
	}

	i.PaidAmount = i.PaidAmount.Sub(amount)
	if i.PaidAmount.IsNegative() {
		i.PaidAmount = decimal.Zero
	}
	i.IsPaid = i.Remainder().IsZero()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}
