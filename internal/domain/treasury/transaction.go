package treasury

import (
	"time"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes money coming in from money going out
type TransactionKind string

const (
	TransactionKindReceipt      TransactionKind = "RECEIPT"
	TransactionKindDisbursement TransactionKind = "DISBURSEMENT"
)

// IsValid checks if the transaction kind is a known value
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindReceipt || k == TransactionKindDisbursement
}

// Receipt records money received by the company. Receipts created from an
// invoice payment carry the payment ID so that deleting the payment can
// remove them in the same transaction.
type Receipt struct {
	shared.CompanyAggregateRoot
	Amount     decimal.Decimal `json:"amount"`
	CategoryID *uuid.UUID      `json:"category_id"`
	NatureID   *uuid.UUID      `json:"nature_id"`
	SourceID   *uuid.UUID      `json:"source_id"`
	PaymentID  *uuid.UUID      `json:"payment_id"`
	Label      string          `json:"label"`
	Date       time.Time       `json:"date"`
}

// NewReceipt creates a receipt for the given amount
func NewReceipt(companyID uuid.UUID, amount decimal.Decimal, label string, date time.Time) (*Receipt, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Receipt amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Receipt{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Amount:               amount,
		Label:                label,
		Date:                 date,
	}, nil
}

// LinkPayment ties the receipt to the payment that produced it
func (r *Receipt) LinkPayment(paymentID uuid.UUID) {
	r.PaymentID = &paymentID
}

// Disbursement records money paid out by the company. Fiscal disbursements
// (tax payments to the administration) are flagged so the VAT computation can
// subtract them from the amount still due.
type Disbursement struct {
	shared.CompanyAggregateRoot
	Amount     decimal.Decimal `json:"amount"`
	CategoryID *uuid.UUID      `json:"category_id"`
	NatureID   *uuid.UUID      `json:"nature_id"`
	SourceID   *uuid.UUID      `json:"source_id"`
	PaymentID  *uuid.UUID      `json:"payment_id"`
	Label      string          `json:"label"`
	IsFiscal   bool            `json:"is_fiscal"`
	IsPaid     bool            `json:"is_paid"`
	Date       time.Time       `json:"date"`
}

// NewDisbursement creates a disbursement for the given amount
func NewDisbursement(companyID uuid.UUID, amount decimal.Decimal, label string, date time.Time) (*Disbursement, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Disbursement amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}
	return &Disbursement{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Amount:               amount,
		Label:                label,
		Date:                 date,
	}, nil
}

// LinkPayment ties the disbursement to the payment that produced it
func (d *Disbursement) LinkPayment(paymentID uuid.UUID) {
	d.PaymentID = &paymentID
}

// MarkFiscal flags the disbursement as a tax payment
func (d *Disbursement) MarkFiscal() {
	d.IsFiscal = true
}
