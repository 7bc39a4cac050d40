package partner

import (
	"time"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supplier is a vendor of the company, with the same running balances as
// Client but fed by purchase orders and disbursement payments.
type Supplier struct {
	shared.CompanyAggregateRoot
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Due        decimal.Decimal `json:"due"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// NewSupplier creates a supplier with zeroed balances
func NewSupplier(companyID uuid.UUID, name string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	return &Supplier{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Due:                  decimal.Zero,
		PaidAmount:           decimal.Zero,
	}, nil
}

// RecordPurchaseOrder increases what the company owes the supplier
func (s *Supplier) RecordPurchaseOrder(amount decimal.Decimal) {
	s.Due = s.Due.Add(amount)
	s.touch()
}

// RecordPayment moves amount from due to paid
func (s *Supplier) RecordPayment(amount decimal.Decimal) {
	s.Due = s.Due.Sub(amount)
	if s.Due.IsNegative() {
		s.Due = decimal.Zero
	}
	s.PaidAmount = s.PaidAmount.Add(amount)
	s.touch()
}

// ReversePayment undoes RecordPayment, clamping PaidAmount at zero
func (s *Supplier) ReversePayment(amount decimal.Decimal) {
	s.Due = s.Due.Add(amount)
	s.PaidAmount = s.PaidAmount.Sub(amount)
	if s.PaidAmount.IsNegative() {
		s.PaidAmount = decimal.Zero
	}
	s.touch()
}

func (s *Supplier) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
