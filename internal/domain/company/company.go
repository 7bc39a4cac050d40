package company

import (
	"context"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/atlascrm/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company is a tenant of the platform. Legacy records store the VAT rate as
// free text, so VatRate is kept as the raw string and parsed defensively
// where it is consumed.
type Company struct {
	shared.BaseAggregateRoot
	Name     string               `json:"name"`
	Country  string               `json:"country"`
	Currency valueobject.Currency `json:"currency"`
	VatRate  string               `json:"vat_rate"`
}

// New creates a company tenant
func New(name string, currency valueobject.Currency) (*Company, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Currency:          currency,
	}, nil
}

// VatRateDecimal parses the stored VAT rate. Empty or unparseable rates
// resolve to zero, which short-circuits the VAT computation.
func (c *Company) VatRateDecimal() decimal.Decimal {
	return valueobject.ParsePercent(c.VatRate)
}

// Repository defines persistence operations for companies
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	Save(ctx context.Context, company *Company) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
