package partner

import (
	"time"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is a customer of the company. Due and PaidAmount are running
// balances maintained by the payment lifecycle: Due grows with invoicing,
// shrinks with payments, and payment deletion restores both.
type Client struct {
	shared.CompanyAggregateRoot
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Due        decimal.Decimal `json:"due"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// NewClient creates a client with zeroed balances
func NewClient(companyID uuid.UUID, name string) (*Client, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	return &Client{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Due:                  decimal.Zero,
		PaidAmount:           decimal.Zero,
	}, nil
}

// RecordInvoice increases what the client owes
func (c *Client) RecordInvoice(amount decimal.Decimal) {
	c.Due = c.Due.Add(amount)
	c.touch()
}

// RecordPayment moves amount from due to paid
func (c *Client) RecordPayment(amount decimal.Decimal) {
	c.Due = c.Due.Sub(amount)
	if c.Due.IsNegative() {
		c.Due = decimal.Zero
	}
	c.PaidAmount = c.PaidAmount.Add(amount)
	c.touch()
}

// ReversePayment undoes RecordPayment, clamping PaidAmount at zero
func (c *Client) ReversePayment(amount decimal.Decimal) {
	c.Due = c.Due.Add(amount)
	c.PaidAmount = c.PaidAmount.Sub(amount)
	if c.PaidAmount.IsNegative() {
		c.PaidAmount = decimal.Zero
	}
	c.touch()
}

func (c *Client) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
