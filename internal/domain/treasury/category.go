package treasury

import (
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Category groups transactions of one kind (receipts or disbursements).
// A category cannot be deleted while it still has child natures.
type Category struct {
	shared.CompanyAggregateRoot
	Name string          `json:"name"`
	Kind TransactionKind `json:"kind"`
}

// NewCategory creates a transaction category
func NewCategory(companyID uuid.UUID, name string, kind TransactionKind) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Transaction kind must be RECEIPT or DISBURSEMENT")
	}
	return &Category{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Kind:                 kind,
	}, nil
}

// Nature refines a category (e.g. "Taxes" under "Administration")
type Nature struct {
	shared.CompanyAggregateRoot
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	// IsVatPayment flags natures whose disbursements count as VAT already paid
	IsVatPayment bool `json:"is_vat_payment"`
}

// NewNature creates a nature under a category
func NewNature(companyID, categoryID uuid.UUID, name string) (*Nature, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Nature name cannot be empty")
	}
	return &Nature{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		CategoryID:           categoryID,
		Name:                 name,
	}, nil
}

// Source identifies where a transaction's money came from or went to
// (cash desk, bank account, mobile wallet, ...)
type Source struct {
	shared.CompanyAggregateRoot
	Name string `json:"name"`
}

// NewSource creates a transaction source
func NewSource(companyID uuid.UUID, name string) (*Source, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Source name cannot be empty")
	}
	return &Source{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
	}, nil
}
