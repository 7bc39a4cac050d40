package treasury

import (
	"context"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReceiptRepository defines persistence operations for receipts
type ReceiptRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Receipt, error)
	Save(ctx context.Context, receipt *Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPayment(ctx context.Context, paymentID uuid.UUID) error
}

// DisbursementRepository defines persistence operations for disbursements
type DisbursementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Disbursement, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Disbursement, error)
	Save(ctx context.Context, disbursement *Disbursement) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPayment(ctx context.Context, paymentID uuid.UUID) error
}

// CategoryRepository defines persistence operations for categories and natures
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, kind TransactionKind) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	// Delete removes a category; it must fail with a conflict error when the
	// category still has child natures.
	Delete(ctx context.Context, id uuid.UUID) error
	HasNatures(ctx context.Context, categoryID uuid.UUID) (bool, error)
	SaveNature(ctx context.Context, nature *Nature) error
	FindNatures(ctx context.Context, categoryID uuid.UUID) ([]Nature, error)
}

// SourceRepository defines persistence operations for transaction sources
type SourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Source, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID) ([]Source, error)
	Save(ctx context.Context, source *Source) error
	Delete(ctx context.Context, id uuid.UUID) error
}
