package deletion

import (
	"context"

	"github.com/google/uuid"
)

// RequestRepository defines persistence operations for deletion requests
type RequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Request, error)
	// FindPendingByRecordIDs returns unvalidated requests targeting any of the
	// given records. Used for the idempotent short-circuit on request creation.
	FindPendingByRecordIDs(ctx context.Context, companyID uuid.UUID, recordIDs []uuid.UUID) ([]Request, error)
	FindPendingForCompany(ctx context.Context, companyID uuid.UUID) ([]Request, error)
	Save(ctx context.Context, request *Request) error
	SaveAll(ctx context.Context, requests []*Request) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PolicyRepository defines persistence operations for deletion policies
type PolicyRepository interface {
	FindForCompany(ctx context.Context, companyID uuid.UUID, recordType RecordType) (*Policy, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID) ([]Policy, error)
	Save(ctx context.Context, policy *Policy) error
}

// PolicyProvider resolves the effective deletion policy for a record type.
// Implementations may cache; the repository is the source of truth.
type PolicyProvider interface {
	PolicyFor(ctx context.Context, companyID uuid.UUID, recordType RecordType) (*Policy, error)
}
