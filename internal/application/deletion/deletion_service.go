package deletion

import (
	"context"
	"fmt"

	"github.com/atlascrm/backend/internal/domain/company"
	"github.com/atlascrm/backend/internal/domain/deletion"
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecordDeleter physically removes one kind of business record and reports
// the object-storage keys of its attachments. One implementation is
// registered per deletion.RecordType.
type RecordDeleter interface {
	// AttachmentKeys lists storage keys owned by the record, collected before
	// deletion so the files can be removed after the transaction commits.
	AttachmentKeys(ctx context.Context, companyID, recordID uuid.UUID) ([]string, error)
	// DeleteRecord removes the record and its database-side dependents.
	// It runs inside the resolution transaction.
	DeleteRecord(ctx context.Context, companyID, recordID uuid.UUID) error
}

// ObjectStorage removes stored files during cascading deletes
type ObjectStorage interface {
	Remove(ctx context.Context, keys ...string) error
}

// ResolveAction is the approver's decision on a pending request
type ResolveAction string

const (
	ResolveActionCancel ResolveAction = "cancel"
	ResolveActionDelete ResolveAction = "delete"
)

// RequestResult reports whether a deletion was deferred behind approval
type RequestResult struct {
	Pending bool `json:"pending"`
}

// Service implements the deletion-approval workflow: destructive operations
// are either applied immediately or parked behind a Request that a second,
// authorized user must confirm or cancel.
type Service struct {
	requests  deletion.RequestRepository
	policies  deletion.PolicyProvider
	companies company.Repository
	deleters  map[deletion.RecordType]RecordDeleter
	storage   ObjectStorage
	uow       shared.UnitOfWork
	logger    *zap.Logger
}

// NewService creates a deletion workflow service
func NewService(
	requests deletion.RequestRepository,
	policies deletion.PolicyProvider,
	companies company.Repository,
	storage ObjectStorage,
	uow shared.UnitOfWork,
	logger *zap.Logger,
) *Service {
	return &Service{
		requests:  requests,
		policies:  policies,
		companies: companies,
		deleters:  make(map[deletion.RecordType]RecordDeleter),
		storage:   storage,
		uow:       uow,
		logger:    logger,
	}
}

// RegisterDeleter wires the physical deleter for a record type.
// Called once at startup by the hosting entry point.
func (s *Service) RegisterDeleter(recordType deletion.RecordType, deleter RecordDeleter) {
	s.deleters[recordType] = deleter
}

// RequestDeletionInput carries the parameters of a deletion request
type RequestDeletionInput struct {
	CompanyID   uuid.UUID
	RecordType  deletion.RecordType
	RecordIDs   []uuid.UUID
	RequestedBy uuid.UUID
}

// RequestDeletion enters the deletion workflow for one or more records.
//
// The company-level policy decides the path: record types configured for
// immediate deletion are removed on the spot and the result is not pending.
// Otherwise one unvalidated Request per record is created. If any of the
// records already has one outstanding, nothing new is created and the
// existing pending state is reported, so repeated requests are idempotent.
func (s *Service) RequestDeletion(ctx context.Context, in RequestDeletionInput) (*RequestResult, error) {
	if len(in.RecordIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one record ID is required")
	}
	if !in.RecordType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RECORD_TYPE", "Unknown record type: "+in.RecordType.String())
	}

	exists, err := s.companies.Exists(ctx, in.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to check company: %w", err)
	}
	if !exists {
		return nil, shared.ErrCompanyNotFound
	}

	policy, err := s.policies.PolicyFor(ctx, in.CompanyID, in.RecordType)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve deletion policy: %w", err)
	}

	if !deletion.RequiresApproval(policy) {
		if err := s.deleteRecords(ctx, in.CompanyID, in.RecordType, in.RecordIDs); err != nil {
			return nil, err
		}
		return &RequestResult{Pending: false}, nil
	}

	pending, err := s.requests.FindPendingByRecordIDs(ctx, in.CompanyID, in.RecordIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if len(pending) > 0 {
		s.logger.Info("Deletion already pending, skipping request creation",
			zap.String("company_id", in.CompanyID.String()),
			zap.String("record_type", in.RecordType.String()),
			zap.Int("pending", len(pending)),
		)
		return &RequestResult{Pending: true}, nil
	}

	requests := make([]*deletion.Request, 0, len(in.RecordIDs))
	for _, recordID := range in.RecordIDs {
		req, err := deletion.NewRequest(in.CompanyID, in.RecordType, recordID, in.RequestedBy)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := s.requests.SaveAll(ctx, requests); err != nil {
		return nil, fmt.Errorf("failed to save deletion requests: %w", err)
	}

	s.logger.Info("Deletion requests created",
		zap.String("company_id", in.CompanyID.String()),
		zap.String("record_type", in.RecordType.String()),
		zap.Int("count", len(requests)),
	)
	return &RequestResult{Pending: true}, nil
}

// ResolveDeletion settles a pending request.
//
// "cancel" removes the request and leaves the record untouched. "delete"
// validates the request (approver must differ from the requester), removes
// the record and the request in one transaction, then cleans up the record's
// stored files once the transaction has committed.
func (s *Service) ResolveDeletion(ctx context.Context, companyID, requestID uuid.UUID, action ResolveAction, approverID uuid.UUID) error {
	req, err := s.requests.FindByIDForCompany(ctx, companyID, requestID)
	if err != nil {
		return fmt.Errorf("failed to load deletion request: %w", err)
	}
	if req == nil || !req.IsPending() {
		return shared.ErrNotFound
	}

	switch action {
	case ResolveActionCancel:
		if err := s.requests.Delete(ctx, req.ID); err != nil {
			return fmt.Errorf("failed to cancel deletion request: %w", err)
		}
		s.logger.Info("Deletion request cancelled",
			zap.String("request_id", req.ID.String()),
			zap.String("record_type", req.RecordType.String()),
		)
		return nil

	case ResolveActionDelete:
		if err := req.Validate(approverID); err != nil {
			return err
		}

		deleter, ok := s.deleters[req.RecordType]
		if !ok {
			return shared.NewDomainError("UNSUPPORTED_RECORD_TYPE", "No deleter registered for "+req.RecordType.String())
		}

		keys, err := deleter.AttachmentKeys(ctx, req.CompanyID, req.RecordID)
		if err != nil {
			return fmt.Errorf("failed to list attachments: %w", err)
		}

		err = s.uow.Do(ctx, func(txCtx context.Context) error {
			if err := deleter.DeleteRecord(txCtx, req.CompanyID, req.RecordID); err != nil {
				return err
			}
			return s.requests.Delete(txCtx, req.ID)
		})
		if err != nil {
			return fmt.Errorf("failed to apply deletion: %w", err)
		}

		// Files are removed only after the database commit so a rollback
		// never leaves the record pointing at deleted objects.
		if len(keys) > 0 {
			if err := s.storage.Remove(ctx, keys...); err != nil {
				s.logger.Warn("Record deleted but attachment cleanup failed",
					zap.String("record_id", req.RecordID.String()),
					zap.Strings("keys", keys),
					zap.Error(err),
				)
			}
		}

		s.logger.Info("Deletion request approved and applied",
			zap.String("request_id", req.ID.String()),
			zap.String("record_type", req.RecordType.String()),
			zap.String("approved_by", approverID.String()),
		)
		return nil

	default:
		return shared.NewDomainError("INVALID_ACTION", "Action must be cancel or delete")
	}
}

// PendingRequests lists the unresolved requests of a company
func (s *Service) PendingRequests(ctx context.Context, companyID uuid.UUID) ([]deletion.Request, error) {
	exists, err := s.companies.Exists(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to check company: %w", err)
	}
	if !exists {
		return nil, shared.ErrCompanyNotFound
	}
	return s.requests.FindPendingForCompany(ctx, companyID)
}

// deleteRecords applies an immediate (non-deferred) deletion
func (s *Service) deleteRecords(ctx context.Context, companyID uuid.UUID, recordType deletion.RecordType, recordIDs []uuid.UUID) error {
	deleter, ok := s.deleters[recordType]
	if !ok {
		return shared.NewDomainError("UNSUPPORTED_RECORD_TYPE", "No deleter registered for "+recordType.String())
	}

	var keys []string
	for _, recordID := range recordIDs {
		recordKeys, err := deleter.AttachmentKeys(ctx, companyID, recordID)
		if err != nil {
			return fmt.Errorf("failed to list attachments: %w", err)
		}
		keys = append(keys, recordKeys...)
	}

	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		for _, recordID := range recordIDs {
			if err := deleter.DeleteRecord(txCtx, companyID, recordID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}

	if len(keys) > 0 {
		if err := s.storage.Remove(ctx, keys...); err != nil {
			s.logger.Warn("Records deleted but attachment cleanup failed",
				zap.Strings("keys", keys),
				zap.Error(err),
			)
		}
	}
	return nil
}
