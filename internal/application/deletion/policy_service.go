package deletion

import (
	"context"
	"fmt"

	"github.com/atlascrm/backend/internal/domain/deletion"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PolicyInvalidator drops cached policy entries after an update.
// The redis-backed policy provider implements it; a nil invalidator is
// accepted for deployments running without a cache.
type PolicyInvalidator interface {
	Invalidate(ctx context.Context, companyID uuid.UUID, recordType deletion.RecordType) error
}

// PolicyService administers the per-company deletion policies that gate the
// immediate-vs-deferred decision of the workflow.
type PolicyService struct {
	policies    deletion.PolicyRepository
	invalidator PolicyInvalidator
	logger      *zap.Logger
}

// NewPolicyService creates a policy administration service
func NewPolicyService(policies deletion.PolicyRepository, invalidator PolicyInvalidator, logger *zap.Logger) *PolicyService {
	return &PolicyService{policies: policies, invalidator: invalidator, logger: logger}
}

// ListPolicies returns the configured policies of a company. Record types
// without a stored policy default to immediate deletion.
func (s *PolicyService) ListPolicies(ctx context.Context, companyID uuid.UUID) ([]deletion.Policy, error) {
	return s.policies.FindAllForCompany(ctx, companyID)
}

// SetPolicy creates or updates the policy for one record type and drops the
// stale cache entry so the next workflow call sees the new setting.
func (s *PolicyService) SetPolicy(ctx context.Context, companyID uuid.UUID, recordType deletion.RecordType, requireApproval bool) (*deletion.Policy, error) {
	policy, err := s.policies.FindForCompany(ctx, companyID, recordType)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}
	if policy == nil {
		policy, err = deletion.NewPolicy(companyID, recordType, requireApproval)
		if err != nil {
			return nil, err
		}
	} else {
		policy.SetRequireApproval(requireApproval)
	}

	if err := s.policies.Save(ctx, policy); err != nil {
		return nil, fmt.Errorf("failed to save policy: %w", err)
	}

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, companyID, recordType); err != nil {
			// Cache entries expire on their own; a failed invalidation only
			// delays the new policy, it does not lose it.
			s.logger.Warn("Policy cache invalidation failed",
				zap.String("company_id", companyID.String()),
				zap.String("record_type", recordType.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Deletion policy updated",
		zap.String("company_id", companyID.String()),
		zap.String("record_type", recordType.String()),
		zap.Bool("require_approval", requireApproval),
	)
	return policy, nil
}
