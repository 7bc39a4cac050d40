package deletion

import (
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Policy configures, per company and record type, whether deletions are
// applied immediately or deferred behind an approval request.
type Policy struct {
	shared.CompanyAggregateRoot
	RecordType      RecordType `json:"record_type"`
	RequireApproval bool       `json:"require_approval"`
}

// NewPolicy creates a deletion policy for a record type
func NewPolicy(companyID uuid.UUID, recordType RecordType, requireApproval bool) (*Policy, error) {
	if !recordType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RECORD_TYPE", "Unknown record type: "+recordType.String())
	}
	return &Policy{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		RecordType:           recordType,
		RequireApproval:      requireApproval,
	}, nil
}

// SetRequireApproval updates the policy setting
func (p *Policy) SetRequireApproval(requireApproval bool) {
	p.RequireApproval = requireApproval
	p.IncrementVersion()
}

// RequiresApproval decides whether a deletion of the given record type must
// go through the approval workflow. A missing policy defaults to immediate
// deletion, matching the behavior of companies that never configured one.
func RequiresApproval(p *Policy) bool {
	if p == nil {
		return false
	}
	return p.RequireApproval
}
