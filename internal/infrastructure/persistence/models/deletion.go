package models

import (
	"time"

	"github.com/atlascrm/backend/internal/domain/deletion"
	"github.com/google/uuid"
)

// DeletionRequestModel is the persistence model for pending deletion requests
type DeletionRequestModel struct {
	CompanyAggregateModel
	RecordType  string     `gorm:"type:varchar(30);not null;index"`
	RecordID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	RequestedBy uuid.UUID  `gorm:"type:uuid;not null"`
	IsValidated bool       `gorm:"not null;default:false;index"`
	ValidatedAt *time.Time
	ValidatedBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (DeletionRequestModel) TableName() string {
	return "deletion_requests"
}

// ToDomain converts the persistence model to a domain Request
func (m *DeletionRequestModel) ToDomain() *deletion.Request {
	return &deletion.Request{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		RecordType:           deletion.RecordType(m.RecordType),
		RecordID:             m.RecordID,
		RequestedBy:          m.RequestedBy,
		IsValidated:          m.IsValidated,
		ValidatedAt:          m.ValidatedAt,
		ValidatedBy:          m.ValidatedBy,
	}
}

// FromDomain populates the persistence model from a domain Request
func (m *DeletionRequestModel) FromDomain(r *deletion.Request) {
	m.FromDomainCompanyAggregateRoot(r.CompanyAggregateRoot)
	m.RecordType = r.RecordType.String()
	m.RecordID = r.RecordID
	m.RequestedBy = r.RequestedBy
	m.IsValidated = r.IsValidated
	m.ValidatedAt = r.ValidatedAt
	m.ValidatedBy = r.ValidatedBy
}

// DeletionPolicyModel is the persistence model for deletion policies
type DeletionPolicyModel struct {
	CompanyAggregateModel
	RecordType      string `gorm:"type:varchar(30);not null;uniqueIndex:idx_policy_company_type,priority:2"`
	RequireApproval bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (DeletionPolicyModel) TableName() string {
	return "deletion_policies"
}

// ToDomain converts the persistence model to a domain Policy
func (m *DeletionPolicyModel) ToDomain() *deletion.Policy {
	return &deletion.Policy{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		RecordType:           deletion.RecordType(m.RecordType),
		RequireApproval:      m.RequireApproval,
	}
}

// FromDomain populates the persistence model from a domain Policy
func (m *DeletionPolicyModel) FromDomain(p *deletion.Policy) {
	m.FromDomainCompanyAggregateRoot(p.CompanyAggregateRoot)
	m.RecordType = p.RecordType.String()
	m.RequireApproval = p.RequireApproval
}
