package deletion

import (
	"time"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RecordType identifies the kind of business record a deletion request targets
type RecordType string

const (
	RecordTypeClients       RecordType = "CLIENTS"
	RecordTypeSuppliers     RecordType = "SUPPLIERS"
	RecordTypeContracts     RecordType = "CONTRACTS"
	RecordTypeInvoices      RecordType = "INVOICES"
	RecordTypePurchaseOrder RecordType = "PURCHASE_ORDERS"
	RecordTypeReceipts      RecordType = "RECEIPTS"
	RecordTypeDisbursements RecordType = "DISBURSEMENTS"
)

// IsValid checks if the record type is a known value
func (t RecordType) IsValid() bool {
	switch t {
	case RecordTypeClients, RecordTypeSuppliers, RecordTypeContracts,
		RecordTypeInvoices, RecordTypePurchaseOrder,
		RecordTypeReceipts, RecordTypeDisbursements:
		return true
	}
	return false
}

// String returns the string representation of RecordType
func (t RecordType) String() string {
	return string(t)
}

// Request represents a pending deletion of a business record.
// The target record stays fully usable until an approver validates the
// request; cancellation removes the request without touching the record.
type Request struct {
	shared.CompanyAggregateRoot
	RecordType  RecordType `json:"record_type"`
	RecordID    uuid.UUID  `json:"record_id"`
	RequestedBy uuid.UUID  `json:"requested_by"`
	IsValidated bool       `json:"is_validated"`
	ValidatedAt *time.Time `json:"validated_at"`
	ValidatedBy *uuid.UUID `json:"validated_by"`
}

// NewRequest creates a new unvalidated deletion request
func NewRequest(companyID uuid.UUID, recordType RecordType, recordID, requestedBy uuid.UUID) (*Request, error) {
	if !recordType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RECORD_TYPE", "Unknown record type: "+recordType.String())
	}
	if recordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECORD", "Record ID cannot be empty")
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Requesting user ID is required")
	}

	return &Request{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		RecordType:           recordType,
		RecordID:             recordID,
		RequestedBy:          requestedBy,
	}, nil
}

// Validate marks the request as validated by the given approver.
// The requester of a deletion may not approve it themselves.
func (r *Request) Validate(approverID uuid.UUID) error {
	if r.IsValidated {
		return shared.NewDomainError("INVALID_STATE", "Deletion request is already validated")
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Approving user ID is required")
	}
	if approverID == r.RequestedBy {
		return shared.ErrSelfApproval
	}

	now := time.Now()
	r.IsValidated = true
	r.ValidatedAt = &now
	r.ValidatedBy = &approverID
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// IsPending returns true while the request awaits approval
func (r *Request) IsPending() bool {
	return !r.IsValidated
}
