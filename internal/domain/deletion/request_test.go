package deletion

import (
	"testing"

	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordType_WireValues(t *testing.T) {
	wire := map[RecordType]string{
		RecordTypeClients:       "CLIENTS",
		RecordTypeSuppliers:     "SUPPLIERS",
		RecordTypeContracts:     "CONTRACTS",
		RecordTypeInvoices:      "INVOICES",
		RecordTypePurchaseOrder: "PURCHASE_ORDERS",
		RecordTypeReceipts:      "RECEIPTS",
		RecordTypeDisbursements: "DISBURSEMENTS",
	}

	for rt, want := range wire {
		assert.Equal(t, want, rt.String())
		assert.True(t, rt.IsValid(), want)
	}
}

func TestNewRequest(t *testing.T) {
	companyID := uuid.New()
	recordID := uuid.New()
	userID := uuid.New()

	t.Run("creates pending request", func(t *testing.T) {
		req, err := NewRequest(companyID, RecordTypeClients, recordID, userID)

		require.NoError(t, err)
		assert.True(t, req.IsPending())
		assert.False(t, req.IsValidated)
		assert.Equal(t, companyID, req.CompanyID)
		assert.Equal(t, recordID, req.RecordID)
	})

	t.Run("rejects unknown record type", func(t *testing.T) {
		_, err := NewRequest(companyID, RecordType("WIDGETS"), recordID, userID)
		assert.Error(t, err)
	})

	t.Run("rejects empty record ID", func(t *testing.T) {
		_, err := NewRequest(companyID, RecordTypeClients, uuid.Nil, userID)
		assert.Error(t, err)
	})
}

func TestRequest_Validate(t *testing.T) {
	companyID := uuid.New()
	requester := uuid.New()

	t.Run("marks request validated", func(t *testing.T) {
		req, err := NewRequest(companyID, RecordTypeSuppliers, uuid.New(), requester)
		require.NoError(t, err)

		approver := uuid.New()
		require.NoError(t, req.Validate(approver))

		assert.True(t, req.IsValidated)
		assert.False(t, req.IsPending())
		require.NotNil(t, req.ValidatedBy)
		assert.Equal(t, approver, *req.ValidatedBy)
		assert.NotNil(t, req.ValidatedAt)
	})

	t.Run("rejects approval by the requester", func(t *testing.T) {
		req, err := NewRequest(companyID, RecordTypeSuppliers, uuid.New(), requester)
		require.NoError(t, err)

		err = req.Validate(requester)
		assert.ErrorIs(t, err, shared.ErrSelfApproval)
		assert.True(t, req.IsPending())
	})

	t.Run("rejects double validation", func(t *testing.T) {
		req, err := NewRequest(companyID, RecordTypeReceipts, uuid.New(), requester)
		require.NoError(t, err)
		require.NoError(t, req.Validate(uuid.New()))

		assert.Error(t, req.Validate(uuid.New()))
	})
}

func TestRequiresApproval(t *testing.T) {
	t.Run("nil policy defaults to immediate deletion", func(t *testing.T) {
		assert.False(t, RequiresApproval(nil))
	})

	t.Run("honors configured policy", func(t *testing.T) {
		p, err := NewPolicy(uuid.New(), RecordTypeContracts, true)
		require.NoError(t, err)
		assert.True(t, RequiresApproval(p))
	})
}
