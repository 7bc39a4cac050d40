package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoicePayment(t *testing.T) {
	companyID := uuid.New()
	invoiceID := uuid.New()

	p, err := NewInvoicePayment(companyID, invoiceID, decimal.NewFromInt(250), PaymentModeCash, time.Now())

	require.NoError(t, err)
	assert.True(t, p.IsInvoicePayment())
	assert.False(t, p.IsPurchaseOrderPayment())
	require.NotNil(t, p.InvoiceID)
	assert.Equal(t, invoiceID, *p.InvoiceID)
	assert.Nil(t, p.PurchaseOrderID)
	assert.NoError(t, p.Validate())
}

func TestNewPayment_Validation(t *testing.T) {
	companyID := uuid.New()

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewInvoicePayment(companyID, uuid.New(), decimal.Zero, PaymentModeCash, time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		_, err := NewPurchaseOrderPayment(companyID, uuid.New(), decimal.NewFromInt(10), PaymentMode("IOU"), time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects nil parent", func(t *testing.T) {
		_, err := NewInvoicePayment(companyID, uuid.Nil, decimal.NewFromInt(10), PaymentModeCash, time.Now())
		assert.Error(t, err)
	})
}

func TestPayment_Validate_LinkageInvariant(t *testing.T) {
	invoiceID := uuid.New()
	orderID := uuid.New()

	t.Run("orphan payment rejected", func(t *testing.T) {
		p := &Payment{CompanyID: uuid.New(), Amount: decimal.NewFromInt(10)}
		assert.Error(t, p.Validate())
	})

	t.Run("double linkage rejected", func(t *testing.T) {
		p := &Payment{
			CompanyID:       uuid.New(),
			Amount:          decimal.NewFromInt(10),
			InvoiceID:       &invoiceID,
			PurchaseOrderID: &orderID,
		}
		assert.Error(t, p.Validate())
	})
}
