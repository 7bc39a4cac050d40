package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInvoice(t *testing.T, amount int64, term PaymentTerm, issued time.Time) *Invoice {
	t.Helper()
	inv, err := NewInvoice(
		uuid.New(), "INV-0001", uuid.New(), "Test Client",
		decimal.NewFromInt(amount), AmountTypeTTC, term, issued,
	)
	require.NoError(t, err)
	return inv
}

func TestInvoice_Remainder(t *testing.T) {
	inv := newTestInvoice(t, 1000, PaymentTermNet30, time.Now())

	assert.True(t, inv.Remainder().Equal(decimal.NewFromInt(1000)))

	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(400)))
	assert.True(t, inv.Remainder().Equal(decimal.NewFromInt(600)))
	assert.False(t, inv.IsPaid)

	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(600)))
	assert.True(t, inv.Remainder().IsZero())
	assert.True(t, inv.IsPaid)
}

func TestInvoice_ApplyPayment_Validation(t *testing.T) {
	inv := newTestInvoice(t, 100, PaymentTermOnReceipt, time.Now())

	assert.Error(t, inv.ApplyPayment(decimal.Zero))
	assert.Error(t, inv.ApplyPayment(decimal.NewFromInt(-5)))
	assert.Error(t, inv.ApplyPayment(decimal.NewFromInt(101)))
}

func TestInvoice_ReversePayment(t *testing.T) {
	t.Run("restores remainder and clears paid flag", func(t *testing.T) {
		inv := newTestInvoice(t, 500, PaymentTermNet15, time.Now())
		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(500)))
		require.True(t, inv.IsPaid)

		require.NoError(t, inv.ReversePayment(decimal.NewFromInt(500)))

		assert.True(t, inv.PaidAmount.IsZero())
		assert.False(t, inv.IsPaid)
		assert.True(t, inv.Remainder().Equal(decimal.NewFromInt(500)))
	})

	t.Run("floor-clamps paid amount at zero", func(t *testing.T) {
		inv := newTestInvoice(t, 500, PaymentTermNet15, time.Now())
		require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(100)))

		require.NoError(t, inv.ReversePayment(decimal.NewFromInt(300)))

		assert.True(t, inv.PaidAmount.IsZero())
		assert.False(t, inv.PaidAmount.IsNegative())
	})
}

func TestInvoice_Overdue(t *testing.T) {
	issued := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	inv := newTestInvoice(t, 1000, PaymentTermNet30, issued)

	dueDate := issued.AddDate(0, 0, 30)
	assert.Equal(t, dueDate, inv.DueDate())

	// One second either side of the deadline.
	assert.False(t, inv.IsOverdue(dueDate))
	assert.False(t, inv.IsOverdue(dueDate.Add(-time.Second)))
	assert.True(t, inv.IsOverdue(dueDate.Add(time.Second)))

	// A settled invoice never ages.
	require.NoError(t, inv.ApplyPayment(decimal.NewFromInt(1000)))
	assert.False(t, inv.IsOverdue(dueDate.AddDate(0, 0, 60)))
}

func TestPaymentTerm_Days(t *testing.T) {
	assert.Equal(t, 30, PaymentTermNet30.Days())
	assert.Equal(t, 0, PaymentTermOnReceipt.Days())
	// Unresolvable codes default to immediately due.
	assert.Equal(t, 0, PaymentTerm("LEGACY_CODE").Days())
}
