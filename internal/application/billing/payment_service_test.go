package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atlascrm/backend/internal/domain/billing"
	"github.com/atlascrm/backend/internal/domain/partner"
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/atlascrm/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, purchaseOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Save(ctx context.Context, payment *billing.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *mockPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockInvoiceRepo struct{ mock.Mock }

func (m *mockInvoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) FindUnpaidForCompany(ctx context.Context, companyID uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) Save(ctx context.Context, invoice *billing.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInvoiceRepo) CountForCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).(int64), args.Error(1)
}

type mockPurchaseOrderRepo struct{ mock.Mock }

func (m *mockPurchaseOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*billing.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PurchaseOrder), args.Error(1)
}

func (m *mockPurchaseOrderRepo) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.PurchaseOrder, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PurchaseOrder), args.Error(1)
}

func (m *mockPurchaseOrderRepo) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.PurchaseOrder, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.PurchaseOrder), args.Error(1)
}

func (m *mockPurchaseOrderRepo) Save(ctx context.Context, order *billing.PurchaseOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockPurchaseOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockReceiptRepo struct{ mock.Mock }

func (m *mockReceiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*treasury.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*treasury.Receipt), args.Error(1)
}

func (m *mockReceiptRepo) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]treasury.Receipt, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]treasury.Receipt), args.Error(1)
}

func (m *mockReceiptRepo) Save(ctx context.Context, receipt *treasury.Receipt) error {
	return m.Called(ctx, receipt).Error(0)
}

func (m *mockReceiptRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReceiptRepo) DeleteByPayment(ctx context.Context, paymentID uuid.UUID) error {
	return m.Called(ctx, paymentID).Error(0)
}

type mockDisbursementRepo struct{ mock.Mock }

func (m *mockDisbursementRepo) FindByID(ctx context.Context, id uuid.UUID) (*treasury.Disbursement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*treasury.Disbursement), args.Error(1)
}

func (m *mockDisbursementRepo) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]treasury.Disbursement, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]treasury.Disbursement), args.Error(1)
}

func (m *mockDisbursementRepo) Save(ctx context.Context, disbursement *treasury.Disbursement) error {
	return m.Called(ctx, disbursement).Error(0)
}

func (m *mockDisbursementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDisbursementRepo) DeleteByPayment(ctx context.Context, paymentID uuid.UUID) error {
	return m.Called(ctx, paymentID).Error(0)
}

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *mockClientRepo) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *mockClientRepo) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *mockClientRepo) Save(ctx context.Context, client *partner.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *mockClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockSupplierRepo struct{ mock.Mock }

func (m *mockSupplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *mockSupplierRepo) Save(ctx context.Context, supplier *partner.Supplier) error {
	return m.Called(ctx, supplier).Error(0)
}

func (m *mockSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type passthroughUoW struct{}

func (passthroughUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type paymentFixture struct {
	service        *PaymentService
	payments       *mockPaymentRepo
	invoices       *mockInvoiceRepo
	purchaseOrders *mockPurchaseOrderRepo
	receipts       *mockReceiptRepo
	disbursements  *mockDisbursementRepo
	clients        *mockClientRepo
	suppliers      *mockSupplierRepo
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		payments:       new(mockPaymentRepo),
		invoices:       new(mockInvoiceRepo),
		purchaseOrders: new(mockPurchaseOrderRepo),
		receipts:       new(mockReceiptRepo),
		disbursements:  new(mockDisbursementRepo),
		clients:        new(mockClientRepo),
		suppliers:      new(mockSupplierRepo),
	}
	f.service = NewPaymentService(
		f.payments, f.invoices, f.purchaseOrders,
		f.receipts, f.disbursements,
		f.clients, f.suppliers,
		passthroughUoW{}, zap.NewNop(),
	)
	return f
}

func newTestInvoice(t *testing.T, companyID uuid.UUID, amount string) *billing.Invoice {
	t.Helper()
	invoice, err := billing.NewInvoice(
		companyID, "INV-001", uuid.New(), "Acme",
		decimal.RequireFromString(amount), billing.AmountTypeTTC,
		billing.PaymentTermNet30, time.Now().AddDate(0, -2, 0),
	)
	require.NoError(t, err)
	return invoice
}

func TestCreatePayment_Invoice(t *testing.T) {
	f := newPaymentFixture(t)
	companyID := uuid.New()
	invoice := newTestInvoice(t, companyID, "1000")
	client, err := partner.NewClient(companyID, "Acme")
	require.NoError(t, err)
	client.RecordInvoice(decimal.RequireFromString("1000"))
	invoice.ClientID = client.ID

	f.invoices.On("FindByIDForCompany", mock.Anything, companyID, invoice.ID).Return(invoice, nil)
	f.payments.On("Save", mock.Anything, mock.Anything).Return(nil)
	f.invoices.On("Save", mock.Anything, invoice).Return(nil)
	f.receipts.On("Save", mock.Anything, mock.MatchedBy(func(r *treasury.Receipt) bool {
		return r.PaymentID != nil && r.Amount.Equal(decimal.RequireFromString("400"))
	})).Return(nil)
	f.clients.On("FindByIDForCompany", mock.Anything, companyID, client.ID).Return(client, nil)
	f.clients.On("Save", mock.Anything, client).Return(nil)

	payment, err := f.service.CreatePayment(context.Background(), CreatePaymentInput{
		CompanyID: companyID,
		InvoiceID: &invoice.ID,
		Amount:    decimal.RequireFromString("400"),
		Mode:      billing.PaymentModeBankTransfer,
	})

	require.NoError(t, err)
	assert.True(t, payment.IsInvoicePayment())
	assert.True(t, invoice.PaidAmount.Equal(decimal.RequireFromString("400")))
	assert.False(t, invoice.IsPaid)
	assert.True(t, client.Due.Equal(decimal.RequireFromString("600")))
	assert.True(t, client.PaidAmount.Equal(decimal.RequireFromString("400")))
	f.receipts.AssertExpectations(t)
}

func TestCreatePayment_ExceedsRemainder(t *testing.T) {
	f := newPaymentFixture(t)
	companyID := uuid.New()
	invoice := newTestInvoice(t, companyID, "100")

	f.invoices.On("FindByIDForCompany", mock.Anything, companyID, invoice.ID).Return(invoice, nil)

	_, err := f.service.CreatePayment(context.Background(), CreatePaymentInput{
		CompanyID: companyID,
		InvoiceID: &invoice.ID,
		Amount:    decimal.RequireFromString("150"),
		Mode:      billing.PaymentModeCash,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXCEEDS_REMAINDER", domainErr.Code)
	f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreatePayment_LinkageValidation(t *testing.T) {
	f := newPaymentFixture(t)
	companyID := uuid.New()
	invoiceID := uuid.New()
	orderID := uuid.New()

	_, err := f.service.CreatePayment(context.Background(), CreatePaymentInput{
		CompanyID: companyID,
		Amount:    decimal.RequireFromString("10"),
		Mode:      billing.PaymentModeCash,
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ORPHAN_PAYMENT", domainErr.Code)

	_, err = f.service.CreatePayment(context.Background(), CreatePaymentInput{
		CompanyID:       companyID,
		InvoiceID:       &invoiceID,
		PurchaseOrderID: &orderID,
		Amount:          decimal.RequireFromString("10"),
		Mode:            billing.PaymentModeCash,
	})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "AMBIGUOUS_PAYMENT", domainErr.Code)
}

func TestDeletePayment_ReversesInvoiceAndClient(t *testing.T) {
	f := newPaymentFixture(t)
	companyID := uuid.New()
	invoice := newTestInvoice(t, companyID, "1000")
	client, err := partner.NewClient(companyID, "Acme")
	require.NoError(t, err)
	invoice.ClientID = client.ID

	client.RecordInvoice(decimal.RequireFromString("1000"))
	require.NoError(t, invoice.ApplyPayment(decimal.RequireFromString("1000")))
	client.RecordPayment(decimal.RequireFromString("1000"))
	require.True(t, invoice.IsPaid)

	payment, err := billing.NewInvoicePayment(companyID, invoice.ID, decimal.RequireFromString("1000"), billing.PaymentModeCash, time.Now())
	require.NoError(t, err)

	f.payments.On("FindByIDForCompany", mock.Anything, companyID, payment.ID).Return(payment, nil)
	f.invoices.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	f.invoices.On("Save", mock.Anything, invoice).Return(nil)
	f.clients.On("FindByID", mock.Anything, client.ID).Return(client, nil)
	f.clients.On("Save", mock.Anything, client).Return(nil)
	f.receipts.On("DeleteByPayment", mock.Anything, payment.ID).Return(nil)
	f.payments.On("Delete", mock.Anything, payment.ID).Return(nil)

	err = f.service.DeletePayment(context.Background(), companyID, payment.ID)

	require.NoError(t, err)
	assert.True(t, invoice.PaidAmount.IsZero())
	assert.False(t, invoice.IsPaid)
	assert.True(t, invoice.Remainder().Equal(decimal.RequireFromString("1000")))
	assert.True(t, client.Due.Equal(decimal.RequireFromString("1000")))
	assert.True(t, client.PaidAmount.IsZero())
	f.receipts.AssertExpectations(t)
	f.payments.AssertExpectations(t)
}

func TestDeletePayment_ClampsDirtyBalances(t *testing.T) {
	f := newPaymentFixture(t)
	companyID := uuid.New()
	invoice := newTestInvoice(t, companyID, "1000")
	// Historical data drift: the stored paid amount is below the payment
	// being reversed. The reversal must clamp at zero, not go negative.
	invoice.PaidAmount = decimal.RequireFromString("300")

	payment, err := billing.NewInvoicePayment(companyID, invoice.ID, decimal.RequireFromString("500"), billing.PaymentModeCash, time.Now())
	require.NoError(t, err)

	f.payments.On("FindByIDForCompany", mock.Anything, companyID, payment.ID).Return(payment, nil)
	f.invoices.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	f.invoices.On("Save", mock.Anything, invoice).Return(nil)
	f.clients.On("FindByID", mock.Anything, invoice.ClientID).Return(nil, nil)
	f.receipts.On("DeleteByPayment", mock.Anything, payment.ID).Return(nil)
	f.payments.On("Delete", mock.Anything, payment.ID).Return(nil)

	err = f.service.DeletePayment(context.Background(), companyID, payment.ID)

	require.NoError(t, err)
	assert.True(t, invoice.PaidAmount.IsZero())
}

func TestDeletePayment_StopsWhenReceiptDeleteFails(t *testing.T) {
	f := newPaymentFixture(t)
	companyID := uuid.New()
	invoice := newTestInvoice(t, companyID, "1000")
	require.NoError(t, invoice.ApplyPayment(decimal.RequireFromString("500")))

	payment, err := billing.NewInvoicePayment(companyID, invoice.ID, decimal.RequireFromString("500"), billing.PaymentModeCash, time.Now())
	require.NoError(t, err)

	f.payments.On("FindByIDForCompany", mock.Anything, companyID, payment.ID).Return(payment, nil)
	f.invoices.On("FindByID", mock.Anything, invoice.ID).Return(invoice, nil)
	f.invoices.On("Save", mock.Anything, invoice).Return(nil)
	f.clients.On("FindByID", mock.Anything, invoice.ClientID).Return(nil, nil)
	f.receipts.On("DeleteByPayment", mock.Anything, payment.ID).Return(errors.New("db down"))

	err = f.service.DeletePayment(context.Background(), companyID, payment.ID)

	require.Error(t, err)
	f.payments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeletePayment_PurchaseOrder(t *testing.T) {
	f := newPaymentFixture(t)
	companyID := uuid.New()
	supplier, err := partner.NewSupplier(companyID, "Supplies SA")
	require.NoError(t, err)

	order, err := billing.NewPurchaseOrder(
		companyID, "PO-001", supplier.ID, supplier.Name,
		decimal.RequireFromString("800"), billing.AmountTypeTTC, time.Now(),
	)
	require.NoError(t, err)
	supplier.RecordPurchaseOrder(decimal.RequireFromString("800"))
	require.NoError(t, order.ApplyPayment(decimal.RequireFromString("800")))
	supplier.RecordPayment(decimal.RequireFromString("800"))

	payment, err := billing.NewPurchaseOrderPayment(companyID, order.ID, decimal.RequireFromString("800"), billing.PaymentModeBankTransfer, time.Now())
	require.NoError(t, err)

	f.payments.On("FindByIDForCompany", mock.Anything, companyID, payment.ID).Return(payment, nil)
	f.purchaseOrders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.purchaseOrders.On("Save", mock.Anything, order).Return(nil)
	f.suppliers.On("FindByID", mock.Anything, supplier.ID).Return(supplier, nil)
	f.suppliers.On("Save", mock.Anything, supplier).Return(nil)
	f.disbursements.On("DeleteByPayment", mock.Anything, payment.ID).Return(nil)
	f.payments.On("Delete", mock.Anything, payment.ID).Return(nil)

	err = f.service.DeletePayment(context.Background(), companyID, payment.ID)

	require.NoError(t, err)
	assert.True(t, order.PaidAmount.IsZero())
	assert.False(t, order.IsPaid)
	assert.True(t, supplier.PaidAmount.IsZero())
	f.disbursements.AssertExpectations(t)
}

func TestDeletePayment_NotFound(t *testing.T) {
	f := newPaymentFixture(t)
	companyID := uuid.New()
	paymentID := uuid.New()

	f.payments.On("FindByIDForCompany", mock.Anything, companyID, paymentID).Return(nil, nil)

	err := f.service.DeletePayment(context.Background(), companyID, paymentID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
