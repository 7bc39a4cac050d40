package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/atlascrm/backend/internal/domain/billing"
	"github.com/atlascrm/backend/internal/domain/partner"
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DocumentService creates and lists the billable documents (invoices and
// purchase orders) and keeps the partner running balances in step with them.
type DocumentService struct {
	invoices       billing.InvoiceRepository
	purchaseOrders billing.PurchaseOrderRepository
	clients        partner.ClientRepository
	suppliers      partner.SupplierRepository
	uow            shared.UnitOfWork
	logger         *zap.Logger
}

// NewDocumentService creates a billing document service
func NewDocumentService(
	invoices billing.InvoiceRepository,
	purchaseOrders billing.PurchaseOrderRepository,
	clients partner.ClientRepository,
	suppliers partner.SupplierRepository,
	uow shared.UnitOfWork,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		invoices:       invoices,
		purchaseOrders: purchaseOrders,
		clients:        clients,
		suppliers:      suppliers,
		uow:            uow,
		logger:         logger,
	}
}

// CreateInvoiceInput carries the parameters of a new invoice
type CreateInvoiceInput struct {
	CompanyID     uuid.UUID
	InvoiceNumber string
	ClientID      uuid.UUID
	Amount        decimal.Decimal
	AmountType    billing.AmountType
	PaymentTerm   billing.PaymentTerm
	IssueDate     time.Time
	Remark        string
}

// CreateInvoice issues an invoice to a client and raises the client's due
// balance by its total, in one transaction.
func (s *DocumentService) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*billing.Invoice, error) {
	client, err := s.clients.FindByIDForCompany(ctx, in.CompanyID, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, shared.ErrNotFound
	}

	invoice, err := billing.NewInvoice(
		in.CompanyID, in.InvoiceNumber, client.ID, client.Name,
		in.Amount, in.AmountType, in.PaymentTerm, in.IssueDate,
	)
	if err != nil {
		return nil, err
	}
	invoice.Remark = in.Remark
	client.RecordInvoice(invoice.Total())

	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		if err := s.invoices.Save(txCtx, invoice); err != nil {
			return err
		}
		return s.clients.Save(txCtx, client)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	s.logger.Info("Invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("amount", invoice.Amount.String()),
	)
	return invoice, nil
}

// CreatePurchaseOrderInput carries the parameters of a new purchase order
type CreatePurchaseOrderInput struct {
	CompanyID   uuid.UUID
	OrderNumber string
	SupplierID  uuid.UUID
	Amount      decimal.Decimal
	AmountType  billing.AmountType
	IssueDate   time.Time
	Remark      string
}

// CreatePurchaseOrder raises an order on a supplier and the supplier's due
// balance with it, in one transaction.
func (s *DocumentService) CreatePurchaseOrder(ctx context.Context, in CreatePurchaseOrderInput) (*billing.PurchaseOrder, error) {
	supplier, err := s.suppliers.FindByIDForCompany(ctx, in.CompanyID, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplier: %w", err)
	}
	if supplier == nil {
		return nil, shared.ErrNotFound
	}

	order, err := billing.NewPurchaseOrder(
		in.CompanyID, in.OrderNumber, supplier.ID, supplier.Name,
		in.Amount, in.AmountType, in.IssueDate,
	)
	if err != nil {
		return nil, err
	}
	order.Remark = in.Remark
	supplier.RecordPurchaseOrder(order.Total())

	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		if err := s.purchaseOrders.Save(txCtx, order); err != nil {
			return err
		}
		return s.suppliers.Save(txCtx, supplier)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase order: %w", err)
	}

	s.logger.Info("Purchase order created",
		zap.String("purchase_order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("amount", order.Amount.String()),
	)
	return order, nil
}

// ListInvoices pages through a company's invoices
func (s *DocumentService) ListInvoices(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	return s.invoices.FindAllForCompany(ctx, companyID, filter)
}

// ListPurchaseOrders pages through a company's purchase orders
func (s *DocumentService) ListPurchaseOrders(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]billing.PurchaseOrder, error) {
	return s.purchaseOrders.FindAllForCompany(ctx, companyID, filter)
}

// GetInvoice loads one invoice scoped to the company
func (s *DocumentService) GetInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) (*billing.Invoice, error) {
	invoice, err := s.invoices.FindByIDForCompany(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, shared.ErrNotFound
	}
	return invoice, nil
}

// GetPurchaseOrder loads one purchase order scoped to the company
func (s *DocumentService) GetPurchaseOrder(ctx context.Context, companyID, orderID uuid.UUID) (*billing.PurchaseOrder, error) {
	order, err := s.purchaseOrders.FindByIDForCompany(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}
	return order, nil
}
