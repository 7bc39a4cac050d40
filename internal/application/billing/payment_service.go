package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/atlascrm/backend/internal/domain/billing"
	"github.com/atlascrm/backend/internal/domain/partner"
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/atlascrm/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentService drives the payment lifecycle. Every operation that touches
// more than one aggregate (document, treasury transaction, partner balance)
// runs inside a single unit of work so partial application is impossible.
type PaymentService struct {
	payments       billing.PaymentRepository
	invoices       billing.InvoiceRepository
	purchaseOrders billing.PurchaseOrderRepository
	receipts       treasury.ReceiptRepository
	disbursements  treasury.DisbursementRepository
	clients        partner.ClientRepository
	suppliers      partner.SupplierRepository
	uow            shared.UnitOfWork
	logger         *zap.Logger
}

// NewPaymentService creates a payment lifecycle service
func NewPaymentService(
	payments billing.PaymentRepository,
	invoices billing.InvoiceRepository,
	purchaseOrders billing.PurchaseOrderRepository,
	receipts treasury.ReceiptRepository,
	disbursements treasury.DisbursementRepository,
	clients partner.ClientRepository,
	suppliers partner.SupplierRepository,
	uow shared.UnitOfWork,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		payments:       payments,
		invoices:       invoices,
		purchaseOrders: purchaseOrders,
		receipts:       receipts,
		disbursements:  disbursements,
		clients:        clients,
		suppliers:      suppliers,
		uow:            uow,
		logger:         logger,
	}
}

// CreatePaymentInput carries the parameters of a new payment
type CreatePaymentInput struct {
	CompanyID       uuid.UUID
	InvoiceID       *uuid.UUID
	PurchaseOrderID *uuid.UUID
	Amount          decimal.Decimal
	Mode            billing.PaymentMode
	Reference       string
	PaidAt          time.Time
}

// CreatePayment records a payment against an invoice or a purchase order.
// It applies the amount to the document, creates the matching treasury
// transaction and moves the partner balance, all in one transaction.
func (s *PaymentService) CreatePayment(ctx context.Context, in CreatePaymentInput) (*billing.Payment, error) {
	switch {
	case in.InvoiceID != nil && in.PurchaseOrderID != nil:
		return nil, shared.NewDomainError("AMBIGUOUS_PAYMENT", "Payment cannot reference both an invoice and a purchase order")
	case in.InvoiceID != nil:
		return s.createInvoicePayment(ctx, in)
	case in.PurchaseOrderID != nil:
		return s.createPurchaseOrderPayment(ctx, in)
	default:
		return nil, shared.NewDomainError("ORPHAN_PAYMENT", "Payment must reference an invoice or a purchase order")
	}
}

func (s *PaymentService) createInvoicePayment(ctx context.Context, in CreatePaymentInput) (*billing.Payment, error) {
	invoice, err := s.invoices.FindByIDForCompany(ctx, in.CompanyID, *in.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	if invoice == nil {
		return nil, shared.ErrNotFound
	}

	payment, err := billing.NewInvoicePayment(in.CompanyID, invoice.ID, in.Amount, in.Mode, in.PaidAt)
	if err != nil {
		return nil, err
	}
	payment.Reference = in.Reference

	if err := invoice.ApplyPayment(in.Amount); err != nil {
		return nil, err
	}

	receipt, err := treasury.NewReceipt(in.CompanyID, in.Amount, "Payment on invoice "+invoice.InvoiceNumber, payment.PaidAt)
	if err != nil {
		return nil, err
	}
	receipt.LinkPayment(payment.ID)

	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		if err := s.payments.Save(txCtx, payment); err != nil {
			return err
		}
		if err := s.invoices.Save(txCtx, invoice); err != nil {
			return err
		}
		if err := s.receipts.Save(txCtx, receipt); err != nil {
			return err
		}

		client, err := s.clients.FindByIDForCompany(txCtx, in.CompanyID, invoice.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return shared.NewDomainError("CLIENT_NOT_FOUND", "Invoice client no longer exists")
		}
		client.RecordPayment(in.Amount)
		return s.clients.Save(txCtx, client)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.logger.Info("Invoice payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("amount", in.Amount.String()),
	)
	return payment, nil
}

func (s *PaymentService) createPurchaseOrderPayment(ctx context.Context, in CreatePaymentInput) (*billing.Payment, error) {
	order, err := s.purchaseOrders.FindByIDForCompany(ctx, in.CompanyID, *in.PurchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase order: %w", err)
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}

	payment, err := billing.NewPurchaseOrderPayment(in.CompanyID, order.ID, in.Amount, in.Mode, in.PaidAt)
	if err != nil {
		return nil, err
	}
	payment.Reference = in.Reference

	if err := order.ApplyPayment(in.Amount); err != nil {
		return nil, err
	}

	disbursement, err := treasury.NewDisbursement(in.CompanyID, in.Amount, "Payment on order "+order.OrderNumber, payment.PaidAt)
	if err != nil {
		return nil, err
	}
	disbursement.LinkPayment(payment.ID)
	disbursement.IsPaid = true

	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		if err := s.payments.Save(txCtx, payment); err != nil {
			return err
		}
		if err := s.purchaseOrders.Save(txCtx, order); err != nil {
			return err
		}
		if err := s.disbursements.Save(txCtx, disbursement); err != nil {
			return err
		}

		supplier, err := s.suppliers.FindByIDForCompany(txCtx, in.CompanyID, order.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return shared.NewDomainError("SUPPLIER_NOT_FOUND", "Order supplier no longer exists")
		}
		supplier.RecordPayment(in.Amount)
		return s.suppliers.Save(txCtx, supplier)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	s.logger.Info("Purchase order payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("purchase_order_id", order.ID.String()),
		zap.String("amount", in.Amount.String()),
	)
	return payment, nil
}

// DeletePayment reverses a payment completely: the parent document's paid
// amount is restored, the receipt or disbursement the payment produced is
// removed, the partner balance is put back and the payment row is deleted.
// All of it commits or none of it does.
func (s *PaymentService) DeletePayment(ctx context.Context, companyID, paymentID uuid.UUID) error {
	payment, err := s.payments.FindByIDForCompany(ctx, companyID, paymentID)
	if err != nil {
		return fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		return shared.ErrNotFound
	}
	if err := payment.Validate(); err != nil {
		return err
	}

	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		if payment.IsInvoicePayment() {
			return s.reverseInvoicePayment(txCtx, payment)
		}
		return s.reversePurchaseOrderPayment(txCtx, payment)
	})
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	s.logger.Info("Payment deleted and reversed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.String()),
	)
	return nil
}

func (s *PaymentService) reverseInvoicePayment(ctx context.Context, payment *billing.Payment) error {
	invoice, err := s.invoices.FindByID(ctx, *payment.InvoiceID)
	if err != nil {
		return err
	}
	if invoice != nil {
		if err := invoice.ReversePayment(payment.Amount); err != nil {
			return err
		}
		if err := s.invoices.Save(ctx, invoice); err != nil {
			return err
		}

		client, err := s.clients.FindByID(ctx, invoice.ClientID)
		if err != nil {
			return err
		}
		if client != nil {
			client.ReversePayment(payment.Amount)
			if err := s.clients.Save(ctx, client); err != nil {
				return err
			}
		}
	}

	if err := s.receipts.DeleteByPayment(ctx, payment.ID); err != nil {
		return err
	}
	return s.payments.Delete(ctx, payment.ID)
}

func (s *PaymentService) reversePurchaseOrderPayment(ctx context.Context, payment *billing.Payment) error {
	order, err := s.purchaseOrders.FindByID(ctx, *payment.PurchaseOrderID)
	if err != nil {
		return err
	}
	if order != nil {
		if err := order.ReversePayment(payment.Amount); err != nil {
			return err
		}
		if err := s.purchaseOrders.Save(ctx, order); err != nil {
			return err
		}

		supplier, err := s.suppliers.FindByID(ctx, order.SupplierID)
		if err != nil {
			return err
		}
		if supplier != nil {
			supplier.ReversePayment(payment.Amount)
			if err := s.suppliers.Save(ctx, supplier); err != nil {
				return err
			}
		}
	}

	if err := s.disbursements.DeleteByPayment(ctx, payment.ID); err != nil {
		return err
	}
	return s.payments.Delete(ctx, payment.ID)
}

// PaymentsForInvoice lists the payments applied to an invoice
func (s *PaymentService) PaymentsForInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.Payment, error) {
	return s.payments.FindByInvoice(ctx, invoiceID)
}

// PaymentsForPurchaseOrder lists the payments applied to a purchase order
func (s *PaymentService) PaymentsForPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]billing.Payment, error) {
	return s.payments.FindByPurchaseOrder(ctx, purchaseOrderID)
}
