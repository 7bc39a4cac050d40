package persistence

import (
	"context"

	"github.com/atlascrm/backend/internal/domain/billing"
	"github.com/atlascrm/backend/internal/domain/report"
	"github.com/atlascrm/backend/internal/domain/treasury"
	"github.com/atlascrm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormFinanceReportRepository implements report.FinanceReportRepository using
// GORM. Each method is an independent query; reports combining several of
// them accept the resulting inconsistency window.
type GormFinanceReportRepository struct {
	db *gorm.DB
}

// NewGormFinanceReportRepository creates a new GormFinanceReportRepository
func NewGormFinanceReportRepository(db *gorm.DB) *GormFinanceReportRepository {
	return &GormFinanceReportRepository{db: db}
}

// ListInvoices loads every invoice of a company for in-memory aggregation
func (r *GormFinanceReportRepository) ListInvoices(ctx context.Context, companyID uuid.UUID) ([]billing.Invoice, error) {
	var rows []models.InvoiceModel
	if err := conn(ctx, r.db).
		Where("company_id = ?", companyID).
		Order("issue_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	invoices := make([]billing.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices, nil
}

// GetVatFigures sums the tax-inclusive document totals and the fiscal
// disbursements already paid. Only TTC-typed documents feed the VAT
// extraction; HT documents carry no embedded tax to extract.
func (r *GormFinanceReportRepository) GetVatFigures(ctx context.Context, companyID uuid.UUID) (report.VatFigures, error) {
	figures := report.VatFigures{
		TotalInvoicesTTC:        decimal.Zero,
		TotalPurchaseOrdersTTC:  decimal.Zero,
		FiscalDisbursementsPaid: decimal.Zero,
	}

	var invoicesTTC decimal.NullDecimal
	if err := conn(ctx, r.db).
		Model(&models.InvoiceModel{}).
		Select("SUM(amount)").
		Where("company_id = ? AND amount_type = ?", companyID, billing.AmountTypeTTC).
		Scan(&invoicesTTC).Error; err != nil {
		return figures, err
	}
	if invoicesTTC.Valid {
		figures.TotalInvoicesTTC = invoicesTTC.Decimal
	}

	var ordersTTC decimal.NullDecimal
	if err := conn(ctx, r.db).
		Model(&models.PurchaseOrderModel{}).
		Select("SUM(amount)").
		Where("company_id = ? AND amount_type = ?", companyID, billing.AmountTypeTTC).
		Scan(&ordersTTC).Error; err != nil {
		return figures, err
	}
	if ordersTTC.Valid {
		figures.TotalPurchaseOrdersTTC = ordersTTC.Decimal
	}

	var fiscalPaid decimal.NullDecimal
	if err := conn(ctx, r.db).
		Model(&models.DisbursementModel{}).
		Select("SUM(amount)").
		Where("company_id = ? AND is_fiscal = ? AND is_paid = ?", companyID, true, true).
		Scan(&fiscalPaid).Error; err != nil {
		return figures, err
	}
	if fiscalPaid.Valid {
		figures.FiscalDisbursementsPaid = fiscalPaid.Decimal
	}

	return figures, nil
}

type transactionScanRow struct {
	Amount     decimal.Decimal
	SourceName *string
}

// ListTransactions loads all receipt and disbursement rows with their source
// name resolved. A missing source relation yields a nil name.
func (r *GormFinanceReportRepository) ListTransactions(ctx context.Context, companyID uuid.UUID) ([]report.TransactionRow, error) {
	var receiptRows []transactionScanRow
	if err := conn(ctx, r.db).
		Model(&models.ReceiptModel{}).
		Select("receipts.amount, transaction_sources.name AS source_name").
		Joins("LEFT JOIN transaction_sources ON transaction_sources.id = receipts.source_id").
		Where("receipts.company_id = ?", companyID).
		Scan(&receiptRows).Error; err != nil {
		return nil, err
	}

	var disbursementRows []transactionScanRow
	if err := conn(ctx, r.db).
		Model(&models.DisbursementModel{}).
		Select("disbursements.amount, transaction_sources.name AS source_name").
		Joins("LEFT JOIN transaction_sources ON transaction_sources.id = disbursements.source_id").
		Where("disbursements.company_id = ?", companyID).
		Scan(&disbursementRows).Error; err != nil {
		return nil, err
	}

	rows := make([]report.TransactionRow, 0, len(receiptRows)+len(disbursementRows))
	for _, row := range receiptRows {
		rows = append(rows, report.TransactionRow{
			Kind:       treasury.TransactionKindReceipt,
			Amount:     row.Amount,
			SourceName: row.SourceName,
		})
	}
	for _, row := range disbursementRows {
		rows = append(rows, report.TransactionRow{
			Kind:       treasury.TransactionKindDisbursement,
			Amount:     row.Amount,
			SourceName: row.SourceName,
		})
	}
	return rows, nil
}

// CategoryTotals sums one transaction kind per category
func (r *GormFinanceReportRepository) CategoryTotals(ctx context.Context, companyID uuid.UUID, kind treasury.TransactionKind) ([]report.CategoryTotal, error) {
	table := "receipts"
	if kind == treasury.TransactionKindDisbursement {
		table = "disbursements"
	}

	var rows []report.CategoryTotal
	if err := conn(ctx, r.db).
		Table("transaction_categories").
		Select("transaction_categories.id AS category_id, transaction_categories.name AS category_name, COALESCE(SUM("+table+".amount), 0) AS total").
		Joins("JOIN "+table+" ON "+table+".category_id = transaction_categories.id").
		Where("transaction_categories.company_id = ? AND transaction_categories.kind = ?", companyID, kind).
		Group("transaction_categories.id, transaction_categories.name").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Ensure GormFinanceReportRepository implements report.FinanceReportRepository
var _ report.FinanceReportRepository = (*GormFinanceReportRepository)(nil)
