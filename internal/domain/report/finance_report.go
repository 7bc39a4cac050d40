package report

import (
	"context"
	"time"

	"github.com/atlascrm/backend/internal/domain/billing"
	"github.com/atlascrm/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OverdueLine is a read model for one overdue invoice
type OverdueLine struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	Remainder     decimal.Decimal `json:"remainder"`
	DueDate       time.Time       `json:"due_date"`
	DaysOverdue   int             `json:"days_overdue"`
}

// OverdueSummary aggregates the overdue position of a company
type OverdueSummary struct {
	CompanyID        uuid.UUID       `json:"company_id"`
	AsOf             time.Time       `json:"as_of"`
	SumTotal         decimal.Decimal `json:"sum_total"`
	SumUnpaid        decimal.Decimal `json:"sum_unpaid"`
	PercentageUnpaid decimal.Decimal `json:"percentage_unpaid"`
	OverdueDetails   []OverdueLine   `json:"overdue_details"`
}

// SourceBreakdownLine is a read model for one source bucket.
// NoSourceBucket collects transactions whose source relation is null.
type SourceBreakdownLine struct {
	SourceName           string          `json:"source_name"`
	TotalReceipts        decimal.Decimal `json:"total_receipts"`
	TotalDisbursements   decimal.Decimal `json:"total_disbursements"`
	Difference           decimal.Decimal `json:"difference"`
	PercentageDifference decimal.Decimal `json:"percentage_difference"`
}

// NoSourceBucket is the sentinel bucket name for transactions without a source
const NoSourceBucket = "NO_SOURCE"

// CategoryLine is a read model for one category bucket
type CategoryLine struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Percentage   decimal.Decimal `json:"percentage"`
}

// TransactionRow is one receipt or disbursement row fed to the breakdowns.
// SourceName is nil when the source relation is missing.
type TransactionRow struct {
	Kind       treasury.TransactionKind
	Amount     decimal.Decimal
	SourceName *string
}

// VatFigures holds the raw sums the VAT computation operates on
type VatFigures struct {
	TotalInvoicesTTC        decimal.Decimal
	TotalPurchaseOrdersTTC  decimal.Decimal
	FiscalDisbursementsPaid decimal.Decimal
}

// CategoryTotal is one row of the per-category aggregate query
type CategoryTotal struct {
	CategoryID   uuid.UUID
	CategoryName string
	Total        decimal.Decimal
}

// FinanceReportRepository provides the row-level queries the aggregation
// engine computes over. Each method runs an independent query; reports that
// combine several of them can observe writes interleaved between sub-queries,
// which is an accepted inconsistency window.
type FinanceReportRepository interface {
	ListInvoices(ctx context.Context, companyID uuid.UUID) ([]billing.Invoice, error)
	GetVatFigures(ctx context.Context, companyID uuid.UUID) (VatFigures, error)
	ListTransactions(ctx context.Context, companyID uuid.UUID) ([]TransactionRow, error)
	CategoryTotals(ctx context.Context, companyID uuid.UUID, kind treasury.TransactionKind) ([]CategoryTotal, error)
}
