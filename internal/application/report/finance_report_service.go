package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/atlascrm/backend/internal/domain/company"
	"github.com/atlascrm/backend/internal/domain/report"
	"github.com/atlascrm/backend/internal/domain/shared"
	"github.com/atlascrm/backend/internal/domain/shared/valueobject"
	"github.com/atlascrm/backend/internal/domain/treasury"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var one = decimal.NewFromInt(1)
var hundred = decimal.NewFromInt(100)

// VatDueResult is the outcome of the VAT computation, rounded to the
// integer currency unit.
type VatDueResult struct {
	CompanyID  uuid.UUID       `json:"company_id"`
	VatRate    decimal.Decimal `json:"vat_rate"`
	Collected  decimal.Decimal `json:"collected"`
	Deductible decimal.Decimal `json:"deductible"`
	Paid       decimal.Decimal `json:"paid"`
	Due        decimal.Decimal `json:"due"`
}

// FinanceReportService computes the financial aggregates over a company's
// invoices, purchase orders, receipts and disbursements. Every report checks
// company existence first so an unknown company yields NotFound rather than
// an empty result.
type FinanceReportService struct {
	reports   report.FinanceReportRepository
	companies company.Repository
	logger    *zap.Logger
}

// NewFinanceReportService creates the aggregation service
func NewFinanceReportService(reports report.FinanceReportRepository, companies company.Repository, logger *zap.Logger) *FinanceReportService {
	return &FinanceReportService{reports: reports, companies: companies, logger: logger}
}

func (s *FinanceReportService) requireCompany(ctx context.Context, companyID uuid.UUID) error {
	exists, err := s.companies.Exists(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to check company: %w", err)
	}
	if !exists {
		return shared.ErrCompanyNotFound
	}
	return nil
}

// OverdueSummary aggregates the company's overdue invoices as of the given
// instant. An invoice is overdue once asOf is strictly past its due date and
// its remainder is positive; settled invoices never appear regardless of age.
func (s *FinanceReportService) OverdueSummary(ctx context.Context, companyID uuid.UUID, asOf time.Time) (*report.OverdueSummary, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = time.Now()
	}

	invoices, err := s.reports.ListInvoices(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	summary := &report.OverdueSummary{
		CompanyID:        companyID,
		AsOf:             asOf,
		SumTotal:         decimal.Zero,
		SumUnpaid:        decimal.Zero,
		PercentageUnpaid: decimal.Zero,
		OverdueDetails:   []report.OverdueLine{},
	}

	for i := range invoices {
		inv := &invoices[i]
		if !inv.IsOverdue(asOf) {
			continue
		}

		total := inv.Total()
		remainder := inv.Remainder()
		dueDate := inv.DueDate()

		summary.SumTotal = summary.SumTotal.Add(total)
		summary.SumUnpaid = summary.SumUnpaid.Add(remainder)
		summary.OverdueDetails = append(summary.OverdueDetails, report.OverdueLine{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			ClientName:    inv.ClientName,
			Total:         total,
			Paid:          inv.PaidAmount,
			Remainder:     remainder,
			DueDate:       dueDate,
			DaysOverdue:   int(asOf.Sub(dueDate).Hours() / 24),
		})
	}

	summary.PercentageUnpaid = valueobject.RatioPercent(summary.SumUnpaid, summary.SumTotal)
	return summary, nil
}

// VatDue computes the VAT position of a company.
//
// The rate comes from the company record, where legacy data stores it as a
// free-text percentage; unparseable or empty text resolves to a zero rate and
// the computation short-circuits without touching the figures. Otherwise
// collected and deductible VAT are extracted from tax-inclusive totals
// (total * r / (1+r)) and fiscal disbursements already paid are subtracted.
// The result is rounded half up to the integer currency unit.
func (s *FinanceReportService) VatDue(ctx context.Context, companyID uuid.UUID) (*VatDueResult, error) {
	comp, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}
	if comp == nil {
		return nil, shared.ErrCompanyNotFound
	}

	result := &VatDueResult{
		CompanyID:  companyID,
		VatRate:    comp.VatRateDecimal(),
		Collected:  decimal.Zero,
		Deductible: decimal.Zero,
		Paid:       decimal.Zero,
		Due:        decimal.Zero,
	}

	if result.VatRate.LessThanOrEqual(decimal.Zero) {
		return result, nil
	}

	figures, err := s.reports.GetVatFigures(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load VAT figures: %w", err)
	}

	rate := result.VatRate.Div(hundred)
	divisor := one.Add(rate)

	collected := figures.TotalInvoicesTTC.Mul(rate).Div(divisor)
	deductible := figures.TotalPurchaseOrdersTTC.Mul(rate).Div(divisor)

	// Due is rounded once, on the raw difference. Rounding the components
	// first and then subtracting can drift a full unit away from that.
	result.Collected = collected.Round(0)
	result.Deductible = deductible.Round(0)
	result.Paid = figures.FiscalDisbursementsPaid.Round(0)
	result.Due = collected.Sub(deductible).Sub(figures.FiscalDisbursementsPaid).Round(0)

	return result, nil
}

// SourceBreakdown groups receipts and disbursements by their source name.
// Transactions without a source fall into the NO_SOURCE bucket. Buckets are
// ordered by descending absolute difference for stable output.
func (s *FinanceReportService) SourceBreakdown(ctx context.Context, companyID uuid.UUID) ([]report.SourceBreakdownLine, error) {
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}

	rows, err := s.reports.ListTransactions(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	type bucket struct {
		receipts      decimal.Decimal
		disbursements decimal.Decimal
	}
	buckets := make(map[string]*bucket)

	for _, row := range rows {
		name := report.NoSourceBucket
		if row.SourceName != nil && *row.SourceName != "" {
			name = *row.SourceName
		}
		b, ok := buckets[name]
		if !ok {
			b = &bucket{receipts: decimal.Zero, disbursements: decimal.Zero}
			buckets[name] = b
		}
		switch row.Kind {
		case treasury.TransactionKindReceipt:
			b.receipts = b.receipts.Add(row.Amount)
		case treasury.TransactionKindDisbursement:
			b.disbursements = b.disbursements.Add(row.Amount)
		}
	}

	lines := make([]report.SourceBreakdownLine, 0, len(buckets))
	for name, b := range buckets {
		diff := b.receipts.Sub(b.disbursements)
		lines = append(lines, report.SourceBreakdownLine{
			SourceName:           name,
			TotalReceipts:        b.receipts,
			TotalDisbursements:   b.disbursements,
			Difference:           diff,
			PercentageDifference: valueobject.RatioPercent(diff, b.receipts.Add(b.disbursements)),
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		di, dj := lines[i].Difference.Abs(), lines[j].Difference.Abs()
		if di.Equal(dj) {
			return lines[i].SourceName < lines[j].SourceName
		}
		return di.GreaterThan(dj)
	})
	return lines, nil
}

// CategoryBreakdown totals receipts or disbursements per category and
// expresses each as a percentage of the grand total. An empty data set
// yields an empty slice, not an error.
func (s *FinanceReportService) CategoryBreakdown(ctx context.Context, companyID uuid.UUID, kind treasury.TransactionKind) ([]report.CategoryLine, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Transaction kind must be RECEIPT or DISBURSEMENT")
	}
	if err := s.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}

	totals, err := s.reports.CategoryTotals(ctx, companyID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load category totals: %w", err)
	}

	grandTotal := decimal.Zero
	for _, t := range totals {
		grandTotal = grandTotal.Add(t.Total)
	}

	lines := make([]report.CategoryLine, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, report.CategoryLine{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			Total:        t.Total,
			Percentage:   valueobject.RatioPercent(t.Total, grandTotal),
		})
	}
	return lines, nil
}
