package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/hospital_ledger/internal/apperrors"
	"github.com/SscSPs/hospital_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/hospital_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hospital_ledger/internal/core/ports/services"
	"github.com/SscSPs/hospital_ledger/internal/utils/dates"
)

// rollupService implements the daily and weekly financial summaries.
type rollupService struct {
	BaseService
	journalRepo portsrepo.RollupQueries
	expenseRepo portsrepo.ExpenseReader
}

// NewRollupService creates a new rollup service with the provided options
func NewRollupService(journalRepo portsrepo.RollupQueries, expenseRepo portsrepo.ExpenseReader, options ...Option) portssvc.RollupSvc {
	svc := &rollupService{journalRepo: journalRepo, expenseRepo: expenseRepo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.RollupSvc = (*rollupService)(nil)

func (s *rollupService) LedgerDaily(ctx context.Context, from, to string, settings domain.LedgerSettings) (*domain.LedgerDailyReport, error) {
	fromDate, toDate, err := dates.ParseRange(from, to)
	if err != nil {
		return nil, err
	}
	report := &domain.LedgerDailyReport{
		From:   fromDate.Format(dates.Layout),
		To:     toDate.Format(dates.Layout),
		Rows:   []domain.LedgerDailyRow{},
		Totals: domain.NewLedgerFigures(),
	}

	count := dates.DayCount(fromDate, toDate)
	if count == 0 {
		return report, nil
	}
	if settings.MaxRollupDays > 0 && count > settings.MaxRollupDays {
		return nil, fmt.Errorf("%w: range of %d days exceeds the maximum of %d", apperrors.ErrValidation, count, settings.MaxRollupDays)
	}
	days := dates.Days(fromDate, toDate)

	totals, err := s.journalRepo.SumByDateAccountRefType(ctx, report.From, report.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger totals for rollup", slog.String("from", report.From), slog.String("to", report.To))
		return nil, fmt.Errorf("failed to load ledger totals: %w", err)
	}
	var expenses map[string]decimal.Decimal
	if s.expenseRepo != nil {
		expenses, err = s.expenseRepo.SumExpensesByDate(ctx, report.From, report.To)
		if err != nil {
			s.LogError(ctx, err, "Failed to load expenses for rollup", slog.String("from", report.From), slog.String("to", report.To))
			return nil, fmt.Errorf("failed to load expenses: %w", err)
		}
	}

	byDate := make(map[string]domain.LedgerFigures, len(days))
	for _, t := range totals {
		f, ok := byDate[t.DateISO]
		if !ok {
			f = domain.NewLedgerFigures()
		}
		byDate[t.DateISO] = ApplyAccountTotal(f, t)
	}

	for _, day := range days {
		f, ok := byDate[day]
		if !ok {
			f = domain.NewLedgerFigures()
		}
		if e, ok := expenses[day]; ok {
			f.Expenses = f.Expenses.Add(e)
		}
		f = f.Derive()
		report.Rows = append(report.Rows, domain.LedgerDailyRow{DateISO: day, LedgerFigures: f})
		report.Totals = report.Totals.Add(f)
	}
	return report, nil
}

// ApplyAccountTotal folds one grouped ledger total into a day's figures.
func ApplyAccountTotal(f domain.LedgerFigures, t domain.AccountDayTotal) domain.LedgerFigures {
	switch t.Account {
	case domain.OPDRevenue:
		f.OPDRevenue = f.OPDRevenue.Add(t.Credit)
	case domain.IPDRevenue:
		f.IPDRevenue = f.IPDRevenue.Add(t.Credit)
	case domain.ProcedureRevenue:
		f.ProcedureRevenue = f.ProcedureRevenue.Add(t.Credit)
	case domain.Cash:
		f.CashIn = f.CashIn.Add(t.Debit)
		f.CashOut = f.CashOut.Add(t.Credit)
	case domain.Bank:
		f.BankIn = f.BankIn.Add(t.Debit)
		f.BankOut = f.BankOut.Add(t.Credit)
	case domain.DoctorPayable:
		if t.RefType == domain.RefDoctorPayout {
			f.DoctorPayouts = f.DoctorPayouts.Add(t.Debit)
		}
	}
	return f
}

func (s *rollupService) LedgerWeekly(ctx context.Context, from, to string, settings domain.LedgerSettings) (*domain.LedgerWeeklyReport, error) {
	daily, err := s.LedgerDaily(ctx, from, to, settings)
	if err != nil {
		return nil, err
	}
	return &domain.LedgerWeeklyReport{
		From:   daily.From,
		To:     daily.To,
		Rows:   BucketWeeks(daily.Rows),
		Totals: daily.Totals,
	}, nil
}

// BucketWeeks sums daily rows into Monday-start weeks, ascending by week start.
// Daily rows must already be in ascending date order.
func BucketWeeks(days []domain.LedgerDailyRow) []domain.LedgerWeeklyRow {
	rows := []domain.LedgerWeeklyRow{}
	index := make(map[string]int)
	for _, d := range days {
		t, err := dates.Parse(d.DateISO)
		if err != nil {
			continue
		}
		start := dates.WeekStart(t)
		key := start.Format(dates.Layout)
		i, ok := index[key]
		if !ok {
			rows = append(rows, domain.LedgerWeeklyRow{
				WeekStart:     key,
				WeekEnd:       start.AddDate(0, 0, 6).Format(dates.Layout),
				LedgerFigures: domain.NewLedgerFigures(),
			})
			i = len(rows) - 1
			index[key] = i
		}
		rows[i].Days++
		rows[i].LedgerFigures = rows[i].LedgerFigures.Add(d.LedgerFigures)
	}
	return rows
}
