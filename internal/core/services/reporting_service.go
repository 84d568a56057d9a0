package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// reportingService is the aggregation engine. Every computation is a pure
// function of the journal scan it runs over: no wall clock reads, no writes,
// and identical inputs always produce identical reports.
type reportingService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	authorizer  portssvc.AuthorizerSvc
}

// NewReportingService creates the aggregation engine over the journal.
func NewReportingService(journalRepo portsrepo.JournalRepository, authorizer portssvc.AuthorizerSvc) portssvc.ReportingSvcFacade {
	return &reportingService{journalRepo: journalRepo, authorizer: authorizer}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func validateReportFilter(filter dto.ReportFilter) error {
	if filter.Category != nil && !filter.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", apperrors.ErrInvalidFilter, *filter.Category)
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return fmt.Errorf("%w: range start after range end", apperrors.ErrInvalidFilter)
	}
	return nil
}

// Summarize computes period totals over the filtered journal.
//
// Revenue counts REVENUE entries; expenses count EXPENSE, TAX and PAYROLL.
// TRANSFER moves value between accounts without affecting either side of the
// income statement. The margin is net income as a whole percentage of revenue,
// truncated toward zero, and zero when revenue is zero.
func (s *reportingService) Summarize(ctx context.Context, filter dto.ReportFilter, principalID string) (*domain.FinancialReport, error) {
	if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapViewReports); err != nil {
		return nil, err
	}
	if err := validateReportFilter(filter); err != nil {
		return nil, err
	}

	entries, err := s.journalRepo.ScanEntries(ctx, filter.EntryFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to scan journal for summary")
		return nil, err
	}

	report := &domain.FinancialReport{
		ByCategory: make(map[domain.Category]decimal.Decimal),
		EntryCount: int64(len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		report.ByCategory[e.Category] = report.ByCategory[e.Category].Add(e.Amount)
	}

	report.TotalRevenue = report.ByCategory[domain.CategoryRevenue]
	report.TotalExpenses = report.ByCategory[domain.CategoryExpense].
		Add(report.ByCategory[domain.CategoryTax]).
		Add(report.ByCategory[domain.CategoryPayroll])
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)

	if report.TotalRevenue.Sign() > 0 {
		quotient, _ := report.NetIncome.Mul(oneHundred).QuoRem(report.TotalRevenue, 0)
		report.MarginPct = quotient.IntPart()
	}

	s.LogDebug(ctx, "Summary computed",
		slog.Int64("entry_count", report.EntryCount),
		slog.String("net_income", report.NetIncome.String()))
	return report, nil
}

// KPIs computes a volume rollup for the filtered period: total moved value,
// entry count, truncated average entry size, per-category totals, and the
// number of distinct accounts touched.
func (s *reportingService) KPIs(ctx context.Context, filter dto.ReportFilter, principalID string) (*domain.KPISnapshot, error) {
	if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapViewReports); err != nil {
		return nil, err
	}
	if err := validateReportFilter(filter); err != nil {
		return nil, err
	}

	entries, err := s.journalRepo.ScanEntries(ctx, filter.EntryFilter())
	if err != nil {
		s.LogError(ctx, err, "Failed to scan journal for KPIs")
		return nil, err
	}

	snapshot := &domain.KPISnapshot{
		EntryCount: int64(len(entries)),
		ByCategory: make(map[domain.Category]decimal.Decimal),
	}
	accounts := make(map[string]struct{})
	for i := range entries {
		e := &entries[i]
		snapshot.TotalVolume = snapshot.TotalVolume.Add(e.Amount)
		snapshot.ByCategory[e.Category] = snapshot.ByCategory[e.Category].Add(e.Amount)
		if e.Origin != nil {
			accounts[*e.Origin] = struct{}{}
		}
		if e.Destination != nil {
			accounts[*e.Destination] = struct{}{}
		}
	}
	snapshot.ActiveAccounts = int64(len(accounts))
	if snapshot.EntryCount > 0 {
		average, _ := snapshot.TotalVolume.QuoRem(decimal.NewFromInt(snapshot.EntryCount), 0)
		snapshot.AverageEntry = average
	}

	return snapshot, nil
}

// ProfileFor computes the cumulative in/out profile of one account from its
// full journal history. Parties may inspect their own profile without
// VIEW_REPORTS.
func (s *reportingService) ProfileFor(ctx context.Context, accountID string, principalID string) (*domain.CumulativeProfile, error) {
	if principalID != accountID {
		if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapViewReports); err != nil {
			return nil, err
		}
	}

	entries, err := s.journalRepo.ScanEntries(ctx, domain.EntryFilter{Account: &accountID})
	if err != nil {
		s.LogError(ctx, err, "Failed to scan journal for profile", slog.String("account_id", accountID))
		return nil, err
	}

	profile := cumulativeProfile(accountID, entries)
	return &profile, nil
}

// cumulativeProfile folds an account's journal history into its lifetime
// totals. Entries must already be filtered to the account and in insertion
// order.
func cumulativeProfile(accountID string, entries []domain.Entry) domain.CumulativeProfile {
	profile := domain.CumulativeProfile{
		AccountID:  accountID,
		EntryCount: int64(len(entries)),
	}
	for i := range entries {
		e := &entries[i]
		if e.Destination != nil && *e.Destination == accountID {
			profile.TotalIn = profile.TotalIn.Add(e.Amount)
		}
		if e.Origin != nil && *e.Origin == accountID {
			profile.TotalOut = profile.TotalOut.Add(e.Amount)
		}
		if profile.FirstActivity.IsZero() || e.OccurredAt.Before(profile.FirstActivity) {
			profile.FirstActivity = e.OccurredAt
		}
		if e.OccurredAt.After(profile.LastActivity) {
			profile.LastActivity = e.OccurredAt
		}
	}
	return profile
}
