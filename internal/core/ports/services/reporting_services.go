package services

import (
	"context"

	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/openretail/ledger_backend/internal/dto"
)

// ReportingSvcFacade is the aggregation engine: pure, read-only computation over
// the journal. Identical journal state and arguments always produce identical
// results.
type ReportingSvcFacade interface {
	// Summarize scans the journal through the filter and returns period totals,
	// net income, and the integer-truncated margin. Requires VIEW_REPORTS.
	Summarize(ctx context.Context, filter dto.ReportFilter, principalID string) (*domain.FinancialReport, error)

	// KPIs returns a volume/count rollup for the filtered period. Requires
	// VIEW_REPORTS.
	KPIs(ctx context.Context, filter dto.ReportFilter, principalID string) (*domain.KPISnapshot, error)

	// ProfileFor computes the cumulative profile of one account from its journal
	// history. The principal must be the account holder or hold VIEW_REPORTS.
	ProfileFor(ctx context.Context, accountID string, principalID string) (*domain.CumulativeProfile, error)
}
