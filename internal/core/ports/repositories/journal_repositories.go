package repositories

import (
	"context"

	"github.com/openretail/ledger_backend/internal/core/domain"
)

// JournalRepository reads the append-only journal. Appending happens through
// LedgerRepository.SaveEntry so the balance change and the record are one
// atomic unit.
type JournalRepository interface {
	// FindEntryByID retrieves a single journal entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntries returns entries matching the filter in insertion order, at most
	// limit at a time. nextToken restarts the scan where the previous page ended;
	// the returned token is nil on the last page. Re-listing with the same filter
	// against an unchanged journal yields an identical sequence.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.Entry, *string, error)

	// ScanEntries returns every entry matching the filter in insertion order.
	// Aggregation uses this full scan.
	ScanEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.Entry, error)
}
