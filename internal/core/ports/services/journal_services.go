package services

import (
	"context"

	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/openretail/ledger_backend/internal/dto"
)

// JournalSvcFacade exposes the read side of the append-only journal. Appends
// happen only through the ledger mutation path.
type JournalSvcFacade interface {
	// GetEntryByID retrieves a single journal entry. The principal must be a
	// party the entry touches or hold VIEW_REPORTS.
	GetEntryByID(ctx context.Context, entryID string, principalID string) (*domain.Entry, error)

	// ListEntries returns a filtered, paginated view of the journal in insertion
	// order. Principals without VIEW_REPORTS may only list their own account.
	ListEntries(ctx context.Context, params dto.ListEntriesParams, principalID string) (*dto.ListEntriesResponse, error)
}
