package memory

import (
	"context"
	"fmt"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	"github.com/openretail/ledger_backend/internal/utils/pagination"
)

type journalRepository struct {
	store *Store
}

// NewJournalRepository creates the in-memory journal repository.
func NewJournalRepository(store *Store) portsrepo.JournalRepository {
	return &journalRepository{store: store}
}

var _ portsrepo.JournalRepository = (*journalRepository)(nil)

func (r *journalRepository) FindEntryByID(_ context.Context, entryID string) (*domain.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx, ok := r.store.byID[entryID]
	if !ok {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrNotFound, entryID)
	}
	entry := r.store.entries[idx]
	return &entry, nil
}

// ListEntries walks the journal in insertion order, resuming strictly after the
// sequence encoded in the token. Against an unchanged journal the same filter
// and token always yield the same page.
func (r *journalRepository) ListEntries(_ context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	var afterSeq int64
	if nextToken != nil && *nextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		afterSeq = seq
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	page := make([]domain.Entry, 0, limit)
	var more bool
	for i := range r.store.entries {
		e := r.store.entries[i]
		if e.Sequence <= afterSeq || !filter.Matches(e) {
			continue
		}
		if len(page) == limit {
			more = true
			break
		}
		page = append(page, e)
	}

	var token *string
	if more && len(page) > 0 {
		t := pagination.EncodeSequenceToken(page[len(page)-1].Sequence)
		token = &t
	}
	return page, token, nil
}

func (r *journalRepository) ScanEntries(_ context.Context, filter domain.EntryFilter) ([]domain.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]domain.Entry, 0)
	for i := range r.store.entries {
		if filter.Matches(r.store.entries[i]) {
			matched = append(matched, r.store.entries[i])
		}
	}
	return matched, nil
}
