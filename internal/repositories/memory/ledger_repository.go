package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type ledgerRepository struct {
	store *Store
}

// NewLedgerRepository creates the in-memory ledger repository.
func NewLedgerRepository(store *Store) portsrepo.LedgerRepository {
	return &ledgerRepository{store: store}
}

var _ portsrepo.LedgerRepository = (*ledgerRepository)(nil)

func (r *ledgerRepository) GetBalance(_ context.Context, accountID string) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.balances[accountID], nil
}

func (r *ledgerRepository) ListBalances(_ context.Context) ([]domain.Balance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	balances := make([]domain.Balance, 0, len(r.store.balances))
	for accountID, amount := range r.store.balances {
		balances = append(balances, domain.Balance{AccountID: accountID, Amount: amount})
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].AccountID < balances[j].AccountID })
	return balances, nil
}

func (r *ledgerRepository) TotalSupply(_ context.Context) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	total := decimal.Zero
	for _, amount := range r.store.balances {
		total = total.Add(amount)
	}
	return total, nil
}

// SaveEntry applies the deltas and appends the entry under one lock hold. The
// non-negativity check runs against current state inside the critical section;
// service-level pre-checks only produce friendlier errors earlier.
func (r *ledgerRepository) SaveEntry(_ context.Context, entry domain.Entry, deltas map[string]decimal.Decimal) (*domain.Entry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	next := make(map[string]decimal.Decimal, len(deltas))
	for accountID, delta := range deltas {
		updated := r.store.balances[accountID].Add(delta)
		if updated.Sign() < 0 {
			return nil, fmt.Errorf("%w: account %s would drop to %s",
				apperrors.ErrInsufficientBalance, accountID, updated.String())
		}
		next[accountID] = updated
	}
	for accountID, updated := range next {
		r.store.balances[accountID] = updated
	}

	r.store.seq++
	entry.Sequence = r.store.seq
	r.store.byID[entry.EntryID] = len(r.store.entries)
	r.store.entries = append(r.store.entries, entry)

	saved := entry
	return &saved, nil
}
