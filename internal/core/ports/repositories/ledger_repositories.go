package repositories

import (
	"context"

	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository persists account balances and commits value-moving events.
type LedgerRepository interface {
	// GetBalance returns the current balance of an account. Unknown accounts
	// report zero rather than an error; accounts exist implicitly.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// ListBalances returns every non-zero-history account with its balance.
	ListBalances(ctx context.Context) ([]domain.Balance, error)

	// TotalSupply returns the sum of all balances.
	TotalSupply(ctx context.Context) (decimal.Decimal, error)

	// SaveEntry applies the balance deltas and appends the journal entry as one
	// atomic unit: either both are durable on return, or neither is. The entry's
	// Sequence is assigned here. A delta that would drive a balance negative
	// fails with ErrInsufficientBalance and commits nothing.
	SaveEntry(ctx context.Context, entry domain.Entry, deltas map[string]decimal.Decimal) (*domain.Entry, error)
}
