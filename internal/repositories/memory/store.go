// Package memory provides an in-process repository provider backed by plain
// maps and a mutex. It powers tests and runs the server without PostgreSQL;
// the pgsql package is the durable equivalent.
package memory

import (
	"sync"

	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store is the shared state behind all three in-memory repositories. One mutex
// guards balances, journal and parties together so SaveEntry commits the
// balance change and the record as a single unit.
type Store struct {
	mu       sync.RWMutex
	balances map[string]decimal.Decimal
	entries  []domain.Entry
	byID     map[string]int // entry id -> index into entries
	parties  map[string]domain.Party
	byEmail  map[string]string // lowercase email -> party id
	seq      int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		balances: make(map[string]decimal.Decimal),
		byID:     make(map[string]int),
		parties:  make(map[string]domain.Party),
		byEmail:  make(map[string]string),
	}
}

// NewRepositoryProvider returns a provider whose repositories share one store.
func NewRepositoryProvider() *portsrepo.RepositoryProvider {
	store := NewStore()
	return &portsrepo.RepositoryProvider{
		Ledger:  NewLedgerRepository(store),
		Journal: NewJournalRepository(store),
		Party:   NewPartyRepository(store),
	}
}
