package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider bundles the PostgreSQL-backed repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		Ledger:  newPgxLedgerRepository(dbPool),
		Journal: newPgxJournalRepository(dbPool),
		Party:   newPgxPartyRepository(dbPool),
	}
}
