package repositories

// RepositoryProvider bundles every repository implementation behind one value
// so wiring the service container needs a single argument.
type RepositoryProvider struct {
	Ledger  LedgerRepository
	Journal JournalRepository
	Party   PartyRepository
}
