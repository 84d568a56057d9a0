package services

import (
	"context"

	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/openretail/ledger_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerReaderSvc defines read operations over account balances.
type LedgerReaderSvc interface {
	// GetBalance returns the balance of an account; zero for unknown accounts.
	// The principal must be the account holder or hold VIEW_REPORTS.
	GetBalance(ctx context.Context, accountID string, principalID string) (decimal.Decimal, error)

	// TotalSupply returns the sum of all balances. Requires VIEW_REPORTS.
	TotalSupply(ctx context.Context, principalID string) (decimal.Decimal, error)
}

// LedgerWriterSvc defines the balance-mutating operations. Every successful call
// commits exactly one journal entry together with the balance change.
type LedgerWriterSvc interface {
	// Credit adds funds to an account. Requires PROCESS_PAYMENTS.
	Credit(ctx context.Context, req dto.CreditRequest, principalID string) (*domain.Entry, error)

	// Debit removes funds from an account, failing with ErrInsufficientBalance
	// rather than going negative. The principal must be the account holder or
	// the administrator.
	Debit(ctx context.Context, req dto.DebitRequest, principalID string) (*domain.Entry, error)

	// Transfer moves funds between two accounts atomically. The principal must
	// be the origin account holder or the administrator.
	Transfer(ctx context.Context, req dto.TransferRequest, principalID string) (*domain.Entry, error)

	// Mint creates external supply into an account. Administrator only.
	Mint(ctx context.Context, req dto.MintRequest, principalID string) (*domain.Entry, error)

	// Burn destroys supply out of an account. Administrator only.
	Burn(ctx context.Context, req dto.BurnRequest, principalID string) (*domain.Entry, error)
}

// LedgerSvcFacade combines all ledger operations.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
