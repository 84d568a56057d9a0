package repositories

import (
	"context"

	"github.com/openretail/ledger_backend/internal/core/domain"
)

// PartyRepository persists parties (employees, customers, the administrator).
type PartyRepository interface {
	// SaveParty inserts a new party. ErrDuplicate if the id or email is taken.
	SaveParty(ctx context.Context, party domain.Party) error

	// FindPartyByID retrieves a party. ErrNotFound when unknown.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// FindPartyByEmail retrieves a party by email. ErrNotFound when unknown.
	FindPartyByEmail(ctx context.Context, email string) (*domain.Party, error)

	// ListParties returns parties ordered by join time, paginated by token.
	ListParties(ctx context.Context, limit int, nextToken *string) ([]domain.Party, *string, error)

	// UpdateParty overwrites an existing party. ErrNotFound when unknown.
	UpdateParty(ctx context.Context, party domain.Party) error
}
