package services

import (
	"context"

	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/openretail/ledger_backend/internal/dto"
)

// PartyReaderSvc defines read operations for party data.
type PartyReaderSvc interface {
	// GetPartyByID retrieves a party. The principal must be the party itself or
	// hold MANAGE_PARTIES.
	GetPartyByID(ctx context.Context, partyID string, principalID string) (*domain.Party, error)

	// ListParties returns a paginated list of parties. Requires MANAGE_PARTIES.
	ListParties(ctx context.Context, params dto.ListPartiesParams, principalID string) (*dto.ListPartiesResponse, error)
}

// PartyWriterSvc defines mutations on party records.
type PartyWriterSvc interface {
	// RegisterParty creates a new party. Requires MANAGE_PARTIES.
	RegisterParty(ctx context.Context, req dto.RegisterPartyRequest, principalID string) (*domain.Party, error)

	// PatchParty applies an optional-field patch. The principal must be the party
	// itself or hold MANAGE_PARTIES; role and status changes always require
	// MANAGE_PARTIES.
	PatchParty(ctx context.Context, partyID string, patch domain.PartyPatch, principalID string) (*domain.Party, error)

	// TerminateParty sets the party's status to TERMINATED. Parties are never
	// deleted. Requires MANAGE_PARTIES.
	TerminateParty(ctx context.Context, partyID string, principalID string) error

	// EnsureAdminParty creates the configured administrator party if it does not
	// exist yet. Called once at startup.
	EnsureAdminParty(ctx context.Context, email, password string) (*domain.Party, error)
}

// PartySvcFacade combines all party-related operations.
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
}
