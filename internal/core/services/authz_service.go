package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
)

// authzService is the authorization gate. Every check is side-effect free: no
// ledger or journal state is touched on failure, and nothing is touched here at
// all.
type authzService struct {
	BaseService
	cfg       domain.LedgerConfig
	partyRepo portsrepo.PartyRepository
}

// NewAuthzService creates the authorization gate for one ledger instance.
func NewAuthzService(cfg domain.LedgerConfig, partyRepo portsrepo.PartyRepository) portssvc.AuthorizerSvc {
	return &authzService{cfg: cfg, partyRepo: partyRepo}
}

var _ portssvc.AuthorizerSvc = (*authzService)(nil)

// AuthorizeAdmin passes only for the configured administrator identity.
func (s *authzService) AuthorizeAdmin(ctx context.Context, principalID string) error {
	if principalID == "" || principalID != s.cfg.AdminPartyID {
		s.LogWarn(ctx, "Admin authorization failed", slog.String("principal_id", principalID))
		return fmt.Errorf("%w: administrator identity required", apperrors.ErrUnauthorized)
	}
	return nil
}

// AuthorizeSelf passes when the principal is the account being acted on, or the
// administrator.
func (s *authzService) AuthorizeSelf(ctx context.Context, principalID, accountID string) error {
	if principalID != "" && principalID == accountID {
		return nil
	}
	if principalID == s.cfg.AdminPartyID {
		return nil
	}
	s.LogWarn(ctx, "Self authorization failed", slog.String("principal_id", principalID), slog.String("account_id", accountID))
	return fmt.Errorf("%w: principal does not own account %s", apperrors.ErrUnauthorized, accountID)
}

// AuthorizeCapability passes when the principal is an active party whose role
// grants the capability. The administrator identity always passes.
func (s *authzService) AuthorizeCapability(ctx context.Context, principalID string, capability domain.Capability) error {
	if principalID == s.cfg.AdminPartyID {
		return nil
	}

	party, err := s.partyRepo.FindPartyByID(ctx, principalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Unknown principal", slog.String("principal_id", principalID))
			return fmt.Errorf("%w: unknown principal", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to load principal for capability check", slog.String("principal_id", principalID))
		return fmt.Errorf("%w: loading principal: %v", apperrors.ErrStorageFault, err)
	}

	if !party.IsActive() {
		s.LogWarn(ctx, "Inactive principal attempted capability-gated action",
			slog.String("principal_id", principalID),
			slog.String("status", string(party.Status)))
		return fmt.Errorf("%w: status is %s", apperrors.ErrInactiveParty, party.Status)
	}

	if !domain.RoleHasCapability(party.Role, capability) {
		s.LogWarn(ctx, "Role lacks capability",
			slog.String("principal_id", principalID),
			slog.String("role", string(party.Role)),
			slog.String("capability", string(capability)))
		return fmt.Errorf("%w: role %s lacks %s", apperrors.ErrInsufficientCapability, party.Role, capability)
	}

	return nil
}
