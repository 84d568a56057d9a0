package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/dto"
	"github.com/openretail/ledger_backend/internal/utils"
)

const (
	defaultPartyPageSize = 20
	maxPartyPageSize     = 100
)

// partyService manages the identities known to the ledger. Parties are never
// deleted; termination flips the status and the record stays for the journal's
// sake.
type partyService struct {
	BaseService
	cfg        domain.LedgerConfig
	partyRepo  portsrepo.PartyRepository
	authorizer portssvc.AuthorizerSvc
}

// NewPartyService creates the party management service.
func NewPartyService(cfg domain.LedgerConfig, partyRepo portsrepo.PartyRepository, authorizer portssvc.AuthorizerSvc) portssvc.PartySvcFacade {
	return &partyService{cfg: cfg, partyRepo: partyRepo, authorizer: authorizer}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

// GetPartyByID retrieves a party. Self-lookup never needs a capability.
func (s *partyService) GetPartyByID(ctx context.Context, partyID string, principalID string) (*domain.Party, error) {
	if principalID != partyID {
		if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapManageParties); err != nil {
			return nil, err
		}
	}
	return s.partyRepo.FindPartyByID(ctx, partyID)
}

// ListParties pages through registered parties in join order.
func (s *partyService) ListParties(ctx context.Context, params dto.ListPartiesParams, principalID string) (*dto.ListPartiesResponse, error) {
	if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapManageParties); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultPartyPageSize
	}
	if limit > maxPartyPageSize {
		limit = maxPartyPageSize
	}

	parties, nextToken, err := s.partyRepo.ListParties(ctx, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListPartiesResponse{
		Parties:   dto.ToPartyResponses(parties),
		NextToken: nextToken,
	}, nil
}

// RegisterParty creates a new party with a fresh identifier, Bronze tier and
// Active status. The email must be unused.
func (s *partyService) RegisterParty(ctx context.Context, req dto.RegisterPartyRequest, principalID string) (*domain.Party, error) {
	if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapManageParties); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.partyRepo.FindPartyByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, email)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check email uniqueness")
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("%w: hashing password", apperrors.ErrInternal)
	}

	now := s.cfg.Now()
	party := domain.Party{
		PartyID:      uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		Role:         domain.PartyRole(req.Role),
		Status:       domain.StatusActive,
		Tier:         domain.TierBronze,
		PasswordHash: hash,
		JoinedAt:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principalID,
			LastUpdatedAt: now,
			LastUpdatedBy: principalID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		s.LogError(ctx, err, "Failed to save party", slog.String("party_id", party.PartyID))
		return nil, err
	}

	s.LogInfo(ctx, "Party registered",
		slog.String("party_id", party.PartyID),
		slog.String("role", string(party.Role)))
	return &party, nil
}

// PatchParty applies an optional-field patch as a whole. Role and status
// changes always require MANAGE_PARTIES; other fields a party may change on
// itself.
func (s *partyService) PatchParty(ctx context.Context, partyID string, patch domain.PartyPatch, principalID string) (*domain.Party, error) {
	needsManage := principalID != partyID || patch.Role != nil || patch.Status != nil
	if needsManage {
		if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapManageParties); err != nil {
			return nil, err
		}
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: patch changes nothing", apperrors.ErrValidation)
	}

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*patch.Email))
		if email != party.Email {
			if _, ferr := s.partyRepo.FindPartyByEmail(ctx, email); ferr == nil {
				return nil, fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, email)
			} else if !errors.Is(ferr, apperrors.ErrNotFound) {
				return nil, ferr
			}
		}
		patch.Email = &email
	}

	patch.Apply(party)
	party.LastUpdatedAt = s.cfg.Now()
	party.LastUpdatedBy = principalID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		s.LogError(ctx, err, "Failed to update party", slog.String("party_id", partyID))
		return nil, err
	}
	return party, nil
}

// TerminateParty marks the party TERMINATED. Its journal history and balance
// survive; only its ability to act ends.
func (s *partyService) TerminateParty(ctx context.Context, partyID string, principalID string) error {
	if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapManageParties); err != nil {
		return err
	}

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return err
	}
	if party.Status == domain.StatusTerminated {
		return nil
	}

	party.Status = domain.StatusTerminated
	party.LastUpdatedAt = s.cfg.Now()
	party.LastUpdatedBy = principalID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		s.LogError(ctx, err, "Failed to terminate party", slog.String("party_id", partyID))
		return err
	}
	s.LogInfo(ctx, "Party terminated", slog.String("party_id", partyID))
	return nil
}

// EnsureAdminParty creates the configured administrator party when missing, so
// the admin can authenticate like any other party. Runs once at startup.
func (s *partyService) EnsureAdminParty(ctx context.Context, email, password string) (*domain.Party, error) {
	existing, err := s.partyRepo.FindPartyByID(ctx, s.cfg.AdminPartyID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hashing admin password", apperrors.ErrInternal)
	}

	now := s.cfg.Now()
	admin := domain.Party{
		PartyID:      s.cfg.AdminPartyID,
		Name:         "Administrator",
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
		Tier:         domain.TierBronze,
		PasswordHash: hash,
		JoinedAt:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     s.cfg.AdminPartyID,
			LastUpdatedAt: now,
			LastUpdatedBy: s.cfg.AdminPartyID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, admin); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Administrator party created", slog.String("party_id", admin.PartyID))
	return &admin, nil
}
