package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openretail/ledger_backend/internal/apperrors"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/dto"
	"github.com/openretail/ledger_backend/internal/utils"
)

// authService exchanges a password check for a signed token. Unknown emails and
// wrong passwords both surface as ErrUnauthorized so callers cannot probe which
// emails exist.
type authService struct {
	BaseService
	partyRepo portsrepo.PartyRepository
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewAuthService creates the authentication service.
func NewAuthService(partyRepo portsrepo.PartyRepository, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) portssvc.AuthSvcFacade {
	return &authService{
		partyRepo: partyRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the credentials and issues a token whose subject is the party ID.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	party, err := s.partyRepo.FindPartyByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up party for login")
		return nil, err
	}

	if !utils.CheckPasswordHash(req.Password, party.PasswordHash) {
		s.LogWarn(ctx, "Login failed: wrong password", slog.String("party_id", party.PartyID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	if !party.IsActive() {
		return nil, fmt.Errorf("%w: status is %s", apperrors.ErrInactiveParty, party.Status)
	}

	token, expiresAt, err := utils.GenerateJWT(party.PartyID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign token", slog.String("party_id", party.PartyID))
		return nil, fmt.Errorf("%w: signing token", apperrors.ErrInternal)
	}

	s.LogInfo(ctx, "Login succeeded", slog.String("party_id", party.PartyID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Party:     dto.ToPartyResponse(party),
	}, nil
}
