package services

import (
	"context"

	"github.com/openretail/ledger_backend/internal/dto"
)

// AuthSvcFacade exchanges verified credentials for a signed token. Identity
// proof beyond the password check is out of scope; the middleware trusts the
// token subject as the principal.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
