package services

import (
	"context"

	"github.com/openretail/ledger_backend/internal/core/domain"
)

// AuthorizerSvc is the authorization gate every mutating service consults before
// touching the ledger or the journal. All three checks are side-effect free.
type AuthorizerSvc interface {
	// AuthorizeAdmin passes only when the principal is the configured
	// administrator identity.
	AuthorizeAdmin(ctx context.Context, principalID string) error

	// AuthorizeSelf passes when the principal is the account being mutated, or
	// the administrator.
	AuthorizeSelf(ctx context.Context, principalID, accountID string) error

	// AuthorizeCapability passes when the principal is an active party whose role
	// grants the capability. The administrator identity always passes.
	AuthorizeCapability(ctx context.Context, principalID string, capability domain.Capability) error
}
