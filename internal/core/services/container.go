package services

import (
	"time"

	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/events"
)

// ContainerDeps carries everything needed to wire the service layer.
type ContainerDeps struct {
	Repos     *portsrepo.RepositoryProvider
	Ledger    domain.LedgerConfig
	Sink      events.Sink
	JWTSecret string
	JWTExpiry time.Duration
	JWTIssuer string
}

// NewContainer wires every service with its dependencies. The authorizer is
// shared: there is exactly one gate in front of all mutating paths.
func NewContainer(deps ContainerDeps) *portssvc.ServiceContainer {
	authorizer := NewAuthzService(deps.Ledger, deps.Repos.Party)
	classifier := NewClassifier(deps.Ledger, deps.Repos.Party)

	ledgerOpts := []LedgerServiceOption{WithClassifier(classifier)}
	if deps.Sink != nil {
		ledgerOpts = append(ledgerOpts, WithEventSink(deps.Sink))
	}

	return &portssvc.ServiceContainer{
		Authorizer: authorizer,
		Ledger:     NewLedgerService(deps.Ledger, deps.Repos.Ledger, deps.Repos.Journal, authorizer, ledgerOpts...),
		Journal:    NewJournalService(deps.Repos.Journal, authorizer),
		Reporting:  NewReportingService(deps.Repos.Journal, authorizer),
		Party:      NewPartyService(deps.Ledger, deps.Repos.Party, authorizer),
		Auth:       NewAuthService(deps.Repos.Party, deps.JWTSecret, deps.JWTExpiry, deps.JWTIssuer),
	}
}
