package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/core/services"
	"github.com/openretail/ledger_backend/internal/dto"
	"github.com/openretail/ledger_backend/internal/repositories/memory"
)

const testAdminID = "admin-party"

// stepClock hands out strictly increasing timestamps so entry ordering in tests
// is deterministic.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// testEnv wires the full service stack over the in-memory store.
type testEnv struct {
	repos     *portsrepo.RepositoryProvider
	clock     *stepClock
	container *portssvc.ServiceContainer
}

func newTestEnv() *testEnv {
	repos := memory.NewRepositoryProvider()
	clock := newStepClock()
	container := services.NewContainer(services.ContainerDeps{
		Repos: repos,
		Ledger: domain.LedgerConfig{
			AdminPartyID: testAdminID,
			Clock:        clock,
		},
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
		JWTIssuer: "test",
	})
	return &testEnv{repos: repos, clock: clock, container: container}
}

// registerParty creates a party through the service as the admin and returns it.
func (e *testEnv) registerParty(ctx context.Context, name string, role domain.PartyRole) (*domain.Party, error) {
	return e.container.Party.RegisterParty(ctx, dto.RegisterPartyRequest{
		Name:     name,
		Email:    name + "@example.com",
		Role:     string(role),
		Password: "correct-horse-battery",
	}, testAdminID)
}
