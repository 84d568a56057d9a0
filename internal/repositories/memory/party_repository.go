package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	"github.com/openretail/ledger_backend/internal/utils/pagination"
)

type partyRepository struct {
	store *Store
}

// NewPartyRepository creates the in-memory party repository.
func NewPartyRepository(store *Store) portsrepo.PartyRepository {
	return &partyRepository{store: store}
}

var _ portsrepo.PartyRepository = (*partyRepository)(nil)

func (r *partyRepository) SaveParty(_ context.Context, party domain.Party) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.parties[party.PartyID]; exists {
		return fmt.Errorf("%w: party %s", apperrors.ErrDuplicate, party.PartyID)
	}
	email := strings.ToLower(party.Email)
	if _, taken := r.store.byEmail[email]; taken {
		return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, email)
	}

	r.store.parties[party.PartyID] = party
	r.store.byEmail[email] = party.PartyID
	return nil
}

func (r *partyRepository) FindPartyByID(_ context.Context, partyID string) (*domain.Party, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	party, ok := r.store.parties[partyID]
	if !ok {
		return nil, fmt.Errorf("%w: party %s", apperrors.ErrNotFound, partyID)
	}
	return &party, nil
}

func (r *partyRepository) FindPartyByEmail(_ context.Context, email string) (*domain.Party, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	partyID, ok := r.store.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("%w: email %s", apperrors.ErrNotFound, email)
	}
	party := r.store.parties[partyID]
	return &party, nil
}

// ListParties orders by join time (party id breaking ties) and pages with a
// date-based cursor.
func (r *partyRepository) ListParties(_ context.Context, limit int, nextToken *string) ([]domain.Party, *string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]domain.Party, 0, len(r.store.parties))
	for _, party := range r.store.parties {
		all = append(all, party)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].JoinedAt.Equal(all[j].JoinedAt) {
			return all[i].PartyID < all[j].PartyID
		}
		return all[i].JoinedAt.Before(all[j].JoinedAt)
	})

	start := 0
	if nextToken != nil && *nextToken != "" {
		after, err := pagination.DecodeDateBasedToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		for start < len(all) && !all[start].JoinedAt.After(after) {
			start++
		}
	}

	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	page := all[start:end]

	var token *string
	if end < len(all) && len(page) > 0 {
		t := pagination.EncodeDateBasedToken(page[len(page)-1].JoinedAt)
		token = &t
	}
	return page, token, nil
}

func (r *partyRepository) UpdateParty(_ context.Context, party domain.Party) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.parties[party.PartyID]
	if !ok {
		return fmt.Errorf("%w: party %s", apperrors.ErrNotFound, party.PartyID)
	}

	oldEmail := strings.ToLower(existing.Email)
	newEmail := strings.ToLower(party.Email)
	if oldEmail != newEmail {
		if _, taken := r.store.byEmail[newEmail]; taken {
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, newEmail)
		}
		delete(r.store.byEmail, oldEmail)
		r.store.byEmail[newEmail] = party.PartyID
	}

	r.store.parties[party.PartyID] = party
	return nil
}
