package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Classifier maps cumulative account figures to categorical state. The tier on
// a party is a cache of the classification, re-derived eagerly on every
// mutation of that account and never lowered by new activity.
type Classifier struct {
	BaseService
	cfg       domain.LedgerConfig
	partyRepo portsrepo.PartyRepository
}

// NewClassifier creates a classifier bound to the party store it refreshes.
func NewClassifier(cfg domain.LedgerConfig, partyRepo portsrepo.PartyRepository) *Classifier {
	return &Classifier{cfg: cfg, partyRepo: partyRepo}
}

// Classify derives the tier for a cumulative profile from its total outflow.
// Pure; a boundary value qualifies for the higher band.
func (c *Classifier) Classify(profile domain.CumulativeProfile) domain.Tier {
	return domain.TierForSpend(profile.TotalOut)
}

// ReclassifyAfterSpend refreshes the cached tier and loyalty points of the
// party that just spent. Accounts without a party record carry no derived
// state, so an unknown account is a no-op. The stored tier only moves up.
func (c *Classifier) ReclassifyAfterSpend(ctx context.Context, accountID string, profile domain.CumulativeProfile, spend decimal.Decimal, actorID string) error {
	party, err := c.partyRepo.FindPartyByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	newTier := domain.MaxTier(party.Tier, c.Classify(profile))
	earned := domain.LoyaltyPointsFor(spend)
	if newTier == party.Tier && earned == 0 {
		return nil
	}

	if newTier != party.Tier {
		c.LogInfo(ctx, "Party tier raised",
			slog.String("party_id", party.PartyID),
			slog.String("from", string(party.Tier)),
			slog.String("to", string(newTier)))
	}

	party.Tier = newTier
	party.LoyaltyPoints += earned
	party.LastUpdatedAt = c.cfg.Now()
	party.LastUpdatedBy = actorID

	return c.partyRepo.UpdateParty(ctx, *party)
}
