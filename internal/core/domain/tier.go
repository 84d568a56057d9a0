package domain

import "github.com/shopspring/decimal"

// Tier is the ordered customer classification derived from cumulative spend.
type Tier string

const (
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// Spend thresholds for each tier. A cumulative spend exactly at a boundary
// qualifies for that tier, not the one below.
var (
	SilverThreshold   = decimal.NewFromInt(1_000_000)
	GoldThreshold     = decimal.NewFromInt(5_000_000)
	PlatinumThreshold = decimal.NewFromInt(20_000_000)
)

// LoyaltyPointsUnit is the spend required to earn one loyalty point.
var LoyaltyPointsUnit = decimal.NewFromInt(10_000)

// Rank orders tiers so that a higher classification compares greater.
func (t Tier) Rank() int {
	switch t {
	case TierSilver:
		return 1
	case TierGold:
		return 2
	case TierPlatinum:
		return 3
	default:
		return 0
	}
}

// TierForSpend classifies cumulative spend into a tier, highest band first.
func TierForSpend(totalSpend decimal.Decimal) Tier {
	switch {
	case totalSpend.GreaterThanOrEqual(PlatinumThreshold):
		return TierPlatinum
	case totalSpend.GreaterThanOrEqual(GoldThreshold):
		return TierGold
	case totalSpend.GreaterThanOrEqual(SilverThreshold):
		return TierSilver
	default:
		return TierBronze
	}
}

// MaxTier returns the higher of two tiers. Used to keep a cached classification
// monotonic: new activity may raise a tier but never lower it.
func MaxTier(a, b Tier) Tier {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// LoyaltyPointsFor returns the points earned by a spend amount: one point per
// LoyaltyPointsUnit, truncated.
func LoyaltyPointsFor(amount decimal.Decimal) int64 {
	if amount.Sign() <= 0 {
		return 0
	}
	points, _ := amount.QuoRem(LoyaltyPointsUnit, 0)
	return points.IntPart()
}
