package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // PartyID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // PartyID reference
}

// Clock supplies the logical timestamps attached to journal entries. The engine
// never reads wall-clock time directly; the clock is injected through LedgerConfig
// so aggregation stays replayable.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// LedgerConfig is the explicit per-instance configuration passed to every service:
// the administrator identity and the clock source. There is no process-wide state;
// each ledger instance is constructed independently.
type LedgerConfig struct {
	AdminPartyID string
	Clock        Clock
}

// Now returns the configured clock's current time, falling back to the system
// clock when none was set.
func (c LedgerConfig) Now() time.Time {
	if c.Clock == nil {
		return SystemClock{}.Now()
	}
	return c.Clock.Now()
}
