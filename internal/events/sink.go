package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EventType names the facts the engine broadcasts after a committed mutation.
type EventType string

const (
	EventBalanceChanged EventType = "balance_changed"
	EventEntryAppended  EventType = "entry_appended"
)

// Event is a fire-and-forget notification of a committed ledger fact. The
// engine's correctness never depends on delivery.
type Event struct {
	Type      EventType
	AccountID string
	EntryID   string
	Amount    decimal.Decimal
	Category  domain.Category
	At        time.Time
}

// Sink receives events. Implementations must not block the mutation path and
// must swallow their own failures.
type Sink interface {
	Publish(ctx context.Context, event Event)
}

// NoopSink discards every event.
type NoopSink struct{}

func (NoopSink) Publish(context.Context, Event) {}

// SlogSink logs each event at debug level. Used when no external sink is
// configured.
type SlogSink struct {
	Logger *slog.Logger
}

func (s SlogSink) Publish(_ context.Context, event Event) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Ledger event",
		slog.String("type", string(event.Type)),
		slog.String("account_id", event.AccountID),
		slog.String("entry_id", event.EntryID),
		slog.String("amount", event.Amount.String()),
		slog.String("category", string(event.Category)),
	)
}
