package events

import (
	"context"
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogSink forwards ledger events to PostHog for dashboards and analytics.
// Enqueue failures are logged and dropped; delivery is best-effort by design of
// the sink contract.
type PosthogSink struct {
	client posthog.Client
	logger *slog.Logger
}

// NewPosthogSink creates a sink backed by a PostHog client. It returns nil when
// the API key is empty so callers can fall back to another sink.
func NewPosthogSink(apiKey string, logger *slog.Logger) *PosthogSink {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, event sink disabled")
		return nil
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Warn("Failed to initialize PostHog client", slog.String("error", err.Error()))
		return nil
	}
	return &PosthogSink{client: client, logger: logger}
}

func (s *PosthogSink) Publish(_ context.Context, event Event) {
	err := s.client.Enqueue(posthog.Capture{
		DistinctId: event.AccountID,
		Event:      string(event.Type),
		Properties: map[string]any{
			"entry_id": event.EntryID,
			"amount":   event.Amount.String(),
			"category": string(event.Category),
			"at":       event.At,
		},
	})
	if err != nil {
		s.logger.Warn("Failed to enqueue event", slog.String("error", err.Error()))
	}
}

// Close flushes and shuts down the underlying client.
func (s *PosthogSink) Close() {
	if s != nil && s.client != nil {
		_ = s.client.Close()
	}
}
