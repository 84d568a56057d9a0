package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is the persisted form of a journal entry. Sequence maps to a BIGSERIAL
// column assigned at insert.
type Entry struct {
	EntryID     string
	Sequence    int64
	Origin      *string
	Destination *string
	Amount      decimal.Decimal
	Category    string
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
	CreatedBy   string
}
