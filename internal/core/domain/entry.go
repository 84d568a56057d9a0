package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a journal entry. The set is closed; aggregation formulas
// depend on it.
type Category string

const (
	CategoryRevenue    Category = "REVENUE"
	CategoryExpense    Category = "EXPENSE"
	CategoryTransfer   Category = "TRANSFER"
	CategoryTax        Category = "TAX"
	CategoryPayroll    Category = "PAYROLL"
	CategoryInvestment Category = "INVESTMENT"
	CategoryRefund     Category = "REFUND"
)

// Categories lists every valid category in a fixed order.
var Categories = []Category{
	CategoryRevenue,
	CategoryExpense,
	CategoryTransfer,
	CategoryTax,
	CategoryPayroll,
	CategoryInvestment,
	CategoryRefund,
}

// IsValid reports whether c is one of the closed category set.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Entry is a single immutable journal record of a value-moving event. Origin is
// nil for external deposits (mint), Destination is nil for pure withdrawals
// (burn). Amount is strictly positive; direction is carried by the parties and
// the category, never by the sign.
type Entry struct {
	EntryID     string          `json:"entryID"`  // Primary key (UUID)
	Sequence    int64           `json:"sequence"` // Monotonic insertion order, assigned by the journal
	Origin      *string         `json:"origin,omitempty"`
	Destination *string         `json:"destination,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurredAt"` // Logical timestamp from the caller's clock source
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"` // Principal that drove the mutation
}

// Touches reports whether the entry involves the given account as origin or
// destination.
func (e Entry) Touches(accountID string) bool {
	if e.Origin != nil && *e.Origin == accountID {
		return true
	}
	return e.Destination != nil && *e.Destination == accountID
}

// EntryFilter narrows a journal scan. Nil fields match everything. The timestamp
// range is inclusive on both ends and applies to OccurredAt.
type EntryFilter struct {
	Account  *string
	Category *Category
	From     *time.Time
	To       *time.Time
}

// Matches reports whether the entry satisfies every set field of the filter.
func (f EntryFilter) Matches(e Entry) bool {
	if f.Account != nil && !e.Touches(*f.Account) {
		return false
	}
	if f.Category != nil && e.Category != *f.Category {
		return false
	}
	if f.From != nil && e.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.OccurredAt.After(*f.To) {
		return false
	}
	return true
}
