package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialReport is the immutable summary produced by one aggregation pass over
// the journal. Given an identical journal state and filter, the report is
// bit-identical on every run.
type FinancialReport struct {
	TotalRevenue  decimal.Decimal            `json:"totalRevenue"`
	TotalExpenses decimal.Decimal            `json:"totalExpenses"` // Expense + Tax + Payroll
	NetIncome     decimal.Decimal            `json:"netIncome"`
	MarginPct     int64                      `json:"marginPct"` // netIncome*100/totalRevenue, truncated; 0 when revenue is 0
	ByCategory    map[Category]decimal.Decimal `json:"byCategory"`
	EntryCount    int64                      `json:"entryCount"`
}

// KPISnapshot is an on-demand rollup of journal activity for a period.
type KPISnapshot struct {
	TotalVolume    decimal.Decimal              `json:"totalVolume"`
	EntryCount     int64                        `json:"entryCount"`
	AverageEntry   decimal.Decimal              `json:"averageEntry"` // totalVolume/entryCount, zero when the period is empty
	ActiveAccounts int64                        `json:"activeAccounts"`
	ByCategory     map[Category]decimal.Decimal `json:"byCategory"`
}

// CumulativeProfile is the derived per-account aggregate the classifier consumes.
// It is never stored; it is always recomputed from the journal.
type CumulativeProfile struct {
	AccountID     string          `json:"accountID"`
	TotalIn       decimal.Decimal `json:"totalIn"`
	TotalOut      decimal.Decimal `json:"totalOut"`
	EntryCount    int64           `json:"entryCount"`
	FirstActivity time.Time       `json:"firstActivity"`
	LastActivity  time.Time       `json:"lastActivity"`
}
