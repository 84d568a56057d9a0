package dto

import (
	"time"

	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportFilter scopes an aggregation pass. Nil fields match everything. A range
// whose From is after its To is rejected with ErrInvalidFilter before any scan.
type ReportFilter struct {
	Account  *string
	Category *domain.Category
	From     *time.Time
	To       *time.Time
}

// EntryFilter converts the report filter into a domain entry filter.
func (f ReportFilter) EntryFilter() domain.EntryFilter {
	return domain.EntryFilter{
		Account:  f.Account,
		Category: f.Category,
		From:     f.From,
		To:       f.To,
	}
}

// SummaryResponse is the wire form of a financial report.
type SummaryResponse struct {
	TotalRevenue  decimal.Decimal            `json:"totalRevenue"`
	TotalExpenses decimal.Decimal            `json:"totalExpenses"`
	NetIncome     decimal.Decimal            `json:"netIncome"`
	MarginPct     int64                      `json:"marginPct"`
	ByCategory    map[string]decimal.Decimal `json:"byCategory"`
	EntryCount    int64                      `json:"entryCount"`
}

// ToSummaryResponse converts a domain report to its wire form.
func ToSummaryResponse(r *domain.FinancialReport) SummaryResponse {
	byCategory := make(map[string]decimal.Decimal, len(r.ByCategory))
	for category, total := range r.ByCategory {
		byCategory[string(category)] = total
	}
	return SummaryResponse{
		TotalRevenue:  r.TotalRevenue,
		TotalExpenses: r.TotalExpenses,
		NetIncome:     r.NetIncome,
		MarginPct:     r.MarginPct,
		ByCategory:    byCategory,
		EntryCount:    r.EntryCount,
	}
}

// ProfileResponse combines an account's cumulative profile with its derived tier.
type ProfileResponse struct {
	AccountID     string          `json:"accountID"`
	TotalIn       decimal.Decimal `json:"totalIn"`
	TotalOut      decimal.Decimal `json:"totalOut"`
	EntryCount    int64           `json:"entryCount"`
	FirstActivity *time.Time      `json:"firstActivity,omitempty"`
	LastActivity  *time.Time      `json:"lastActivity,omitempty"`
	Tier          string          `json:"tier"`
}

// ToProfileResponse converts a cumulative profile, deriving the tier from
// cumulative outflow.
func ToProfileResponse(p *domain.CumulativeProfile) ProfileResponse {
	resp := ProfileResponse{
		AccountID:  p.AccountID,
		TotalIn:    p.TotalIn,
		TotalOut:   p.TotalOut,
		EntryCount: p.EntryCount,
		Tier:       string(domain.TierForSpend(p.TotalOut)),
	}
	if !p.FirstActivity.IsZero() {
		first := p.FirstActivity
		resp.FirstActivity = &first
	}
	if !p.LastActivity.IsZero() {
		last := p.LastActivity
		resp.LastActivity = &last
	}
	return resp
}
