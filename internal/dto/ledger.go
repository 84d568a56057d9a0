package dto

import (
	"time"

	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreditRequest adds funds to an account.
type CreditRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    domain.Category `json:"category" binding:"required"`
	Description string          `json:"description"`
}

// DebitRequest removes funds from an account.
type DebitRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    domain.Category `json:"category" binding:"required"`
	Description string          `json:"description"`
}

// TransferRequest moves funds between two accounts. The entry is always
// categorized as TRANSFER.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description"`
}

// MintRequest creates external supply into an account. Admin only.
// Category defaults to REVENUE when omitted.
type MintRequest struct {
	ToAccountID string          `json:"toAccountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    domain.Category `json:"category"`
	Description string          `json:"description"`
}

// BurnRequest destroys supply out of an account. Admin only.
// Category defaults to EXPENSE when omitted.
type BurnRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Category      domain.Category `json:"category"`
	Description   string          `json:"description"`
}

// BalanceResponse returns an account's current balance.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// SupplyResponse returns the ledger-wide supply total.
type SupplyResponse struct {
	TotalSupply decimal.Decimal `json:"totalSupply"`
}

// EntryResponse is the wire form of a journal entry.
type EntryResponse struct {
	EntryID     string          `json:"entryID"`
	Sequence    int64           `json:"sequence"`
	Origin      *string         `json:"origin,omitempty"`
	Destination *string         `json:"destination,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurredAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToEntryResponse converts a domain.Entry to its wire form.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:     e.EntryID,
		Sequence:    e.Sequence,
		Origin:      e.Origin,
		Destination: e.Destination,
		Amount:      e.Amount,
		Category:    string(e.Category),
		Description: e.Description,
		OccurredAt:  e.OccurredAt,
		CreatedBy:   e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
