package domain

import "github.com/shopspring/decimal"

// Balance is the authoritative current balance of one account. Accounts are
// created implicitly on first credit and never explicitly deleted; a debit may
// never take the balance below zero.
type Balance struct {
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	AuditFields
}
