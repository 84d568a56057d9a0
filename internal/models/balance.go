package models

import "github.com/shopspring/decimal"

// Balance is the persisted form of an account balance row.
type Balance struct {
	AccountID string
	Amount    decimal.Decimal
	AuditFields
}
