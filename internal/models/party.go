package models

import "time"

// Party is the persisted form of a party row.
type Party struct {
	PartyID       string
	Name          string
	Email         string
	Phone         string
	Role          string
	Status        string
	Tier          string
	LoyaltyPoints int64
	PasswordHash  string
	JoinedAt      time.Time
	AuditFields
}
