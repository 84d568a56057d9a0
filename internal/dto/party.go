package dto

import (
	"time"

	"github.com/openretail/ledger_backend/internal/core/domain"
)

// RegisterPartyRequest creates a new party.
type RegisterPartyRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required,oneof=ADMIN MANAGER ACCOUNTANT CASHIER CLERK CUSTOMER"`
	Password string `json:"password" binding:"required,min=8"`
}

// PatchPartyRequest is the wire form of an optional-field patch: absent fields
// are left unchanged.
type PatchPartyRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Phone  *string `json:"phone"`
	Role   *string `json:"role" binding:"omitempty,oneof=ADMIN MANAGER ACCOUNTANT CASHIER CLERK CUSTOMER"`
	Status *string `json:"status" binding:"omitempty,oneof=ACTIVE ON_LEAVE SUSPENDED TERMINATED"`
}

// ToPatch converts the request into a domain patch.
func (r PatchPartyRequest) ToPatch() domain.PartyPatch {
	patch := domain.PartyPatch{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
	if r.Role != nil {
		role := domain.PartyRole(*r.Role)
		patch.Role = &role
	}
	if r.Status != nil {
		status := domain.PartyStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

// ListPartiesParams pages through registered parties.
type ListPartiesParams struct {
	Limit     int
	NextToken *string
}

// PartyResponse is the wire form of a party.
type PartyResponse struct {
	PartyID       string    `json:"partyID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	Tier          string    `json:"tier"`
	LoyaltyPoints int64     `json:"loyaltyPoints"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// ListPartiesResponse is one page of parties.
type ListPartiesResponse struct {
	Parties   []PartyResponse `json:"parties"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToPartyResponse converts a domain.Party to its wire form.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:       p.PartyID,
		Name:          p.Name,
		Email:         p.Email,
		Phone:         p.Phone,
		Role:          string(p.Role),
		Status:        string(p.Status),
		Tier:          string(p.Tier),
		LoyaltyPoints: p.LoyaltyPoints,
		JoinedAt:      p.JoinedAt,
	}
}

// ToPartyResponses converts a slice of parties.
func ToPartyResponses(parties []domain.Party) []PartyResponse {
	responses := make([]PartyResponse, len(parties))
	for i := range parties {
		responses[i] = ToPartyResponse(&parties[i])
	}
	return responses
}
