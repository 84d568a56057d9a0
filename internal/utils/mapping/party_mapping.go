package mapping

import (
	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/openretail/ledger_backend/internal/models"
)

// ToModelParty converts a domain Party to a model Party
func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:       d.PartyID,
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		Role:          string(d.Role),
		Status:        string(d.Status),
		Tier:          string(d.Tier),
		LoyaltyPoints: d.LoyaltyPoints,
		PasswordHash:  d.PasswordHash,
		JoinedAt:      d.JoinedAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// ToDomainParty converts a model Party to a domain Party
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:       m.PartyID,
		Name:          m.Name,
		Email:         m.Email,
		Phone:         m.Phone,
		Role:          domain.PartyRole(m.Role),
		Status:        domain.PartyStatus(m.Status),
		Tier:          domain.Tier(m.Tier),
		LoyaltyPoints: m.LoyaltyPoints,
		PasswordHash:  m.PasswordHash,
		JoinedAt:      m.JoinedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToDomainPartySlice converts a slice of model Parties to a slice of domain Parties
func ToDomainPartySlice(ms []models.Party) []domain.Party {
	ds := make([]domain.Party, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainParty(m)
	}
	return ds
}
