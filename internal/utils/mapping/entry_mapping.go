package mapping

import (
	"github.com/openretail/ledger_backend/internal/core/domain"
	"github.com/openretail/ledger_backend/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:     d.EntryID,
		Sequence:    d.Sequence,
		Origin:      d.Origin,
		Destination: d.Destination,
		Amount:      d.Amount,
		Category:    string(d.Category),
		Description: d.Description,
		OccurredAt:  d.OccurredAt,
		CreatedAt:   d.CreatedAt,
		CreatedBy:   d.CreatedBy,
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:     m.EntryID,
		Sequence:    m.Sequence,
		Origin:      m.Origin,
		Destination: m.Destination,
		Amount:      m.Amount,
		Category:    domain.Category(m.Category),
		Description: m.Description,
		OccurredAt:  m.OccurredAt,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

// ToDomainEntrySlice converts a slice of model Entries to a slice of domain Entries
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
