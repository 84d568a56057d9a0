package dto

import (
	"time"

	"github.com/openretail/ledger_backend/internal/core/domain"
)

// ListEntriesParams narrows and pages a journal listing.
type ListEntriesParams struct {
	Account   *string
	Category  *domain.Category
	From      *time.Time
	To        *time.Time
	Limit     int
	NextToken *string
}

// Filter converts the listing params into a domain entry filter.
func (p ListEntriesParams) Filter() domain.EntryFilter {
	return domain.EntryFilter{
		Account:  p.Account,
		Category: p.Category,
		From:     p.From,
		To:       p.To,
	}
}

// ListEntriesResponse is one page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
