package services

import (
	"context"
	"fmt"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/core/domain"
	portsrepo "github.com/openretail/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/dto"
)

const (
	defaultEntryPageSize = 20
	maxEntryPageSize     = 100
)

// journalService exposes the read side of the journal. Appends go through the
// ledger service only.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	authorizer  portssvc.AuthorizerSvc
}

// NewJournalService creates the journal read service.
func NewJournalService(journalRepo portsrepo.JournalRepository, authorizer portssvc.AuthorizerSvc) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: journalRepo, authorizer: authorizer}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// GetEntryByID retrieves one entry. The principal must be a party the entry
// touches or hold VIEW_REPORTS.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string, principalID string) (*domain.Entry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Touches(principalID) {
		if aerr := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapViewReports); aerr != nil {
			return nil, aerr
		}
	}
	return entry, nil
}

// ListEntries pages through the journal in insertion order. A principal without
// VIEW_REPORTS may only list entries touching their own account; the filter is
// forced onto that account in that case.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams, principalID string) (*dto.ListEntriesResponse, error) {
	ownOnly := params.Account != nil && *params.Account == principalID
	if !ownOnly {
		if err := s.authorizer.AuthorizeCapability(ctx, principalID, domain.CapViewReports); err != nil {
			return nil, err
		}
	}

	if params.Category != nil && !params.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", apperrors.ErrInvalidFilter, *params.Category)
	}
	if params.From != nil && params.To != nil && params.From.After(*params.To) {
		return nil, fmt.Errorf("%w: range start after range end", apperrors.ErrInvalidFilter)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryPageSize
	}
	if limit > maxEntryPageSize {
		limit = maxEntryPageSize
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, params.Filter(), limit, params.NextToken)
	if err != nil {
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
