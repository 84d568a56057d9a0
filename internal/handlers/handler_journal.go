package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openretail/ledger_backend/internal/core/domain"
	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/dto"
)

// journalHandler handles HTTP requests for the journal read side.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers all journal-related routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journal := rg.Group("/journal")
	{
		journal.GET("/entries", h.listEntries)
		journal.GET("/entries/:id", h.getEntry)
	}
}

// listEntriesQuery is the query-string form of a journal listing.
type listEntriesQuery struct {
	Account   *string `form:"account"`
	Category  *string `form:"category"`
	From      *string `form:"from"` // RFC3339
	To        *string `form:"to"`   // RFC3339
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

func (q listEntriesQuery) toParams() (dto.ListEntriesParams, error) {
	params := dto.ListEntriesParams{
		Account:   q.Account,
		Limit:     q.Limit,
		NextToken: q.NextToken,
	}
	if q.Category != nil {
		category := domain.Category(*q.Category)
		params.Category = &category
	}
	if q.From != nil {
		from, err := time.Parse(time.RFC3339, *q.From)
		if err != nil {
			return params, err
		}
		params.From = &from
	}
	if q.To != nil {
		to, err := time.Parse(time.RFC3339, *q.To)
		if err != nil {
			return params, err
		}
		params.To = &to
	}
	return params, nil
}

// listEntries godoc
// @Summary List journal entries
// @Description Returns a filtered, paginated view of the journal in insertion order
// @Tags journal
// @Produce json
// @Param account query string false "Account ID"
// @Param category query string false "Category"
// @Param from query string false "Range start (RFC3339, inclusive)"
// @Param to query string false "Range end (RFC3339, inclusive)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /journal/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}

	var query listEntriesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	params, err := query.toParams()
	if err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.journalService.ListEntries(c.Request.Context(), params, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a single entry by its ID
// @Tags journal
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /journal/entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), c.Param("id"), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
