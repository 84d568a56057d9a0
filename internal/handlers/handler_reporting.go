package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openretail/ledger_backend/internal/core/domain"
	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/dto"
)

// reportingHandler handles HTTP requests for aggregation over the journal.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers all reporting-related routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.summary)
		reports.GET("/kpis", h.kpis)
		reports.GET("/profile/:accountID", h.profile)
	}
}

// reportFilterQuery is the query-string form of a report filter.
type reportFilterQuery struct {
	Account  *string `form:"account"`
	Category *string `form:"category"`
	From     *string `form:"from"` // RFC3339
	To       *string `form:"to"`   // RFC3339
}

func (q reportFilterQuery) toFilter() (dto.ReportFilter, error) {
	filter := dto.ReportFilter{Account: q.Account}
	if q.Category != nil {
		category := domain.Category(*q.Category)
		filter.Category = &category
	}
	if q.From != nil {
		from, err := time.Parse(time.RFC3339, *q.From)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if q.To != nil {
		to, err := time.Parse(time.RFC3339, *q.To)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}
	return filter, nil
}

func (h *reportingHandler) bindFilter(c *gin.Context) (dto.ReportFilter, bool) {
	var query reportFilterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return dto.ReportFilter{}, false
	}
	filter, err := query.toFilter()
	if err != nil {
		respondBindError(c, err)
		return dto.ReportFilter{}, false
	}
	return filter, true
}

// summary godoc
// @Summary Financial summary
// @Description Aggregates the filtered journal into revenue, expenses, net income and margin
// @Tags reports
// @Produce json
// @Param account query string false "Account ID"
// @Param category query string false "Category"
// @Param from query string false "Range start (RFC3339, inclusive)"
// @Param to query string false "Range end (RFC3339, inclusive)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) summary(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	report, err := h.reportingService.Summarize(c.Request.Context(), filter, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(report))
}

// kpis godoc
// @Summary Volume KPIs
// @Description Returns total volume, entry count, average entry size and active accounts
// @Tags reports
// @Produce json
// @Param from query string false "Range start (RFC3339, inclusive)"
// @Param to query string false "Range end (RFC3339, inclusive)"
// @Success 200 {object} domain.KPISnapshot
// @Security BearerAuth
// @Router /reports/kpis [get]
func (h *reportingHandler) kpis(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}

	snapshot, err := h.reportingService.KPIs(c.Request.Context(), filter, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// profile godoc
// @Summary Cumulative account profile
// @Description Returns lifetime inflow/outflow totals and the derived tier for one account
// @Tags reports
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.ProfileResponse
// @Security BearerAuth
// @Router /reports/profile/{accountID} [get]
func (h *reportingHandler) profile(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}

	profile, err := h.reportingService.ProfileFor(c.Request.Context(), c.Param("accountID"), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}
