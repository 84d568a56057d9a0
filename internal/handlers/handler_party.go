package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/dto"
)

// partyHandler handles HTTP requests related to parties.
type partyHandler struct {
	partyService portssvc.PartySvcFacade
}

func newPartyHandler(ps portssvc.PartySvcFacade) *partyHandler {
	return &partyHandler{partyService: ps}
}

// registerPartyRoutes registers all party-related routes.
func registerPartyRoutes(rg *gin.RouterGroup, partyService portssvc.PartySvcFacade) {
	h := newPartyHandler(partyService)

	parties := rg.Group("/parties")
	{
		parties.POST("", h.registerParty)    // MANAGE_PARTIES
		parties.GET("", h.listParties)       // MANAGE_PARTIES
		parties.GET("/:id", h.getParty)      // Own or MANAGE_PARTIES
		parties.PATCH("/:id", h.patchParty)  // Own or MANAGE_PARTIES
		parties.DELETE("/:id", h.terminate)  // MANAGE_PARTIES
	}
}

// registerParty godoc
// @Summary Register a new party
// @Description Creates a party with Active status and Bronze tier
// @Tags parties
// @Accept json
// @Produce json
// @Param request body dto.RegisterPartyRequest true "Party details"
// @Success 201 {object} dto.PartyResponse
// @Failure 409 {object} map[string]string "Email already registered"
// @Security BearerAuth
// @Router /parties [post]
func (h *partyHandler) registerParty(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	var req dto.RegisterPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	party, err := h.partyService.RegisterParty(c.Request.Context(), req, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPartyResponse(party))
}

// listParties godoc
// @Summary List parties
// @Description Returns a paginated list of parties in join order
// @Tags parties
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPartiesResponse
// @Security BearerAuth
// @Router /parties [get]
func (h *partyHandler) listParties(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}

	var params struct {
		Limit     int     `form:"limit"`
		NextToken *string `form:"nextToken"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.partyService.ListParties(c.Request.Context(), dto.ListPartiesParams{
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// getParty godoc
// @Summary Get a party by ID
// @Tags parties
// @Produce json
// @Param id path string true "Party ID"
// @Success 200 {object} dto.PartyResponse
// @Failure 404 {object} map[string]string "Party not found"
// @Security BearerAuth
// @Router /parties/{id} [get]
func (h *partyHandler) getParty(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}

	party, err := h.partyService.GetPartyByID(c.Request.Context(), c.Param("id"), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// patchParty godoc
// @Summary Patch a party
// @Description Applies an optional-field update; absent fields are unchanged
// @Tags parties
// @Accept json
// @Produce json
// @Param id path string true "Party ID"
// @Param request body dto.PatchPartyRequest true "Fields to change"
// @Success 200 {object} dto.PartyResponse
// @Failure 403 {object} map[string]string "Role or status change without MANAGE_PARTIES"
// @Security BearerAuth
// @Router /parties/{id} [patch]
func (h *partyHandler) patchParty(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	var req dto.PatchPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	party, err := h.partyService.PatchParty(c.Request.Context(), c.Param("id"), req.ToPatch(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPartyResponse(party))
}

// terminate godoc
// @Summary Terminate a party
// @Description Sets the party's status to TERMINATED; the record is kept
// @Tags parties
// @Param id path string true "Party ID"
// @Success 204 "Terminated"
// @Security BearerAuth
// @Router /parties/{id} [delete]
func (h *partyHandler) terminate(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}

	if err := h.partyService.TerminateParty(c.Request.Context(), c.Param("id"), principal); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
