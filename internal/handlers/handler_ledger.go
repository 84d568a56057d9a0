package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openretail/ledger_backend/internal/core/ports/services"
	"github.com/openretail/ledger_backend/internal/dto"
	"github.com/openretail/ledger_backend/internal/middleware"
)

// ledgerHandler handles HTTP requests for balances and ledger mutations.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers all ledger-related routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/credit", h.credit)
		ledger.POST("/debit", h.debit)
		ledger.POST("/transfer", h.transfer)
		ledger.POST("/mint", h.mint)     // Admin only
		ledger.POST("/burn", h.burn)     // Admin only
		ledger.GET("/supply", h.supply)  // VIEW_REPORTS
		ledger.GET("/balances/:accountID", h.balance)
	}
}

// credit godoc
// @Summary Credit an account
// @Description Adds funds to an account, creating it implicitly on first use
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body dto.CreditRequest true "Credit details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid amount or category"
// @Failure 403 {object} map[string]string "Missing PROCESS_PAYMENTS"
// @Security BearerAuth
// @Router /ledger/credit [post]
func (h *ledgerHandler) credit(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	var req dto.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.ledgerService.Credit(c.Request.Context(), req, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// debit godoc
// @Summary Debit an account
// @Description Removes funds from an account; fails rather than going negative
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body dto.DebitRequest true "Debit details"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /ledger/debit [post]
func (h *ledgerHandler) debit(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	var req dto.DebitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.ledgerService.Debit(c.Request.Context(), req, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// transfer godoc
// @Summary Transfer between accounts
// @Description Moves funds between two accounts as one atomic entry
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /ledger/transfer [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.ledgerService.Transfer(c.Request.Context(), req, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// mint godoc
// @Summary Mint supply into an account
// @Description Creates external supply; administrator only
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body dto.MintRequest true "Mint details"
// @Success 201 {object} dto.EntryResponse
// @Failure 401 {object} map[string]string "Not the administrator"
// @Security BearerAuth
// @Router /ledger/mint [post]
func (h *ledgerHandler) mint(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.ledgerService.Mint(c.Request.Context(), req, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// burn godoc
// @Summary Burn supply out of an account
// @Description Destroys supply; administrator only
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body dto.BurnRequest true "Burn details"
// @Success 201 {object} dto.EntryResponse
// @Failure 409 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /ledger/burn [post]
func (h *ledgerHandler) burn(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	var req dto.BurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	entry, err := h.ledgerService.Burn(c.Request.Context(), req, principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// balance godoc
// @Summary Get an account balance
// @Description Returns the balance; unknown accounts report zero
// @Tags ledger
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Security BearerAuth
// @Router /ledger/balances/{accountID} [get]
func (h *ledgerHandler) balance(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), accountID, principal)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Balance read",
		slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.BalanceResponse{AccountID: accountID, Balance: balance})
}

// supply godoc
// @Summary Get total supply
// @Description Returns the sum of all account balances
// @Tags ledger
// @Produce json
// @Success 200 {object} dto.SupplyResponse
// @Security BearerAuth
// @Router /ledger/supply [get]
func (h *ledgerHandler) supply(c *gin.Context) {
	principal, ok := principalID(c)
	if !ok {
		return
	}

	total, err := h.ledgerService.TotalSupply(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SupplyResponse{TotalSupply: total})
}
