package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openretail/ledger_backend/internal/apperrors"
	"github.com/openretail/ledger_backend/internal/middleware"
)

// errorStatus maps a sentinel to its HTTP status and a stable machine-readable
// kind, so clients can branch on the reason without parsing messages.
var errorStatus = []struct {
	sentinel error
	status   int
	kind     string
}{
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{apperrors.ErrInsufficientCapability, http.StatusForbidden, "insufficient_capability"},
	{apperrors.ErrInactiveParty, http.StatusForbidden, "inactive_party"},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden"},
	{apperrors.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{apperrors.ErrInvalidFilter, http.StatusBadRequest, "invalid_filter"},
	{apperrors.ErrValidation, http.StatusBadRequest, "validation"},
	{apperrors.ErrInsufficientBalance, http.StatusConflict, "insufficient_balance"},
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found"},
	{apperrors.ErrDuplicate, http.StatusConflict, "duplicate"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict"},
}

// respondError translates a service error into its HTTP shape. Storage and
// unrecognized errors become a plain 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	for _, m := range errorStatus {
		if errors.Is(err, m.sentinel) {
			if m.status >= http.StatusInternalServerError {
				break
			}
			logger.Warn("Request rejected", slog.String("kind", m.kind), slog.String("error", err.Error()))
			c.JSON(m.status, gin.H{"error": err.Error(), "kind": m.kind})
			return
		}
	}

	logger.Error("Request failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "kind": "internal"})
}

// respondBindError reports a malformed request body or query.
func respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error(), "kind": "validation"})
}

// principalID pulls the authenticated party id out of the context; responds 401
// and returns false when the middleware did not set one.
func principalID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetPartyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "kind": "unauthorized"})
		return "", false
	}
	return id, true
}
