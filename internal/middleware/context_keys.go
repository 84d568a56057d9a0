package middleware

import "github.com/gin-gonic/gin"

// partyIDKey is the key used to store the authenticated principal's party ID.
const partyIDKey = contextKey("partyID")

// GetPartyIDFromContext retrieves the authenticated principal from the Gin
// context, falling back to the request context set by the auth middleware.
func GetPartyIDFromContext(c *gin.Context) (string, bool) {
	if val, exists := c.Get(string(partyIDKey)); exists {
		if partyID, ok := val.(string); ok {
			return partyID, true
		}
		return "", false
	}
	if val := c.Request.Context().Value(partyIDKey); val != nil {
		if partyID, ok := val.(string); ok {
			return partyID, true
		}
	}
	return "", false
}
