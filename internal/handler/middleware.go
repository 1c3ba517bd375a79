package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthRequired gates mutating API routes behind a bearer token. Handlers
// only ever see the allow/deny outcome; claims are stashed on the context
// for logging.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondError(c, http.StatusUnauthorized, "Authorization header missing")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			respondError(c, http.StatusUnauthorized, "Bearer token malformed")
			c.Abort()
			return
		}

		claims, err := a.auth.VerifyToken(strings.TrimSpace(tokenString))
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		if username, ok := claims["username"].(string); ok {
			c.Set("username", username)
		}
		c.Next()
	}
}
