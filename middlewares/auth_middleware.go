package middlewares

import (
	"net/http"
	"strings"

	"github.com/raulfrk/Dietor/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the acting user id in
// the context. Each user id maps to an independent ledger store, so the
// claim is the only piece of identity the API needs.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: JWT_SECRET not set"})
			return
		}

		userID, err := utils.ParseUserID(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
