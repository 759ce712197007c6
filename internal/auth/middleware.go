package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextSubject is the gin context key holding the token subject
const ContextSubject = "subject"

// Middleware requires a valid bearer token signed with secret. Browsers
// cannot set headers on websocket upgrades, so a token query parameter is
// accepted too. An empty secret disables the check.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		tokenStr := ""
		authHeader := c.GetHeader("Authorization")
		switch {
		case strings.HasPrefix(authHeader, "Bearer "):
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		case authHeader == "":
			tokenStr = c.Query("token")
		}
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Missing or invalid Authorization header"}})
			return
		}

		claims, err := ParseJWT(secret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Invalid or expired token"}})
			return
		}
		if claims.Scope != ScopeChat {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Token not valid for chat"}})
			return
		}

		c.Set(ContextSubject, claims.Subject)
		c.Next()
	}
}
