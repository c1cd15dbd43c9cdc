package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles allows the request through only when the authenticated
// principal holds one of the given roles. Must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		for _, role := range roles {
			if p.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	}
}
