// middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	userRepo "stayease/database/repository/user"
	"stayease/models"
	"stayease/utils"

	"github.com/gin-gonic/gin"
)

// PrincipalKey is the gin context key carrying the authenticated principal.
const PrincipalKey = "principal"

// AuthMiddleware validates the bearer token, resolves the account it belongs
// to, and stores a request-scoped Principal in the context. The token hash is
// checked against the redis auth cache first and the user document second, so
// a revoked session dies even while its JWT is still within its expiry.
func AuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)

		// Fast path: session cached in redis.
		authCache := utils.GetAuthCacheClient()
		cachedID, err := authCache.Get(context.Background(), utils.AuthCachePrefix+computedHash).Result()
		sessionOK := err == nil && cachedID == userID

		u, err := users.GetByID(userID)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			return
		}
		if !sessionOK && u.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session revoked"})
			return
		}

		c.Set(PrincipalKey, models.Principal{
			UserID:      u.ID,
			Role:        u.Role,
			ApartmentID: u.ApartmentID,
		})
		c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from the gin context.
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}
