package middleware

import (
	"net/http"
	"strings"

	"tshort_dashboard/internal/domain"
	"tshort_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT requires a valid session token and stashes the caller's identity and
// owner key in the gin context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		id, err := service.ParseSessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("uid", id.UID)
		c.Set("email", id.Email)
		c.Set("name", id.Name)
		c.Set("owner_key", domain.OwnerKey(id.Email))
		c.Next()
	}
}
