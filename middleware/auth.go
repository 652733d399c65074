package middleware

import (
	"net/http"
	"strings"

	"sitekit/utils"

	"github.com/gin-gonic/gin"
)

// SiteAuthMiddleware guards the settings endpoints: the site editor presents
// a JWT whose subject must match the site it edits.
func SiteAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		siteID, err := utils.ExtractSiteIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if param := c.Param("site"); param != "" && param != siteID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token does not grant access to this site"})
			return
		}

		c.Set("siteID", siteID)
		c.Next()
	}
}
