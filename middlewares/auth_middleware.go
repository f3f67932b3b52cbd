package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"linkfolio/backend/utils"
)

func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Missing bearer token."})
			return
		}
		claims, err := utils.ParseJWT(secret, strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token."})
			return
		}
		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
