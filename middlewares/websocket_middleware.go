package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/platefront/restaurant-platform/utils"
)

// WebSocketAuthMiddleware authenticates websocket upgrades, where browsers
// cannot set an Authorization header and pass the token as a query param.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("tenant_id", claims.TenantID)
		c.Set("role", claims.Role)

		c.Next()
	}
}
