package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/aytac78/order-business-app-sub001/utils"
)

// WebSocketAuthMiddleware -> browser websocket tidak bisa kirim header, token lewat query
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

		setClaims(c, claims)
		c.Next()
	}
}
