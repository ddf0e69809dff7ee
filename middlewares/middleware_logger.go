package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aytac78/order-business-app-sub001/utils"
)

func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.Query()

		c.Next()

		// token websocket jangan sampai masuk log
		if query.Has("token") {
			query.Set("token", "REDACTED")
		}
		if len(query) > 0 {
			path = path + "?" + query.Encode()
		}

		utils.InfoLogger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		}).Info(path)
	}
}
