package middlewares

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultOrigin = "http://127.0.0.1:5500"

// allowedOrigins reads CORS_ORIGIN as a comma separated list; "*" allows any origin.
func allowedOrigins() []string {
	raw := os.Getenv("CORS_ORIGIN")
	if raw == "" {
		return []string{defaultOrigin}
	}
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// OriginAllowed reports whether a browser origin may call the API or open a KDS socket.
// Requests without an Origin header (non-browser clients) pass.
func OriginAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, o := range allowedOrigins() {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

func CORSMiddlewares() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && OriginAllowed(origin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
