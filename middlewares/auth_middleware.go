package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aytac78/order-business-app-sub001/utils"
)

// AuthMiddleware validates the bearer token and stores its claims in the context.
// Tokens are issued by the venue's auth provider; this service only verifies them.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil || claims == nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("Invalid or expired token"))
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// VenueScope rejects requests for a venue other than the one in the token.
// Admin tokens without a venue pass.
func VenueScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		venueID := c.Param("venue_id")
		tokenVenue := c.GetString("venue_id")
		role := c.GetString("role")

		if tokenVenue == "" && role == "admin" {
			c.Next()
			return
		}
		if venueID == "" || tokenVenue != venueID {
			utils.RespondError(c, http.StatusForbidden, errors.New("token is not valid for this venue"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *utils.CustomClaims) {
	c.Set("user_id", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("venue_id", claims.VenueID)
}
