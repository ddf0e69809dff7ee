package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWTSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// default secret untuk development, production wajib set JWT_SECRET
		secret = "dev-kitchen-secret"
	}
	JWTSecret = []byte(secret)
}

// SetJWTSecret overrides the signing key, e.g. from config.
func SetJWTSecret(secret string) {
	if secret != "" {
		JWTSecret = []byte(secret)
	}
}

// CustomClaims are issued by the venue's auth provider. VenueID scopes the
// token; admins may carry an empty VenueID to reach every venue.
type CustomClaims struct {
	UserID  uint   `json:"user_id"`
	Role    string `json:"role"`
	VenueID string `json:"venue_id,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint, role, venueID string, ttl time.Duration) (string, error) {
	claims := &CustomClaims{
		UserID:  userID,
		Role:    role,
		VenueID: venueID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "VenueKitchen",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

func ParseToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return JWTSecret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
