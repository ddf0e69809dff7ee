package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aytac78/order-business-app-sub001/utils"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/venues/:venue_id/probe", handlers...)
	return r
}

func get(r *gin.Engine, path, token string) int {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func tokenFor(t *testing.T, role, venueID string) string {
	t.Helper()
	tok, err := utils.GenerateToken(7, role, venueID, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestAuthAndRoles(t *testing.T) {
	r := newTestRouter(AuthMiddleware(), VenueScope(), RequireRoles("chef"))

	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"chef of venue", tokenFor(t, "chef", "v1"), http.StatusOK},
		{"chef of other venue", tokenFor(t, "chef", "v2"), http.StatusForbidden},
		{"staff of venue", tokenFor(t, "staff", "v1"), http.StatusForbidden},
		{"admin without venue", tokenFor(t, "admin", ""), http.StatusOK},
		{"chef without venue", tokenFor(t, "chef", ""), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, get(r, "/venues/v1/probe", tt.token))
		})
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	r := newTestRouter(AuthMiddleware())
	tok, err := utils.GenerateToken(7, "chef", "v1", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/venues/v1/probe", tok))
}

func TestWebSocketAuthUsesQueryToken(t *testing.T) {
	r := newTestRouter(WebSocketAuthMiddleware(), RequireRoles("chef"))
	assert.Equal(t, http.StatusUnauthorized, get(r, "/venues/v1/probe", ""))
	assert.Equal(t, http.StatusOK, get(r, "/venues/v1/probe?token="+tokenFor(t, "chef", "v1"), ""))
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(2)
	r := newTestRouter(rl.RateLimit())

	assert.Equal(t, http.StatusOK, get(r, "/venues/v1/probe", ""))
	assert.Equal(t, http.StatusOK, get(r, "/venues/v1/probe", ""))
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/venues/v1/probe", ""))
}

func TestSecurityHeaders(t *testing.T) {
	r := newTestRouter(SecurityHeaders())
	req := httptest.NewRequest("GET", "/venues/v1/probe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestCORSAllowsConfiguredOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGIN", "https://kds.example.com, https://pos.example.com")
	r := newTestRouter(CORSMiddlewares())

	req := httptest.NewRequest("GET", "/venues/v1/probe", nil)
	req.Header.Set("Origin", "https://pos.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://pos.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest("GET", "/venues/v1/probe", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	assert.True(t, OriginAllowed(""), "non-browser clients have no origin")
	assert.False(t, OriginAllowed("https://evil.example.com"))
}
