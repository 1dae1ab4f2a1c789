package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"HRPolicyGateway/internal/auth"
	"HRPolicyGateway/internal/metrics"
	"HRPolicyGateway/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(tokens *auth.TokenService, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(tokens, m, zap.NewNop()))
	r.GET("/whoami", func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": caller.User, "roles": models.RolesToStrings(caller.Roles)})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenService("secret", "issuer", time.Hour)
	m := metrics.New()
	r := newAuthRouter(tokens, m)

	tok, err := tokens.Issue("Bob", []string{"manager"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		code   int
		reason string
	}{
		{"valid", "Bearer " + tok, http.StatusOK, ""},
		{"lowercase scheme", "bearer " + tok, http.StatusOK, ""},
		{"no header", "", http.StatusUnauthorized, "missing"},
		{"wrong scheme", "Basic " + tok, http.StatusUnauthorized, "missing"},
		{"garbage", "Bearer abc", http.StatusUnauthorized, "malformed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusOK {
				assert.JSONEq(t, `{"user":"bob","roles":["manager"]}`, w.Body.String())
			}
		})
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthFailures.WithLabelValues("missing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthFailures.WithLabelValues("malformed")))
}

func TestAuthMiddleware_ExpiredTokenHidesReason(t *testing.T) {
	tokens := auth.NewTokenService("secret", "issuer", time.Hour)
	r := newAuthRouter(tokens, nil)

	tok, err := tokens.WithClock(func() time.Time { return time.Now().Add(-3 * time.Hour) }).Issue("bob", nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop(), m))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestLatency))
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(0.001, 2))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
