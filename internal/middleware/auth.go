package middleware

import (
	"errors"
	"net/http"
	"strings"

	"HRPolicyGateway/internal/auth"
	"HRPolicyGateway/internal/gateway"
	"HRPolicyGateway/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const callerKey = "caller"

// TokenVerifier is satisfied by *auth.TokenService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware rejects the request with 401 before any handler runs unless
// it carries a valid bearer token. The response never says which check failed.
func AuthMiddleware(verifier TokenVerifier, m *metrics.Metrics, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.IncAuthFailure("missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			m.IncAuthFailure("missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		caller, err := Authenticate(verifier, strings.TrimSpace(tokenString))
		if err != nil {
			m.IncAuthFailure(FailureReason(err))
			logger.Debug("AuthMiddleware(): token rejected", zap.String("path", c.FullPath()), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(callerKey, caller)
		c.Next()
	}
}

// Authenticate verifies tokenString and returns the caller it proves.
func Authenticate(verifier TokenVerifier, tokenString string) (gateway.Caller, error) {
	claims, err := verifier.Verify(tokenString)
	if err != nil {
		return gateway.Caller{}, err
	}
	return gateway.CallerFromClaims(claims), nil
}

// CallerFrom returns the caller stored by AuthMiddleware.
func CallerFrom(c *gin.Context) (gateway.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return gateway.Caller{}, false
	}
	caller, ok := v.(gateway.Caller)
	return caller, ok
}

// FailureReason labels a token verification error for metrics.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "expired"
	case errors.Is(err, auth.ErrMalformedToken):
		return "malformed"
	default:
		return "invalid"
	}
}
