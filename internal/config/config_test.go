package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("POLICY_TOP_K", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.UsingDevKey)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 4, cfg.PolicyTopK)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.False(t, cfg.RequirePassword)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "prod-key")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("POLICY_TOP_K", "2")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("HRGW_REQUIRE_PASSWORD", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("LLM_MODEL", "")

	cfg := FromEnv()
	assert.False(t, cfg.UsingDevKey)
	assert.Equal(t, "prod-key", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 2, cfg.PolicyTopK)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLMModel)
	assert.True(t, cfg.RequirePassword)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "-1h")
	t.Setenv("POLICY_TOP_K", "many")

	cfg := FromEnv()
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 4, cfg.PolicyTopK)
}
