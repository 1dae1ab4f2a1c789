package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-secret-change-me"

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config captures everything the gateway reads from the environment.
type Config struct {
	Addr string

	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	UsingDevKey bool

	DBPath          string
	ProfileSeedPath string
	RequirePassword bool

	PolicyDir      string
	PolicyIndexURL string
	PolicyTopK     int

	LLMProvider  string
	LLMBaseURL   string
	LLMModel     string
	LLMAPIKey    string
	GeminiAPIKey string
	LLMTimeout   time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel string
	LogDev   bool
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment take precedence over .env.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	cfg := Config{
		Addr:            getString("HRGW_ADDR", ":8080"),
		JWTSecret:       os.Getenv("JWT_SECRET_KEY"),
		JWTIssuer:       getString("JWT_ISSUER", "hr-policy-gateway"),
		JWTTTL:          getDuration("JWT_TTL", time.Hour),
		DBPath:          getString("HRGW_DB_PATH", "./hr_gateway.db"),
		ProfileSeedPath: os.Getenv("HRGW_PROFILE_SEED"),
		RequirePassword: getBool("HRGW_REQUIRE_PASSWORD", false),
		PolicyDir:       os.Getenv("POLICY_DIR"),
		PolicyIndexURL:  os.Getenv("POLICY_INDEX_URL"),
		PolicyTopK:      getInt("POLICY_TOP_K", 4),
		LLMProvider:     strings.ToLower(getString("LLM_PROVIDER", ProviderOpenAI)),
		LLMBaseURL:      getString("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:        os.Getenv("LLM_MODEL"),
		LLMAPIKey:       os.Getenv("LLM_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		LLMTimeout:      getDuration("LLM_TIMEOUT", 30*time.Second),
		RateLimitRPS:    getFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:  getInt("RATE_LIMIT_BURST", 20),
		LogLevel:        getString("LOG_LEVEL", "info"),
		LogDev:          getBool("LOG_DEV", false),
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultModel(cfg.LLMProvider)
	}
	if cfg.JWTSecret == "" {
		// 기본 키 설정 (운영 환경에서는 반드시 JWT_SECRET_KEY 지정)
		cfg.JWTSecret = devJWTSecret
		cfg.UsingDevKey = true
	}
	return cfg
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.0-flash"
	}
	return "gpt-4o-mini"
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
