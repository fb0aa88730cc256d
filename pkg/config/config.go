package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingToken is returned by Load when HF_API_TOKEN is not set.
var ErrMissingToken = errors.New("HF_API_TOKEN not found in environment variables. Please check your .env file")

type Config struct {
	Port        string
	DatabaseURL string

	HFAPIToken      string
	HFBaseURL       string
	HFPrimaryModel  string
	HFFallbackModel string
	HFTimeoutSecs   int

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	AdviceRatePerMinute int
}

// Load reads environment variables, optionally from a .env file if present.
// The inference token is the only required value.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		HFAPIToken:          strings.TrimSpace(os.Getenv("HF_API_TOKEN")),
		HFBaseURL:           getEnv("HF_BASE_URL", "https://api-inference.huggingface.co/models"),
		HFPrimaryModel:      getEnv("HF_PRIMARY_MODEL", "gpt2"),
		HFFallbackModel:     getEnv("HF_FALLBACK_MODEL", "distilgpt2"),
		HFTimeoutSecs:       getEnvInt("HF_TIMEOUT_SECONDS", 60),
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:           getEnv("JWT_ISSUER", "career-advisor"),
		JWTTTLMinutes:       getEnvInt("JWT_TTL_MINUTES", 60),
		AdviceRatePerMinute: getEnvInt("ADVICE_RATE_PER_MINUTE", 20),
	}
	if cfg.HFAPIToken == "" {
		return cfg, ErrMissingToken
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
