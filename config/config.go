package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"car-finance/service"
)

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string

	// Base URL of the recommendation/prediction backend. Empty disables
	// personalized predictions.
	PredictionURL     string
	PredictionTimeout time.Duration
	DebounceDelay     time.Duration
	SessionIdleTTL    time.Duration

	// Empty RedisAddr selects the in-memory profile cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ProfileTTL    time.Duration

	// HS256 secret for identity-provider tokens. Empty allows only anonymous use.
	JWTSecret string

	RateLimit       int
	RateLimitWindow time.Duration

	// Year used to compute vehicle age; 0 means the current year.
	ReferenceYear int
}

// Load reads an optional .env file, then the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("load %s: %w", f, err)
			}
		}
	}
	return NewConfig()
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	var err error
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PredictionURL: getEnv("PREDICTION_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
	}

	if cfg.PredictionTimeout, err = getDuration("PREDICTION_TIMEOUT", service.DefaultPredictionTimeout); err != nil {
		return nil, err
	}
	if cfg.DebounceDelay, err = getDuration("DEBOUNCE_DELAY", service.DefaultDebounceDelay); err != nil {
		return nil, err
	}
	if cfg.SessionIdleTTL, err = getDuration("SESSION_IDLE_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ProfileTTL, err = getDuration("PROFILE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 120); err != nil {
		return nil, err
	}
	if cfg.ReferenceYear, err = getInt("REFERENCE_YEAR", 0); err != nil {
		return nil, err
	}

	if cfg.Port == "" {
		return nil, fmt.Errorf("PORT is required")
	}
	if cfg.DebounceDelay < 0 {
		return nil, fmt.Errorf("DEBOUNCE_DELAY must not be negative")
	}
	if cfg.RateLimit <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func getInt(key string, defaultVal int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}
