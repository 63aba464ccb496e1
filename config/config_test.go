package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"car-finance/service"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "PREDICTION_URL", "PREDICTION_TIMEOUT", "DEBOUNCE_DELAY", "RATE_LIMIT", "REDIS_ADDR"} {
		unsetEnv(t, key)
	}

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.PredictionURL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, service.DefaultPredictionTimeout, cfg.PredictionTimeout)
	assert.Equal(t, service.DefaultDebounceDelay, cfg.DebounceDelay)
	assert.Equal(t, 5*time.Second, cfg.PredictionTimeout)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceDelay)
	assert.Equal(t, 120, cfg.RateLimit)
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PREDICTION_URL", "http://predict.local:5000")
	t.Setenv("PREDICTION_TIMEOUT", "2s")
	t.Setenv("DEBOUNCE_DELAY", "150ms")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REFERENCE_YEAR", "2024")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://predict.local:5000", cfg.PredictionURL)
	assert.Equal(t, 2*time.Second, cfg.PredictionTimeout)
	assert.Equal(t, 150*time.Millisecond, cfg.DebounceDelay)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 2024, cfg.ReferenceYear)
}

func TestNewConfig_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"PREDICTION_TIMEOUT": "soon",
		"DEBOUNCE_DELAY":     "-1s",
		"RATE_LIMIT":         "0",
		"REDIS_DB":           "first",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	unsetEnv(t, "PREDICTION_URL")
	unsetEnv(t, "JWT_SECRET")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PREDICTION_URL=http://ml:5000\nJWT_SECRET=s3cret\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://ml:5000", cfg.PredictionURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestNewLogger_FallsBackToInfo(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("chatty").GetLevel())
}

// unsetEnv clears key for the duration of the test; t.Setenv restores it.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}
