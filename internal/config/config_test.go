package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "abcdefghijkl")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("DEFAULT_RADIUS", "")
	t.Setenv("LLM_TIMEOUT", "")
	t.Setenv("TRUST_PROXY", "")

	cfg := Load()
	assert.Equal(t, 5000, cfg.DefaultRadius)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.AllowedOrigins)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("LLM_TIMEOUT", "5")
	t.Setenv("MAPS_TIMEOUT", "750ms")
	t.Setenv("RATELIMIT_REQUESTS", "not-a-number")
	t.Setenv("TRUST_PROXY", "true")

	cfg := Load()
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 750*time.Millisecond, cfg.MapsTimeout)
	assert.Equal(t, 60, cfg.RateLimitRequests)
	assert.True(t, cfg.TrustProxy)
}

func TestValidate(t *testing.T) {
	base := Config{MapsAPIKey: "abcdefghijkl", RateLimitRequests: 1, RateLimitWindowSeconds: 1, DefaultRadius: 5000}
	require.NoError(t, base.Validate())

	short := base
	short.MapsAPIKey = "abc"
	assert.Error(t, short.Validate())

	radius := base
	radius.DefaultRadius = 60000
	assert.Error(t, radius.Validate())
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{LogLevel: "warn", LogFormat: "json", AppName: "test"}, &buf)
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
	assert.Contains(t, buf.String(), `"app":"test"`)
}
