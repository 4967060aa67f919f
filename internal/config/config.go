package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Port           string
	Environment    string
	AppName        string
	AllowedOrigins []string
	// Google Maps
	MapsAPIKey  string
	MapsBaseURL string
	MapsTimeout time.Duration
	// Conversational model (OpenAI-compatible endpoint, e.g. Ollama /v1)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration
	PromptFile string
	// Place search radius in meters
	DefaultRadius int
	// Default per-client limit applied to every route
	RateLimitRequests      int
	RateLimitWindowSeconds int
	TrustProxy             bool
	LogLevel               string
	LogFormat              string
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:                   getEnvDefault("PORT", "8000"),
		Environment:            getEnvDefault("ENVIRONMENT", "development"),
		AppName:                getEnvDefault("APP_NAME", "LLM Maps Assistant API"),
		AllowedOrigins:         getEnvListDefault("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		MapsAPIKey:             os.Getenv("GOOGLE_MAPS_API_KEY"),
		MapsBaseURL:            getEnvDefault("MAPS_BASE_URL", "https://maps.googleapis.com/maps/api"),
		MapsTimeout:            getEnvDurationDefault("MAPS_TIMEOUT", 15*time.Second),
		LLMBaseURL:             getEnvDefault("LLM_BASE_URL", "http://localhost:11434/v1"),
		LLMAPIKey:              getEnvDefault("LLM_API_KEY", "ollama"),
		LLMModel:               getEnvDefault("LLM_MODEL", "llama3.2"),
		LLMTimeout:             getEnvDurationDefault("LLM_TIMEOUT", 60*time.Second),
		PromptFile:             getEnvDefault("PROMPT_FILE", "./prompts/assistant.yaml"),
		DefaultRadius:          getEnvIntDefault("DEFAULT_RADIUS", 5000),
		RateLimitRequests:      getEnvIntDefault("RATELIMIT_REQUESTS", 60),
		RateLimitWindowSeconds: getEnvIntDefault("RATELIMIT_WINDOW_SECONDS", 60),
		TrustProxy:             getEnvBoolDefault("TRUST_PROXY", false),
		LogLevel:               getEnvDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvDefault("LOG_FORMAT", "console"),
	}
}

// Validate reports the first setting that would make the service unusable.
func (c Config) Validate() error {
	if len(c.MapsAPIKey) < 10 {
		return fmt.Errorf("GOOGLE_MAPS_API_KEY must be set (at least 10 characters)")
	}
	if c.RateLimitRequests < 1 {
		return fmt.Errorf("RATELIMIT_REQUESTS must be >= 1, got %d", c.RateLimitRequests)
	}
	if c.RateLimitWindowSeconds < 1 {
		return fmt.Errorf("RATELIMIT_WINDOW_SECONDS must be >= 1, got %d", c.RateLimitWindowSeconds)
	}
	if c.DefaultRadius < 1 || c.DefaultRadius > 50000 {
		return fmt.Errorf("DEFAULT_RADIUS must be within 1..50000, got %d", c.DefaultRadius)
	}
	return nil
}

// RateLimitWindow is the default limiter window as a duration.
func (c Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// NewLogger builds the process logger. Console output is used unless LOG_FORMAT=json.
func NewLogger(c Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if c.LogFormat != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", c.AppName).Logger()
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntDefault(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBoolDefault(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		// Bare numbers are seconds
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return def
}

func getEnvListDefault(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			s := strings.TrimSpace(p)
			if s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
