package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Host string
	Env  string

	// Storage
	DatabaseURL string // Postgres; preferred when set
	SQLitePath  string // fallback store for single-node deployments
	RedisURL    string // optional, enables rate limiting

	// LiveKit credentials
	LiveKitAPIKey    string
	LiveKitAPISecret string
	LiveKitURL       string

	// Agent worker
	APIBaseURL    string // history loader target (the API server)
	GeminiAPIKey  string
	AgentRoom     string
	FlushInterval time.Duration
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Host:             getEnv("HOST", "0.0.0.0"),
		Env:              getEnv("ENV", "development"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SQLitePath:       os.Getenv("SQLITE_PATH"),
		RedisURL:         os.Getenv("REDIS_URL"),
		LiveKitAPIKey:    os.Getenv("LIVEKIT_API_KEY"),
		LiveKitAPISecret: os.Getenv("LIVEKIT_API_SECRET"),
		LiveKitURL:       getEnv("LIVEKIT_URL", "wss://demo-project-92ni5pxo.livekit.cloud"),
		APIBaseURL:       getEnv("API_BASE_URL", "http://localhost:8080"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		AgentRoom:        os.Getenv("AGENT_ROOM"),
		FlushInterval:    getDuration("FLUSH_INTERVAL", time.Second),
	}

	// In production, require a real store
	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		panic("DATABASE_URL is required in production")
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// HasLiveKitCredentials reports whether token minting and room deletion can
// work. Missing credentials degrade only those operations, not the process.
func (c *Config) HasLiveKitCredentials() bool {
	return c.LiveKitAPIKey != "" && c.LiveKitAPISecret != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
