package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config is the process configuration, loaded from the environment with a
// .env file as an optional local override source.
type Config struct {
	Port        string
	DatabaseURL string // postgres DSN; empty means local SQLite
	SQLitePath  string
	DocStore    string // "database", "redis" or "memory"
	RedisAddr   string
	JWTSecret   string
	AIProvider  string
	PistonURL   string
}

func Load() (*Config, error) {
	// Missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnvOrDefault("SQLITE_PATH", "codepair.db"),
		DocStore:    getEnvOrDefault("DOC_STORE", "database"),
		RedisAddr:   getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   getEnvOrDefault("JWT_SECRET", "dev"),
		AIProvider:  getEnvOrDefault("AI_PROVIDER", "gemini"),
		PistonURL:   getEnvOrDefault("PISTON_URL", "https://emkc.org/api/v2/piston/execute"),
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.DocStore {
	case "database", "redis", "memory":
	default:
		return errors.New("unsupported DOC_STORE: " + cfg.DocStore)
	}
	if cfg.AIProvider != "gemini" {
		return errors.New("unsupported AI provider: " + cfg.AIProvider + ". Currently supported: gemini")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
