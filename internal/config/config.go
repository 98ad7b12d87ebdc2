package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Auth    AuthConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
	TrustedProxies []string
}

type StorageConfig struct {
	DataDir string
}

type AuthConfig struct {
	SessionTTL      time.Duration
	RememberMeTTL   time.Duration
	MaxAttemptHint  int
	FailureLookback time.Duration
	SweepInterval   time.Duration
	DemoUsername    string
	DemoSecret      string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: parseAllowedOrigins(env),
			TrustedProxies: parseCSV(getEnv("TRUSTED_PROXIES", "")),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "./data"),
		},
		Auth: AuthConfig{
			SessionTTL:      getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			RememberMeTTL:   getEnvAsDuration("REMEMBER_ME_TTL", 30*24*time.Hour),
			MaxAttemptHint:  getEnvAsInt("MAX_ATTEMPT_HINT", 5),
			FailureLookback: getEnvAsDuration("FAILURE_LOOKBACK", 15*time.Minute),
			SweepInterval:   getEnvAsDuration("SESSION_SWEEP_INTERVAL", 1*time.Hour),
			DemoUsername:    getEnv("DEMO_USERNAME", "admin"),
			DemoSecret:      getEnv("DEMO_SECRET", "admin123"),
		},
	}

	if cfg.Storage.DataDir == "" {
		return nil, fmt.Errorf("DATA_DIR cannot be empty")
	}

	// The shipped demo secret must not survive into production
	if env == "production" && os.Getenv("DEMO_SECRET") == "" {
		return nil, fmt.Errorf("DEMO_SECRET is required in production environment")
	}

	if cfg.Auth.SessionTTL <= 0 || cfg.Auth.RememberMeTTL <= 0 {
		return nil, fmt.Errorf("session TTLs must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func parseCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		return parseCSV(getEnv("ALLOWED_ORIGINS", ""))
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:5173",
	}
}
