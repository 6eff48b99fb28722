package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	LLM      LLMConfig
	Journal  JournalConfig
	Auth     AuthConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
}

// LLMConfig holds generative-model configuration.
// Models is the fallback priority: first entry is the fastest/cheapest
// candidate, later entries are the slower, more capable fallbacks.
type LLMConfig struct {
	APIKey            string
	BaseURL           string
	Models            []string
	TranscribeTimeout time.Duration
	AnalyzeTimeout    time.Duration
	OverallBudget     time.Duration
	MaxInlineMB       int
}

// JournalConfig holds the local run-journal configuration
type JournalConfig struct {
	Path string
}

// AuthConfig holds token verification configuration
type AuthConfig struct {
	JWTSecret string
}

// LoadConfig loads configuration from .env (best effort) and environment variables
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		},
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		LLM: LLMConfig{
			APIKey:            getEnv("GEMINI_API_KEY", ""),
			BaseURL:           getEnv("GEMINI_BASE_URL", ""),
			Models:            getEnvAsList("GEMINI_MODELS", []string{"gemini-2.0-flash-lite", "gemini-2.0-flash", "gemini-1.5-pro"}),
			TranscribeTimeout: getEnvAsDuration("LLM_TRANSCRIBE_TIMEOUT", 15*time.Second),
			AnalyzeTimeout:    getEnvAsDuration("LLM_ANALYZE_TIMEOUT", 45*time.Second),
			OverallBudget:     getEnvAsDuration("LLM_OVERALL_BUDGET", 0),
			MaxInlineMB:       getEnvAsInt("LLM_MAX_INLINE_MB", 10),
		},
		Journal: JournalConfig{
			Path: getEnv("JOURNAL_PATH", "./nutrivoice-journal.db"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrInvalidInput)
	}
	if len(c.LLM.Models) == 0 {
		return NewAppError("CONFIG_ERROR", "GEMINI_MODELS must list at least one candidate", ErrInvalidInput)
	}
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Auth.JWTSecret == "" {
		return NewAppError("CONFIG_ERROR", "JWT_SECRET is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
