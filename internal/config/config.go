package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

var ErrMissingAPIKey = errors.New("missing LLM API key")

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	LLM       LLMConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	History   HistoryConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	LogLevel    string
	AllowOrigin string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type LLMConfig struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

type UploadConfig struct {
	MaxFileSize int64
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type HistoryConfig struct {
	Enabled bool
}

// Load reads the environment (and an optional .env file). It fails when the
// credential for the selected LLM provider is absent.
func Load() (*Config, error) {
	_ = godotenv.Load()

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenRouter))

	llm := LLMConfig{
		Provider:    provider,
		Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.3),
		Timeout:     getEnvAsDuration("LLM_TIMEOUT", "120s"),
	}

	switch provider {
	case ProviderOpenRouter:
		llm.APIKey = getEnv("OPENROUTER_API_KEY", "")
		llm.Model = getEnv("LLM_MODEL", "meta-llama/llama-3.3-70b-instruct:free")
		llm.BaseURL = getEnv("LLM_BASE_URL", "https://openrouter.ai/api/v1")
		if llm.APIKey == "" {
			return nil, fmt.Errorf("%w: OPENROUTER_API_KEY is not set", ErrMissingAPIKey)
		}
	case ProviderGemini:
		llm.APIKey = getEnv("GEMINI_API_KEY", "")
		llm.Model = getEnv("LLM_MODEL", "gemini-2.5-flash")
		llm.BaseURL = getEnv("LLM_BASE_URL", "")
		if llm.APIKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrMissingAPIKey)
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER: %q", provider)
	}

	return &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8000"),
			Env:         getEnv("ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			AllowOrigin: getEnv("CORS_ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "jobhunt_ai"),
		},
		LLM: llm,
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		RateLimit: RateLimitConfig{
			Max:    getEnvAsInt("RATE_LIMIT_MAX", 30),
			Window: getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
		},
		History: HistoryConfig{
			Enabled: getEnvAsBool("HISTORY_ENABLED", false),
		},
	}, nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// RequestBodyLimit leaves room for both uploads plus the text fields. A
// larger body is cut off by the server with 413 before any handler runs.
func (c *Config) RequestBodyLimit() int {
	return int(2*c.Upload.MaxFileSize) + 1<<20
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
