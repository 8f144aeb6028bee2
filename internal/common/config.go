package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Drive    DriveConfig
	LLM      LLMConfig
	Parse    ParseConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds persistence configuration. An empty DSN disables
// persistence entirely; the pipeline then skips the write stage.
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
	HealthTimeout   time.Duration
}

// DriveConfig holds blob-store (Google Drive) configuration
type DriveConfig struct {
	ServiceAccountJSON string // raw JSON string, not a path
	ChunkSize          int
}

// LLMConfig holds inference endpoint configuration
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// ParseConfig holds per-request pipeline behavior
type ParseConfig struct {
	DefaultTimeout time.Duration // inference timeout when the caller supplies none
	MaxTimeout     time.Duration // upper clamp for caller-supplied timeouts
	FetchTimeout   time.Duration // fixed retrieval timeout, not caller-configurable
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
			HealthTimeout:   getEnvAsDuration("DB_HEALTH_TIMEOUT", 3*time.Second),
		},
		Drive: DriveConfig{
			ServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
			ChunkSize:          getEnvAsInt("DRIVE_CHUNK_SIZE", 1<<20),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("GROQ_API_KEY", ""),
			BaseURL:     getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1"),
			Model:       getEnv("GROQ_MODEL", "openai/gpt-oss-120b"),
			Temperature: getEnvAsFloat32("GROQ_TEMPERATURE", 0.0),
			MaxTokens:   getEnvAsInt("GROQ_MAX_TOKENS", 1024),
		},
		Parse: ParseConfig{
			DefaultTimeout: getEnvAsDuration("PARSE_DEFAULT_TIMEOUT", 30*time.Second),
			MaxTimeout:     getEnvAsDuration("PARSE_MAX_TIMEOUT", 2*time.Minute),
			FetchTimeout:   getEnvAsDuration("PARSE_FETCH_TIMEOUT", 2*time.Minute),
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

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
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

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GROQ_API_KEY is required", ErrInvalidInput)
	}
	if c.Drive.ServiceAccountJSON == "" {
		return NewAppError("CONFIG_ERROR", "GOOGLE_SERVICE_ACCOUNT_JSON is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
