package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Ingest IngestConfig
	LLM    LLMConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr string
}

// StoreConfig holds persistence configuration
type StoreConfig struct {
	OrdersDir   string // pebble database directory for order records
	CatalogPath string // sqlite file for the catalog mirror
}

// IngestConfig holds batch-run source and output locations
type IngestConfig struct {
	CatalogFile string
	EmailDir    string
	OutputDir   string
	RunOnStart  bool
}

// LLMConfig holds extraction model configuration
type LLMConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":4000"),
		},
		Store: StoreConfig{
			OrdersDir:   getEnv("ORDERS_DB_DIR", "./data/orders"),
			CatalogPath: getEnv("CATALOG_DB_PATH", "./data/catalog.db"),
		},
		Ingest: IngestConfig{
			CatalogFile: getEnv("CATALOG_FILE", "./data/Product Catalog.csv"),
			EmailDir:    getEnv("EMAIL_DIR", "./data/sample_emails"),
			OutputDir:   getEnv("PDF_OUTPUT_DIR", "./generated"),
			RunOnStart:  getEnvAsBool("INGEST_ON_START", false),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("GROQ_BASE_URL", ""),
			Model:       getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
			APIKey:      getEnv("GROQ_API_KEY", ""),
			Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.1),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 1000),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 45*time.Second),
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
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
	if c.Ingest.CatalogFile == "" {
		return NewAppError("CONFIG_ERROR", "CATALOG_FILE is required", ErrInvalidInput)
	}
	if c.Ingest.EmailDir == "" {
		return NewAppError("CONFIG_ERROR", "EMAIL_DIR is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
