package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	LLM     LLMConfig
	Payload PayloadConfig
	PDF     PDFConfig
	Server  ServerConfig
}

// LLMConfig holds model-call configuration
type LLMConfig struct {
	APIKey           string
	BaseURL          string
	Model            string
	MaxImagesPerCall int
	Timeout          time.Duration
}

// PayloadConfig holds the image payload limits for the normal and light tiers.
// The light tier is used only on retry after a failed batch.
type PayloadConfig struct {
	TargetWidthPx    int
	JPEGQuality      int
	LightWidthPx     int
	LightJPEGQuality int
}

// PDFConfig holds rasterization settings
type PDFConfig struct {
	DPI      int
	Pdftoppm string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr        string
	BodyLimitMB int
}

// LoadConfig loads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func LoadConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			APIKey:           firstEnv("OPENAI_API_KEY", "OPENAI_CREDENTIALS"),
			BaseURL:          getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:            getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxImagesPerCall: getEnvAsInt("MAX_IMAGES_PER_CALL", 2),
			Timeout:          getEnvAsDuration("OPENAI_TIMEOUT", 120*time.Second),
		},
		Payload: PayloadConfig{
			TargetWidthPx:    getEnvAsInt("TARGET_WIDTH_PX", 1600),
			JPEGQuality:      getEnvAsInt("JPEG_QUALITY", 80),
			LightWidthPx:     getEnvAsInt("LIGHT_WIDTH_PX", 1200),
			LightJPEGQuality: getEnvAsInt("LIGHT_JPEG_QUALITY", 70),
		},
		PDF: PDFConfig{
			DPI:      getEnvAsInt("RENDER_DPI", 240),
			Pdftoppm: getEnv("PDFTOPPM_BIN", "pdftoppm"),
		},
		Server: ServerConfig{
			Addr:        getEnv("HTTP_ADDR", ":8080"),
			BodyLimitMB: getEnvAsInt("HTTP_BODY_LIMIT_MB", 64),
		},
	}
}

// Validate checks that the configuration is usable before any work starts.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY (or OPENAI_CREDENTIALS) is required", ErrConfig)
	}
	if c.LLM.MaxImagesPerCall <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_IMAGES_PER_CALL must be positive", ErrConfig)
	}
	if c.PDF.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "RENDER_DPI must be positive", ErrConfig)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// firstEnv returns the first non-empty value among the given variable names.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
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
