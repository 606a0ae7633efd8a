package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Sandbox   SandboxConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// GeminiConfig holds vision backend configuration.
type GeminiConfig struct {
	APIKey            string        `envconfig:"GEMINI_API_KEY"`
	Model             string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-pro"`
	ExtractionTimeout time.Duration `envconfig:"GEMINI_EXTRACTION_TIMEOUT" default:"120s"`
	TextTimeout       time.Duration `envconfig:"GEMINI_TEXT_TIMEOUT" default:"60s"`
}

// SandboxConfig holds component store configuration.
type SandboxConfig struct {
	BaseURL string        `envconfig:"SANDBOX_URL" default:"http://localhost:3000/api/generate"`
	Timeout time.Duration `envconfig:"SANDBOX_TIMEOUT" default:"30s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Gemini: GeminiConfig{
			Model:             "gemini-2.5-pro",
			ExtractionTimeout: 120 * time.Second,
			TextTimeout:       60 * time.Second,
		},
		Sandbox: SandboxConfig{
			BaseURL: "http://localhost:3000/api/generate",
			Timeout: 30 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
