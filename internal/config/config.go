// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/skillmatrix/internal/llm"
)

// Defaults
const (
	DefaultPort           = 5000
	DefaultMaxUploadBytes = 16 << 20
	DefaultLogMode        = "dev"
	DefaultRequestTimeout = 60
)

// Environment variables read by ApplyEnv
const (
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
	EnvPort        = "PORT"
	EnvLogMode     = "LOG_MODE"
	EnvModel       = "SKILLMATRIX_MODEL"
)

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or environment variables.
type Config struct {
	APIKey         string   `json:"api_key,omitempty"`          // Gemini API key
	Model          string   `json:"model,omitempty"`            // Overrides the standard-tier model
	PinnedModel    string   `json:"pinned_model,omitempty"`     // Used for every tier; Model still wins for standard
	Temperature    float32  `json:"temperature,omitempty"`      // Sampling temperature
	DatabaseURL    string   `json:"database_url,omitempty"`     // PostgreSQL connection URL; empty disables persistence
	Port           int      `json:"port,omitempty"`             // HTTP listen port
	MaxUploadBytes int64    `json:"max_upload_bytes,omitempty"` // Request body and upload cap
	LogMode        string   `json:"log_mode,omitempty"`         // dev or prod
	RequestTimeout int      `json:"request_timeout_seconds,omitempty"`
	AllowedOrigins []string `json:"allowed_origins,omitempty"` // CORS origins; empty allows any
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Temperature:    llm.DefaultTemperature,
		Port:           DefaultPort,
		MaxUploadBytes: DefaultMaxUploadBytes,
		LogMode:        DefaultLogMode,
		RequestTimeout: DefaultRequestTimeout,
	}
}

// Load builds the effective configuration: defaults, then the optional JSON file
// at path, then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		file, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = file.MergeWithDefaults(cfg)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv(EnvModel); v != "" {
		c.Model = v
	}
	if v := getenv(EnvLogMode); v != "" {
		c.LogMode = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be a number, got %q", EnvPort, v)
		}
		c.Port = port
	}
	return nil
}

// Validate checks that the configuration has valid values.
// The API key is not required here since commands that never call the model do not need it.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be positive")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("config error: 'request_timeout_seconds' must be non-negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	switch strings.ToLower(c.LogMode) {
	case "", "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("config error: unknown 'log_mode' %q", c.LogMode)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.PinnedModel == "" {
		result.PinnedModel = defaults.PinnedModel
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogMode == "" {
		result.LogMode = defaults.LogMode
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.RequestTimeout == 0 {
		result.RequestTimeout = defaults.RequestTimeout
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	return result
}

// LLMConfig returns the model client configuration implied by c.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Temperature > 0 {
		cfg.Temperature = c.Temperature
	}
	if c.PinnedModel != "" {
		cfg = cfg.WithAllModels(c.PinnedModel)
	}
	if c.Model != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.Model)
	}
	return cfg
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
