package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatrix/internal/llm"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"api_key": "file-key",
		"model": "gemini-exp",
		"port": 8080,
		"max_upload_bytes": 1048576,
		"allowed_origins": ["http://localhost:3000"]
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "gemini-exp", cfg.Model)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestLoad_DefaultsFileAndEnv(t *testing.T) {
	path := writeConfig(t, `{"api_key": "file-key", "port": 8080}`)
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvDatabaseURL, "")
	t.Setenv(EnvPort, "")
	t.Setenv(EnvLogMode, "")
	t.Setenv(EnvModel, "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey, "environment wins over file")
	assert.Equal(t, 8080, cfg.Port, "file wins over defaults")
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, DefaultLogMode, cfg.LogMode)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvPort, "")
	t.Setenv(EnvLogMode, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvAPIKey:      "k",
		EnvDatabaseURL: "postgres://localhost/skills",
		EnvPort:        "9000",
		EnvLogMode:     "prod",
		EnvModel:       "gemini-2.5-pro",
	}))
	require.NoError(t, err)

	assert.Equal(t, "k", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/skills", cfg.DatabaseURL)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)

	err = cfg.ApplyEnv(envMap(map[string]string{EnvPort: "eighty"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvPort)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "negative port", mutate: func(c *Config) { c.Port = -1 }, wantErr: "port"},
		{name: "zero upload size", mutate: func(c *Config) { c.MaxUploadBytes = 0 }, wantErr: "max_upload_bytes"},
		{name: "negative timeout", mutate: func(c *Config) { c.RequestTimeout = -5 }, wantErr: "request_timeout_seconds"},
		{name: "temperature too high", mutate: func(c *Config) { c.Temperature = 3 }, wantErr: "temperature"},
		{name: "unknown log mode", mutate: func(c *Config) { c.LogMode = "verbose" }, wantErr: "log_mode"},
		{name: "production log mode", mutate: func(c *Config) { c.LogMode = "Production" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		APIKey: "from-file",
		Port:   7000,
	}
	defaults := Config{
		APIKey:         "default-key",
		DatabaseURL:    "postgres://default",
		Port:           5000,
		MaxUploadBytes: 42,
		AllowedOrigins: []string{"*"},
	}

	result := cfg.MergeWithDefaults(defaults)

	// Non-zero values are preserved
	assert.Equal(t, "from-file", result.APIKey)
	assert.Equal(t, 7000, result.Port)

	// Zero values come from defaults
	assert.Equal(t, "postgres://default", result.DatabaseURL)
	assert.Equal(t, int64(42), result.MaxUploadBytes)
	assert.Equal(t, []string{"*"}, result.AllowedOrigins)

	// Original is unchanged
	assert.Equal(t, "", cfg.DatabaseURL)
}

func TestLLMConfig(t *testing.T) {
	cfg := Default()
	base := cfg.LLMConfig()
	assert.Equal(t, llm.DefaultConfig().GetModel(llm.TierStandard), base.GetModel(llm.TierStandard))
	assert.Equal(t, llm.DefaultTemperature, base.Temperature)

	cfg.Model = "gemini-exp"
	cfg.Temperature = 0.7
	custom := cfg.LLMConfig()
	assert.Equal(t, "gemini-exp", custom.GetModel(llm.TierStandard))
	assert.Equal(t, llm.DefaultConfig().GetModel(llm.TierAdvanced), custom.GetModel(llm.TierAdvanced))
	assert.Equal(t, float32(0.7), custom.Temperature)
}

func TestLLMConfig_PinnedModel(t *testing.T) {
	cfg := Default()
	cfg.PinnedModel = "gemini-pinned"
	pinned := cfg.LLMConfig()
	for _, tier := range []llm.ModelTier{llm.TierLite, llm.TierStandard, llm.TierAdvanced} {
		assert.Equal(t, "gemini-pinned", pinned.GetModel(tier), tier)
	}

	cfg.Model = "gemini-exp"
	mixed := cfg.LLMConfig()
	assert.Equal(t, "gemini-exp", mixed.GetModel(llm.TierStandard))
	assert.Equal(t, "gemini-pinned", mixed.GetModel(llm.TierAdvanced))
}
