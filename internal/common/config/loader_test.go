package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "test")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "gemini-2.5-flash", cfg.APIs.GenAI.Model)
	assert.Equal(t, "v1beta", cfg.APIs.GenAI.APIVersion)
	assert.Equal(t, 1, cfg.APIs.GenAI.MaxRetries)
	assert.Equal(t, 5, cfg.APIs.WebSearch.MaxResults)
	assert.Equal(t, "active", cfg.APIs.WebSearch.Safe)
	assert.Equal(t, "none", cfg.Tracing.Exporter)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
app:
  name: truecheck
  version: 1.2.3
server:
  address: ":9090"
  cors_allowed_origins: ["https://app.example.com"]
apis:
  genai:
    model: gemini-2.0-flash
    timeout: 5000
  web_search:
    api_key: ${TEST_SEARCH_KEY}
    engine_id: engine-1
logging:
  level: debug
  format: console
`)
	t.Setenv("TEST_SEARCH_KEY", "from-env")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "gemini-2.0-flash", cfg.APIs.GenAI.Model)
	assert.Equal(t, 5*time.Second, GetDuration(cfg.APIs.GenAI.Timeout))
	assert.Equal(t, "from-env", cfg.APIs.WebSearch.APIKey)
	assert.True(t, cfg.APIs.WebSearch.Enabled())
	assert.Equal(t, "console", cfg.Logging.Format)
	// untouched keys keep their defaults
	assert.Equal(t, 10000, cfg.APIs.WebSearch.Timeout)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "apis:\n  genai:\n    model: from-file\n")
	t.Setenv("APIS_GENAI_MODEL", "from-env")
	t.Setenv("WEB_SEARCH_API_KEY", "k")
	t.Setenv("WEB_SEARCH_ENGINE_ID", "cx")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.APIs.GenAI.Model)
	assert.Equal(t, "k", cfg.APIs.WebSearch.APIKey)
	assert.Equal(t, "cx", cfg.APIs.WebSearch.EngineID)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"too many results", "apis:\n  web_search:\n    max_results: 20\n", "max_results"},
		{"negative retries", "apis:\n  genai:\n    max_retries: -1\n", "max_retries"},
		{"unknown exporter", "tracing:\n  exporter: jaeger\n", "tracing.exporter"},
		{"bad log format", "logging:\n  format: xml\n", "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWebSearchConfig_Enabled(t *testing.T) {
	assert.False(t, WebSearchConfig{}.Enabled())
	assert.False(t, WebSearchConfig{APIKey: "k"}.Enabled())
	assert.False(t, WebSearchConfig{EngineID: "cx"}.Enabled())
	assert.True(t, WebSearchConfig{APIKey: "k", EngineID: "cx"}.Enabled())
}
