package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Gemini.Model)
	assert.Empty(t, cfg.LLM.Gemini.Key)
	assert.Equal(t, int64(2048), cfg.LLM.Anthropic.MaxTokens)
	assert.Equal(t, 3, cfg.LLM.RetryAttempts)
	assert.Equal(t, time.Minute, cfg.LLM.Timeout())
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geodata.NominatimURL)
	assert.Equal(t, "ClawFood/1.0 (restaurant-finder)", cfg.Geodata.UserAgent)
	assert.Equal(t, 1100*time.Millisecond, cfg.Geodata.MinInterval())
	assert.InDelta(t, 0.05, cfg.Geodata.ViewboxDelta, 1e-9)
	assert.Equal(t, 400, cfg.Geodata.ThumbWidth)
	assert.Equal(t, 500, cfg.Geodata.NearbyRadius)
	assert.Equal(t, 5, cfg.Geodata.NearbyLimit)
	assert.Equal(t, 10*time.Second, cfg.Geodata.Timeout())
	assert.InDelta(t, 10.7769, cfg.Search.DefaultLatitude, 1e-9)
	assert.InDelta(t, 106.7009, cfg.Search.DefaultLongitude, 1e-9)
	assert.Equal(t, 6, cfg.Search.ResultCount)
	assert.True(t, cfg.Search.Enrich)

	assert.NoError(t, cfg.Validate("serve"))
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: console
server:
  port: 9090
llm:
  provider: anthropic
  anthropic:
    key: sk-ant-test
geodata:
  nominatim_url: http://localhost:8088
  min_interval_ms: 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "sk-ant-test", cfg.LLM.Anthropic.Key)
	assert.Equal(t, "http://localhost:8088", cfg.Geodata.NominatimURL)
	assert.Equal(t, time.Duration(0), cfg.Geodata.MinInterval())
	// Defaults still apply for unset values
	assert.Equal(t, 400, cfg.Geodata.ThumbWidth)
	assert.NoError(t, cfg.Validate("search"))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
llm:
  provider: anthropic
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("CLAWFOOD_LOG_LEVEL", "warn")
	t.Setenv("CLAWFOOD_LLM_PROVIDER", "gemini")
	t.Setenv("CLAWFOOD_LLM_GEMINI_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.Key)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CLAWFOOD_SERVER_PORT", "3000")
	t.Setenv("CLAWFOOD_GEODATA_MIN_INTERVAL_MS", "2000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Geodata.MinInterval())
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config that passes validation in every mode.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = 3001
	cfg.LLM.Provider = "gemini"
	cfg.LLM.RetryAttempts = 3
	cfg.LLM.Temperature = 0.7
	cfg.Geodata.NominatimURL = "https://nominatim.openstreetmap.org"
	cfg.Geodata.WikipediaURL = "https://%s.wikipedia.org/w/api.php"
	cfg.Geodata.UserAgent = "ClawFood/1.0 (restaurant-finder)"
	cfg.Geodata.MinIntervalMs = 1100
	cfg.Geodata.ViewboxDelta = 0.05
	cfg.Search.ResultCount = 6
	return cfg
}

func TestValidate_AllModes(t *testing.T) {
	cfg := validDefaults()
	for _, mode := range []string{"serve", "search", "enrich", "locate"} {
		assert.NoError(t, cfg.Validate(mode), mode)
	}
}

func TestValidate_UnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be between 1 and 65535")

	// Port only matters when serving.
	assert.NoError(t, cfg.Validate("search"))
}

func TestValidate_LLM(t *testing.T) {
	cfg := validDefaults()
	cfg.LLM.Provider = "openai"
	cfg.LLM.RetryAttempts = 0

	err := cfg.Validate("search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `llm.provider "openai"`)
	assert.Contains(t, err.Error(), "llm.retry_attempts must be >= 1")

	// enrich never calls the model.
	assert.NoError(t, cfg.Validate("enrich"))
}

func TestValidate_PublicNominatimInterval(t *testing.T) {
	cfg := validDefaults()
	cfg.Geodata.MinIntervalMs = 500

	err := cfg.Validate("enrich")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_interval_ms")

	cfg.Geodata.NominatimURL = "http://localhost:8088"
	assert.NoError(t, cfg.Validate("enrich"))
}

func TestValidate_Geodata(t *testing.T) {
	cfg := validDefaults()
	cfg.Geodata.UserAgent = ""
	cfg.Geodata.WikipediaURL = "https://en.wikipedia.org/w/api.php"
	cfg.Geodata.ViewboxDelta = 0

	err := cfg.Validate("locate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geodata.user_agent is required")
	assert.Contains(t, err.Error(), "geodata.wikipedia_url must contain %s")
	assert.Contains(t, err.Error(), "geodata.viewbox_delta must be > 0")
}

func TestValidate_ResultCount(t *testing.T) {
	cfg := validDefaults()
	cfg.Search.ResultCount = 50

	err := cfg.Validate("search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.result_count")
}
