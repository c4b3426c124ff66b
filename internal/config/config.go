package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Geodata GeodataConfig `yaml:"geodata" mapstructure:"geodata"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port        int      `yaml:"port" mapstructure:"port"`
	CORSOrigins []string `yaml:"cors_origins" mapstructure:"cors_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LLMConfig selects and configures the suggestion model.
type LLMConfig struct {
	Provider      string          `yaml:"provider" mapstructure:"provider"`
	Gemini        GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	Anthropic     AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	RetryAttempts int             `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	Temperature   float64         `yaml:"temperature" mapstructure:"temperature"`
	TimeoutSecs   int             `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout is the per-request HTTP timeout for model calls. Zero means none.
func (l LLMConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutSecs) * time.Second
}

// GeminiConfig holds Google Gen AI settings.
type GeminiConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	Model   string `yaml:"model" mapstructure:"model"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
}

// GeodataConfig configures the free geocoding and photo sources.
type GeodataConfig struct {
	NominatimURL   string  `yaml:"nominatim_url" mapstructure:"nominatim_url"`
	WikidataURL    string  `yaml:"wikidata_url" mapstructure:"wikidata_url"`
	CommonsURL     string  `yaml:"commons_url" mapstructure:"commons_url"`
	WikipediaURL   string  `yaml:"wikipedia_url" mapstructure:"wikipedia_url"`
	UserAgent      string  `yaml:"user_agent" mapstructure:"user_agent"`
	AcceptLanguage string  `yaml:"accept_language" mapstructure:"accept_language"`
	MinIntervalMs  int     `yaml:"min_interval_ms" mapstructure:"min_interval_ms"`
	ViewboxDelta   float64 `yaml:"viewbox_delta" mapstructure:"viewbox_delta"`
	ThumbWidth     int     `yaml:"thumb_width" mapstructure:"thumb_width"`
	NearbyRadius   int     `yaml:"nearby_radius_m" mapstructure:"nearby_radius_m"`
	NearbyLimit    int     `yaml:"nearby_limit" mapstructure:"nearby_limit"`
	NearbyLang     string  `yaml:"nearby_lang" mapstructure:"nearby_lang"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// MinInterval is the geocoder throttle spacing.
func (g GeodataConfig) MinInterval() time.Duration {
	return time.Duration(g.MinIntervalMs) * time.Millisecond
}

// Timeout is the per-request HTTP timeout for geodata clients.
func (g GeodataConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// SearchConfig configures suggestion searches.
type SearchConfig struct {
	DefaultLatitude  float64 `yaml:"default_latitude" mapstructure:"default_latitude"`
	DefaultLongitude float64 `yaml:"default_longitude" mapstructure:"default_longitude"`
	ResultCount      int     `yaml:"result_count" mapstructure:"result_count"`
	Enrich           bool    `yaml:"enrich" mapstructure:"enrich"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CLAWFOOD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Keys without a default are invisible to AutomaticEnv during
	// Unmarshal, so secrets default to "".
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.retry_attempts", 3)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout_secs", 60)
	v.SetDefault("llm.gemini.key", "")
	v.SetDefault("llm.gemini.model", "gemini-2.0-flash")
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.anthropic.key", "")
	v.SetDefault("llm.anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("llm.anthropic.max_tokens", 2048)
	v.SetDefault("llm.anthropic.base_url", "")
	v.SetDefault("geodata.nominatim_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geodata.wikidata_url", "https://www.wikidata.org/w/api.php")
	v.SetDefault("geodata.commons_url", "https://commons.wikimedia.org/w/api.php")
	v.SetDefault("geodata.wikipedia_url", "https://%s.wikipedia.org/w/api.php")
	v.SetDefault("geodata.user_agent", "ClawFood/1.0 (restaurant-finder)")
	v.SetDefault("geodata.accept_language", "vi,en")
	v.SetDefault("geodata.min_interval_ms", 1100)
	v.SetDefault("geodata.viewbox_delta", 0.05)
	v.SetDefault("geodata.thumb_width", 400)
	v.SetDefault("geodata.nearby_radius_m", 500)
	v.SetDefault("geodata.nearby_limit", 5)
	v.SetDefault("geodata.nearby_lang", "en")
	v.SetDefault("geodata.timeout_secs", 10)
	v.SetDefault("search.default_latitude", 10.7769)
	v.SetDefault("search.default_longitude", 106.7009)
	v.SetDefault("search.result_count", 6)
	v.SetDefault("search.enrich", true)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Modes are
// "serve", "search", "enrich" and "locate".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be between 1 and 65535")
		}
		errs = append(errs, c.validateLLM()...)
		errs = append(errs, c.validateGeodata()...)
	case "search":
		errs = append(errs, c.validateLLM()...)
		errs = append(errs, c.validateGeodata()...)
	case "enrich", "locate":
		errs = append(errs, c.validateGeodata()...)
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Search.ResultCount < 1 || c.Search.ResultCount > 20 {
		errs = append(errs, "search.result_count must be between 1 and 20")
	}

	if len(errs) > 0 {
		return eris.New(fmt.Sprintf("config: %s", strings.Join(errs, "; ")))
	}
	return nil
}

func (c *Config) validateLLM() []string {
	var errs []string
	switch c.LLM.Provider {
	case "gemini", "anthropic":
	default:
		errs = append(errs, fmt.Sprintf("llm.provider %q is not one of gemini, anthropic", c.LLM.Provider))
	}
	if c.LLM.RetryAttempts < 1 {
		errs = append(errs, "llm.retry_attempts must be >= 1")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, "llm.temperature must be between 0 and 2")
	}
	return errs
}

func (c *Config) validateGeodata() []string {
	var errs []string
	if c.Geodata.NominatimURL == "" {
		errs = append(errs, "geodata.nominatim_url is required")
	}
	if c.Geodata.UserAgent == "" {
		errs = append(errs, "geodata.user_agent is required")
	}
	if !strings.Contains(c.Geodata.WikipediaURL, "%s") {
		errs = append(errs, "geodata.wikipedia_url must contain %s for the language")
	}
	// The public Nominatim policy allows one request per second.
	if c.Geodata.MinIntervalMs < 1000 && strings.Contains(c.Geodata.NominatimURL, "nominatim.openstreetmap.org") {
		errs = append(errs, "geodata.min_interval_ms must be >= 1000 for the public Nominatim service")
	}
	if c.Geodata.ViewboxDelta <= 0 {
		errs = append(errs, "geodata.viewbox_delta must be > 0")
	}
	return errs
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
