// Package config provides configuration management for the gotender
// application. It handles loading, validation, and access to configuration
// values from YAML files and environment variables via viper.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/orchestrarfp/gotender/internal/logger"
)

// Discovery defaults.
const (
	DefaultPerSourceLimit = 15
	DefaultWindowDays     = 90
	DefaultWorkers        = 4
	DefaultKeywordBonus   = 20
)

// Fetch defaults.
const (
	DefaultFetchAttempts = 3
	DefaultFetchBackoff  = 2 * time.Second
	DefaultFetchTimeout  = 12 * time.Second
)

// Server defaults.
const (
	defaultServerAddress      = ":8080"
	defaultServerReadTimeout  = 15 * time.Second
	defaultServerWriteTimeout = 15 * time.Second
	defaultServerIdleTimeout  = 60 * time.Second
)

// SourceTypeHTML and SourceTypeRSS are the supported portal source types.
const (
	SourceTypeHTML = "html"
	SourceTypeRSS  = "rss"
)

// ErrNoSources is returned when validation finds no configured portal sources.
var ErrNoSources = errors.New("no portal sources configured")

// Source describes one configured portal. The URL doubles as the portal
// identifier carried on every record discovered from it.
type Source struct {
	// URL is the portal listing page (or feed URL for rss sources).
	URL string `mapstructure:"url"`
	// Type selects the ingestion path: html (default) or rss.
	Type string `mapstructure:"type"`
}

// Discovery holds the discovery pipeline configuration.
type Discovery struct {
	// Sources is the ordered list of portals to poll.
	Sources []Source `mapstructure:"sources"`
	// Keywords is the case-insensitive keyword set that earns the scoring bonus.
	Keywords []string `mapstructure:"keywords"`
	// KeywordBonus is the score added when a title matches a keyword.
	KeywordBonus float64 `mapstructure:"keyword_bonus"`
	// PerSourceLimit caps accepted rows per source.
	PerSourceLimit int `mapstructure:"per_source_limit"`
	// WindowDays is the deadline acceptance window in days from today.
	WindowDays int `mapstructure:"window_days"`
	// Workers bounds the per-source fetch concurrency.
	Workers int `mapstructure:"workers"`
	// RefreshSchedule is the cron expression for background refresh in httpd mode.
	RefreshSchedule string `mapstructure:"refresh_schedule"`
}

// Fetch holds the HTTP fetch client configuration.
type Fetch struct {
	// MaxAttempts is the total number of tries per URL.
	MaxAttempts int `mapstructure:"max_attempts"`
	// Backoff is the fixed delay between attempts.
	Backoff time.Duration `mapstructure:"backoff"`
	// Timeout bounds a single request.
	Timeout time.Duration `mapstructure:"timeout"`
	// UserAgent overrides the default browser-like user agent.
	UserAgent string `mapstructure:"user_agent"`
}

// Cache holds the snapshot store configuration.
type Cache struct {
	// Path is the snapshot file location. Empty means the XDG cache dir.
	Path string `mapstructure:"path"`
}

// Server holds the HTTP API server configuration.
type Server struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// Pricing holds the price synthesizer configuration.
type Pricing struct {
	// BasePrice is the default per-item selling price used for suggestions.
	BasePrice float64 `mapstructure:"base_price"`
}

// Config represents the application configuration.
type Config struct {
	Logger    logger.Config `mapstructure:"logger"`
	Discovery Discovery     `mapstructure:"discovery"`
	Fetch     Fetch         `mapstructure:"fetch"`
	Cache     Cache         `mapstructure:"cache"`
	Server    Server        `mapstructure:"server"`
	Pricing   Pricing       `mapstructure:"pricing"`
	// Catalog is the ordered list of offered product descriptions consumed
	// by the relevance matcher.
	Catalog []string `mapstructure:"catalog"`
}

// Load reads configuration from the given file (optional), environment
// variables, and defaults, in ascending precedence of env over file over
// defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("GOTENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// The config file is optional, so a miss on the search path is fine.
		// A file that exists but fails to parse must surface; silently
		// running on defaults would mask the broken file.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyDerivedDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if len(c.Discovery.Sources) == 0 {
		return ErrNoSources
	}

	for i, src := range c.Discovery.Sources {
		if src.URL == "" {
			return fmt.Errorf("source %d: empty url", i)
		}
		if src.Type != SourceTypeHTML && src.Type != SourceTypeRSS {
			return fmt.Errorf("source %d: unknown type %q", i, src.Type)
		}
	}

	return nil
}

// applyDerivedDefaults fills values that depend on the runtime environment
// or on other fields.
func applyDerivedDefaults(cfg *Config) {
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = filepath.Join(xdg.CacheHome, "gotender", "tenders.json")
	}

	for i := range cfg.Discovery.Sources {
		if cfg.Discovery.Sources[i].Type == "" {
			cfg.Discovery.Sources[i].Type = SourceTypeHTML
		}
	}
}

// setDefaults applies default values to the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logger", map[string]any{
		"level":       "info",
		"development": false,
		"encoding":    "console",
	})

	v.SetDefault("discovery", map[string]any{
		"sources": []map[string]any{
			{"url": "https://etenders.gov.in/eprocure/app", "type": SourceTypeHTML},
			{"url": "https://eprocure.gov.in/cppp/latestactivetendersnew/cpppdata", "type": SourceTypeHTML},
		},
		"keywords":         DefaultKeywords(),
		"keyword_bonus":    DefaultKeywordBonus,
		"per_source_limit": DefaultPerSourceLimit,
		"window_days":      DefaultWindowDays,
		"workers":          DefaultWorkers,
		"refresh_schedule": "0 */6 * * *",
	})

	v.SetDefault("fetch", map[string]any{
		"max_attempts": DefaultFetchAttempts,
		"backoff":      DefaultFetchBackoff.String(),
		"timeout":      DefaultFetchTimeout.String(),
	})

	v.SetDefault("server", map[string]any{
		"address":       defaultServerAddress,
		"read_timeout":  defaultServerReadTimeout.String(),
		"write_timeout": defaultServerWriteTimeout.String(),
		"idle_timeout":  defaultServerIdleTimeout.String(),
	})

	v.SetDefault("pricing", map[string]any{
		"base_price": 100000,
	})

	v.SetDefault("catalog", DefaultCatalog())
}

// DefaultKeywords returns the built-in keyword set relevant to the
// business's product lines.
func DefaultKeywords() []string {
	return []string{"wire", "cable", "electrical", "primer", "paint", "emulsion"}
}

// DefaultCatalog returns the built-in product catalog.
func DefaultCatalog() []string {
	return []string{
		"Interior Emulsion Paint – White, 20L, ISI certified (IS 15489), Low VOC (<50 g/L), " +
			"Min. coverage 160 sq.ft/L, scrub resistance >500 cycles",
		"Interior Emulsion Paint – Light Green, 20L, ISI certified (IS 15489), Low VOC (<50 g/L), " +
			"Min. coverage 150 sq.ft/L",
		"Waterproof Primer – 5L, Oil-based Alkyd, Flashpoint >40°C, exterior application, " +
			"minimum 5-year warranty against peeling",
		"De-Rusting Primer, Rust converter, Chromate-free, Water-based, minimum 3-year warranty, " +
			"for steel substrates",
	}
}
