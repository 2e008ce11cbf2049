// Package config loads and validates prerender service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Site     SiteConfig     `mapstructure:"site"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// SiteConfig describes the public site the service renders for.
type SiteConfig struct {
	Domain          string   `mapstructure:"domain"`
	AppURL          string   `mapstructure:"app_url"`
	SiteName        string   `mapstructure:"site_name"`
	DefaultLanguage string   `mapstructure:"default_language"`
	Languages       []string `mapstructure:"languages"`
	ImageURL        string   `mapstructure:"image_url"`
	ImageWidth      int      `mapstructure:"image_width"`
	ImageHeight     int      `mapstructure:"image_height"`
}

// UpstreamConfig points at the content API and the legislator registry.
type UpstreamConfig struct {
	ContentBaseURL  string `mapstructure:"content_base_url"`
	RegistryBaseURL string `mapstructure:"registry_base_url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	EnrichTimeoutMs int    `mapstructure:"enrich_timeout_ms"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PRERENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("site.domain", "https://civiclens.pl")
	v.SetDefault("site.app_url", "https://app.civiclens.pl")
	v.SetDefault("site.site_name", "CivicLens")
	v.SetDefault("site.default_language", "pl")
	v.SetDefault("site.languages", []string{"pl", "en"})
	v.SetDefault("site.image_url", "https://civiclens.pl/static/card.png")
	v.SetDefault("site.image_width", 1200)
	v.SetDefault("site.image_height", 630)
	v.SetDefault("upstream.content_base_url", "https://api.civiclens.pl/v1")
	v.SetDefault("upstream.registry_base_url", "https://registry.sejm-api.pl/v1")
	v.SetDefault("upstream.timeout_seconds", 5)
	v.SetDefault("upstream.enrich_timeout_ms", 1500)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Site.Domain == "" {
		return fmt.Errorf("site.domain must be set")
	}
	if c.Site.AppURL == "" {
		return fmt.Errorf("site.app_url must be set")
	}
	if len(c.Site.Languages) == 0 {
		return fmt.Errorf("site.languages must not be empty")
	}
	defaultSupported := false
	for _, lang := range c.Site.Languages {
		if lang == c.Site.DefaultLanguage {
			defaultSupported = true
			break
		}
	}
	if !defaultSupported {
		return fmt.Errorf("site.default_language %q must appear in site.languages", c.Site.DefaultLanguage)
	}
	if c.Upstream.ContentBaseURL == "" {
		return fmt.Errorf("upstream.content_base_url must be set")
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("upstream.timeout_seconds must be > 0")
	}
	return nil
}

// FetchTimeout converts the upstream timeout config into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// EnrichTimeout bounds optional enrichment fetches (related items, history).
func (c Config) EnrichTimeout() time.Duration {
	return time.Duration(c.Upstream.EnrichTimeoutMs) * time.Millisecond
}
