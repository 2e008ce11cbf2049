package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
site:
  domain: https://example.org
  app_url: https://app.example.org
  site_name: Example
  default_language: en
  languages: ["en", "pl"]
upstream:
  content_base_url: https://api.example.org/v2
  registry_base_url: https://registry.example.org/v1
  timeout_seconds: 3
  enrich_timeout_ms: 800
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Site.Domain != "https://example.org" || cfg.Site.DefaultLanguage != "en" {
		t.Fatalf("expected site overrides to apply: %+v", cfg.Site)
	}
	if len(cfg.Site.Languages) != 2 {
		t.Fatalf("expected two languages, got %v", cfg.Site.Languages)
	}
	if cfg.Upstream.ContentBaseURL != "https://api.example.org/v2" {
		t.Fatalf("expected upstream override, got %q", cfg.Upstream.ContentBaseURL)
	}
	if got := cfg.FetchTimeout(); got != 3*time.Second {
		t.Fatalf("expected fetch timeout 3s, got %v", got)
	}
	if got := cfg.EnrichTimeout(); got != 800*time.Millisecond {
		t.Fatalf("expected enrich timeout 800ms, got %v", got)
	}
	if cfg.Logging.Development {
		t.Fatalf("expected development logging disabled")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Site.DefaultLanguage != "pl" {
		t.Fatalf("expected default language pl, got %q", cfg.Site.DefaultLanguage)
	}
	if cfg.Site.ImageWidth != 1200 || cfg.Site.ImageHeight != 630 {
		t.Fatalf("expected default card image dimensions, got %dx%d", cfg.Site.ImageWidth, cfg.Site.ImageHeight)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Server: ServerConfig{Port: 8080},
		Site: SiteConfig{
			Domain:          "https://example.org",
			AppURL:          "https://app.example.org",
			DefaultLanguage: "pl",
			Languages:       []string{"pl", "en"},
		},
		Upstream: UpstreamConfig{
			ContentBaseURL: "https://api.example.org/v1",
			TimeoutSeconds: 5,
		},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "invalid port",
			cfg: func() Config {
				c := base
				c.Server.Port = 0
				return c
			}(),
			want: "server.port",
		},
		{
			name: "missing domain",
			cfg: func() Config {
				c := base
				c.Site.Domain = ""
				return c
			}(),
			want: "site.domain",
		},
		{
			name: "missing app url",
			cfg: func() Config {
				c := base
				c.Site.AppURL = ""
				return c
			}(),
			want: "site.app_url",
		},
		{
			name: "default language not supported",
			cfg: func() Config {
				c := base
				c.Site.DefaultLanguage = "de"
				return c
			}(),
			want: "site.default_language",
		},
		{
			name: "missing content base url",
			cfg: func() Config {
				c := base
				c.Upstream.ContentBaseURL = ""
				return c
			}(),
			want: "upstream.content_base_url",
		},
		{
			name: "invalid timeout",
			cfg: func() Config {
				c := base
				c.Upstream.TimeoutSeconds = 0
				return c
			}(),
			want: "upstream.timeout_seconds",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
