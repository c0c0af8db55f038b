package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loadDefaults: %v", err)
	}
	if cfg.Source.URL == "" {
		t.Error("expected a default source url")
	}
	if cfg.Source.UserAgent == "" {
		t.Error("expected a default user agent")
	}
	if err := validate(cfg); err != nil {
		t.Errorf("embedded defaults do not validate: %v", err)
	}
}

func TestCacheTTLDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"30s", 30 * time.Second},
		{"5m", 5 * time.Minute},
		{"", 60 * time.Second},
		{"invalid", 60 * time.Second},
		{"-1s", 60 * time.Second},
	}
	for _, tt := range tests {
		cfg := &Config{CacheTTL: tt.input}
		if got := cfg.CacheTTLDuration(); got != tt.want {
			t.Errorf("CacheTTLDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRequestTimeoutDuration(t *testing.T) {
	cfg := &Config{RequestTimeout: "3s"}
	if d := cfg.RequestTimeoutDuration(); d != 3*time.Second {
		t.Errorf("expected 3s, got %v", d)
	}
	cfg.RequestTimeout = "0s"
	if d := cfg.RequestTimeoutDuration(); d != 10*time.Second {
		t.Errorf("expected 10s default for zero timeout, got %v", d)
	}
}

func TestTopN(t *testing.T) {
	if got := (&Config{}).TopN(); got != 10 {
		t.Errorf("expected default 10, got %d", got)
	}
	if got := (&Config{Top: 50}).TopN(); got != 50 {
		t.Errorf("expected 50, got %d", got)
	}
}

func TestRetentionDuration(t *testing.T) {
	tests := []struct {
		input    string
		wantDays int
	}{
		{"90d", 90},
		{"30d", 30},
		{"720h", 30},
		{"", 7},
		{"invalid", 7},
	}
	for _, tt := range tests {
		cfg := &Config{History: HistoryConfig{Retention: tt.input}}
		got := cfg.RetentionDuration()
		wantHours := float64(tt.wantDays * 24)
		if got.Hours() != wantHours {
			t.Errorf("RetentionDuration(%q) = %v, want %dd", tt.input, got, tt.wantDays)
		}
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		err   bool
	}{
		{"7d", 7 * 24 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"24h", 24 * time.Hour, false},
		{"2h30m", 2*time.Hour + 30*time.Minute, false},
		{"invalid", 0, true},
		{"", 0, true},
		{"d", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDays(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("ParseDays(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDays(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDays(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHeaders(t *testing.T) {
	cfg := &Config{Source: Source{UserAgent: "ua"}}
	h := cfg.Headers()
	if h["User-Agent"] != "ua" {
		t.Errorf("expected User-Agent ua, got %q", h["User-Agent"])
	}
	if _, ok := h["Cookie"]; ok {
		t.Error("expected no Cookie header when cookie is empty")
	}

	cfg.Source.Cookie = "SUB=x"
	if got := cfg.Headers()["Cookie"]; got != "SUB=x" {
		t.Errorf("expected cookie header, got %q", got)
	}
}

func TestCacheKey(t *testing.T) {
	a := &Config{Source: Source{URL: "https://a", UserAgent: "ua"}}
	b := &Config{Source: Source{URL: "https://a", UserAgent: "ua"}}
	if a.CacheKey() != b.CacheKey() {
		t.Error("same parameters should produce the same key")
	}
	if len(a.CacheKey()) != 32 {
		t.Errorf("expected 32-char hex key, got %q", a.CacheKey())
	}
	b.Source.Cookie = "SUB=x"
	if a.CacheKey() == b.CacheKey() {
		t.Error("different headers should produce different keys")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := `cache_ttl: 2m
top: 20
source:
  url: https://example.com/top
  origin: https://example.com
  user_agent: test-agent
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.CacheTTLDuration() != 2*time.Minute {
		t.Errorf("expected 2m, got %v", cfg.CacheTTLDuration())
	}
	if cfg.TopN() != 20 {
		t.Errorf("expected top 20, got %d", cfg.TopN())
	}
	if cfg.Source.Origin != "https://example.com" {
		t.Errorf("unexpected origin %q", cfg.Source.Origin)
	}
	// Keys absent from the file keep their defaults
	if cfg.Watch.Schedule != "@every 1m" {
		t.Errorf("expected default schedule, got %q", cfg.Watch.Schedule)
	}
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.URL == "" {
		t.Error("expected defaults")
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Errorf("expected defaults written to %s: %v", cfgPath, err)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv(envCookie, "SUB=env")
	t.Setenv(envUserAgent, "env-agent")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.Cookie != "SUB=env" {
		t.Errorf("expected cookie from env, got %q", cfg.Source.Cookie)
	}
	if cfg.Source.UserAgent != "env-agent" {
		t.Errorf("expected user agent from env, got %q", cfg.Source.UserAgent)
	}
}

func TestLoadEnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envPath, []byte("HOTWATCH_COOKIE=SUB=dotenv\n"), 0o644); err != nil {
		t.Fatalf("writing env: %v", err)
	}
	t.Setenv(envCookie, "")
	os.Unsetenv(envCookie)

	if err := LoadEnv(envPath, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv(envCookie); got != "SUB=dotenv" {
		t.Errorf("expected cookie from .env, got %q", got)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Source: Source{
			URL:       "https://s.weibo.com/top/summary",
			Origin:    "https://s.weibo.com",
			UserAgent: "ua",
		}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing url", func(c *Config) { c.Source.URL = "" }, "source.url is required"},
		{"bad scheme", func(c *Config) { c.Source.URL = "ftp://x" }, "scheme"},
		{"missing origin", func(c *Config) { c.Source.Origin = "" }, "source.origin"},
		{"empty agent", func(c *Config) { c.Source.UserAgent = " " }, "user_agent"},
		{"bad ttl", func(c *Config) { c.CacheTTL = "soon" }, "cache_ttl"},
		{"bad timeout", func(c *Config) { c.RequestTimeout = "x" }, "request_timeout"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		cfg := valid()
		tt.mutate(cfg)
		err := validate(cfg)
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%s: unexpected error: %v", tt.name, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.wantErr, err)
		}
	}
}
