package config

import (
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	envCookie    = "HOTWATCH_COOKIE"
	envUserAgent = "HOTWATCH_USER_AGENT"
)

type Source struct {
	URL       string `yaml:"url"`
	Origin    string `yaml:"origin"`
	UserAgent string `yaml:"user_agent"`
	Cookie    string `yaml:"cookie,omitempty"`
}

type WatchConfig struct {
	Schedule string `yaml:"schedule"`
	Timezone string `yaml:"timezone"`
}

type HistoryConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Retention string `yaml:"retention"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type Config struct {
	Source         Source        `yaml:"source"`
	CacheTTL       string        `yaml:"cache_ttl"`
	RequestTimeout string        `yaml:"request_timeout"`
	Top            int           `yaml:"top,omitempty"`
	Watch          WatchConfig   `yaml:"watch"`
	History        HistoryConfig `yaml:"history"`
	Log            LogConfig     `yaml:"log"`
}

func (c *Config) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

func (c *Config) RequestTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// TopN returns how many entries the board shows, defaulting to 10.
func (c *Config) TopN() int {
	if c.Top <= 0 {
		return 10
	}
	return c.Top
}

func (c *Config) RetentionDuration() time.Duration {
	d, err := ParseDays(c.History.Retention)
	if err != nil || d <= 0 {
		return 7 * 24 * time.Hour
	}
	return d
}

// Headers returns the request headers sent to the source.
func (c *Config) Headers() map[string]string {
	h := map[string]string{"User-Agent": c.Source.UserAgent}
	if c.Source.Cookie != "" {
		h["Cookie"] = c.Source.Cookie
	}
	return h
}

// CacheKey identifies the effective fetch parameters.
func (c *Config) CacheKey() string {
	h := sha256.New()
	h.Write([]byte(c.Source.URL))
	headers := c.Headers()
	names := make([]string, 0, len(headers))
	for k := range headers {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(h, "\n%s: %s", k, headers[k])
	}
	return fmt.Sprintf("%x", h.Sum(nil)[:16])
}

// ParseDays parses a Go duration, also accepting a whole number of days ("7d").
func ParseDays(s string) (time.Duration, error) {
	if len(s) > 1 && s[len(s)-1] == 'd' {
		var days int
		if _, err := fmt.Sscanf(s, "%dd", &days); err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "hotwatch", "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.DataHome, "hotwatch", "history.db")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "hotwatch", "hotwatch.log")
}

// LoadEnv reads KEY=value pairs from the given dotenv files into the process
// environment. Missing files are ignored; existing variables are not overwritten.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path over the embedded defaults. Keys missing from
// the file keep their default values. An absent file is created from defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Non-fatal: fall back to embedded defaults
		_ = writeDefaults(path)
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnvironmentOverrides(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvironmentOverrides(cfg *Config) {
	if v := os.Getenv(envCookie); v != "" {
		cfg.Source.Cookie = v
	}
	if v := os.Getenv(envUserAgent); v != "" {
		cfg.Source.UserAgent = v
	}
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if err := validateHTTPURL("source.url", cfg.Source.URL); err != nil {
		return err
	}
	if err := validateHTTPURL("source.origin", cfg.Source.Origin); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.Source.UserAgent) == "" {
		return fmt.Errorf("source.user_agent is required (the site rejects empty agents)")
	}
	if cfg.CacheTTL != "" {
		if _, err := time.ParseDuration(cfg.CacheTTL); err != nil {
			return fmt.Errorf("cache_ttl: %w", err)
		}
	}
	if cfg.RequestTimeout != "" {
		if _, err := time.ParseDuration(cfg.RequestTimeout); err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q (valid: debug, info, warn, error)", cfg.Log.Level)
	}
	return nil
}

func validateHTTPURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid url: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: url scheme must be http or https, got %q", field, u.Scheme)
	}
	return nil
}
