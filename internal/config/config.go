// Package config provides configuration management for the dashboard service.
package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"go-sheet-dashboard/pkg/utils"
)

// Configuration validation errors.
var (
	ErrMissingSource            = errors.New("source.url or source.file is required")
	ErrConflictingSource        = errors.New("source.url and source.file are mutually exclusive")
	ErrInvalidSourceURL         = errors.New("source.url must be an absolute http(s) URL")
	ErrMissingColumn            = errors.New("source.columns entry must not be empty")
	ErrInvalidInterval          = errors.New("refresh.interval must be a positive duration")
	ErrInvalidMaxAttempts       = errors.New("fetch.retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay      = errors.New("fetch.retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoffMultiplier = errors.New("fetch.retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout           = errors.New("fetch.timeout_sec must be at least 1")
	ErrInvalidMaxBody           = errors.New("fetch.max_body_bytes must be at least 1")
	ErrInvalidYearWindow        = errors.New("normalize.year_window.min cannot exceed normalize.year_window.max")
	ErrInvalidTimezone          = errors.New("normalize.timezone is not a known location")
	ErrInvalidTeamTopN          = errors.New("views.team_top_n must be at least 1")
	ErrInvalidRecentDays        = errors.New("views.recent_days must be at least 1")
	ErrInvalidServiceTypeTopN   = errors.New("views.service_type_top_n must be at least 1")
	ErrInvalidHeatmapDays       = errors.New("views.heatmap_days must not be negative")
	ErrInvalidPageSize          = errors.New("views.page_size must be at least 1")
	ErrMissingAddr              = errors.New("server.addr is required")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat         = errors.New("logging.format must be 'console' or 'json'")
)

// Environment overrides applied after the file is decoded.
const (
	EnvSourceURL  = "DASHBOARD_SOURCE_URL"
	EnvSourceFile = "DASHBOARD_SOURCE_FILE"
	EnvAddr       = "DASHBOARD_ADDR"
	EnvLogLevel   = "DASHBOARD_LOG_LEVEL"
	EnvStorePath  = "DASHBOARD_STORE_PATH"
)

// DefaultRefreshInterval is the fixed refresh period of the source.
const DefaultRefreshInterval = 5 * time.Minute

// Config represents the complete dashboard configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source" toml:"source"`
	Refresh   RefreshConfig   `yaml:"refresh" toml:"refresh"`
	Fetch     FetchConfig     `yaml:"fetch" toml:"fetch"`
	Normalize NormalizeConfig `yaml:"normalize" toml:"normalize"`
	Views     ViewsConfig     `yaml:"views" toml:"views"`
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Store     StoreConfig     `yaml:"store" toml:"store"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// SourceConfig points at the CSV export of the spreadsheet.
type SourceConfig struct {
	URL     string        `yaml:"url" toml:"url"`
	File    string        `yaml:"file" toml:"file"`
	Watch   bool          `yaml:"watch" toml:"watch"`
	Columns ColumnsConfig `yaml:"columns" toml:"columns"`
}

// IsLocalFile returns true if this source uses a local file.
func (s *SourceConfig) IsLocalFile() bool {
	return s.File != ""
}

// GetSource returns the file path if local, or URL if remote.
func (s *SourceConfig) GetSource() string {
	if s.IsLocalFile() {
		return s.File
	}

	return s.URL
}

// ColumnsConfig names the header columns the normalizer reads.
type ColumnsConfig struct {
	Site    string `yaml:"site" toml:"site"`
	Team    string `yaml:"team" toml:"team"`
	Date    string `yaml:"date" toml:"date"`
	Closure string `yaml:"closure" toml:"closure"`
	// ServiceType is optional; the service-type breakdown is empty without it.
	ServiceType string `yaml:"service_type" toml:"service_type"`
}

// RefreshConfig controls the ingest loop cadence.
type RefreshConfig struct {
	Interval string `yaml:"interval" toml:"interval"`
}

// GetInterval returns the parsed refresh interval.
func (r RefreshConfig) GetInterval() time.Duration {
	return utils.ParseDuration(r.Interval, DefaultRefreshInterval)
}

// FetchConfig controls how the raw text is retrieved.
type FetchConfig struct {
	TimeoutSec   int         `yaml:"timeout_sec" toml:"timeout_sec"`
	MaxBodyBytes int64       `yaml:"max_body_bytes" toml:"max_body_bytes"`
	UserAgent    string      `yaml:"user_agent" toml:"user_agent"`
	Retry        RetryPolicy `yaml:"retry" toml:"retry"`
}

// GetTimeout returns the per-request timeout.
func (f FetchConfig) GetTimeout() time.Duration {
	return time.Duration(f.TimeoutSec) * time.Second
}

// RetryPolicy defines retry behavior.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts" toml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms" toml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms" toml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier" toml:"backoff_multiplier"`
}

// GetRetryDelay calculates the delay before the given retry attempt (1-based).
func (r RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(r.InitialDelayMs) * math.Pow(r.BackoffMultiplier, float64(attempt-1))
	if r.MaxDelayMs > 0 && delay > float64(r.MaxDelayMs) {
		delay = float64(r.MaxDelayMs)
	}

	return time.Duration(delay) * time.Millisecond
}

// YearWindow is the inclusive range of service years accepted by the normalizer.
// Years outside it are data-entry errors and the row is dropped.
type YearWindow struct {
	Min int `yaml:"min" toml:"min"`
	Max int `yaml:"max" toml:"max"`
}

// Contains reports whether year lies inside the window, bounds included.
func (w YearWindow) Contains(year int) bool {
	return year >= w.Min && year <= w.Max
}

// NormalizeConfig controls row normalization.
type NormalizeConfig struct {
	YearWindow  YearWindow        `yaml:"year_window" toml:"year_window"`
	SiteAliases map[string]string `yaml:"site_aliases" toml:"site_aliases"`
	Timezone    string            `yaml:"timezone" toml:"timezone"`
}

// Location resolves the configured timezone, falling back to the local zone.
func (n NormalizeConfig) Location() *time.Location {
	if n.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(n.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// ViewsConfig sizes the derived views.
type ViewsConfig struct {
	TeamTopN   int `yaml:"team_top_n" toml:"team_top_n"`
	RecentDays int `yaml:"recent_days" toml:"recent_days"`
	PageSize   int `yaml:"page_size" toml:"page_size"`
	ReportTopN int `yaml:"report_top_n" toml:"report_top_n"`
	// ServiceTypeTopN caps the service-type breakdown.
	ServiceTypeTopN int `yaml:"service_type_top_n" toml:"service_type_top_n"`
	// HeatmapDays keeps the most recent days of the site x day matrix. Zero keeps all.
	HeatmapDays int `yaml:"heatmap_days" toml:"heatmap_days"`
}

// ServerConfig defines the HTTP surface.
type ServerConfig struct {
	Addr               string   `yaml:"addr" toml:"addr"`
	CORSOrigins        []string `yaml:"cors_origins" toml:"cors_origins"`
	ShutdownTimeoutSec int      `yaml:"shutdown_timeout_sec" toml:"shutdown_timeout_sec"`
}

// GetShutdownTimeout returns the graceful shutdown budget.
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}

// StoreConfig defines the refresh history database.
type StoreConfig struct {
	Path         string `yaml:"path" toml:"path"`
	HistoryLimit int    `yaml:"history_limit" toml:"history_limit"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns a configuration with every optional field filled in.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Columns: ColumnsConfig{
				Site:        "POLO",
				Team:        "EQUIPE",
				Date:        "DATA DO SERVIÇO",
				Closure:     "COLABORADORA (BAIXA)",
				ServiceType: "ABRIR AM",
			},
		},
		Refresh: RefreshConfig{Interval: DefaultRefreshInterval.String()},
		Fetch: FetchConfig{
			TimeoutSec:   30,
			MaxBodyBytes: 32 << 20,
			UserAgent:    "go-sheet-dashboard/1.0",
			Retry: RetryPolicy{
				MaxAttempts:       3,
				InitialDelayMs:    1000,
				MaxDelayMs:        30000,
				BackoffMultiplier: 2.0,
			},
		},
		Normalize: NormalizeConfig{
			YearWindow: YearWindow{Min: 2020, Max: 2030},
		},
		Views: ViewsConfig{
			TeamTopN:        15,
			RecentDays:      7,
			PageSize:        20,
			ReportTopN:      3,
			ServiceTypeTopN: 10,
			HeatmapDays:     31,
		},
		Server: ServerConfig{
			Addr:               ":8080",
			CORSOrigins:        []string{"*"},
			ShutdownTimeoutSec: 10,
		},
		Store: StoreConfig{
			Path:         "dashboard.db",
			HistoryLimit: 50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from a YAML or TOML file on top of Default,
// applies environment overrides and validates the result.
// An empty path loads defaults plus environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ReadConfig decodes path over Default and applies environment overrides
// without validating, so callers can layer more overrides first.
func ReadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, fmt.Errorf("failed to parse TOML: %w", err)
			}
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse YAML: %w", err)
			}
		}
	}

	cfg.applyEnv(os.LookupEnv)

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvSourceURL); ok && v != "" {
		c.Source.URL = v
		c.Source.File = ""
	}
	if v, ok := lookup(EnvSourceFile); ok && v != "" {
		c.Source.File = v
		c.Source.URL = ""
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvStorePath); ok {
		c.Store.Path = v
	}
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}

	interval, err := time.ParseDuration(c.Refresh.Interval)
	if err != nil || interval <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidInterval, c.Refresh.Interval)
	}

	if err := c.validateFetch(); err != nil {
		return err
	}

	w := c.Normalize.YearWindow
	if w.Min > w.Max {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidYearWindow, w.Min, w.Max)
	}

	if c.Normalize.Timezone != "" {
		if _, err := time.LoadLocation(c.Normalize.Timezone); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Normalize.Timezone)
		}
	}

	if c.Views.TeamTopN < 1 {
		return ErrInvalidTeamTopN
	}
	if c.Views.RecentDays < 1 {
		return ErrInvalidRecentDays
	}
	if c.Views.PageSize < 1 {
		return ErrInvalidPageSize
	}
	if c.Views.ServiceTypeTopN < 1 {
		return ErrInvalidServiceTypeTopN
	}
	if c.Views.HeatmapDays < 0 {
		return ErrInvalidHeatmapDays
	}

	if c.Server.Addr == "" {
		return ErrMissingAddr
	}

	return c.validateLogging()
}

func (c *Config) validateSource() error {
	src := c.Source
	if src.URL == "" && src.File == "" {
		return ErrMissingSource
	}
	if src.URL != "" && src.File != "" {
		return ErrConflictingSource
	}

	if src.URL != "" {
		u, err := url.Parse(src.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidSourceURL, src.URL)
		}
	}

	cols := map[string]string{
		"site": src.Columns.Site,
		"team": src.Columns.Team,
		"date": src.Columns.Date,
	}
	for name, value := range cols {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: source.columns.%s", ErrMissingColumn, name)
		}
	}

	return nil
}

func (c *Config) validateFetch() error {
	f := c.Fetch
	if f.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}
	if f.MaxBodyBytes < 1 {
		return ErrInvalidMaxBody
	}
	if f.Retry.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}
	if f.Retry.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}
	if f.Retry.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoffMultiplier
	}

	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}
