package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := createTempConfigFile(t, "dashboard.yaml", `
source:
  url: https://docs.google.com/spreadsheets/d/abc/export?format=csv
refresh:
  interval: 2m
normalize:
  year_window:
    min: 2021
    max: 2026
  site_aliases:
    PBS: PARAUAPEBAS
  timezone: UTC
views:
  team_top_n: 10
server:
  addr: ":9090"
logging:
  level: debug
  format: json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc/export?format=csv", cfg.Source.URL)
	assert.False(t, cfg.Source.IsLocalFile())
	assert.Equal(t, 2*time.Minute, cfg.Refresh.GetInterval())
	assert.Equal(t, YearWindow{Min: 2021, Max: 2026}, cfg.Normalize.YearWindow)
	assert.Equal(t, "PARAUAPEBAS", cfg.Normalize.SiteAliases["PBS"])
	assert.Equal(t, "UTC", cfg.Normalize.Location().String())
	assert.Equal(t, 10, cfg.Views.TeamTopN)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Logging.Format)

	// untouched sections keep their defaults
	assert.Equal(t, "POLO", cfg.Source.Columns.Site)
	assert.Equal(t, 7, cfg.Views.RecentDays)
	assert.Equal(t, 3, cfg.Fetch.Retry.MaxAttempts)
}

func TestLoadConfigTOML(t *testing.T) {
	path := createTempConfigFile(t, "dashboard.toml", `
[source]
file = "data/sheet.csv"
watch = true

[source.columns]
site = "Polo"

[fetch.retry]
max_attempts = 5
initial_delay_ms = 200
backoff_multiplier = 1.5

[store]
path = "runs.db"
history_limit = 10
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Source.IsLocalFile())
	assert.True(t, cfg.Source.Watch)
	assert.Equal(t, "data/sheet.csv", cfg.Source.GetSource())
	assert.Equal(t, "Polo", cfg.Source.Columns.Site)
	assert.Equal(t, "EQUIPE", cfg.Source.Columns.Team)
	assert.Equal(t, 5, cfg.Fetch.Retry.MaxAttempts)
	assert.Equal(t, 1.5, cfg.Fetch.Retry.BackoffMultiplier)
	assert.Equal(t, "runs.db", cfg.Store.Path)
	assert.Equal(t, 10, cfg.Store.HistoryLimit)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := createTempConfigFile(t, "bad.yaml", "source: [unclosed")
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse YAML")

	path = createTempConfigFile(t, "bad.toml", "[source\nurl=")
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse TOML")
}

func TestEnvOverrides(t *testing.T) {
	path := createTempConfigFile(t, "dashboard.yaml", "source:\n  file: local.csv\n")

	t.Setenv(EnvSourceURL, "https://example.com/export.csv")
	t.Setenv(EnvAddr, "127.0.0.1:7000")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvStorePath, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/export.csv", cfg.Source.URL)
	assert.Empty(t, cfg.Source.File, "URL override replaces the file source")
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Empty(t, cfg.Store.Path)
}

func TestReadConfigDoesNotValidate(t *testing.T) {
	cfg, err := ReadConfig("")
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingSource)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Source.URL = "https://example.com/sheet.csv"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"no source", func(c *Config) { c.Source.URL = "" }, ErrMissingSource},
		{"both sources", func(c *Config) { c.Source.File = "x.csv" }, ErrConflictingSource},
		{"relative url", func(c *Config) { c.Source.URL = "sheet.csv" }, ErrInvalidSourceURL},
		{"ftp url", func(c *Config) { c.Source.URL = "ftp://example.com/a.csv" }, ErrInvalidSourceURL},
		{"empty site column", func(c *Config) { c.Source.Columns.Site = " " }, ErrMissingColumn},
		{"empty closure column is fine", func(c *Config) { c.Source.Columns.Closure = "" }, nil},
		{"empty service type column is fine", func(c *Config) { c.Source.Columns.ServiceType = "" }, nil},
		{"bad interval", func(c *Config) { c.Refresh.Interval = "soon" }, ErrInvalidInterval},
		{"zero interval", func(c *Config) { c.Refresh.Interval = "0s" }, ErrInvalidInterval},
		{"zero timeout", func(c *Config) { c.Fetch.TimeoutSec = 0 }, ErrInvalidTimeout},
		{"zero body", func(c *Config) { c.Fetch.MaxBodyBytes = 0 }, ErrInvalidMaxBody},
		{"zero attempts", func(c *Config) { c.Fetch.Retry.MaxAttempts = 0 }, ErrInvalidMaxAttempts},
		{"negative delay", func(c *Config) { c.Fetch.Retry.InitialDelayMs = -1 }, ErrInvalidInitialDelay},
		{"shrinking backoff", func(c *Config) { c.Fetch.Retry.BackoffMultiplier = 0.5 }, ErrInvalidBackoffMultiplier},
		{"inverted window", func(c *Config) { c.Normalize.YearWindow = YearWindow{Min: 2030, Max: 2020} }, ErrInvalidYearWindow},
		{"unknown zone", func(c *Config) { c.Normalize.Timezone = "Mars/Olympus" }, ErrInvalidTimezone},
		{"team top n", func(c *Config) { c.Views.TeamTopN = 0 }, ErrInvalidTeamTopN},
		{"recent days", func(c *Config) { c.Views.RecentDays = 0 }, ErrInvalidRecentDays},
		{"page size", func(c *Config) { c.Views.PageSize = 0 }, ErrInvalidPageSize},
		{"service type top n", func(c *Config) { c.Views.ServiceTypeTopN = 0 }, ErrInvalidServiceTypeTopN},
		{"heatmap days", func(c *Config) { c.Views.HeatmapDays = -1 }, ErrInvalidHeatmapDays},
		{"no addr", func(c *Config) { c.Server.Addr = "" }, ErrMissingAddr},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, ErrInvalidLogLevel},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestGetRetryDelay(t *testing.T) {
	p := RetryPolicy{InitialDelayMs: 1000, MaxDelayMs: 5000, BackoffMultiplier: 2}

	assert.Equal(t, time.Duration(0), p.GetRetryDelay(0))
	assert.Equal(t, time.Second, p.GetRetryDelay(1))
	assert.Equal(t, 2*time.Second, p.GetRetryDelay(2))
	assert.Equal(t, 4*time.Second, p.GetRetryDelay(3))
	assert.Equal(t, 5*time.Second, p.GetRetryDelay(4), "capped at max delay")
}

func TestYearWindowContains(t *testing.T) {
	w := Default().Normalize.YearWindow
	assert.True(t, w.Contains(2020))
	assert.True(t, w.Contains(2030))
	assert.False(t, w.Contains(2019))
	assert.False(t, w.Contains(2031))
}

func TestSaveConfigRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Source.File = "sheet.csv"
	cfg.Normalize.Timezone = "UTC"
	cfg.Normalize.SiteAliases = map[string]string{"PBS": "PARAUAPEBAS"}

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
