package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Second, cfg.RequestDelay())
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, "/camps", cfg.Camps.PathPrefix)
	assert.Equal(t, "https://directory.burningman.org/camps/?page=3", cfg.Camps.IndexURL(3))
	assert.Equal(t, "https://playaevents.burningman.org/2025/playa_events/07", cfg.Events.IndexURL(7))
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
request_delay_ms: 250
camps:
  base_url: https://mirror.example.org
  page_format: https://mirror.example.org/camps/?page=%d
  start_page: 1
  end_page: 2
  path_prefix: /camps
  output: out/camps.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.RequestDelayMs)
	assert.Equal(t, "https://mirror.example.org", cfg.Camps.BaseURL)
	assert.Equal(t, 2, cfg.Camps.EndPage)
	// Untouched sections keep their defaults.
	assert.Equal(t, Default().Events, cfg.Events)
	assert.Equal(t, Default().Retry, cfg.Retry)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("request_timeout_sec: 0\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "request_timeout_sec")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "negative delay",
			mutate:  func(c *Config) { c.RequestDelayMs = -1 },
			wantErr: "request_delay_ms",
		},
		{
			name:    "zero retry attempts",
			mutate:  func(c *Config) { c.Retry.MaxAttempts = 0 },
			wantErr: "max_attempts",
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.Art.BaseURL = "" },
			wantErr: "base_url",
		},
		{
			name:    "page format without verb",
			mutate:  func(c *Config) { c.Camps.PageFormat = "https://x.example/camps" },
			wantErr: "page_format",
		},
		{
			name:    "inverted page range",
			mutate:  func(c *Config) { c.Events.StartPage, c.Events.EndPage = 5, 2 },
			wantErr: "page range",
		},
		{
			name:    "relative path prefix",
			mutate:  func(c *Config) { c.Camps.PathPrefix = "camps" },
			wantErr: "path_prefix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}
