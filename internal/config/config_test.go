package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/season-heatmap-service/internal/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBrokers = "broker1:9092,broker2:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDataURL, cfg.DataURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 3, cfg.FetchRetries)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 64, cfg.RenderCacheSize)
	assert.Equal(t, chart.DefaultLayout(), cfg.Layout)
	assert.Equal(t, chart.DefaultPage, cfg.HostPage)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "season-top-seasons", cfg.KafkaTopic)
	assert.False(t, cfg.PublishEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DATA_URL", "http://data.local/seasons.csv")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("FETCH_RETRIES", "0")
	t.Setenv("REFRESH_INTERVAL", "15m")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("RENDER_CACHE_SIZE", "8")
	t.Setenv("KAFKA_BROKERS", testBrokers)
	t.Setenv("KAFKA_TOPIC", "custom-topic")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://data.local/seasons.csv", cfg.DataURL)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 0, cfg.FetchRetries)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 8, cfg.RenderCacheSize)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-topic", cfg.KafkaTopic)
	assert.True(t, cfg.PublishEnabled)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"FETCH_TIMEOUT", "0s"},
		{"FETCH_TIMEOUT", "soon"},
		{"REFRESH_INTERVAL", "-1m"},
		{"FETCH_RETRIES", "11"},
		{"FETCH_RETRIES", "many"},
		{"RENDER_CACHE_SIZE", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_PublishEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("PUBLISH_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_PublishExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", testBrokers)
	t.Setenv("PUBLISH_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.PublishEnabled)
}

func TestLoad_HostPageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	page := `<html><body><div id="my_dataviz"></div><div id="legend"></div></body></html>`
	require.NoError(t, os.WriteFile(path, []byte(page), 0o600))
	t.Setenv("HOST_PAGE_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, page, cfg.HostPage)
}

func TestLoad_MissingHostPageFile(t *testing.T) {
	t.Setenv("HOST_PAGE_FILE", filepath.Join(t.TempDir(), "missing.html"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOST_PAGE_FILE")
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
title: Movies released per season
subtitle: Summer dominates most years.
width: 900
margin:
  top: 100
  left: 60
  right: 25
  bottom: 30
`), 0o600))

	layout, err := LoadLayout(path)
	require.NoError(t, err)

	assert.Equal(t, "Movies released per season", layout.Title)
	assert.Equal(t, "Summer dominates most years.", layout.Subtitle)
	assert.InDelta(t, 900.0, layout.Width, 0)
	assert.InDelta(t, 100.0, layout.Margin.Top, 0)
	assert.InDelta(t, 750.0, layout.Height, 0, "unset fields keep defaults")
	assert.InDelta(t, 0.05, layout.Padding, 0)
}

func TestLoadLayout_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("width: [1, 2"), 0o600))
	_, err := LoadLayout(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse LAYOUT_FILE")

	tiny := filepath.Join(dir, "tiny.yaml")
	require.NoError(t, os.WriteFile(tiny, []byte("width: 10\n"), 0o600))
	_, err = LoadLayout(tiny)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid LAYOUT_FILE")
}
