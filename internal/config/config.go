package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/season-heatmap-service/internal/chart"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"gopkg.in/yaml.v3"
)

// DefaultDataURL is the published seasonal movie-count dataset.
const DefaultDataURL = "https://raw.githubusercontent.com/retrospatial/stuff/main/seasons_totals_tidy.csv"

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataURL         string
	FetchTimeout    time.Duration
	FetchRetries    int
	RefreshInterval time.Duration // 0 loads the dataset once

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	HostPageFile    string
	HostPage        string
	LayoutFile      string
	Layout          chart.Layout
	RenderCacheSize int

	// Kafka publishing of per-year top seasons.
	KafkaBrokers   []string
	KafkaTopic     string
	PublishEnabled bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	refreshInterval, err := time.ParseDuration(sharedcfg.EnvOrDefault("REFRESH_INTERVAL", "0s"))
	if err != nil || refreshInterval < 0 {
		return nil, errors.New("invalid REFRESH_INTERVAL")
	}

	fetchRetries, err := parseIntInRange("FETCH_RETRIES", 3, 0, 10)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseIntInRange("RENDER_CACHE_SIZE", 64, 1, 10000)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if s := os.Getenv("KAFKA_BROKERS"); s != "" {
		brokers = sharedcfg.ParseBrokers(s)
	}
	publishEnabled := len(brokers) > 0
	if v := os.Getenv("PUBLISH_ENABLED"); v != "" {
		publishEnabled = v == "true"
	}

	cfg := &Config{
		DataURL:         sharedcfg.EnvOrDefault("DATA_URL", DefaultDataURL),
		FetchTimeout:    fetchTimeout,
		FetchRetries:    fetchRetries,
		RefreshInterval: refreshInterval,
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		HostPageFile:    os.Getenv("HOST_PAGE_FILE"),
		LayoutFile:      os.Getenv("LAYOUT_FILE"),
		RenderCacheSize: cacheSize,
		KafkaBrokers:    brokers,
		KafkaTopic:      sharedcfg.EnvOrDefault("KAFKA_TOPIC", "season-top-seasons"),
		PublishEnabled:  publishEnabled,
	}

	if cfg.DataURL == "" {
		return nil, errors.New("DATA_URL is required")
	}
	if cfg.PublishEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("PUBLISH_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.PublishEnabled && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when publishing is enabled")
	}

	cfg.Layout, err = LoadLayout(cfg.LayoutFile)
	if err != nil {
		return nil, err
	}
	cfg.HostPage, err = LoadHostPage(cfg.HostPageFile)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadLayout reads a YAML layout file over the default layout. Fields absent
// from the file keep their defaults. An empty path returns the default layout.
func LoadLayout(path string) (chart.Layout, error) {
	layout := chart.DefaultLayout()
	if path == "" {
		return layout, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return chart.Layout{}, fmt.Errorf("read LAYOUT_FILE: %w", err)
	}
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return chart.Layout{}, fmt.Errorf("parse LAYOUT_FILE: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return chart.Layout{}, fmt.Errorf("invalid LAYOUT_FILE: %w", err)
	}
	return layout, nil
}

// LoadHostPage returns the contents of path, or the built-in page when path is empty.
func LoadHostPage(path string) (string, error) {
	if path == "" {
		return chart.DefaultPage, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read HOST_PAGE_FILE: %w", err)
	}
	return string(data), nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseIntInRange(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be an integer between %d and %d", key, lo, hi)
	}
	return n, nil
}
