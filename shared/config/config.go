package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is used when neither the config file nor API_BASE_URL set one
const DefaultBaseURL = "http://127.0.0.1:8000"

type Config struct {
	Backend    BackendConfig    `yaml:"backend"`
	Dashboard  DashboardConfig  `yaml:"dashboard"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	LogFile    string           `yaml:"log_file"`
}

type BackendConfig struct {
	BaseURL            string `yaml:"base_url" env:"API_BASE_URL"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`      // 0 = wait indefinitely
	BreakerFailures    int    `yaml:"breaker_failures"`     // 0 = no circuit breaker
	BreakerOpenSeconds int    `yaml:"breaker_open_seconds"`
	UserAgent          string `yaml:"user_agent"`
}

type DashboardConfig struct {
	DefaultLatitude  string `yaml:"default_latitude"`
	DefaultLongitude string `yaml:"default_longitude"`
	ChartHeight      int    `yaml:"chart_height"`
}

type MonitoringConfig struct {
	HealthPort    int    `yaml:"health_port"` // 0 = health server disabled
	ProbeSchedule string `yaml:"probe_schedule"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config

	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// No config file - defaults and environment only
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	if v := strings.TrimSpace(os.Getenv("API_BASE_URL")); v != "" {
		cfg.Backend.BaseURL = v
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = DefaultBaseURL
	}
	c.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(c.Backend.BaseURL), "/")
	if c.Backend.BreakerOpenSeconds == 0 {
		c.Backend.BreakerOpenSeconds = 30
	}
	if c.Backend.UserAgent == "" {
		c.Backend.UserAgent = "land-regen-dashboard/1.0"
	}

	if c.Dashboard.DefaultLatitude == "" {
		c.Dashboard.DefaultLatitude = "6.5244"
	}
	if c.Dashboard.DefaultLongitude == "" {
		c.Dashboard.DefaultLongitude = "3.3792"
	}
	if c.Dashboard.ChartHeight == 0 {
		c.Dashboard.ChartHeight = 10
	}

	if c.Monitoring.ProbeSchedule == "" {
		c.Monitoring.ProbeSchedule = "*/30 * * * * *" // Every 30 seconds
	}
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid backend base URL %q: %w", c.Backend.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend base URL must use http or https (set API_BASE_URL or backend.base_url), got %q", c.Backend.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend base URL has no host: %q", c.Backend.BaseURL)
	}
	if c.Backend.TimeoutSeconds < 0 {
		return fmt.Errorf("backend.timeout_seconds cannot be negative")
	}
	if c.Backend.BreakerFailures < 0 || c.Backend.BreakerOpenSeconds < 0 {
		return fmt.Errorf("backend breaker settings cannot be negative")
	}
	if c.Dashboard.ChartHeight < 0 {
		return fmt.Errorf("dashboard.chart_height cannot be negative")
	}
	if c.Monitoring.HealthPort < 0 || c.Monitoring.HealthPort > 65535 {
		return fmt.Errorf("monitoring.health_port out of range: %d", c.Monitoring.HealthPort)
	}
	return nil
}
