package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected defaults when config file is missing, got error: %v", err)
	}

	if cfg.Backend.BaseURL != DefaultBaseURL {
		t.Errorf("Expected base URL %s, got %s", DefaultBaseURL, cfg.Backend.BaseURL)
	}
	if cfg.Dashboard.DefaultLatitude != "6.5244" || cfg.Dashboard.DefaultLongitude != "3.3792" {
		t.Errorf("Unexpected default coordinates: %s, %s", cfg.Dashboard.DefaultLatitude, cfg.Dashboard.DefaultLongitude)
	}
	if cfg.Backend.TimeoutSeconds != 0 {
		t.Errorf("Expected no request timeout by default, got %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Backend.BreakerFailures != 0 {
		t.Errorf("Expected circuit breaker disabled by default, got %d", cfg.Backend.BreakerFailures)
	}
	if cfg.Monitoring.HealthPort != 0 {
		t.Errorf("Expected health server disabled by default, got port %d", cfg.Monitoring.HealthPort)
	}
	if cfg.Monitoring.ProbeSchedule == "" {
		t.Error("Expected a default probe schedule")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: "https://api.landregen.example/"
  timeout_seconds: 15
  breaker_failures: 3
dashboard:
  default_latitude: "9.0765"
  default_longitude: "7.3986"
  chart_height: 12
monitoring:
  health_port: 8081
log_file: "dashboard.log"
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_BASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Backend.BaseURL != "https://api.landregen.example" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.TimeoutSeconds != 15 {
		t.Errorf("Expected timeout 15, got %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Backend.BreakerFailures != 3 || cfg.Backend.BreakerOpenSeconds != 30 {
		t.Errorf("Unexpected breaker settings: %+v", cfg.Backend)
	}
	if cfg.Dashboard.DefaultLatitude != "9.0765" {
		t.Errorf("Expected latitude 9.0765, got %s", cfg.Dashboard.DefaultLatitude)
	}
	if cfg.Dashboard.ChartHeight != 12 {
		t.Errorf("Expected chart height 12, got %d", cfg.Dashboard.ChartHeight)
	}
	if cfg.Monitoring.HealthPort != 8081 {
		t.Errorf("Expected health port 8081, got %d", cfg.Monitoring.HealthPort)
	}
	if cfg.LogFile != "dashboard.log" {
		t.Errorf("Expected log file dashboard.log, got %s", cfg.LogFile)
	}
}

func TestEnvironmentOverridesBaseURL(t *testing.T) {
	path := writeConfig(t, "backend:\n  base_url: \"http://10.0.0.5:8000\"\n")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_BASE_URL", "https://land-regen.onrender.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Backend.BaseURL != "https://land-regen.onrender.com" {
		t.Errorf("Expected API_BASE_URL to win, got %s", cfg.Backend.BaseURL)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		envURL    string
		errSubstr string
	}{
		{
			name:      "Malformed YAML",
			content:   "backend: [unclosed",
			errSubstr: "failed to parse config file",
		},
		{
			name:      "Unsupported scheme",
			content:   "",
			envURL:    "ftp://127.0.0.1:8000",
			errSubstr: "http or https",
		},
		{
			name:      "Missing host",
			content:   "backend:\n  base_url: \"http://\"\n",
			errSubstr: "no host",
		},
		{
			name:      "Negative timeout",
			content:   "backend:\n  timeout_seconds: -1\n",
			errSubstr: "timeout_seconds",
		},
		{
			name:      "Health port out of range",
			content:   "monitoring:\n  health_port: 70000\n",
			errSubstr: "health_port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", writeConfig(t, tt.content))
			t.Setenv("API_BASE_URL", tt.envURL)

			_, err := Load()
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("Expected error containing %q, got %v", tt.errSubstr, err)
			}
		})
	}
}
