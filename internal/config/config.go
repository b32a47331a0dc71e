package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/coachbot/core/config"
	coredatabase "github.com/m3rciful/coachbot/core/database"
)

// AssistantConfig holds settings specific to the coaching assistant.
type AssistantConfig struct {
	// AdminPassword is the shared secret of the /admin challenge.
	AdminPassword string `yaml:"admin_password" envconfig:"ADMIN_PASSWORD"`
	// BroadcastWorkers bounds concurrent sends during a broadcast.
	BroadcastWorkers int `yaml:"broadcast_workers" envconfig:"BROADCAST_WORKERS"`
	// RemindersEnabled toggles the reminder scheduler.
	RemindersEnabled bool `yaml:"reminders_enabled" envconfig:"REMINDERS_ENABLED"`
	// Timezone is the IANA zone reminder times are interpreted in.
	Timezone string `yaml:"timezone" envconfig:"ASSISTANT_TIMEZONE"`
}

// MetricsConfig controls the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" envconfig:"METRICS_ENABLED"`
	Listen  string `yaml:"listen" envconfig:"METRICS_LISTEN"`
}

// AppConfig aggregates core settings with assistant specific sections.
type AppConfig struct {
	Core      coreconfig.Config   `yaml:",inline"`
	Database  coredatabase.Config `yaml:"database"`
	Assistant AssistantConfig     `yaml:"assistant"`
	Metrics   MetricsConfig       `yaml:"metrics"`
}

// CoreConfig exposes the embedded core configuration for the runner.
func (c *AppConfig) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and fills defaults.
func Normalize(cfg *AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.Assistant.AdminPassword) == "" {
		return fmt.Errorf("assistant.admin_password is required")
	}
	if cfg.Assistant.BroadcastWorkers < 0 {
		return fmt.Errorf("assistant.broadcast_workers must be >= 0")
	}
	if cfg.Assistant.Timezone == "" {
		cfg.Assistant.Timezone = "UTC"
	}

	if cfg.Metrics.Enabled && strings.TrimSpace(cfg.Metrics.Listen) == "" {
		cfg.Metrics.Listen = ":9090"
	}
	return nil
}
