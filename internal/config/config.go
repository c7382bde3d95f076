package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"roomreserve/internal/schedule"
)

type Config struct {
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`

	Monitoring struct {
		HealthCheckPort   int  `yaml:"health_check_port"`
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Seed struct {
		StartHour         int     `yaml:"start_hour"`
		EndHour           int     `yaml:"end_hour"`
		SlotMinutes       int     `yaml:"slot_minutes"`
		BookedProbability float64 `yaml:"booked_probability"`
		RandomSeed        int64   `yaml:"random_seed"` // 0 means time-based
		CatalogPath       string  `yaml:"catalog_path"`
	} `yaml:"seed"`

	Reminders struct {
		Enabled       bool    `yaml:"enabled"`
		LeadMinutes   int     `yaml:"lead_minutes"`
		RatePerSecond float64 `yaml:"rate_per_second"`
		Burst         int     `yaml:"burst"`
	} `yaml:"reminders"`

	Audit struct {
		ExportPath string `yaml:"export_path"`
	} `yaml:"audit"`

	Timezone string `yaml:"timezone"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Running without a config file is fine; defaults cover everything.
			return cfg, nil
		}
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Monitoring.HealthCheckPort == 0 {
		c.Monitoring.HealthCheckPort = 8090
	}
	if c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Seed.StartHour == 0 && c.Seed.EndHour == 0 {
		c.Seed.StartHour = 8
		c.Seed.EndHour = 18
	}
	if c.Seed.SlotMinutes == 0 {
		c.Seed.SlotMinutes = 60
	}
	if c.Seed.BookedProbability == 0 {
		c.Seed.BookedProbability = 0.3
	}
	if c.Reminders.LeadMinutes <= 0 {
		c.Reminders.LeadMinutes = 30
	}
	if c.Reminders.RatePerSecond <= 0 {
		c.Reminders.RatePerSecond = 5
	}
	if c.Reminders.Burst <= 0 {
		c.Reminders.Burst = 10
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
}

// SlotPolicy returns the slot grid policy from the seed section.
func (c *Config) SlotPolicy() schedule.Policy {
	return schedule.Policy{
		StartHour:   c.Seed.StartHour,
		EndHour:     c.Seed.EndHour,
		SlotMinutes: c.Seed.SlotMinutes,
	}
}

// ReminderLead returns how long before a slot start reminders fire.
func (c *Config) ReminderLead() time.Duration {
	return time.Duration(c.Reminders.LeadMinutes) * time.Minute
}

// Location resolves the configured timezone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
