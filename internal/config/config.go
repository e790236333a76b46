package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Panel struct {
		// HalfExtent is the panel's physical half side length in world
		// units; paint and hit-test both derive from it.
		HalfExtent float64 `yaml:"half_extent"`
	} `yaml:"panel"`
	Timer struct {
		// DurationSeconds is the per-question countdown.
		DurationSeconds float64 `yaml:"duration_seconds"`
		// UrgencyRatio is the remaining/max fraction that triggers the
		// urgency cue.
		UrgencyRatio float64 `yaml:"urgency_ratio"`
	} `yaml:"timer"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Questions struct {
		TTL             string `yaml:"ttl"`
		DefaultLanguage string `yaml:"default_language"`
	} `yaml:"questions"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Panel.HalfExtent <= 0 {
		c.Panel.HalfExtent = 0.8
	}
	if c.Timer.DurationSeconds <= 0 {
		c.Timer.DurationSeconds = 20
	}
	if c.Timer.UrgencyRatio <= 0 {
		c.Timer.UrgencyRatio = 0.25
	}
	if c.Questions.DefaultLanguage == "" {
		c.Questions.DefaultLanguage = "en"
	}
}

// Default returns the built-in configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
