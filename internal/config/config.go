package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"server"`
	Session struct {
		DurationSeconds int `yaml:"durationSeconds"`
		WarnAtSeconds   int `yaml:"warnAtSeconds"`
	} `yaml:"session"`
	Notices struct {
		TTL    string `yaml:"ttl"`
		CueTTL string `yaml:"cueTtl"`
	} `yaml:"notices"`
}

// Default returns the built-in settings: a 60s countdown with a 10s warning
// window and a local backend.
func Default() Config {
	cfg := Config{}
	cfg.Server.URL = "http://localhost:8080"
	cfg.Session.DurationSeconds = 60
	cfg.Session.WarnAtSeconds = 10
	return cfg
}

// Load reads YAML config from path, filling unset fields with defaults. A
// missing file is not an error; the defaults apply as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Server.URL == "" {
		cfg.Server.URL = Default().Server.URL
	}
	if cfg.Session.DurationSeconds <= 0 {
		cfg.Session.DurationSeconds = Default().Session.DurationSeconds
	}
	if cfg.Session.WarnAtSeconds <= 0 {
		cfg.Session.WarnAtSeconds = Default().Session.WarnAtSeconds
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty or
// malformed.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
