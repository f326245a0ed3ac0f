package config

import (
	"time"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Web      WebConfig      `yaml:"web"`
	Database DatabaseConfig `yaml:"database"`
	Provider ProviderConfig `yaml:"provider"`
}

type ServerConfig struct {
	IP    string `yaml:"ip"`
	Port  int    `yaml:"port"`
	Token string `yaml:"token"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

type WebConfig struct {
	Enabled   bool   `yaml:"enabled"`
	StaticDir string `yaml:"static_dir"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ProviderConfig describes the external GPS-tracking provider endpoints.
// Timeout bounds both the token exchange and the telemetry fetch.
type ProviderConfig struct {
	BaseURL      string `yaml:"url"`
	AuthPath     string `yaml:"auth_path"`
	LocationPath string `yaml:"location_path"`
	Timeout      string `yaml:"timeout"`
}

// RequestTimeout parses the configured provider timeout, falling back to
// the hardened default when unset or unparseable.
func (p ProviderConfig) RequestTimeout() time.Duration {
	if p.Timeout == "" {
		return defaultProviderTimeout
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil || d <= 0 {
		return defaultProviderTimeout
	}
	return d
}
