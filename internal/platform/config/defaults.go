package config

import "time"

const defaultProviderTimeout = 8 * time.Second

// Default returns the built-in configuration. A config file and environment
// variables override these values field by field.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			IP:   "0.0.0.0",
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
			Dir:   "logs",
			File:  "server.log",
		},
		Web: WebConfig{
			Enabled:   true,
			StaticDir: "./web",
		},
		Database: DatabaseConfig{
			Path: "./data/bagtrack.db",
		},
		Provider: ProviderConfig{
			AuthPath:     "/api/v1/token",
			LocationPath: "/api/v1/location",
			Timeout:      "8s",
		},
	}
}
