package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // dashboard definition files

	Addr      string
	LogFormat string
	LogLevel  string
	Watch     bool
}

// NewConfig validates a Config and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8050"
	}
	return &cfg, nil
}
