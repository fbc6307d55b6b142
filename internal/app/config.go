package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	NetPath string // .hcl network description file or directory
	OutPath string // rendered netlist destination; empty means stdout

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.NetPath == "" {
		return nil, errors.New("NetPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
