package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // hcl file or directory of hcl files
	RunName      string // optional: launch only this run (plus its deps)
	EnvFile      string // optional: .env file loaded before manifests

	DryRun          bool
	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 1 {
		return nil, errors.New("WorkerCount must be at least 1")
	}
	return &cfg, nil
}
