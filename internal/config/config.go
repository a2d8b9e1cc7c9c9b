// Package config loads the engine's ambient configuration — worker pool
// shape, default algorithm parameters, and oracle selection — from a YAML
// document loaded with gopkg.in/yaml.v2, with built-in defaults applied
// when no file is present.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// WorkerPoolConfig mirrors this document's tunables.
type WorkerPoolConfig struct {
	MinWorkers   int           `yaml:"minWorkers"`
	MaxWorkers   int           `yaml:"maxWorkers"`
	MaxQueue     int           `yaml:"maxQueue"`
	TaskTimeout  time.Duration `yaml:"taskTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
	DrainTimeout time.Duration `yaml:"drainTimeout"`
}

// ExecutorConfig mirrors this document's default parameters.
type ExecutorConfig struct {
	DefaultKerf           int  `yaml:"defaultKerf"`
	DefaultMinUsableWaste int  `yaml:"defaultMinUsableWaste"`
	DefaultAllowRotation  bool `yaml:"defaultAllowRotation"`
}

// EngineConfig is the engine's top-level ambient configuration.
type EngineConfig struct {
	WorkerPool    WorkerPoolConfig `yaml:"workerPool"`
	Executor      ExecutorConfig   `yaml:"executor"`
	OracleEnabled bool             `yaml:"oracleEnabled"`
	LogLevel      string           `yaml:"logLevel"`
}

// Default returns the built-in configuration matching the documented
// defaults, used when no config file is present.
func Default() EngineConfig {
	return EngineConfig{
		WorkerPool: WorkerPoolConfig{
			MinWorkers:   1,
			MaxWorkers:   4,
			MaxQueue:     256,
			TaskTimeout:  60 * time.Second,
			IdleTimeout:  30 * time.Second,
			DrainTimeout: 10 * time.Second,
		},
		Executor: ExecutorConfig{
			DefaultKerf:           3,
			DefaultMinUsableWaste: 50,
			DefaultAllowRotation:  true,
		},
		OracleEnabled: false,
		LogLevel:      "info",
	}
}

// Load reads an EngineConfig from a YAML file at path, overlaying it onto
// Default() so a partial file only needs to specify the fields it wants to
// override. A missing file is not an error: Default() is returned as-is.
func Load(path string) (EngineConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the file if necessary.
func Save(path string, cfg EngineConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
