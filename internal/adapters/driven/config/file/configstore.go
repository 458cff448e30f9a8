// Package file provides the TOML-backed configuration store.
//
// Configuration lives in ~/.aio/config.toml. Values absent from the
// file keep their defaults, and AIO_* environment variables override
// both (AIO_TIMEOUT_SECONDS, AIO_UNSIGNED_NOISE_SCORE, ...), so
// scripted callers can tune the engine without touching the file.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/bricsin4u/AIO-research/internal/core/domain"
)

// envPrefix namespaces the environment overrides.
const envPrefix = "aio"

// ConfigStore loads and saves the engine configuration.
type ConfigStore struct {
	filePath string
}

// NewConfigStore creates a config store. If configDir is empty,
// defaults to ~/.aio.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".aio")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}
	return &ConfigStore{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load reads the configuration: defaults, then the TOML file, then
// environment overrides. A missing file is not an error.
func (s *ConfigStore) Load() (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(s.filePath)
	switch {
	case os.IsNotExist(err):
		// First run; defaults apply.
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", s.filePath, err)
		}
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration to the TOML file.
func (s *ConfigStore) Save(cfg domain.Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", s.filePath, err)
	}
	return nil
}
