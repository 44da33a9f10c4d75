package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "PT_"

// ConfigFileEnv names the variable pointing at a YAML config file.
const ConfigFileEnv = "PT_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML file at path, or at $PT_CONFIG when path is empty
// 3. Override with PT_* environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		if err := l.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(l.config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

func (l *Loader) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, l.config); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(path string, overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load(path)
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDriver   *string
	DBDir      *string
	DBFilename *string
	DBDSN      *string

	// Server overrides
	Addr *string

	// Progress overrides
	Strategy *string

	// Logging overrides
	LogLevel *string

	// Application overrides
	Timeout *time.Duration
	Locale  *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.DBDriver != nil {
		config.Database.Driver = *overrides.DBDriver
	}
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBDSN != nil {
		config.Database.DSN = *overrides.DBDSN
	}

	if overrides.Addr != nil {
		config.Server.Addr = *overrides.Addr
	}

	if overrides.Strategy != nil {
		config.Progress.Strategy = *overrides.Strategy
	}

	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}

	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Locale != nil {
		config.Application.Locale = *overrides.Locale
	}
}
