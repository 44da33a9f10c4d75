package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Supported progress strategies
const (
	StrategyAggregate = "aggregate"
	StrategyMemory    = "memory"
)

// Config holds all configuration options for the progress tracker
type Config struct {
	Database    DatabaseConfig    `yaml:"database" envPrefix:"DB_"`
	Server      ServerConfig      `yaml:"server" envPrefix:"SERVER_"`
	Progress    ProgressConfig    `yaml:"progress" envPrefix:"PROGRESS_"`
	Validation  ValidationConfig  `yaml:"validation" envPrefix:"VALIDATION_"`
	Logging     LoggingConfig     `yaml:"logging" envPrefix:"LOG_"`
	Application ApplicationConfig `yaml:"application" envPrefix:"APP_"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver             string        `yaml:"driver" env:"DRIVER"`
	Dir                string        `yaml:"dir" env:"DIR"`
	Filename           string        `yaml:"filename" env:"FILENAME"`
	DSN                string        `yaml:"dsn" env:"DSN"`
	QueryTimeout       time.Duration `yaml:"query_timeout" env:"QUERY_TIMEOUT"`
	WriteTimeout       time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	DirPermissions     FileMode      `yaml:"dir_permissions" env:"DIR_PERMISSIONS"`
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" env:"SLOW_QUERY_THRESHOLD"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	DefaultPerPage  int           `yaml:"default_per_page" env:"DEFAULT_PER_PAGE"`
	MaxPerPage      int           `yaml:"max_per_page" env:"MAX_PER_PAGE"`
}

// ProgressConfig selects how project progress is computed
type ProgressConfig struct {
	Strategy string `yaml:"strategy" env:"STRATEGY"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	ProjectNameMinLength int `yaml:"project_name_min_length" env:"PROJECT_NAME_MIN"`
	ProjectNameMaxLength int `yaml:"project_name_max_length" env:"PROJECT_NAME_MAX"`
	TaskTitleMinLength   int `yaml:"task_title_min_length" env:"TASK_TITLE_MIN"`
	TaskTitleMaxLength   int `yaml:"task_title_max_length" env:"TASK_TITLE_MAX"`
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level       string `yaml:"level" env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	Locale  string        `yaml:"locale" env:"LOCALE"`
}

// FileMode is an os.FileMode written in octal ("0755") in files and the environment.
type FileMode os.FileMode

// UnmarshalText parses an octal permission string
func (m *FileMode) UnmarshalText(text []byte) error {
	p, err := strconv.ParseUint(string(text), 8, 32)
	if err != nil {
		return fmt.Errorf("invalid permissions %q: expected octal", string(text))
	}
	*m = FileMode(p)
	return nil
}

// UnmarshalYAML keeps YAML from reading 755 as a decimal number
func (m *FileMode) UnmarshalYAML(node *yaml.Node) error {
	return m.UnmarshalText([]byte(node.Value))
}

// MarshalText writes the mode in octal
func (m FileMode) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%04o", uint32(m))), nil
}

// Perm returns the value as an os.FileMode
func (m FileMode) Perm() os.FileMode {
	return os.FileMode(m)
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".pt")

	return &Config{
		Database: DatabaseConfig{
			Driver:             DriverSQLite,
			Dir:                defaultDBDir,
			Filename:           "pt.db",
			QueryTimeout:       10 * time.Second,
			WriteTimeout:       5 * time.Second,
			DirPermissions:     0755,
			SlowQueryThreshold: 200 * time.Millisecond,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			DefaultPerPage:  15,
			MaxPerPage:      100,
		},
		Progress: ProgressConfig{
			Strategy: StrategyAggregate,
		},
		Validation: ValidationConfig{
			ProjectNameMinLength: 1,
			ProjectNameMaxLength: 255,
			TaskTitleMinLength:   1,
			TaskTitleMaxLength:   255,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Locale:  "pt-BR",
		},
	}
}

// GetDatabasePath returns the full path to the SQLite database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Database
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return &ConfigError{Field: "database.dsn", Message: "dsn is required for the postgres driver"}
		}
	default:
		return &ConfigError{Field: "database.driver", Message: fmt.Sprintf("unsupported driver %q", c.Database.Driver)}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}
	if c.Database.SlowQueryThreshold < 0 {
		return &ConfigError{Field: "database.slow_query_threshold", Message: "slow query threshold cannot be negative"}
	}

	// Server
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.DefaultPerPage < 1 {
		return &ConfigError{Field: "server.default_per_page", Message: "default page size must be at least 1"}
	}
	if c.Server.MaxPerPage < c.Server.DefaultPerPage {
		return &ConfigError{Field: "server.max_per_page", Message: "maximum page size must not be below the default page size"}
	}

	// Progress
	if c.Progress.Strategy != StrategyAggregate && c.Progress.Strategy != StrategyMemory {
		return &ConfigError{Field: "progress.strategy", Message: fmt.Sprintf("unknown strategy %q (want aggregate or memory)", c.Progress.Strategy)}
	}

	// Validation
	if c.Validation.ProjectNameMinLength < 1 {
		return &ConfigError{Field: "validation.project_name_min_length", Message: "project name minimum length must be at least 1"}
	}
	if c.Validation.ProjectNameMaxLength < c.Validation.ProjectNameMinLength {
		return &ConfigError{Field: "validation.project_name_max_length", Message: "project name maximum length must be greater than minimum length"}
	}
	if c.Validation.TaskTitleMinLength < 1 {
		return &ConfigError{Field: "validation.task_title_min_length", Message: "task title minimum length must be at least 1"}
	}
	if c.Validation.TaskTitleMaxLength < c.Validation.TaskTitleMinLength {
		return &ConfigError{Field: "validation.task_title_max_length", Message: "task title maximum length must be greater than minimum length"}
	}

	// Application
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	if _, err := language.Parse(c.Application.Locale); err != nil {
		return &ConfigError{Field: "application.locale", Message: fmt.Sprintf("invalid locale %q", c.Application.Locale)}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
