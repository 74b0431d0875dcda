package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported database drivers. The memory driver copies the whole dataset on every
// transaction and is meant for tests and demos only.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// ModeProduction is the server mode for deployed instances
const ModeProduction = "production"

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"SERVER_PORT"`
		Mode          string `yaml:"mode" env:"SERVER_MODE"`
		MigrationsDir string `yaml:"migrations_dir" env:"SERVER_MIGRATIONS_DIR"`
		SeedCatalog   bool   `yaml:"seed_catalog" env:"SERVER_SEED_CATALOG"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		TxTimeout       string `yaml:"tx_timeout" env:"DB_TX_TIMEOUT"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Scheduler struct {
		SweepInterval string `yaml:"sweep_interval" env:"SCHEDULER_SWEEP_INTERVAL"`
		EndTimeout    string `yaml:"end_timeout" env:"SCHEDULER_END_TIMEOUT"`
	} `yaml:"scheduler"`

	Voting struct {
		MaxSelections int  `yaml:"max_selections" env:"VOTING_MAX_SELECTIONS"`
		AllowPartial  bool `yaml:"allow_partial" env:"VOTING_ALLOW_PARTIAL"`
	} `yaml:"voting"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// A missing file is fine, defaults plus env still apply
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.MigrationsDir = "migrations"
	config.Server.SeedCatalog = false

	// Database defaults
	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "campus_election"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.TxTimeout = "30s"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "campus-election"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Scheduler defaults
	config.Scheduler.SweepInterval = "1m"
	config.Scheduler.EndTimeout = "10s"

	// Voting defaults
	config.Voting.MaxSelections = 50
	config.Voting.AllowPartial = true
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch strings.ToLower(config.Database.Driver) {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case DriverMemory:
		if config.IsProduction() {
			return fmt.Errorf("the memory database driver cannot be used in production mode")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"JWT access token expiration":      config.JWT.AccessTokenExpiration,
		"database connection max lifetime": config.Database.ConnMaxLifetime,
		"database transaction timeout":     config.Database.TxTimeout,
		"scheduler sweep interval":         config.Scheduler.SweepInterval,
		"scheduler end timeout":            config.Scheduler.EndTimeout,
	}
	for name, value := range durations {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}

	if config.Voting.MaxSelections <= 0 {
		return fmt.Errorf("voting max selections must be positive")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, ModeProduction)
}

// IsMemoryStore reports whether the in-process store was selected
func (c *Config) IsMemoryStore() bool {
	return strings.EqualFold(c.Database.Driver, DriverMemory)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
