// Package config loads server settings from an optional YAML file, a
// .env file and the process environment, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/lu-ally/AllyTimeTracking/holiday"
)

type Config struct {
	Env          string            `yaml:"env" env:"APP_ENV" env-default:"development"`
	DefaultState string            `yaml:"default_state" env:"DEFAULT_STATE" env-default:"HH"`
	Timezone     string            `yaml:"timezone" env:"TIMEZONE" env-default:"Europe/Berlin"`
	HTTP         HTTPConfig        `yaml:"http"`
	Database     DatabaseConfig    `yaml:"database"`
	Log          LogConfig         `yaml:"log"`
	Seed         SeedConfig        `yaml:"seed"`
	Provisioner  ProvisionerConfig `yaml:"provisioner"`
	Report       ReportConfig      `yaml:"report"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"./data/timetracking.db"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SeedConfig describes the admin account created on an empty database.
// An empty password is generated and logged once.
type SeedConfig struct {
	Enabled       bool   `yaml:"enabled" env:"SEED_ENABLED" env-default:"true"`
	AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL" env-default:"admin@allytimetracking.local"`
	AdminName     string `yaml:"admin_name" env:"SEED_ADMIN_NAME" env-default:"Administrator"`
	AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
}

type ProvisionerConfig struct {
	Enabled  bool          `yaml:"enabled" env:"PROVISION_ENABLED" env-default:"true"`
	Interval time.Duration `yaml:"interval" env:"PROVISION_INTERVAL" env-default:"1h"`
}

type ReportConfig struct {
	Workers int `yaml:"workers" env:"REPORT_WORKERS" env-default:"4"`
}

// Load reads the configuration. path may be empty, in which case only the
// environment is consulted. A missing .env file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTP.Port)
	}
	if c.Database.Path == "" {
		return errors.New("DB_PATH is required")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format)
	}
	if c.Report.Workers < 1 {
		return fmt.Errorf("REPORT_WORKERS must be at least 1, got %d", c.Report.Workers)
	}
	if c.Provisioner.Interval <= 0 {
		return fmt.Errorf("PROVISION_INTERVAL must be positive, got %s", c.Provisioner.Interval)
	}
	if !holiday.State(c.DefaultState).Valid() {
		return fmt.Errorf("DEFAULT_STATE %q is not a German state code", c.DefaultState)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location is the time zone in which "today" and account creation days
// are read.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// State is the holiday calendar for users created without one.
func (c *Config) State() holiday.State {
	return holiday.ParseState(c.DefaultState)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}
