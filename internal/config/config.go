package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string           `yaml:"env" env:"ENV" env-default:"local"`
	StoragePath string           `yaml:"storage_path" env:"STORAGE_PATH" env-default:"./data/time-tracking.db"`
	Log         LogConfig        `yaml:"log"`
	HTTPServer  HTTPServerConfig `yaml:"http_server"`
	Auth        AuthConfig       `yaml:"auth"`
	Analytics   AnalyticsConfig  `yaml:"analytics"`
	Report      ReportConfig     `yaml:"report"`
	Reconcile   ReconcileConfig  `yaml:"reconcile"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type HTTPServerConfig struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"5s"`
}

// AuthConfig describes how the caller identity reaches the service.
// Authentication itself happens upstream; the gateway forwards the
// user id in UserHeader.
type AuthConfig struct {
	UserHeader string `yaml:"user_header" env:"AUTH_USER_HEADER" env-default:"X-User-ID"`
}

type AnalyticsConfig struct {
	Timezone          string `yaml:"timezone" env:"ANALYTICS_TIMEZONE" env-default:"UTC"`
	DefaultWindowDays int    `yaml:"default_window_days" env-default:"30"`
}

type ReportConfig struct {
	DateLayout string `yaml:"date_layout" env-default:"Jan 02, 2006"`
}

// ReconcileConfig controls the background duration sweep. The sweep
// runs unless Disabled is set.
type ReconcileConfig struct {
	Disabled  bool          `yaml:"disabled" env:"RECONCILE_DISABLED"`
	Interval  time.Duration `yaml:"interval" env-default:"10m"`
	BatchSize int           `yaml:"batch_size" env-default:"500"`
}

// LoadConfig reads the YAML file at path (when present) and applies
// environment overrides. An empty path loads from the environment only.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values cleanenv cannot check on its own.
func (c *Config) Validate() error {
	if c.StoragePath == "" {
		return errors.New("storage_path cannot be empty")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if c.HTTPServer.Address == "" {
		return errors.New("http_server.address cannot be empty")
	}
	if c.Auth.UserHeader == "" {
		return errors.New("auth.user_header cannot be empty")
	}
	if _, err := time.LoadLocation(c.Analytics.Timezone); err != nil {
		return fmt.Errorf("analytics.timezone: %w", err)
	}
	if c.Analytics.DefaultWindowDays <= 0 {
		return errors.New("analytics.default_window_days must be positive")
	}
	if c.Report.DateLayout == "" {
		return errors.New("report.date_layout cannot be empty")
	}
	if !c.Reconcile.Disabled && c.Reconcile.Interval <= 0 {
		return errors.New("reconcile.interval must be positive unless reconcile is disabled")
	}
	if c.Reconcile.BatchSize <= 0 {
		return errors.New("reconcile.batch_size must be positive")
	}
	return nil
}

// Location returns the timezone used to bucket analytics dates.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Analytics.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
