// Package config provides configuration management for the sitemap
// service. Values load from a YAML file and environment variables via
// viper; each section carries its own validation.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/gositemap/internal/logger"
)

// Common configuration errors.
var (
	// ErrMissingBaseURL is returned when no site base URL is configured.
	ErrMissingBaseURL = errors.New("sitemap.base_url is required")
	// ErrMissingOutputDir is returned when no output directory is configured.
	ErrMissingOutputDir = errors.New("sitemap.output_dir is required")
	// ErrMissingCron is returned when scheduling is enabled without a cron expression.
	ErrMissingCron = errors.New("schedule.cron is required when schedule is enabled")
)

// Config represents the application configuration.
type Config struct {
	// App holds application-level settings.
	App AppConfig `yaml:"app" mapstructure:"app"`
	// Logger holds logger configuration.
	Logger logger.Config `yaml:"logger" mapstructure:"logger"`
	// Server holds HTTP server configuration.
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	// Database holds PostgreSQL connection configuration.
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Sitemap holds output and encoding configuration.
	Sitemap SitemapConfig `yaml:"sitemap" mapstructure:"sitemap"`
	// Sources holds entry provider configuration.
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	// Schedule holds regeneration schedule configuration.
	Schedule ScheduleConfig `yaml:"schedule" mapstructure:"schedule"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `yaml:"address" mapstructure:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`
}

// Validate checks the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Address == "" {
		return errors.New("server.address is required")
	}
	return nil
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     string `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	SSLMode  string `yaml:"sslmode" mapstructure:"sslmode"`
}

// Validate checks the database configuration.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return errors.New("database.host is required")
	}
	if c.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

// SitemapConfig holds output and encoding configuration.
type SitemapConfig struct {
	// BaseURL is the absolute site root; part locations in the sitemap
	// index and resolved routes are formed against it.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// OutputDir is where sitemap files are written.
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
	// MaxEntries is the per-file URL ceiling before rotation.
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"`
	// MaxBytes is the approximate per-file byte ceiling before rotation.
	MaxBytes int `yaml:"max_bytes" mapstructure:"max_bytes"`
	// DefaultChangeFreq is the encoder-level changefreq default.
	DefaultChangeFreq string `yaml:"default_changefreq" mapstructure:"default_changefreq"`
	// DefaultPriority is the encoder-level priority default.
	DefaultPriority string `yaml:"default_priority" mapstructure:"default_priority"`
}

// Validate checks the sitemap configuration.
func (c *SitemapConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.OutputDir == "" {
		return ErrMissingOutputDir
	}
	return nil
}

// SourcesConfig holds entry provider configuration. Any combination of
// providers may be enabled; entries stream in the order listed here.
type SourcesConfig struct {
	// File is the path of a YAML file with statically declared entries.
	File string `yaml:"file" mapstructure:"file"`
	// Postgres enables the database-backed provider.
	Postgres PostgresSourceConfig `yaml:"postgres" mapstructure:"postgres"`
	// Discover lists sites to walk for URL discovery.
	Discover []DiscoverConfig `yaml:"discover" mapstructure:"discover"`
}

// PostgresSourceConfig configures the database-backed entry provider.
type PostgresSourceConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Table   string `yaml:"table" mapstructure:"table"`
}

// DiscoverConfig configures one crawl-discovery source.
type DiscoverConfig struct {
	Name           string        `yaml:"name" mapstructure:"name"`
	URL            string        `yaml:"url" mapstructure:"url"`
	MaxDepth       int           `yaml:"max_depth" mapstructure:"max_depth"`
	RateLimit      time.Duration `yaml:"rate_limit" mapstructure:"rate_limit"`
	AllowedDomains []string      `yaml:"allowed_domains" mapstructure:"allowed_domains"`
}

// ScheduleConfig holds regeneration schedule configuration.
type ScheduleConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Cron    string `yaml:"cron" mapstructure:"cron"`
}

// Validate checks the schedule configuration.
func (c *ScheduleConfig) Validate() error {
	if c.Enabled && c.Cron == "" {
		return ErrMissingCron
	}
	return nil
}

// Validate validates the configuration. Database settings are only
// checked when the Postgres provider is enabled.
func (c *Config) Validate() error {
	if err := c.Sitemap.Validate(); err != nil {
		return fmt.Errorf("sitemap: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Schedule.Validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	if c.Sources.Postgres.Enabled {
		if err := c.Database.Validate(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	return nil
}

// Load unmarshals the configuration from the global viper instance and
// validates it. InitViper must run first.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// InitViper sets up the global viper instance: config file location,
// environment overrides and defaults. When cfgFile is empty the usual
// search paths apply; a missing config file is not an error, since every
// value has a default or an environment override.
func InitViper(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}
