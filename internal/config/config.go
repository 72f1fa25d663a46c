// Package config loads settings from defaults, an optional YAML file and
// SPA_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/cache"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SPA"

// ConfigFileEnv names the variable holding the YAML config path.
const ConfigFileEnv = "SPA_CONFIG"

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Cache   CacheConfig   `yaml:"cache" envconfig:"CACHE"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Addr            string        `yaml:"addr" split_words:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `yaml:"write_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`
	// MaxBodyBytes caps uploaded CSV size.
	MaxBodyBytes int64 `yaml:"max_body_bytes" split_words:"true"`
	// RateLimit is the allowed requests per second; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" split_words:"true"`
	RateBurst int     `yaml:"rate_burst" split_words:"true"`
}

// CacheConfig selects where the last parsed input is kept
type CacheConfig struct {
	Backend       string `yaml:"backend" split_words:"true"`
	Path          string `yaml:"path" split_words:"true"`
	Key           string `yaml:"key" split_words:"true"`
	RedisAddr     string `yaml:"redis_addr" split_words:"true"`
	RedisPassword string `yaml:"redis_password" split_words:"true"`
	RedisDB       int    `yaml:"redis_db" split_words:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true"`
	Format   string `yaml:"format" split_words:"true"`
	Output   string `yaml:"output" split_words:"true"`
	FilePath string `yaml:"file_path" split_words:"true"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    4 << 20,
		},
		Cache: CacheConfig{
			Key: cache.DefaultKey,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			Output:   "stderr",
			FilePath: "logs/studentperf.log",
		},
	}
}

// Load builds the configuration. path names a YAML file; when empty the
// SPA_CONFIG variable is consulted, and a missing variable means no file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Unset variables leave fields alone. Leaf fields use split_words: an
	// envconfig tag would also match the bare name, e.g. PATH.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile overlays the YAML file at path onto cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration for unsupported values.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server address is required"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max body bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative, got %g", c.Server.RateLimit))
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst <= 0 {
		errs = append(errs, errors.New("rate burst must be positive when rate limit is set"))
	}

	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendMemory:
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("redis cache backend needs redis_addr"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid cache backend: %s", c.Cache.Backend))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level: %s", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format: %s", c.Logging.Format))
	}
	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "stderr", "file", "both":
	default:
		errs = append(errs, fmt.Errorf("invalid log output: %s", c.Logging.Output))
	}

	return errors.Join(errs...)
}

// CacheOptions converts the cache section for cache.Open.
func (c *Config) CacheOptions() cache.Config {
	return cache.Config{
		Backend:   c.Cache.Backend,
		Path:      c.Cache.Path,
		Key:       c.Cache.Key,
		RedisAddr: c.Cache.RedisAddr,
		RedisPass: c.Cache.RedisPassword,
		RedisDB:   c.Cache.RedisDB,
	}
}
