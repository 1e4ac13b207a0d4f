// Package config loads runtime settings from a .env file, an optional YAML
// file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/liamcoop/logicgraph/internal/logger"
)

// FileEnv names the variable holding the YAML config path
const FileEnv = "LOGICGRAPH_CONFIG"

const (
	DefaultPort      = "8080"
	DefaultSolverURL = "http://localhost:5000"
	DefaultCacheTTL  = 10 * time.Minute
)

// Config holds process settings. An empty DatabaseURL selects the in-memory
// relation store; an empty RedisAddr selects the in-memory result cache.
type Config struct {
	DatabaseURL string        `yaml:"database_url"`
	Port        string        `yaml:"port"`
	LogLevel    string        `yaml:"log_level"`
	SolverURL   string        `yaml:"solver_url"`
	RedisAddr   string        `yaml:"redis_addr"`
	CacheTTL    time.Duration `yaml:"-"`
	Lemmatize   bool          `yaml:"lemmatize"`
}

// fileConfig mirrors Config with the TTL as text ("90s", "10m")
type fileConfig struct {
	Config   `yaml:",inline"`
	CacheTTL string `yaml:"cache_ttl"`
}

func Default() *Config {
	return &Config{
		Port:      DefaultPort,
		LogLevel:  "INFO",
		SolverURL: DefaultSolverURL,
		CacheTTL:  DefaultCacheTTL,
	}
}

// Load reads .env from the working directory when present, then the YAML
// file named by LOGICGRAPH_CONFIG, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded .env file")
	}

	cfg := Default()
	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	fc := fileConfig{Config: *c}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	ttl := c.CacheTTL
	if fc.CacheTTL != "" {
		if ttl, err = time.ParseDuration(fc.CacheTTL); err != nil {
			return fmt.Errorf("invalid cache_ttl in %s: %w", path, err)
		}
	}

	*c = fc.Config
	c.CacheTTL = ttl
	return nil
}

func (c *Config) mergeEnv() error {
	for env, field := range map[string]*string{
		"DATABASE_URL": &c.DatabaseURL,
		"PORT":         &c.Port,
		"LOG_LEVEL":    &c.LogLevel,
		"SOLVER_URL":   &c.SolverURL,
		"REDIS_ADDR":   &c.RedisAddr,
	} {
		if v, ok := os.LookupEnv(env); ok {
			*field = strings.TrimSpace(v)
		}
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL: %w", err)
		}
		c.CacheTTL = ttl
	}
	if v := os.Getenv("LEMMATIZE"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LEMMATIZE: %w", err)
		}
		c.Lemmatize = on
	}
	return nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.SolverURL == "" {
		errs = append(errs, errors.New("solver URL is required"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("cache TTL must not be negative, got %s", c.CacheTTL))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}
