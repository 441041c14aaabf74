package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultOutputPath     = "stats.json"
	DefaultFormat         = "table"
	DefaultPerPage        = 100
	DefaultMaxWorkers     = 10
	DefaultRequestTimeout = 30 * time.Second
	DefaultDeadline       = 5 * time.Minute
)

type Config struct {
	Token          string        `toml:"token"`
	Username       string        `toml:"username"`
	APIURL         string        `toml:"api_url"`
	OutputPath     string        `toml:"output"`
	Format         string        `toml:"format"`
	PerPage        int           `toml:"per_page"`
	MaxWorkers     int           `toml:"workers"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	Deadline       time.Duration `toml:"deadline"`
	UseCache       bool          `toml:"use_cache"`
	MaxAge         time.Duration `toml:"max_age"`
	SkipForks      bool          `toml:"skip_forks"`
	Strict         bool          `toml:"strict"`
	Verbose        bool          `toml:"verbose"`
	Highlight      string        `toml:"highlight"`
}

func Default() *Config {
	return &Config{
		OutputPath:     DefaultOutputPath,
		Format:         DefaultFormat,
		PerPage:        DefaultPerPage,
		MaxWorkers:     DefaultMaxWorkers,
		RequestTimeout: DefaultRequestTimeout,
		Deadline:       DefaultDeadline,
	}
}

// Load builds the configuration from defaults, the optional TOML file at
// path and the environment. A .env file in the working directory is read
// into the environment first. Command line values are applied by the caller
// before Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = os.Getenv("GITHUB_API_URL")
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	c.Username = strings.TrimSpace(c.Username)
	c.Highlight = strings.TrimSpace(c.Highlight)

	if c.Format != "table" && c.Format != "json" {
		return fmt.Errorf("invalid format: %s (must be 'table' or 'json')", c.Format)
	}

	if c.MaxWorkers < 1 || c.MaxWorkers > 50 {
		return fmt.Errorf("workers must be between 1 and 50")
	}

	if c.PerPage < 1 || c.PerPage > 100 {
		return fmt.Errorf("per-page must be between 1 and 100")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}

	if c.Deadline < 0 || c.MaxAge < 0 {
		return fmt.Errorf("deadline and max age must not be negative")
	}

	if c.OutputPath == "" {
		return fmt.Errorf("output path must not be empty")
	}

	return nil
}
