package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Anthropic struct {
		APIKey    string `yaml:"api_key"`
		Model     string `yaml:"model"`
		MaxTokens int    `yaml:"max_tokens"`
		Timeout   string `yaml:"timeout"`
	} `yaml:"anthropic"`
	Provider struct {
		BaseURL    string `yaml:"base_url"`
		RatePerSec int    `yaml:"rate_per_sec"`
	} `yaml:"provider"`
	Watchlist struct {
		File string `yaml:"file"`
	} `yaml:"watchlist"`
	Chart struct {
		Dir string `yaml:"dir"`
	} `yaml:"chart"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Refresh struct {
		Cron    string `yaml:"cron"`
		Workers int    `yaml:"workers"`
	} `yaml:"refresh"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Anthropic.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_MODEL"); v != "" {
		cfg.Anthropic.Model = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("WATCHLIST_FILE"); v != "" {
		cfg.Watchlist.File = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Refresh.Cron = v
	}
	if v := os.Getenv("PROVIDER_RATE_PER_SEC"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Provider.RatePerSec = n
		}
	}

	// Defaults
	if cfg.Anthropic.Model == "" {
		cfg.Anthropic.Model = "claude-sonnet-4-20250514"
	}
	if cfg.Anthropic.MaxTokens == 0 {
		cfg.Anthropic.MaxTokens = 1024
	}
	if cfg.Anthropic.Timeout == "" {
		cfg.Anthropic.Timeout = "60s"
	}
	if cfg.Provider.RatePerSec == 0 {
		cfg.Provider.RatePerSec = 5
	}
	if cfg.Watchlist.File == "" {
		cfg.Watchlist.File = "data/watchlist.json"
	}
	if cfg.Chart.Dir == "" {
		cfg.Chart.Dir = "data/charts"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/tickerdesk.db"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Refresh.Cron == "" {
		cfg.Refresh.Cron = "0 */5 * * * *"
	}
	if cfg.Refresh.Workers == 0 {
		cfg.Refresh.Workers = 4
	}

	return cfg, nil
}

// AnthropicTimeout parses the configured completion timeout.
func (c *Config) AnthropicTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Anthropic.Timeout)
	if err != nil {
		return 0, fmt.Errorf("anthropic.timeout: %w", err)
	}
	return d, nil
}

// Validate checks that all required fields are set. A missing credential
// here is fatal at startup, before any request is served.
func (c *Config) Validate() error {
	if c.Anthropic.APIKey == "" {
		return fmt.Errorf("anthropic.api_key is required (set ANTHROPIC_API_KEY)")
	}
	if _, err := c.AnthropicTimeout(); err != nil {
		return err
	}
	if c.Provider.RatePerSec < 0 {
		return fmt.Errorf("provider.rate_per_sec must not be negative")
	}
	return nil
}
