// Package config loads application configuration from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable keys.
const (
	EnvConfigPath        = "CONFIG_PATH"
	EnvAlphaVantageKey   = "ALPHAVANTAGE_API_KEY"
	EnvTwelveDataKey     = "TWELVE_DATA_API_KEY"
	EnvMarketProvider    = "MARKET_PROVIDER"
	EnvMarketBaseURL     = "MARKET_BASE_URL"
	EnvMarketPrimaryTier = "MARKET_PRIMARY_TIER"
	EnvMarketFallback    = "MARKET_FALLBACK"
	EnvSymbolAlphabet    = "SYMBOL_ALPHABET"
	EnvRedisHost         = "REDIS_HOST"
	EnvRedisPort         = "REDIS_PORT"
	EnvRedisPassword     = "REDIS_PASSWORD"
	EnvDBDriver          = "DB_DRIVER"
	EnvDBDSN             = "DB_DSN"
	EnvSQLitePath        = "SQLITE_PATH"
	EnvJWTSecret         = "JWT_SECRET"
	EnvServerAddr        = "SERVER_ADDR"
	EnvLogLevel          = "LOG_LEVEL"
	EnvLogFormat         = "LOG_FORMAT"
)

// Provider names.
const (
	ProviderAlphaVantage = "alphavantage"
	ProviderTwelveData   = "twelvedata"
)

// DefaultPath is used when CONFIG_PATH is not set.
const DefaultPath = "config.yaml"

// ErrMissingAPIKey is returned by Validate when no provider API key is configured.
var ErrMissingAPIKey = errors.New("Please enter a valid API key.")

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Market struct {
		Provider          string        `yaml:"provider"`
		APIKey            string        `yaml:"api_key"`
		BaseURL           string        `yaml:"base_url"`
		Timeout           time.Duration `yaml:"timeout"`
		RequestsPerMinute int           `yaml:"requests_per_minute"`
		PrimaryTier       string        `yaml:"primary_tier"`
		Fallback          *bool         `yaml:"fallback"`
	} `yaml:"market"`
	Comparison struct {
		Parallel *bool `yaml:"parallel"`
	} `yaml:"comparison"`
	Symbols struct {
		Alphabet string `yaml:"alphabet"`
	} `yaml:"symbols"`
	Redis struct {
		Host     string        `yaml:"host"`
		Port     string        `yaml:"port"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"redis"`
	Database struct {
		Driver     string `yaml:"driver"`
		DSN        string `yaml:"dsn"`
		SQLitePath string `yaml:"sqlite_path"`
		Migrate    *bool  `yaml:"migrate"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret string        `yaml:"jwt_secret"`
		TokenTTL  time.Duration `yaml:"token_ttl"`
	} `yaml:"auth"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// PathFromEnv returns the config file path from CONFIG_PATH, or DefaultPath.
func PathFromEnv() string {
	if v := os.Getenv(EnvConfigPath); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable overrides and defaults.
// A missing file is not an error.
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

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvMarketProvider); v != "" {
		c.Market.Provider = v
	}
	c.Market.Provider = strings.ToLower(strings.TrimSpace(c.Market.Provider))
	if c.Market.Provider == "" {
		c.Market.Provider = ProviderAlphaVantage
	}

	// The key variable is chosen by the active provider
	keyEnv := EnvAlphaVantageKey
	if c.Market.Provider == ProviderTwelveData {
		keyEnv = EnvTwelveDataKey
	}
	if v := os.Getenv(keyEnv); v != "" {
		c.Market.APIKey = v
	}
	if v := os.Getenv(EnvMarketBaseURL); v != "" {
		c.Market.BaseURL = v
	}
	if v := os.Getenv(EnvMarketPrimaryTier); v != "" {
		c.Market.PrimaryTier = v
	}
	if v := os.Getenv(EnvMarketFallback); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvMarketFallback, err)
		}
		c.Market.Fallback = &b
	}
	if v := os.Getenv(EnvSymbolAlphabet); v != "" {
		c.Symbols.Alphabet = v
	}
	if v := os.Getenv(EnvRedisHost); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv(EnvRedisPort); v != "" {
		c.Redis.Port = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv(EnvDBDriver); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv(EnvDBDSN); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(EnvSQLitePath); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Market.Timeout <= 0 {
		c.Market.Timeout = 15 * time.Second
	}
	if c.Market.RequestsPerMinute == 0 {
		switch c.Market.Provider {
		case ProviderTwelveData:
			c.Market.RequestsPerMinute = 8
		default:
			c.Market.RequestsPerMinute = 5
		}
	}
	if c.Market.PrimaryTier == "" {
		c.Market.PrimaryTier = "adjusted"
	}
	if c.Market.Fallback == nil {
		c.Market.Fallback = boolPtr(true)
	}
	if c.Comparison.Parallel == nil {
		c.Comparison.Parallel = boolPtr(true)
	}
	if c.Symbols.Alphabet == "" {
		c.Symbols.Alphabet = "strict"
	}
	if c.Database.Migrate == nil {
		c.Database.Migrate = boolPtr(true)
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.Market.Provider {
	case ProviderAlphaVantage, ProviderTwelveData:
	default:
		return fmt.Errorf("market.provider %q is not supported", c.Market.Provider)
	}
	if strings.TrimSpace(c.Market.APIKey) == "" {
		return fmt.Errorf("market.api_key is required: %w", ErrMissingAPIKey)
	}
	if c.Market.RequestsPerMinute < 0 {
		return fmt.Errorf("market.requests_per_minute must not be negative")
	}
	switch strings.ToLower(c.Market.PrimaryTier) {
	case "adjusted", "basic":
	default:
		return fmt.Errorf("market.primary_tier %q must be adjusted or basic", c.Market.PrimaryTier)
	}
	switch strings.ToLower(c.Symbols.Alphabet) {
	case "strict", "extended":
	default:
		return fmt.Errorf("symbols.alphabet %q must be strict or extended", c.Symbols.Alphabet)
	}
	switch strings.ToLower(c.Database.Driver) {
	case "", "none", "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// FallbackEnabled reports whether the basic tier may replace a denied adjusted request.
func (c *Config) FallbackEnabled() bool {
	return c.Market.Fallback == nil || *c.Market.Fallback
}

// ParallelEnabled reports whether symbols of one comparison are fetched concurrently.
func (c *Config) ParallelEnabled() bool {
	return c.Comparison.Parallel == nil || *c.Comparison.Parallel
}

// DiagnosticsEnabled reports whether comparison outcomes are written to a database.
func (c *Config) DiagnosticsEnabled() bool {
	d := strings.ToLower(c.Database.Driver)
	return d != "" && d != "none"
}

// MigrateEnabled reports whether the diagnostics schema is migrated at startup.
func (c *Config) MigrateEnabled() bool {
	return c.Database.Migrate == nil || *c.Database.Migrate
}

func boolPtr(b bool) *bool { return &b }
