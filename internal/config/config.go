package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/prevt/costing-backend/internal/calc"
	"github.com/prevt/costing-backend/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. QUOTECALC_ROUNDING_DISPLAY_SCALE
const EnvPrefix = "QUOTECALC"

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Log      LogConfig
	Rounding RoundingConfig
	Data     DataConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// RoundingConfig holds the scales of the rounding policy
type RoundingConfig struct {
	DisplayScale  int32
	MarkupScale   int32
	RateScale     int32
	DivisionScale int32
}

// DataConfig holds the location of the quote data
type DataConfig struct {
	QuotesFile string
}

// Load loads configuration from a TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with QUOTECALC_ prefix
// 2. The file at path, or quotecalc.toml in the working directory when path is empty
// 3. Built-in defaults
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("quotecalc")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			// Defaults and env vars only
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Zero is a valid scale, so scale defaults cannot be applied after the fact
	v.SetDefault("rounding.display_scale", calc.DisplayScale)
	v.SetDefault("rounding.markup_scale", calc.MarkupScale)
	v.SetDefault("rounding.rate_scale", calc.RateScale)
	v.SetDefault("rounding.division_scale", calc.DivisionScale)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Rounding: RoundingConfig{
			DisplayScale:  v.GetInt32("rounding.display_scale"),
			MarkupScale:   v.GetInt32("rounding.markup_scale"),
			RateScale:     v.GetInt32("rounding.rate_scale"),
			DivisionScale: v.GetInt32("rounding.division_scale"),
		},
		Data: DataConfig{
			QuotesFile: v.GetString("data.quotes_file"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Policy returns the rounding policy described by the configuration
func (c *Config) Policy() (calc.Policy, error) {
	return calc.NewPolicy(
		c.Rounding.DisplayScale,
		c.Rounding.MarkupScale,
		c.Rounding.RateScale,
		c.Rounding.DivisionScale,
	)
}

// Logger returns the logger configuration for this config
func (c *Config) Logger() *logger.Config {
	cfg := logger.DefaultConfig()
	if c.App.Env == "production" {
		cfg = logger.ProductionConfig()
	}
	if c.Log.Level != "" {
		cfg.Level = c.Log.Level
	}
	if c.Log.Format != "" {
		cfg.Format = c.Log.Format
	}
	if c.Log.Output != "" {
		cfg.Output = c.Log.Output
	}
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "quotecalc"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Data.QuotesFile == "" {
		cfg.Data.QuotesFile = "quotes.json"
	}
}

func (c *Config) validate() error {
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("rounding: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}

	return nil
}
