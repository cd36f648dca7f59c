// Package config defines venex's process configuration. Config is loaded
// from a YAML file with VENEX_*-prefixed environment variable overrides,
// following the pack's viper usage pattern (0xtitan6-polymarket-mm's
// internal/config/config.go).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is venex's top-level configuration.
type Config struct {
	Listen       string        `mapstructure:"listen"`
	DefaultDepth int           `mapstructure:"default_depth"`
	Symbols      []string      `mapstructure:"symbols"`
	Logging      LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig controls zerolog's global level and output format.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Default returns the configuration venex boots with when no file is
// supplied, suitable for local/demo use.
func Default() *Config {
	return &Config{
		Listen:       ":8080",
		DefaultDepth: 10,
		Symbols:      []string{"BTC-USDT", "ETH-USDT"},
		Logging:      LoggingConfig{Level: "info", Pretty: true},
	}
}

// Load reads config from a YAML file at path, layering VENEX_*-prefixed
// environment variables over it. An empty path loads defaults only, with
// env overrides still applied.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VENEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()
	v.SetDefault("listen", cfg.Listen)
	v.SetDefault("default_depth", cfg.DefaultDepth)
	v.SetDefault("symbols", cfg.Symbols)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.pretty", cfg.Logging.Pretty)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var loaded Config
	if err := v.Unmarshal(&loaded); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &loaded, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.DefaultDepth <= 0 {
		return fmt.Errorf("default_depth must be > 0")
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("at least one symbol must be configured")
	}
	return nil
}
