// Package config loads the engine configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type CarbonProvider struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

type Config struct {
	AWSProfile    string         `mapstructure:"aws_profile"`
	Regions       []string       `mapstructure:"regions" validate:"required"`
	CachePath     string         `mapstructure:"cache_path"`
	LookbackHours int            `mapstructure:"lookback_hours"`
	Concurrency   int            `mapstructure:"concurrency"`
	Carbon        CarbonProvider `mapstructure:"carbon"`
}

// LoadConfig reads the config file at path. A missing path is allowed:
// defaults plus CARBON_ATLAS_* environment variables then fully describe the
// engine.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("cache_path", "carbon-atlas.db")
	v.SetDefault("lookback_hours", 7*24)
	v.SetDefault("concurrency", 8)

	v.SetEnvPrefix("CARBON_ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}
	if len(cfg.Regions) == 0 {
		return nil, fmt.Errorf("at least one region must be configured")
	}
	return &cfg, nil
}
