// Package config loads server and composition defaults from a pi-loom
// config file and PILOOM_* environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds runtime defaults. CLI flags and API request fields
// override these per run.
type Config struct {
	Port       int     `mapstructure:"port"`
	Scale      string  `mapstructure:"scale"`
	Key        string  `mapstructure:"key"`
	BaseOctave int     `mapstructure:"base_octave"`
	Tempo      float64 `mapstructure:"tempo"`
	UseCache   bool    `mapstructure:"use_cache"`
}

// Load reads configuration from pi-loom.yaml (working directory or
// ~/.config/pi-loom) and the PILOOM_* environment. Missing files are
// fine; defaults cover everything.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("scale", "major")
	v.SetDefault("key", "C")
	v.SetDefault("base_octave", 4)
	v.SetDefault("tempo", 120.0)
	v.SetDefault("use_cache", true)

	v.SetConfigName("pi-loom")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/pi-loom")

	v.SetEnvPrefix("PILOOM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
