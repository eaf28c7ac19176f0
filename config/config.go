// Package config loads wallet client configuration from file and
// environment. Env var overrides use the SMARTWALLET_ prefix.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds client configuration.
type Config struct {
	API  APIConfig
	Poll PollConfig
	UI   UIConfig
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Timeout   time.Duration
	TokenFile string `mapstructure:"token_file"`
}

// PollConfig holds job polling settings. A zero MaxWait polls until the
// job reaches a terminal status.
type PollConfig struct {
	AgentDelay   time.Duration `mapstructure:"agent_delay"`
	InsightDelay time.Duration `mapstructure:"insight_delay"`
	Interval     time.Duration
	MaxWait      time.Duration `mapstructure:"max_wait"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Currency string
	Width    int
}

// Load reads configuration from file and env.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.token_file", filepath.Join(os.Getenv("HOME"), ".config", "smart-wallet", "session.json"))
	v.SetDefault("poll.agent_delay", "10s")
	v.SetDefault("poll.insight_delay", "3s")
	v.SetDefault("poll.interval", "5s")
	v.SetDefault("poll.max_wait", "10m")
	v.SetDefault("ui.currency", "INR")
	v.SetDefault("ui.width", 0)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SMARTWALLET_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "smart-wallet"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SMARTWALLET")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
