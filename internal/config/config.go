package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultBaseURL     = "https://www.coingecko.com"
	defaultUserAgent   = "Mozilla/5.0 (compatible; cryptoprice)"
	defaultTimeout     = 20 * time.Second
	defaultConcurrency = 4
	defaultLogLevel    = "info"
)

// Config holds all configuration for the cryptoprice application.
type Config struct {
	// Upstream page source (configurable for testing)
	BaseURL   string        `mapstructure:"coingecko_base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`

	// Number of extractions a batch lookup runs at once
	Concurrency int `mapstructure:"concurrency"`

	LogLevel string `mapstructure:"log_level"`
	Debug    bool   `mapstructure:"debug"`

	// Address of the optional /metrics listener, empty disables it
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"base-url":     "coingecko_base_url",
	"user-agent":   "user_agent",
	"timeout":      "timeout",
	"concurrency":  "concurrency",
	"log-level":    "log_level",
	"debug":        "debug",
	"metrics-addr": "metrics_addr",
}

// Load reads configuration from flags, environment variables and an
// optional config file. Flags take precedence over environment variables,
// which take precedence over the config file.
//
// Recognized environment variables:
//   - COINGECKO_BASE_URL (optional, defaults to production)
//   - CRYPTOPRICE_USER_AGENT
//   - CRYPTOPRICE_TIMEOUT (e.g. "20s")
//   - CRYPTOPRICE_CONCURRENCY
//   - CRYPTOPRICE_LOG_LEVEL
//   - CRYPTOPRICE_METRICS_ADDR
//
// flags may be nil. configFile, if not empty, replaces the default search
// for cryptoprice.yaml in the current directory and $HOME/.cryptoprice.
func Load(flags *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("coingecko_base_url", defaultBaseURL)
	v.SetDefault("user_agent", defaultUserAgent)
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("concurrency", defaultConcurrency)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("debug", false)
	v.SetDefault("metrics_addr", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	} else {
		v.SetConfigName("cryptoprice")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.cryptoprice")

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrap(err, "failed to read config file")
			}
		}
	}

	v.BindEnv("coingecko_base_url", "COINGECKO_BASE_URL")
	v.BindEnv("user_agent", "CRYPTOPRICE_USER_AGENT")
	v.BindEnv("timeout", "CRYPTOPRICE_TIMEOUT")
	v.BindEnv("concurrency", "CRYPTOPRICE_CONCURRENCY")
	v.BindEnv("log_level", "CRYPTOPRICE_LOG_LEVEL")
	v.BindEnv("metrics_addr", "CRYPTOPRICE_METRICS_ADDR")

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, errors.Wrapf(err, "failed to bind flag --%s", name)
				}
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	var problems []string

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, "coingecko_base_url must be an absolute URL")
	}
	if c.Timeout <= 0 {
		problems = append(problems, "timeout must be positive")
	}
	if c.Concurrency < 1 {
		problems = append(problems, "concurrency must be at least 1")
	}

	if len(problems) > 0 {
		return errors.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

// EffectiveLogLevel returns the log level, forced to debug when Debug is set
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}
