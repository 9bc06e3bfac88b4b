package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Collector CollectorConfig `mapstructure:"collector"`
	Analyzer  AnalyzerConfig  `mapstructure:"analyzer"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type AuthConfig struct {
	// SecretKey signs access tokens; override with AUTH_SECRET_KEY.
	SecretKey          string            `mapstructure:"secret_key"`
	TokenLifetimeHours int               `mapstructure:"token_lifetime_hours"`
	Users              map[string]string `mapstructure:"users"`
}

func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeHours) * time.Hour
}

type RateLimitConfig struct {
	RequestsPerWindow int    `mapstructure:"requests_per_window"`
	Window            string `mapstructure:"window"`
}

func (c RateLimitConfig) WindowDuration() time.Duration {
	d, err := time.ParseDuration(c.Window)
	if err != nil {
		return time.Hour
	}
	return d
}

type CollectorConfig struct {
	BaseURL            string `mapstructure:"base_url"`
	APIKey             string `mapstructure:"api_key"`
	MaxResults         int    `mapstructure:"max_results"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds"`
	BreakerMaxFailures uint32 `mapstructure:"breaker_max_failures"`
	BreakerCooldown    string `mapstructure:"breaker_cooldown"`
}

func (c CollectorConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c CollectorConfig) Cooldown() time.Duration {
	d, err := time.ParseDuration(c.BreakerCooldown)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

type AnalyzerConfig struct {
	Provider    string  `mapstructure:"provider"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var globalConfig Config

func Load(configPath string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Secrets are usually env-only; bind them so Unmarshal sees them even
	// when the yaml file omits the keys entirely.
	for _, key := range []string{"auth.secret_key", "collector.api_key", "analyzer.api_key"} {
		if err := viper.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&globalConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	setDefaultValues()

	return globalConfig.validate()
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Auth.TokenLifetimeHours == 0 {
		globalConfig.Auth.TokenLifetimeHours = 24
	}
	if len(globalConfig.Auth.Users) == 0 {
		globalConfig.Auth.Users = map[string]string{
			"demo":  "demo123",
			"guest": "guest123",
		}
	}
	if globalConfig.RateLimit.RequestsPerWindow == 0 {
		globalConfig.RateLimit.RequestsPerWindow = 10
	}
	if globalConfig.RateLimit.Window == "" {
		globalConfig.RateLimit.Window = "1h"
	}
	if globalConfig.Collector.MaxResults == 0 {
		globalConfig.Collector.MaxResults = 5
	}
	if globalConfig.Collector.BreakerMaxFailures == 0 {
		globalConfig.Collector.BreakerMaxFailures = 5
	}
	if globalConfig.Analyzer.Provider == "" {
		globalConfig.Analyzer.Provider = "gemini"
	}
	if globalConfig.Analyzer.MaxTokens == 0 {
		globalConfig.Analyzer.MaxTokens = 4096
	}
	if globalConfig.Log.Level == "" {
		globalConfig.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Auth.SecretKey == "" {
		return errors.New("auth.secret_key is required (set AUTH_SECRET_KEY)")
	}
	if _, err := time.ParseDuration(c.RateLimit.Window); err != nil {
		return fmt.Errorf("invalid rate_limit.window: %w", err)
	}
	return nil
}

func GetConfig() *Config {
	return &globalConfig
}
