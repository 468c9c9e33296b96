package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// APIKeyEnv is the environment variable holding the provider API key.
const APIKeyEnv = "WEATHER_API_KEY"

// ErrAPIKeyMissing is returned when no provider API key is configured.
var ErrAPIKeyMissing = errors.New("API key missing: set " + APIKeyEnv + " in the environment or a .env file")

// Config carries every tunable of the app. It is loaded once at startup and
// passed into constructors; nothing reads viper after Load returns.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ProviderConfig configures the outbound weather provider client.
type ProviderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Units   string        `mapstructure:"units"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig configures the optional Redis result cache. Disabled by
// default: each lookup is an independent provider call unless a deployment
// opts in.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Addr    string        `mapstructure:"addr"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// ServerConfig configures the HTTP serve mode.
type ServerConfig struct {
	Port         int             `mapstructure:"port"`
	ReadTimeout  time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout time.Duration   `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration   `mapstructure:"idle_timeout"`
	RateLimit    RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig configures the serve-mode rate limiter. Rates are
// requests per second.
type RateLimitConfig struct {
	GlobalRate      float64       `mapstructure:"global_rate"`
	GlobalBurst     int           `mapstructure:"global_burst"`
	PerCityRate     float64       `mapstructure:"per_city_rate"`
	PerCityBurst    int           `mapstructure:"per_city_burst"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5/weather",
			Units:   "metric",
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			TTL:     10 * time.Minute,
		},
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
			RateLimit: RateLimitConfig{
				GlobalRate:      10.0 / 60.0,
				GlobalBurst:     10,
				PerCityRate:     2.0 / 60.0,
				PerCityBurst:    2,
				CleanupInterval: 3 * time.Minute,
			},
		},
		Logging: LoggingConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Load reads configuration from the given YAML file (or ./config.yaml when
// path is empty), layered over Default and under WEATHER_* environment
// variables. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WEATHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("provider.base_url", cfg.Provider.BaseURL)
	v.SetDefault("provider.units", cfg.Provider.Units)
	v.SetDefault("provider.timeout", cfg.Provider.Timeout)
	v.SetDefault("cache.enabled", cfg.Cache.Enabled)
	v.SetDefault("cache.addr", cfg.Cache.Addr)
	v.SetDefault("cache.ttl", cfg.Cache.TTL)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", cfg.Server.IdleTimeout)
	v.SetDefault("server.rate_limit.global_rate", cfg.Server.RateLimit.GlobalRate)
	v.SetDefault("server.rate_limit.global_burst", cfg.Server.RateLimit.GlobalBurst)
	v.SetDefault("server.rate_limit.per_city_rate", cfg.Server.RateLimit.PerCityRate)
	v.SetDefault("server.rate_limit.per_city_burst", cfg.Server.RateLimit.PerCityBurst)
	v.SetDefault("server.rate_limit.cleanup_interval", cfg.Server.RateLimit.CleanupInterval)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.development", cfg.Logging.Development)
}

// APIKey returns the provider API key, loading a .env file first if one is
// present. The key is the single secret of the application and is never
// written back to the config file.
func APIKey() (string, error) {
	_ = godotenv.Load()
	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return "", ErrAPIKeyMissing
	}
	return key, nil
}
