package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the whole process configuration, loaded once in main and
// passed down explicitly.
type Config struct {
	HTTPAddr    string        `mapstructure:"http_addr"`
	DatabaseURL string        `mapstructure:"database_url"`
	RedisAddr   string        `mapstructure:"redis_addr"`
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`

	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst     int     `mapstructure:"rate_limit_burst"`

	LoginMaxStrikes int           `mapstructure:"login_max_strikes"`
	LoginBanWindow  time.Duration `mapstructure:"login_ban_window"`
}

// Load reads config.yaml (if present, from the working directory) and the
// environment with a GUDANG_ prefix; env always wins.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("token_ttl", 15*time.Minute)
	v.SetDefault("rate_limit_per_second", 5.0)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("login_max_strikes", 5)
	v.SetDefault("login_ban_window", 15*time.Minute)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("GUDANG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper already knows about, so every key
	// must be bound for GUDANG_* env values to land in the struct.
	for _, key := range []string{
		"http_addr", "database_url", "redis_addr", "jwt_secret", "token_ttl",
		"rate_limit_per_second", "rate_limit_burst",
		"login_max_strikes", "login_ban_window",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database_url is required (set GUDANG_DATABASE_URL)")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt_secret is required (set GUDANG_JWT_SECRET)")
	}
	return cfg, nil
}
