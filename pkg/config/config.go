package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	API      APIConfig
	JWT      JWTConfig
	Cache    CacheConfig
	Database DatabaseConfig
	Display  DisplayConfig
	Cron     CronConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port          string
	PublicBaseURL string
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type JWTConfig struct {
	Secret string
}

// CacheConfig disables caching when URL is empty.
type CacheConfig struct {
	URL string
	TTL time.Duration
}

// DatabaseConfig disables view/search tracking when URL is empty.
type DatabaseConfig struct {
	URL string
}

type DisplayConfig struct {
	Currency     string
	HeroInterval time.Duration
}

type CronConfig struct {
	FeaturedRefresh string
}

type LogConfig struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:3000")
	v.SetDefault("PROPERTY_API_URL", "http://localhost:8080/api")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("CURRENCY", "AED")
	v.SetDefault("HERO_INTERVAL", "5s")
	v.SetDefault("FEATURED_REFRESH_CRON", "@every 10m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper builds the config from v after applying defaults and env binding.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Port:          v.GetString("PORT"),
			PublicBaseURL: strings.TrimRight(v.GetString("PUBLIC_BASE_URL"), "/"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("PROPERTY_API_URL"), "/"),
			Timeout: v.GetDuration("API_TIMEOUT"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
		},
		Cache: CacheConfig{
			URL: v.GetString("REDIS_URL"),
			TTL: v.GetDuration("CACHE_TTL"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("DATABASE_URL"),
		},
		Display: DisplayConfig{
			Currency:     strings.ToUpper(v.GetString("CURRENCY")),
			HeroInterval: v.GetDuration("HERO_INTERVAL"),
		},
		Cron: CronConfig{
			FeaturedRefresh: v.GetString("FEATURED_REFRESH_CRON"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("PROPERTY_API_URL is required")
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}
	if cfg.Display.HeroInterval <= 0 {
		return fmt.Errorf("HERO_INTERVAL must be positive")
	}
	if cfg.Cache.URL != "" && cfg.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when REDIS_URL is set")
	}
	return nil
}
