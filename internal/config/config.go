// Package config loads and validates crawler configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Store     StoreConfig     `mapstructure:"store"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Workers   WorkersConfig   `mapstructure:"workers"`
	Feeds     FeedsConfig     `mapstructure:"feeds"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig controls the operational HTTP endpoint.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// FetchConfig governs the resilient fetcher.
type FetchConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
	AltUserAgent   string `mapstructure:"alt_user_agent"`
	AcceptLanguage string `mapstructure:"accept_language"`
}

// StoreConfig selects and configures the article store provider.
type StoreConfig struct {
	Provider string `mapstructure:"provider"`
	DSN      string `mapstructure:"dsn"`
}

// QueueConfig selects and configures the task queue provider.
type QueueConfig struct {
	Provider string `mapstructure:"provider"`
	Capacity int    `mapstructure:"capacity"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

// SchedulerConfig controls cycle timing and the coverage quotas.
type SchedulerConfig struct {
	IntervalMinutes int `mapstructure:"interval_minutes"`
	WindowHours     int `mapstructure:"window_hours"`
	MinPerCountry   int `mapstructure:"min_per_country"`
	MinPerLang      int `mapstructure:"min_per_lang"`
}

// WorkersConfig sizes the task worker pool.
type WorkersConfig struct {
	Count int `mapstructure:"count"`
}

// FeedsConfig points at external catalog supplements.
type FeedsConfig struct {
	File  string `mapstructure:"file"`
	Extra string `mapstructure:"extra"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CRAWLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// setDefaults registers every key, including the optional string knobs.
// AutomaticEnv only surfaces CRAWLER_* values for keys viper already knows
// about, so a key without a default would be invisible to env-only setups.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("fetch.timeout_seconds", 30)
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("fetch.alt_user_agent", "")
	v.SetDefault("fetch.accept_language", "")
	v.SetDefault("store.provider", "memory")
	v.SetDefault("store.dsn", "")
	v.SetDefault("queue.provider", "memory")
	v.SetDefault("queue.capacity", 1024)
	v.SetDefault("queue.addr", "localhost:6379")
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 0)
	v.SetDefault("queue.key", "")
	v.SetDefault("scheduler.interval_minutes", 15)
	v.SetDefault("scheduler.window_hours", 24)
	v.SetDefault("scheduler.min_per_country", 20)
	v.SetDefault("scheduler.min_per_lang", 20)
	v.SetDefault("workers.count", 4)
	v.SetDefault("feeds.file", "")
	v.SetDefault("feeds.extra", "")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be > 0")
	}
	switch c.Store.Provider {
	case "memory":
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn must be set when store.provider is postgres")
		}
	default:
		return fmt.Errorf("store.provider must be memory or postgres, got %q", c.Store.Provider)
	}
	switch c.Queue.Provider {
	case "memory":
		if c.Queue.Capacity <= 0 {
			return fmt.Errorf("queue.capacity must be > 0")
		}
	case "redis":
		if c.Queue.Addr == "" {
			return fmt.Errorf("queue.addr must be set when queue.provider is redis")
		}
	default:
		return fmt.Errorf("queue.provider must be memory or redis, got %q", c.Queue.Provider)
	}
	if c.Scheduler.IntervalMinutes <= 0 {
		return fmt.Errorf("scheduler.interval_minutes must be > 0")
	}
	if c.Workers.Count <= 0 {
		return fmt.Errorf("workers.count must be > 0")
	}
	return nil
}

// FetchTimeout converts the fetch timeout config into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// SchedulerInterval converts the cycle interval config into a duration.
func (c Config) SchedulerInterval() time.Duration {
	return time.Duration(c.Scheduler.IntervalMinutes) * time.Minute
}

// CoverageWindow converts the quota window config into a duration.
func (c Config) CoverageWindow() time.Duration {
	return time.Duration(c.Scheduler.WindowHours) * time.Hour
}
