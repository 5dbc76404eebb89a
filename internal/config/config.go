package config

import (
	"log/slog"
	"time"
)

// Config aggregates the whole application configuration.
type Config struct {
	API       APIConfig       `mapstructure:"api"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Log       LogConfig       `mapstructure:"log"`
	Serve     ServeConfig     `mapstructure:"serve"`
}

// APIConfig locates the remote orders service.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	AuthToken string        `mapstructure:"auth_token"`
	Timeout   time.Duration `mapstructure:"timeout"`
	PageSize  int           `mapstructure:"page_size"`
}

// CacheConfig tunes the get-by-id read cache.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// DashboardConfig tunes the terminal dashboard.
type DashboardConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// LogConfig defines logging behavior.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// ServeConfig configures the local stub orders API.
type ServeConfig struct {
	Addr    string        `mapstructure:"addr"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// MetricsConfig defines prometheus metrics exposure for the stub.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
