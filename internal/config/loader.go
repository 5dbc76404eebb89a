package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load resolves configuration from, in increasing precedence: built-in
// defaults, a config.yaml (cwd or /etc/cartify/), a legacy flat .env
// file, and CARTIFY_* environment variables.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/cartify/")

	v.SetEnvPrefix("CARTIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing config file is fine; envs and defaults carry it.
	}

	if err := loadDotEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.auth_token", "")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.page_size", 20)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.cleanup_interval", "10m")

	v.SetDefault("dashboard.refresh_interval", "10s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("serve.addr", "0.0.0.0:8080")
	v.SetDefault("serve.metrics.enabled", true)
	v.SetDefault("serve.metrics.namespace", "cartify")
}

func loadDotEnv(v *viper.Viper) error {
	candidates := []string{".", ".."}
	for _, path := range candidates {
		file := filepath.Clean(filepath.Join(path, ".env"))
		if _, err := os.Stat(file); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat .env: %w", err)
		}

		// Separate viper instance so env-file types don't leak into
		// the main config.
		envViper := viper.New()
		envViper.SetConfigFile(file)
		envViper.SetConfigType("env")
		if err := envViper.ReadInConfig(); err != nil {
			return fmt.Errorf("read .env: %w", err)
		}

		bindLegacyEnv(v, envViper)
	}
	return nil
}

// bindLegacyEnv maps flat .env variables to the hierarchical keys.
func bindLegacyEnv(target *viper.Viper, source *viper.Viper) {
	mappings := map[string]string{
		"API_BASE_URL":      "api.base_url",
		"API_AUTH_TOKEN":    "api.auth_token",
		"API_TIMEOUT":       "api.timeout",
		"API_PAGE_SIZE":     "api.page_size",
		"LOG_LEVEL":         "log.level",
		"LOG_FORMAT":        "log.format",
		"SERVE_ADDR":        "serve.addr",
		"DASHBOARD_REFRESH": "dashboard.refresh_interval",
		"CACHE_TTL":         "cache.ttl",
		"CACHE_ENABLED":     "cache.enabled",
	}

	for oldKey, newKey := range mappings {
		if val := source.GetString(oldKey); val != "" {
			target.Set(newKey, val)
		}
	}
}
