package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig
	Storage StorageConfig
	UI      UIConfig
}

// APIConfig describes the remote record source.
type APIConfig struct {
	BaseURL        string
	UserID         string
	TimeoutSeconds int
}

// StorageConfig holds local persistence settings.
type StorageConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string
	DateFormat     string
}

// Timeout returns the API timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Load reads configuration from file and env. Env var overrides use prefix MONEYBOARD_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://localhost:8077")
	v.SetDefault("api.user_id", "local")
	v.SetDefault("api.timeout_seconds", 10)
	v.SetDefault("storage.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "moneyboard", "moneyboard.db"))
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.date_format", "02/01")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("MONEYBOARD_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "moneyboard"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("MONEYBOARD")
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

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("MONEYBOARD_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "moneyboard", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.user_id", cfg.API.UserID)
	v.Set("api.timeout_seconds", cfg.API.TimeoutSeconds)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.date_format", cfg.UI.DateFormat)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
