// Package config loads layered configuration: a JSON file overlaid with
// environment variables for secrets, with the file entirely optional.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// AuxiliaryConfig carries the API keys the auxiliary clients need.
type AuxiliaryConfig struct {
	CoinmarketcapAPIKey string `json:"coinmarketcap_api_key"`
	CoinalyzeAPIKey     string `json:"coinalyze_api_key"`
	DeribitClientID     string `json:"deribit_client_id"`
	DeribitClientSecret string `json:"deribit_client_secret"`
}

// CacheConfig configures the optional Redis cache, an external
// collaborator the core never depends on directly.
type CacheConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
	DB      int    `json:"db"`
}

// LogConfig configures the lifecycle logger's verbosity.
type LogConfig struct {
	Level string `json:"level"`
}

// Config is the process's full configuration.
type Config struct {
	MetricsAddr string          `json:"metrics_addr"`
	ProxyURL    string          `json:"proxy_url"`
	Log         LogConfig       `json:"log"`
	Auxiliary   AuxiliaryConfig `json:"auxiliary"`
	Cache       CacheConfig     `json:"cache"`

	// Fixer holds contract-size refresh settings. RefreshIntervalSeconds is
	// parsed but not read: the fixer tables refresh on a fixed hourly
	// interval.
	Fixer struct {
		RefreshIntervalSeconds int `json:"refresh_interval_seconds"`
	} `json:"fixer"`
}

// Load reads filename if present, falling back to an empty Config when
// it doesn't exist, then overlays matching environment variables via
// godotenv (a .env file in the current working directory is loaded first
// if present).
func Load(filename string) (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		applyEnvOverlay(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	applyEnvOverlay(cfg)
	return cfg, nil
}

// applyEnvOverlay lets secrets live outside config.json; any env var that
// is set wins over the file value.
func applyEnvOverlay(cfg *Config) {
	if v := os.Getenv("CMC_API_KEY"); v != "" {
		cfg.Auxiliary.CoinmarketcapAPIKey = v
	}
	if v := os.Getenv("COINALYZE_API_KEY"); v != "" {
		cfg.Auxiliary.CoinalyzeAPIKey = v
	}
	if v := os.Getenv("DERIBIT_CLIENT_ID"); v != "" {
		cfg.Auxiliary.DeribitClientID = v
	}
	if v := os.Getenv("DERIBIT_CLIENT_SECRET"); v != "" {
		cfg.Auxiliary.DeribitClientSecret = v
	}
	if v := os.Getenv("PROXY_URL"); v != "" {
		cfg.ProxyURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
