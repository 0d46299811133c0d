package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.MetricsAddr)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"metrics_addr":":9100","log":{"level":"debug"}}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyEnvOverlay_EnvWinsOverFile(t *testing.T) {
	t.Setenv("CMC_API_KEY", "env-key")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := &Config{Auxiliary: AuxiliaryConfig{CoinmarketcapAPIKey: "file-key"}, Log: LogConfig{Level: "info"}}
	applyEnvOverlay(cfg)

	assert.Equal(t, "env-key", cfg.Auxiliary.CoinmarketcapAPIKey)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestApplyEnvOverlay_UnsetEnvLeavesFileValue(t *testing.T) {
	cfg := &Config{Auxiliary: AuxiliaryConfig{CoinmarketcapAPIKey: "file-key"}}
	applyEnvOverlay(cfg)
	assert.Equal(t, "file-key", cfg.Auxiliary.CoinmarketcapAPIKey)
}
