package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventree-tools/crewplan/core/scheduler"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAMLWithDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
scheduler:
  mode: multi-day
inventree:
  base_url: http://inventree.localhost
  token: secret
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, scheduler.ModeMultiDay, cfg.Scheduler.Mode)
	assert.Equal(t, scheduler.PolicyOpenFallback, cfg.Scheduler.Policy)
	assert.Equal(t, 7, cfg.Scheduler.PaddingDays)
	assert.Equal(t, 8, cfg.Scheduler.Workers)
	assert.Equal(t, "http://inventree.localhost", cfg.InvenTree.BaseURL)
	assert.Equal(t, 30, cfg.InvenTree.TimeoutSeconds)
	assert.Equal(t, ":8080", cfg.API.Addr)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"scheduler": {"mode": "single-day", "policy": "strict"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, scheduler.ModeSingleDay, cfg.Scheduler.Mode)
	assert.Equal(t, scheduler.PolicyStrict, cfg.Scheduler.Policy)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", `
scheduler:
  mode: single-day
`)
	t.Setenv("CREW_SCHEDULER__MODE", "multi-day")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, scheduler.ModeMultiDay, cfg.Scheduler.Mode)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	path := writeFile(t, "config.yaml", `
scheduler:
  mode: hourly
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeFile(t, "config.toml", `x = 1`)
	_, err := Load(path)
	require.Error(t, err)
}
