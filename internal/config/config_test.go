package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "databeast.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[encounter]
max_enemies = 4
spawn_interval = "2s"

[player]
character = "rust-eagle"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Encounter.MaxEnemies)
	assert.Equal(t, 2*time.Second, cfg.Encounter.SpawnInterval)
	assert.Equal(t, "rust-eagle", cfg.Player.Character)

	// untouched keys keep their defaults
	assert.Equal(t, 10, cfg.Encounter.BossThreshold)
	assert.Equal(t, 250.0, cfg.AI.AggroRange)
	assert.Equal(t, 7*24*time.Hour, cfg.Creature.CacheTTL)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadToml(t *testing.T) {
	_, err := Load(writeConfig(t, "[encounter\nmax_enemies = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadClampsStartStage(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[encounter]\nstart_stage = 42\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Encounter.StartStage)
}

func TestLoadRejectsWorldTooSmallForSafeRadius(t *testing.T) {
	_, err := Load(writeConfig(t, "[encounter]\nworld_width = 300.0\nworld_height = 300.0\nsafe_spawn_radius = 300.0\n"))
	require.ErrorIs(t, err, ErrWorldTooSmall)
	assert.Contains(t, err.Error(), "300x300")
}

func TestLoadAcceptsWorldJustLargeEnough(t *testing.T) {
	// margin box 600x800, half diagonal 500
	cfg, err := Load(writeConfig(t, "[encounter]\nworld_width = 728.0\nworld_height = 928.0\nsafe_spawn_radius = 500.0\n"))
	require.NoError(t, err)
	assert.Equal(t, 500.0, cfg.Encounter.SafeSpawnRadius)
}
