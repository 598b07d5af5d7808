package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaskij/helsing/tile"
)

func TestLoadAppliesDefaultsWithNoFileOrOverrides(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, "print-vampires", cfg.Mode)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, uint8(1), cfg.MinFangPairs)
	assert.Equal(t, "auto", cfg.TileSize)
	assert.False(t, cfg.Checksum)
	assert.Equal(t, 64, cfg.ElementBits)
	assert.Equal(t, tile.AutoTileSize, cfg.TileSizePolicy())
	assert.False(t, cfg.UseNarrow())
}

func TestLoadCLIOverridesBeatDefaults(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	cfg, err := Load("", map[string]any{
		"threads":      8,
		"mode":         "count-pairs",
		"format":       "json",
		"tile_size":    "single",
		"element_bits": 32,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Threads)
	assert.Equal(t, "count-pairs", cfg.Mode)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, tile.SingleTile, cfg.TileSizePolicy())
	assert.True(t, cfg.UseNarrow())
	assert.Equal(t, uint64(9_999_999_999), cfg.CapacityLimit())
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threads: 16\nmode: dump-pairs\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Threads)
	assert.Equal(t, "dump-pairs", cfg.Mode)
	// Fields the file left unset still fall back to defaults.
	assert.Equal(t, "text", cfg.Format)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	_, err = Load("", map[string]any{"mode": "not-a-mode"})
	require.Error(t, err)
}

func TestLoadRejectsUnknownElementBits(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	_, err = Load("", map[string]any{"element_bits": 16})
	require.Error(t, err)
}

func TestLoadRejectsZeroThreads(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	_, err = Load("", map[string]any{"threads": 0})
	require.Error(t, err)
}
