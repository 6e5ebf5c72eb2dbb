package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Analysis, cfg.Analysis)
	assert.Equal(t, def.Scene, cfg.Scene)
	assert.Equal(t, int64(42), cfg.Palette.Seed)
}

func TestLoadFrom_OverridesAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
analysis:
  max_actions: 4
scene:
  visible_clusters: 40
  reset_duration: 2s
  filtered_selectable: true
reminder:
  workdays: ["monday", " TUE "]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Analysis.MaxActions)
	assert.Equal(t, 8, cfg.Analysis.MaxSubjects)
	assert.Equal(t, 12, cfg.Scene.VisibleClusters)
	assert.Equal(t, 2*time.Second, cfg.Scene.ResetDuration)
	assert.True(t, cfg.Scene.FilteredSelectable)
	assert.Equal(t, []string{"Mon", "Tue"}, cfg.Reminder.Workdays)
}

func TestDataPath_UsesConfiguredDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	cfg := Default()
	cfg.DataDir = dir

	p, err := cfg.DataPath("journal.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "journal.db"), p)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadFrom_ListsReplaceDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
reminder:
  workdays: [saturday]
  holidays: ["2025-12-25"]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sat"}, cfg.Reminder.Workdays)
	assert.Equal(t, []string{"2025-12-25"}, cfg.Reminder.Holidays)
	assert.Equal(t, "20:30", cfg.Reminder.Time)
	assert.Equal(t, Default().Scene, cfg.Scene)
}
