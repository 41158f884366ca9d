package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ganttlane/internal/domain"
	"ganttlane/internal/drag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, drag.GranDay, cfg.Granularity())
	assert.Equal(t, domain.GroupAssignee, cfg.GroupMode())
	assert.Equal(t, 400*time.Millisecond, cfg.Debounce())
}

func TestLoad_OverridesLayerOverDefaults(t *testing.T) {
	path := writeConfig(t, `
board:
  granularity: week
  debounce_ms: 150
  tolerance: 500ms
scales:
  week: 12
defaults:
  no_start_days: 14
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, drag.GranWeek, cfg.Granularity())
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 12.0, cfg.ScaleTable().Scale(drag.GranWeek).CellsPerUnit)
	assert.Equal(t, 14, cfg.DurationPolicy().NoStartSpan)
	// Untouched fields keep their defaults.
	assert.Equal(t, 1, cfg.DurationPolicy().NoDueSpan)
	assert.Equal(t, 1, cfg.EdgeMargin())
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	path := writeConfig(t, `
board:
  granulraity: week
`)

	_, err := Load(path)

	assert.Error(t, err, "typoed keys must not silently fall back")
}

func TestLoad_InvalidGranularityRejected(t *testing.T) {
	path := writeConfig(t, `
board:
  granularity: fortnight
`)

	_, err := Load(path)

	assert.ErrorContains(t, err, "granularity")
}

func TestLoad_InvalidToleranceRejected(t *testing.T) {
	path := writeConfig(t, `
board:
  tolerance: whenever
`)

	_, err := Load(path)

	assert.ErrorContains(t, err, "tolerance")
}

func TestConfig_ToleranceModes(t *testing.T) {
	cfg := Default()
	cfg.Board.Tolerance = ToleranceSameDay
	sameDay := cfg.Tolerance()
	assert.True(t, sameDay(
		time.Date(2025, 3, 1, 8, 0, 0, 0, time.Local),
		time.Date(2025, 3, 1, 20, 0, 0, 0, time.Local),
	))

	cfg.Board.Tolerance = "1m"
	eps := cfg.Tolerance()
	assert.True(t, eps(time.Unix(0, 0), time.Unix(30, 0)))
	assert.False(t, eps(time.Unix(0, 0), time.Unix(120, 0)))
}

func TestPath_EnvOverride(t *testing.T) {
	t.Setenv("GANTTLANE_CONFIG", "/tmp/custom.yaml")

	path, err := Path()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", path)
}
