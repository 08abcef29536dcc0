package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCase(t *testing.T) {
	c := Default("/case")

	assert.Equal(t, "/case", c.CaseDir)
	assert.Equal(t, filepath.Join("/case", "experimental_data", "PIV_Sudden_Expansion_500_243.txt"), c.ExpFile)
	assert.Equal(t, filepath.Join("/case", "simulation_data"), c.SimDataDir)
	assert.Equal(t, filepath.Join("/case", "plots"), c.PlotsDir)
	assert.InDelta(t, 0.122685, c.ZExpansion, 1e-12)
	assert.InDelta(t, 1056.0, c.Rho, 1e-12)
	require.Len(t, c.Stations, 15)
	assert.Equal(t, "radial_z_minus088", c.Stations[0].SetName)
	assert.Equal(t, "radial_z_plus080", c.Stations[14].SetName)
}

func TestLoadOverridesSubset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.yaml")
	content := `rho: 998.0
plots_dir: /tmp/out
stations:
  - z: 0.008
    set: radial_z_plus008
    label: z = +8mm
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path, "/case")
	require.NoError(t, err)

	assert.InDelta(t, 998.0, c.Rho, 1e-12)
	assert.Equal(t, "/tmp/out", c.PlotsDir)
	require.Len(t, c.Stations, 1)
	assert.Equal(t, "radial_z_plus008", c.Stations[0].SetName)

	// Unset fields keep their defaults.
	assert.InDelta(t, 0.122685, c.ZExpansion, 1e-12)
	assert.Equal(t, filepath.Join("/case", "simulation_data"), c.SimDataDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), ".")
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - ]["), 0o644))

	_, err := Load(path, ".")
	require.Error(t, err)
}
