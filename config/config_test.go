package config

import (
	"os"
	"path/filepath"
	"testing"

	sasa "github.com/rmera/gosasa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	o := c.Options()
	assert.Equal(t, 1.4, o.Probe())
	assert.Equal(t, 100, o.NPoints())
	assert.False(t, o.HetAtoms())
	assert.Equal(t, "A", o.AltLocPrimary())
	assert.Equal(t, sasa.DefaultReference, o.ReferenceSet())
}

func TestParse(t *testing.T) {
	data := []byte(`
probe_radius = 1.2
n_points = 960
include_hetatm = true
alt_loc_primary = "B"
workers = 3
reference_table = "miller1987"
extended_reference = true

[output]
format = "json"
level = "relative"

[store]
path = "runs.db"
`)
	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 1.2, c.ProbeRadius)
	assert.Equal(t, "json", c.Output.Format)
	assert.Equal(t, "relative", c.Output.Level)
	assert.Equal(t, "", c.Output.Dir, "missing keys keep defaults")
	assert.Equal(t, "all", Default().Output.Level)
	assert.Equal(t, "runs.db", c.StorePath())
	o := c.Options()
	assert.Equal(t, 1.2, o.Probe())
	assert.Equal(t, 960, o.NPoints())
	assert.True(t, o.HetAtoms())
	assert.Equal(t, "B", o.AltLocPrimary())
	assert.Equal(t, 3, o.Cpus())
	assert.Equal(t, "miller1987", o.ReferenceSet())
	assert.True(t, o.ExtendedReference())
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"negative probe":  "probe_radius = -1.0",
		"no points":       "n_points = 0",
		"workers":         "workers = 0",
		"reference":       `reference_table = "none"`,
		"format":          "[output]\nformat = \"xml\"",
		"level":           "[output]\nlevel = \"atoms\"",
		"unknown key":     "probe = 1.4",
		"wrong type":      `n_points = "many"`,
		"empty altloc":    `alt_loc_primary = " "`,
		"malformed input": "probe_radius = ",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadAndMarshal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	c := Default()
	c.NPoints = 500
	c.Store.Path = "~/runs.db"
	data, err := c.Marshal()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
	if home, err := os.UserHomeDir(); err == nil {
		assert.Equal(t, filepath.Join(home, "runs.db"), got.StorePath())
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
