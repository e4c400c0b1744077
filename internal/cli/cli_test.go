package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/gosasa/config"
)

func pdbLine(rec string, serial int, name, res, chain string, seq int, x, y, z float64, elem string) string {
	return fmt.Sprintf("%-6s%5d %-4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
		rec, serial, name, res, chain, seq, x, y, z, 1.0, 0.0, elem)
}

func writePDB(t *testing.T, dir string, extra string) string {
	var b strings.Builder
	serial := 1
	for i, res := range []string{"ALA", "GLY", "SER"} {
		x := float64(i) * 3.8
		b.WriteString(pdbLine("ATOM", serial, "N", res, "A", i+1, x, 0, 0, "N"))
		b.WriteString(pdbLine("ATOM", serial+1, "CA", res, "A", i+1, x+1.46, 0, 0, "C"))
		b.WriteString(pdbLine("ATOM", serial+2, "C", res, "A", i+1, x+2.0, 1.4, 0, "C"))
		b.WriteString(pdbLine("ATOM", serial+3, "O", res, "A", i+1, x+1.5, 2.5, 0, "O"))
		serial += 4
	}
	b.WriteString(pdbLine("HETATM", serial, "O", "HOH", "W", 1, 20, 20, 20, "O"))
	b.WriteString(extra)
	b.WriteString("END\n")
	path := filepath.Join(dir, "test.pdb")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	//keep the user's configuration out of the tests.
	t.Setenv("HOME", t.TempDir())
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gosasa version dev")
	assert.Contains(t, out, "golden-spiral/1")
}

func TestCalcStdout(t *testing.T) {
	path := writePDB(t, t.TempDir(), "")
	out, err := execute(t, "calc", path, "--format", "csv", "--level", "chain")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Chain,Abs_SASA", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "A,"))

	out, err = execute(t, "calc", path, "--format", "csv", "--level", "chain", "--hetatm")
	require.NoError(t, err)
	assert.Contains(t, out, "\nW,")

	out, err = execute(t, "calc", path, "-f", "json", "-l", "residue")
	require.NoError(t, err)
	assert.Contains(t, out, `"reference_table": "tien2013-theoretical"`)
	assert.Contains(t, out, `"residues"`)
	assert.NotContains(t, out, `"atoms": [`)
}

func TestCalcOutDir(t *testing.T) {
	dir := t.TempDir()
	path := writePDB(t, dir, "")
	out := filepath.Join(dir, "results")
	_, err := execute(t, "calc", path, "--out", out, "--points", "200", "--workers", "2")
	require.NoError(t, err)
	for _, f := range []string{"sasa_per_atom.csv", "sasa_per_residue.csv", "relsasa_per_residue.csv", "sasa_per_chain.csv"} {
		assert.FileExists(t, filepath.Join(out, f))
	}
	data, err := os.ReadFile(filepath.Join(out, "sasa_per_atom.csv"))
	require.NoError(t, err)
	assert.Equal(t, 13, strings.Count(string(data), "\n"), "header and 12 atoms")
}

// A failed calculation writes no tables.
func TestCalcInvalidGeometry(t *testing.T) {
	dir := t.TempDir()
	path := writePDB(t, dir, pdbLine("ATOM", 99, "XX", "ALA", "B", 9, 5, 5, 5, "XX"))
	out := filepath.Join(dir, "results")
	msg, err := execute(t, "calc", path, "--out", out)
	require.Error(t, err)
	assert.Contains(t, msg, "atom 99")
	assert.Contains(t, msg, "B:9")
	assert.NoDirExists(t, out)
}

func TestCalcInvalidFlags(t *testing.T) {
	path := writePDB(t, t.TempDir(), "")
	_, err := execute(t, "calc", path, "--points", "0")
	assert.Error(t, err)
	_, err = execute(t, "calc", path, "--reference", "nope")
	assert.Error(t, err)
	_, err = execute(t, "calc", filepath.Join(t.TempDir(), "missing.pdb"))
	assert.Error(t, err)
}

func TestConfigFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "gosasa.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("n_points = 50\ninclude_hetatm = true\n[output]\nformat = \"json\"\n"), 0o644))
	out, err := execute(t, "config", "--config", cfg)
	require.NoError(t, err)
	c, err := config.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 50, c.NPoints)
	assert.True(t, c.IncludeHetatm)

	path := writePDB(t, dir, "")
	//the flag wins over the file.
	out, err = execute(t, "calc", path, "--config", cfg, "--format", "csv", "--level", "chain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Chain,Abs_SASA"))
	assert.Contains(t, out, "\nW,")
}

func TestStoreAndRuns(t *testing.T) {
	dir := t.TempDir()
	path := writePDB(t, dir, "")
	db := filepath.Join(dir, "runs.db")
	out, err := execute(t, "calc", path, "--store", db, "--level", "chain", "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "saved to "+db)

	out, err = execute(t, "runs", "--store", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	id := strings.Split(lines[1], "\t")[0]

	out, err = execute(t, "runs", "show", id[:8], "--store", db)
	require.NoError(t, err)
	assert.Contains(t, out, "# run "+id)
	assert.Contains(t, out, "Chain,ResName,ResNum,Abs_SASA,Rel_SASA\nA,ALA,1,")
	assert.Contains(t, out, "Chain,Abs_SASA\nA,")

	_, err = execute(t, "runs", "delete", id, "--store", db)
	require.NoError(t, err)
	out, err = execute(t, "runs", "--store", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs saved.")

	_, err = execute(t, "runs")
	assert.Error(t, err)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := writePDB(t, dir, "")
	t.Setenv("HOME", t.TempDir())
	c := config.Default()
	c.Output.Level = "chain"
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error)
	finished := make(chan error, 1)
	go func() { finished <- watch(ctx, cmd, path, c, true, done) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("first run didn't finish")
	}
	//an invalid structure is reported, and watching goes on.
	writePDB(t, dir, pdbLine("ATOM", 99, "XX", "ALA", "B", 9, 5, 5, 5, "XX"))
	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("the change was not noticed")
	}
	cancel()
	select {
	case err := <-finished:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch didn't stop")
	}
}
