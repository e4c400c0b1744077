package tables

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sasa "github.com/rmera/gosasa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(t *testing.T) *sasa.Report {
	mk := func(serial int, chain string, seq int, icode, res, name, sym string) *sasa.Atom {
		r, _ := sasa.VdwRadius(sym)
		return &sasa.Atom{ID: serial, Chain: chain, MolID: seq, ICode: icode, MolName: res, Name: name, Symbol: sym, Vdw: r}
	}
	atoms := []*sasa.Atom{
		mk(1, "A", 1, "", "ALA", "N", "N"),
		mk(2, "A", 1, "", "ALA", "CA", "C"),
		mk(3, "A", 2, "B", "LIG", "C1", "C"),
		mk(4, "B", 7, "", "GLY", "CA", "C"),
	}
	set, err := sasa.NewAtomSet(atoms)
	require.NoError(t, err)
	agg, err := sasa.Aggregate(set, []float64{10.5, 54, 30.25, 104})
	require.NoError(t, err)
	return sasa.NewReport(set, agg, sasa.Tien2013Theoretical)
}

func TestWriteCSV(t *testing.T) {
	rep := testReport(t)
	cases := map[string]string{
		LevelAtom: "serial,chain,residue_num,residue,atom_name,element,sasa\n" +
			"1,A,1,ALA,N,N,10.5\n2,A,1,ALA,CA,C,54\n3,A,2B,LIG,C1,C,30.25\n4,B,7,GLY,CA,C,104\n",
		LevelResidue:  "Chain,ResName,ResNum,Abs_SASA\nA,ALA,1,64.5\nA,LIG,2B,30.25\nB,GLY,7,104\n",
		LevelRelative: "Chain,ResName,ResNum,Abs_SASA,Rel_SASA\nA,ALA,1,64.5,0.5\nB,GLY,7,104,1\n",
		LevelChain:    "Chain,Abs_SASA\nA,94.75\nB,104\n",
	}
	for level, want := range cases {
		var b bytes.Buffer
		require.NoError(t, WriteCSV(&b, rep, level))
		assert.Equal(t, want, b.String(), level)
	}
	assert.Error(t, WriteCSV(&bytes.Buffer{}, rep, LevelAll))
	assert.Error(t, WriteCSV(&bytes.Buffer{}, rep, "atoms"))
}

func TestWriteJSON(t *testing.T) {
	rep := testReport(t)
	var b bytes.Buffer
	require.NoError(t, WriteJSON(&b, rep, LevelResidue))
	var d Document
	require.NoError(t, json.Unmarshal(b.Bytes(), &d))
	assert.Equal(t, sasa.DefaultReference, d.Reference)
	assert.Len(t, d.Residues, 3)
	assert.Nil(t, d.Atoms)
	assert.Nil(t, d.Residues[1].Relative)
	require.NotNil(t, d.Residues[0].Relative)
	assert.Equal(t, 0.5, *d.Residues[0].Relative)
	assert.Equal(t, 198.75, d.Summary.Total)
	assert.Nil(t, d.Exposure)

	b.Reset()
	require.NoError(t, WriteJSON(&b, rep, LevelRelative))
	assert.Contains(t, b.String(), `"exposure"`)
	assert.Contains(t, b.String(), `">=1.00"`)
}

func TestWriteDir(t *testing.T) {
	rep := testReport(t)
	dir := filepath.Join(t.TempDir(), "out")
	names, err := WriteDir(dir, rep, FormatCSV, LevelAll)
	require.NoError(t, err)
	require.Len(t, names, 4)
	for i, f := range []string{"sasa_per_atom.csv", "sasa_per_residue.csv", "relsasa_per_residue.csv", "sasa_per_chain.csv"} {
		assert.Equal(t, filepath.Join(dir, f), names[i])
		assert.FileExists(t, names[i])
	}
	data, err := os.ReadFile(filepath.Join(dir, "sasa_per_chain.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Chain,Abs_SASA\nA,94.75\nB,104\n", string(data))

	names, err = WriteDir(dir, rep, FormatJSON, LevelChain)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "sasa.json")}, names)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "."), "temporary file %s left", e.Name())
	}
	_, err = WriteDir(dir, rep, FormatTable, LevelAll)
	assert.Error(t, err)
}

// A table that fails after others were written must leave no files at all.
func TestWriteFilesAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	fail := errors.New("disk full")
	files := []outFile{
		{filepath.Join(dir, "a.csv"), func(w io.Writer) error { _, err := io.WriteString(w, "a\n"); return err }},
		{filepath.Join(dir, "b.csv"), func(w io.Writer) error { _, err := io.WriteString(w, "b\n"); return err }},
		{filepath.Join(dir, "c.csv"), func(w io.Writer) error { return fail }},
	}
	names, err := writeFiles(files)
	require.ErrorIs(t, err, fail)
	assert.Empty(t, names)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	names, err = writeFiles(files[:2])
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")}, names)
	data, err := os.ReadFile(names[1])
	require.NoError(t, err)
	assert.Equal(t, "b\n", string(data))
}

func TestRender(t *testing.T) {
	rep := testReport(t)
	s, err := Render(rep, LevelAll)
	require.NoError(t, err)
	for _, title := range titles {
		assert.Contains(t, s, title)
	}
	assert.Contains(t, s, "64.50")
	assert.Contains(t, s, "198.75")
	assert.Contains(t, s, "Residues by relative SASA")
	assert.Contains(t, s, "50.0%")
	_, err = Render(rep, "nope")
	assert.Error(t, err)
}
