package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	sasa "github.com/rmera/gosasa"
	"github.com/rmera/gosasa/sphere"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(t *testing.T) *sasa.Report {
	atoms := []*sasa.Atom{
		{ID: 1, Chain: "A", MolID: 1, MolName: "ALA", Name: "CA", Symbol: "C", Vdw: 1.7},
		{ID: 2, Chain: "A", MolID: 2, ICode: "A", MolName: "LIG", Name: "C1", Symbol: "C", Vdw: 1.7},
		{ID: 3, Chain: "B", MolID: 1, MolName: "GLY", Name: "CA", Symbol: "C", Vdw: 1.7},
	}
	set, err := sasa.NewAtomSet(atoms)
	require.NoError(t, err)
	agg, err := sasa.Aggregate(set, []float64{64.5, 12.25, 52})
	require.NoError(t, err)
	return sasa.NewReport(set, agg, sasa.Tien2013Theoretical)
}

func newTestStore(t *testing.T) *Store {
	s, err := Open(filepath.Join(t.TempDir(), "db", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rep := testReport(t)
	o := sasa.DefaultOptions()
	o.NPoints(960)
	id, err := s.Save(ctx, RunMeta{Input: "1abc.pdb", Options: o}, rep)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	run, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "1abc.pdb", run.Input)
	assert.Equal(t, 960, run.NPoints)
	assert.Equal(t, 1.4, run.ProbeRadius)
	assert.False(t, run.IncludeHetatm)
	assert.Equal(t, sasa.DefaultReference, run.Reference)
	assert.Equal(t, sphere.Version, run.SphereVersion)
	assert.Equal(t, 128.75, run.Total)
	assert.Equal(t, 3, run.Atoms)
	assert.Equal(t, 3, run.Residues)
	assert.Equal(t, 2, run.Chains)

	res, err := s.Residues(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rep.Residues(), res)
	assert.Nil(t, res[1].Relative)
	chains, err := s.Chains(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rep.Chains(), chains)

	byPrefix, err := s.Get(ctx, id[:8])
	require.NoError(t, err)
	assert.Equal(t, id, byPrefix.ID)
}

func TestRunsAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rep := testReport(t)
	var ids []string
	for _, in := range []string{"a.pdb", "b.pdb", "c.pdb"} {
		id, err := s.Save(ctx, RunMeta{Input: in}, rep)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "c.pdb", runs[0].Input)

	require.NoError(t, s.Delete(ctx, ids[0]))
	_, err = s.Get(ctx, ids[0])
	assert.True(t, errors.Is(err, ErrNotFound))
	res, err := s.Residues(ctx, ids[0])
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.ErrorIs(t, s.Delete(ctx, ids[0]), ErrNotFound)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.Save(context.Background(), RunMeta{Input: "x.pdb"}, testReport(t))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	//migrations are not applied twice.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	run, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "x.pdb", run.Input)
}
