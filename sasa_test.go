package sasa

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(Te *testing.T) {
	raw := altlocStructure(2)
	o := DefaultOptions()
	o.Cpus(3)
	rep, err := Run(context.Background(), raw, o, 15)
	require.NoError(Te, err)
	ats := rep.Atoms()
	assert.Len(Te, ats, 15)
	for _, a := range ats {
		assert.NotEqual(Te, "H", a.Element)
		assert.False(Te, math.IsNaN(a.SASA))
		assert.GreaterOrEqual(Te, a.SASA, 0.0)
	}
	res := rep.Residues()
	assert.Len(Te, res, 5)
	tot := 0.0
	for _, r := range res {
		require.NotNil(Te, r.Relative)
		tot += r.SASA
	}
	assert.InDelta(Te, tot, rep.Summary().Total, 1e-9)

	//same input, same output
	rep2, err := Run(context.Background(), raw, o.Copy(), 15)
	require.NoError(Te, err)
	assert.Equal(Te, rep.Atoms(), rep2.Atoms())
	assert.Equal(Te, rep.Chains(), rep2.Chains())
}

func TestRunErrors(Te *testing.T) {
	raw := altlocStructure(1)
	rep, err := Run(context.Background(), raw, nil, 16)
	assert.Nil(Te, rep)
	var ferr *FilterConsistencyError
	require.ErrorAs(Te, err, &ferr)
	assert.Equal(Te, 16, ferr.Expected)
	assert.Equal(Te, 15, ferr.Got)
	assert.Contains(Te, Trace(err), "Run")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err = Run(ctx, raw, nil)
	assert.Nil(Te, rep)
	assert.ErrorIs(Te, err, context.Canceled)
}
