package sasa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceTables(Te *testing.T) {
	for _, name := range ReferenceNames() {
		t, err := Reference(name, false)
		require.NoError(Te, err)
		assert.Equal(Te, 20, t.Len(), name)
		v, ok := t.MaxASA("ala")
		assert.True(Te, ok)
		assert.Greater(Te, v, 0.0)
		_, ok = t.MaxASA("MSE")
		assert.False(Te, ok)
		_, ok = t.MaxASA("HOH")
		assert.False(Te, ok)
	}
	t, err := Reference("", false)
	require.NoError(Te, err)
	assert.Equal(Te, DefaultReference, t.Name())
	v, _ := t.MaxASA("TRP")
	assert.Equal(Te, 285.0, v)
	_, err = Reference("nope", false)
	assert.Error(Te, err)
}

func TestExtendedReference(Te *testing.T) {
	t, err := Reference("Tien2013-Empirical", true)
	require.NoError(Te, err)
	assert.Equal(Te, "tien2013-empirical+extended", t.Name())
	mse, ok := t.MaxASA("MSE")
	require.True(Te, ok)
	met, _ := t.MaxASA("MET")
	assert.Equal(Te, met, mse)
	hip, ok := t.MaxASA(" HIP ")
	require.True(Te, ok)
	assert.Equal(Te, 216.0, hip)
	//the base tables are not modified.
	_, ok = Tien2013Empirical.MaxASA("MSE")
	assert.False(Te, ok)
}

func TestOptionsReferenceSet(Te *testing.T) {
	o := DefaultOptions()
	o.ReferenceSet("unknown")
	assert.Equal(Te, DefaultReference, o.ReferenceSet())
	o.ReferenceSet("MILLER1987")
	assert.Equal(Te, "miller1987", o.ReferenceSet())
}
