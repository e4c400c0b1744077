package sasa

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// an independent count of the atoms that should be kept, written
// without using the filter code.
func census(raw []*Atom, het bool, primary string) int {
	n := 0
	for _, a := range raw {
		if a.Het && !het {
			continue
		}
		if strings.ToUpper(strings.TrimSpace(a.Symbol)) == "H" {
			continue
		}
		if alt := strings.TrimSpace(a.AltLoc); alt != "" && alt != primary {
			continue
		}
		n++
	}
	return n
}

func altlocStructure(groups int) []*Atom {
	var raw []*Atom
	serial := 1
	add := func(a *Atom) {
		a.ID = serial
		serial++
		raw = append(raw, a)
	}
	for r := 1; r <= 5; r++ {
		add(newAtom(0, "A", r, "SER", "N", "N", float64(r)*3.8, 0, 0))
		add(newAtom(0, "A", r, "SER", "H", "H", float64(r)*3.8, 1, 0))
		add(newAtom(0, "A", r, "SER", "CA", "C", float64(r)*3.8, 0, 1.5))
		if r <= groups {
			for _, alt := range []string{"A", "B", "C"} {
				a := newAtom(0, "A", r, "SER", "OG", "O", float64(r)*3.8, 1.4, 1.5)
				a.AltLoc = alt
				add(a)
			}
		} else {
			add(newAtom(0, "A", r, "SER", "OG", "O", float64(r)*3.8, 1.4, 1.5))
		}
	}
	w := newAtom(0, "W", 1, "HOH", "O", "O", 40, 40, 40)
	w.Het = true
	add(w)
	return raw
}

func TestFilterConsistency(Te *testing.T) {
	for _, groups := range []int{0, 1, 5} {
		raw := altlocStructure(groups)
		for _, het := range []bool{false, true} {
			o := DefaultOptions()
			o.HetAtoms(het)
			want := census(raw, het, "A")
			set, err := Filter(raw, o, want)
			require.NoError(Te, err, "groups %d het %v", groups, het)
			assert.Equal(Te, want, set.Len())
			//one heavy atom per position, plus water if requested
			exp := 15
			if het {
				exp++
			}
			assert.Equal(Te, exp, set.Len())
		}
	}
}

func TestFilterKeepsOrderAndPrimary(Te *testing.T) {
	raw := altlocStructure(2)
	o := DefaultOptions()
	o.AltLocPrimary("B")
	set, err := Filter(raw, o)
	require.NoError(Te, err)
	prev := 0
	for i := 0; i < set.Len(); i++ {
		a := set.Atom(i)
		assert.Greater(Te, a.ID, prev)
		prev = a.ID
		assert.Contains(Te, []string{"", "B"}, a.AltLoc)
		assert.False(Te, IsHydrogen(a.Symbol))
		assert.False(Te, a.Het)
	}
}

func TestFilterHydrogenCase(Te *testing.T) {
	a := newAtom(1, "A", 1, "ALA", "HA", "h", 0, 0, 0)
	assert.False(Te, Participates(a, DefaultOptions()))
	b := newAtom(2, "A", 1, "ALA", "CA", "C", 0, 0, 0)
	b.AltLoc = " "
	assert.True(Te, Participates(b, DefaultOptions()))
}

func TestFilterCountMismatch(Te *testing.T) {
	raw := altlocStructure(1)
	_, err := Filter(raw, DefaultOptions(), 3)
	var ferr *FilterConsistencyError
	require.True(Te, errors.As(err, &ferr))
	assert.Equal(Te, 3, ferr.Expected)
	assert.Equal(Te, 15, ferr.Got)
	assert.Contains(Te, Trace(err), "Filter")
}

func TestFilterRepeatedSerial(Te *testing.T) {
	raw := []*Atom{
		newAtom(1, "A", 1, "ALA", "N", "N", 0, 0, 0),
		newAtom(2, "A", 1, "ALA", "CA", "C", 1.5, 0, 0),
		newAtom(2, "A", 1, "ALA", "C", "C", 3, 0, 0),
	}
	_, err := Filter(raw, DefaultOptions())
	var ferr *FilterConsistencyError
	require.True(Te, errors.As(err, &ferr))
	assert.True(Te, ferr.Duplicate)
	assert.Equal(Te, 2, ferr.Serial)
}

func TestFilterRepeatedSerialZero(Te *testing.T) {
	raw := []*Atom{
		newAtom(0, "A", 1, "ALA", "N", "N", 0, 0, 0),
		newAtom(0, "A", 1, "ALA", "CA", "C", 1.5, 0, 0),
	}
	_, err := Filter(raw, DefaultOptions())
	var ferr *FilterConsistencyError
	require.True(Te, errors.As(err, &ferr))
	assert.True(Te, ferr.Duplicate)
	assert.Equal(Te, 0, ferr.Serial)
	assert.Contains(Te, err.Error(), "repeated serial number (serial 0)")
	assert.NotContains(Te, err.Error(), "expected")
}
