package sasa

import (
	"math/rand"
)

func newAtom(serial int, chain string, seq int, resname, name, symbol string, x, y, z float64) *Atom {
	r, _ := VdwRadius(symbol)
	return &Atom{
		ID:      serial,
		Name:    name,
		Symbol:  symbol,
		Chain:   chain,
		MolID:   seq,
		MolName: resname,
		Vdw:     r,
		Coords:  [3]float64{x, y, z},
	}
}

// a compact, protein-like cluster of heavy atoms, 4 atoms per residue,
// 2 chains.
func cluster(n int, seed int64) []*Atom {
	rng := rand.New(rand.NewSource(seed))
	names := []string{"N", "CA", "C", "O"}
	types := []string{"ALA", "GLY", "SER", "LEU", "LYS"}
	ret := make([]*Atom, 0, n)
	for i := 0; i < n; i++ {
		res := i / 4
		chain := "A"
		if i >= n/2 {
			chain = "B"
		}
		name := names[i%4]
		ret = append(ret, newAtom(i+1, chain, res+1, types[res%len(types)], name, name[:1],
			rng.Float64()*18, rng.Float64()*18, rng.Float64()*18))
	}
	return ret
}

func mustSet(atoms []*Atom) *AtomSet {
	s, err := NewAtomSet(atoms)
	if err != nil {
		panic(err)
	}
	return s
}
