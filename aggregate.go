/*
 * aggregate.go, part of gosasa.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package sasa

import (
	"fmt"
	"math"
	"sort"
)

// ResidueArea is the accessible area of one residue.
type ResidueArea struct {
	ID      ResidueID
	MolName string
	SASA    float64
	atoms   []int //indexes in the atom set, in ascending serial number order.
}

// Atoms returns the indexes, in the atom set, of the atoms of the residue,
// in ascending serial number order.
func (R *ResidueArea) Atoms() []int {
	return append([]int(nil), R.atoms...)
}

// ChainArea is the accessible area of one chain.
type ChainArea struct {
	Chain    string
	SASA     float64
	residues []int //indexes in Areas.Residues, in discovery order.
}

// Residues returns the indexes, in Areas.Residues, of the residues of the chain.
func (C *ChainArea) Residues() []int {
	return append([]int(nil), C.residues...)
}

// Areas contains the accessible areas of a structure at the atom, residue
// and chain levels. Residues and chains are in the order in which they are
// first found in the atom set.
type Areas struct {
	Atoms    []float64
	Residues []*ResidueArea
	Chains   []*ChainArea
}

// Aggregate sums the atom areas into residue and chain areas. areas[i] must be the
// area of mol.Atom(i). Atoms are grouped into residues by chain, sequence number and
// insertion code. Each residue area is the sum of the areas of its atoms, added in
// ascending order of serial number, and each chain area the sum of its residues, in
// the order in which they were found. The summation order is fixed, so the results
// are reproducible bit by bit.
func Aggregate(mol Atomer, areas []float64) (*Areas, error) {
	if len(areas) != mol.Len() {
		return nil, CError{fmt.Sprintf("%d areas given for %d atoms", len(areas), mol.Len()), []string{"Aggregate"}}
	}
	ret := &Areas{Atoms: areas}
	resindex := make(map[ResidueID]int)
	chainindex := make(map[string]int)
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		if a := areas[i]; math.IsNaN(a) || a < 0 {
			return nil, &InvalidGeometryError{Serial: at.ID, Residue: at.Residue(), Reason: fmt.Sprintf("invalid atom area %v", a), deco: []string{"Aggregate"}}
		}
		id := at.Residue()
		r, ok := resindex[id]
		if !ok {
			r = len(ret.Residues)
			resindex[id] = r
			ret.Residues = append(ret.Residues, &ResidueArea{ID: id, MolName: at.MolName})
			c, ok := chainindex[id.Chain]
			if !ok {
				c = len(ret.Chains)
				chainindex[id.Chain] = c
				ret.Chains = append(ret.Chains, &ChainArea{Chain: id.Chain})
			}
			ret.Chains[c].residues = append(ret.Chains[c].residues, r)
		}
		ret.Residues[r].atoms = append(ret.Residues[r].atoms, i)
	}
	for _, res := range ret.Residues {
		sort.SliceStable(res.atoms, func(i, j int) bool {
			return mol.Atom(res.atoms[i]).ID < mol.Atom(res.atoms[j]).ID
		})
		for _, i := range res.atoms {
			res.SASA += areas[i]
		}
	}
	for _, c := range ret.Chains {
		for _, r := range c.residues {
			c.SASA += ret.Residues[r].SASA
		}
	}
	return ret, nil
}
