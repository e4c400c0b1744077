/*
 * atom.go, part of gosasa.
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
	"strings"

	v3 "github.com/rmera/gosasa/v3"
)

// ResidueID identifies a residue in a structure. Several residues can share
// the residue type, but never the ResidueID.
type ResidueID struct {
	Chain string
	Seq   int
	ICode string
}

func (R ResidueID) String() string {
	return fmt.Sprintf("%s:%d%s", R.Chain, R.Seq, strings.TrimSpace(R.ICode))
}

// Atom contains the data for one atom of a structure.
// Atoms are never modified once created.
type Atom struct {
	ID      int //serial number. Unique in a structure.
	Name    string
	Symbol  string
	AltLoc  string
	Chain   string
	MolID   int //residue sequence number
	ICode   string
	MolName string //residue type
	Het     bool   //is hetatm in the pdb file?
	Vdw     float64
	Coords  [3]float64
}

// Residue returns the identifier of the residue the atom belongs to.
func (A *Atom) Residue() ResidueID {
	return ResidueID{Chain: A.Chain, Seq: A.MolID, ICode: A.ICode}
}

func (A *Atom) String() string {
	return fmt.Sprintf("%d %s %s %s", A.ID, A.Name, A.MolName, A.Residue())
}

// AtomSet is the ordered set of atoms that take part in a calculation,
// together with their coordinates.
type AtomSet struct {
	atoms  []*Atom
	coords *v3.Matrix
}

// NewAtomSet builds an AtomSet with the given atoms, in the given order.
// It returns a *FilterConsistencyError if two atoms share a serial number.
func NewAtomSet(atoms []*Atom) (*AtomSet, error) {
	S := &AtomSet{atoms: atoms}
	seen := make(map[int]bool, len(atoms))
	for _, a := range atoms {
		if seen[a.ID] {
			return nil, &FilterConsistencyError{Expected: len(atoms), Got: len(atoms), Serial: a.ID, Duplicate: true, Message: "repeated serial number", deco: []string{"NewAtomSet"}}
		}
		seen[a.ID] = true
	}
	if len(atoms) == 0 {
		return S, nil
	}
	vecs := make([][3]float64, len(atoms))
	for i, a := range atoms {
		vecs[i] = a.Coords
	}
	var err error
	S.coords, err = v3.FromVecs(vecs)
	return S, errDecorate(err, "NewAtomSet")
}

// Atom returns the ith atom of the set. It panics if i is out of range.
func (S *AtomSet) Atom(i int) *Atom {
	return S.atoms[i]
}

// Len returns the number of atoms in the set.
func (S *AtomSet) Len() int {
	return len(S.atoms)
}

// Coords returns the coordinates of the set, one vector per atom, in the order of the set.
// It returns nil for an empty set. The matrix must not be modified.
func (S *AtomSet) Coords() *v3.Matrix {
	return S.coords
}
