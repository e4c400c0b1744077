/*
 * filter.go, part of gosasa.
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
	"strings"

	"github.com/rmera/gosasa/logger"
)

// Participates returns true if the atom takes part in the calculation under
// the options o. The rules are applied in order:
// HETATM records are dropped unless o.HetAtoms() is true; hydrogens are dropped;
// atoms with an alternate location code other than blank or o.AltLocPrimary()
// are dropped. Everything else is kept.
func Participates(a *Atom, o *Options) bool {
	return dropReason(a, o) == keep
}

type reason int

const (
	keep reason = iota
	hetatm
	hydrogen
	altloc
)

func dropReason(a *Atom, o *Options) reason {
	if a.Het && !o.HetAtoms() {
		return hetatm
	}
	if IsHydrogen(a.Symbol) {
		return hydrogen
	}
	alt := strings.TrimSpace(a.AltLoc)
	if alt != "" && alt != o.AltLocPrimary() {
		return altloc
	}
	return keep
}

// Filter selects, preserving their order, the atoms in raw that take part in the
// calculation under the options o (see Participates), and returns them as an AtomSet.
// If an expected count is given (obtained from an independent enumeration of the
// same structure, under the same rules) and the number of selected atoms differs
// from it, a *FilterConsistencyError is returned. Such an error is also returned if
// two selected atoms share a serial number.
func Filter(raw []*Atom, o *Options, expected ...int) (*AtomSet, error) {
	if o == nil {
		o = DefaultOptions()
	}
	sel := make([]*Atom, 0, len(raw))
	var dropped [4]int
	for _, a := range raw {
		r := dropReason(a, o)
		if r != keep {
			dropped[r]++
			continue
		}
		sel = append(sel, a)
	}
	logger.Info("filter: %d of %d atoms kept (dropped: %d hetatm, %d hydrogen, %d alternate location)",
		len(sel), len(raw), dropped[hetatm], dropped[hydrogen], dropped[altloc])
	if len(expected) > 0 && expected[0] != len(sel) {
		return nil, &FilterConsistencyError{Expected: expected[0], Got: len(sel), Message: "number of participating atoms differs from the independent count", deco: []string{"Filter"}}
	}
	set, err := NewAtomSet(sel)
	if err != nil {
		return nil, errDecorate(err, "Filter")
	}
	return set, nil
}
