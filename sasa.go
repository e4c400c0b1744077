/*
 * sasa.go, part of gosasa.
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
	"context"

	"github.com/rmera/gosasa/logger"
)

// Run performs the whole calculation for a parsed structure: it selects the atoms
// that take part (see Filter), computes their areas, sums them into residue and chain
// areas and builds the report. If expected is given, it is the number of participating
// atoms obtained independently, and a different number of selected atoms is an error.
// On error, no report is returned.
func Run(ctx context.Context, raw []*Atom, o *Options, expected ...int) (*Report, error) {
	if o == nil {
		o = DefaultOptions()
	}
	ref, err := Reference(o.ReferenceSet(), o.ExtendedReference())
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	done := logger.Stage("Filter")
	set, err := Filter(raw, o, expected...)
	done()
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	done = logger.Stage("Shrake-Rupley")
	areas, err := Calculate(ctx, set, o)
	done()
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	agg, err := Aggregate(set, areas)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	done = logger.Stage("Report")
	rep := NewReport(set, agg, ref)
	done()
	s := rep.Summary()
	logger.Info("%d atoms, %d residues, %d chains, total SASA %.2f A^2", s.Atoms, s.Residues, s.Chains, s.Total)
	return rep, nil
}
