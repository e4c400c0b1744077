/*
 * options.go, part of gosasa.
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
	"math"
	"runtime"
	"strings"
)

// Options contains the parameters for a SASA calculation. The zero value
// is not useful, use DefaultOptions.
type Options struct {
	probe    float64
	npoints  int
	het      bool
	altloc   string
	cpus     int
	refset   string
	extended bool
}

const (
	DefaultProbe   = 1.4
	DefaultNPoints = 100
	DefaultAltLoc  = "A"
)

// DefaultOptions returns an Options with the default values: probe radius 1.4 A,
// 100 test points per atom, no HETATM records, "A" as the primary alternate location,
// one goroutine per logical CPU and the theoretical reference table of Tien et al. 2013.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.probe = DefaultProbe
	ret.npoints = DefaultNPoints
	ret.het = false
	ret.altloc = DefaultAltLoc
	ret.cpus = runtime.NumCPU()
	ret.refset = DefaultReference
	ret.extended = false
	return ret
}

// Copy returns a copy of the options.
func (r *Options) Copy() *Options {
	ret := *r
	return &ret
}

// Probe returns the current probe radius and sets it, if a valid value
// (finite and not negative) is given.
func (r *Options) Probe(probe ...float64) float64 {
	ret := r.probe
	if len(probe) > 0 && probe[0] >= 0 && !math.IsInf(probe[0], 0) {
		r.probe = probe[0]
	}
	return ret
}

// NPoints returns the current number of test points per atom, and sets it
// if a valid value is given.
func (r *Options) NPoints(n ...int) int {
	ret := r.npoints
	if len(n) > 0 && n[0] > 0 {
		r.npoints = n[0]
	}
	return ret
}

// HetAtoms returns whether HETATM records take part in the calculation,
// and sets the value to the one given, if any.
func (r *Options) HetAtoms(het ...bool) bool {
	ret := r.het
	if len(het) > 0 {
		r.het = het[0]
	}
	return ret
}

// AltLocPrimary returns the alternate location code that is kept for atoms
// with several conformers, and sets it if a non-blank code is given.
func (r *Options) AltLocPrimary(code ...string) string {
	ret := r.altloc
	if len(code) > 0 && strings.TrimSpace(code[0]) != "" {
		r.altloc = strings.TrimSpace(code[0])
	}
	return ret
}

// Cpus returns the current number of goroutines to use on the concurrent
// calculation and sets it, if a valid value is given.
func (r *Options) Cpus(cpus ...int) int {
	ret := r.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		r.cpus = cpus[0]
	}
	return ret
}

// ReferenceSet returns the name of the table of maximum areas used for
// relative SASA and sets it, if the name of a known table is given.
func (r *Options) ReferenceSet(name ...string) string {
	ret := r.refset
	if len(name) > 0 {
		if _, ok := references[strings.ToLower(name[0])]; ok {
			r.refset = strings.ToLower(name[0])
		}
	}
	return ret
}

// ExtendedReference returns whether non-standard residue names (protonation
// variants, selenomethionine, etc.) are mapped to their standard counterparts
// for relative SASA, and sets the value, if given.
func (r *Options) ExtendedReference(ext ...bool) bool {
	ret := r.extended
	if len(ext) > 0 {
		r.extended = ext[0]
	}
	return ret
}
