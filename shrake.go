/*
 * shrake.go, part of gosasa.
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
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/rmera/gosasa/grid"
	"github.com/rmera/gosasa/logger"
	"github.com/rmera/gosasa/sphere"
	v3 "github.com/rmera/gosasa/v3"
)

// number of consecutive atoms given to a worker at a time.
const chunk = 32

// Engine holds what is shared by all the per-atom calculations for one
// set of atoms: the expanded radii, the cell list and the test points.
// It is read-only once built, and can be used from several goroutines.
type Engine struct {
	set    *AtomSet
	probe  float64
	radii  []float64 //vdw+probe
	index  *grid.Grid
	points *v3.Matrix
	xyz    []float64 //flat coordinates of the set
	unit   []float64 //flat test points
}

// NewEngine validates the geometry of set and builds the neighbor index for the given
// probe radius and number of test points. It returns an *InvalidGeometryError
// for non-finite coordinates, non-positive radii, a negative probe radius or
// less than one test point. The set must not be empty.
func NewEngine(set *AtomSet, probe float64, npoints int) (*Engine, error) {
	if math.IsNaN(probe) || math.IsInf(probe, 0) || probe < 0 {
		return nil, &InvalidGeometryError{Reason: fmt.Sprintf("invalid probe radius %v", probe), deco: []string{"NewEngine"}}
	}
	if npoints < 1 {
		return nil, &InvalidGeometryError{Reason: fmt.Sprintf("invalid number of test points %d", npoints), deco: []string{"NewEngine"}}
	}
	if set.Len() == 0 {
		return nil, CError{"empty atom set", []string{"NewEngine"}}
	}
	E := &Engine{set: set, probe: probe}
	E.radii = make([]float64, set.Len())
	for i := 0; i < set.Len(); i++ {
		a := set.Atom(i)
		if math.IsNaN(a.Vdw) || math.IsInf(a.Vdw, 0) || a.Vdw <= 0 {
			return nil, &InvalidGeometryError{Serial: a.ID, Residue: a.Residue(), Reason: fmt.Sprintf("invalid radius %v for element %q", a.Vdw, a.Symbol), deco: []string{"NewEngine"}}
		}
		for _, c := range a.Coords {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, &InvalidGeometryError{Serial: a.ID, Residue: a.Residue(), Reason: fmt.Sprintf("non-finite coordinates %v", a.Coords), deco: []string{"NewEngine"}}
			}
		}
		E.radii[i] = a.Vdw + probe
	}
	var err error
	E.index, err = grid.New(set.Coords(), E.radii)
	if err != nil {
		var gerr grid.Error
		if errors.As(err, &gerr) && gerr.Index >= 0 {
			a := set.Atom(gerr.Index)
			return nil, &InvalidGeometryError{Serial: a.ID, Residue: a.Residue(), Reason: err.Error(), deco: []string{"NewEngine"}}
		}
		return nil, &InvalidGeometryError{Reason: err.Error(), deco: []string{"NewEngine"}}
	}
	d := E.index.Cells()
	logger.Debug("grid: cell size %.3f A, %dx%dx%d cells", E.index.CellSize(), d[0], d[1], d[2])
	E.points = sphere.Points(npoints)
	E.xyz = set.Coords().Data()
	E.unit = E.points.Data()
	return E, nil
}

// AtomArea returns the accessible area of the ith atom of the set, in A^2.
// buf is used to store the neighbor list, and is returned so it can be reused
// in the next call. A test point is buried if it lies strictly inside the expanded
// sphere (vdw + probe) of another atom.
func (E *Engine) AtomArea(i int, buf []int) (float64, []int) {
	buf = E.index.Neighbors(i, buf[:0])
	R := E.radii[i]
	n := E.points.NVecs()
	full := 4 * math.Pi * R * R
	if len(buf) == 0 {
		return full, buf
	}
	xyz := E.xyz
	c := xyz[3*i : 3*i+3]
	exposed := 0
	last := 0 //the last neighbor that buried a point tends to bury the next one, too.
	for k := 0; k < n; k++ {
		u := E.unit[3*k : 3*k+3]
		px := c[0] + R*u[0]
		py := c[1] + R*u[1]
		pz := c[2] + R*u[2]
		buried := false
		for l := 0; l < len(buf); l++ {
			m := (last + l) % len(buf)
			j := buf[m]
			rj := E.radii[j]
			dx := xyz[3*j] - px
			dy := xyz[3*j+1] - py
			dz := xyz[3*j+2] - pz
			if dx*dx+dy*dy+dz*dz < rj*rj {
				buried = true
				last = m
				break
			}
		}
		if !buried {
			exposed++
		}
	}
	return full * float64(exposed) / float64(n), buf
}

// Calculate returns the accessible area of each atom in set, in the order of the set,
// using the probe radius and number of test points in o. The atoms are processed by
// o.Cpus() goroutines, each writing only the areas of the atoms it was given, so
// the results do not depend on the number of goroutines.
// If ctx is cancelled, or any atom fails, the whole calculation fails and no
// areas are returned.
func Calculate(ctx context.Context, set *AtomSet, o *Options) ([]float64, error) {
	if o == nil {
		o = DefaultOptions()
	}
	if set.Len() == 0 {
		return []float64{}, nil
	}
	E, err := NewEngine(set, o.Probe(), o.NPoints())
	if err != nil {
		return nil, errDecorate(err, "Calculate")
	}
	areas := make([]float64, set.Len())
	workers := o.Cpus()
	if nchunks := (set.Len() + chunk - 1) / chunk; workers > nchunks {
		workers = nchunks
	}
	logger.Debug("calculate: %d atoms, %d points, probe %.2f, %d workers", set.Len(), o.NPoints(), o.Probe(), workers)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	jobs := make(chan int)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf []int
			for start := range jobs {
				end := min(start+chunk, set.Len())
				for i := start; i < end; i++ {
					var a float64
					a, buf = E.AtomArea(i, buf)
					if math.IsNaN(a) || a < 0 {
						at := set.Atom(i)
						errs <- &InvalidGeometryError{Serial: at.ID, Residue: at.Residue(), Reason: fmt.Sprintf("invalid area %v", a), deco: []string{"Calculate"}}
						cancel()
						return
					}
					areas[i] = a
				}
			}
		}()
	}
feed:
	for start := 0; start < set.Len(); start += chunk {
		select {
		case jobs <- start:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	select {
	case err := <-errs:
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("calculation cancelled: %w", err)
	}
	return areas, nil
}
