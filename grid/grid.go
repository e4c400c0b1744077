/*
 * grid.go, part of gosasa.
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

// Package grid implements a uniform cell list over a set of spheres,
// used to find the spheres that could overlap a given one without
// testing every pair.
//
// Each sphere is registered in the cubic cell containing its center. The cell
// edge is the largest sphere diameter, so any sphere overlapping a sphere no larger
// than the largest one has its center in the 3x3x3 block of cells around the
// query center. A Grid is immutable after New, and can be
// queried concurrently.
package grid

import (
	"fmt"
	"math"

	v3 "github.com/rmera/gosasa/v3"
)

// Grid is a cell list over a set of spheres.
type Grid struct {
	coords *v3.Matrix
	radii  []float64
	maxr   float64
	cell   float64
	origin [3]float64
	dims   [3]int
	start  []int //start[c]:start[c+1] is the range of atoms for cell c.
	atoms  []int
}

// If the bounding box of the structure would need more cells than this
// factor times the number of spheres, the cell edge is enlarged.
const maxCellsPerSphere = 8

const minCells = 4096

// New builds a Grid for the spheres with centers in coords and the given radii.
// The radii are the ones used for the overlap tests, i.e. for a solvent-accessible
// surface they must already include the probe radius.
func New(coords *v3.Matrix, radii []float64) (*Grid, error) {
	n := coords.NVecs()
	if len(radii) != n {
		return nil, Error{Index: -1, message: fmt.Sprintf("%d radii for %d spheres", len(radii), n), deco: []string{"New"}}
	}
	if i := coords.AllFinite(); i >= 0 {
		return nil, Error{Index: i, message: "non-finite coordinates", deco: []string{"New"}}
	}
	g := &Grid{coords: coords, radii: radii}
	for i, r := range radii {
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			return nil, Error{Index: i, message: fmt.Sprintf("invalid radius %v", r), deco: []string{"New"}}
		}
		g.maxr = math.Max(g.maxr, r)
	}
	min, max := coords.Bounds()
	var extent, dims [3]float64
	for k := 0; k < 3; k++ {
		extent[k] = max[k] - min[k]
		if math.IsInf(extent[k], 0) {
			return nil, Error{Index: -1, message: fmt.Sprintf("coordinate range along axis %d is too large", k), deco: []string{"New"}}
		}
	}
	g.origin = min
	g.cell = 2 * g.maxr
	limit := float64(maxCellsPerSphere * n)
	if limit < minCells {
		limit = minCells
	}
	//counted in floats, as the number of cells can overflow an int for far apart spheres.
	for {
		total := 1.0
		for k := 0; k < 3; k++ {
			dims[k] = math.Floor(extent[k]/g.cell) + 1
			total *= dims[k]
		}
		if total <= limit {
			break
		}
		g.cell *= math.Cbrt(total/limit) * 1.01
	}
	for k := 0; k < 3; k++ {
		g.dims[k] = int(dims[k])
	}
	g.build()
	return g, nil
}

// counting sort of the spheres into their cells.
func (g *Grid) build() {
	n := g.coords.NVecs()
	ncells := g.dims[0] * g.dims[1] * g.dims[2]
	incell := make([]int, n)
	g.start = make([]int, ncells+1)
	for i := 0; i < n; i++ {
		c := g.cellIndex(g.cellOf(g.coords.RawVec(i)))
		incell[i] = c
		g.start[c+1]++
	}
	for c := 0; c < ncells; c++ {
		g.start[c+1] += g.start[c]
	}
	fill := make([]int, ncells)
	copy(fill, g.start[:ncells])
	g.atoms = make([]int, n)
	for i, c := range incell {
		g.atoms[fill[c]] = i
		fill[c]++
	}
}

// cellOf returns the integer cell coordinates of p. They can be out
// of the grid if p is outside the bounding box of the spheres.
func (g *Grid) cellOf(p []float64) [3]int {
	var ret [3]int
	for k := 0; k < 3; k++ {
		//clamped to one cell past each side, so far away points don't overflow.
		c := math.Floor((p[k] - g.origin[k]) / g.cell)
		ret[k] = int(math.Max(-1, math.Min(c, float64(g.dims[k]))))
	}
	return ret
}

func (g *Grid) cellIndex(c [3]int) int {
	return (c[0]*g.dims[1]+c[1])*g.dims[2] + c[2]
}

// Len returns the number of spheres in the grid.
func (g *Grid) Len() int {
	return len(g.radii)
}

// CellSize returns the edge of the cubic cells.
func (g *Grid) CellSize() float64 {
	return g.cell
}

// MaxRadius returns the largest radius among the spheres.
func (g *Grid) MaxRadius() float64 {
	return g.maxr
}

// Cells returns the number of cells along each axis.
func (g *Grid) Cells() [3]int {
	return g.dims
}

// Query appends to dst the indexes of the spheres that overlap a sphere of radius r
// centered at center, i.e. those for which the distance between centers is strictly
// less than r plus their radius. The result is returned.
func (g *Grid) Query(center []float64, r float64, dst []int) []int {
	if len(g.radii) == 0 {
		return dst
	}
	span := int(math.Min(math.Ceil((r+g.maxr)/g.cell), float64(g.dims[0]+g.dims[1]+g.dims[2])))
	c := g.cellOf(center)
	var lo, hi [3]int
	for k := 0; k < 3; k++ {
		lo[k] = c[k] - span
		if lo[k] < 0 {
			lo[k] = 0
		}
		hi[k] = c[k] + span
		if hi[k] > g.dims[k]-1 {
			hi[k] = g.dims[k] - 1
		}
		if lo[k] > hi[k] {
			return dst
		}
	}
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				ci := g.cellIndex([3]int{x, y, z})
				for _, j := range g.atoms[g.start[ci]:g.start[ci+1]] {
					cut := r + g.radii[j]
					if g.coords.Dist2(j, center) < cut*cut {
						dst = append(dst, j)
					}
				}
			}
		}
	}
	return dst
}

// Neighbors appends to dst the indexes of the spheres overlapping the ith sphere,
// not including i itself, and returns the result.
func (g *Grid) Neighbors(i int, dst []int) []int {
	l := len(dst)
	dst = g.Query(g.coords.RawVec(i), g.radii[i], dst)
	for k := l; k < len(dst); k++ {
		if dst[k] == i {
			dst = append(dst[:k], dst[k+1:]...)
			break
		}
	}
	return dst
}

// Error is returned when the grid can't be built. Index is the
// offending sphere, or -1 if the problem is not related to a single one.
type Error struct {
	Index   int
	message string
	deco    []string
}

func (err Error) Error() string {
	if err.Index >= 0 {
		return fmt.Sprintf("grid: sphere %d: %s", err.Index, err.message)
	}
	return "grid: " + err.message
}

// Decorate adds dec to the decoration slice of the error and returns it.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical is always true for grid errors.
func (err Error) Critical() bool { return true }
