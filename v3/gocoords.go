/*
 * gocoords.go, part of gosasa.
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

package v3

import "math"

// Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	m, err := NewMatrix(f)
	if err != nil {
		panic(ErrShape)
	}
	return m
}

// FromVecs builds a new Matrix from a slice of 3D points.
func FromVecs(vecs [][3]float64) (*Matrix, error) {
	data := make([]float64, 0, 3*len(vecs))
	for _, v := range vecs {
		data = append(data, v[0], v[1], v[2])
	}
	m, err := NewMatrix(data)
	return m, errDecorate(err, "FromVecs")
}

// NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// RawVec returns the ith vector as a slice sharing the underlying
// storage of F.
func (F *Matrix) RawVec(i int) []float64 {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	raw := F.RawMatrix()
	return raw.Data[i*raw.Stride : i*raw.Stride+3]
}

// Data returns the coordinates of F as a flat slice, x0 y0 z0 x1 y1 z1...,
// sharing the underlying storage of F.
func (F *Matrix) Data() []float64 {
	raw := F.RawMatrix()
	if raw.Stride != 3 {
		panic(ErrShape)
	}
	return raw.Data[:3*raw.Rows]
}

// SetVec sets the ith vector of F to the first 3 elements of v.
func (F *Matrix) SetVec(i int, v []float64) {
	if len(v) < 3 {
		panic(ErrShape)
	}
	copy(F.RawVec(i), v[:3])
}

// Bounds returns the minimum and maximum values of each coordinate
// over all the vectors in F.
func (F *Matrix) Bounds() (min, max [3]float64) {
	for k := 0; k < 3; k++ {
		min[k] = math.Inf(1)
		max[k] = math.Inf(-1)
	}
	for i := 0; i < F.NVecs(); i++ {
		v := F.RawVec(i)
		for k := 0; k < 3; k++ {
			min[k] = math.Min(min[k], v[k])
			max[k] = math.Max(max[k], v[k])
		}
	}
	return min, max
}

// AllFinite returns -1 if all the elements of F are finite numbers,
// or the index of the first vector with a NaN or infinite element.
func (F *Matrix) AllFinite() int {
	for i := 0; i < F.NVecs(); i++ {
		for _, x := range F.RawVec(i) {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return i
			}
		}
	}
	return -1
}

// Dist2 returns the squared distance between the ith vector of F
// and the point p.
func (F *Matrix) Dist2(i int, p []float64) float64 {
	v := F.RawVec(i)
	dx := v[0] - p[0]
	dy := v[1] - p[1]
	dz := v[2] - p[2]
	return dx*dx + dy*dy + dz*dz
}
