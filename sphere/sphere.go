/*
 * sphere.go, part of gosasa.
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

/*
Package sphere generates the deterministic sets of test points on the unit
sphere used by the Shrake-Rupley algorithm.

The construction is the golden-section spiral. For i = 0 ... n-1:

	z_i   = 1 - (2i+1)/n
	rho_i = sqrt(1 - z_i^2)
	phi_i = i * pi * (3 - sqrt(5))
	p_i   = (rho_i cos(phi_i), rho_i sin(phi_i), z_i)

No random numbers are involved, so for a given n the set is the same in every run
and every implementation that follows the formula above. Any change to the
construction must change Version.
*/
package sphere

import (
	"math"
	"sync"

	v3 "github.com/rmera/gosasa/v3"
)

// Version identifies the point construction. It is stored together with
// persisted results.
const Version = "golden-spiral/1"

var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// Points returns n unit vectors distributed over the sphere. It panics
// if n < 1. The returned matrix must not be modified, as it might be
// shared with other callers.
func Points(n int) *v3.Matrix {
	if n < 1 {
		panic("goSASA/sphere: at least one point is needed")
	}
	cache.Lock()
	defer cache.Unlock()
	if p, ok := cache.m[n]; ok {
		return p
	}
	p := spiral(n)
	cache.m[n] = p
	return p
}

var cache = struct {
	sync.Mutex
	m map[int]*v3.Matrix
}{m: make(map[int]*v3.Matrix)}

func spiral(n int) *v3.Matrix {
	ret := v3.Zeros(n)
	fn := float64(n)
	p := make([]float64, 3)
	for i := 0; i < n; i++ {
		fi := float64(i)
		z := 1 - (2*fi+1)/fn
		rho := math.Sqrt(1 - z*z)
		phi := fi * goldenAngle
		p[0] = rho * math.Cos(phi)
		p[1] = rho * math.Sin(phi)
		p[2] = z
		ret.SetVec(i, p)
	}
	return ret
}
