/*
 * histo.go, part of gosasa.
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


// Package histo builds histograms of per-residue values, such as the
// distribution of relative SASA over the residues of a structure.
package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ExposureDividers are the default bin limits for relative SASA. The last
// bin collects the residues more exposed than their reference maximum.
var ExposureDividers = []float64{0, 0.05, 0.25, 0.5, 0.75, 1.0, math.Inf(1)}

// Data is a histogram. Values outside the range of the dividers are
// counted in Total but not in any bin.
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// NewData returns a new histogram from the dividers and rawdata given.
// rawdata can be nil, in which case an empty histogram is created.
// It panics if there are less than 2 dividers, or they are not sorted.
func NewData(dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("histo.NewData: at least 2 dividers, in increasing order, are needed")
	}
	d := new(Data)
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(rawdata)
	}
	return d
}

// Exposure returns the histogram of relative SASA values with ExposureDividers.
func Exposure(relative []float64) *Data {
	return NewData(ExposureDividers, relative)
}

// ReHisto replaces the content of the histogram with that of rawdata.
// rawdata is not modified.
func (D *Data) ReHisto(rawdata []float64) {
	D.normalized = false
	D.total = len(rawdata)
	data := append([]float64(nil), rawdata...)
	sort.Float64s(data)
	//stat.Histogram panics for values outside the dividers, so those are removed first.
	maxi := sort.SearchFloat64s(data, D.dividers[len(D.dividers)-1])
	data = data[:maxi]
	mini := sort.SearchFloat64s(data, D.dividers[0])
	data = data[mini:]
	D.histo = stat.Histogram(nil, D.dividers, data, nil)
}

// AddData adds the given points to the histogram.
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	for _, v := range point {
		for j := 0; j < len(D.dividers)-1; j++ {
			if D.dividers[j] <= v && v < D.dividers[j+1] {
				D.histo[j]++
				break
			}
		}
	}
	D.total += len(point)
	if norma {
		D.Normalize()
	}
}

// Total returns the number of points given to the histogram.
func (D *Data) Total() int {
	return D.total
}

// Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize divides each bin by the total number of points.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize reverts Normalize.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	if normalize {
		n = 1 / n
	}
	floats.Scale(n, D.histo)
	D.normalized = normalize
}

// Dividers returns a copy of the dividers of the histogram.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

// Copy returns a copy of the bins, in dest[0] if given and large enough.
func (D *Data) Copy(dest ...[]float64) []float64 {
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= len(D.histo) {
		d = dest[0][:len(D.histo)]
	} else {
		d = make([]float64, len(D.histo))
	}
	copy(d, D.histo)
	return d
}

// Sum returns the sum of all the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// Labels returns a label such as "0.25-0.50" for each bin.
func (D *Data) Labels() []string {
	ret := make([]string, len(D.histo))
	for i := range D.histo {
		if math.IsInf(D.dividers[i+1], 1) {
			ret[i] = fmt.Sprintf(">=%.2f", D.dividers[i])
			continue
		}
		ret[i] = fmt.Sprintf("%.2f-%.2f", D.dividers[i], D.dividers[i+1])
	}
	return ret
}

// String returns a two-line representation of the histogram: the bin
// labels and the bin values.
func (D *Data) String() string {
	l := D.Labels()
	h := make([]string, len(D.histo))
	for i, v := range D.histo {
		h[i] = fmt.Sprintf("%*s", len(l[i]), fmt.Sprintf("%.3g", v))
	}
	return strings.Join(l, " ") + "\n" + strings.Join(h, " ")
}

type bin struct {
	Label string   `json:"label"`
	Min   float64  `json:"min"`
	Max   *float64 `json:"max,omitempty"` //nil for an open bin.
	Value float64  `json:"value"`
}

// MarshalJSON encodes the histogram as a list of bins. JSON has no
// infinity, so an open last bin has no max.
func (D *Data) MarshalJSON() ([]byte, error) {
	l := D.Labels()
	bins := make([]bin, len(D.histo))
	for i, v := range D.histo {
		bins[i] = bin{Label: l[i], Min: D.dividers[i], Value: v}
		if m := D.dividers[i+1]; !math.IsInf(m, 1) {
			bins[i].Max = &m
		}
	}
	return json.Marshal(struct {
		Normalized bool  `json:"normalized"`
		Total      int   `json:"total"`
		Bins       []bin `json:"bins"`
	}{D.normalized, D.total, bins})
}
