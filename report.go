/*
 * report.go, part of gosasa.
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
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/rmera/gosasa/histo"
	"github.com/rmera/gosasa/logger"
)

// AtomRow is a line of the atom table.
type AtomRow struct {
	Serial      int     `json:"serial"`
	Chain       string  `json:"chain"`
	ResidueSeq  int     `json:"residue_num"`
	ICode       string  `json:"icode,omitempty"`
	ResidueType string  `json:"residue"`
	Name        string  `json:"atom_name"`
	Element     string  `json:"element"`
	SASA        float64 `json:"sasa"`
}

// ResidueRow is a line of the residue table. Relative is nil for residues
// without a reference value.
type ResidueRow struct {
	Chain       string   `json:"chain"`
	ResidueSeq  int      `json:"residue_num"`
	ICode       string   `json:"icode,omitempty"`
	ResidueType string   `json:"residue"`
	SASA        float64  `json:"abs_sasa"`
	Relative    *float64 `json:"rel_sasa,omitempty"`
}

// ChainRow is a line of the chain table.
type ChainRow struct {
	Chain string  `json:"chain"`
	SASA  float64 `json:"abs_sasa"`
}

// Report contains the atom, residue and chain tables of a calculation.
// Rows are sorted by the order in which chains were found, then residues, then atoms.
// A Report is never modified after being built, and all its methods return copies.
type Report struct {
	atoms     []AtomRow
	residues  []ResidueRow
	chains    []ChainRow
	reference string
}

// NewReport builds the tables from the atom set and its areas. The relative SASA
// of each residue is its absolute SASA divided by the reference maximum for its
// type. It is not clamped, so it can be larger than 1.
func NewReport(mol Atomer, a *Areas, ref ReferenceTable) *Report {
	R := &Report{reference: ref.Name()}
	R.atoms = make([]AtomRow, 0, mol.Len())
	R.residues = make([]ResidueRow, 0, len(a.Residues))
	R.chains = make([]ChainRow, 0, len(a.Chains))
	unknown := make(map[string]bool)
	for _, c := range a.Chains {
		R.chains = append(R.chains, ChainRow{Chain: c.Chain, SASA: c.SASA})
		for _, ri := range c.residues {
			res := a.Residues[ri]
			row := ResidueRow{Chain: res.ID.Chain, ResidueSeq: res.ID.Seq, ICode: strings.TrimSpace(res.ID.ICode), ResidueType: res.MolName, SASA: res.SASA}
			if maxasa, ok := ref.MaxASA(res.MolName); ok {
				rel := res.SASA / maxasa
				row.Relative = &rel
			} else if !unknown[res.MolName] {
				unknown[res.MolName] = true
				logger.Info("no reference area for residue type %q in table %s, no relative SASA", res.MolName, ref.Name())
			}
			R.residues = append(R.residues, row)
			//atoms in their original order.
			idx := res.Atoms()
			sort.Ints(idx)
			for _, i := range idx {
				at := mol.Atom(i)
				R.atoms = append(R.atoms, AtomRow{
					Serial:      at.ID,
					Chain:       at.Chain,
					ResidueSeq:  at.MolID,
					ICode:       strings.TrimSpace(at.ICode),
					ResidueType: at.MolName,
					Name:        at.Name,
					Element:     at.Symbol,
					SASA:        a.Atoms[i],
				})
			}
		}
	}
	return R
}

// Atoms returns the atom table.
func (R *Report) Atoms() []AtomRow {
	return append([]AtomRow(nil), R.atoms...)
}

// Residues returns the residue table, with all the residues.
func (R *Report) Residues() []ResidueRow {
	ret := make([]ResidueRow, len(R.residues))
	for i, r := range R.residues {
		ret[i] = r.copy()
	}
	return ret
}

// Relative returns the residue table, but only with the residues that have
// a relative SASA.
func (R *Report) Relative() []ResidueRow {
	ret := make([]ResidueRow, 0, len(R.residues))
	for _, r := range R.residues {
		if r.Relative != nil {
			ret = append(ret, r.copy())
		}
	}
	return ret
}

// Buried returns the residues with a relative SASA smaller than threshold
// (0.5 is a common choice). Glycines, which have no side chain, are not included.
func (R *Report) Buried(threshold float64) []ResidueRow {
	var ret []ResidueRow
	for _, r := range R.residues {
		if r.Relative != nil && *r.Relative < threshold && strings.ToUpper(r.ResidueType) != "GLY" {
			ret = append(ret, r.copy())
		}
	}
	return ret
}

// Chains returns the chain table.
func (R *Report) Chains() []ChainRow {
	return append([]ChainRow(nil), R.chains...)
}

// Reference returns the name of the reference table used for the relative SASA.
func (R *Report) Reference() string {
	return R.reference
}

func (r ResidueRow) copy() ResidueRow {
	if r.Relative != nil {
		v := *r.Relative
		r.Relative = &v
	}
	return r
}

// Summary contains global values for a report.
type Summary struct {
	Total        float64 `json:"total_sasa"`
	Atoms        int     `json:"atoms"`
	Residues     int     `json:"residues"`
	Chains       int     `json:"chains"`
	WithRelative int     `json:"with_relative"`
	MeanRelative float64 `json:"mean_relative"`
	StdRelative  float64 `json:"std_relative"`
}

// Summary returns the total area (the sum of the chain areas, in table order)
// and the mean and standard deviation of the relative SASA, over the residues
// that have one. The last two are 0 when there are no such residues.
func (R *Report) Summary() Summary {
	s := Summary{Atoms: len(R.atoms), Residues: len(R.residues), Chains: len(R.chains)}
	tot := make([]float64, len(R.chains))
	for i, c := range R.chains {
		tot[i] = c.SASA
	}
	s.Total = floats.Sum(tot)
	var rel []float64
	for _, r := range R.residues {
		if r.Relative != nil {
			rel = append(rel, *r.Relative)
		}
	}
	s.WithRelative = len(rel)
	switch len(rel) {
	case 0:
	case 1:
		s.MeanRelative = rel[0]
	default:
		s.MeanRelative, s.StdRelative = stat.MeanStdDev(rel, nil)
	}
	return s
}

// Exposure returns the histogram of the relative SASA of the residues that have one,
// with the bins in histo.ExposureDividers.
func (R *Report) Exposure() *histo.Data {
	rel := make([]float64, 0, len(R.residues))
	for _, r := range R.residues {
		if r.Relative != nil {
			rel = append(rel, *r.Relative)
		}
	}
	return histo.Exposure(rel)
}
