/*
 * pretty.go, part of gosasa.
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


package tables

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	sasa "github.com/rmera/gosasa"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#45475A"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

var titles = map[string]string{
	LevelAtom:     "SASA per atom",
	LevelResidue:  "SASA per residue",
	LevelRelative: "Relative SASA per residue",
	LevelChain:    "SASA per chain",
}

// numeric columns are right-aligned.
func numeric(header string) bool {
	switch header {
	case "serial", "residue_num", "sasa", "ResNum", "Abs_SASA", "Rel_SASA":
		return true
	}
	return false
}

// Render returns the tables of rep selected by level, formatted for a terminal,
// followed by a summary. Areas are rounded to 2 decimals.
func Render(rep *sasa.Report, level string) (string, error) {
	sel, err := Selected(level)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, l := range sel {
		header, recs := records(rep, l, func(v float64) string { return fmt.Sprintf("%.2f", v) })
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers(header...).
			Rows(recs...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				if numeric(header[col]) {
					return numberStyle
				}
				return cellStyle
			})
		b.WriteString(titleStyle.Render(titles[l]))
		b.WriteString("\n")
		b.WriteString(t.Render())
		b.WriteString("\n\n")
	}
	if exp := rep.Exposure(); exp.Total() > 0 && containsLevel(sel, LevelRelative) {
		exp.Normalize()
		pct := exp.Copy()
		row := make([]string, len(pct))
		for i, v := range pct {
			row[i] = fmt.Sprintf("%.1f%%", 100*v)
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			Headers(exp.Labels()...).
			Row(row...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return numberStyle
			})
		b.WriteString(titleStyle.Render("Residues by relative SASA"))
		b.WriteString("\n")
		b.WriteString(t.Render())
		b.WriteString("\n\n")
	}
	s := rep.Summary()
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d atoms, %d residues (%d with reference), %d chains. Total SASA %.2f A^2. Relative SASA %.3f +/- %.3f (%s)",
		s.Atoms, s.Residues, s.WithRelative, s.Chains, s.Total, s.MeanRelative, s.StdRelative, rep.Reference())))
	b.WriteString("\n")
	return b.String(), nil
}

// WriteTable writes Render(rep, level) to w.
func WriteTable(w io.Writer, rep *sasa.Report, level string) error {
	s, err := Render(rep, level)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}

func containsLevel(sel []string, level string) bool {
	for _, l := range sel {
		if l == level {
			return true
		}
	}
	return false
}
