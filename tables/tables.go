/*
 * tables.go, part of gosasa.
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


// Package tables writes the results of a SASA calculation as CSV, JSON or
// terminal tables.
package tables

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	sasa "github.com/rmera/gosasa"
	"github.com/rmera/gosasa/histo"
)

// Output formats.
const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatTable = "table"
)

// Output levels. LevelAll selects every table.
const (
	LevelAtom     = "atom"
	LevelResidue  = "residue"
	LevelRelative = "relative"
	LevelChain    = "chain"
	LevelAll      = "all"
)

// Formats and Levels list the accepted values.
var (
	Formats = []string{FormatCSV, FormatJSON, FormatTable}
	Levels  = []string{LevelAtom, LevelResidue, LevelRelative, LevelChain, LevelAll}
)

// File names for each table.
const (
	AtomFile     = "sasa_per_atom"
	ResidueFile  = "sasa_per_residue"
	RelativeFile = "relsasa_per_residue"
	ChainFile    = "sasa_per_chain"
)

// Column headers of the CSV files.
var (
	AtomHeader     = []string{"serial", "chain", "residue_num", "residue", "atom_name", "element", "sasa"}
	ResidueHeader  = []string{"Chain", "ResName", "ResNum", "Abs_SASA"}
	RelativeHeader = []string{"Chain", "ResName", "ResNum", "Abs_SASA", "Rel_SASA"}
	ChainHeader    = []string{"Chain", "Abs_SASA"}
)

// Selected returns the levels that level stands for, in output order.
func Selected(level string) ([]string, error) {
	switch level {
	case LevelAll:
		return []string{LevelAtom, LevelResidue, LevelRelative, LevelChain}, nil
	case LevelAtom, LevelResidue, LevelRelative, LevelChain:
		return []string{level}, nil
	}
	return nil, fmt.Errorf("unknown output level %q, use one of %s", level, strings.Join(Levels, ", "))
}

// full precision, shortest representation.
func shortest(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func resnum(seq int, icode string) string {
	return strconv.Itoa(seq) + icode
}

func atomRecords(rows []sasa.AtomRow, ftoa func(float64) string) [][]string {
	ret := make([][]string, len(rows))
	for i, r := range rows {
		ret[i] = []string{strconv.Itoa(r.Serial), r.Chain, resnum(r.ResidueSeq, r.ICode), r.ResidueType, r.Name, r.Element, ftoa(r.SASA)}
	}
	return ret
}

func residueRecords(rows []sasa.ResidueRow, relative bool, ftoa func(float64) string) [][]string {
	ret := make([][]string, 0, len(rows))
	for _, r := range rows {
		rec := []string{r.Chain, r.ResidueType, resnum(r.ResidueSeq, r.ICode), ftoa(r.SASA)}
		if relative {
			if r.Relative == nil {
				continue
			}
			rec = append(rec, ftoa(*r.Relative))
		}
		ret = append(ret, rec)
	}
	return ret
}

func chainRecords(rows []sasa.ChainRow, ftoa func(float64) string) [][]string {
	ret := make([][]string, len(rows))
	for i, r := range rows {
		ret[i] = []string{r.Chain, ftoa(r.SASA)}
	}
	return ret
}

// records returns the header and the records for one level of rep, with
// areas formatted by ftoa.
func records(rep *sasa.Report, level string, ftoa func(float64) string) ([]string, [][]string) {
	switch level {
	case LevelAtom:
		return AtomHeader, atomRecords(rep.Atoms(), ftoa)
	case LevelResidue:
		return ResidueHeader, residueRecords(rep.Residues(), false, ftoa)
	case LevelRelative:
		return RelativeHeader, residueRecords(rep.Relative(), true, ftoa)
	case LevelChain:
		return ChainHeader, chainRecords(rep.Chains(), ftoa)
	}
	panic("tables: unknown level " + level)
}

// WriteCSV writes one level of rep as CSV.
func WriteCSV(w io.Writer, rep *sasa.Report, level string) error {
	if _, err := Selected(level); err != nil || level == LevelAll {
		return fmt.Errorf("WriteCSV: a single level is needed, got %q", level)
	}
	header, recs := records(rep, level, shortest)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(recs); err != nil {
		return fmt.Errorf("writing %s table: %w", level, err)
	}
	return nil
}

// Document is the JSON form of a report.
type Document struct {
	Reference string            `json:"reference_table"`
	Summary   sasa.Summary      `json:"summary"`
	Atoms     []sasa.AtomRow    `json:"atoms,omitempty"`
	Residues  []sasa.ResidueRow `json:"residues,omitempty"`
	Relative  []sasa.ResidueRow `json:"relative,omitempty"`
	Chains    []sasa.ChainRow   `json:"chains,omitempty"`
	Exposure  *histo.Data       `json:"exposure,omitempty"`
}

// NewDocument returns the JSON form of rep, with the tables selected by level.
func NewDocument(rep *sasa.Report, level string) (*Document, error) {
	sel, err := Selected(level)
	if err != nil {
		return nil, err
	}
	d := &Document{Reference: rep.Reference(), Summary: rep.Summary()}
	for _, l := range sel {
		switch l {
		case LevelAtom:
			d.Atoms = rep.Atoms()
		case LevelResidue:
			d.Residues = rep.Residues()
		case LevelRelative:
			d.Relative = rep.Relative()
			d.Exposure = rep.Exposure()
		case LevelChain:
			d.Chains = rep.Chains()
		}
	}
	return d, nil
}

// WriteJSON writes the tables of rep selected by level as an indented JSON document.
func WriteJSON(w io.Writer, rep *sasa.Report, level string) error {
	d, err := NewDocument(rep, level)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

// WriteDir writes the tables of rep selected by level to files in dir, in the
// given format, and returns the names of the files written. CSV output produces
// one file per table, JSON output a single sasa.json file. All the files are
// first written under temporary names, and only renamed once every one of them
// is complete, so a failed table leaves no tables behind.
func WriteDir(dir string, rep *sasa.Report, format, level string) ([]string, error) {
	sel, err := Selected(level)
	if err != nil {
		return nil, err
	}
	var files []outFile
	switch format {
	case FormatCSV:
		for _, l := range sel {
			files = append(files, outFile{filepath.Join(dir, fileName(l)+".csv"), func(w io.Writer) error { return WriteCSV(w, rep, l) }})
		}
	case FormatJSON:
		files = append(files, outFile{filepath.Join(dir, "sasa.json"), func(w io.Writer) error { return WriteJSON(w, rep, level) }})
	default:
		return nil, fmt.Errorf("format %q can't be written to files", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return writeFiles(files)
}

func fileName(level string) string {
	switch level {
	case LevelAtom:
		return AtomFile
	case LevelResidue:
		return ResidueFile
	case LevelRelative:
		return RelativeFile
	}
	return ChainFile
}

// outFile is a file to be written, and the function that writes its content.
type outFile struct {
	name  string
	write func(io.Writer) error
}

// writeFiles writes each file to a temporary file in the same directory,
// then renames them all. If any write fails, all temporary files are removed.
func writeFiles(files []outFile) ([]string, error) {
	tmps := make([]string, 0, len(files))
	clean := func() {
		for _, t := range tmps {
			os.Remove(t)
		}
	}
	for _, f := range files {
		tmp, err := writeTemp(f.name, f.write)
		if err != nil {
			clean()
			return nil, err
		}
		tmps = append(tmps, tmp)
	}
	names := make([]string, 0, len(files))
	for i, f := range files {
		if err := os.Rename(tmps[i], f.name); err != nil {
			tmps = tmps[i:]
			clean()
			return names, err
		}
		names = append(names, f.name)
	}
	return names, nil
}

func writeTemp(name string, write func(io.Writer) error) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return tmp, nil
}

// WriteResidueRows writes residue rows as CSV with the RelativeHeader columns.
// Rel_SASA is empty for residues without a reference value.
func WriteResidueRows(w io.Writer, rows []sasa.ResidueRow) error {
	cw := csv.NewWriter(w)
	cw.Write(RelativeHeader)
	for _, r := range rows {
		rel := ""
		if r.Relative != nil {
			rel = shortest(*r.Relative)
		}
		cw.Write([]string{r.Chain, r.ResidueType, resnum(r.ResidueSeq, r.ICode), shortest(r.SASA), rel})
	}
	cw.Flush()
	return cw.Error()
}

// WriteChainRows writes chain rows as CSV.
func WriteChainRows(w io.Writer, rows []sasa.ChainRow) error {
	cw := csv.NewWriter(w)
	cw.Write(ChainHeader)
	cw.WriteAll(chainRecords(rows, shortest))
	return cw.Error()
}
