/*
 * pdb.go, part of gosasa.
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


package pdb

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	sasa "github.com/rmera/gosasa"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// zstd.Decoder's Close doesn't return an error, so it is not an io.ReadCloser.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

type fileCloser struct {
	io.Reader
	closers []io.Closer
}

func (f *fileCloser) Close() error {
	var err error
	for _, c := range f.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// NewReader opens the file name for reading. Files compressed with gzip
// or zstd are decompressed on the fly. The compression is detected from the
// first bytes of the file, not from its extension.
func NewReader(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, Error{err.Error(), name, 0, []string{"NewReader"}, true}
	}
	b := bufio.NewReader(f)
	head, _ := b.Peek(4) //shorter files just have no magic number.
	var r io.ReadCloser
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		d, err := zstd.NewReader(b)
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), name, 0, []string{"NewReader"}, true}
		}
		r = zstdCloser{d}
	case bytes.HasPrefix(head, gzipMagic):
		g, err := gzip.NewReader(b)
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), name, 0, []string{"NewReader"}, true}
		}
		r = g
	default:
		return &fileCloser{b, []io.Closer{f}}, nil
	}
	return &fileCloser{r, []io.Closer{r, f}}, nil
}

// Open reads the atoms in the first model of the PDB file name, which can be
// compressed (see NewReader).
func Open(name string) ([]*sasa.Atom, error) {
	r, err := NewReader(name)
	if err != nil {
		return nil, errDecorate(err, "Open")
	}
	defer r.Close()
	atoms, err := Read(r)
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = name
			err = e
		}
		return nil, errDecorate(err, "Open")
	}
	return atoms, nil
}

// ReadFile reads the file name once and returns both its atoms and the census
// of the atoms that should take part in a calculation with the options o.
func ReadFile(name string, o *sasa.Options) ([]*sasa.Atom, int, error) {
	r, err := NewReader(name)
	if err != nil {
		return nil, 0, errDecorate(err, "ReadFile")
	}
	data, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return nil, 0, Error{err.Error(), name, 0, []string{"ReadFile"}, true}
	}
	atoms, err := Read(bytes.NewReader(data))
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = name
			err = e
		}
		return nil, 0, errDecorate(err, "ReadFile")
	}
	n, err := Census(bytes.NewReader(data), o)
	if err != nil {
		return nil, 0, errDecorate(err, "ReadFile")
	}
	return atoms, n, nil
}

// Read parses the ATOM and HETATM records of the first model in a PDB
// stream. Reading stops at the first ENDMDL. The element is taken from
// columns 77-78 or, if those are empty, guessed from the atom name. The
// van der Waals radius is assigned from the element, and it is 0 for
// unknown elements.
func Read(r io.Reader) ([]*sasa.Atom, error) {
	var atoms []*sasa.Atom
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 1024), 1024*1024)
	nline := 0
	for s.Scan() {
		nline++
		line := s.Text()
		if strings.HasPrefix(line, "ENDMDL") {
			break
		}
		if !isAtomRecord(line) {
			continue
		}
		at, err := parseAtom(line)
		if err != nil {
			return nil, Error{err.Error(), "", nline, []string{"Read"}, true}
		}
		atoms = append(atoms, at)
	}
	if err := s.Err(); err != nil {
		return nil, Error{err.Error(), "", nline, []string{"Read"}, true}
	}
	return atoms, nil
}

func isAtomRecord(line string) bool {
	return strings.HasPrefix(line, "ATOM  ") || strings.HasPrefix(line, "HETATM")
}

// field returns the columns from, to (1-based, inclusive) of line,
// or the part of them present if the line is short.
func field(line string, from, to int) string {
	if len(line) < from {
		return ""
	}
	if len(line) < to {
		to = len(line)
	}
	return line[from-1 : to]
}

func parseAtom(line string) (*sasa.Atom, error) {
	if len(line) < 54 {
		return nil, fmt.Errorf("atom record too short (%d columns)", len(line))
	}
	at := new(sasa.Atom)
	var err error
	at.Het = strings.HasPrefix(line, "HETATM")
	if at.ID, err = strconv.Atoi(strings.TrimSpace(field(line, 7, 11))); err != nil {
		return nil, fmt.Errorf("serial number: %w", err)
	}
	at.Name = strings.TrimSpace(field(line, 13, 16))
	at.AltLoc = strings.TrimSpace(field(line, 17, 17))
	at.MolName = strings.TrimSpace(field(line, 18, 20))
	at.Chain = strings.TrimSpace(field(line, 22, 22))
	if at.MolID, err = strconv.Atoi(strings.TrimSpace(field(line, 23, 26))); err != nil {
		return nil, fmt.Errorf("residue number: %w", err)
	}
	at.ICode = strings.TrimSpace(field(line, 27, 27))
	for i, cols := range [3][2]int{{31, 38}, {39, 46}, {47, 54}} {
		at.Coords[i], err = strconv.ParseFloat(strings.TrimSpace(field(line, cols[0], cols[1])), 64)
		if err != nil {
			return nil, fmt.Errorf("coordinate %d of atom %d: %w", i, at.ID, err)
		}
	}
	at.Symbol = element(line)
	if r, ok := sasa.VdwRadius(at.Symbol); ok {
		at.Vdw = r
	}
	return at, nil
}

func element(line string) string {
	sym := sasa.NormalizeSymbol(field(line, 77, 78))
	if sym == "" {
		sym = sasa.SymbolFromName(strings.TrimSpace(field(line, 13, 16)))
	}
	return sym
}

// Census counts the atom records in the first model of a PDB stream that
// take part in a calculation with the options o. It works on the text of
// the records and doesn't build atoms, so it can be used to check the
// atom selection done by sasa.Filter.
func Census(r io.Reader, o *sasa.Options) (int, error) {
	if o == nil {
		o = sasa.DefaultOptions()
	}
	primary := o.AltLocPrimary()
	n := 0
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 1024), 1024*1024)
	for s.Scan() {
		line := s.Text()
		if strings.HasPrefix(line, "ENDMDL") {
			break
		}
		switch {
		case strings.HasPrefix(line, "ATOM  "):
		case strings.HasPrefix(line, "HETATM"):
			if !o.HetAtoms() {
				continue
			}
		default:
			continue
		}
		if strings.EqualFold(element(line), "H") {
			continue
		}
		if alt := field(line, 17, 17); alt != " " && alt != "" && alt != primary {
			continue
		}
		n++
	}
	if err := s.Err(); err != nil {
		return 0, Error{err.Error(), "", 0, []string{"Census"}, true}
	}
	return n, nil
}

// Error is the error type returned by the pdb package.
type Error struct {
	message  string
	filename string
	line     int
	deco     []string
	critical bool
}

func (err Error) Error() string {
	var loc string
	if err.filename != "" {
		loc = err.filename
	}
	if err.line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, err.line)
	}
	if loc == "" {
		return err.message
	}
	return fmt.Sprintf("%s: %s", loc, err.message)
}

// FileName returns the name of the file where the error happened, if known.
func (err Error) FileName() string { return err.filename }

// Line returns the line where the error happened, or 0.
func (err Error) Line() int { return err.line }

func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

func (err Error) Critical() bool { return err.critical }

func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.deco = e.Decorate(caller)
		return e
	}
	return err
}
