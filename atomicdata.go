/*
 * atomicdata.go, part of gosasa.
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
	"strings"
)

//A map for assigning van der Waals radii to elements
//Values from 10.1021/j100785a001 and 10.1021/jp8111556
//metal radii from 10.1023/A:1011625728803
//Note that just common "bio-elements" are present
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70,
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"Cr": 1.97,
	"Si": 2.10,
	"Be": 1.53,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
}

// NormalizeSymbol returns the element symbol with the usual capitalization
// ("SE" -> "Se"), without surrounding blanks.
func NormalizeSymbol(symbol string) string {
	s := strings.TrimSpace(symbol)
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// VdwRadius returns the van der Waals radius for the element symbol (case-insensitive),
// and false if the element is not in the table.
func VdwRadius(symbol string) (float64, bool) {
	r, ok := symbolVdwrad[NormalizeSymbol(symbol)]
	return r, ok
}

// IsHydrogen returns true if the symbol corresponds to hydrogen.
func IsHydrogen(symbol string) bool {
	return strings.EqualFold(strings.TrimSpace(symbol), "H")
}

// SymbolFromName tries to guess a chemical element symbol from a PDB atom name,
// for files where the element columns are empty. Mostly based on AMBER names.
// It only deals with some common bio-elements, and returns an empty string
// if the symbol can't be guessed.
func SymbolFromName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	//names starting with a digit, like 1HB, are hydrogens.
	if name[0] >= '0' && name[0] <= '9' {
		name = strings.TrimLeft(name, "0123456789")
		if name == "" {
			return ""
		}
		if name[0] == 'H' {
			return "H"
		}
	}
	switch {
	case len(name) == 4 || name[0] == 'H': //I thiiink only Hs can have 4-char names in amber.
		return "H"
	case name == "CU":
		return "Cu"
	case name == "CO":
		return "Co"
	case name == "CL":
		return "Cl"
	case name[0] == 'C': //Ca is not considered here
		return "C"
	case name == "NA":
		return "Na"
	case name[0] == 'N':
		return "N"
	case name[0] == 'O':
		return "O"
	case name[0] == 'P':
		return "P"
	case name == "SE":
		return "Se"
	case name[0] == 'S':
		return "S"
	case strings.HasPrefix(name, "ZN"):
		return "Zn"
	case strings.HasPrefix(name, "FE"):
		return "Fe"
	case strings.HasPrefix(name, "MG"):
		return "Mg"
	}
	return ""
}
