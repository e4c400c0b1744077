/*
 * doc.go, part of gosasa.
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
Package sasa computes Solvent-Accessible Surface Areas (SASA) for macromolecular
structures, using the Shrake-Rupley algorithm.

	**gosasa capabilities**

    Selects the atoms that take part in the calculation: hydrogens are dropped,
	only one conformer is kept for atoms with alternate locations and, unless
	requested, HETATM records are ignored.

    Computes per-atom areas by sampling a fixed, deterministic set of test points
	on the sphere of radius (vdW radius + probe radius) of each atom. Points
	buried inside the expanded sphere of any other atom are not accessible.
	The neighbors of each atom are obtained from a uniform cell list, and atoms
	are processed concurrently.

    Sums atom areas into residue and chain areas, and normalizes residue areas
	by the maximum accessible area of the residue type (relative SASA).

    Builds atom, residue and chain tables from the results.

All results for a given input and set of options are reproducible bit by bit,
regardless of the number of goroutines used. A failed calculation never produces
tables.
*/
package sasa
