/*
 * interfaces.go, part of gosasa.
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
	"errors"
	"fmt"
	"strings"
)

// Atomer is the basic interface for a set of atoms.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice. Should panic if out of range.
	Atom(i int) *Atom

	Len() int
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the decoration slice resulting from the current call. If passed an empty string, it just returns the current value.
	Critical() bool
}

// CError is a generic error for the package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds dec to the decoration slice and returns the slice.
func (err CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// Critical always returns true.
func (err CError) Critical() bool { return true }

// FilterConsistencyError is returned when the set of atoms taking part in the
// calculation is not consistent: either the number of atoms differs from the one
// obtained independently (Expected), or two atoms share a serial number.
// Both cases would silently corrupt every aggregated value.
type FilterConsistencyError struct {
	Expected  int
	Got       int
	Duplicate bool //two atoms share a serial number
	Serial    int  //the repeated serial number, only meaningful if Duplicate is true.
	Message   string
	deco      []string
}

func (err *FilterConsistencyError) Error() string {
	if err.Duplicate {
		return fmt.Sprintf("filter consistency: %s (serial %d)", err.Message, err.Serial)
	}
	return fmt.Sprintf("filter consistency: %s: expected %d atoms, got %d", err.Message, err.Expected, err.Got)
}

// Decorate adds dec to the decoration slice and returns the slice.
func (err *FilterConsistencyError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical always returns true.
func (err *FilterConsistencyError) Critical() bool { return true }

// InvalidGeometryError is returned for non-finite coordinates, non-positive or
// non-finite radii and invalid calculation parameters (Serial is 0 in the last case).
type InvalidGeometryError struct {
	Serial  int
	Residue ResidueID
	Reason  string
	deco    []string
}

func (err *InvalidGeometryError) Error() string {
	if err.Serial == 0 && err.Residue.Chain == "" && err.Residue.Seq == 0 {
		return "invalid geometry: " + err.Reason
	}
	return fmt.Sprintf("invalid geometry: atom %d, residue %s: %s", err.Serial, err.Residue, err.Reason)
}

// Decorate adds dec to the decoration slice and returns the slice.
func (err *InvalidGeometryError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// Critical always returns true.
func (err *InvalidGeometryError) Critical() bool { return true }

// errDecorate is a helper function that decorates the error with the caller's name
// if it implements Error, and returns it. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case CError:
		e.deco = e.Decorate(caller)
		return e
	case Error:
		e.Decorate(caller)
		return e
	}
	return err
}

// Trace returns the chain of functions through which err was passed, if it
// implements Error, or an empty string.
func Trace(err error) string {
	var err2 Error
	if !errors.As(err, &err2) {
		return ""
	}
	return strings.Join(err2.Decorate(""), " <- ")
}
