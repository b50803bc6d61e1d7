/*
 * errors.go, part of tcparse.
 *
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
 *
 */

package tcparse

import (
	"errors"
	"fmt"
)

// errDecorate adds caller to the decoration of err, if err implements Error,
// and returns err. Other errors are returned untouched.
func errDecorate(err error, caller string) error {
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// MalformedInputError is returned when a Thermo-Calc file can't be parsed: no phase regions,
// a region without a column header, or a data row that can't be read.
// No partial table is returned along with it.
type MalformedInputError struct {
	message  string
	filename string //empty if the data didn't come from a file
	region   int    //1-based, 0 if the problem is not in a particular region
	line     int    //line within the region, 1-based, 0 if unknown
	err      error
	deco     []string
}

func (err *MalformedInputError) Error() string {
	where := ""
	if err.filename != "" {
		where = " " + err.filename
	}
	if err.region > 0 {
		where += fmt.Sprintf(" region %d", err.region)
	}
	if err.line > 0 {
		where += fmt.Sprintf(" line %d", err.line)
	}
	if err.err != nil {
		return fmt.Sprintf("malformed Thermo-Calc data%s: %s: %v", where, err.message, err.err)
	}
	return fmt.Sprintf("malformed Thermo-Calc data%s: %s", where, err.message)
}

func (err *MalformedInputError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

func (err *MalformedInputError) Unwrap() error { return err.err }

// FileName returns the file that failed to parse, or "".
func (err *MalformedInputError) FileName() string { return err.filename }

// Region returns the 1-based phase region where the problem was found, or 0.
func (err *MalformedInputError) Region() int { return err.region }

// MissingColumnError is returned when a phase/element column needed
// for a calculation is not in the table.
type MissingColumnError struct {
	column  string
	phase   string
	element string
	deco    []string
}

func (err *MissingColumnError) Error() string {
	return fmt.Sprintf("column %s not found (phase %q, element %q)", err.column, err.phase, err.element)
}

func (err *MissingColumnError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Column returns the name of the missing column.
func (err *MissingColumnError) Column() string { return err.column }

// UnitConversionError is returned when an element has no atomic mass in
// the table used for a molar/mass conversion.
type UnitConversionError struct {
	symbol string
	deco   []string
}

func (err *UnitConversionError) Error() string {
	return fmt.Sprintf("no atomic mass for element %q", err.symbol)
}

func (err *UnitConversionError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Symbol returns the element that couldn't be found.
func (err *UnitConversionError) Symbol() string { return err.symbol }
