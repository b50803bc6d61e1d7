/*
 * interfaces.go, part of tcparse.
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

// Columner is the read-only view of a table needed to dump it
// row by row. *Table implements it.
type Columner interface {

	//Len returns the number of rows.
	Len() int

	//Keys returns the temperature key (T*100, rounded) of each row.
	Keys() []int

	//Names returns the column names, in order.
	Names() []string

	//Col returns the values of the named column, and false if there is no such column.
	//The returned slice must not be modified.
	Col(name string) ([]float64, bool)
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate adds the name of a function in the calling stack, with any relevant info ("FunctionName: Extra info").
	//It returns the current decoration slice. An empty string adds nothing.
	Decorate(string) []string
}
