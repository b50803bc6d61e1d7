/*
 * atomicdata.go, part of tcparse.
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
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AtomicMasses maps element symbols (as returned by Symbol) to
// atomic masses in g/mol. Tables handed to an Engine are only read.
type AtomicMasses map[string]float64

// Mass returns the atomic mass for el. el can be given in any case,
// Thermo-Calc writes symbols in capitals ("FE").
func (A AtomicMasses) Mass(el string) (float64, error) {
	m, ok := A[Symbol(el)]
	if !ok {
		return 0, &UnitConversionError{symbol: el, deco: []string{"AtomicMasses.Mass"}}
	}
	return m, nil
}

// Symbol returns el as a chemical symbol: first letter upper case,
// the rest lower case. "FE" and "fe" both give "Fe".
func Symbol(el string) string {
	//Casers keep state, so each call gets its own.
	return cases.Title(language.Und).String(strings.TrimSpace(el))
}

// StandardMasses returns the standard atomic weights for the whole periodic table.
// For elements without stable isotopes the mass number of the longest-lived
// isotope is used. The returned map is shared, do not modify it.
func StandardMasses() AtomicMasses {
	return standardMasses
}

var standardMasses = AtomicMasses{
	"H":  1.00794,
	"He": 4.002602,
	"Li": 6.941,
	"Be": 9.012182,
	"B":  10.811,
	"C":  12.0107,
	"N":  14.0067,
	"O":  15.9994,
	"F":  18.9984032,
	"Ne": 20.1797,
	"Na": 22.98977,
	"Mg": 24.305,
	"Al": 26.981538,
	"Si": 28.0855,
	"P":  30.973761,
	"S":  32.065,
	"Cl": 35.453,
	"Ar": 39.948,
	"K":  39.0983,
	"Ca": 40.078,
	"Sc": 44.95591,
	"Ti": 47.867,
	"V":  50.9415,
	"Cr": 51.9961,
	"Mn": 54.938049,
	"Fe": 55.845,
	"Co": 58.9332,
	"Ni": 58.6934,
	"Cu": 63.546,
	"Zn": 65.409,
	"Ga": 69.723,
	"Ge": 72.64,
	"As": 74.9216,
	"Se": 78.96,
	"Br": 79.904,
	"Kr": 83.798,
	"Rb": 85.4678,
	"Sr": 87.62,
	"Y":  88.90585,
	"Zr": 91.224,
	"Nb": 92.90638,
	"Mo": 95.94,
	"Tc": 98,
	"Ru": 101.07,
	"Rh": 102.9055,
	"Pd": 106.42,
	"Ag": 107.8682,
	"Cd": 112.411,
	"In": 114.818,
	"Sn": 118.71,
	"Sb": 121.76,
	"Te": 127.6,
	"I":  126.90447,
	"Xe": 131.293,
	"Cs": 132.90545,
	"Ba": 137.327,
	"La": 138.9055,
	"Ce": 140.116,
	"Pr": 140.90765,
	"Nd": 144.24,
	"Pm": 145,
	"Sm": 150.36,
	"Eu": 151.964,
	"Gd": 157.25,
	"Tb": 158.92534,
	"Dy": 162.5,
	"Ho": 164.93032,
	"Er": 167.259,
	"Tm": 168.93421,
	"Yb": 173.04,
	"Lu": 174.967,
	"Hf": 178.49,
	"Ta": 180.9479,
	"W":  183.84,
	"Re": 186.207,
	"Os": 190.23,
	"Ir": 192.217,
	"Pt": 195.078,
	"Au": 196.96655,
	"Hg": 200.59,
	"Tl": 204.3833,
	"Pb": 207.2,
	"Bi": 208.98038,
	"Po": 209,
	"At": 210,
	"Rn": 222,
	"Fr": 223,
	"Ra": 226,
	"Ac": 227,
	"Th": 232.0381,
	"Pa": 231.03588,
	"U":  238.02891,
	"Np": 237,
	"Pu": 244,
	"Am": 243,
	"Cm": 247,
	"Bk": 247,
	"Cf": 251,
	"Es": 252,
	"Fm": 257,
	"Md": 258,
	"No": 259,
	"Lr": 262,
	"Rf": 261,
	"Db": 262,
	"Sg": 266,
	"Bh": 264,
	"Hs": 277,
	"Mt": 268,
	"Ds": 281,
	"Rg": 272,
	"Cn": 285,
	"Nh": 284,
	"Fl": 289,
	"Mc": 288,
	"Lv": 292,
	"Ts": 294,
	"Og": 294,
}
