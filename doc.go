/*
 * doc.go, part of tcparse.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package tcparse reads the text output of Thermo-Calc equilibrium calculations
into a table indexed by temperature, and computes compositions from it.

A Thermo-Calc file has one block per phase region:

	 Phase Region for:
	     LIQUID
	     FCC_A1
	 col-1=T, col-2=NP(LIQUID), col-3=NP(FCC_A1), col-4=X(LIQUID,FE), ...
	   1000.0  0.6  0.4  0.8 ...

Phase amounts are in NP(phase) columns (mol of phase per mol of system) or
BP(phase) columns (g of phase per 100 g of system). X(phase,element) columns
hold the mole fraction of each element in each phase.

	**tcparse Capabilities**

	Parses Thermo-Calc files, plain or compressed with zstd or gzip, merging
	the phase regions into one table sorted by temperature. Temperatures present in
	more than one region are resolved keeping the first, the last, or both rows.

	Derives BP columns from NP columns and vice versa, using atomic masses.

	Computes the average composition of the whole system, with ranges, and the
	average composition of each phase.

	Converts plain element->amount maps between mole fractions and g/100g.

The sub-packages plot the tables (tcplot), write them as CSV or XLSX
(tcexport) and print composition reports (report).
*/
package tcparse
