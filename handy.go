/*
 * handy.go, part of tcparse.
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

package tcparse

import "math"

// Some internal convenience functions.

// isInString returns true if test is in container, false otherwise.
func isInString(container []string, test string) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}

// zeroIfNaN returns 0 for NaN, f otherwise.
func zeroIfNaN(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}

// nanSlice returns a slice of length n filled with NaNs.
func nanSlice(n int) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = math.NaN()
	}
	return ret
}

// notNaN returns the non-NaN values of f, in a new slice.
func notNaN(f []float64) []float64 {
	ret := make([]float64, 0, len(f))
	for _, v := range f {
		if !math.IsNaN(v) {
			ret = append(ret, v)
		}
	}
	return ret
}
