/*
 * composition.go, part of tcparse.
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

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Direction of a unit conversion between phase amounts.
type Direction int

const (
	MolarToMass Direction = iota //NP(phase) columns to BP(phase)
	MassToMolar                  //BP(phase) columns to NP(phase)
)

func (d Direction) String() string {
	if d == MassToMolar {
		return "mass to molar"
	}
	return "molar to mass"
}

// Engine performs the composition calculations on tables and
// on plain element->amount maps, using its table of atomic masses.
type Engine struct {
	masses AtomicMasses
}

// NewEngine returns an Engine that uses masses. If masses is nil,
// StandardMasses() is used. The Engine never modifies masses.
func NewEngine(masses AtomicMasses) *Engine {
	if masses == nil {
		masses = StandardMasses()
	}
	return &Engine{masses: masses}
}

var defaultEngine = NewEngine(nil)

// Masses returns the atomic mass table of the engine.
func (E *Engine) Masses() AtomicMasses { return E.masses }

// massesFor looks up the mass of every element in elements.
func (E *Engine) massesFor(elements []string) (map[string]float64, error) {
	ret := make(map[string]float64, len(elements))
	for _, v := range elements {
		m, err := E.masses.Mass(v)
		if err != nil {
			return nil, err
		}
		ret[v] = m
	}
	return ret, nil
}

// phasesOf returns the phases with a column of the given kind, in order.
func phasesOf(T *Table, kind ColumnKind) []string {
	ret := make([]string, 0, 5)
	for _, c := range T.cols {
		if c.Kind == kind && !isInString(ret, c.Phase) {
			ret = append(ret, c.Phase)
		}
	}
	return ret
}

func (T *Table) fraction(phase, element string) (*Column, error) {
	name := FractionColumn(phase, element)
	c := T.Column(name)
	if c == nil {
		return nil, &MissingColumnError{column: name, phase: phase, element: element}
	}
	return c, nil
}

// CompleteUnits derives the phase amounts in one unit system from the other.
// With MolarToMass, for each phase the mass of one mole of phase is
// sum(X(phase,el)*M(el)), multiplied by NP(phase) and normalized so that the
// phases of each row add up to 100 g. MassToMolar divides BP(phase) by the
// same molar mass and normalizes the row to 1.
// A phase whose value is NaN in a row stays NaN, and counts as 0 for the
// normalization of that row.
// All atomic masses and columns are checked before anything is written, so
// on error the table is not modified.
func (E *Engine) CompleteUnits(T *Table, dir Direction) error {
	fromKind, from, to, total := PhaseMolar, MolarColumn, MassColumn, 100.0
	if dir == MassToMolar {
		fromKind, from, to, total = PhaseMass, MassColumn, MolarColumn, 1.0
	}
	phases := phasesOf(T, fromKind)
	elements := T.Elements()
	masses, err := E.massesFor(elements)
	if err != nil {
		return errDecorate(err, "CompleteUnits")
	}
	n := T.Len()
	converted := make([][]float64, len(phases))
	sum := make([]float64, n)
	for i, p := range phases {
		//The mass of 1 mol of the phase
		pmass := make([]float64, n)
		for _, el := range elements {
			x, err := T.fraction(p, el)
			if err != nil {
				return errDecorate(err, "CompleteUnits")
			}
			floats.AddScaled(pmass, masses[el], x.Data)
		}
		amount := T.Column(from(p)).Data
		vals := make([]float64, n)
		if dir == MolarToMass {
			floats.MulTo(vals, amount, pmass)
		} else {
			floats.DivTo(vals, amount, pmass)
		}
		for j, v := range vals {
			sum[j] += zeroIfNaN(v)
		}
		converted[i] = vals
	}
	for i, p := range phases {
		vals := converted[i]
		for j := range vals {
			vals[j] = vals[j] / sum[j] * total
		}
		T.column(to(p)).Data = vals
	}
	return nil
}

// spread returns max-min of f, NaN for an empty slice.
func spread(f []float64) float64 {
	if len(f) == 0 {
		return math.NaN()
	}
	return floats.Max(f) - floats.Min(f)
}

// Composition returns the average composition of the whole system, in mole fractions.
// For each row, the content of an element is the sum over phases of
// NP(phase)*X(phase,el), where NaN terms count as 0. The rows are then
// averaged, with no weights. If withRange is true, the max-min of the
// per-row content of each element is also returned, otherwise ranges is nil.
// If T has no molar columns they are derived from the mass ones first, which adds them to T.
func (E *Engine) Composition(T *Table, withRange bool) (comp, ranges map[string]float64, err error) {
	if !T.HasMolar() {
		if err := E.CompleteUnits(T, MassToMolar); err != nil {
			return nil, nil, errDecorate(err, "Composition")
		}
	}
	phases := phasesOf(T, PhaseMolar)
	comp = make(map[string]float64)
	if withRange {
		ranges = make(map[string]float64)
	}
	for _, el := range T.Elements() {
		content := make([]float64, T.Len())
		for _, p := range phases {
			np := T.Column(MolarColumn(p)).Data
			x, err := T.fraction(p, el)
			if err != nil {
				return nil, nil, errDecorate(err, "Composition")
			}
			for i := range content {
				content[i] += zeroIfNaN(np[i] * x.Data[i])
			}
		}
		comp[el] = stat.Mean(content, nil)
		if withRange {
			ranges[el] = spread(content)
		}
	}
	return comp, ranges, nil
}

// PhaseComposition returns the average mole fraction of each element in phase,
// and, if withRange is true, the max-min of each. NaN values are left out of
// both; an element with no values at all gets NaN.
// Note that this differs from Composition, where NaN terms count as zeros.
func (E *Engine) PhaseComposition(T *Table, phase string, withRange bool) (comp, ranges map[string]float64, err error) {
	comp = make(map[string]float64)
	if withRange {
		ranges = make(map[string]float64)
	}
	for _, el := range T.Elements() {
		x, err := T.fraction(phase, el)
		if err != nil {
			return nil, nil, errDecorate(err, "PhaseComposition")
		}
		vals := notNaN(x.Data)
		mean := math.NaN()
		if len(vals) > 0 {
			mean = stat.Mean(vals, nil)
		}
		comp[el] = mean
		if withRange {
			ranges[el] = spread(vals)
		}
	}
	return comp, ranges, nil
}

// sortedKeys returns the keys of m in order, so sums come out the same every time.
func sortedKeys(m map[string]float64) []string {
	ret := make([]string, 0, len(m))
	for k := range m {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// MolarToMass100g converts a composition given as element->moles into
// element->grams per 100 g of the whole.
func (E *Engine) MolarToMass100g(comp map[string]float64) (map[string]float64, error) {
	ret := make(map[string]float64, len(comp))
	total := 0.0
	for _, el := range sortedKeys(comp) {
		m, err := E.masses.Mass(el)
		if err != nil {
			return nil, errDecorate(err, "MolarToMass100g")
		}
		ret[el] = comp[el] * m
		total += ret[el]
	}
	for el, v := range ret {
		ret[el] = v / total * 100.0
	}
	return ret, nil
}

// Mass100gToMolar converts a composition given as element->grams
// into element->mole fractions, which add up to 1.
func (E *Engine) Mass100gToMolar(comp map[string]float64) (map[string]float64, error) {
	ret := make(map[string]float64, len(comp))
	total := 0.0
	for _, el := range sortedKeys(comp) {
		m, err := E.masses.Mass(el)
		if err != nil {
			return nil, errDecorate(err, "Mass100gToMolar")
		}
		ret[el] = comp[el] / m
		total += ret[el]
	}
	for el, v := range ret {
		ret[el] = v / total
	}
	return ret, nil
}

// CompleteUnits calls Engine.CompleteUnits with the standard atomic masses.
func CompleteUnits(T *Table, dir Direction) error {
	return defaultEngine.CompleteUnits(T, dir)
}

// Composition calls Engine.Composition with the standard atomic masses.
func Composition(T *Table, withRange bool) (comp, ranges map[string]float64, err error) {
	return defaultEngine.Composition(T, withRange)
}

// PhaseComposition calls Engine.PhaseComposition with the standard atomic masses.
func PhaseComposition(T *Table, phase string, withRange bool) (comp, ranges map[string]float64, err error) {
	return defaultEngine.PhaseComposition(T, phase, withRange)
}

// MolarToMass100g calls Engine.MolarToMass100g with the standard atomic masses.
func MolarToMass100g(comp map[string]float64) (map[string]float64, error) {
	return defaultEngine.MolarToMass100g(comp)
}

// Mass100gToMolar calls Engine.Mass100gToMolar with the standard atomic masses.
func Mass100gToMolar(comp map[string]float64) (map[string]float64, error) {
	return defaultEngine.Mass100gToMolar(comp)
}
