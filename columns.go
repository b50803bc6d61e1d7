/*
 * columns.go, part of tcparse.
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
	"sort"
	"strings"
)

// Column names with a special meaning.
const (
	TemperatureColumn = "T"
	RegionColumn      = "region"
	KeyColumn         = "Tx100" //only used when dumping the table
)

const (
	molarPrefix    = "NP("
	massPrefix     = "BP("
	fractionPrefix = "X("
)

// ColumnKind tells what a column holds, as deduced from its name.
type ColumnKind int

const (
	Other           ColumnKind = iota
	Temperature                //T
	Region                     //region
	PhaseMolar                 //NP(phase): mol of phase per mol of system
	PhaseMass                  //BP(phase): g of phase per 100 g of system
	ElementFraction            //X(phase,element): mole fraction of element in phase
)

func (k ColumnKind) String() string {
	switch k {
	case Temperature:
		return "temperature"
	case Region:
		return "region"
	case PhaseMolar:
		return "phase molar fraction"
	case PhaseMass:
		return "phase mass fraction"
	case ElementFraction:
		return "element fraction"
	default:
		return "other"
	}
}

// ColumnInfo is the result of classifying a column name.
// Phase is set for PhaseMolar, PhaseMass and ElementFraction, Element
// only for ElementFraction.
type ColumnInfo struct {
	Kind    ColumnKind
	Phase   string
	Element string
}

// Classify deduces the kind of a column from its name.
func Classify(name string) ColumnInfo {
	switch {
	case name == TemperatureColumn:
		return ColumnInfo{Kind: Temperature}
	case name == RegionColumn:
		return ColumnInfo{Kind: Region}
	case strings.HasPrefix(name, molarPrefix) && strings.HasSuffix(name, ")"):
		return ColumnInfo{Kind: PhaseMolar, Phase: name[len(molarPrefix) : len(name)-1]}
	case strings.HasPrefix(name, massPrefix) && strings.HasSuffix(name, ")"):
		return ColumnInfo{Kind: PhaseMass, Phase: name[len(massPrefix) : len(name)-1]}
	case strings.HasPrefix(name, fractionPrefix) && strings.HasSuffix(name, ")"):
		inner := name[len(fractionPrefix) : len(name)-1]
		//Phase names can have commas, element symbols can't.
		i := strings.LastIndex(inner, ",")
		if i < 0 {
			return ColumnInfo{Kind: Other}
		}
		return ColumnInfo{Kind: ElementFraction, Phase: inner[:i], Element: inner[i+1:]}
	}
	return ColumnInfo{Kind: Other}
}

// MolarColumn returns the name of the molar fraction column of phase.
func MolarColumn(phase string) string { return molarPrefix + phase + ")" }

// MassColumn returns the name of the mass fraction (g/100g) column of phase.
func MassColumn(phase string) string { return massPrefix + phase + ")" }

// FractionColumn returns the name of the column with the mole fraction of element in phase.
func FractionColumn(phase, element string) string {
	return fractionPrefix + phase + "," + element + ")"
}

func hasKind(names []string, kind ColumnKind) bool {
	for _, v := range names {
		if Classify(v).Kind == kind {
			return true
		}
	}
	return false
}

// HasMolarColumns returns true if any of names is a phase molar fraction column.
func HasMolarColumns(names []string) bool { return hasKind(names, PhaseMolar) }

// HasMassColumns returns true if any of names is a phase mass fraction column.
func HasMassColumns(names []string) bool { return hasKind(names, PhaseMass) }

// ListPhases returns the phases in names, in order of appearance and without
// repetitions. Molar columns are used if there are any, mass columns otherwise.
func ListPhases(names []string) []string {
	kind := PhaseMass
	if HasMolarColumns(names) {
		kind = PhaseMolar
	}
	ret := make([]string, 0, 5)
	for _, v := range names {
		info := Classify(v)
		if info.Kind == kind && !isInString(ret, info.Phase) {
			ret = append(ret, info.Phase)
		}
	}
	return ret
}

// ListElements returns the elements that appear in the element fraction
// columns among names, sorted and without repetitions. The symbols are
// returned as written in the columns.
func ListElements(names []string) []string {
	ret := make([]string, 0, 5)
	for _, v := range names {
		info := Classify(v)
		if info.Kind == ElementFraction && !isInString(ret, info.Element) {
			ret = append(ret, info.Element)
		}
	}
	sort.Strings(ret)
	return ret
}
