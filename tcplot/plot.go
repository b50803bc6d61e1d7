/*
 * plot.go, part of tcparse
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

// Package tcplot draws the phase amounts and phase compositions of a
// tcparse.Table against temperature.
package tcplot

import (
	"errors"
	"fmt"

	"github.com/rmera/tcparse"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when there is no positive value to put in a plot.
var ErrNoData = errors.New("tcplot: nothing to plot")

// Size of the saved figures.
const (
	Width  = 10 * vg.Inch
	Height = 8 * vg.Inch
)

type series struct {
	name string
	pts  plotter.XYs
}

// draw adds one line per series to p, and saves it to filename.
// The format is given by the extension of filename.
func draw(p *plot.Plot, lines []series, filename string) error {
	n := 0
	for _, v := range lines {
		if len(v.pts) > 0 {
			n++
		}
	}
	if n == 0 {
		return ErrNoData
	}
	key := 0
	for _, v := range lines {
		if len(v.pts) == 0 {
			continue
		}
		l, err := plotter.NewLine(v.pts)
		if err != nil {
			return fmt.Errorf("line for %s: %w", v.name, err)
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = lineColor(key, n)
		p.Add(l)
		p.Legend.Add(v.name, l)
		key++
	}
	if err := p.Save(Width, Height, filename); err != nil {
		return fmt.Errorf("saving plot %s: %w", filename, err)
	}
	return nil
}

// PhaseAmounts plots NP(phase) against temperature for every phase in t, and
// saves the figure to filename. Only positive values are drawn. It returns
// ErrNoData if no phase has any.
func PhaseAmounts(t *tcparse.Table, filename string) error {
	if !t.HasMolar() {
		return fmt.Errorf("phase amounts: %w", ErrNoData)
	}
	temps := temperatures(t)
	p := basicPlot("Phase amounts", "NP(phase)")
	lines := make([]series, 0, 5)
	for _, ph := range t.Phases() {
		np, ok := t.Col(tcparse.MolarColumn(ph))
		if !ok {
			continue
		}
		lines = append(lines, series{name: ph, pts: positive(temps, np)})
	}
	return draw(p, lines, filename)
}

// PhaseSolubility plots the mole fraction of every element in phase against
// temperature and saves the figure to filename. It returns a *tcparse.MissingColumnError
// if an element has no column for the phase, and ErrNoData if nothing positive is left.
func PhaseSolubility(t *tcparse.Table, phase, filename string) error {
	if _, _, err := tcparse.PhaseComposition(t, phase, false); err != nil {
		return err
	}
	temps := temperatures(t)
	p := basicPlot("Composition of "+phase, "X("+phase+",element)")
	lines := make([]series, 0, 5)
	for _, el := range t.Elements() {
		x, _ := t.Col(tcparse.FractionColumn(phase, el))
		lines = append(lines, series{name: tcparse.Symbol(el), pts: positive(temps, x)})
	}
	return draw(p, lines, filename)
}

// All writes <base>_comp.png with the phase amounts, and one
// <base>_phasecomp_<phase>.png per phase with its composition.
// Plots with nothing to draw are skipped. It returns the names of the files written.
func All(t *tcparse.Table, base string) ([]string, error) {
	written := make([]string, 0, 1+len(t.Phases()))
	name := base + "_comp.png"
	err := PhaseAmounts(t, name)
	if err == nil {
		written = append(written, name)
	} else if !errors.Is(err, ErrNoData) {
		return written, err
	}
	for _, ph := range t.Phases() {
		name = base + "_phasecomp_" + ph + ".png"
		err = PhaseSolubility(t, ph, name)
		if errors.Is(err, ErrNoData) {
			continue
		}
		if err != nil {
			return written, err
		}
		written = append(written, name)
	}
	return written, nil
}
