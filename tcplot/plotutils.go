/*
 * plotutils.go, part of tcparse
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

package tcplot

//Some internal convenience functions.

import (
	"image/color"
	"math"

	"github.com/rmera/tcparse"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	if s == 0.0 {
		return uint8(maxcolor * v), uint8(maxcolor * v), uint8(maxcolor * v)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * maxcolor), uint8(g * maxcolor), uint8(b * maxcolor)
}

// lineColor returns the color for the key-th of steps lines. The hues are
// spread from red to violet, skipping the yellows, which are hard to see on white.
func lineColor(key, steps int) color.Color {
	if steps < 1 {
		steps = 1
	}
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	r, g, b := iHVS2RGB(h, 0.9, 1.0)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// temperatures returns the T column of t, or the temperatures recovered
// from the keys if the table has no T column.
func temperatures(t *tcparse.Table) []float64 {
	if T, ok := t.Col(tcparse.TemperatureColumn); ok {
		return T
	}
	keys := t.Keys()
	ret := make([]float64, len(keys))
	for i, v := range keys {
		ret[i] = float64(v) / 100.0
	}
	return ret
}

// positive returns the (x,y) pairs where y is a positive number, the only
// ones that can go in a log scale.
func positive(x, y []float64) plotter.XYs {
	ret := make(plotter.XYs, 0, len(y))
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || math.IsNaN(x[i]) {
			continue
		}
		ret = append(ret, plotter.XY{X: x[i], Y: v})
	}
	return ret
}

// basicPlot returns a plot with temperature, decreasing, in the x axis and
// a log-scale y axis.
func basicPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "T[C]"
	p.Y.Label.Text = ylabel
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}
