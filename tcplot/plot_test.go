/*
 * plot_test.go
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package tcplot

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/tcparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

func sample(t *testing.T) *tcparse.Table {
	t.Helper()
	T, err := tcparse.ParseFile("../test/sample.txt")
	require.NoError(t, err)
	return T
}

func TestAll(t *testing.T) {
	T := sample(t)
	base := filepath.Join(t.TempDir(), "sample")
	written, err := All(T, base)
	require.NoError(t, err)
	assert.Equal(t, []string{
		base + "_comp.png",
		base + "_phasecomp_LIQUID.png",
		base + "_phasecomp_FCC_A1.png",
	}, written)
	for _, v := range written {
		info, err := os.Stat(v)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestPhaseSolubilityMissing(t *testing.T) {
	T := sample(t)
	err := PhaseSolubility(T, "BCC_A2", filepath.Join(t.TempDir(), "bcc.png"))
	var merr *tcparse.MissingColumnError
	require.True(t, errors.As(err, &merr), "got %v", err)
	assert.Equal(t, "X(BCC_A2,CR)", merr.Column())
}

func TestNoData(t *testing.T) {
	nan := math.NaN()
	T := tcparse.NewTable([]int{80000, 90000})
	require.NoError(t, T.SetColumn("NP(A)", []float64{0, nan}))
	require.NoError(t, T.SetColumn("X(A,FE)", []float64{nan, nan}))
	dir := t.TempDir()
	assert.ErrorIs(t, PhaseAmounts(T, filepath.Join(dir, "a.png")), ErrNoData)
	assert.ErrorIs(t, PhaseSolubility(T, "A", filepath.Join(dir, "b.png")), ErrNoData)
	written, err := All(T, filepath.Join(dir, "c"))
	require.NoError(t, err)
	assert.Empty(t, written)
	_, err = os.Stat(filepath.Join(dir, "a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestPositive(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{0.5, 0, math.NaN(), -1, 2}
	pts := positive(x, y)
	require.Len(t, pts, 2)
	assert.Equal(t, 1.0, pts[0].X)
	assert.Equal(t, 5.0, pts[1].X)
}

func TestTemperaturesFromKeys(t *testing.T) {
	T, err := tcparse.ParseFile("../test/sample.txt", tcparse.KeepTemperature(false))
	require.NoError(t, err)
	assert.Equal(t, []float64{700, 800, 900, 1000}, temperatures(T))
}

func TestBasicPlot(t *testing.T) {
	p := basicPlot("Phases", "NP(phase)")
	assert.Equal(t, 3*vg.Millimeter, p.Title.Padding)
	assert.Equal(t, "T[C]", p.X.Label.Text)
	assert.IsType(t, plot.InvertedScale{}, p.X.Scale)
	assert.IsType(t, plot.LogScale{}, p.Y.Scale)
}
