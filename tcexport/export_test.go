/*
 * export_test.go, part of tcparse.
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

package tcexport

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/tcparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample(t *testing.T) *tcparse.Table {
	t.Helper()
	T, err := tcparse.ParseFile("../test/sample.txt")
	require.NoError(t, err)
	return T
}

func readCSV(t *testing.T, r io.Reader, sep rune) [][]string {
	t.Helper()
	cr := csv.NewReader(r)
	cr.Comma = sep
	recs, err := cr.ReadAll()
	require.NoError(t, err)
	return recs
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(math.NaN()))
	assert.Equal(t, "0.4", FormatValue(0.4))
	assert.Equal(t, "900", FormatValue(900))
	assert.Equal(t, "-1.5e-07", FormatValue(-1.5e-7))
}

func TestWriteCSV(t *testing.T) {
	T := sample(t)
	name := filepath.Join(t.TempDir(), "sample_out.csv")
	require.NoError(t, WriteCSV(T, name, DefaultSeparator))
	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	recs := readCSV(t, f, ',')
	require.Len(t, recs, T.Len()+1)
	assert.Equal(t, []string{"Tx100", "region", "T", "NP(LIQUID)"}, recs[0][:4])
	//first row is 700 K, from region 2, without liquid composition
	assert.Equal(t, []string{"70000", "2", "700", "0"}, recs[1][:4])
	idx := -1
	for i, v := range recs[0] {
		if v == "X(LIQUID,CR)" {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	assert.Equal(t, "", recs[1][idx])
	assert.Equal(t, "0.4", recs[2][idx])
	//no temporary files left behind
	entries, err := os.ReadDir(filepath.Dir(name))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteCSVTabs(t *testing.T) {
	T := sample(t)
	var buf bytes.Buffer
	require.NoError(t, WriteCSVTo(&buf, T, '\t'))
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.True(t, strings.HasPrefix(first, "Tx100\tregion\tT\t"), first)
	recs := readCSV(t, &buf, '\t')
	assert.Len(t, recs, T.Len()+1)
}

func TestWriteCSVCompressed(t *testing.T) {
	T := sample(t)
	dir := t.TempDir()
	var plain bytes.Buffer
	require.NoError(t, WriteCSVTo(&plain, T, ','))

	zname := filepath.Join(dir, "out.csv.zst")
	require.NoError(t, WriteCSV(T, zname, ','))
	zf, err := os.Open(zname)
	require.NoError(t, err)
	defer zf.Close()
	zr, err := zstd.NewReader(zf)
	require.NoError(t, err)
	defer zr.Close()
	zdata, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, plain.String(), string(zdata))

	gname := filepath.Join(dir, "out.csv.gz")
	require.NoError(t, WriteCSV(T, gname, ','))
	gf, err := os.Open(gname)
	require.NoError(t, err)
	defer gf.Close()
	gr, err := gzip.NewReader(gf)
	require.NoError(t, err)
	gdata, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Equal(t, plain.String(), string(gdata))
}

func TestWriteCSVBadDirectory(t *testing.T) {
	T := sample(t)
	name := filepath.Join(t.TempDir(), "missing", "out.csv")
	assert.Error(t, WriteCSV(T, name, ','))
	_, err := os.Stat(name)
	assert.True(t, os.IsNotExist(err))
}

func TestExportXLSX(t *testing.T) {
	T := sample(t)
	name := filepath.Join(t.TempDir(), "sample.xlsx")
	require.NoError(t, Export(T, name, ','))
	f, err := excelize.OpenFile(name)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, T.Len()+1)
	assert.Equal(t, Header(T), rows[0])
	assert.Equal(t, []string{"70000", "2", "700", "0"}, rows[1][:4])
	v, err := f.GetCellValue(SheetName, "A5")
	require.NoError(t, err)
	assert.Equal(t, "100000", v)
}

func TestIsXLSX(t *testing.T) {
	assert.True(t, IsXLSX("a/b.xlsx"))
	assert.True(t, IsXLSX("B.XLSX"))
	assert.False(t, IsXLSX("b.csv"))
	assert.False(t, IsXLSX("b.xlsx.zst"))
}
