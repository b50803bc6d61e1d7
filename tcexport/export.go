/*
 * export.go, part of tcparse.
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

// Package tcexport writes tcparse tables as CSV (plain, zstd or gzip) or XLSX.
// Files are first written to a temporary file in the same directory, which
// replaces the target only if everything went well.
package tcexport

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/tcparse"
	"github.com/xuri/excelize/v2"
)

// DefaultSeparator is the field separator for CSV files.
const DefaultSeparator = ','

// SheetName is the name of the worksheet in XLSX files.
const SheetName = "data"

// FormatValue returns the shortest representation of v that reads back
// to the same number, or "" for NaN.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Header returns the column names as they are written: the temperature key
// column first, then the columns of t.
func Header(t tcparse.Columner) []string {
	return append([]string{tcparse.KeyColumn}, t.Names()...)
}

// dump holds the columns of a table in the order they are written.
type dump struct {
	keys []int
	cols [][]float64
}

func newDump(t tcparse.Columner) *dump {
	d := &dump{keys: t.Keys()}
	for _, name := range t.Names() {
		c, _ := t.Col(name)
		d.cols = append(d.cols, c)
	}
	return d
}

// record returns the i-th row formatted for writing.
func (d *dump) record(i int) []string {
	ret := make([]string, 0, len(d.cols)+1)
	ret = append(ret, strconv.Itoa(d.keys[i]))
	for _, c := range d.cols {
		ret = append(ret, FormatValue(c[i]))
	}
	return ret
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// compressor wraps w with the compression given by the suffix of filename.
func compressor(w io.Writer, filename string) (io.WriteCloser, error) {
	switch tcparse.Compression(filename) {
	case "zstd":
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case "gzip":
		return gzip.NewWriterLevel(w, gzip.BestCompression)
	}
	return nopWriteCloser{w}, nil
}

// atomicWrite calls fill with a temporary file in the directory of filename,
// and renames the temporary file to filename if fill succeeds. Otherwise
// the temporary file is removed and filename is not touched.
func atomicWrite(filename string, fill func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", filename, err)
	}
	name := tmp.Name()
	if err := fill(tmp); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := os.Rename(name, filename); err != nil {
		os.Remove(name)
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

// WriteCSVTo writes t as CSV to w, with sep as field separator.
func WriteCSVTo(w io.Writer, t tcparse.Columner, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep
	if err := cw.Write(Header(t)); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	d := newDump(t)
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(d.record(i)); err != nil {
			return fmt.Errorf("write CSV record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes t to filename as CSV with sep as field separator. Names ending
// in .zst or .gz are compressed with zstd or gzip, respectively.
func WriteCSV(t tcparse.Columner, filename string, sep rune) error {
	return atomicWrite(filename, func(w io.Writer) error {
		cw, err := compressor(w, filename)
		if err != nil {
			return fmt.Errorf("compressing %s: %w", filename, err)
		}
		if err := WriteCSVTo(cw, t, sep); err != nil {
			cw.Close()
			return fmt.Errorf("writing %s: %w", filename, err)
		}
		if err := cw.Close(); err != nil {
			return fmt.Errorf("compressing %s: %w", filename, err)
		}
		return nil
	})
}

// WriteXLSX writes t to filename as an Excel workbook with one sheet.
// NaN values are left as empty cells.
func WriteXLSX(t tcparse.Columner, filename string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	header := Header(t)
	hrow := make([]interface{}, len(header))
	for i, v := range header {
		hrow[i] = v
	}
	if err := f.SetSheetRow(SheetName, "A1", &hrow); err != nil {
		return fmt.Errorf("write XLSX header: %w", err)
	}
	d := newDump(t)
	for i := 0; i < t.Len(); i++ {
		row := make([]interface{}, 0, len(d.cols)+1)
		row = append(row, d.keys[i])
		for _, c := range d.cols {
			if math.IsNaN(c[i]) {
				row = append(row, nil)
				continue
			}
			row = append(row, c[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write XLSX row %d: %w", i, err)
		}
	}
	return atomicWrite(filename, func(w io.Writer) error {
		if err := f.Write(w); err != nil {
			return fmt.Errorf("writing %s: %w", filename, err)
		}
		return nil
	})
}

// IsXLSX returns true if filename has the .xlsx extension.
func IsXLSX(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".xlsx")
}

// Export writes t to filename, as XLSX if the name ends in .xlsx and as
// CSV with sep as separator otherwise.
func Export(t tcparse.Columner, filename string, sep rune) error {
	if IsXLSX(filename) {
		return WriteXLSX(t, filename)
	}
	return WriteCSV(t, filename, sep)
}
