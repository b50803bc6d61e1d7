/*
 * parse_test.go, part of tcparse.
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
	"compress/gzip"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/klauspost/compress/zstd"
)

const sampleFile = "test/sample.txt"

func sameInts(a, b []int) bool {
	return reflect.DeepEqual(a, b)
}

// TestParseLast checks the two-region example: with the default policy the
// temperatures present in both regions come from the second one.
func TestParseLast(Te *testing.T) {
	T, err := ParseFile(sampleFile)
	if err != nil {
		Te.Fatal(err)
	}
	if k := T.Keys(); !sameInts(k, []int{70000, 80000, 90000, 100000}) {
		Te.Errorf("wrong keys %v", k)
	}
	if r := T.Regions(); !sameInts(r, []int{2, 2, 2, 1}) {
		Te.Errorf("wrong regions %v", r)
	}
	if k := T.Key(3); k != 100000 {
		Te.Errorf("last row has key %d, expected 100000", k)
	}
	temps, ok := T.Col("T")
	if !ok {
		Te.Fatal("no T column")
	}
	for i, v := range []float64{700, 800, 900, 1000} {
		if temps[i] != v {
			Te.Errorf("row %d: T=%v, expected %v", i, temps[i], v)
		}
	}
	i, ok := T.RowByKey(90000)
	if !ok {
		Te.Fatal("no row for 900")
	}
	if v := T.Value(i, "NP(FCC_A1)"); v != 0.4 {
		Te.Errorf("NP(FCC_A1) at 900 is %v, expected the second region's 0.4", v)
	}
	i, _ = T.RowByKey(100000)
	if v := T.Value(i, "NP(FCC_A1)"); !math.IsNaN(v) {
		Te.Errorf("NP(FCC_A1) at 1000 should be NaN, the first region has no FCC_A1, got %v", v)
	}
}

func TestParsePolicies(Te *testing.T) {
	data, err := os.ReadFile(sampleFile)
	if err != nil {
		Te.Fatal(err)
	}
	cases := []struct {
		policy  Policy
		keys    []int
		regions []int
	}{
		{KeepLast, []int{70000, 80000, 90000, 100000}, []int{2, 2, 2, 1}},
		{KeepFirst, []int{70000, 80000, 90000, 100000}, []int{2, 1, 1, 1}},
		{KeepBoth, []int{70000, 80000, 80000, 90000, 90000, 100000}, []int{2, 1, 2, 1, 2, 1}},
	}
	for _, c := range cases {
		T, err := Parse(data, DuplicatePolicy(c.policy))
		if err != nil {
			Te.Fatalf("policy %s: %v", c.policy, err)
		}
		if !sameInts(T.Keys(), c.keys) {
			Te.Errorf("policy %s: keys %v, expected %v", c.policy, T.Keys(), c.keys)
		}
		if !sameInts(T.Regions(), c.regions) {
			Te.Errorf("policy %s: regions %v, expected %v", c.policy, T.Regions(), c.regions)
		}
		keys := T.Keys()
		for i := 1; i < len(keys); i++ {
			if keys[i] < keys[i-1] || (c.policy != KeepBoth && keys[i] == keys[i-1]) {
				Te.Errorf("policy %s: keys not strictly increasing: %v", c.policy, keys)
			}
		}
	}
}

// Within one region, repeated temperatures are resolved in the
// order the region is sorted (decreasing T, stable).
func TestParseRepeatedWithinRegion(Te *testing.T) {
	data := []byte(` Phase Region for:
     FCC_A1
 col-1=T, col-2=NP(FCC_A1), col-3=X(FCC_A1,FE),
   900.0  0.1  1.0
   900.0  0.2  1.0
   800.0  0.3  1.0
`)
	last, err := Parse(data, DeriveUnits(false))
	if err != nil {
		Te.Fatal(err)
	}
	first, err := Parse(data, DeriveUnits(false), DuplicatePolicy(KeepFirst))
	if err != nil {
		Te.Fatal(err)
	}
	i, _ := last.RowByKey(90000)
	if v := last.Value(i, "NP(FCC_A1)"); v != 0.2 {
		Te.Errorf("last: expected 0.2, got %v", v)
	}
	i, _ = first.RowByKey(90000)
	if v := first.Value(i, "NP(FCC_A1)"); v != 0.1 {
		Te.Errorf("first: expected 0.1, got %v", v)
	}
}

func TestParseColumnOrder(Te *testing.T) {
	T, err := ParseFile(sampleFile)
	if err != nil {
		Te.Fatal(err)
	}
	expected := []string{"region", "T", "NP(LIQUID)", "X(LIQUID,CR)", "X(LIQUID,FE)",
		"NP(FCC_A1)", "X(FCC_A1,CR)", "X(FCC_A1,FE)", "BP(LIQUID)", "BP(FCC_A1)"}
	if n := T.Names(); !reflect.DeepEqual(n, expected) {
		Te.Errorf("columns %v, expected %v", n, expected)
	}
	T, err = ParseFile(sampleFile, KeepTemperature(false), DeriveUnits(false))
	if err != nil {
		Te.Fatal(err)
	}
	if _, ok := T.Col("T"); ok {
		Te.Error("T column present with KeepTemperature(false)")
	}
	if T.HasMass() {
		Te.Error("mass columns present with DeriveUnits(false)")
	}
	if n := T.Names(); n[0] != "region" {
		Te.Errorf("region should be the first column, got %v", n)
	}
}

func TestParseCompactHeader(Te *testing.T) {
	data := []byte("preamble\n Phase Region for:\n     FCC\n col-1=T,col-2=NP(FCC),col-3=X(FCC,FE),\n 900.0 0.5 1.0\n")
	T, err := Parse(data, DeriveUnits(false))
	if err != nil {
		Te.Fatal(err)
	}
	if T.Len() != 1 {
		Te.Fatalf("expected 1 row, got %d", T.Len())
	}
	row := T.Row(0)
	expected := map[string]float64{"region": 1, "T": 900.0, "NP(FCC)": 0.5, "X(FCC,FE)": 1.0}
	if !reflect.DeepEqual(row, expected) {
		Te.Errorf("row %v, expected %v", row, expected)
	}
}

func TestHeaderNames(Te *testing.T) {
	cases := map[string][]string{
		" col-1=T, col-2=NP(LIQUID), col-3=X(LIQUID,FE),":   {"T", "NP(LIQUID)", "X(LIQUID,FE)"},
		"col-1=T,col-2=NP(FCC_A1#2),col-3=X(FCC_A1#2,CR),": {"T", "NP(FCC_A1#2)", "X(FCC_A1#2,CR)"},
		"col-1=T, col-2=BP(BCC_A2)":                         {"T", "BP(BCC_A2)"},
	}
	for line, expected := range cases {
		names, err := headerNames(line)
		if err != nil {
			Te.Errorf("%q: %v", line, err)
			continue
		}
		if !reflect.DeepEqual(names, expected) {
			Te.Errorf("%q: got %v, expected %v", line, names, expected)
		}
	}
}

func TestParseMalformed(Te *testing.T) {
	cases := map[string]struct {
		data   string
		region int
	}{
		"no regions":   {"just some text\n col-1=T,\n 900.0\n", 0},
		"no header":    {" Phase Region for:\n  FCC\n 900 0.5\n", 1},
		"no T":         {" Phase Region for:\n  FCC\n col-1=NP(FCC),\n 0.5\n", 1},
		"bad number":   {" Phase Region for:\n  FCC\n col-1=T, col-2=NP(FCC),\n 900 0.5\n\n Phase Region for:\n  FCC\n col-1=T, col-2=NP(FCC),\n 800 abc\n", 2},
		"long row":     {" Phase Region for:\n  FCC\n col-1=T, col-2=NP(FCC),\n 900 0.5 0.7\n", 1},
		"NaN T":        {" Phase Region for:\n  FCC\n col-1=T, col-2=NP(FCC),\n NaN 0.5\n", 1},
		"empty header": {" Phase Region for:\n  FCC\n col-1=T, col-2=,\n 900 0.5\n", 1},
	}
	for name, c := range cases {
		T, err := Parse([]byte(c.data))
		if err == nil {
			Te.Errorf("%s: expected an error", name)
			continue
		}
		if T != nil {
			Te.Errorf("%s: a table was returned along with the error", name)
		}
		var merr *MalformedInputError
		if !errors.As(err, &merr) {
			Te.Errorf("%s: expected a MalformedInputError, got %T: %v", name, err, err)
			continue
		}
		if merr.Region() != c.region {
			Te.Errorf("%s: error in region %d, expected %d (%v)", name, merr.Region(), c.region, err)
		}
	}
	_, err := Parse([]byte(" Phase Region for:\n  FCC\n col-1=T, col-2=NP(FCC),\n 900 abc\n"))
	var nerr *strconv.NumError
	if !errors.As(err, &nerr) {
		Te.Errorf("the number parsing error should be wrapped, got %v", err)
	}
	var merr *MalformedInputError
	if errors.As(err, &merr) && merr.FileName() != "" {
		Te.Errorf("no file name expected for in-memory data, got %q", merr.FileName())
	}
	bad := filepath.Join(Te.TempDir(), "bad.txt")
	if err := os.WriteFile(bad, []byte(" Phase Region for:\n  FCC\n col-1=T, col-2=NP(FCC),\n 900 abc\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	_, err = ParseFile(bad)
	if !errors.As(err, &merr) || merr.FileName() != bad {
		Te.Errorf("expected a MalformedInputError for %s, got %v", bad, err)
	}
}

// A region with a header but no rows is fine.
func TestParseEmptyRegion(Te *testing.T) {
	data := []byte(` Phase Region for:
     FCC_A1
 col-1=T, col-2=NP(FCC_A1), col-3=X(FCC_A1,FE),

 Phase Region for:
     BCC_A2
 col-1=T, col-2=NP(BCC_A2), col-3=X(BCC_A2,FE),
   700.0  1.0  1.0
`)
	T, err := Parse(data)
	if err != nil {
		Te.Fatal(err)
	}
	if T.Len() != 1 || T.Regions()[0] != 2 {
		Te.Errorf("expected one row from region 2, got %d rows, regions %v", T.Len(), T.Regions())
	}
	if !math.IsNaN(T.Value(0, "NP(FCC_A1)")) {
		Te.Errorf("NP(FCC_A1) should be NaN")
	}
}

func TestParseCRLF(Te *testing.T) {
	data := []byte(" Phase Region for:\r\n     FCC\r\n col-1=T, col-2=NP(FCC), col-3=X(FCC,NI),\r\n 900.0 1.0 1.0\r\n")
	T, err := Parse(data)
	if err != nil {
		Te.Fatal(err)
	}
	if T.Len() != 1 || T.Value(0, "BP(FCC)") != 100 {
		Te.Errorf("unexpected table %v %v", T, T.Row(0))
	}
}

func TestTemperatureKey(Te *testing.T) {
	cases := map[float64]int{900: 90000, 1234.567: 123457, 0.125: 12, 0.375: 38, -12.5: -1250}
	for t, expected := range cases {
		k, err := TemperatureKey(t)
		if err != nil {
			Te.Errorf("%v: %v", t, err)
		}
		if k != expected {
			Te.Errorf("key of %v is %d, expected %d", t, k, expected)
		}
	}
	if _, err := TemperatureKey(math.Inf(1)); err == nil {
		Te.Error("no error for an infinite temperature")
	}
}

func TestParsePolicyNames(Te *testing.T) {
	for _, p := range []Policy{KeepFirst, KeepLast, KeepBoth} {
		q, err := ParsePolicy(p.String())
		if err != nil || q != p {
			Te.Errorf("%s parsed as %s, %v", p, q, err)
		}
	}
	if _, err := ParsePolicy("middle"); err == nil {
		Te.Error("no error for an unknown policy")
	}
}

func TestParseCompressed(Te *testing.T) {
	data, err := os.ReadFile(sampleFile)
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	zname := filepath.Join(dir, "sample.txt.zst")
	zf, err := os.Create(zname)
	if err != nil {
		Te.Fatal(err)
	}
	enc, err := zstd.NewWriter(zf)
	if err != nil {
		Te.Fatal(err)
	}
	enc.Write(data)
	enc.Close()
	zf.Close()

	gname := filepath.Join(dir, "sample.txt.gz")
	gf, err := os.Create(gname)
	if err != nil {
		Te.Fatal(err)
	}
	genc := gzip.NewWriter(gf)
	genc.Write(data)
	genc.Close()
	gf.Close()

	plain, err := Parse(data)
	if err != nil {
		Te.Fatal(err)
	}
	for _, name := range []string{zname, gname} {
		T, err := ParseFile(name)
		if err != nil {
			Te.Errorf("%s: %v", name, err)
			continue
		}
		if !reflect.DeepEqual(T.Keys(), plain.Keys()) || !reflect.DeepEqual(T.Names(), plain.Names()) {
			Te.Errorf("%s doesn't match the plain file", name)
		}
	}
	if _, err := ParseFile(filepath.Join(dir, "missing.txt")); err == nil {
		Te.Error("no error for a missing file")
	}
}
