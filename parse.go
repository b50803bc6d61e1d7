/*
 * parse.go, part of tcparse.
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
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// RegionMarker is the line that starts each phase region in a Thermo-Calc file.
const RegionMarker = " Phase Region for:"

// headerStart marks the line with the column names in a phase region.
const headerStart = "col-1"

var colToken = regexp.MustCompile(`col-[0-9]+=`)

// Policy decides which row is kept when several phase regions
// contain the same temperature.
type Policy int

const (
	KeepLast  Policy = iota //the row from the last region containing the temperature
	KeepFirst               //the row from the first region containing the temperature
	KeepBoth                //all rows, temperatures can repeat
)

func (p Policy) String() string {
	switch p {
	case KeepFirst:
		return "first"
	case KeepBoth:
		return "both"
	default:
		return "last"
	}
}

// ParsePolicy returns the Policy named by s ("first", "last" or "both").
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "last", "":
		return KeepLast, nil
	case "first":
		return KeepFirst, nil
	case "both":
		return KeepBoth, nil
	}
	return KeepLast, fmt.Errorf("unknown duplicate temperature policy %q, use first, last or both", s)
}

type options struct {
	keepT    bool
	policy   Policy
	derive   bool
	engine   *Engine
	logger   *slog.Logger
	filename string
}

// Option configures Parse and ParseFile.
type Option func(*options)

// KeepTemperature sets whether the T column is put back in the table (default true).
func KeepTemperature(keep bool) Option {
	return func(o *options) { o.keepT = keep }
}

// DuplicatePolicy sets how repeated temperatures are resolved (default KeepLast).
func DuplicatePolicy(p Policy) Option {
	return func(o *options) { o.policy = p }
}

// DeriveUnits sets whether the missing unit system (molar or mass) is
// computed after parsing (default true).
func DeriveUnits(derive bool) Option {
	return func(o *options) { o.derive = derive }
}

// WithEngine sets the Engine used to derive units. By default an Engine with
// the standard atomic masses is used.
func WithEngine(e *Engine) Option {
	return func(o *options) { o.engine = e }
}

// WithLogger sets the logger for debug messages. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func withFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// regionFrame is the data of one phase region, before merging.
type regionFrame struct {
	region int
	names  []string //without T
	cols   map[string]int
	keys   []int
	rows   [][]float64
}

// ParseFile reads a Thermo-Calc text output file (possibly compressed,
// see ReadFile) and parses it with Parse.
func ParseFile(filename string, opts ...Option) (*Table, error) {
	data, err := ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	opts = append(opts, withFilename(filename))
	T, err := Parse(data, opts...)
	if err != nil {
		return nil, errDecorate(err, "ParseFile")
	}
	return T, nil
}

// Parse parses the contents of a Thermo-Calc text output file into a Table.
// Each phase region becomes a set of rows tagged with its 1-based region
// number. Rows with the same temperature key are resolved according to the
// duplicate policy, and the table is returned sorted by temperature.
// The columns are, in order, region, T (unless KeepTemperature(false)), the
// columns of the file, and the derived unit columns (unless DeriveUnits(false)).
func Parse(contents []byte, opts ...Option) (*Table, error) {
	o := &options{keepT: true, policy: KeepLast, derive: true}
	for _, f := range opts {
		f(o)
	}
	if o.engine == nil {
		o.engine = defaultEngine
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	txt := strings.ReplaceAll(string(contents), "\r\n", "\n")
	//The newline lets a file start directly with a region.
	fragments := strings.Split("\n"+txt, "\n"+RegionMarker)
	if len(fragments) < 2 {
		return nil, &MalformedInputError{message: "no phase regions found", filename: o.filename, deco: []string{"Parse"}}
	}
	frames := make([]*regionFrame, 0, len(fragments)-1)
	for i, v := range fragments[1:] {
		frame, err := parseRegion(v, i+1)
		if err != nil {
			err.filename = o.filename
			err.Decorate("Parse")
			return nil, err
		}
		o.logger.Debug("parsed phase region", "file", o.filename, "region", frame.region, "columns", len(frame.names), "rows", len(frame.keys))
		frames = append(frames, frame)
	}
	T := merge(frames, o.policy)
	o.logger.Debug("merged phase regions", "file", o.filename, "regions", len(frames), "rows", T.Len(), "policy", o.policy.String())
	if o.keepT {
		temps := T.column(TemperatureColumn)
		for i, v := range T.keys {
			temps.Data[i] = float64(v) / 100.0
		}
	}
	if o.derive {
		if !T.HasMass() {
			if err := o.engine.CompleteUnits(T, MolarToMass); err != nil {
				return nil, errDecorate(err, "Parse")
			}
		}
		if !T.HasMolar() {
			if err := o.engine.CompleteUnits(T, MassToMolar); err != nil {
				return nil, errDecorate(err, "Parse")
			}
		}
	}
	T.ToFront(RegionColumn, TemperatureColumn)
	return T, nil
}

// parseRegion parses the text of one phase region, i.e. what follows the marker line.
func parseRegion(text string, region int) (*regionFrame, *MalformedInputError) {
	lines := strings.Split(text, "\n")
	header := -1
	for i, v := range lines {
		if strings.Contains(v, headerStart) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, &MalformedInputError{message: "phase region without a " + headerStart + " column header", region: region}
	}
	names, err := headerNames(lines[header])
	if err != nil {
		return nil, &MalformedInputError{message: err.Error(), region: region, line: header + 1}
	}
	tcol := -1
	for i, v := range names {
		if v == TemperatureColumn {
			tcol = i
			break
		}
	}
	if tcol < 0 {
		return nil, &MalformedInputError{message: "no " + TemperatureColumn + " column in header", region: region, line: header + 1}
	}
	F := &regionFrame{region: region, cols: make(map[string]int, len(names))}
	for i, v := range names {
		if i == tcol {
			continue
		}
		F.cols[v] = len(F.names)
		F.names = append(F.names, v)
	}
	for i, v := range lines[header+1:] {
		lineno := header + i + 2
		fields := strings.Fields(v)
		if len(fields) == 0 {
			continue
		}
		if len(fields) > len(names) {
			return nil, &MalformedInputError{message: fmt.Sprintf("%d values for %d columns", len(fields), len(names)), region: region, line: lineno}
		}
		//Short rows get NaNs at the end.
		vals := nanSlice(len(names))
		for j, f := range fields {
			vals[j], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &MalformedInputError{message: "can't read value of column " + names[j], region: region, line: lineno, err: err}
			}
		}
		key, err := TemperatureKey(vals[tcol])
		if err != nil {
			return nil, &MalformedInputError{message: "invalid temperature", region: region, line: lineno, err: err}
		}
		row := make([]float64, 0, len(F.names))
		row = append(row, vals[:tcol]...)
		row = append(row, vals[tcol+1:]...)
		F.keys = append(F.keys, key)
		F.rows = append(F.rows, row)
	}
	return F, nil
}

// headerNames extracts the column names from a header line of the form
// "col-1=T, col-2=NP(LIQUID), col-3=X(LIQUID,FE),". Names run up to the next
// col-<n>= token, so they can contain commas and parentheses.
func headerNames(line string) ([]string, error) {
	line = line[strings.Index(line, headerStart):]
	locs := colToken.FindAllStringIndex(line, -1)
	names := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(line)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		name := strings.TrimSpace(line[loc[1]:end])
		name = strings.TrimSpace(strings.TrimSuffix(name, ","))
		if name == "" {
			return nil, fmt.Errorf("empty name for column %d", i+1)
		}
		names = append(names, name)
	}
	return names, nil
}

// TemperatureKey returns round(t*100) (rounding half to even), the integer
// key used to sort rows and to find repeated temperatures.
func TemperatureKey(t float64) (int, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, fmt.Errorf("temperature %v has no key", t)
	}
	return safecast.Convert[int](math.RoundToEven(t * 100))
}

type rowRef struct {
	frame int
	row   int
	key   int
}

// merge concatenates the regions in file order, each sorted by decreasing
// temperature, applies the duplicate policy and sorts the result by increasing temperature.
// The order of the concatenation decides which duplicate survives, so both sorts are stable.
func merge(frames []*regionFrame, policy Policy) *Table {
	refs := make([]rowRef, 0, 100)
	names := make([]string, 0, 20)
	for i, F := range frames {
		for _, v := range F.names {
			if !isInString(names, v) {
				names = append(names, v)
			}
		}
		fr := make([]rowRef, len(F.keys))
		for j, k := range F.keys {
			fr[j] = rowRef{frame: i, row: j, key: k}
		}
		sort.SliceStable(fr, func(a, b int) bool { return fr[a].key > fr[b].key })
		refs = append(refs, fr...)
	}
	refs = dedupe(refs, policy)
	sort.SliceStable(refs, func(a, b int) bool { return refs[a].key < refs[b].key })
	keys := make([]int, len(refs))
	for i, v := range refs {
		keys[i] = v.key
	}
	T := NewTable(keys)
	region := T.column(RegionColumn)
	for i, v := range refs {
		region.Data[i] = float64(frames[v.frame].region)
	}
	for _, name := range names {
		c := T.column(name)
		for i, v := range refs {
			F := frames[v.frame]
			if j, ok := F.cols[name]; ok {
				c.Data[i] = F.rows[v.row][j]
			}
		}
	}
	return T
}

// dedupe returns the rows that survive policy, in their original order.
func dedupe(refs []rowRef, policy Policy) []rowRef {
	if policy == KeepBoth {
		return refs
	}
	seen := make(map[int]bool, len(refs))
	keep := make([]bool, len(refs))
	if policy == KeepFirst {
		for i, v := range refs {
			if !seen[v.key] {
				seen[v.key] = true
				keep[i] = true
			}
		}
	} else {
		for i := len(refs) - 1; i >= 0; i-- {
			if !seen[refs[i].key] {
				seen[refs[i].key] = true
				keep[i] = true
			}
		}
	}
	ret := make([]rowRef, 0, len(seen))
	for i, v := range refs {
		if keep[i] {
			ret = append(ret, v)
		}
	}
	return ret
}
