/*
 * table.go, part of tcparse.
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
	"math"
)

// Column is one named column of a Table. The kind, phase and element
// are deduced from the name when the column is created.
type Column struct {
	Name string
	ColumnInfo
	Data []float64
}

func newColumn(name string, rows int) *Column {
	c := &Column{Name: name, ColumnInfo: Classify(name), Data: make([]float64, rows)}
	for i := range c.Data {
		c.Data[i] = math.NaN()
	}
	return c
}

// Table holds Thermo-Calc results, one row per temperature and phase
// region. Rows are indexed by the temperature key, round(T*100).
// Missing values are NaN.
type Table struct {
	keys  []int
	cols  []*Column
	index map[string]int
}

var _ Columner = (*Table)(nil)

// NewTable returns an empty table with the given temperature keys (one per row).
func NewTable(keys []int) *Table {
	T := new(Table)
	T.keys = append([]int(nil), keys...)
	T.index = make(map[string]int)
	return T
}

// Len returns the number of rows.
func (T *Table) Len() int { return len(T.keys) }

// Keys returns a copy of the temperature keys, one per row.
func (T *Table) Keys() []int { return append([]int(nil), T.keys...) }

// Key returns the temperature key of row i.
func (T *Table) Key(i int) int { return T.keys[i] }

// Names returns the column names, in order.
func (T *Table) Names() []string {
	ret := make([]string, len(T.cols))
	for i, v := range T.cols {
		ret[i] = v.Name
	}
	return ret
}

// Columns returns the columns of the table, in order.
func (T *Table) Columns() []*Column { return append([]*Column(nil), T.cols...) }

// Column returns the named column, or nil.
func (T *Table) Column(name string) *Column {
	i, ok := T.index[name]
	if !ok {
		return nil
	}
	return T.cols[i]
}

// Col returns the values of the named column and true, or nil and false if
// there is no such column. The slice is the table's own storage.
func (T *Table) Col(name string) ([]float64, bool) {
	c := T.Column(name)
	if c == nil {
		return nil, false
	}
	return c.Data, true
}

// Value returns the value of column name in row i, NaN if the
// column doesn't exist.
func (T *Table) Value(i int, name string) float64 {
	c := T.Column(name)
	if c == nil {
		return math.NaN()
	}
	return c.Data[i]
}

// Row returns row i as a map from column name to value.
func (T *Table) Row(i int) map[string]float64 {
	ret := make(map[string]float64, len(T.cols))
	for _, c := range T.cols {
		ret[c.Name] = c.Data[i]
	}
	return ret
}

// RowByKey returns the index of the first row with temperature key key,
// and false if there is none.
func (T *Table) RowByKey(key int) (int, bool) {
	for i, v := range T.keys {
		if v == key {
			return i, true
		}
	}
	return -1, false
}

// Regions returns the phase region each row came from, or nil if the table
// has no region column.
func (T *Table) Regions() []int {
	c := T.Column(RegionColumn)
	if c == nil {
		return nil
	}
	ret := make([]int, len(c.Data))
	for i, v := range c.Data {
		ret[i] = int(v)
	}
	return ret
}

// Phases returns the phases in the table (see ListPhases).
func (T *Table) Phases() []string { return ListPhases(T.Names()) }

// Elements returns the elements in the table, sorted (see ListElements).
func (T *Table) Elements() []string { return ListElements(T.Names()) }

// HasMolar returns true if the table has phase molar fraction columns.
func (T *Table) HasMolar() bool { return HasMolarColumns(T.Names()) }

// HasMass returns true if the table has phase mass fraction columns.
func (T *Table) HasMass() bool { return HasMassColumns(T.Names()) }

// SetColumn adds a column with the given name and data, or replaces
// the data of an existing one. The column is appended at the end of the table.
func (T *Table) SetColumn(name string, data []float64) error {
	if len(data) != T.Len() {
		return fmt.Errorf("column %s has %d values, table has %d rows", name, len(data), T.Len())
	}
	if c := T.Column(name); c != nil {
		c.Data = data
		return nil
	}
	T.index[name] = len(T.cols)
	T.cols = append(T.cols, &Column{Name: name, ColumnInfo: Classify(name), Data: data})
	return nil
}

// column returns the named column, creating it full of NaNs if needed.
func (T *Table) column(name string) *Column {
	if c := T.Column(name); c != nil {
		return c
	}
	c := newColumn(name, T.Len())
	T.index[name] = len(T.cols)
	T.cols = append(T.cols, c)
	return c
}

// ToFront moves the named columns to the beginning of the table, in the given order.
// Names not in the table are ignored.
func (T *Table) ToFront(names ...string) {
	front := make([]*Column, 0, len(T.cols))
	for _, v := range names {
		if c := T.Column(v); c != nil {
			front = append(front, c)
		}
	}
	for _, c := range T.cols {
		if !isInString(names, c.Name) {
			front = append(front, c)
		}
	}
	T.cols = front
	T.reindex()
}

func (T *Table) reindex() {
	T.index = make(map[string]int, len(T.cols))
	for i, c := range T.cols {
		T.index[c.Name] = i
	}
}

// String gives a short description of the table.
func (T *Table) String() string {
	return fmt.Sprintf("Thermo-Calc table: %d rows, %d columns, phases %v, elements %v", T.Len(), len(T.cols), T.Phases(), T.Elements())
}
