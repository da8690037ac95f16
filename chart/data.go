// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package chart

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// DataModel is the tabular data a chart plots.
type DataModel interface {
	RowCount() int
	ValueAt(row, column int) any
}

// Table is an in-memory DataModel.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

func (t *Table) AddRow(values ...any) {
	t.Rows = append(t.Rows, values)
}

func (t *Table) RowCount() int {
	return len(t.Rows)
}

func (t *Table) ValueAt(row, column int) any {
	if row < 0 || row >= len(t.Rows) || column < 0 || column >= len(t.Rows[row]) {
		return nil
	}
	return t.Rows[row][column]
}

// ColumnIndex returns the index of a named column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ToFloat converts a cell to a plotted number. Dates become Unix seconds.
// ok is false for nil, NaN and anything that is not a number.
func ToFloat(v any) (f float64, ok bool) {
	switch x := v.(type) {
	case nil:
		return math.NaN(), false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return math.NaN(), false
		}
		f = n
	case time.Time:
		f = float64(x.Unix()) + float64(x.Nanosecond())/1e9
	case string:
		if t, err := time.Parse(time.RFC3339, x); err == nil {
			return ToFloat(t)
		}
		n, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return math.NaN(), false
		}
		f = n
	default:
		return math.NaN(), false
	}
	if math.IsNaN(f) {
		return f, false
	}
	return f, true
}
