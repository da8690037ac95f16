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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	when := time.Date(2024, 1, 2, 3, 4, 5, 500000000, time.UTC)
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float", 1.5, 1.5, true},
		{"int", 7, 7, true},
		{"uint64", uint64(9), 9, true},
		{"json", json.Number("2.25"), 2.25, true},
		{"bad json", json.Number("x"), 0, false},
		{"time", when, float64(when.Unix()) + 0.5, true},
		{"rfc3339", "2024-01-02T03:04:05Z", float64(when.Unix()), true},
		{"numeric string", "42", 42, true},
		{"word", "eu", 0, false},
		{"nil", nil, 0, false},
		{"nan", math.NaN(), 0, false},
		{"bool", true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestTable(t *testing.T) {
	tb := NewTable("a", "b")
	tb.AddRow(1, 2)
	tb.AddRow(3)
	assert.Equal(t, 2, tb.RowCount())
	assert.Equal(t, 1, tb.ColumnIndex("b"))
	assert.Equal(t, -1, tb.ColumnIndex("c"))
	assert.Equal(t, 2, tb.ValueAt(0, 1))
	assert.Nil(t, tb.ValueAt(1, 1))
	assert.Nil(t, tb.ValueAt(5, 0))
}

func TestTextMeasurer(t *testing.T) {
	m := DefaultTextMeasurer()
	x := NewAxis("x", RoleX)
	// horizontal labels take one line plus the tick
	assert.Equal(t, 19, m.BandWidth(x, OrientationHorizontal))
	x.Title = "time"
	assert.Equal(t, 33, m.BandWidth(x, OrientationHorizontal))

	y := laidOutAxis(ScaleLinear, 0, 1000, 800)
	y.Dim = DimY
	// "1000" is the longest label: 5 + 4*7 + 3.5
	assert.Equal(t, 37, m.BandWidth(y, OrientationHorizontal))
	assert.Equal(t, 19, m.BandWidth(y, OrientationRotated))
}
