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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSegments(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
		breaks []Break
		want   [][2]float64
	}{
		{"no break", 0, 10, nil, [][2]float64{{0, 10}}},
		{"reversed range", 10, 0, nil, [][2]float64{{0, 10}}},
		{"one break", 0, 100, []Break{{40, 60}}, [][2]float64{{0, 40}, {60, 100}}},
		{"reversed break", 0, 100, []Break{{60, 40}}, [][2]float64{{0, 40}, {60, 100}}},
		{"merged", 0, 100, []Break{{50, 70}, {20, 30}, {25, 55}}, [][2]float64{{0, 20}, {70, 100}}},
		{"outside and empty dropped", 0, 100, []Break{{-10, 5}, {95, 120}, {30, 30}}, [][2]float64{{0, 100}}},
		{"two breaks", 0, 100, []Break{{10, 20}, {80, 90}}, [][2]float64{{0, 10}, {20, 80}, {90, 100}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := BuildSegments(tt.lo, tt.hi, tt.breaks)
			got := make([][2]float64, len(segs))
			for i, s := range segs {
				got[i] = [2]float64{s.RenderMinimum, s.RenderMaximum}
			}
			assert.Equal(t, tt.want, got)
			for i := 1; i < len(segs); i++ {
				assert.Greater(t, segs[i].RenderMinimum, segs[i-1].RenderMaximum)
			}
		})
	}
}

func TestAllocateSegments(t *testing.T) {
	assert := assert.New(t)
	a := NewAxis("x", RoleX)
	a.segments = BuildSegments(0, 100, []Break{{10, 20}, {80, 90}})
	AllocateSegments(a, 170, 10)

	// extents 10, 60, 10 share 150 px
	segs := a.Segments()
	assert.InDelta(0, segs[0].RenderStart, 1e-9)
	assert.InDelta(18.75, segs[0].RenderLength, 1e-9)
	assert.InDelta(28.75, segs[1].RenderStart, 1e-9)
	assert.InDelta(112.5, segs[1].RenderLength, 1e-9)
	assert.InDelta(170, segs[2].RenderEnd(), 1e-9)
	assert.Equal(170.0, a.Length())
}

func TestAllocateSegmentsDropsGapsOnTinyAxis(t *testing.T) {
	a := NewAxis("x", RoleX)
	a.segments = BuildSegments(0, 100, []Break{{40, 60}})
	AllocateSegments(a, 8, 10)
	segs := a.Segments()
	assert.InDelta(t, 4, segs[0].RenderLength, 1e-9)
	assert.InDelta(t, 4, segs[1].RenderStart, 1e-9)
}

func TestDiscreteBreaksKeepWholeRows(t *testing.T) {
	assert := assert.New(t)
	a := NewAxis("day", RoleX)
	a.Scale = ScaleDiscrete
	breaks := wholeRows([]Break{{6.2, 2.5}, {3.2, 3.8}})
	assert.Equal([]Break{{2, 7}}, breaks)

	a.segments = BuildSegments(0, 9, breaks)
	assert.Equal([]Segment{{RenderMinimum: 0, RenderMaximum: 2}, {RenderMinimum: 7, RenderMaximum: 9}}, a.segments)
	AllocateSegments(a, 100, 10)
	// three rows on each side of the break
	assert.InDelta(45, a.segments[0].RenderLength, 1e-9)
	assert.InDelta(45, a.segments[1].RenderLength, 1e-9)
	assert.Empty(wholeRows([]Break{{4, 5}}), "no row strictly inside")
}

func TestComputeChartArea(t *testing.T) {
	assert := assert.New(t)
	pad := Padding{Top: 1, Right: 2, Bottom: 3, Left: 4}

	a := ComputeChartArea(200, 100, pad, OrientationHorizontal)
	assert.Equal(ChartArea{Left: 4, Top: 1, Width: 194, Height: 96}, a)

	r := ComputeChartArea(200, 100, pad, OrientationRotated)
	assert.Equal(ChartArea{Left: 1, Top: 2, Width: 96, Height: 194}, r)

	small := ComputeChartArea(3, -20, pad, OrientationHorizontal)
	assert.Equal(10.0, small.Width)
	assert.Equal(10.0, small.Height)
	assert.False(small.Degenerate())
	assert.True(small.Shrink(5, 0, 0, 0).Degenerate())
	assert.Equal(0.0, small.Shrink(20, 0, 0, 0).Width)
}
