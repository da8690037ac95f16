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

func fixedWidths(widths map[string]int) func(*Axis) int {
	return func(a *Axis) int { return widths[a.Name] }
}

func declaredAxis(name string, loc Location, dir TickDirection) *Axis {
	a := NewAxis(name, RoleAdded)
	a.Location = loc
	a.TickDirection = dir
	return a
}

func TestPlacementOffsetsAccumulate(t *testing.T) {
	assert := assert.New(t)
	axes := []*Axis{
		declaredAxis("a", LocationMinimum, TickOutward),
		declaredAxis("b", LocationMinimum, TickOutward),
		declaredAxis("c", LocationMinimum, TickOutward),
	}
	res := ResolvePlacements(axes, nil, fixedWidths(map[string]int{"a": 20, "b": 30, "c": 40}), 10)

	var offsets []int
	for _, p := range res.Placements {
		offsets = append(offsets, p.MinOffset)
		assert.Equal(LocationMinimum, p.FinalLocation)
	}
	assert.Equal([]int{0, 20, 50}, offsets)
	assert.Equal(90, res.Placements[2].MinOffset+res.Placements[2].BandWidth)
	assert.Equal(90, res.MinBand)
	assert.Equal(0, res.MaxBand)
}

func TestPlacementInwardFirstAxisOverlaps(t *testing.T) {
	assert := assert.New(t)
	axes := []*Axis{
		declaredAxis("a", LocationMinimum, TickInward),
		declaredAxis("b", LocationMinimum, TickInward),
		declaredAxis("c", LocationMaximum, TickOutward),
	}
	res := ResolvePlacements(axes, nil, fixedWidths(map[string]int{"a": 20, "b": 30, "c": 40}), 10)
	assert.Equal(0, res.Placements[0].MinOffset)
	assert.Equal(10, res.Placements[1].MinOffset)
	assert.Equal(40, res.MinBand)
	assert.Equal(0, res.Placements[2].MaxOffset)
	assert.Equal(40, res.MaxBand)
}

func TestPlacementBothTakesTwoSlots(t *testing.T) {
	assert := assert.New(t)
	axes := []*Axis{
		declaredAxis("a", LocationMaximum, TickOutward),
		declaredAxis("b", LocationBoth, TickOutward),
	}
	res := ResolvePlacements(axes, nil, fixedWidths(map[string]int{"a": 25, "b": 15}), 10)
	p := res.Placements[1]
	assert.Equal(LocationBoth, p.FinalLocation)
	assert.Equal(0, p.MinOffset)
	assert.Equal(25, p.MaxOffset)
	assert.Equal(15, res.MinBand)
	assert.Equal(40, res.MaxBand)
}

func TestPlacementZeroPromotion(t *testing.T) {
	tests := []struct {
		name   string
		perp   *Axis
		dir    TickDirection
		before []*Axis
		want   Location
	}{
		{"straddles zero", laidOutAxis(ScaleLinear, -5, 10, 100), TickOutward, nil, LocationZero},
		{"touches zero", laidOutAxis(ScaleLinear, 0, 10, 100), TickOutward, nil, LocationZero},
		{"excludes zero", laidOutAxis(ScaleLinear, 1, 10, 100), TickOutward, nil, LocationMinimum},
		{"all negative", laidOutAxis(ScaleLinear, -10, -1, 100), TickOutward, nil, LocationMaximum},
		{"zero in a break", laidOutAxis(ScaleLinear, -5, 10, 100, Break{-1, 1}), TickOutward, nil, LocationMinimum},
		{"inward ticks", laidOutAxis(ScaleLinear, -5, 10, 100), TickInward, nil, LocationMinimum},
		{"not first", laidOutAxis(ScaleLinear, -5, 10, 100), TickOutward,
			[]*Axis{declaredAxis("m", LocationMinimum, TickOutward)}, LocationMinimum},
		{"no perpendicular axis", nil, TickOutward, nil, LocationMinimum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			axes := append(tt.before, declaredAxis("z", LocationZero, tt.dir))
			res := ResolvePlacements(axes, tt.perp, fixedWidths(map[string]int{"z": 30, "m": 20}), 10)
			p := res.Placements[len(axes)-1]
			assert.Equal(t, LocationZero, p.InitialLocation)
			assert.Equal(t, tt.want, p.FinalLocation)
			if tt.want == LocationZero {
				assert.Equal(t, 0, res.MinBand, "axes at zero take no band")
			}
		})
	}
}

func TestPlacementEmpty(t *testing.T) {
	res := ResolvePlacements(nil, nil, fixedWidths(nil), 10)
	assert.Empty(t, res.Placements)
	assert.Equal(t, 0, res.MinBand+res.MaxBand)
}
