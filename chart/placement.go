// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package chart

import "sort"

// PlacementResult holds one placement per input axis, in input order, and
// the band each side consumes.
type PlacementResult struct {
	Placements []AxisPlacement
	MinBand    int
	MaxBand    int
}

// ResolvePlacements stacks the axes of one edge. Declared Zero axes are
// resolved against the perpendicular axis first; then each of the Minimum
// and Maximum stacks accumulates offsets in configuration order.
func ResolvePlacements(axes []*Axis, perpendicular *Axis, width func(*Axis) int, inwardOverlap int) PlacementResult {
	return StackPlacements(axes, ResolveLocations(axes, perpendicular), width, inwardOverlap)
}

// ResolveLocations returns the final location of each axis. Zero axes are
// tried in configuration order; the first one wins the zero line.
func ResolveLocations(axes []*Axis, perpendicular *Axis) []Location {
	final := make([]Location, len(axes))
	minTaken := false
	for i, a := range axes {
		switch a.Location {
		case LocationZero:
			final[i] = resolveZero(a, perpendicular, !minTaken)
		default:
			final[i] = a.Location
		}
		if final[i] != LocationMaximum {
			minTaken = true
		}
	}
	return final
}

// StackPlacements accumulates band offsets for resolved locations. The
// first inward-ticking axis of a stack overlaps the plot and only takes
// inwardOverlap pixels. Axes at zero take no band.
func StackPlacements(axes []*Axis, final []Location, width func(*Axis) int, inwardOverlap int) PlacementResult {
	res := PlacementResult{Placements: make([]AxisPlacement, len(axes))}
	minCount, maxCount := 0, 0
	consumed := func(a *Axis, w int, first bool) int {
		if first && a.TickDirection == TickInward {
			return inwardOverlap
		}
		return w
	}
	for i, a := range axes {
		w := width(a)
		p := AxisPlacement{InitialLocation: a.Location, FinalLocation: final[i], BandWidth: w}
		if final[i] == LocationMinimum || final[i] == LocationBoth {
			p.MinOffset = res.MinBand
			res.MinBand += consumed(a, w, minCount == 0)
			minCount++
		}
		if final[i] == LocationMaximum || final[i] == LocationBoth {
			p.MaxOffset = res.MaxBand
			res.MaxBand += consumed(a, w, maxCount == 0)
			maxCount++
		}
		res.Placements[i] = p
	}
	return res
}

// resolveZero decides where a Zero axis goes. It sits at zero when the
// perpendicular range reaches zero outside any break, its ticks point out
// and nothing is stacked at Minimum before it. Otherwise it moves to the
// side nearest to zero.
func resolveZero(axis, perpendicular *Axis, first bool) Location {
	if perpendicular == nil || len(perpendicular.segments) == 0 {
		return LocationMinimum
	}
	segs := perpendicular.segments
	lo, hi := segs[0].RenderMinimum, segs[len(segs)-1].RenderMaximum
	if lo <= 0 && hi >= 0 && perpendicular.SegmentOf(0) >= 0 &&
		axis.TickDirection == TickOutward && first {
		return LocationZero
	}
	if hi < 0 {
		return LocationMaximum
	}
	return LocationMinimum
}

// edgeAxes returns the axes of dim in configuration order.
func edgeAxes(axes []*Axis, dim Dimension) []*Axis {
	var out []*Axis
	for _, a := range axes {
		if a.Dim == dim {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
