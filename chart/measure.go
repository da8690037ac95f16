// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package chart

import "math"

// BandMeasurer returns the pixel thickness of an axis band: ticks, labels
// and title.
type BandMeasurer interface {
	BandWidth(axis *Axis, o Orientation) int
}

// MeasureFunc adapts a function to BandMeasurer.
type MeasureFunc func(axis *Axis, o Orientation) int

func (f MeasureFunc) BandWidth(axis *Axis, o Orientation) int {
	return f(axis, o)
}

// TextMeasurer estimates bands from fixed character metrics. It is not a
// font engine.
type TextMeasurer struct {
	CharWidth   float64
	LineHeight  float64
	TickLength  float64
	TickSpacing float64
}

func DefaultTextMeasurer() TextMeasurer {
	return TextMeasurer{CharWidth: 7, LineHeight: 14, TickLength: 5, TickSpacing: 80}
}

func (m TextMeasurer) BandWidth(axis *Axis, o Orientation) int {
	band := m.TickLength
	// labels of axes drawn vertically on the device stack sideways
	vertical := (axis.Dim == DimY) != (o == OrientationRotated)
	if vertical {
		longest := 0
		for _, t := range axis.Ticks(m.tickCount(axis)) {
			longest = max(longest, len([]rune(t.Label)))
		}
		band += float64(longest)*m.CharWidth + m.CharWidth/2
	} else {
		band += m.LineHeight
	}
	if axis.Title != "" {
		band += m.LineHeight
	}
	return int(math.Ceil(band))
}

func (m TextMeasurer) tickCount(axis *Axis) int {
	if m.TickSpacing <= 0 || axis.length <= 0 {
		return defaultBaseTicks
	}
	return max(2, int(axis.length/m.TickSpacing))
}
