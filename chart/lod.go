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
	"math"
	"time"

	"github.com/aclements/go-moremath/scale"
	"github.com/dustin/go-humanize"
	"github.com/tebeka/strftime"
	"github.com/tiendc/go-deepcopy"
)

const maxLevelTicks = 512

type Tick struct {
	Value  float64 `json:"value"`
	Label  string  `json:"label"`
	Offset float64 `json:"offset"`
}

// PenLevel is the style record of one zoom level. Visibility[i] is 1 when
// the client sits at level i+1 and this record is the selected one, 0
// otherwise, so the pens are transparent at every other level.
type PenLevel struct {
	Level      int       `json:"level"`
	Line       Pen       `json:"line"`
	Text       Pen       `json:"text"`
	Grid       Pen       `json:"grid"`
	Visibility []float64 `json:"visibility"`
	Ticks      []Tick    `json:"ticks"`
}

// AlphaAt returns the line, text and grid alpha of the record seen from
// level.
func (p PenLevel) AlphaAt(level int) (float64, float64, float64) {
	if level < 1 || level > len(p.Visibility) || p.Visibility[level-1] == 0 {
		return 0, 0, 0
	}
	return p.Line.Alpha, p.Text.Alpha, p.Grid.Alpha
}

// SelectPenLevel picks the record for a live scale, the same way the
// interactive runtime does.
func SelectPenLevel(levels []PenLevel, s float64) (PenLevel, bool) {
	if len(levels) == 0 {
		return PenLevel{}, false
	}
	idx := ToZoomLevel(s) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(levels) {
		idx = len(levels) - 1
	}
	return levels[idx], true
}

// BuildPenLevels precomputes one pen record per zoom level of axis, from 1
// to the level of its max zoom factor. In on-demand mode the table stops one
// level above the current one.
func BuildPenLevels(axis *Axis, baseTicks int, onDemand bool) []PenLevel {
	n := ToZoomLevel(axis.MaxZoomFactor)
	if onDemand && axis.transform != nil {
		cur := ToZoomLevel(axis.transform.Scale)
		n = min(n, max(cur, 1)+1)
	}
	if n < 1 {
		n = 1
	}
	levels := make([]PenLevel, n)
	tickCount := baseTicks
	for i := range levels {
		lvl := PenLevel{Level: i + 1, Visibility: make([]float64, n)}
		var pens AxisPens
		if err := deepcopy.Copy(&pens, &axis.Pens); err != nil {
			pens = axis.Pens
		}
		lvl.Line, lvl.Text, lvl.Grid = pens.Line, pens.Text, pens.Grid
		lvl.Visibility[i] = 1
		lvl.Ticks = axis.Ticks(tickCount)
		levels[i] = lvl
		tickCount = min(tickCount*2, maxLevelTicks)
	}
	return levels
}

// Ticks returns up to about maxTicks labelled major ticks over the whole
// axis, spread across the segments by pixel length.
func (axis *Axis) Ticks(maxTicks int) []Tick {
	if maxTicks < 1 {
		maxTicks = 1
	}
	var ticks []Tick
	for i, s := range axis.segments {
		m := maxTicks
		if axis.length > 0 && len(axis.segments) > 1 {
			m = max(1, int(math.Round(float64(maxTicks)*s.RenderLength/axis.length)))
		}
		for _, v := range axis.segmentTicks(s, m) {
			off, err := ToDevice(v, axis, i)
			if err != nil {
				continue
			}
			ticks = append(ticks, Tick{Value: v, Label: axis.FormatValue(v), Offset: off})
		}
	}
	return ticks
}

func (axis *Axis) segmentTicks(s Segment, maxTicks int) []float64 {
	o := scale.TickOptions{Max: maxTicks}
	switch axis.Scale {
	case ScaleDiscrete:
		slots := int(s.RenderMaximum-s.RenderMinimum) + 1
		step := max(1, int(math.Ceil(float64(slots)/float64(maxTicks))))
		var vs []float64
		for k := 0; k < slots; k += step {
			vs = append(vs, s.RenderMinimum+float64(k))
		}
		return vs
	case ScaleDate:
		return dateTicks(s.RenderMinimum, s.RenderMaximum, maxTicks)
	case ScaleLog:
		l, err := scale.NewLog(s.RenderMinimum, s.RenderMaximum, axis.logBase())
		if err != nil {
			return nil
		}
		major, _ := l.Ticks(o)
		return inside(major, s)
	}
	major, _ := scale.Linear{Min: s.RenderMinimum, Max: s.RenderMaximum}.Ticks(o)
	return inside(major, s)
}

func inside(vs []float64, s Segment) []float64 {
	out := vs[:0]
	for _, v := range vs {
		if s.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

type dateStep struct {
	seconds float64
	format  string
}

var dateSteps = []dateStep{
	{1, "%H:%M:%S"},
	{5, "%H:%M:%S"},
	{15, "%H:%M:%S"},
	{30, "%H:%M:%S"},
	{60, "%H:%M"},
	{5 * 60, "%H:%M"},
	{15 * 60, "%H:%M"},
	{30 * 60, "%H:%M"},
	{3600, "%H:%M"},
	{3 * 3600, "%a %H:%M"},
	{6 * 3600, "%a %H:%M"},
	{12 * 3600, "%m/%d %H:%M"},
	{86400, "%m/%d"},
	{7 * 86400, "%m/%d"},
	{30 * 86400, "%Y/%m"},
	{365 * 86400, "%Y"},
}

func dateStepFor(span float64, maxTicks int) dateStep {
	for _, st := range dateSteps {
		if span/st.seconds <= float64(maxTicks) {
			return st
		}
	}
	return dateSteps[len(dateSteps)-1]
}

// dateTicks places ticks on round UTC multiples of a calendar-ish step.
func dateTicks(lo, hi float64, maxTicks int) []float64 {
	st := dateStepFor(hi-lo, maxTicks)
	var vs []float64
	for v := math.Ceil(lo/st.seconds) * st.seconds; v <= hi; v += st.seconds {
		vs = append(vs, v)
	}
	return vs
}

// FormatValue renders a tick label.
func (axis *Axis) FormatValue(v float64) string {
	if axis.Scale == ScaleDate {
		format := axis.DateFormat
		if format == "" {
			format = dateStepFor(axis.hi-axis.lo, defaultBaseTicks).format
		}
		label, _ := strftime.Format(format, time.Unix(int64(v), 0).UTC())
		return label
	}
	return formatNumber(v)
}

func formatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if math.Abs(v) >= 1e4 {
		mv, prefix := humanize.ComputeSI(v)
		return humanize.Ftoa(math.Round(mv*100)/100) + prefix
	}
	return humanize.Ftoa(v)
}
