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
	"sort"
)

// Break removes the open value interval (Start, End) from the rendered axis.
type Break struct {
	Start float64 `json:"start" toml:"start" yaml:"start"`
	End   float64 `json:"end" toml:"end" yaml:"end"`
}

type Segment struct {
	RenderMinimum float64 `json:"renderMinimum"`
	RenderMaximum float64 `json:"renderMaximum"`
	RenderStart   float64 `json:"renderStart"`
	RenderLength  float64 `json:"renderLength"`
}

func (s Segment) Contains(v float64) bool {
	return v >= s.RenderMinimum && v <= s.RenderMaximum
}

func (s Segment) ContainsOffset(off float64) bool {
	return off >= s.RenderStart && off < s.RenderStart+s.RenderLength
}

func (s Segment) RenderEnd() float64 {
	return s.RenderStart + s.RenderLength
}

// normalizeBreaks orders breaks, merges the overlapping ones and drops those
// that are empty or not strictly inside (lo, hi).
func normalizeBreaks(breaks []Break, lo, hi float64) []Break {
	var bs []Break
	for _, b := range breaks {
		if b.Start > b.End {
			b.Start, b.End = b.End, b.Start
		}
		if !(b.End > b.Start) || b.Start <= lo || b.End >= hi {
			continue
		}
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].Start < bs[j].Start })
	merged := bs[:0]
	for _, b := range bs {
		n := len(merged)
		if n > 0 && b.Start <= merged[n-1].End {
			merged[n-1].End = math.Max(merged[n-1].End, b.End)
			continue
		}
		merged = append(merged, b)
	}
	return merged
}

// BuildSegments splits [lo, hi] at the breaks. The result always holds at
// least one segment.
func BuildSegments(lo, hi float64, breaks []Break) []Segment {
	if lo > hi {
		lo, hi = hi, lo
	}
	bs := normalizeBreaks(breaks, lo, hi)
	segs := make([]Segment, 0, len(bs)+1)
	start := lo
	for _, b := range bs {
		segs = append(segs, Segment{RenderMinimum: start, RenderMaximum: b.Start})
		start = b.End
	}
	return append(segs, Segment{RenderMinimum: start, RenderMaximum: hi})
}

// wholeRows snaps the breaks of a discrete axis to rows. The rows at both
// ends stay visible, so a break has to hide at least one row to be kept.
func wholeRows(breaks []Break) []Break {
	out := make([]Break, 0, len(breaks))
	for _, b := range breaks {
		if b.Start > b.End {
			b.Start, b.End = b.End, b.Start
		}
		b.Start, b.End = math.Floor(b.Start), math.Ceil(b.End)
		if b.End-b.Start >= 2 {
			out = append(out, b)
		}
	}
	return out
}

// segmentExtent is the share of the axis a segment asks for.
func segmentExtent(kind ScaleKind, s Segment) float64 {
	switch kind {
	case ScaleLog:
		return math.Abs(math.Log(math.Abs(s.RenderMaximum)) - math.Log(math.Abs(s.RenderMinimum)))
	case ScaleDiscrete:
		return s.RenderMaximum - s.RenderMinimum + 1
	}
	return s.RenderMaximum - s.RenderMinimum
}

// AllocateSegments lays the segments of axis over length pixels, gap pixels
// apart.
func AllocateSegments(axis *Axis, length, gap float64) {
	segs := axis.segments
	n := len(segs)
	if n == 0 {
		return
	}
	if length < 0 {
		length = 0
	}
	avail := length - gap*float64(n-1)
	if avail <= 0 {
		gap = 0
		avail = length
	}
	total := 0.0
	for _, s := range segs {
		total += segmentExtent(axis.Scale, s)
	}
	pos := 0.0
	for i := range segs {
		l := avail / float64(n)
		if total > 0 {
			l = avail * segmentExtent(axis.Scale, segs[i]) / total
		}
		if i == n-1 {
			l = length - pos
		}
		segs[i].RenderStart = pos
		segs[i].RenderLength = l
		pos += l + gap
	}
	axis.length = length
}
