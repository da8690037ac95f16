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

	"github.com/aclements/go-moremath/scale"
	"github.com/juju/errors"
)

// valueScale is the subset of the go-moremath scales the mapper needs.
type valueScale interface {
	Map(x float64) float64
	Unmap(y float64) float64
}

func (axis *Axis) segmentScale(s Segment) (valueScale, error) {
	if axis.Scale == ScaleLog {
		l, err := scale.NewLog(s.RenderMinimum, s.RenderMaximum, axis.logBase())
		if err != nil {
			return nil, errors.Annotatef(err, chartError["ERR00003"], axis.Name, s.RenderMinimum, s.RenderMaximum)
		}
		return l, nil
	}
	return scale.Linear{Min: s.RenderMinimum, Max: s.RenderMaximum}, nil
}

// ToDevice maps value through segment seg of axis and returns a pixel
// offset from the start of the axis. Discrete axes map row k to the centre
// of slot k.
func ToDevice(value float64, axis *Axis, seg int) (float64, error) {
	if seg < 0 || seg >= len(axis.segments) {
		return math.NaN(), segmentNotValid(seg, axis)
	}
	if math.IsNaN(value) {
		return math.NaN(), nil
	}
	s := axis.segments[seg]
	var off float64
	if axis.Scale == ScaleDiscrete {
		slots := s.RenderMaximum - s.RenderMinimum + 1
		off = s.RenderStart + (value-s.RenderMinimum+0.5)*s.RenderLength/slots
	} else {
		sc, err := axis.segmentScale(s)
		if err != nil {
			return math.NaN(), err
		}
		off = s.RenderStart + sc.Map(value)*s.RenderLength
	}
	if axis.Inverted {
		off = axis.length - off
	}
	return off, nil
}

// segmentAt returns the segment owning a pixel offset. Offsets outside every
// segment go to the nearest one and are clamped into it.
func (axis *Axis) segmentAt(off float64) (int, float64) {
	for i, s := range axis.segments {
		if s.ContainsOffset(off) {
			return i, off
		}
	}
	best, dist := 0, math.Inf(1)
	for i, s := range axis.segments {
		d := math.Min(math.Abs(off-s.RenderStart), math.Abs(off-s.RenderEnd()))
		if d < dist {
			best, dist = i, d
		}
	}
	s := axis.segments[best]
	return best, math.Min(math.Max(off, s.RenderStart), s.RenderEnd())
}

// FromDevice maps a pixel offset back to a value.
func FromDevice(off float64, axis *Axis) float64 {
	if len(axis.segments) == 0 || math.IsNaN(off) {
		return math.NaN()
	}
	if axis.Inverted {
		off = axis.length - off
	}
	idx, off := axis.segmentAt(off)
	s := axis.segments[idx]
	if s.RenderLength == 0 {
		return s.RenderMinimum
	}
	n := (off - s.RenderStart) / s.RenderLength
	if axis.Scale == ScaleDiscrete {
		slots := s.RenderMaximum - s.RenderMinimum + 1
		k := math.Min(math.Max(math.Floor(n*slots), 0), slots-1)
		return s.RenderMinimum + k
	}
	sc, err := axis.segmentScale(s)
	if err != nil {
		return math.NaN()
	}
	return sc.Unmap(n)
}

// SegmentOf returns the index of the segment holding value, or -1 when the
// value is outside the axis or inside a break.
func (axis *Axis) SegmentOf(value float64) int {
	for i, s := range axis.segments {
		if s.Contains(value) {
			return i
		}
	}
	return -1
}

// MapValue maps a model value to a pixel offset. ok is false for values
// that have no point on the axis.
func MapValue(value float64, axis *Axis) (off float64, ok bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return math.NaN(), false
	}
	if axis.Scale == ScaleLog && value <= 0 && axis.lo > 0 {
		return math.NaN(), false
	}
	seg := axis.SegmentOf(value)
	if seg < 0 {
		return math.NaN(), false
	}
	off, err := ToDevice(value, axis, seg)
	if err != nil {
		return math.NaN(), false
	}
	return off, true
}

// offsetOf maps any value to an offset, clamping values outside the axis to
// its ends and values inside a break to the end of the lower segment. On a
// discrete axis upper selects the far edge of the slot instead of its near
// edge.
func (axis *Axis) offsetOf(value float64, upper bool) float64 {
	segs := axis.segments
	if len(segs) == 0 {
		return 0
	}
	if value <= segs[0].RenderMinimum {
		value = segs[0].RenderMinimum
	}
	if last := segs[len(segs)-1]; value >= last.RenderMaximum {
		value = last.RenderMaximum
	}
	seg := len(segs) - 1
	for i, s := range segs {
		if value <= s.RenderMaximum {
			seg = i
			if value < s.RenderMinimum {
				seg, value = i-1, segs[i-1].RenderMaximum
			}
			break
		}
	}
	off, err := ToDevice(value, axis, seg)
	if err != nil {
		return 0
	}
	if axis.IsDiscrete() {
		if upper {
			off += axis.slotWidth(seg) / 2
		} else {
			off -= axis.slotWidth(seg) / 2
		}
	}
	return off
}

func (axis *Axis) slotWidth(seg int) float64 {
	s := axis.segments[seg]
	slots := s.RenderMaximum - s.RenderMinimum + 1
	w := s.RenderLength / slots
	if axis.Inverted {
		return -w
	}
	return w
}
