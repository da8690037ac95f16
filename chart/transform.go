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

	"github.com/gonum/matrix/mat64"
	"github.com/juju/errors"
)

const minZoomBound = 1e-6

// ZoomTransform is the 1-D scale and translate of one axis, applied to pixel
// offsets along the axis. Scale never leaves [MinZoomFactor, MaxZoomFactor].
type ZoomTransform struct {
	Dim           Dimension `json:"dim"`
	Scale         float64   `json:"scale"`
	Translate     float64   `json:"translate"`
	MinZoomFactor float64   `json:"minZoomFactor"`
	MaxZoomFactor float64   `json:"maxZoomFactor"`
}

func NewZoomTransform(dim Dimension, minZoom, maxZoom float64) *ZoomTransform {
	t := &ZoomTransform{Dim: dim, Scale: 1}
	t.SetBounds(minZoom, maxZoom)
	return t
}

// SetBounds replaces the zoom bounds and clamps the current scale into them.
func (t *ZoomTransform) SetBounds(minZoom, maxZoom float64) {
	if math.IsNaN(minZoom) || minZoom <= 0 {
		minZoom = minZoomBound
	}
	if math.IsNaN(maxZoom) || maxZoom <= 0 {
		maxZoom = minZoom
	}
	if minZoom > maxZoom {
		minZoom, maxZoom = maxZoom, minZoom
	}
	t.MinZoomFactor, t.MaxZoomFactor = minZoom, maxZoom
	t.Scale, _ = t.clampScale(t.Scale)
}

// clampScale returns s inside the bounds and whether it had to move.
func (t *ZoomTransform) clampScale(s float64) (float64, bool) {
	switch {
	case math.IsNaN(s):
		return t.MinZoomFactor, true
	case s < t.MinZoomFactor:
		return t.MinZoomFactor, true
	case s > t.MaxZoomFactor:
		return t.MaxZoomFactor, true
	}
	return s, false
}

func (t *ZoomTransform) Apply(d float64) float64 {
	return t.Scale*d + t.Translate
}

func (t *ZoomTransform) Invert(d float64) float64 {
	return (d - t.Translate) / t.Scale
}

func (t *ZoomTransform) IsIdentity() bool {
	return t.Scale == 1 && t.Translate == 0
}

// Reset goes back to the fully zoomed out view, or as close as the bounds
// allow.
func (t *ZoomTransform) Reset() {
	t.Scale, _ = t.clampScale(1)
	t.Translate = 0
}

// SetScale changes the scale around offset 0. It reports whether the
// requested scale was clamped.
func (t *ZoomTransform) SetScale(s float64) bool {
	var clamped bool
	t.Scale, clamped = t.clampScale(s)
	return clamped
}

func (t *ZoomTransform) Pan(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	t.Translate += delta
}

// ZoomAt multiplies the scale by factor keeping the content under anchor
// still.
func (t *ZoomTransform) ZoomAt(anchor, factor float64) bool {
	if math.IsNaN(factor) || factor <= 0 {
		return false
	}
	d := t.Invert(anchor)
	clamped := t.SetScale(t.Scale * factor)
	t.Translate = anchor - t.Scale*d
	return clamped
}

// ClampTranslate keeps the zoomed content flush with the inside range
// [lo, hi]: content wider than the range must cover it, narrower content must
// stay inside it. Applying it twice is the same as applying it once.
func (t *ZoomTransform) ClampTranslate(lo, hi float64) bool {
	b1, b2 := lo-t.Scale*lo, hi-t.Scale*hi
	mn, mx := math.Min(b1, b2), math.Max(b1, b2)
	switch {
	case t.Translate < mn:
		t.Translate = mn
	case t.Translate > mx:
		t.Translate = mx
	default:
		return false
	}
	return true
}

// Array exports the transform as a 2-D affine record,
// [scale,0,0,1,dx,0] for X and [1,0,0,scale,0,dy] for Y.
func (t *ZoomTransform) Array() Affine {
	if t.Dim == DimY {
		return Affine{1, 0, 0, t.Scale, 0, t.Translate}
	}
	return Affine{t.Scale, 0, 0, 1, t.Translate, 0}
}

// ToZoomLevel discretizes a zoom scale for pen selection.
func ToZoomLevel(s float64) int {
	if math.IsNaN(s) || s <= 0 {
		return 1
	}
	return int(math.Floor(math.Log2(s)+0.5)) + 1
}

// Affine is a 2-D affine map in canvas order [a b c d e f]:
// x' = a*x + c*y + e, y' = b*x + d*y + f.
type Affine [6]float64

var IdentityAffine = Affine{1, 0, 0, 1, 0, 0}

func (m Affine) dense() *mat64.Dense {
	return mat64.NewDense(3, 3, []float64{
		m[0], m[2], m[4],
		m[1], m[3], m[5],
		0, 0, 1,
	})
}

func affineFromDense(d *mat64.Dense) Affine {
	return Affine{d.At(0, 0), d.At(1, 0), d.At(0, 1), d.At(1, 1), d.At(0, 2), d.At(1, 2)}
}

func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Compose returns the map applying steps in order, steps[0] first.
func Compose(steps ...Affine) Affine {
	acc := IdentityAffine.dense()
	for _, s := range steps {
		var next mat64.Dense
		next.Mul(s.dense(), acc)
		acc = &next
	}
	return affineFromDense(acc)
}

func (m Affine) Inverse() (Affine, error) {
	var inv mat64.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return Affine{}, errors.Annotate(err, "affine map is singular")
	}
	return affineFromDense(&inv), nil
}

// FormulaStep is one named factor of the composed zoom transform.
type FormulaStep struct {
	Name   string `json:"name"`
	Matrix Affine `json:"matrix"`
}

// zoomRangeSteps lists the factors of the device to viewport transform in
// application order.
func zoomRangeSteps(x, y *ZoomTransform, area ChartArea, o Orientation, deviceWidth float64) []FormulaStep {
	flip := Affine{1, 0, 0, -1, -area.Left, area.Top + area.Height}
	unflip := Affine{1, 0, 0, -1, area.Left, area.Top + area.Height}
	steps := []FormulaStep{
		{Name: "flip", Matrix: flip},
		{Name: "x", Matrix: x.Array()},
		{Name: "y", Matrix: y.Array()},
		{Name: "unflip", Matrix: unflip},
	}
	if o == OrientationRotated {
		swap := Affine{0, -1, 1, 0, 0, deviceWidth}
		unswap := Affine{0, 1, -1, 0, deviceWidth, 0}
		steps = append([]FormulaStep{{Name: "swap", Matrix: swap}}, steps...)
		steps = append(steps, FormulaStep{Name: "unswap", Matrix: unswap})
	}
	return steps
}

// ZoomRangeTransform composes the X and Y transforms into one device to
// viewport map: flip, X, Y, inverse flip, wrapped in the orientation swap
// when rotated.
func ZoomRangeTransform(x, y *ZoomTransform, area ChartArea, o Orientation, deviceWidth float64) Affine {
	steps := zoomRangeSteps(x, y, area, o, deviceWidth)
	ms := make([]Affine, len(steps))
	for i, s := range steps {
		ms[i] = s.Matrix
	}
	return Compose(ms...)
}

// SetZoomRange makes [min, max] the visible window of the axis. The scale is
// clamped after the ideal one is computed and min stays anchored.
func (axis *Axis) SetZoomRange(min, max float64) bool {
	if min > max {
		min, max = max, min
	}
	axis.Zoom = ZoomRange{Value: ZoomValue{Min: min, Max: max}, Dirty: true}
	return axis.applyZoomRange()
}

// SetAutoZoom fits the axis to its data again.
func (axis *Axis) SetAutoZoom() {
	axis.Zoom = ZoomRange{Value: AutoZoom(), Dirty: true}
	axis.applyZoomRange()
}

// applyZoomRange seeds the live transform from the zoom range. It needs a
// segment table, before the first layout pass it only resets the transform.
func (axis *Axis) applyZoomRange() bool {
	t := axis.transform
	z := axis.Zoom.Value
	if z.Auto || axis.length <= 0 || len(axis.segments) == 0 {
		t.Reset()
		return false
	}
	lo := axis.offsetOf(z.Min, false)
	hi := axis.offsetOf(z.Max, true)
	ideal := t.MaxZoomFactor
	if w := math.Abs(hi - lo); w > 0 {
		ideal = axis.length / w
	}
	clamped := t.SetScale(ideal)
	if axis.Inverted {
		t.Translate = axis.length - t.Scale*lo
	} else {
		t.Translate = -t.Scale * lo
	}
	return clamped
}
