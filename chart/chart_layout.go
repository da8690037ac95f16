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

	"github.com/juju/errors"
)

// AxisLayout is the per-axis part of a published layout.
type AxisLayout struct {
	ID         int           `json:"id"`
	Key        string        `json:"key"`
	Name       string        `json:"name"`
	Dim        Dimension     `json:"dim"`
	Scale      ScaleKind     `json:"scale"`
	Minimum    float64       `json:"minimum"`
	Maximum    float64       `json:"maximum"`
	Length     float64       `json:"length"`
	Placement  AxisPlacement `json:"placement"`
	ZeroOffset float64       `json:"zeroOffset"`
	Segments   []Segment     `json:"segments"`
}

// Layout is what one successful pass publishes to the drawing layer. It is
// never modified after publication.
type Layout struct {
	Seq         int64        `json:"seq"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Orientation Orientation  `json:"orientation"`
	DeviceWidth float64      `json:"deviceWidth"`
	Outer       ChartArea    `json:"outer"`
	Area        ChartArea    `json:"area"`
	Axes        []AxisLayout `json:"axes"`
	Passes      int          `json:"passes"`
	Time        time.Time    `json:"time"`
}

// Layout runs one layout pass at the given widget size.
func (c *Chart) Layout(width, height int) (*Layout, error) {
	c.Lock()
	defer c.Unlock()
	return c.layoutLocked(width, height)
}

// Relayout runs a pass at the configured size.
func (c *Chart) Relayout() (*Layout, error) {
	c.Lock()
	defer c.Unlock()
	return c.layoutLocked(c.Opts.Width, c.Opts.Height)
}

// layoutLocked computes ranges and segments, measures the bands, places
// the axes, shrinks the plot area, allocates pixels and, when the device
// supports it, re-measures with the real lengths until the bands settle.
// Work happens on copies of the axes; nothing is committed unless the pass
// succeeds.
func (c *Chart) layoutLocked(width, height int) (*Layout, error) {
	c.sme.ClearState()
	c.Opts.Width, c.Opts.Height = width, height
	outer := ComputeChartArea(width, height, c.Opts.Padding, c.Opts.Orientation)

	work := make([]*Axis, len(c.Axes))
	for i, a := range c.Axes {
		w := *a
		w.lo, w.hi = c.valueRange(a)
		if w.Scale == ScaleLog && w.lo <= 0 && w.hi >= 0 {
			c.stateError("ERR00003", a.Name, w.lo, w.hi)
			return nil, errors.NotValidf("log range [%g, %g] of axis %s", w.lo, w.hi, a.Name)
		}
		breaks := a.Breaks
		if a.IsDiscrete() {
			breaks = wholeRows(breaks)
		}
		w.segments = BuildSegments(w.lo, w.hi, breaks)
		AllocateSegments(&w, outer.Extent(w.Dim), c.Opts.BreakGap)
		work[i] = &w
	}
	xs, ys := edgeAxes(work, DimX), edgeAxes(work, DimY)
	var px, py *Axis
	if len(xs) > 0 {
		px = xs[0]
	}
	if len(ys) > 0 {
		py = ys[0]
	}

	finalX, finalY := ResolveLocations(xs, py), ResolveLocations(ys, px)
	widths := c.measure(work)
	var area ChartArea
	var xres, yres PlacementResult
	passes := 0
	for {
		passes++
		bandOf := func(a *Axis) int { return widths[a.ID] }
		xres = StackPlacements(xs, finalX, bandOf, c.Opts.InwardTickOverlap)
		yres = StackPlacements(ys, finalY, bandOf, c.Opts.InwardTickOverlap)
		// X Minimum is the bottom edge, Y Minimum the left one
		area = outer.Shrink(yres.MinBand, xres.MaxBand, yres.MaxBand, xres.MinBand)
		if area.Degenerate() {
			c.stateError("ERR00002", area.Width, area.Height)
			return nil, errors.Trace(ErrDegenerateArea)
		}
		for _, w := range work {
			AllocateSegments(w, area.Extent(w.Dim), c.Opts.BreakGap)
		}
		if !c.Opts.Capabilities.Has(CapAutoLayoutCorrection) {
			break
		}
		next := c.measure(work)
		if sameWidths(widths, next) {
			break
		}
		widths = next
		if passes >= max(1, c.Opts.MaxCorrectionPasses) {
			c.stateWarn("WARN0004", passes)
			break
		}
	}

	for i, a := range xs {
		a.placement = xres.Placements[i]
	}
	for i, a := range ys {
		a.placement = yres.Placements[i]
	}
	c.commit(work)

	c.seq++
	l := &Layout{
		Seq:         c.seq,
		Width:       width,
		Height:      height,
		Orientation: c.Opts.Orientation,
		DeviceWidth: float64(width),
		Outer:       outer,
		Area:        area,
		Passes:      passes,
		Time:        time.Now(),
	}
	for _, a := range c.Axes {
		l.Axes = append(l.Axes, c.axisLayout(a))
	}
	c.layout = l
	c.dump(l)
	for _, fn := range c.listeners {
		fn(l)
	}
	return l, nil
}

func (c *Chart) measure(axes []*Axis) []int {
	widths := make([]int, len(axes))
	for i, a := range axes {
		if c.Opts.Capabilities.Has(CapFontMetrics) && c.Opts.Measurer != nil {
			widths[i] = c.Opts.Measurer.BandWidth(a, c.Opts.Orientation)
		} else {
			widths[i] = c.Opts.DefaultBandWidth
		}
	}
	return widths
}

func sameWidths(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// commit copies the outputs of a successful pass into the arena and
// refreshes transforms and pen tables.
func (c *Chart) commit(work []*Axis) {
	for i, a := range c.Axes {
		w := work[i]
		a.lo, a.hi = w.lo, w.hi
		a.length = w.length
		a.segments = w.segments
		a.placement = w.placement
		a.syncZoomBounds()
		if a.Zoom.Dirty {
			if a.applyZoomRange() {
				c.stateWarn("WARN0002", a.transform.Scale, a.MinZoomFactor, a.MaxZoomFactor, a.Name)
			}
		}
		// the live translate was set for the previous length
		if !c.Opts.Overscroll {
			a.transform.ClampTranslate(0, a.length)
		}
		a.penLevels = BuildPenLevels(a, c.Opts.BaseTicks, c.Opts.OnDemandLOD)
	}
}

func (c *Chart) axisLayout(a *Axis) AxisLayout {
	al := AxisLayout{
		ID:         a.ID,
		Key:        a.Key,
		Name:       a.Name,
		Dim:        a.Dim,
		Scale:      a.Scale,
		Minimum:    a.lo,
		Maximum:    a.hi,
		Length:     a.length,
		Placement:  a.placement,
		ZeroOffset: -1,
		Segments:   a.Segments(),
	}
	if a.placement.FinalLocation == LocationZero {
		if p := c.primaryAxis(a.Dim.perpendicular()); p >= 0 {
			if off, ok := MapValue(0, c.Axes[p]); ok {
				al.ZeroOffset = off
			}
		}
	}
	return al
}

// valueRange is the full value range of an axis: explicit bounds first,
// then the data of the series bound to it, then a default.
func (c *Chart) valueRange(a *Axis) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	if a.IsDiscrete() {
		lo, hi = 0, 0
		if c.Data != nil && c.Data.RowCount() > 0 {
			hi = float64(c.Data.RowCount() - 1)
		}
	} else if c.Data != nil {
		for _, s := range c.Series {
			col := -2
			switch {
			case s.XAxis == a.ID && a.Dim == DimX:
				col = s.XColumn
			case s.YAxis == a.ID && a.Dim == DimY:
				col = s.YColumn
			}
			if col == -2 {
				continue
			}
			for row := 0; row < c.Data.RowCount(); row++ {
				v, ok := float64(row), true
				if col >= 0 {
					v, ok = ToFloat(c.Data.ValueAt(row, col))
				}
				if !ok || math.IsInf(v, 0) || (a.Scale == ScaleLog && v <= 0) {
					continue
				}
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}
	}
	if !math.IsNaN(a.Minimum) {
		lo = a.Minimum
	}
	if !math.IsNaN(a.Maximum) {
		hi = a.Maximum
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		c.stateWarn("WARN0003", a.Name)
		if a.Scale == ScaleLog {
			return 1, 10
		}
		return 0, 1
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi && !a.IsDiscrete() {
		if a.Scale == ScaleLog {
			b := float64(a.logBase())
			return lo / b, hi * b
		}
		return lo - 1, hi + 1
	}
	return lo, hi
}
