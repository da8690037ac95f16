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

	"github.com/juju/errors"
	"github.com/signal18/axiszoom/utils/state"
)

// AxisInfo is the exported view of an axis configuration.
type AxisInfo struct {
	ID            int           `json:"id"`
	Key           string        `json:"key"`
	Name          string        `json:"name"`
	Title         string        `json:"title,omitempty"`
	Role          AxisRole      `json:"role"`
	Dim           Dimension     `json:"dim"`
	Scale         ScaleKind     `json:"scale"`
	Location      Location      `json:"location"`
	TickDirection TickDirection `json:"tickDirection"`
	Inverted      bool          `json:"inverted"`
	Breaks        []Break       `json:"breaks,omitempty"`
	Zoom          ZoomRange     `json:"zoom"`
	MinZoomFactor float64       `json:"minZoomFactor"`
	MaxZoomFactor float64       `json:"maxZoomFactor"`
	Pens          AxisPens      `json:"pens"`
}

// TransformExport is what the interactive runtime gets per axis: the live
// transform, its static bounds and the pen table.
type TransformExport struct {
	AxisID     int           `json:"axisId"`
	AxisKey    string        `json:"axisKey"`
	Dim        Dimension     `json:"dim"`
	Length     float64       `json:"length"`
	Transform  ZoomTransform `json:"transform"`
	Matrix     Affine        `json:"matrix"`
	Level      int           `json:"level"`
	Overscroll bool          `json:"overscroll"`
	PenLevels  []PenLevel    `json:"penLevels"`
}

// Formula lets the runtime rebuild the composed zoom transform: factors in
// application order and their product.
type Formula struct {
	XAxis       int           `json:"xAxis"`
	YAxis       int           `json:"yAxis"`
	Orientation Orientation   `json:"orientation"`
	DeviceWidth float64       `json:"deviceWidth"`
	Area        ChartArea     `json:"area"`
	Steps       []FormulaStep `json:"steps"`
	Composed    Affine        `json:"composed"`
	Inverse     Affine        `json:"inverse"`
}

func (c *Chart) GetStateMachine() *state.StateMachine {
	return c.sme
}

func (c *Chart) GetStates() []string {
	return c.sme.GetStates()
}

// CanPublish tells if the last layout pass raised no error.
func (c *Chart) CanPublish() bool {
	return c.sme.CanPublish()
}

// LastLayout returns the last published layout, nil before the first
// successful pass.
func (c *Chart) LastLayout() *Layout {
	c.Lock()
	defer c.Unlock()
	return c.layout
}

func (c *Chart) GetAxis(id int) (*Axis, error) {
	c.Lock()
	defer c.Unlock()
	return c.axisAt(id)
}

func (c *Chart) GetAxisByKey(key string) (*Axis, error) {
	c.Lock()
	defer c.Unlock()
	if a := c.axisByKey(key); a != nil {
		return a, nil
	}
	return nil, errors.NotFoundf("axis %s", key)
}

func (c *Chart) GetAxisCount() int {
	c.Lock()
	defer c.Unlock()
	return c.axisCount()
}

func (c *Chart) GetSeries() []Series {
	c.Lock()
	defer c.Unlock()
	return append([]Series(nil), c.Series...)
}

func (a *Axis) Info() AxisInfo {
	return AxisInfo{
		ID:            a.ID,
		Key:           a.Key,
		Name:          a.Name,
		Title:         a.Title,
		Role:          a.Role,
		Dim:           a.Dim,
		Scale:         a.Scale,
		Location:      a.Location,
		TickDirection: a.TickDirection,
		Inverted:      a.Inverted,
		Breaks:        a.Breaks,
		Zoom:          a.Zoom,
		MinZoomFactor: a.MinZoomFactor,
		MaxZoomFactor: a.MaxZoomFactor,
		Pens:          a.Pens,
	}
}

func (c *Chart) GetAxesInfo() []AxisInfo {
	c.Lock()
	defer c.Unlock()
	infos := make([]AxisInfo, 0, len(c.Axes))
	for _, a := range c.Axes {
		infos = append(infos, a.Info())
	}
	return infos
}

// MapToDevice maps a value to a pixel along the axis in the logical frame:
// from the left edge of the plot for X, from its top for Y.
func (c *Chart) MapToDevice(value float64, axisID int, segment int) (float64, error) {
	c.Lock()
	defer c.Unlock()
	if c.layout == nil {
		return math.NaN(), errors.Trace(ErrNoLayout)
	}
	a, err := c.axisAt(axisID)
	if err != nil {
		return math.NaN(), err
	}
	off, err := ToDevice(value, a, segment)
	if err != nil {
		return math.NaN(), err
	}
	if a.Dim == DimY {
		return c.layout.Area.Top + c.layout.Area.Height - off, nil
	}
	return c.layout.Area.Left + off, nil
}

// PointToDevice maps a data point to device pixels, orientation included.
// ok is false when either value has no point.
func (c *Chart) PointToDevice(xv, yv float64, xAxis, yAxis int) (x, y float64, ok bool, err error) {
	c.Lock()
	defer c.Unlock()
	if c.layout == nil {
		return 0, 0, false, errors.Trace(ErrNoLayout)
	}
	xa, err := c.axisAt(xAxis)
	if err != nil {
		return 0, 0, false, err
	}
	ya, err := c.axisAt(yAxis)
	if err != nil {
		return 0, 0, false, err
	}
	xoff, okx := MapValue(xv, xa)
	yoff, oky := MapValue(yv, ya)
	if !okx || !oky {
		return math.NaN(), math.NaN(), false, nil
	}
	area := c.layout.Area
	x, y = c.layout.Orientation.ToDevice(area.Left+xoff, area.Top+area.Height-yoff, c.layout.DeviceWidth)
	return x, y, true, nil
}

// DeviceToPoint is the inverse of PointToDevice.
func (c *Chart) DeviceToPoint(x, y float64, xAxis, yAxis int) (float64, float64, error) {
	c.Lock()
	defer c.Unlock()
	if c.layout == nil {
		return 0, 0, errors.Trace(ErrNoLayout)
	}
	xa, err := c.axisAt(xAxis)
	if err != nil {
		return 0, 0, err
	}
	ya, err := c.axisAt(yAxis)
	if err != nil {
		return 0, 0, err
	}
	area := c.layout.Area
	lx, ly := c.layout.Orientation.FromDevice(x, y, c.layout.DeviceWidth)
	return FromDevice(lx-area.Left, xa), FromDevice(area.Top+area.Height-ly, ya), nil
}

// ExportTransforms returns the live transform of every axis.
func (c *Chart) ExportTransforms() []TransformExport {
	c.Lock()
	defer c.Unlock()
	out := make([]TransformExport, 0, len(c.Axes))
	for _, a := range c.Axes {
		out = append(out, TransformExport{
			AxisID:     a.ID,
			AxisKey:    a.Key,
			Dim:        a.Dim,
			Length:     a.length,
			Transform:  *a.transform,
			Matrix:     a.transform.Array(),
			Level:      ToZoomLevel(a.transform.Scale),
			Overscroll: c.Opts.Overscroll,
			PenLevels:  a.penLevels,
		})
	}
	return out
}

// ExportFormula describes the composed zoom transform of an X and a Y axis.
func (c *Chart) ExportFormula(xAxis, yAxis int) (*Formula, error) {
	c.Lock()
	defer c.Unlock()
	if c.layout == nil {
		return nil, errors.Trace(ErrNoLayout)
	}
	xa, err := c.axisAt(xAxis)
	if err != nil {
		return nil, err
	}
	ya, err := c.axisAt(yAxis)
	if err != nil {
		return nil, err
	}
	if xa.Dim != DimX || ya.Dim != DimY {
		return nil, errors.NotValidf("axis pair %d/%d", xAxis, yAxis)
	}
	l := c.layout
	f := &Formula{
		XAxis:       xAxis,
		YAxis:       yAxis,
		Orientation: l.Orientation,
		DeviceWidth: l.DeviceWidth,
		Area:        l.Area,
		Steps:       zoomRangeSteps(xa.transform, ya.transform, l.Area, l.Orientation, l.DeviceWidth),
	}
	f.Composed = ZoomRangeTransform(xa.transform, ya.transform, l.Area, l.Orientation, l.DeviceWidth)
	inv, err := f.Composed.Inverse()
	if err != nil {
		return nil, errors.Trace(err)
	}
	f.Inverse = inv
	return f, nil
}
