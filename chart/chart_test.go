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
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nan() float64 {
	return math.NaN()
}

// newTestChart builds an X axis over [0,100] and a Y axis over [0,10] that
// get exactly the widget size: no padding and bands of the given width.
func newTestChart(band int) *Chart {
	opts := DefaultOptions()
	opts.Padding = Padding{}
	opts.Measurer = MeasureFunc(func(*Axis, Orientation) int { return band })
	c := NewXYChart("test", opts)
	x, _ := c.GetAxis(0)
	x.Minimum, x.Maximum = 0, 100
	y, _ := c.GetAxis(1)
	y.Minimum, y.Maximum = 0, 10
	return c
}

func TestLayoutPublishes(t *testing.T) {
	assert := assert.New(t)
	c := newTestChart(20)
	l, err := c.Layout(220, 120)
	require.NoError(t, err)

	assert.Equal(int64(1), l.Seq)
	assert.Equal(ChartArea{Left: 20, Top: 0, Width: 200, Height: 100}, l.Area)
	require.Len(t, l.Axes, 2)
	assert.Equal(200.0, l.Axes[0].Length)
	assert.Equal(100.0, l.Axes[1].Length)
	assert.Equal(LocationMinimum, l.Axes[0].Placement.FinalLocation)
	assert.Equal(20, l.Axes[1].Placement.BandWidth)
	assert.Same(l, c.LastLayout())

	px, err := c.MapToDevice(50, 0, 0)
	require.NoError(t, err)
	assert.InDelta(120, px, 1e-9)
	py, err := c.MapToDevice(2.5, 1, 0)
	require.NoError(t, err)
	assert.InDelta(75, py, 1e-9)
}

func TestLayoutUsesDataRange(t *testing.T) {
	c := newTestChart(0)
	y, _ := c.GetAxis(1)
	y.Minimum, y.Maximum = nan(), nan()
	tbl := NewTable("t", "v")
	tbl.AddRow(0, -4)
	tbl.AddRow(1, nil)
	tbl.AddRow(2, 12.5)
	c.SetData(tbl)
	require.NoError(t, c.AddSeries(Series{Name: "v", XColumn: 0, YColumn: 1, XAxis: 0, YAxis: 1}))

	_, err := c.Layout(100, 100)
	require.NoError(t, err)
	lo, hi := y.Range()
	assert.Equal(t, -4.0, lo)
	assert.Equal(t, 12.5, hi)
}

func TestLayoutCorrectionPass(t *testing.T) {
	assert := assert.New(t)
	opts := DefaultOptions()
	opts.Padding = Padding{}
	c := NewXYChart("measured", opts)
	y, _ := c.GetAxis(1)
	y.Minimum, y.Maximum = 0, 250000
	l, err := c.Layout(640, 480)
	require.NoError(t, err)
	assert.GreaterOrEqual(l.Passes, 1)
	assert.Greater(l.Axes[1].Placement.BandWidth, 0)
	assert.Equal(float64(l.Axes[1].Placement.BandWidth), l.Area.Left)

	c.SetCapabilities(0)
	l, err = c.Layout(640, 480)
	require.NoError(t, err)
	assert.Equal(1, l.Passes)
	assert.Equal(float64(opts.DefaultBandWidth), l.Area.Left)
}

func TestDegenerateLayoutKeepsPreviousFrame(t *testing.T) {
	assert := assert.New(t)
	c := newTestChart(40)
	first, err := c.Layout(300, 200)
	require.NoError(t, err)
	x, _ := c.GetAxis(0)
	segs := x.Segments()

	_, err = c.Layout(12, 12)
	assert.Equal(ErrDegenerateArea, errors.Cause(err))
	assert.Same(first, c.LastLayout())
	assert.Equal(segs, x.Segments(), "a failed pass must not touch the axes")
	assert.True(c.GetStateMachine().IsInState("ERR00002"))
	assert.False(c.CanPublish())

	second, err := c.Layout(300, 200)
	require.NoError(t, err)
	assert.Equal(int64(2), second.Seq)
	assert.False(c.GetStateMachine().IsInState("ERR00002"))
	assert.True(c.CanPublish())
	assert.Contains(strings.Join(c.GetStates(), "\n"), "RESOLV ERR00002")
}

func TestLogRangeThroughZeroFails(t *testing.T) {
	c := newTestChart(0)
	y, _ := c.GetAxis(1)
	y.Scale = ScaleLog
	_, err := c.Layout(100, 100)
	assert.True(t, errors.IsNotValid(err))
	assert.Nil(t, c.LastLayout())
}

func TestRemoveAxisReindexes(t *testing.T) {
	assert := assert.New(t)
	c := newTestChart(0)
	y2 := NewAxis("y2", RoleYSecondary)
	y3 := NewAxis("y3", RoleAdded)
	assert.Equal(2, c.AddAxis(y2))
	assert.Equal(3, c.AddAxis(y3))
	require.NoError(t, c.AddSeries(Series{Name: "a", XColumn: -1, XAxis: 0, YAxis: 2}))
	require.NoError(t, c.AddSeries(Series{Name: "b", XColumn: -1, XAxis: 0, YAxis: 3}))

	require.NoError(t, c.RemoveAxis(2))
	assert.Equal(3, c.GetAxisCount())
	assert.Equal(2, y3.ID)
	series := c.GetSeries()
	assert.Equal(1, series[0].YAxis, "moved to the primary Y axis")
	assert.Equal(2, series[1].YAxis, "shifted down")

	_, err := c.GetAxis(5)
	assert.True(errors.IsNotFound(err))
	assert.True(errors.IsNotFound(c.RemoveAxis(7)))
	assert.True(errors.IsNotFound(c.AddSeries(Series{Name: "c", XAxis: 0, YAxis: 9})))
}

func TestReconcileEndToEnd(t *testing.T) {
	assert := assert.New(t)
	c := newTestChart(0)
	_, err := c.Layout(100, 100)
	require.NoError(t, err)
	x, _ := c.GetAxis(0)
	require.Equal(t, 100.0, x.Length())

	ok := c.Reconcile(ClientTransform{AxisKey: x.Key, Scale: 4, Translate: -150})
	assert.True(ok)
	z := x.Zoom
	assert.False(z.Dirty)
	assert.False(z.Value.Auto)
	assert.InDelta(25, z.Value.Width(), 1e-9)
	assert.InDelta(150.0/4, z.Value.Min, 1e-9)

	// the client value wins over the next pass
	_, err = c.Layout(100, 100)
	require.NoError(t, err)
	assert.Equal(4.0, x.Transform().Scale)
	assert.Equal(-150.0, x.Transform().Translate)

	// until the server sets a range again
	require.NoError(t, c.SetZoomRange(0, 0, 50))
	assert.True(x.Zoom.Dirty)
	assert.InDelta(2, x.Transform().Scale, 1e-9)
}

func TestReconcileIdentityMeansAuto(t *testing.T) {
	c := newTestChart(0)
	_, err := c.Layout(100, 100)
	require.NoError(t, err)
	require.NoError(t, c.SetZoomRange(0, 10, 20))
	x, _ := c.GetAxis(0)

	assert.True(t, c.Reconcile(ClientTransform{AxisKey: x.Key, Scale: 1, Translate: 0}))
	assert.True(t, x.Zoom.Value.Auto)
	assert.False(t, x.Zoom.Dirty)
	assert.True(t, x.Transform().IsIdentity())
}

func TestReconcileStaleAxis(t *testing.T) {
	c := newTestChart(0)
	_, err := c.Layout(100, 100)
	require.NoError(t, err)
	y, _ := c.GetAxis(1)
	key := y.Key
	require.NoError(t, c.RemoveAxis(1))

	assert.False(t, c.Reconcile(ClientTransform{AxisKey: key, Scale: 2, Translate: -5}))
	assert.Equal(t, 1, c.ReconcileAll([]ClientTransform{
		{AxisKey: key, Scale: 2},
		{AxisKey: c.Axes[0].Key, Scale: 2, Translate: -50},
	}))
	assert.True(t, c.GetStateMachine().IsInState("WARN0001"))
	warnings := c.GetStateMachine().GetOpenWarnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, key, warnings[0].AxisKey)
	assert.True(t, c.CanPublish(), "a stale axis is only a warning")
}

func TestReconcileClampsScale(t *testing.T) {
	c := newTestChart(0)
	_, err := c.Layout(100, 100)
	require.NoError(t, err)
	x, _ := c.GetAxis(0)
	c.Reconcile(ClientTransform{AxisKey: x.Key, Scale: 50, Translate: 0})
	assert.Equal(t, 8.0, x.Transform().Scale)
	assert.InDelta(t, 12.5, x.Zoom.Value.Width(), 1e-9)
}

func TestPointToDevice(t *testing.T) {
	assert := assert.New(t)
	c := newTestChart(0)
	_, err := c.Layout(200, 100)
	require.NoError(t, err)

	x, y, ok, err := c.PointToDevice(50, 2.5, 0, 1)
	require.NoError(t, err)
	assert.True(ok)
	assert.InDelta(100, x, 1e-9)
	assert.InDelta(75, y, 1e-9)

	_, _, ok, err = c.PointToDevice(nan(), 2.5, 0, 1)
	assert.NoError(err)
	assert.False(ok)

	c.SetOrientation(OrientationRotated)
	_, err = c.Layout(100, 200)
	require.NoError(t, err)
	x, y, ok, _ = c.PointToDevice(50, 2.5, 0, 1)
	assert.True(ok)
	// X runs down the device, Y runs right to left from the device width
	assert.InDelta(25, x, 1e-9)
	assert.InDelta(100, y, 1e-9)
	vx, vy, err := c.DeviceToPoint(x, y, 0, 1)
	require.NoError(t, err)
	assert.InDelta(50, vx, 1e-9)
	assert.InDelta(2.5, vy, 1e-9)
}

func TestExportFormula(t *testing.T) {
	c := newTestChart(0)
	_, err := c.ExportFormula(0, 1)
	assert.Equal(t, ErrNoLayout, errors.Cause(err))

	_, err = c.Layout(100, 100)
	require.NoError(t, err)
	f, err := c.ExportFormula(0, 1)
	require.NoError(t, err)
	names := []string{}
	for _, s := range f.Steps {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"flip", "x", "y", "unflip"}, names)
	assert.InDeltaSlice(t, IdentityAffine[:], f.Composed[:], 1e-12)

	_, err = c.ExportFormula(1, 0)
	assert.True(t, errors.IsNotValid(err))

	exp := c.ExportTransforms()
	require.Len(t, exp, 2)
	assert.Equal(t, Affine{1, 0, 0, 1, 0, 0}, exp[0].Matrix)
	assert.Len(t, exp[0].PenLevels, 4)
}

func TestSubscribe(t *testing.T) {
	c := newTestChart(0)
	var seqs []int64
	id := c.Subscribe(func(l *Layout) { seqs = append(seqs, l.Seq) })
	c.Layout(100, 100)
	c.Layout(100, 100)
	c.Unsubscribe(id)
	c.Layout(100, 100)
	assert.Equal(t, []int64{1, 2}, seqs)
}

func TestZoomBoundsHoldLiveTransform(t *testing.T) {
	assert := assert.New(t)
	c := newTestChart(0)
	_, err := c.Layout(100, 100)
	require.NoError(t, err)
	x, _ := c.GetAxis(0)
	require.True(t, c.Reconcile(ClientTransform{AxisKey: x.Key, Scale: 8, Translate: -700}))

	// zero keeps the lower bound
	require.NoError(t, c.SetZoomBounds(0, 0, 2))
	assert.Equal(1.0, x.MinZoomFactor)
	assert.Equal(2.0, x.MaxZoomFactor)
	assert.Equal(2.0, x.Transform().Scale)
	assert.Equal(-100.0, x.Transform().Translate)
	assert.Len(x.PenLevels(), ToZoomLevel(2))

	info, err := c.ZoomAxis(0, AutoZoom(), 0, 0)
	require.NoError(t, err)
	assert.True(info.Zoom.Value.Auto)
	assert.Equal(1.0, x.Transform().Scale)
	_, err = c.ZoomAxis(3, AutoZoom(), 0, 0)
	assert.True(errors.IsNotFound(err))
}
