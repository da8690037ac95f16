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
	"github.com/stretchr/testify/require"
)

func TestGestureCancelRestoresSnapshot(t *testing.T) {
	assert := assert.New(t)
	c := newTestChart(0)
	_, err := c.Layout(100, 100)
	require.NoError(t, err)
	x, _ := c.GetAxis(0)
	before := *x.Transform()

	g := c.BeginGesture()
	require.NoError(t, g.ZoomAt(0, 50, 4))
	assert.Equal(4.0, x.Transform().Scale)
	assert.Equal(-150.0, x.Transform().Translate)

	require.NoError(t, g.Pan(0, 1000))
	assert.Equal(0.0, x.Transform().Translate, "rubber band keeps the content flush")

	g.Cancel()
	assert.Equal(before, *x.Transform())
	assert.Nil(g.End())
}

func TestGestureEndReconciles(t *testing.T) {
	assert := assert.New(t)
	c := newTestChart(0)
	_, err := c.Layout(100, 100)
	require.NoError(t, err)
	x, _ := c.GetAxis(0)

	g := c.BeginGesture()
	require.NoError(t, g.ZoomAt(0, 0, 100))
	assert.Equal(8.0, x.Transform().Scale)
	assert.Error(g.Pan(4, 1))

	batch := g.End()
	require.Len(t, batch, 1)
	assert.Equal(x.Key, batch[0].AxisKey)
	assert.Equal(1, c.ReconcileAll(batch))
	assert.InDelta(12.5, x.Zoom.Value.Width(), 1e-9)
	assert.InDelta(0, x.Zoom.Value.Min, 1e-9)
}

func TestGestureOverscroll(t *testing.T) {
	c := newTestChart(0)
	c.SetOverscroll(true)
	_, err := c.Layout(100, 100)
	require.NoError(t, err)
	x, _ := c.GetAxis(0)

	g := c.BeginGesture()
	require.NoError(t, g.Pan(0, 30))
	assert.Equal(t, 30.0, x.Transform().Translate)
	g.End()
}

func TestGestureCancelAfterShrink(t *testing.T) {
	assert := assert.New(t)
	c := newTestChart(0)
	_, err := c.Layout(200, 200)
	require.NoError(t, err)
	x, _ := c.GetAxis(0)

	// zoom x2 anchored on the right edge leaves the content flush right
	g := c.BeginGesture()
	require.NoError(t, g.ZoomAt(0, 200, 2))
	require.NotNil(t, g.End())
	assert.Equal(-200.0, x.Transform().Translate)

	g = c.BeginGesture()
	require.NoError(t, g.Pan(0, -10))
	_, err = c.Layout(100, 100)
	require.NoError(t, err)
	assert.Equal(100.0, x.Length())
	assert.Equal(-100.0, x.Transform().Translate, "layout holds the live transform to the new length")

	g.Cancel()
	tr := *x.Transform()
	assert.Equal(2.0, tr.Scale)
	assert.Equal(-100.0, tr.Translate)
	assert.False(tr.ClampTranslate(0, x.Length()))
}

func TestGestureCancelKeepsOverscroll(t *testing.T) {
	c := newTestChart(0)
	c.SetOverscroll(true)
	_, err := c.Layout(200, 200)
	require.NoError(t, err)
	x, _ := c.GetAxis(0)

	g := c.BeginGesture()
	require.NoError(t, g.Pan(0, 30))
	g.End()
	g = c.BeginGesture()
	_, err = c.Layout(100, 100)
	require.NoError(t, err)
	g.Cancel()
	assert.Equal(t, 30.0, x.Transform().Translate)
}
