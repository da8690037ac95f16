// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package chart

// Gesture mirrors the interactive runtime on the Go side: it owns the live
// transforms between Begin and End or Cancel.
type Gesture struct {
	chart    *Chart
	snapshot map[string]ZoomTransform
	touched  map[string]bool
	done     bool
}

// BeginGesture snapshots every live transform so Cancel can restore them.
func (c *Chart) BeginGesture() *Gesture {
	c.Lock()
	defer c.Unlock()
	g := &Gesture{
		chart:    c,
		snapshot: make(map[string]ZoomTransform, len(c.Axes)),
		touched:  make(map[string]bool),
	}
	for _, a := range c.Axes {
		g.snapshot[a.Key] = *a.transform
	}
	return g
}

func (g *Gesture) mutate(axisID int, fn func(a *Axis)) error {
	c := g.chart
	c.Lock()
	defer c.Unlock()
	a, err := c.axisAt(axisID)
	if err != nil {
		return err
	}
	if g.done {
		return nil
	}
	fn(a)
	if !c.Opts.Overscroll {
		a.transform.ClampTranslate(0, a.length)
	}
	g.touched[a.Key] = true
	return nil
}

// Pan moves the content of an axis by delta pixels.
func (g *Gesture) Pan(axisID int, delta float64) error {
	return g.mutate(axisID, func(a *Axis) { a.transform.Pan(delta) })
}

// ZoomAt zooms an axis by factor around a pixel offset. Out of range
// factors are clamped silently.
func (g *Gesture) ZoomAt(axisID int, anchor, factor float64) error {
	return g.mutate(axisID, func(a *Axis) { a.transform.ZoomAt(anchor, factor) })
}

// Cancel puts back the transforms of the snapshot, held to the current
// axis lengths.
func (g *Gesture) Cancel() {
	c := g.chart
	c.Lock()
	defer c.Unlock()
	if g.done {
		return
	}
	for _, a := range c.Axes {
		if t, ok := g.snapshot[a.Key]; ok {
			*a.transform = t
			a.transform.SetBounds(a.MinZoomFactor, a.MaxZoomFactor)
			// a layout pass may have shortened the axis since Begin
			if !c.Opts.Overscroll {
				a.transform.ClampTranslate(0, a.length)
			}
		}
	}
	g.done = true
}

// End closes the gesture and returns the transforms to reconcile.
func (g *Gesture) End() []ClientTransform {
	c := g.chart
	c.Lock()
	defer c.Unlock()
	if g.done {
		return nil
	}
	g.done = true
	var batch []ClientTransform
	for _, a := range c.Axes {
		if g.touched[a.Key] {
			batch = append(batch, ClientTransform{AxisKey: a.Key, Scale: a.transform.Scale, Translate: a.transform.Translate})
		}
	}
	return batch
}
