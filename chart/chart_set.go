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
	"github.com/juju/errors"
	"github.com/signal18/axiszoom/utils/s18log"
)

// AddAxis appends an axis to the arena and returns its ID.
func (c *Chart) AddAxis(axis *Axis) int {
	c.Lock()
	defer c.Unlock()
	return c.addAxis(axis)
}

func (c *Chart) RemoveAxis(id int) error {
	c.Lock()
	defer c.Unlock()
	name := ""
	if a, err := c.axisAt(id); err == nil {
		name = a.Name
	}
	if err := c.removeAxis(id); err != nil {
		return err
	}
	c.LogPrintf(LvlInfo, "Removed axis %s, %d axes left", name, len(c.Axes))
	return nil
}

// AddSeries binds a series after checking its axis indices.
func (c *Chart) AddSeries(s Series) error {
	c.Lock()
	defer c.Unlock()
	for _, ref := range []int{s.XAxis, s.YAxis} {
		if ref < 0 || ref >= len(c.Axes) {
			return errors.NotFoundf(chartError["ERR00005"], s.Name, ref, len(c.Axes))
		}
	}
	c.Series = append(c.Series, s)
	return nil
}

func (c *Chart) SetData(m DataModel) {
	c.Lock()
	c.Data = m
	c.Unlock()
}

// SetZoomRange sets the visible window of an axis. The transform follows
// at once when the axis has been laid out, and at the next pass otherwise.
func (c *Chart) SetZoomRange(axisID int, min, max float64) error {
	c.Lock()
	defer c.Unlock()
	a, err := c.axisAt(axisID)
	if err != nil {
		return err
	}
	c.setZoomRange(a, min, max)
	return nil
}

func (c *Chart) setZoomRange(a *Axis, min, max float64) {
	if a.SetZoomRange(min, max) {
		c.LogPrintf(LvlDbg, chartError["WARN0002"], a.transform.Scale, a.MinZoomFactor, a.MaxZoomFactor, a.Name)
	}
}

func (c *Chart) SetAutoZoom(axisID int) error {
	c.Lock()
	defer c.Unlock()
	a, err := c.axisAt(axisID)
	if err != nil {
		return err
	}
	a.SetAutoZoom()
	return nil
}

// SetZoomBounds changes the scale bounds of an axis. A zero bound keeps
// the current one.
func (c *Chart) SetZoomBounds(axisID int, minZoom, maxZoom float64) error {
	c.Lock()
	defer c.Unlock()
	a, err := c.axisAt(axisID)
	if err != nil {
		return err
	}
	c.setZoomBounds(a, minZoom, maxZoom)
	return nil
}

func (c *Chart) setZoomBounds(a *Axis, minZoom, maxZoom float64) {
	if minZoom > 0 {
		a.MinZoomFactor = minZoom
	}
	if maxZoom > 0 {
		a.MaxZoomFactor = maxZoom
	}
	a.syncZoomBounds()
	a.MinZoomFactor, a.MaxZoomFactor = a.transform.MinZoomFactor, a.transform.MaxZoomFactor
	if a.length <= 0 {
		return
	}
	if !c.Opts.Overscroll {
		a.transform.ClampTranslate(0, a.length)
	}
	a.penLevels = BuildPenLevels(a, c.Opts.BaseTicks, c.Opts.OnDemandLOD)
}

// ZoomAxis applies new scale bounds, when given, then the zoom window of
// an axis and returns the axis as it stands afterwards.
func (c *Chart) ZoomAxis(axisID int, z ZoomValue, minZoom, maxZoom float64) (AxisInfo, error) {
	c.Lock()
	defer c.Unlock()
	a, err := c.axisAt(axisID)
	if err != nil {
		return AxisInfo{}, err
	}
	if minZoom > 0 || maxZoom > 0 {
		c.setZoomBounds(a, minZoom, maxZoom)
	}
	if z.Auto {
		a.SetAutoZoom()
	} else {
		c.setZoomRange(a, z.Min, z.Max)
	}
	return a.Info(), nil
}

func (c *Chart) SetOrientation(o Orientation) {
	c.Lock()
	c.Opts.Orientation = o
	c.Unlock()
}

func (c *Chart) SetCapabilities(caps Capabilities) {
	c.Lock()
	c.Opts.Capabilities = caps
	c.Unlock()
}

func (c *Chart) SetOverscroll(b bool) {
	c.Lock()
	c.Opts.Overscroll = b
	c.Unlock()
}

func (c *Chart) SetHttpLog(tl *s18log.HttpLog) {
	c.Lock()
	c.htlog = tl
	c.Unlock()
}
