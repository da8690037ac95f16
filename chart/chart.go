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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/signal18/axiszoom/utils/s18log"
	"github.com/signal18/axiszoom/utils/state"
)

const defaultBaseTicks = 5

// Capabilities describes what the output device can do. Optional layout
// steps check the flags before running.
type Capabilities uint8

const (
	CapFontMetrics Capabilities = 1 << iota
	CapAutoLayoutCorrection
)

func (c Capabilities) Has(f Capabilities) bool {
	return c&f == f
}

type Options struct {
	Width               int
	Height              int
	Padding             Padding
	Orientation         Orientation
	Capabilities        Capabilities
	DefaultBandWidth    int
	InwardTickOverlap   int
	BreakGap            float64
	Overscroll          bool
	OnDemandLOD         bool
	BaseTicks           int
	MaxCorrectionPasses int
	Verbose             bool
	Measurer            BandMeasurer `json:"-"`
}

func DefaultOptions() Options {
	return Options{
		Width:               640,
		Height:              480,
		Padding:             Padding{Top: 10, Right: 10, Bottom: 10, Left: 10},
		Capabilities:        CapFontMetrics | CapAutoLayoutCorrection,
		DefaultBandWidth:    40,
		InwardTickOverlap:   10,
		BreakGap:            10,
		BaseTicks:           defaultBaseTicks,
		MaxCorrectionPasses: 3,
		Measurer:            DefaultTextMeasurer(),
	}
}

// Series binds a data column to an X and a Y axis by arena index. XColumn
// -1 plots against the row number.
type Series struct {
	Name    string `json:"name"`
	XColumn int    `json:"xColumn"`
	YColumn int    `json:"yColumn"`
	XAxis   int    `json:"xAxis"`
	YAxis   int    `json:"yAxis"`
}

// Chart owns an arena of axes and the series that reference them by index.
// Every exported method takes the chart lock, so layout passes never
// overlap.
type Chart struct {
	ID      string
	Name    string
	Opts    Options
	Axes    []*Axis
	Series  []Series
	Data    DataModel
	Created time.Time

	sme       *state.StateMachine
	htlog     *s18log.HttpLog
	layout    *Layout
	seq       int64
	listeners map[int]func(*Layout)
	nextSub   int
	sync.Mutex
}

func NewChart(name string, opts Options) *Chart {
	c := &Chart{
		ID:        uuid.New().String(),
		Name:      name,
		Opts:      opts,
		Created:   time.Now(),
		sme:       new(state.StateMachine),
		listeners: make(map[int]func(*Layout)),
	}
	if c.Opts.Measurer == nil {
		c.Opts.Measurer = DefaultTextMeasurer()
	}
	if c.Opts.BaseTicks <= 0 {
		c.Opts.BaseTicks = defaultBaseTicks
	}
	c.sme.Init()
	return c
}

// NewXYChart builds a chart with one X axis and one primary Y axis.
func NewXYChart(name string, opts Options) *Chart {
	c := NewChart(name, opts)
	c.AddAxis(NewAxis("x", RoleX))
	c.AddAxis(NewAxis("y", RoleYPrimary))
	return c
}

// Subscribe registers fn for every published layout and returns a handle
// for Unsubscribe. fn runs with the chart locked and must not call back
// into the chart.
func (c *Chart) Subscribe(fn func(*Layout)) int {
	c.Lock()
	defer c.Unlock()
	c.nextSub++
	c.listeners[c.nextSub] = fn
	return c.nextSub
}

func (c *Chart) Unsubscribe(id int) {
	c.Lock()
	delete(c.listeners, id)
	c.Unlock()
}

func (c *Chart) axisCount() int {
	return len(c.Axes)
}

func (c *Chart) axisAt(id int) (*Axis, error) {
	if id < 0 || id >= len(c.Axes) {
		return nil, axisNotFound(id, len(c.Axes))
	}
	return c.Axes[id], nil
}

func (c *Chart) axisByKey(key string) *Axis {
	for _, a := range c.Axes {
		if a.Key == key {
			return a
		}
	}
	return nil
}

// primaryAxis is the first axis of an edge, or -1.
func (c *Chart) primaryAxis(dim Dimension) int {
	for i, a := range c.Axes {
		if a.Dim == dim {
			return i
		}
	}
	return -1
}

func (c *Chart) addAxis(axis *Axis) int {
	axis.ID = len(c.Axes)
	axis.syncZoomBounds()
	c.Axes = append(c.Axes, axis)
	return axis.ID
}

// removeAxis drops an axis and renumbers the arena. Series indices past the
// removed one shift down; series on the removed axis move to the primary
// axis of the same edge.
func (c *Chart) removeAxis(id int) error {
	axis, err := c.axisAt(id)
	if err != nil {
		return err
	}
	c.Axes = append(c.Axes[:id], c.Axes[id+1:]...)
	for i := id; i < len(c.Axes); i++ {
		c.Axes[i].ID = i
	}
	primary := c.primaryAxis(axis.Dim)
	fix := func(ref int) int {
		switch {
		case ref == id:
			return primary
		case ref > id:
			return ref - 1
		}
		return ref
	}
	for i := range c.Series {
		c.Series[i].XAxis = fix(c.Series[i].XAxis)
		c.Series[i].YAxis = fix(c.Series[i].YAxis)
	}
	return nil
}
