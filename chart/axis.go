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

	"github.com/google/uuid"
)

// Dimension tells which edge of the plot area an axis belongs to.
type Dimension int

const (
	DimX Dimension = iota
	DimY
)

func (d Dimension) String() string {
	if d == DimY {
		return "y"
	}
	return "x"
}

func (d Dimension) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d Dimension) perpendicular() Dimension {
	if d == DimX {
		return DimY
	}
	return DimX
}

type AxisRole int

const (
	RoleX AxisRole = iota
	RoleYPrimary
	RoleYSecondary
	RoleAdded
)

func (r AxisRole) String() string {
	switch r {
	case RoleYPrimary:
		return "y"
	case RoleYSecondary:
		return "y2"
	case RoleAdded:
		return "added"
	}
	return "x"
}

func (r AxisRole) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func getAxisRole(s string, def AxisRole) AxisRole {
	switch strings.ToLower(s) {
	case "":
		return def
	case "x":
		return RoleX
	case "y", "y1":
		return RoleYPrimary
	case "y2":
		return RoleYSecondary
	}
	return RoleAdded
}

type ScaleKind int

const (
	ScaleLinear ScaleKind = iota
	ScaleLog
	ScaleDiscrete
	ScaleDate
)

func (k ScaleKind) String() string {
	switch k {
	case ScaleLog:
		return "log"
	case ScaleDiscrete:
		return "discrete"
	case ScaleDate:
		return "date"
	}
	return "linear"
}

func (k ScaleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func getScaleKind(s string, def ScaleKind) ScaleKind {
	switch strings.ToLower(s) {
	case "log", "logarithmic":
		return ScaleLog
	case "discrete", "category":
		return ScaleDiscrete
	case "date", "time":
		return ScaleDate
	case "linear":
		return ScaleLinear
	}
	return def
}

// Location is the declared edge of an axis. Zero and Both are resolved by
// the placement pass.
type Location int

const (
	LocationMinimum Location = iota
	LocationMaximum
	LocationZero
	LocationBoth
)

func (l Location) String() string {
	switch l {
	case LocationMaximum:
		return "maximum"
	case LocationZero:
		return "zero"
	case LocationBoth:
		return "both"
	}
	return "minimum"
}

func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func getLocation(s string, def Location) Location {
	switch strings.ToLower(s) {
	case "minimum", "min", "left", "bottom":
		return LocationMinimum
	case "maximum", "max", "right", "top":
		return LocationMaximum
	case "zero":
		return LocationZero
	case "both":
		return LocationBoth
	}
	return def
}

type TickDirection int

const (
	TickOutward TickDirection = iota
	TickInward
)

func (t TickDirection) String() string {
	if t == TickInward {
		return "inward"
	}
	return "outward"
}

func (t TickDirection) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func getTickDirection(s string, def TickDirection) TickDirection {
	switch strings.ToLower(s) {
	case "inward", "in", "inside":
		return TickInward
	case "outward", "out", "outside":
		return TickOutward
	}
	return def
}

// Pen is a stroke or text style handed to the drawing layer untouched.
type Pen struct {
	Color string    `json:"color" toml:"color" yaml:"color"`
	Width float64   `json:"width" toml:"width" yaml:"width"`
	Alpha float64   `json:"alpha" toml:"alpha" yaml:"alpha"`
	Dash  []float64 `json:"dash,omitempty" toml:"dash" yaml:"dash"`
}

type AxisPens struct {
	Line Pen `json:"line" toml:"line" yaml:"line"`
	Text Pen `json:"text" toml:"text" yaml:"text"`
	Grid Pen `json:"grid" toml:"grid" yaml:"grid"`
}

func DefaultAxisPens() AxisPens {
	return AxisPens{
		Line: Pen{Color: "#000000", Width: 1, Alpha: 1},
		Text: Pen{Color: "#000000", Width: 1, Alpha: 1},
		Grid: Pen{Color: "#cccccc", Width: 0.5, Alpha: 0.6, Dash: []float64{2, 2}},
	}
}

// ZoomValue is a visible value window, or AUTO to fit the data.
type ZoomValue struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Auto bool    `json:"auto"`
}

func AutoZoom() ZoomValue {
	return ZoomValue{Auto: true}
}

func (z ZoomValue) Width() float64 {
	if z.Auto {
		return math.NaN()
	}
	return z.Max - z.Min
}

// ZoomRange pairs the shared zoom value with its precedence flag. Dirty is
// set by SetZoomRange and only cleared by reconciliation.
type ZoomRange struct {
	Value ZoomValue `json:"value"`
	Dirty bool      `json:"dirty"`
}

type AxisPlacement struct {
	InitialLocation Location `json:"initialLocation"`
	FinalLocation   Location `json:"finalLocation"`
	MinOffset       int      `json:"minOffset"`
	MaxOffset       int      `json:"maxOffset"`
	BandWidth       int      `json:"bandWidth"`
}

// Axis is one entry of the chart arena. Configuration fields are set by the
// caller; the unexported fields are layout outputs rewritten on every pass,
// except transform which lives as long as the axis.
type Axis struct {
	ID            int
	Key           string
	Name          string
	Title         string
	Role          AxisRole
	Dim           Dimension
	Scale         ScaleKind
	Location      Location
	TickDirection TickDirection
	Inverted      bool
	LogBase       float64
	Minimum       float64
	Maximum       float64
	Breaks        []Break
	Zoom          ZoomRange
	MinZoomFactor float64
	MaxZoomFactor float64
	Pens          AxisPens
	DateFormat    string

	lo, hi    float64
	length    float64
	segments  []Segment
	placement AxisPlacement
	transform *ZoomTransform
	penLevels []PenLevel
}

func NewAxis(name string, role AxisRole) *Axis {
	axis := &Axis{
		Key:           uuid.New().String(),
		Name:          name,
		Role:          role,
		Scale:         ScaleLinear,
		LogBase:       10,
		Minimum:       math.NaN(),
		Maximum:       math.NaN(),
		Zoom:          ZoomRange{Value: AutoZoom()},
		MinZoomFactor: 1,
		MaxZoomFactor: 8,
		Pens:          DefaultAxisPens(),
	}
	switch role {
	case RoleX:
		axis.Dim = DimX
	case RoleYSecondary:
		axis.Dim = DimY
		axis.Location = LocationMaximum
	default:
		axis.Dim = DimY
	}
	axis.transform = NewZoomTransform(axis.Dim, axis.MinZoomFactor, axis.MaxZoomFactor)
	return axis
}

// Segments returns a copy of the segment table of the last layout pass.
func (axis *Axis) Segments() []Segment {
	return append([]Segment(nil), axis.segments...)
}

func (axis *Axis) Placement() AxisPlacement {
	return axis.placement
}

// Transform is the live zoom/pan transform. It is shared with gestures.
func (axis *Axis) Transform() *ZoomTransform {
	return axis.transform
}

func (axis *Axis) PenLevels() []PenLevel {
	return axis.penLevels
}

// Length is the pixel length of the axis after pixel allocation.
func (axis *Axis) Length() float64 {
	return axis.length
}

// Range is the full value range of the last layout pass.
func (axis *Axis) Range() (float64, float64) {
	return axis.lo, axis.hi
}

func (axis *Axis) IsDiscrete() bool {
	return axis.Scale == ScaleDiscrete
}

func (axis *Axis) hasExplicitRange() bool {
	return !math.IsNaN(axis.Minimum) && !math.IsNaN(axis.Maximum)
}

func (axis *Axis) logBase() int {
	b := int(math.Round(axis.LogBase))
	if b < 2 {
		return 10
	}
	return b
}

// syncZoomBounds pushes configuration bounds into the live transform and
// re-clamps it.
func (axis *Axis) syncZoomBounds() {
	if axis.transform == nil {
		axis.transform = NewZoomTransform(axis.Dim, axis.MinZoomFactor, axis.MaxZoomFactor)
		return
	}
	axis.transform.Dim = axis.Dim
	axis.transform.SetBounds(axis.MinZoomFactor, axis.MaxZoomFactor)
}
