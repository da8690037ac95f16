// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package chart

import "math"

const (
	minAreaSide        = 10
	degenerateAreaSide = 5
)

type Padding struct {
	Top    int `json:"top" toml:"top" yaml:"top"`
	Right  int `json:"right" toml:"right" yaml:"right"`
	Bottom int `json:"bottom" toml:"bottom" yaml:"bottom"`
	Left   int `json:"left" toml:"left" yaml:"left"`
}

// ChartArea is the plot rectangle in the orientation neutral frame.
type ChartArea struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ComputeChartArea derives the plot rectangle from the widget size. When the
// chart is rotated the neutral frame is the device frame turned a quarter,
// so sizes swap and padding rotates with them.
func ComputeChartArea(width, height int, pad Padding, orientation Orientation) ChartArea {
	if orientation == OrientationRotated {
		width, height = height, width
		pad = Padding{Left: pad.Top, Right: pad.Bottom, Top: pad.Right, Bottom: pad.Left}
	}
	return ChartArea{
		Left:   float64(pad.Left),
		Top:    float64(pad.Top),
		Width:  float64(max(minAreaSide, width-pad.Left-pad.Right)),
		Height: float64(max(minAreaSide, height-pad.Top-pad.Bottom)),
	}
}

func (a ChartArea) Right() float64 {
	return a.Left + a.Width
}

func (a ChartArea) Bottom() float64 {
	return a.Top + a.Height
}

// Shrink removes axis bands from each side. The result may be degenerate.
func (a ChartArea) Shrink(left, top, right, bottom int) ChartArea {
	a.Left += float64(left)
	a.Top += float64(top)
	a.Width = math.Max(0, a.Width-float64(left+right))
	a.Height = math.Max(0, a.Height-float64(top+bottom))
	return a
}

func (a ChartArea) Degenerate() bool {
	return a.Width <= degenerateAreaSide || a.Height <= degenerateAreaSide
}

// Extent is the length of the area along dim.
func (a ChartArea) Extent(dim Dimension) float64 {
	if dim == DimY {
		return a.Height
	}
	return a.Width
}
