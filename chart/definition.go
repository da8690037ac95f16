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
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

type AxisDefinition struct {
	Name          string    `json:"name" toml:"name" yaml:"name"`
	Title         string    `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty"`
	Role          string    `json:"role,omitempty" toml:"role,omitempty" yaml:"role,omitempty"`
	Dim           string    `json:"dim,omitempty" toml:"dim,omitempty" yaml:"dim,omitempty"`
	Scale         string    `json:"scale,omitempty" toml:"scale,omitempty" yaml:"scale,omitempty"`
	Location      string    `json:"location,omitempty" toml:"location,omitempty" yaml:"location,omitempty"`
	Ticks         string    `json:"ticks,omitempty" toml:"ticks,omitempty" yaml:"ticks,omitempty"`
	Inverted      bool      `json:"inverted,omitempty" toml:"inverted,omitempty" yaml:"inverted,omitempty"`
	LogBase       float64   `json:"logBase,omitempty" toml:"log-base,omitempty" yaml:"log-base,omitempty"`
	Minimum       *float64  `json:"minimum,omitempty" toml:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum       *float64  `json:"maximum,omitempty" toml:"maximum,omitempty" yaml:"maximum,omitempty"`
	Breaks        []Break   `json:"breaks,omitempty" toml:"breaks,omitempty" yaml:"breaks,omitempty"`
	ZoomMin       *float64  `json:"zoomMin,omitempty" toml:"zoom-min,omitempty" yaml:"zoom-min,omitempty"`
	ZoomMax       *float64  `json:"zoomMax,omitempty" toml:"zoom-max,omitempty" yaml:"zoom-max,omitempty"`
	MinZoomFactor float64   `json:"minZoomFactor,omitempty" toml:"min-zoom-factor,omitempty" yaml:"min-zoom-factor,omitempty"`
	MaxZoomFactor float64   `json:"maxZoomFactor,omitempty" toml:"max-zoom-factor,omitempty" yaml:"max-zoom-factor,omitempty"`
	DateFormat    string    `json:"dateFormat,omitempty" toml:"date-format,omitempty" yaml:"date-format,omitempty"`
	Pens          *AxisPens `json:"pens,omitempty" toml:"pens,omitempty" yaml:"pens,omitempty"`
}

type SeriesDefinition struct {
	Name  string `json:"name" toml:"name" yaml:"name"`
	X     string `json:"x,omitempty" toml:"x,omitempty" yaml:"x,omitempty"`
	Y     string `json:"y" toml:"y" yaml:"y"`
	XAxis string `json:"xAxis,omitempty" toml:"x-axis,omitempty" yaml:"x-axis,omitempty"`
	YAxis string `json:"yAxis,omitempty" toml:"y-axis,omitempty" yaml:"y-axis,omitempty"`
}

// Definition is a chart described in a TOML or YAML file.
type Definition struct {
	Name        string             `json:"name" toml:"name" yaml:"name"`
	Width       int                `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height      int                `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	Padding     *Padding           `json:"padding,omitempty" toml:"padding,omitempty" yaml:"padding,omitempty"`
	Orientation string             `json:"orientation,omitempty" toml:"orientation,omitempty" yaml:"orientation,omitempty"`
	Overscroll  bool               `json:"overscroll,omitempty" toml:"overscroll,omitempty" yaml:"overscroll,omitempty"`
	Axes        []AxisDefinition   `json:"axes" toml:"axis" yaml:"axes"`
	Series      []SeriesDefinition `json:"series,omitempty" toml:"series,omitempty" yaml:"series,omitempty"`
	Columns     []string           `json:"columns,omitempty" toml:"columns,omitempty" yaml:"columns,omitempty"`
	Rows        [][]interface{}    `json:"rows,omitempty" toml:"rows,omitempty" yaml:"rows,omitempty"`
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// IsDefinitionFile tells if a path has a definition extension.
func IsDefinitionFile(path string) bool {
	return isYAML(path) || strings.ToLower(filepath.Ext(path)) == ".toml"
}

// LoadDefinition reads a chart definition, YAML or TOML by extension.
func LoadDefinition(path string) (*Definition, error) {
	def := &Definition{}
	if isYAML(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if err := yaml.Unmarshal(data, def); err != nil {
			return nil, errors.Annotatef(err, "parse %s", path)
		}
	} else if _, err := toml.DecodeFile(path, def); err != nil {
		return nil, errors.Annotatef(err, "parse %s", path)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// SaveDefinition writes def to path, YAML or TOML by extension.
func SaveDefinition(path string, def *Definition) error {
	var buf bytes.Buffer
	if isYAML(path) {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(def); err != nil {
			return errors.Trace(err)
		}
		enc.Close()
	} else if err := toml.NewEncoder(&buf).Encode(def); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(os.WriteFile(path, buf.Bytes(), 0644))
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func (d AxisDefinition) build(index int) *Axis {
	def := RoleAdded
	if index == 0 {
		def = RoleX
	} else if index == 1 {
		def = RoleYPrimary
	}
	axis := NewAxis(d.Name, getAxisRole(d.Role, def))
	if axis.Role == RoleAdded {
		axis.Dim = DimY
		if strings.EqualFold(d.Dim, "x") {
			axis.Dim = DimX
		}
	}
	axis.Title = d.Title
	axis.Scale = getScaleKind(d.Scale, ScaleLinear)
	axis.Location = getLocation(d.Location, axis.Location)
	axis.TickDirection = getTickDirection(d.Ticks, TickOutward)
	axis.Inverted = d.Inverted
	if d.LogBase > 0 {
		axis.LogBase = d.LogBase
	}
	axis.Minimum = floatOr(d.Minimum, math.NaN())
	axis.Maximum = floatOr(d.Maximum, math.NaN())
	axis.Breaks = d.Breaks
	axis.DateFormat = d.DateFormat
	if d.MinZoomFactor > 0 {
		axis.MinZoomFactor = d.MinZoomFactor
	}
	if d.MaxZoomFactor > 0 {
		axis.MaxZoomFactor = d.MaxZoomFactor
	}
	if d.Pens != nil {
		axis.Pens = *d.Pens
	}
	if d.ZoomMin != nil && d.ZoomMax != nil {
		lo, hi := *d.ZoomMin, *d.ZoomMax
		if lo > hi {
			lo, hi = hi, lo
		}
		axis.Zoom = ZoomRange{Value: ZoomValue{Min: lo, Max: hi}, Dirty: true}
	}
	return axis
}

// Build creates the chart a definition describes. Zero fields of the
// definition keep the values of opts.
func (d *Definition) Build(opts Options) (*Chart, error) {
	if d.Width > 0 {
		opts.Width = d.Width
	}
	if d.Height > 0 {
		opts.Height = d.Height
	}
	if d.Padding != nil {
		opts.Padding = *d.Padding
	}
	opts.Orientation = GetOrientation(d.Orientation, opts.Orientation)
	opts.Overscroll = opts.Overscroll || d.Overscroll

	c := NewChart(d.Name, opts)
	byName := make(map[string]int)
	for i, ad := range d.Axes {
		id := c.addAxis(ad.build(i))
		byName[ad.Name] = id
	}
	table := &Table{Columns: d.Columns, Rows: d.Rows}
	c.Data = table

	axisRef := func(name string, dim Dimension) (int, error) {
		if name == "" {
			if p := c.primaryAxis(dim); p >= 0 {
				return p, nil
			}
			return -1, errors.NotFoundf("%s axis", dim)
		}
		id, ok := byName[name]
		if !ok {
			return -1, errors.NotFoundf("axis %s", name)
		}
		return id, nil
	}
	for _, sd := range d.Series {
		s := Series{Name: sd.Name, XColumn: -1}
		if sd.X != "" {
			if s.XColumn = table.ColumnIndex(sd.X); s.XColumn < 0 {
				return nil, errors.NotFoundf("column %s of series %s", sd.X, sd.Name)
			}
		}
		if s.YColumn = table.ColumnIndex(sd.Y); s.YColumn < 0 {
			return nil, errors.NotFoundf("column %s of series %s", sd.Y, sd.Name)
		}
		var err error
		if s.XAxis, err = axisRef(sd.XAxis, DimX); err != nil {
			return nil, errors.Annotatef(err, "series %s", sd.Name)
		}
		if s.YAxis, err = axisRef(sd.YAxis, DimY); err != nil {
			return nil, errors.Annotatef(err, "series %s", sd.Name)
		}
		c.Series = append(c.Series, s)
	}
	return c, nil
}

// Definition exports the chart back to a definition, zoom ranges included.
func (c *Chart) Definition() *Definition {
	c.Lock()
	defer c.Unlock()
	d := &Definition{
		Name:        c.Name,
		Width:       c.Opts.Width,
		Height:      c.Opts.Height,
		Orientation: c.Opts.Orientation.String(),
		Overscroll:  c.Opts.Overscroll,
	}
	pad := c.Opts.Padding
	d.Padding = &pad
	for _, a := range c.Axes {
		ad := AxisDefinition{
			Name:          a.Name,
			Title:         a.Title,
			Role:          a.Role.String(),
			Dim:           a.Dim.String(),
			Scale:         a.Scale.String(),
			Location:      a.Location.String(),
			Ticks:         a.TickDirection.String(),
			Inverted:      a.Inverted,
			LogBase:       a.LogBase,
			Breaks:        a.Breaks,
			MinZoomFactor: a.MinZoomFactor,
			MaxZoomFactor: a.MaxZoomFactor,
			DateFormat:    a.DateFormat,
		}
		pens := a.Pens
		ad.Pens = &pens
		if !math.IsNaN(a.Minimum) {
			v := a.Minimum
			ad.Minimum = &v
		}
		if !math.IsNaN(a.Maximum) {
			v := a.Maximum
			ad.Maximum = &v
		}
		if z := a.Zoom.Value; !z.Auto {
			lo, hi := z.Min, z.Max
			ad.ZoomMin, ad.ZoomMax = &lo, &hi
		}
		d.Axes = append(d.Axes, ad)
	}
	table, _ := c.Data.(*Table)
	if table != nil {
		d.Columns, d.Rows = table.Columns, table.Rows
	}
	for _, s := range c.Series {
		sd := SeriesDefinition{Name: s.Name}
		if table != nil {
			if s.XColumn >= 0 && s.XColumn < len(table.Columns) {
				sd.X = table.Columns[s.XColumn]
			}
			if s.YColumn >= 0 && s.YColumn < len(table.Columns) {
				sd.Y = table.Columns[s.YColumn]
			}
		}
		if s.XAxis >= 0 && s.XAxis < len(c.Axes) {
			sd.XAxis = c.Axes[s.XAxis].Name
		}
		if s.YAxis >= 0 && s.YAxis < len(c.Axes) {
			sd.YAxis = c.Axes[s.YAxis].Name
		}
		d.Series = append(d.Series, sd)
	}
	return d
}

// AddAxisDefinition builds an axis from its definition, appends it and
// returns its state.
func (c *Chart) AddAxisDefinition(d AxisDefinition) AxisInfo {
	c.Lock()
	defer c.Unlock()
	a := d.build(len(c.Axes))
	c.addAxis(a)
	return a.Info()
}
