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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const latencyTOML = `
name = "latency"
width = 400
height = 300
orientation = "rotated"
columns = ["t", "ms", "errors"]
rows = [[0.0, 5.0, 1.0], [1.0, 50.0, 0.0], [2.0, 500.0, 3.0]]

[padding]
top = 5
right = 5
bottom = 5
left = 5

[[axis]]
name = "time"

[[axis]]
name = "latency"
scale = "log"
zoom-min = 10.0
zoom-max = 100.0

[[axis]]
name = "errors"
role = "y2"
ticks = "inward"

[[series]]
name = "p99"
x = "t"
y = "ms"

[[series]]
name = "errors"
x = "t"
y = "errors"
y-axis = "errors"
`

const latencyYAML = `
name: yaml-chart
columns: [region, hits]
rows:
  - [eu, 10]
  - [us, 30]
axes:
  - name: region
    scale: discrete
  - name: hits
    minimum: 0
    maximum: 40
series:
  - name: hits
    y: hits
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefinitionTOML(t *testing.T) {
	assert := assert.New(t)
	def, err := LoadDefinition(writeFile(t, "latency.toml", latencyTOML))
	require.NoError(t, err)
	assert.Equal("latency", def.Name)
	require.Len(t, def.Axes, 3)
	require.NotNil(t, def.Padding)
	assert.Equal(5, def.Padding.Left)

	c, err := def.Build(DefaultOptions())
	require.NoError(t, err)
	assert.Equal(OrientationRotated, c.Opts.Orientation)
	assert.Equal(3, c.GetAxisCount())

	y, err := c.GetAxis(1)
	require.NoError(t, err)
	assert.Equal(ScaleLog, y.Scale)
	assert.Equal(ZoomValue{Min: 10, Max: 100}, y.Zoom.Value)
	assert.True(y.Zoom.Dirty)

	y2, _ := c.GetAxis(2)
	assert.Equal(RoleYSecondary, y2.Role)
	assert.Equal(LocationMaximum, y2.Location)
	assert.Equal(TickInward, y2.TickDirection)

	series := c.GetSeries()
	require.Len(t, series, 2)
	assert.Equal(0, series[0].XColumn)
	assert.Equal(1, series[0].YAxis)
	assert.Equal(2, series[1].YAxis)

	_, err = c.Layout(400, 300)
	require.NoError(t, err)
	lo, hi := y.Range()
	assert.Equal(5.0, lo)
	assert.Equal(500.0, hi)
	assert.False(y.Transform().IsIdentity())
}

func TestLoadDefinitionYAML(t *testing.T) {
	assert := assert.New(t)
	def, err := LoadDefinition(writeFile(t, "regions.yml", latencyYAML))
	require.NoError(t, err)
	assert.Equal("yaml-chart", def.Name)

	c, err := def.Build(DefaultOptions())
	require.NoError(t, err)
	x, _ := c.GetAxis(0)
	assert.True(x.IsDiscrete())
	series := c.GetSeries()
	require.Len(t, series, 1)
	assert.Equal(-1, series[0].XColumn)
	assert.Equal(1, series[0].YColumn)

	_, err = c.Layout(300, 200)
	require.NoError(t, err)
	lo, hi := x.Range()
	assert.Equal(0.0, lo)
	assert.Equal(1.0, hi)
}

func TestDefinitionUnknownReferences(t *testing.T) {
	def := &Definition{
		Name:    "broken",
		Columns: []string{"a"},
		Axes:    []AxisDefinition{{Name: "x"}, {Name: "y"}},
		Series:  []SeriesDefinition{{Name: "s", Y: "missing"}},
	}
	_, err := def.Build(DefaultOptions())
	assert.Error(t, err)

	def.Series = []SeriesDefinition{{Name: "s", Y: "a", YAxis: "nope"}}
	_, err = def.Build(DefaultOptions())
	assert.Error(t, err)
}

func TestSaveDefinitionKeepsZoom(t *testing.T) {
	assert := assert.New(t)
	c := newTestChart(0)
	_, err := c.Layout(100, 100)
	require.NoError(t, err)
	c.SetZoomRange(0, 20, 60)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, SaveDefinition(path, c.Definition()))
	assert.True(IsDefinitionFile(path))

	def, err := LoadDefinition(path)
	require.NoError(t, err)
	require.Len(t, def.Axes, 2)
	require.NotNil(t, def.Axes[0].ZoomMin)
	assert.Equal(20.0, *def.Axes[0].ZoomMin)
	assert.Equal(60.0, *def.Axes[0].ZoomMax)
	assert.Nil(def.Axes[1].ZoomMin)
	require.NotNil(t, def.Axes[0].Maximum)
	assert.Equal(100.0, *def.Axes[0].Maximum)

	c2, err := def.Build(DefaultOptions())
	require.NoError(t, err)
	x, _ := c2.GetAxis(0)
	assert.Equal(ZoomValue{Min: 20, Max: 60}, x.Zoom.Value)
	assert.Equal(RoleX, x.Role)
}
