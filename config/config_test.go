// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package config

import (
	"testing"
	"time"

	"github.com/signal18/axiszoom/chart"
	"github.com/stretchr/testify/assert"
)

func TestChartOptions(t *testing.T) {
	assert := assert.New(t)
	conf := Default()
	conf.Orientation = "rotated"
	conf.FontMetrics = false
	conf.CharWidth = 9
	conf.PaddingLeft = 3

	opts := conf.ChartOptions()
	assert.Equal(chart.OrientationRotated, opts.Orientation)
	assert.False(opts.Capabilities.Has(chart.CapFontMetrics))
	assert.True(opts.Capabilities.Has(chart.CapAutoLayoutCorrection))
	assert.Equal(3, opts.Padding.Left)
	assert.Equal(10, opts.Padding.Top)
	assert.Equal(640, opts.Width)
	m, ok := opts.Measurer.(chart.TextMeasurer)
	assert.True(ok)
	assert.Equal(9.0, m.CharWidth)
	assert.Equal(14.0, m.LineHeight)
}

func TestZoomBounds(t *testing.T) {
	conf := Config{MinZoomFactor: 16, MaxZoomFactor: 2}
	lo, hi := conf.ZoomBounds()
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 16.0, hi)

	conf = Config{}
	lo, hi = conf.ZoomBounds()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 8.0, hi)
}

func TestDurationsAndLevels(t *testing.T) {
	conf := Default()
	assert.Equal(t, 50*time.Millisecond, conf.GetLayoutDebounce())
	assert.Equal(t, time.Hour, conf.GetChartExpire())
	assert.Equal(t, 4, conf.GetLogrusLevel())
	conf.LogLevel = 9
	assert.Equal(t, 6, conf.GetLogrusLevel())
}

func TestStringsMap(t *testing.T) {
	m := NewStringsMap()
	m.Set("/defs/cpu.toml", "c1")
	assert.Equal(t, "c1", m.Get("/defs/cpu.toml"))
	_, ok := m.CheckAndGet("/defs/mem.toml")
	assert.False(t, ok)
	k, ok := m.KeyOf("c1")
	assert.True(t, ok)
	assert.Equal(t, "/defs/cpu.toml", k)
	assert.Len(t, m.ToNewMap(), 1)
	m.Clear()
	assert.Empty(t, m.ToNewMap())
}
