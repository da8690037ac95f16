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
	"time"

	"github.com/signal18/axiszoom/chart"
)

type Config struct {
	ConfigFile         string   `mapstructure:"config"`
	Verbose            bool     `mapstructure:"verbose"`
	BindAddr           string   `mapstructure:"http-bind-address"`
	HttpPort           string   `mapstructure:"http-port"`
	HttpServ           bool     `mapstructure:"http-server"`
	CorsOrigins        []string `mapstructure:"http-cors-origins"`
	LogFile            string   `mapstructure:"log-file"`
	LogLevel           int      `mapstructure:"log-level"`
	LogRotateMaxSize   int      `mapstructure:"log-rotate-max-size"`
	LogRotateMaxBackup int      `mapstructure:"log-rotate-max-backup"`
	LogRotateMaxAge    int      `mapstructure:"log-rotate-max-age"`
	LogBufferSize      int      `mapstructure:"log-buffer-size"`
	ChartWidth         int      `mapstructure:"chart-width"`
	ChartHeight        int      `mapstructure:"chart-height"`
	PaddingTop         int      `mapstructure:"padding-top"`
	PaddingRight       int      `mapstructure:"padding-right"`
	PaddingBottom      int      `mapstructure:"padding-bottom"`
	PaddingLeft        int      `mapstructure:"padding-left"`
	Orientation        string   `mapstructure:"orientation"`
	DefaultBandWidth   int      `mapstructure:"default-band-width"`
	InwardTickOverlap  int      `mapstructure:"inward-tick-overlap"`
	BreakGap           float64  `mapstructure:"break-gap"`
	BaseTicks          int      `mapstructure:"base-ticks"`
	MinZoomFactor      float64  `mapstructure:"min-zoom-factor"`
	MaxZoomFactor      float64  `mapstructure:"max-zoom-factor"`
	Overscroll         bool     `mapstructure:"overscroll"`
	OnDemandLOD        bool     `mapstructure:"on-demand-lod"`
	FontMetrics        bool     `mapstructure:"font-metrics"`
	LayoutCorrection   bool     `mapstructure:"layout-correction"`
	CorrectionPasses   int      `mapstructure:"layout-correction-passes"`
	CharWidth          float64  `mapstructure:"char-width"`
	LineHeight         float64  `mapstructure:"line-height"`
	TickLength         float64  `mapstructure:"tick-length"`
	LayoutDebounce     int      `mapstructure:"layout-debounce-ms"`
	ChartCacheSize     uint64   `mapstructure:"chart-cache-size"`
	ChartExpire        int      `mapstructure:"chart-expire-sec"`
	DefinitionDir      string   `mapstructure:"definition-dir"`
	DefinitionWatch    bool     `mapstructure:"definition-watch"`
	Version            string
	FullVersion        string
}

// Default returns the values the command line flags start from.
func Default() Config {
	opts := chart.DefaultOptions()
	m := chart.DefaultTextMeasurer()
	return Config{
		BindAddr:           "0.0.0.0",
		HttpPort:           "10101",
		HttpServ:           true,
		CorsOrigins:        []string{"*"},
		LogLevel:           3,
		LogRotateMaxSize:   5,
		LogRotateMaxBackup: 7,
		LogRotateMaxAge:    7,
		LogBufferSize:      200,
		ChartWidth:         opts.Width,
		ChartHeight:        opts.Height,
		PaddingTop:         opts.Padding.Top,
		PaddingRight:       opts.Padding.Right,
		PaddingBottom:      opts.Padding.Bottom,
		PaddingLeft:        opts.Padding.Left,
		Orientation:        opts.Orientation.String(),
		DefaultBandWidth:   opts.DefaultBandWidth,
		InwardTickOverlap:  opts.InwardTickOverlap,
		BreakGap:           opts.BreakGap,
		BaseTicks:          opts.BaseTicks,
		MinZoomFactor:      1,
		MaxZoomFactor:      8,
		FontMetrics:        true,
		LayoutCorrection:   true,
		CorrectionPasses:   opts.MaxCorrectionPasses,
		CharWidth:          m.CharWidth,
		LineHeight:         m.LineHeight,
		TickLength:         m.TickLength,
		LayoutDebounce:     50,
		ChartCacheSize:     256,
		ChartExpire:        3600,
	}
}

// ChartOptions derives the engine options of new charts.
func (conf *Config) ChartOptions() chart.Options {
	opts := chart.DefaultOptions()
	if conf.ChartWidth > 0 {
		opts.Width = conf.ChartWidth
	}
	if conf.ChartHeight > 0 {
		opts.Height = conf.ChartHeight
	}
	opts.Padding = chart.Padding{Top: conf.PaddingTop, Right: conf.PaddingRight, Bottom: conf.PaddingBottom, Left: conf.PaddingLeft}
	opts.Orientation = chart.GetOrientation(conf.Orientation, chart.OrientationHorizontal)
	opts.Capabilities = 0
	if conf.FontMetrics {
		opts.Capabilities |= chart.CapFontMetrics
	}
	if conf.LayoutCorrection {
		opts.Capabilities |= chart.CapAutoLayoutCorrection
	}
	if conf.DefaultBandWidth > 0 {
		opts.DefaultBandWidth = conf.DefaultBandWidth
	}
	if conf.InwardTickOverlap >= 0 {
		opts.InwardTickOverlap = conf.InwardTickOverlap
	}
	if conf.BreakGap >= 0 {
		opts.BreakGap = conf.BreakGap
	}
	if conf.BaseTicks > 0 {
		opts.BaseTicks = conf.BaseTicks
	}
	if conf.CorrectionPasses > 0 {
		opts.MaxCorrectionPasses = conf.CorrectionPasses
	}
	opts.Overscroll = conf.Overscroll
	opts.OnDemandLOD = conf.OnDemandLOD
	opts.Verbose = conf.Verbose
	m := chart.DefaultTextMeasurer()
	if conf.CharWidth > 0 {
		m.CharWidth = conf.CharWidth
	}
	if conf.LineHeight > 0 {
		m.LineHeight = conf.LineHeight
	}
	if conf.TickLength >= 0 {
		m.TickLength = conf.TickLength
	}
	opts.Measurer = m
	return opts
}

// ZoomBounds returns the zoom factor bounds of new axes, swapped when given
// in the wrong order.
func (conf *Config) ZoomBounds() (float64, float64) {
	lo, hi := conf.MinZoomFactor, conf.MaxZoomFactor
	if lo <= 0 {
		lo = 1
	}
	if hi <= 0 {
		hi = 8
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func (conf *Config) GetLayoutDebounce() time.Duration {
	return time.Duration(conf.LayoutDebounce) * time.Millisecond
}

func (conf *Config) GetChartExpire() time.Duration {
	return time.Duration(conf.ChartExpire) * time.Second
}

func (conf *Config) GetLogrusLevel() int {
	switch {
	case conf.LogLevel < 1:
		return 2
	case conf.LogLevel > 6:
		return 6
	}
	return conf.LogLevel + 1
}
