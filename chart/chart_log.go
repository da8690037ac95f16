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
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/signal18/axiszoom/utils/s18log"
	"github.com/signal18/axiszoom/utils/state"
	log "github.com/sirupsen/logrus"
)

// Log levels
const (
	LvlInfo = "INFO"
	LvlWarn = "WARN"
	LvlErr  = "ERROR"
	LvlDbg  = "DEBUG"
)

// State Levels
const (
	StateWarn = "WARNING"
	StateErr  = "ERROR"
)

func (c *Chart) LogPrintf(level string, format string, args ...interface{}) int {
	line := 0
	stamp := fmt.Sprint(time.Now().Format("2006/01/02 15:04:05"))
	if c.htlog != nil && (level != LvlDbg || c.Opts.Verbose) {
		line = c.htlog.Add(s18log.HttpMessage{
			Group:     c.Name,
			Level:     level,
			Timestamp: stamp,
			Text:      fmt.Sprintf(format, args...),
		})
	}
	switch level {
	case LvlErr:
		log.WithField("chart", c.Name).Errorf(format, args...)
	case LvlInfo:
		log.WithField("chart", c.Name).Infof(format, args...)
	case LvlDbg:
		log.WithField("chart", c.Name).Debugf(format, args...)
	case LvlWarn:
		log.WithField("chart", c.Name).Warnf(format, args...)
	default:
		log.WithField("chart", c.Name).Printf(format, args...)
	}
	return line
}

// SetState opens a state for the current layout pass and logs it.
func (c *Chart) SetState(key string, s state.State) {
	if s.ErrDesc == "" {
		s.ErrDesc = chartError[key]
	}
	if s.ErrFrom == "" {
		s.ErrFrom = "LAYOUT"
	}
	c.sme.AddState(key, s)
}

func (c *Chart) stateError(key string, args ...interface{}) {
	desc := fmt.Sprintf(chartError[key], args...)
	c.SetState(key, state.State{ErrType: StateErr, ErrDesc: desc})
	c.LogPrintf(LvlErr, "%s", desc)
}

func (c *Chart) stateWarn(key string, args ...interface{}) {
	desc := fmt.Sprintf(chartError[key], args...)
	c.SetState(key, state.State{ErrType: StateWarn, ErrDesc: desc})
	c.LogPrintf(LvlDbg, "%s", desc)
}

// dump writes the published layout at trace level.
func (c *Chart) dump(l *Layout) {
	if log.IsLevelEnabled(log.TraceLevel) {
		log.WithField("chart", c.Name).Trace(spew.Sdump(l))
	}
}
