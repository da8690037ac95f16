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
)

// Scheduler coalesces layout requests for one chart. Requests arriving
// inside the debounce delay replace each other; only the last size is laid
// out.
type Scheduler struct {
	chart   *Chart
	delay   time.Duration
	OnError func(error)

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	width   int
	height  int
	runs    int64
	stopped bool
}

func NewScheduler(c *Chart, delay time.Duration) *Scheduler {
	return &Scheduler{chart: c, delay: delay}
}

// Request asks for a pass at the given size.
func (s *Scheduler) Request(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.width, s.height = width, height
	s.pending = true
	if s.timer == nil {
		s.timer = time.AfterFunc(s.delay, s.fire)
		return
	}
	s.timer.Reset(s.delay)
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if !s.pending || s.stopped {
		s.mu.Unlock()
		return
	}
	w, h := s.width, s.height
	s.pending = false
	s.timer = nil
	s.runs++
	s.mu.Unlock()
	if _, err := s.chart.Layout(w, h); err != nil && s.OnError != nil {
		s.OnError(err)
	}
}

// Flush runs the pending pass now. It returns nil, nil when nothing was
// pending.
func (s *Scheduler) Flush() (*Layout, error) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.pending || s.stopped {
		s.mu.Unlock()
		return nil, nil
	}
	w, h := s.width, s.height
	s.pending = false
	s.runs++
	s.mu.Unlock()
	return s.chart.Layout(w, h)
}

// Stop cancels the pending pass and ignores later requests.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = false
	s.stopped = true
}

// Runs is the number of passes started.
func (s *Scheduler) Runs() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}
