// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package s18log

import "sync"

// HttpLog is a bounded, newest first buffer of log lines served over HTTP.
type HttpLog struct {
	Buffer []HttpMessage `json:"buffer"`
	Len    int           `json:"len"`
	Line   int           `json:"line"`
	L      sync.Mutex    `json:"-"`
}

type HttpMessage struct {
	Group     string `json:"group"`
	Level     string `json:"level"`
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
	Line      int    `json:"line"`
}

func NewHttpLog(sz int) *HttpLog {
	tl := &HttpLog{}
	tl.Len = sz
	tl.Buffer = make([]HttpMessage, 0, sz)
	return tl
}

// Add stores a message and returns its line number.
func (tl *HttpLog) Add(s HttpMessage) int {
	tl.L.Lock()
	defer tl.L.Unlock()
	tl.Line++
	s.Line = tl.Line
	tl.Shift(s)
	return tl.Line
}

func (tl *HttpLog) Shift(e HttpMessage) {
	if tl.Len <= 0 {
		return
	}
	ns := make([]HttpMessage, 1, tl.Len)
	ns[0] = e
	keep := len(tl.Buffer)
	if keep > tl.Len-1 {
		keep = tl.Len - 1
	}
	tl.Buffer = append(ns, tl.Buffer[0:keep]...)
}

// Since returns the messages with a line number above line, newest first.
func (tl *HttpLog) Since(line int) []HttpMessage {
	tl.L.Lock()
	defer tl.L.Unlock()
	var msgs []HttpMessage
	for _, m := range tl.Buffer {
		if m.Line <= line {
			break
		}
		msgs = append(msgs, m)
	}
	return msgs
}

func (tl *HttpLog) Group(group string) []HttpMessage {
	tl.L.Lock()
	defer tl.L.Unlock()
	var msgs []HttpMessage
	for _, m := range tl.Buffer {
		if m.Group == group {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
