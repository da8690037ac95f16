// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package s18log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHttpLogKeepsNewestFirst(t *testing.T) {
	assert := assert.New(t)
	tl := NewHttpLog(3)
	for i := 0; i < 5; i++ {
		tl.Add(HttpMessage{Group: "g", Text: string(rune('a' + i))})
	}
	assert.Len(tl.Buffer, 3)
	assert.Equal("e", tl.Buffer[0].Text)
	assert.Equal("c", tl.Buffer[2].Text)
	assert.Equal(5, tl.Line)
}

func TestHttpLogSince(t *testing.T) {
	tl := NewHttpLog(10)
	tl.Add(HttpMessage{Group: "a", Text: "one"})
	line := tl.Add(HttpMessage{Group: "b", Text: "two"})
	tl.Add(HttpMessage{Group: "a", Text: "three"})

	msgs := tl.Since(line)
	assert.Len(t, msgs, 1)
	assert.Equal(t, "three", msgs[0].Text)
	assert.Len(t, tl.Group("a"), 2)
}
