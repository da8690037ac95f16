// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package chart

import "github.com/juju/errors"

var chartError = map[string]string{
	"ERR00001": "Axis %d not found, chart has %d axes",
	"ERR00002": "Chart area too small for layout: %.0fx%.0f px",
	"ERR00003": "Log scale axis %s has a range crossing zero [%g, %g]",
	"ERR00004": "Segment %d out of range for axis %s with %d segments",
	"ERR00005": "Series %s references axis %d, chart has %d axes",
	"WARN0001": "Reconciliation for unknown axis %s ignored",
	"WARN0002": "Zoom factor %g clamped to [%g, %g] on axis %s",
	"WARN0003": "Axis %s has no data, using default range",
	"WARN0004": "Layout correction did not converge after %d passes",
}

// ErrDegenerateArea is returned by a layout pass when the plot area is too
// small to draw in. The previous layout stays published.
var ErrDegenerateArea = errors.New("chart area is degenerate")

// ErrNoLayout is returned by mapping calls before the first successful pass.
var ErrNoLayout = errors.New("chart has no layout yet")

func axisNotFound(id int, count int) error {
	return errors.NotFoundf("axis %d (chart has %d axes)", id, count)
}

func segmentNotValid(idx int, axis *Axis) error {
	return errors.NotValidf("segment %d of axis %s", idx, axis.Name)
}
