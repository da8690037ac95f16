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
	"math"

	"github.com/signal18/axiszoom/utils/state"
)

// ClientTransform is the live transform of one axis as reported by the
// interactive runtime at the end of a gesture.
type ClientTransform struct {
	AxisKey   string  `json:"axisKey"`
	Scale     float64 `json:"scale"`
	Translate float64 `json:"translate"`
}

func (ct ClientTransform) isIdentity() bool {
	return ct.Scale == 1 && ct.Translate == 0
}

// Reconcile stores a client transform as the authoritative zoom range of
// its axis and clears the dirty flag. An identity transform means the user
// did not zoom and sets the range back to AUTO. It reports false when the
// axis is gone.
func (c *Chart) Reconcile(ct ClientTransform) bool {
	c.Lock()
	defer c.Unlock()
	return c.reconcileLocked(ct)
}

// ReconcileAll applies a batch and returns how many transforms were
// applied.
func (c *Chart) ReconcileAll(batch []ClientTransform) int {
	c.Lock()
	defer c.Unlock()
	n := 0
	for _, ct := range batch {
		if c.reconcileLocked(ct) {
			n++
		}
	}
	return n
}

func (c *Chart) reconcileLocked(ct ClientTransform) bool {
	a := c.axisByKey(ct.AxisKey)
	if a == nil {
		desc := fmt.Sprintf(chartError["WARN0001"], ct.AxisKey)
		c.SetState("WARN0001", state.State{ErrType: StateWarn, ErrDesc: desc, ErrFrom: "RECONCILE", AxisKey: ct.AxisKey})
		c.LogPrintf(LvlDbg, "%s", desc)
		return false
	}
	t := a.transform
	if ct.isIdentity() {
		t.Reset()
		a.Zoom = ZoomRange{Value: AutoZoom()}
		return true
	}
	if math.IsNaN(ct.Translate) || math.IsInf(ct.Translate, 0) {
		return false
	}
	if t.SetScale(ct.Scale) {
		c.LogPrintf(LvlDbg, chartError["WARN0002"], ct.Scale, t.MinZoomFactor, t.MaxZoomFactor, a.Name)
	}
	t.Translate = ct.Translate
	if a.length <= 0 || len(a.segments) == 0 {
		// not laid out yet, keep the transform and let the range follow it
		a.Zoom.Dirty = false
		return true
	}
	lo := FromDevice((0-t.Translate)/t.Scale, a)
	hi := FromDevice((a.length-t.Translate)/t.Scale, a)
	if lo > hi {
		lo, hi = hi, lo
	}
	a.Zoom = ZoomRange{Value: ZoomValue{Min: lo, Max: hi}}
	return true
}
