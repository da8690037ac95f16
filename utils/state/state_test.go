// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateMachinePasses(t *testing.T) {
	assert := assert.New(t)
	sme := new(StateMachine)
	sme.Init()

	sme.ClearState()
	sme.AddState("ERR00002", State{ErrType: "ERROR", ErrDesc: "too small", ErrFrom: "LAYOUT"})
	assert.True(sme.IsInState("ERR00002"))
	assert.False(sme.CanPublish())
	assert.Equal([]string{"OPENED ERR00002 : too small"}, sme.GetStates())
	assert.Len(sme.GetOpenErrors(), 1)
	assert.Empty(sme.GetOpenWarnings())

	sme.ClearState()
	assert.True(sme.CanPublish())
	assert.Equal([]string{"RESOLV ERR00002 : too small"}, sme.GetStates())
	assert.Equal(int64(2), sme.GetPasses())
}

func TestStateMachineAxisKey(t *testing.T) {
	sme := new(StateMachine)
	sme.Init()
	sme.ClearState()
	sme.AddState("WARN0001", State{ErrType: "WARN", ErrDesc: "stale", ErrFrom: "RECONCILE", AxisKey: "k1"})
	sme.AddState("WARN0001", State{ErrType: "WARN", ErrDesc: "stale", AxisKey: "k2"})
	warnings := sme.GetOpenWarnings()
	if assert.Len(t, warnings, 1) {
		assert.Equal(t, "k1", warnings[0].AxisKey)
		assert.Equal(t, "RECONCILE", warnings[0].ErrFrom)
	}
	assert.True(t, sme.CanPublish())
}
