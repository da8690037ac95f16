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
	"fmt"
	"sort"
	"sync"
)

type State struct {
	ErrKey  string
	ErrType string
	ErrDesc string
	ErrFrom string
	AxisKey string
}

type StateHttp struct {
	ErrNumber string `json:"number"`
	ErrDesc   string `json:"desc"`
	ErrFrom   string `json:"from"`
	AxisKey   string `json:"axisKey,omitempty"`
}

type Map map[string]State

func NewMap() *Map {
	m := make(Map)
	return &m
}

func (m Map) Add(key string, s State) {
	_, ok := m[key]
	if !ok {
		m[key] = s
	}
}

func (m Map) Search(key string) bool {
	_, ok := m[key]
	return ok
}

// StateMachine tracks the errors and warnings raised by layout passes.
// ClearState starts a new pass; states present in the previous pass but
// not in the current one are reported as resolved.
type StateMachine struct {
	CurState *Map `json:"-"`
	OldState *Map `json:"-"`
	passes   int64
	sync.Mutex
}

func (SM *StateMachine) Init() {
	SM.CurState = NewMap()
	SM.OldState = NewMap()
	SM.passes = 0
}

func (SM *StateMachine) AddState(key string, s State) {
	s.ErrKey = key
	SM.Lock()
	SM.CurState.Add(key, s)
	SM.Unlock()
}

// IsInState tells if key is open in the current pass.
func (SM *StateMachine) IsInState(key string) bool {
	SM.Lock()
	defer SM.Unlock()
	return SM.CurState.Search(key)
}

func (SM *StateMachine) GetPasses() int64 {
	SM.Lock()
	defer SM.Unlock()
	return SM.passes
}

// ClearState moves the current states to the old map and starts a new pass.
func (SM *StateMachine) ClearState() {
	SM.Lock()
	SM.OldState = SM.CurState
	SM.CurState = NewMap()
	SM.passes++
	SM.Unlock()
}

// CanPublish checks that the current pass raised no error.
func (SM *StateMachine) CanPublish() bool {
	SM.Lock()
	defer SM.Unlock()
	for _, value := range *SM.CurState {
		if value.ErrType == "ERROR" {
			return false
		}
	}
	return true
}

func (SM *StateMachine) GetStates() []string {
	var log []string
	for key, value := range SM.GetLastResolvedStates() {
		log = append(log, fmt.Sprintf("RESOLV %s : %s", key, value.ErrDesc))
	}
	for key, value := range SM.GetLastOpenedStates() {
		log = append(log, fmt.Sprintf("OPENED %s : %s", key, value.ErrDesc))
	}
	sort.Strings(log)
	return log
}

func (SM *StateMachine) GetLastResolvedStates() map[string]State {
	resolved := make(map[string]State)
	SM.Lock()
	for key, state := range *SM.OldState {
		if !SM.CurState.Search(key) {
			resolved[key] = state
		}
	}
	SM.Unlock()
	return resolved
}

func (SM *StateMachine) GetLastOpenedStates() map[string]State {
	opened := make(map[string]State)
	SM.Lock()
	for key, state := range *SM.CurState {
		if !SM.OldState.Search(key) {
			opened[key] = state
		}
	}
	SM.Unlock()
	return opened
}

func (SM *StateMachine) getOpen(errors bool) []StateHttp {
	var log []StateHttp
	SM.Lock()
	for key, value := range *SM.CurState {
		if (value.ErrType == "ERROR") == errors {
			log = append(log, StateHttp{ErrNumber: key, ErrDesc: value.ErrDesc, ErrFrom: value.ErrFrom, AxisKey: value.AxisKey})
		}
	}
	SM.Unlock()
	sort.SliceStable(log, func(i, j int) bool { return log[i].ErrNumber < log[j].ErrNumber })
	return log
}

func (SM *StateMachine) GetOpenErrors() []StateHttp {
	return SM.getOpen(true)
}

func (SM *StateMachine) GetOpenWarnings() []StateHttp {
	return SM.getOpen(false)
}
