// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package config

import "sync"

// StringsMap is a concurrent string to string map. The definition watcher
// keeps file path to chart id bindings in one.
type StringsMap struct {
	*sync.Map
}

func NewStringsMap() *StringsMap {
	return &StringsMap{Map: new(sync.Map)}
}

func (m *StringsMap) Get(key string) string {
	if v, ok := m.Load(key); ok {
		return v.(string)
	}
	return ""
}

func (m *StringsMap) CheckAndGet(key string) (string, bool) {
	v, ok := m.Load(key)
	if ok {
		return v.(string), true
	}
	return "", false
}

func (m *StringsMap) Set(k string, v string) {
	m.Store(k, v)
}

// KeyOf returns the first key bound to value.
func (m *StringsMap) KeyOf(value string) (string, bool) {
	var key string
	m.Range(func(k, v any) bool {
		if v.(string) == value {
			key = k.(string)
			return false
		}
		return true
	})
	return key, key != ""
}

func (m *StringsMap) ToNewMap() map[string]string {
	c := make(map[string]string)
	m.Range(func(k any, v any) bool {
		c[k.(string)] = v.(string)
		return true
	})
	return c
}

func (m *StringsMap) Clear() {
	m.Range(func(key any, value any) bool {
		m.Delete(key)
		return true
	})
}
