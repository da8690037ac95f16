// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package chart

import "strings"

type Orientation int

const (
	OrientationHorizontal Orientation = iota
	OrientationRotated
)

func (o Orientation) String() string {
	if o == OrientationRotated {
		return "rotated"
	}
	return "horizontal"
}

func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func GetOrientation(s string, def Orientation) Orientation {
	switch strings.ToLower(s) {
	case "rotated", "vertical":
		return OrientationRotated
	case "horizontal", "normal":
		return OrientationHorizontal
	}
	return def
}

// ToDevice turns a logical point into device pixels. Rotated charts map
// (x, y) to (w - y, x) where w is the device width.
func (o Orientation) ToDevice(x, y, deviceWidth float64) (float64, float64) {
	if o == OrientationRotated {
		return deviceWidth - y, x
	}
	return x, y
}

// FromDevice is the inverse of ToDevice.
func (o Orientation) FromDevice(x, y, deviceWidth float64) (float64, float64) {
	if o == OrientationRotated {
		return y, deviceWidth - x
	}
	return x, y
}
