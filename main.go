// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package main

import (
	"fmt"
	"os"

	"github.com/signal18/axiszoom/server"
)

var (
	// Version is the semantic version number, e.g. 1.0.1
	Version string
	// FullVersion is the semantic version number + git commit hash
	FullVersion string
	// Build is the build date of axiszoom
	Build string
)

func main() {
	server.Version = Version
	server.FullVersion = FullVersion
	server.Build = Build
	if err := server.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
