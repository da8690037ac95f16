// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

// Package server axiszoom
//
// Chart layout and zoom/pan API
//
//	Schemes: http
//	Host: localhost
//	BasePath: /
//	Version: 0.0.1
//	License: GPL http://opensource.org/licenses/GPL
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/codegangsta/negroni"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/juju/errors"
	"github.com/signal18/axiszoom/chart"
	log "github.com/sirupsen/logrus"
)

type Route struct {
	Methods []string                                     `json:"methods"`
	URL     string                                       `json:"url"`
	Gzip    bool                                         `json:"gzip"`
	Handler func(w http.ResponseWriter, r *http.Request) `json:"-"`
}

func (az *AxisZoom) GetChartRoutes() []Route {
	return []Route{
		{[]string{"GET"}, "/api/charts", true, az.handlerMuxCharts},
		{[]string{"POST"}, "/api/charts", false, az.handlerMuxChartCreate},
		{[]string{"GET"}, "/api/charts/{chartId}", true, az.handlerMuxChart},
		{[]string{"DELETE"}, "/api/charts/{chartId}", false, az.handlerMuxChartDelete},
		{[]string{"GET"}, "/api/charts/{chartId}/definition", true, az.handlerMuxChartDefinition},
		{[]string{"GET"}, "/api/charts/{chartId}/layout", true, az.handlerMuxChartLayout},
		{[]string{"POST"}, "/api/charts/{chartId}/actions/layout", true, az.handlerMuxChartActionLayout},
		{[]string{"GET"}, "/api/charts/{chartId}/transforms", true, az.handlerMuxChartTransforms},
		{[]string{"GET"}, "/api/charts/{chartId}/formula", true, az.handlerMuxChartFormula},
		{[]string{"GET"}, "/api/charts/{chartId}/states", true, az.handlerMuxChartStates},
		{[]string{"POST"}, "/api/charts/{chartId}/reconcile", false, az.handlerMuxChartReconcile},
		{[]string{"POST"}, "/api/charts/{chartId}/data", false, az.handlerMuxChartData},
		{[]string{"POST"}, "/api/charts/{chartId}/axes", false, az.handlerMuxAxisAdd},
		{[]string{"GET"}, "/api/charts/{chartId}/axes/{axisId}", true, az.handlerMuxAxis},
		{[]string{"DELETE"}, "/api/charts/{chartId}/axes/{axisId}", false, az.handlerMuxAxisDelete},
		{[]string{"POST"}, "/api/charts/{chartId}/axes/{axisId}/zoom-range", false, az.handlerMuxAxisZoomRange},
		{[]string{"GET"}, "/api/charts/{chartId}/axes/{axisId}/map", false, az.handlerMuxAxisMap},
		{[]string{"GET"}, "/api/charts/{chartId}/live", false, az.handlerMuxChartLive},
	}
}

func (az *AxisZoom) GetServerRoutes() []Route {
	return []Route{
		{[]string{"GET"}, "/api/status", false, az.handlerMuxStatus},
		{[]string{"GET"}, "/api/log", true, az.handlerMuxLog},
	}
}

func (az *AxisZoom) RouteParser(router *mux.Router, routes []Route) {
	for _, route := range routes {
		var h http.Handler = http.HandlerFunc(route.Handler)
		if route.Gzip {
			h = gziphandler.GzipHandler(h)
		}
		router.Handle(route.URL, negroni.New(
			negroni.HandlerFunc(az.logRequest),
			negroni.Wrap(h),
		)).Methods(route.Methods...)
	}
}

// Router builds the API router.
func (az *AxisZoom) Router() *mux.Router {
	router := mux.NewRouter()
	az.RouteParser(router, az.GetServerRoutes())
	az.RouteParser(router, az.GetChartRoutes())
	return router
}

// Handler is the router behind the CORS layer, so that browser runtimes
// served from another origin get their preflight answered.
func (az *AxisZoom) Handler() http.Handler {
	origins := az.Conf.CorsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return handlers.CORS(
		handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"}),
		handlers.AllowedOrigins(origins),
	)(az.Router())
}

func (az *AxisZoom) httpserver() {
	if az.Conf.Verbose {
		log.Printf("Starting HTTP server on " + az.Conf.BindAddr + ":" + az.Conf.HttpPort)
	}
	log.Fatal(http.ListenAndServe(az.Conf.BindAddr+":"+az.Conf.HttpPort, az.Handler()))
}

func (az *AxisZoom) logRequest(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	start := time.Now()
	next(w, r)
	log.WithFields(log.Fields{
		"method":   r.Method,
		"url":      r.URL.Path,
		"duration": time.Since(start),
	}).Debug("HTTP request")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONCode(w, http.StatusOK, v)
}

func writeJSONCode(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	e := json.NewEncoder(w)
	e.SetIndent("", "\t")
	if err := e.Encode(v); err != nil {
		log.Println("Error encoding JSON: ", err)
		http.Error(w, "Encoding error", 500)
	}
}

// httpStatus maps engine errors to response codes.
func httpStatus(err error) int {
	switch cause := errors.Cause(err); {
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsNotValid(err):
		return http.StatusBadRequest
	case cause == chart.ErrNoLayout:
		return http.StatusConflict
	case cause == chart.ErrDegenerateArea:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), httpStatus(err))
}

func (az *AxisZoom) handlerMuxStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"version": az.Version,
		"started": az.Started,
		"charts":  len(az.GetCharts()),
	})
}

func (az *AxisZoom) handlerMuxLog(w http.ResponseWriter, r *http.Request) {
	line, _ := strconv.Atoi(r.URL.Query().Get("line"))
	if group := r.URL.Query().Get("chart"); group != "" {
		writeJSON(w, az.Logs.Group(group))
		return
	}
	writeJSON(w, az.Logs.Since(line))
}
