// axiszoom - Axis layout and zoom/pan engine for interactive charts
// Copyright 2017-2021 SIGNAL18 CLOUD SAS
// Authors: Guillaume Lefranc <guillaume@signal18.io>
//          Stephane Varoqui  <svaroqui@gmail.com>
// This source code is licensed under the GNU General Public License, version 3.
// Redistribution/Reuse of this code is permitted under the GNU v3 license, as
// an additional term, ALL code must carry the original Author(s) credit in comment form.
// See LICENSE in this directory for the integral text.

package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/juju/errors"
	"github.com/signal18/axiszoom/chart"
	"gopkg.in/yaml.v3"
)

type ChartView struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Created     time.Time         `json:"created"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	Orientation chart.Orientation `json:"orientation"`
	Overscroll  bool              `json:"overscroll"`
	Axes        []chart.AxisInfo  `json:"axes"`
	Series      []chart.Series    `json:"series"`
	Layout      *chart.Layout     `json:"layout,omitempty"`
}

func newChartView(c *chart.Chart) ChartView {
	v := ChartView{
		ID:      c.ID,
		Name:    c.Name,
		Created: c.Created,
		Axes:    c.GetAxesInfo(),
		Series:  c.GetSeries(),
		Layout:  c.LastLayout(),
	}
	c.Lock()
	v.Width, v.Height = c.Opts.Width, c.Opts.Height
	v.Orientation, v.Overscroll = c.Opts.Orientation, c.Opts.Overscroll
	c.Unlock()
	return v
}

// ZoomRangeRequest sets the zoom window of an axis. Zoom factors left at
// zero keep the current bounds.
type ZoomRangeRequest struct {
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	Auto          bool    `json:"auto"`
	MinZoomFactor float64 `json:"minZoomFactor"`
	MaxZoomFactor float64 `json:"maxZoomFactor"`
}

type DataRequest struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// chartFromRequest returns the chart named by the route or writes a 404.
func (az *AxisZoom) chartFromRequest(w http.ResponseWriter, r *http.Request) *chart.Chart {
	vars := mux.Vars(r)
	c := az.getChart(vars["chartId"])
	if c == nil {
		http.Error(w, "No chart", http.StatusNotFound)
	}
	return c
}

func axisFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["axisId"])
	if err != nil {
		http.Error(w, "Bad axis id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NotValidf("%s %q", key, s)
	}
	return v, nil
}

func (az *AxisZoom) handlerMuxCharts(w http.ResponseWriter, r *http.Request) {
	var views []ChartView
	for _, c := range az.GetCharts() {
		views = append(views, newChartView(c))
	}
	writeJSON(w, views)
}

func (az *AxisZoom) handlerMuxChartCreate(w http.ResponseWriter, r *http.Request) {
	var def chart.Definition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		http.Error(w, "Decode error: "+err.Error(), http.StatusBadRequest)
		return
	}
	if def.Name == "" {
		http.Error(w, "Chart name required", http.StatusBadRequest)
		return
	}
	c, err := az.NewChartFromDefinition(&def, "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSONCode(w, http.StatusCreated, newChartView(c))
}

func (az *AxisZoom) handlerMuxChart(w http.ResponseWriter, r *http.Request) {
	if c := az.chartFromRequest(w, r); c != nil {
		writeJSON(w, newChartView(c))
	}
}

func (az *AxisZoom) handlerMuxChartDelete(w http.ResponseWriter, r *http.Request) {
	if !az.DeleteChart(mux.Vars(r)["chartId"]) {
		http.Error(w, "No chart", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (az *AxisZoom) handlerMuxChartDefinition(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	def := c.Definition()
	if r.URL.Query().Get("format") == "yaml" {
		w.Header().Set("Content-Type", "application/yaml")
		if err := yaml.NewEncoder(w).Encode(def); err != nil {
			http.Error(w, "Encoding error", 500)
		}
		return
	}
	writeJSON(w, def)
}

func (az *AxisZoom) handlerMuxChartLayout(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	l := c.LastLayout()
	if l == nil {
		writeError(w, errors.Trace(chart.ErrNoLayout))
		return
	}
	writeJSON(w, l)
}

// handlerMuxChartActionLayout runs a pass now, or schedules one when async
// is set. Width and height default to the last requested size.
func (az *AxisZoom) handlerMuxChartActionLayout(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	c.Lock()
	width, height := c.Opts.Width, c.Opts.Height
	c.Unlock()
	width, err := queryInt(r, "width", width)
	if err != nil {
		writeError(w, err)
		return
	}
	height, err = queryInt(r, "height", height)
	if err != nil {
		writeError(w, err)
		return
	}
	if r.URL.Query().Get("async") != "" {
		if e := az.getEntry(c.ID); e != nil {
			e.Scheduler.Request(width, height)
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}
	l, err := c.Layout(width, height)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, l)
}

func (az *AxisZoom) handlerMuxChartTransforms(w http.ResponseWriter, r *http.Request) {
	if c := az.chartFromRequest(w, r); c != nil {
		writeJSON(w, c.ExportTransforms())
	}
}

func (az *AxisZoom) handlerMuxChartFormula(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	x, err := queryInt(r, "x", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	y, err := queryInt(r, "y", 1)
	if err != nil {
		writeError(w, err)
		return
	}
	f, err := c.ExportFormula(x, y)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, f)
}

func (az *AxisZoom) handlerMuxChartStates(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	sm := c.GetStateMachine()
	writeJSON(w, map[string]interface{}{
		"passes":      sm.GetPasses(),
		"publishable": c.CanPublish(),
		"states":      c.GetStates(),
		"errors":      sm.GetOpenErrors(),
		"warnings":    sm.GetOpenWarnings(),
		"resolved":    sm.GetLastResolvedStates(),
	})
}

func (az *AxisZoom) handlerMuxChartReconcile(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	var batch []chart.ClientTransform
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		http.Error(w, "Decode error: "+err.Error(), http.StatusBadRequest)
		return
	}
	n := c.ReconcileAll(batch)
	writeJSON(w, map[string]interface{}{
		"applied": n,
		"axes":    c.GetAxesInfo(),
	})
}

func (az *AxisZoom) handlerMuxChartData(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	var req DataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Decode error: "+err.Error(), http.StatusBadRequest)
		return
	}
	c.SetData(&chart.Table{Columns: req.Columns, Rows: req.Rows})
	if e := az.getEntry(c.ID); e != nil {
		c.Lock()
		width, height := c.Opts.Width, c.Opts.Height
		c.Unlock()
		e.Scheduler.Request(width, height)
	}
	w.WriteHeader(http.StatusAccepted)
}

func (az *AxisZoom) handlerMuxAxisAdd(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	var def chart.AxisDefinition
	if err := json.NewDecoder(r.Body).Decode(&def); err != nil {
		http.Error(w, "Decode error: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSONCode(w, http.StatusCreated, c.AddAxisDefinition(def))
}

func (az *AxisZoom) handlerMuxAxis(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	id, ok := axisFromRequest(w, r)
	if !ok {
		return
	}
	infos := c.GetAxesInfo()
	if id < 0 || id >= len(infos) {
		http.Error(w, "No axis", http.StatusNotFound)
		return
	}
	writeJSON(w, infos[id])
}

func (az *AxisZoom) handlerMuxAxisDelete(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	id, ok := axisFromRequest(w, r)
	if !ok {
		return
	}
	if err := c.RemoveAxis(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (az *AxisZoom) handlerMuxAxisZoomRange(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	id, ok := axisFromRequest(w, r)
	if !ok {
		return
	}
	var req ZoomRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Decode error: "+err.Error(), http.StatusBadRequest)
		return
	}
	info, err := c.ZoomAxis(id, chart.ZoomValue{Min: req.Min, Max: req.Max, Auto: req.Auto}, req.MinZoomFactor, req.MaxZoomFactor)
	if err != nil {
		writeError(w, err)
		return
	}
	az.live.broadcastTransforms(c)
	writeJSON(w, info)
}

// handlerMuxAxisMap maps ?value= (and ?segment=) to a pixel offset in the
// plot area.
func (az *AxisZoom) handlerMuxAxisMap(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	id, ok := axisFromRequest(w, r)
	if !ok {
		return
	}
	value, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil {
		http.Error(w, "Bad value", http.StatusBadRequest)
		return
	}
	seg, err := queryInt(r, "segment", -1)
	if err != nil {
		writeError(w, err)
		return
	}
	if seg < 0 {
		a, err := c.GetAxis(id)
		if err != nil {
			writeError(w, err)
			return
		}
		c.Lock()
		seg = a.SegmentOf(value)
		c.Unlock()
		if seg < 0 {
			http.Error(w, "Value has no point on this axis", http.StatusUnprocessableEntity)
			return
		}
	}
	px, err := c.MapToDevice(value, id, seg)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"value":   value,
		"segment": seg,
		"pixel":   px,
	})
}
