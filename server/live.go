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
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/signal18/axiszoom/chart"
	log "github.com/sirupsen/logrus"
)

// LiveMessage is sent by the interactive runtime.
type LiveMessage struct {
	Type       string                  `json:"type"`
	Axis       int                     `json:"axis,omitempty"`
	Delta      float64                 `json:"delta,omitempty"`
	Anchor     float64                 `json:"anchor,omitempty"`
	Factor     float64                 `json:"factor,omitempty"`
	Width      int                     `json:"width,omitempty"`
	Height     int                     `json:"height,omitempty"`
	Transforms []chart.ClientTransform `json:"transforms,omitempty"`
}

// LiveEvent is pushed to the interactive runtime.
type LiveEvent struct {
	Type       string                  `json:"type"`
	Session    string                  `json:"session,omitempty"`
	Layout     *chart.Layout           `json:"layout,omitempty"`
	Transforms []chart.TransformExport `json:"transforms,omitempty"`
	Applied    int                     `json:"applied,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

type liveHub struct {
	az       *AxisZoom
	upgrader websocket.Upgrader
	sessions map[string]map[*liveSession]bool
	mu       sync.Mutex
}

type liveSession struct {
	ID        string
	chart     *chart.Chart
	conn      *websocket.Conn
	send      chan []byte
	layouts   chan *chart.Layout
	closeChan chan struct{}
	closeOnce sync.Once
	gesture   *chart.Gesture
	sub       int
}

func newLiveHub(az *AxisZoom) *liveHub {
	return &liveHub{
		az: az,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		sessions: make(map[string]map[*liveSession]bool),
	}
}

func (az *AxisZoom) handlerMuxChartLive(w http.ResponseWriter, r *http.Request) {
	c := az.chartFromRequest(w, r)
	if c == nil {
		return
	}
	conn, err := az.live.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warning("Failed to upgrade live connection")
		return
	}
	s := az.live.open(c, conn)
	s.run(az)
}

func (h *liveHub) open(c *chart.Chart, conn *websocket.Conn) *liveSession {
	s := &liveSession{
		ID:        uuid.New().String(),
		chart:     c,
		conn:      conn,
		send:      make(chan []byte, 64),
		layouts:   make(chan *chart.Layout, 1),
		closeChan: make(chan struct{}),
	}
	// runs with the chart locked: keep only the newest layout
	s.sub = c.Subscribe(func(l *chart.Layout) {
		select {
		case <-s.layouts:
		default:
		}
		select {
		case s.layouts <- l:
		default:
		}
	})
	h.mu.Lock()
	if h.sessions[c.ID] == nil {
		h.sessions[c.ID] = make(map[*liveSession]bool)
	}
	h.sessions[c.ID][s] = true
	h.mu.Unlock()
	log.WithFields(log.Fields{"chart": c.Name, "session": s.ID}).Debug("Live session opened")
	return s
}

func (h *liveHub) remove(s *liveSession) {
	h.mu.Lock()
	delete(h.sessions[s.chart.ID], s)
	if len(h.sessions[s.chart.ID]) == 0 {
		delete(h.sessions, s.chart.ID)
	}
	h.mu.Unlock()
}

func (h *liveHub) chartSessions(id string) []*liveSession {
	h.mu.Lock()
	defer h.mu.Unlock()
	var list []*liveSession
	for s := range h.sessions[id] {
		list = append(list, s)
	}
	return list
}

// broadcastTransforms pushes the live transforms of c to every session.
func (h *liveHub) broadcastTransforms(c *chart.Chart) {
	list := h.chartSessions(c.ID)
	if len(list) == 0 {
		return
	}
	ev := LiveEvent{Type: "transforms", Transforms: c.ExportTransforms()}
	for _, s := range list {
		s.queue(ev)
	}
}

func (h *liveHub) closeChart(id string) {
	for _, s := range h.chartSessions(id) {
		s.close()
	}
}

func (s *liveSession) queue(ev LiveEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).Error("Live event encoding")
		return
	}
	select {
	case s.send <- data:
	case <-s.closeChan:
	default:
		log.WithField("session", s.ID).Warning("Live session too slow, event dropped")
	}
}

func (s *liveSession) close() {
	s.closeOnce.Do(func() {
		close(s.closeChan)
		s.conn.Close()
	})
}

// run reads runtime messages until the connection drops.
func (s *liveSession) run(az *AxisZoom) {
	defer func() {
		s.chart.Unsubscribe(s.sub)
		if s.gesture != nil {
			s.gesture.Cancel()
		}
		az.live.remove(s)
		s.close()
		log.WithFields(log.Fields{"chart": s.chart.Name, "session": s.ID}).Debug("Live session closed")
	}()
	go s.writer()
	s.queue(LiveEvent{Type: "hello", Session: s.ID, Layout: s.chart.LastLayout(), Transforms: s.chart.ExportTransforms()})

	s.conn.SetReadDeadline(time.Now().Add(300 * time.Second))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(300 * time.Second))
		return nil
	})
	for {
		var msg LiveMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).WithField("session", s.ID).Debug("Live session read error")
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(300 * time.Second))
		s.handle(az, msg)
	}
}

func (s *liveSession) handle(az *AxisZoom, msg LiveMessage) {
	c := s.chart
	// every message keeps the chart registered; an expired chart ends the session
	e := az.getEntry(c.ID)
	if e == nil {
		s.close()
		return
	}
	switch msg.Type {
	case "resize":
		e.Scheduler.Request(msg.Width, msg.Height)
	case "begin":
		if s.gesture != nil {
			s.gesture.Cancel()
		}
		s.gesture = c.BeginGesture()
	case "pan", "zoom":
		if s.gesture == nil {
			s.gesture = c.BeginGesture()
		}
		var err error
		if msg.Type == "pan" {
			err = s.gesture.Pan(msg.Axis, msg.Delta)
		} else {
			err = s.gesture.ZoomAt(msg.Axis, msg.Anchor, msg.Factor)
		}
		if err != nil {
			s.queue(LiveEvent{Type: "error", Error: err.Error()})
			return
		}
		az.live.broadcastTransforms(c)
	case "cancel":
		if s.gesture != nil {
			s.gesture.Cancel()
			s.gesture = nil
		}
		az.live.broadcastTransforms(c)
	case "end":
		if s.gesture == nil {
			return
		}
		batch := s.gesture.End()
		s.gesture = nil
		n := c.ReconcileAll(batch)
		s.queue(LiveEvent{Type: "reconciled", Applied: n})
		az.live.broadcastTransforms(c)
	case "reconcile":
		n := c.ReconcileAll(msg.Transforms)
		s.queue(LiveEvent{Type: "reconciled", Applied: n})
		az.live.broadcastTransforms(c)
	default:
		s.queue(LiveEvent{Type: "error", Error: "unknown message " + msg.Type})
	}
}

func (s *liveSession) writer() {
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()
	write := func(data []byte) bool {
		s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.WithError(err).WithField("session", s.ID).Debug("Live session write error")
			s.close()
			return false
		}
		return true
	}
	for {
		select {
		case data := <-s.send:
			if !write(data) {
				return
			}
		case l := <-s.layouts:
			data, err := json.Marshal(LiveEvent{Type: "layout", Layout: l, Transforms: s.chart.ExportTransforms()})
			if err != nil {
				log.WithError(err).Error("Live event encoding")
				continue
			}
			if !write(data) {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}
		case <-s.closeChan:
			return
		}
	}
}
