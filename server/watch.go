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
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/juju/errors"
	"github.com/signal18/axiszoom/chart"
	log "github.com/sirupsen/logrus"
)

const definitionDebounce = 100 * time.Millisecond

// definitionWatcher reloads chart definitions when their files change.
// Bursts of events on the same file are coalesced.
type definitionWatcher struct {
	az      *AxisZoom
	watcher *fsnotify.Watcher
	delay   time.Duration
	done    chan struct{}
	wg      sync.WaitGroup
}

func (az *AxisZoom) watchDefinitions(dir string) (*definitionWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Annotate(err, "create file watcher")
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, errors.Annotatef(err, "watch %s", dir)
	}
	w := &definitionWatcher{
		az:      az,
		watcher: fw,
		delay:   definitionDebounce,
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	log.WithField("dir", dir).Info("Watching chart definitions")
	return w, nil
}

func (w *definitionWatcher) run() {
	defer w.wg.Done()
	debounce := time.NewTimer(0)
	<-debounce.C

	pending := make(map[string]fsnotify.Op)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !chart.IsDefinitionFile(event.Name) {
				continue
			}
			pending[event.Name] |= event.Op
			debounce.Reset(w.delay)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warning("Definition watcher error")

		case <-debounce.C:
			for path, op := range pending {
				w.apply(path, op)
			}
			pending = make(map[string]fsnotify.Op)

		case <-w.done:
			return
		}
	}
}

func (w *definitionWatcher) apply(path string, op fsnotify.Op) {
	if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		if _, err := chart.LoadDefinition(path); err != nil {
			log.WithField("file", path).Info("Chart definition removed")
			w.az.unloadDefinitionFile(path)
			return
		}
	}
	if err := w.az.loadDefinitionFile(path); err != nil {
		log.WithError(err).WithField("file", path).Warning("Could not reload chart definition")
		return
	}
	log.WithField("file", path).Info("Chart definition reloaded")
}

func (w *definitionWatcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
