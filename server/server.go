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
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/dgryski/go-expirecache"
	"github.com/juju/errors"
	"github.com/signal18/axiszoom/chart"
	"github.com/signal18/axiszoom/config"
	"github.com/signal18/axiszoom/utils/s18log"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// AxisZoom owns the chart registry and the services around it.
type AxisZoom struct {
	Version string          `json:"version"`
	Conf    config.Config   `json:"config"`
	Logs    *s18log.HttpLog `json:"-"`
	Started time.Time       `json:"started"`

	// charts decides liveness, entries keeps what is needed to release a
	// chart once the cache has let it go
	charts  *expirecache.Cache
	entries map[string]*chartEntry
	files   *config.StringsMap
	live    *liveHub
	watcher *definitionWatcher
	exit    chan struct{}
	sync.Mutex
}

// chartEntry is what the registry stores per chart.
type chartEntry struct {
	Chart     *chart.Chart
	Scheduler *chart.Scheduler
	File      string
}

func NewAxisZoom(conf config.Config) *AxisZoom {
	az := &AxisZoom{
		Version: conf.Version,
		Conf:    conf,
		Logs:    s18log.NewHttpLog(conf.LogBufferSize),
		Started: time.Now(),
		charts:  expirecache.New(conf.ChartCacheSize),
		entries: make(map[string]*chartEntry),
		files:   config.NewStringsMap(),
		exit:    make(chan struct{}),
	}
	az.live = newLiveHub(az)
	return az
}

// InitConfig reads the TOML configuration file over the flag values. Keys
// of the [Default] group win over the top level ones.
func InitConfig(conf config.Config) config.Config {
	viper.SetConfigType("toml")
	if conf.ConfigFile != "" {
		viper.SetConfigFile(conf.ConfigFile)
		if _, err := os.Stat(conf.ConfigFile); os.IsNotExist(err) {
			log.Error("No config file " + conf.ConfigFile)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("/etc/axiszoom/")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("AXZ")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err == nil {
		log.WithFields(log.Fields{
			"file": viper.ConfigFileUsed(),
		}).Debug("Using config file")
	}
	if _, ok := err.(viper.ConfigParseError); ok {
		log.Warningf("Could not parse config file: %s", err)
	}
	if err := viper.Unmarshal(&conf); err != nil {
		log.WithError(err).Warning("Could not decode configuration")
	}
	if def := viper.Sub("Default"); def != nil {
		def.Unmarshal(&conf)
	}
	return conf
}

// InitLog applies the configured level and file output to the logrus
// package logger.
func (az *AxisZoom) InitLog() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.Level(az.Conf.GetLogrusLevel()))
	if az.Conf.Verbose && !log.IsLevelEnabled(log.DebugLevel) {
		log.SetLevel(log.DebugLevel)
	}
	if az.Conf.LogFile != "" {
		hook, err := s18log.NewRotateFileHook(s18log.RotateFileConfig{
			Filename:   az.Conf.LogFile,
			MaxSize:    az.Conf.LogRotateMaxSize,
			MaxBackups: az.Conf.LogRotateMaxBackup,
			MaxAge:     az.Conf.LogRotateMaxAge,
			Level:      log.GetLevel(),
			Formatter: &log.TextFormatter{
				DisableColors:   true,
				TimestampFormat: "2006-01-02 15:04:05",
				FullTimestamp:   true,
			},
		})
		if err != nil {
			log.WithError(err).Error("Can't init log file")
			return
		}
		log.AddHook(hook)
	}
}

// Run loads the definition directory, starts the watcher and the HTTP
// server and blocks until a signal arrives.
func (az *AxisZoom) Run() error {
	az.InitLog()
	log.WithField("version", az.Version).Info("axiszoom started")
	go az.charts.ApproximateCleaner(time.Minute)
	go az.reapExpired(time.Minute)

	if az.Conf.DefinitionDir != "" {
		if err := az.LoadDefinitions(az.Conf.DefinitionDir); err != nil {
			log.WithError(err).Warning("Could not load chart definitions")
		}
		if az.Conf.DefinitionWatch {
			w, err := az.watchDefinitions(az.Conf.DefinitionDir)
			if err != nil {
				log.WithError(err).Error("Could not watch chart definitions")
			} else {
				az.watcher = w
			}
		}
	}
	if az.Conf.HttpServ {
		go az.httpserver()
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	select {
	case s := <-sigs:
		log.Printf("RECEIVED SIGNAL: %s", s)
	case <-az.exit:
	}
	az.Stop()
	return nil
}

// Stop releases the watcher and the pending layout passes.
func (az *AxisZoom) Stop() {
	az.Lock()
	w := az.watcher
	az.watcher = nil
	var entries []*chartEntry
	for _, e := range az.entries {
		entries = append(entries, e)
	}
	az.Unlock()
	if w != nil {
		w.Close()
	}
	for _, e := range entries {
		e.Scheduler.Stop()
	}
}

// Shutdown makes Run return.
func (az *AxisZoom) Shutdown() {
	select {
	case <-az.exit:
	default:
		close(az.exit)
	}
}

// NewChartFromDefinition builds a chart with the configured defaults and
// registers it.
func (az *AxisZoom) NewChartFromDefinition(def *chart.Definition, file string) (*chart.Chart, error) {
	zmin, zmax := az.Conf.ZoomBounds()
	for i := range def.Axes {
		if def.Axes[i].MinZoomFactor == 0 {
			def.Axes[i].MinZoomFactor = zmin
		}
		if def.Axes[i].MaxZoomFactor == 0 {
			def.Axes[i].MaxZoomFactor = zmax
		}
	}
	c, err := def.Build(az.Conf.ChartOptions())
	if err != nil {
		return nil, errors.Annotatef(err, "chart %s", def.Name)
	}
	c.SetHttpLog(az.Logs)
	az.register(c, file)
	if _, err := c.Relayout(); err != nil {
		c.LogPrintf(chart.LvlWarn, "First layout failed: %s", err)
	}
	return c, nil
}

func (az *AxisZoom) register(c *chart.Chart, file string) {
	s := chart.NewScheduler(c, az.Conf.GetLayoutDebounce())
	s.OnError = func(err error) {
		c.LogPrintf(chart.LvlWarn, "Scheduled layout failed: %s", err)
	}
	e := &chartEntry{Chart: c, Scheduler: s, File: file}
	az.Lock()
	az.entries[c.ID] = e
	az.Unlock()
	if file != "" {
		az.files.Set(file, c.ID)
	}
	az.charts.Set(c.ID, e, 1, int32(az.Conf.ChartExpire))
	log.WithFields(log.Fields{"chart": c.Name, "id": c.ID}).Info("Chart registered")
}

// getEntry returns a live registry entry and extends its lifetime. A
// chart the cache has expired or evicted is released on the way.
func (az *AxisZoom) getEntry(id string) *chartEntry {
	v, ok := az.charts.Get(id)
	e, _ := v.(*chartEntry)
	if !ok || e == nil {
		az.release(id, "expired")
		return nil
	}
	az.charts.Set(id, e, 1, int32(az.Conf.ChartExpire))
	return e
}

func (az *AxisZoom) getChart(id string) *chart.Chart {
	if e := az.getEntry(id); e != nil {
		return e.Chart
	}
	return nil
}

// DeleteChart drops a chart from the registry.
func (az *AxisZoom) DeleteChart(id string) bool {
	if az.getEntry(id) == nil {
		return false
	}
	az.charts.Set(id, nil, 0, -1)
	return az.release(id, "removed")
}

// release stops the scheduler and the live sessions of a chart and
// forgets its definition file. It reports false when id is unknown.
func (az *AxisZoom) release(id string, reason string) bool {
	az.Lock()
	e, ok := az.entries[id]
	delete(az.entries, id)
	az.Unlock()
	if !ok {
		return false
	}
	e.Scheduler.Stop()
	if e.File != "" {
		if cur, found := az.files.CheckAndGet(e.File); found && cur == id {
			az.files.Delete(e.File)
		}
	}
	az.live.closeChart(id)
	log.WithFields(log.Fields{"chart": e.Chart.Name, "id": id}).Info("Chart " + reason)
	return true
}

func (az *AxisZoom) chartIDsLocked() []string {
	var ids []string
	for id := range az.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetCharts lists the registered charts that have not expired.
func (az *AxisZoom) GetCharts() []*chart.Chart {
	az.Lock()
	ids := az.chartIDsLocked()
	az.Unlock()
	var charts []*chart.Chart
	for _, id := range ids {
		v, ok := az.charts.Get(id)
		if e, _ := v.(*chartEntry); ok && e != nil {
			charts = append(charts, e.Chart)
			continue
		}
		az.release(id, "expired")
	}
	return charts
}

// reapExpired releases expired charts that nobody asks for any more.
func (az *AxisZoom) reapExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			az.GetCharts()
		case <-az.exit:
			return
		}
	}
}

// LoadDefinitions registers every definition file of dir.
func (az *AxisZoom) LoadDefinitions(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Trace(err)
	}
	for _, f := range entries {
		if f.IsDir() || !chart.IsDefinitionFile(f.Name()) {
			continue
		}
		if err := az.loadDefinitionFile(filepath.Join(dir, f.Name())); err != nil {
			log.WithError(err).WithField("file", f.Name()).Warning("Skipping chart definition")
		}
	}
	return nil
}

// loadDefinitionFile registers a definition file, replacing the chart it
// produced before.
func (az *AxisZoom) loadDefinitionFile(path string) error {
	def, err := chart.LoadDefinition(path)
	if err != nil {
		return err
	}
	if id, ok := az.files.CheckAndGet(path); ok {
		az.DeleteChart(id)
	}
	_, err = az.NewChartFromDefinition(def, path)
	return err
}

// unloadDefinitionFile drops the chart of a removed definition file.
func (az *AxisZoom) unloadDefinitionFile(path string) {
	if id, ok := az.files.CheckAndGet(path); ok {
		az.DeleteChart(id)
	}
}
