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
	"fmt"

	"github.com/signal18/axiszoom/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// Version is the semantic version number, e.g. 1.0.1
	Version string
	// FullVersion is the semantic version number + git commit hash
	FullVersion string
	// Build is the build date of axiszoom
	Build string
	conf  = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "axiszoom",
	Short: "Axis layout and zoom/pan engine for interactive charts",
	Long: `axiszoom lays out multi-axis charts, maps values to device pixels and keeps
per-axis zoom/pan transforms in sync with interactive clients.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Usage()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the axiszoom version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("axiszoom " + Version)
		fmt.Println("Full Version: ", FullVersion)
		fmt.Println("Build Time: ", Build)
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chart server",
	Long:  `Serves the chart API, live sessions and the definition directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := InitConfig(conf)
		c.Version = Version
		c.FullVersion = FullVersion
		return NewAxisZoom(c).Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&conf.ConfigFile, "config", "", "Configuration file (default is config.toml)")
	rootCmd.PersistentFlags().BoolVar(&conf.Verbose, "verbose", false, "Print detailed execution info")

	initLogFlags(startCmd.Flags())
	initHttpFlags(startCmd.Flags())
	initChartFlags(startCmd.Flags())
	viper.BindPFlags(rootCmd.PersistentFlags())
	viper.BindPFlags(startCmd.Flags())

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(startCmd)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func initLogFlags(flags *pflag.FlagSet) {
	flags.StringVar(&conf.LogFile, "log-file", "", "Write output messages to log file")
	flags.IntVar(&conf.LogRotateMaxSize, "log-rotate-max-size", conf.LogRotateMaxSize, "Log rotate max size")
	flags.IntVar(&conf.LogRotateMaxBackup, "log-rotate-max-backup", conf.LogRotateMaxBackup, "Log rotate max backup")
	flags.IntVar(&conf.LogRotateMaxAge, "log-rotate-max-age", conf.LogRotateMaxAge, "Log rotate max age")
	flags.IntVar(&conf.LogLevel, "log-level", conf.LogLevel, "Log verbosity level. Default 3 (INFO)")
	flags.IntVar(&conf.LogBufferSize, "log-buffer-size", conf.LogBufferSize, "Log lines kept for the HTTP log")
}

func initHttpFlags(flags *pflag.FlagSet) {
	flags.StringVar(&conf.BindAddr, "http-bind-address", conf.BindAddr, "Bind HTTP monitor to this IP address")
	flags.StringVar(&conf.HttpPort, "http-port", conf.HttpPort, "HTTP monitor to listen on this port")
	flags.BoolVar(&conf.HttpServ, "http-server", conf.HttpServ, "Start the HTTP API")
	flags.StringSliceVar(&conf.CorsOrigins, "http-cors-origins", conf.CorsOrigins, "Origins allowed to call the API from a browser")
}

func initChartFlags(flags *pflag.FlagSet) {
	flags.IntVar(&conf.ChartWidth, "chart-width", conf.ChartWidth, "Default widget width in pixels")
	flags.IntVar(&conf.ChartHeight, "chart-height", conf.ChartHeight, "Default widget height in pixels")
	flags.IntVar(&conf.PaddingTop, "padding-top", conf.PaddingTop, "Default top padding")
	flags.IntVar(&conf.PaddingRight, "padding-right", conf.PaddingRight, "Default right padding")
	flags.IntVar(&conf.PaddingBottom, "padding-bottom", conf.PaddingBottom, "Default bottom padding")
	flags.IntVar(&conf.PaddingLeft, "padding-left", conf.PaddingLeft, "Default left padding")
	flags.StringVar(&conf.Orientation, "orientation", conf.Orientation, "Default orientation: horizontal|rotated")
	flags.IntVar(&conf.DefaultBandWidth, "default-band-width", conf.DefaultBandWidth, "Axis band width when the device has no font metrics")
	flags.IntVar(&conf.InwardTickOverlap, "inward-tick-overlap", conf.InwardTickOverlap, "Band taken by the first inward axis of a side")
	flags.Float64Var(&conf.BreakGap, "break-gap", conf.BreakGap, "Pixels between axis segments")
	flags.IntVar(&conf.BaseTicks, "base-ticks", conf.BaseTicks, "Major ticks at zoom level 1")
	flags.Float64Var(&conf.MinZoomFactor, "min-zoom-factor", conf.MinZoomFactor, "Default minimum zoom factor of an axis")
	flags.Float64Var(&conf.MaxZoomFactor, "max-zoom-factor", conf.MaxZoomFactor, "Default maximum zoom factor of an axis")
	flags.BoolVar(&conf.Overscroll, "overscroll", conf.Overscroll, "Let pans move the content past the plot area")
	flags.BoolVar(&conf.OnDemandLOD, "on-demand-lod", conf.OnDemandLOD, "Build pen levels up to the current zoom level only")
	flags.BoolVar(&conf.FontMetrics, "font-metrics", conf.FontMetrics, "Measure axis bands from labels")
	flags.BoolVar(&conf.LayoutCorrection, "layout-correction", conf.LayoutCorrection, "Re-measure bands once the axis lengths are known")
	flags.IntVar(&conf.CorrectionPasses, "layout-correction-passes", conf.CorrectionPasses, "Maximum correction passes")
	flags.Float64Var(&conf.CharWidth, "char-width", conf.CharWidth, "Estimated label character width")
	flags.Float64Var(&conf.LineHeight, "line-height", conf.LineHeight, "Estimated label line height")
	flags.Float64Var(&conf.TickLength, "tick-length", conf.TickLength, "Tick mark length")
	flags.IntVar(&conf.LayoutDebounce, "layout-debounce-ms", conf.LayoutDebounce, "Delay coalescing layout requests")
	flags.Uint64Var(&conf.ChartCacheSize, "chart-cache-size", conf.ChartCacheSize, "Maximum registered charts")
	flags.IntVar(&conf.ChartExpire, "chart-expire-sec", conf.ChartExpire, "Seconds an unused chart stays registered")
	flags.StringVar(&conf.DefinitionDir, "definition-dir", "", "Directory of chart definitions (.toml, .yaml)")
	flags.BoolVar(&conf.DefinitionWatch, "definition-watch", true, "Reload chart definitions when they change")
}
