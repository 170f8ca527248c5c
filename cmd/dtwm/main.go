// Dtwm is a dynamic tiling window manager for X11.
//
// Usage:
//
//	dtwm [-c config.yaml] [-v]
package main

import (
	"flag"
	"fmt"
	"os"

	"rsc.io/getopt"

	"github.com/dtwm/dtwm/internal/config"
	"github.com/dtwm/dtwm/internal/util"
	"github.com/dtwm/dtwm/internal/wm"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "print the version and exit")
	cfgPath := flag.String("config", "", "path to the configuration file")
	getopt.Alias("v", "version")
	getopt.Alias("c", "config")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: dtwm [-c config.yaml] [-v]\n")
		getopt.CommandLine.PrintDefaults()
	}
	getopt.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *showVersion {
		fmt.Printf("dtwm-%s\n", version)
		return
	}

	path := *cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dtwm: %v\n", err)
		os.Exit(1)
	}
	level, err := util.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dtwm: %v\n", err)
		os.Exit(1)
	}
	logger := util.NewLogger(level)

	manager, err := wm.New(cfg, path, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dtwm: %v\n", err)
		os.Exit(1)
	}
	if err := manager.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "dtwm: %v\n", err)
		os.Exit(1)
	}
	if err := manager.Scan(); err != nil {
		logger.Errorf("scanning existing windows: %v", err)
	}
	manager.RunStartupHook()
	if err := manager.WatchConfig(); err != nil {
		logger.Warnf("config watching disabled: %v", err)
	}

	err = manager.Run()
	manager.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dtwm: %v\n", err)
		os.Exit(1)
	}
}
