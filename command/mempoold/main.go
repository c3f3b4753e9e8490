// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/mempoold/backend"
	"github.com/bitmark-inc/mempoold/background"
	"github.com/bitmark-inc/mempoold/configuration"
	"github.com/bitmark-inc/mempoold/mempool"
	"github.com/bitmark-inc/mempoold/storage"
	"github.com/bitmark-inc/mempoold/transactionrecord"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE", program)
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// start the data storage
	log.Infof("database backend: %s", theConfiguration.Database.Backend)
	handle, err := backend.Open(theConfiguration.Database, storage.ReadWrite, theConfiguration.Collector.LedgerCacheDuration())
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer handle.Close()

	schema, err := mempool.New(handle.Store, handle.Ledger, transactionrecord.JSONCodec{})
	if nil != err {
		log.Criticalf("mempool initialise error: %s", err)
		exitwithstatus.Message("mempool initialise error: %s", err)
	}

	// report the restored queue before any collection
	summary, err := schema.Summary()
	if nil != err {
		log.Criticalf("restore pending transactions error: %s", err)
		exitwithstatus.Message("restore pending transactions error: %s", err)
	}
	log.Infof("restored: %d transactions  singles: %d  batches: %d", summary.Transactions, summary.Singles, summary.Batches)

	policy, err := theConfiguration.Collector.Policy()
	if nil != err {
		exitwithstatus.Message("batch policy error: %s", err)
	}

	collector, err := mempool.NewCollector(schema, policy, theConfiguration.Collector.IntervalDuration())
	if nil != err {
		log.Criticalf("collector initialise error: %s", err)
		exitwithstatus.Message("collector initialise error: %s", err)
	}

	// the collector runs one pass immediately
	processes := background.Start(background.Processes{collector}, nil)
	defer processes.Stop()

	watcherChannel := WatcherChannel{
		change: make(chan struct{}, 1),
		remove: make(chan struct{}, 1),
	}
	watcher, err := newFileWatcher(configurationFile, logger.New(FileWatcherLoggerPrefix), watcherChannel)
	if nil != err {
		log.Warnf("configuration will not be reloaded: %s", err)
	} else if err := watcher.Start(); nil != err {
		log.Warnf("configuration will not be reloaded: %s", err)
	} else {
		defer watcher.Stop()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

loop:
	for {
		select {
		case sig := <-ch:
			log.Infof("received signal: %v", sig)
			if 0 == len(options["quiet"]) {
				fmt.Printf("\nreceived signal: %v\n", sig)
				fmt.Printf("\nshutting down…\n")
			}
			break loop

		case <-watcherChannel.change:
			reloadInterval(configurationFile, collector, log)

		case <-watcherChannel.remove:
			log.Warnf("configuration file: %q removed, keeping interval: %s", configurationFile, collector.Interval())
		}
	}

	log.Info("shutting down…")
}
