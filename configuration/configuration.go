// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/mempool"
)

// database backends
const (
	LevelDBBackend  = "leveldb"
	PostgresBackend = "postgres"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultLevelDBName      = "mempool.leveldb"

	defaultInterval           = 3600 // seconds
	defaultLedgerCacheSeconds = 600

	defaultLogDirectory = "log"
	defaultLogFile      = "mempoold.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

// DatabaseType - where the pending transactions are kept
type DatabaseType struct {
	Backend   string `gluamapper:"backend" json:"backend"`
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
	DSN       string `gluamapper:"dsn" json:"-"`
}

// CollectorType - garbage collection settings
type CollectorType struct {
	Interval           int    `gluamapper:"interval" json:"interval"`
	BatchPolicy        string `gluamapper:"batch_policy" json:"batch_policy"`
	LedgerCacheSeconds int    `gluamapper:"ledger_cache_seconds" json:"ledger_cache_seconds"`
}

// Configuration - contents of the configuration file
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Collector     CollectorType        `gluamapper:"collector" json:"collector"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// IntervalDuration - time between collection passes
func (c CollectorType) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// LedgerCacheDuration - lifetime of a cached ledger entry, zero disables the cache
func (c CollectorType) LedgerCacheDuration() time.Duration {
	if c.LedgerCacheSeconds <= 0 {
		return 0
	}
	return time.Duration(c.LedgerCacheSeconds) * time.Second
}

// Policy - the batch policy selected by name
func (c CollectorType) Policy() (mempool.BatchPolicy, error) {
	return mempool.PolicyFromName(c.BatchPolicy)
}

// GetConfiguration - read, decode and verify the configuration
//
// relative paths are made absolute using the data directory and any
// missing log or database directory is created
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Backend:   LevelDBBackend,
			Directory: defaultLevelDBDirectory,
			Name:      defaultLevelDBName,
		},

		Collector: CollectorType{
			Interval:           defaultInterval,
			BatchPolicy:        mempool.FailOnBatchName,
			LedgerCacheSeconds: defaultLedgerCacheSeconds,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	dataDirectory, err := DataDirectory(configurationFileName, options.DataDirectory)
	if nil != err {
		return nil, err
	}
	options.DataDirectory = dataDirectory

	options.Database.Backend = strings.ToLower(strings.TrimSpace(options.Database.Backend))
	switch options.Database.Backend {
	case LevelDBBackend:
		options.Database.Directory = EnsureAbsolute(options.DataDirectory, options.Database.Directory)
		options.Database.Name, err = PlainName(options.Database.Directory, options.Database.Name)
		if nil != err {
			return nil, err
		}
	case PostgresBackend:
		if "" == options.Database.DSN {
			return nil, fmt.Errorf("database: %q requires a dsn", options.Database.Backend)
		}
	default:
		return nil, fault.ErrInvalidDatabaseBackend
	}

	if _, err := options.Collector.Policy(); nil != err {
		return nil, err
	}
	if time.Duration(options.Collector.Interval)*time.Second < mempool.MinimumInterval {
		options.Collector.Interval = defaultInterval
	}

	if "" != options.PidFile {
		options.PidFile = EnsureAbsolute(options.DataDirectory, options.PidFile)
	}

	options.Logging.Directory = EnsureAbsolute(options.DataDirectory, options.Logging.Directory)
	if _, err := PlainName(options.Logging.Directory, options.Logging.File); nil != err {
		return nil, err
	}

	// make absolute and create directories if they do not already exist
	directories := []string{options.Logging.Directory}
	if LevelDBBackend == options.Database.Backend {
		directories = append(directories, options.Database.Directory)
	}
	for _, d := range directories {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	return options, nil
}
