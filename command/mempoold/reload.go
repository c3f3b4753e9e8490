// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/mempoold/configuration"
)

// intervalSetter - a process whose period can change while running
type intervalSetter interface {
	SetInterval(interval time.Duration)
	Interval() time.Duration
}

// re-read the configuration and apply the collector interval
//
// other settings need a restart; a file that fails to parse leaves the
// current interval in place
func reloadInterval(configurationFile string, target intervalSetter, log *logger.L) bool {
	config, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		log.Errorf("reload configuration: %q  error: %s", configurationFile, err)
		return false
	}

	interval := config.Collector.IntervalDuration()
	if interval == target.Interval() {
		log.Debugf("interval unchanged: %s", interval)
		return false
	}

	target.SetInterval(interval)
	log.Infof("interval set to: %s", target.Interval())
	return true
}
