// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
)

type fakeCollector struct {
	interval time.Duration
	calls    int
}

func (f *fakeCollector) SetInterval(interval time.Duration) {
	f.interval = interval
	f.calls += 1
}

func (f *fakeCollector) Interval() time.Duration {
	return f.interval
}

func TestReloadInterval(t *testing.T) {
	setupLogger(t)
	defer teardown()

	log := logger.New("test")
	target := &fakeCollector{interval: time.Hour}

	fileName := writeConfiguration(t, `return { data_directory = ".", collector = { interval = 120 } }`)
	assert.True(t, reloadInterval(fileName, target, log), "interval not applied")
	assert.Equal(t, 2*time.Minute, target.interval, "wrong interval")

	assert.False(t, reloadInterval(fileName, target, log), "unchanged interval applied")
	assert.Equal(t, 1, target.calls, "set called for unchanged interval")

	fileName = writeConfiguration(t, `return {`)
	assert.False(t, reloadInterval(fileName, target, log), "broken file applied")
	assert.Equal(t, 2*time.Minute, target.interval, "interval changed by broken file")
}
