// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/mempoold/counter"
	"github.com/bitmark-inc/mempoold/fault"
)

// MinimumInterval - shortest allowed time between collection passes
const MinimumInterval = time.Second

// Collector - background process running garbage collection once at
// start and then periodically
type Collector struct {
	passes   counter.Counter
	failures counter.Counter

	sync.Mutex
	log      *logger.L
	schema   *Schema
	policy   BatchPolicy
	interval time.Duration
	changed  chan struct{}
}

// NewCollector - create a collector for use with background.Start
func NewCollector(schema *Schema, policy BatchPolicy, interval time.Duration) (*Collector, error) {
	if nil == schema {
		return nil, fault.ErrDatabaseIsNil
	}
	if nil == policy {
		return nil, fault.ErrInvalidBatchPolicy
	}

	log := logger.New("collector")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	return &Collector{
		log:      log,
		schema:   schema,
		policy:   policy,
		interval: clampInterval(interval),
		changed:  make(chan struct{}, 1),
	}, nil
}

func clampInterval(interval time.Duration) time.Duration {
	if interval < MinimumInterval {
		return MinimumInterval
	}
	return interval
}

// SetInterval - change the period, the running wait restarts
func (c *Collector) SetInterval(interval time.Duration) {
	c.Lock()
	c.interval = clampInterval(interval)
	c.Unlock()

	// only one pending notification is needed
	select {
	case c.changed <- struct{}{}:
	default:
	}
}

// Interval - current period
func (c *Collector) Interval() time.Duration {
	c.Lock()
	defer c.Unlock()
	return c.interval
}

// Counters - number of passes run and the number that failed
func (c *Collector) Counters() (uint64, uint64) {
	return c.passes.Uint64(), c.failures.Uint64()
}

// Run - background process loop
func (c *Collector) Run(args interface{}, shutdown <-chan struct{}) {
	log := c.log

	log.Infof("starting…  policy: %s", c.policy)

	c.process()

loop:
	for {
		interval := c.Interval()
		log.Debugf("waiting: %s", interval)

		select {
		case <-shutdown:
			break loop

		case <-c.changed:
			log.Infof("interval changed to: %s", c.Interval())

		case <-time.After(interval):
			c.process()
		}
	}

	log.Info("finished")
	log.Flush()
}

// one collection pass, failures are logged and counted
func (c *Collector) process() {
	err := c.schema.CollectGarbage(c.policy)
	if nil != err {
		c.failures.Increment()
		c.log.Criticalf("garbage collection failed: %s", err)
	}
	c.passes.Increment()
}
