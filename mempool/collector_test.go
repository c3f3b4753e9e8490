// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mempoold/background"
	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/mempool"
)

// wait for the collector to complete at least n passes
func waitForPasses(c *mempool.Collector, n uint64) bool {
	for i := 0; i < 200; i += 1 {
		passes, _ := c.Counters()
		if passes >= n {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestCollectorFirstPass(t *testing.T) {
	schema, db := setup(t)
	defer teardown(db)

	tx := makeTransfers(3)
	insertAll(t, schema, tx)
	finalize(t, db, tx[0])

	collector, err := mempool.NewCollector(schema, mempool.FailOnBatch, time.Hour)
	assert.Nil(t, err, "collector error")

	processes := background.Start(background.Processes{collector}, nil)
	ok := waitForPasses(collector, 1)
	processes.Stop()

	assert.True(t, ok, "first pass did not run")
	passes, failures := collector.Counters()
	assert.Equal(t, uint64(1), passes, "wrong pass count")
	assert.Equal(t, uint64(0), failures, "wrong failure count")

	txs, err := schema.LoadTxs()
	assert.Nil(t, err, "load error")
	assert.Equal(t, []mempool.Variant{single(tx[1]), single(tx[2])}, txs, "finalized entry not removed")
}

func TestCollectorCountsFailures(t *testing.T) {
	schema, db := setup(t)
	defer teardown(db)

	insertAll(t, schema, makeTransfers(2))
	_ = db.BindBatch(1, 1)

	collector, err := mempool.NewCollector(schema, mempool.FailOnBatch, time.Hour)
	assert.Nil(t, err, "collector error")

	processes := background.Start(background.Processes{collector}, nil)
	ok := waitForPasses(collector, 1)
	processes.Stop()

	assert.True(t, ok, "first pass did not run")
	_, failures := collector.Counters()
	assert.Equal(t, uint64(1), failures, "failure not counted")
}

func TestCollectorInterval(t *testing.T) {
	schema, db := setup(t)
	defer teardown(db)

	collector, err := mempool.NewCollector(schema, mempool.RemoveFinalizedBatches, time.Millisecond)
	assert.Nil(t, err, "collector error")
	assert.Equal(t, mempool.MinimumInterval, collector.Interval(), "interval not clamped")

	processes := background.Start(background.Processes{collector}, nil)
	assert.True(t, waitForPasses(collector, 1), "first pass did not run")

	collector.SetInterval(time.Hour)
	assert.Equal(t, time.Hour, collector.Interval(), "interval not changed")

	collector.SetInterval(0)
	assert.Equal(t, mempool.MinimumInterval, collector.Interval(), "interval not clamped")

	processes.Stop()
}

func TestNewCollectorErrors(t *testing.T) {
	schema, db := setup(t)
	defer teardown(db)

	_, err := mempool.NewCollector(nil, mempool.FailOnBatch, time.Minute)
	assert.Equal(t, fault.ErrDatabaseIsNil, err, "nil schema accepted")

	_, err = mempool.NewCollector(schema, nil, time.Minute)
	assert.Equal(t, fault.ErrInvalidBatchPolicy, err, "nil policy accepted")
}
