// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - lookup decorators for the finalized ledger
package ledger

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/mempoold/counter"
	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/mempool"
	"github.com/bitmark-inc/mempoold/merkle"
)

const (
	defaultExpiration = 10 * time.Minute
	cleanupFactor     = 2
)

// Cached - remembers transactions found in the ledger
//
// a finalized transaction stays finalized, so only positive results are
// kept; a miss or an error always goes to the underlying ledger
type Cached struct {
	hits   counter.Counter
	misses counter.Counter
	source mempool.Ledger
	cache  *cache.Cache
}

// NewCached - wrap a ledger, entries are dropped after expiration
func NewCached(source mempool.Ledger, expiration time.Duration) (*Cached, error) {
	if nil == source {
		return nil, fault.ErrDatabaseIsNil
	}
	if expiration <= 0 {
		expiration = defaultExpiration
	}
	return &Cached{
		source: source,
		cache:  cache.New(expiration, cleanupFactor*expiration),
	}, nil
}

// GetTxByHash - cached lookup
func (c *Cached) GetTxByHash(hash merkle.Digest) ([]byte, bool, error) {
	key := hash.String()

	if obj, found := c.cache.Get(key); found {
		c.hits.Increment()
		return obj.([]byte), true, nil
	}
	c.misses.Increment()

	record, found, err := c.source.GetTxByHash(hash)
	if nil != err || !found {
		return record, found, err
	}

	c.cache.Set(key, record, cache.DefaultExpiration)
	return record, true, nil
}

// Stats - cache hits and misses since creation
func (c *Cached) Stats() (uint64, uint64) {
	return c.hits.Uint64(), c.misses.Uint64()
}

// Clear - forget all cached entries
func (c *Cached) Clear() {
	c.cache.Flush()
}
