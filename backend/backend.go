// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package backend - open the configured store and ledger
package backend

import (
	"time"

	"github.com/bitmark-inc/mempoold/configuration"
	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/ledger"
	"github.com/bitmark-inc/mempoold/mempool"
	"github.com/bitmark-inc/mempoold/merkle"
	"github.com/bitmark-inc/mempoold/sqlstore"
	"github.com/bitmark-inc/mempoold/storage"
)

// Binder - write access to the batch binding index
type Binder interface {
	BindBatch(id uint64, batchId int64) error
	Bindings() (map[uint64]int64, error)
}

// Recorder - write access to the finalized ledger
type Recorder interface {
	PutTx(hash merkle.Digest, record []byte) error
}

// Handle - an open backend
type Handle struct {
	Store    mempool.Store
	Ledger   mempool.Ledger
	Binder   Binder
	Recorder Recorder
	close    func()
}

// Open - open the database selected by the configuration
//
// a positive cacheDuration puts a positive-result cache in front of the
// ledger
func Open(database configuration.DatabaseType, readOnly bool, cacheDuration time.Duration) (*Handle, error) {
	var h *Handle

	switch database.Backend {
	case configuration.LevelDBBackend:
		db, err := storage.Open(database.Name, readOnly)
		if nil != err {
			return nil, err
		}
		l := db.Ledger()
		h = &Handle{
			Store:    db,
			Ledger:   l,
			Binder:   db,
			Recorder: l,
			close:    db.Close,
		}

	case configuration.PostgresBackend:
		s, err := sqlstore.Open(database.DSN)
		if nil != err {
			return nil, err
		}
		if !readOnly {
			if err := s.CreateTables(); nil != err {
				s.Close()
				return nil, err
			}
		}
		l := s.Ledger()
		h = &Handle{
			Store:    s,
			Ledger:   l,
			Binder:   s,
			Recorder: l,
			close:    func() { s.Close() },
		}

	default:
		return nil, fault.ErrInvalidDatabaseBackend
	}

	if cacheDuration > 0 {
		cached, err := ledger.NewCached(h.Ledger, cacheDuration)
		if nil != err {
			h.Close()
			return nil, err
		}
		h.Ledger = cached
	}
	return h, nil
}

// Close - release the database
func (h *Handle) Close() {
	if nil != h && nil != h.close {
		h.close()
		h.close = nil
	}
}
