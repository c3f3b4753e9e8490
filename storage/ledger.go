// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/merkle"
)

// Ledger - the finalized transactions pool
type Ledger struct {
	pool *PoolHandle
}

// Ledger - access to the finalized transactions of this database
func (d *Database) Ledger() *Ledger {
	return &Ledger{
		pool: d.Pool.Transactions,
	}
}

// GetTxByHash - the finalized record for a hash
//
// second parameter is false if the hash is not finalized
func (l *Ledger) GetTxByHash(hash merkle.Digest) ([]byte, bool, error) {
	record, err := l.pool.Get([]byte(hash.String()))
	if nil != err {
		return nil, false, err
	}
	if nil == record {
		return nil, false, nil
	}
	return record, true, nil
}

// PutTx - mark a transaction as finalized
func (l *Ledger) PutTx(hash merkle.Digest, record []byte) error {
	if 0 == len(record) {
		return fault.ErrInvalidRecord
	}
	return l.pool.Put([]byte(hash.String()), record)
}
