// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sqlstore

import (
	"database/sql"

	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/merkle"
)

const (
	getExecutedQuery = `SELECT tx FROM executed_transactions WHERE tx_hash = $1`
	putExecutedQuery = `INSERT INTO executed_transactions (tx_hash, tx) VALUES ($1, $2)
		ON CONFLICT (tx_hash) DO NOTHING`
)

// Ledger - transactions of finalized blocks
type Ledger struct {
	db *sql.DB
}

// Ledger - the finalized ledger in the same database
func (s *Store) Ledger() *Ledger {
	return &Ledger{db: s.db}
}

// GetTxByHash - fetch a finalized transaction
func (l *Ledger) GetTxByHash(hash merkle.Digest) ([]byte, bool, error) {
	var record []byte
	err := l.db.QueryRow(getExecutedQuery, hash.String()).Scan(&record)
	if sql.ErrNoRows == err {
		return nil, false, nil
	}
	if nil != err {
		return nil, false, err
	}
	return record, true, nil
}

// PutTx - record a transaction as finalized, an existing entry is kept
func (l *Ledger) PutTx(hash merkle.Digest, record []byte) error {
	if 0 == len(record) {
		return fault.ErrInvalidRecord
	}
	_, err := l.db.Exec(putExecutedQuery, hash.String(), record)
	return err
}
