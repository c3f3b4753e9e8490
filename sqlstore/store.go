// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/bitmark-inc/logger"
	"github.com/lib/pq"

	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/mempool"
)

const driverName = "postgres"

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS mempool_txs (
		id BIGSERIAL PRIMARY KEY,
		tx_hash TEXT NOT NULL,
		tx BYTEA NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS mempool_txs_tx_hash ON mempool_txs (tx_hash)`,
	`CREATE TABLE IF NOT EXISTS mempool_batch_binding (
		mempool_tx_id BIGINT PRIMARY KEY,
		batch_id BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS executed_transactions (
		tx_hash TEXT PRIMARY KEY,
		tx BYTEA NOT NULL
	)`,
}

const (
	insertTxQuery = `INSERT INTO mempool_txs (tx_hash, tx) VALUES ($1, $2) RETURNING id`

	pendingRowsQuery = `SELECT t.id, t.tx_hash, t.tx, b.batch_id
		FROM mempool_txs t
		LEFT JOIN mempool_batch_binding b ON b.mempool_tx_id = t.id
		ORDER BY t.id ASC`

	deleteTxsQuery = `DELETE FROM mempool_txs WHERE tx_hash = ANY($1)`

	bindBatchQuery = `INSERT INTO mempool_batch_binding (mempool_tx_id, batch_id) VALUES ($1, $2)
		ON CONFLICT (mempool_tx_id) DO UPDATE SET batch_id = EXCLUDED.batch_id`

	bindingsQuery = `SELECT mempool_tx_id, batch_id FROM mempool_batch_binding`
)

// Store - pending transactions held in PostgreSQL
type Store struct {
	log *logger.L
	db  *sql.DB
}

// New - wrap an open database handle, the caller keeps ownership
func New(db *sql.DB) (*Store, error) {
	if nil == db {
		return nil, fault.ErrDatabaseIsNil
	}
	log := logger.New("sqlstore")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	return &Store{
		log: log,
		db:  db,
	}, nil
}

// Open - connect using a lib/pq connection string
func Open(dsn string) (*Store, error) {
	db, err := sql.Open(driverName, dsn)
	if nil != err {
		return nil, err
	}
	err = db.Ping()
	if nil != err {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return New(db)
}

// Close - release the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateTables - create any missing tables, existing tables are not changed
func (s *Store) CreateTables() error {
	for _, statement := range createStatements {
		_, err := s.db.Exec(statement)
		if nil != err {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	s.log.Info("tables ready")
	return nil
}

// AppendTx - insert a row, the id is assigned by the sequence
func (s *Store) AppendTx(hash string, payload []byte) (uint64, error) {
	if "" == hash {
		return 0, fault.ErrMissingHash
	}

	var id int64
	err := s.db.QueryRow(insertTxQuery, hash, payload).Scan(&id)
	if nil != err {
		return 0, err
	}
	return uint64(id), nil
}

// PendingRows - all rows in id order joined with their batch binding
func (s *Store) PendingRows() ([]mempool.Row, error) {
	rows, err := s.db.Query(pendingRowsQuery)
	if nil != err {
		return nil, err
	}
	defer rows.Close()

	result := make([]mempool.Row, 0, 64)
	for rows.Next() {
		var (
			id      int64
			hash    string
			payload []byte
			batchId sql.NullInt64
		)
		err := rows.Scan(&id, &hash, &payload, &batchId)
		if nil != err {
			return nil, err
		}

		row := mempool.Row{
			Id:      uint64(id),
			Hash:    hash,
			Payload: payload,
		}
		if batchId.Valid {
			b := batchId.Int64
			row.BatchId = &b
		}
		result = append(result, row)
	}

	err = rows.Err()
	if nil != err {
		return nil, err
	}
	return result, nil
}

// DeleteTxs - delete all rows whose hash is listed in one statement
func (s *Store) DeleteTxs(hashes []string) error {
	if 0 == len(hashes) {
		return nil
	}

	result, err := s.db.Exec(deleteTxsQuery, pq.Array(hashes))
	if nil != err {
		return err
	}

	if n, err := result.RowsAffected(); nil == err {
		s.log.Debugf("deleted rows: %d  for hashes: %d", n, len(hashes))
	}
	return nil
}

// BindBatch - record that a pending row belongs to a batch
func (s *Store) BindBatch(id uint64, batchId int64) error {
	_, err := s.db.Exec(bindBatchQuery, int64(id), batchId)
	return err
}

// Bindings - every binding, including those left by deleted rows
func (s *Store) Bindings() (map[uint64]int64, error) {
	rows, err := s.db.Query(bindingsQuery)
	if nil != err {
		return nil, err
	}
	defer rows.Close()

	bindings := make(map[uint64]int64)
	for rows.Next() {
		var id, batchId int64
		err := rows.Scan(&id, &batchId)
		if nil != err {
			return nil, err
		}
		bindings[uint64(id)] = batchId
	}
	return bindings, rows.Err()
}
