// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/merkle"
	"github.com/bitmark-inc/mempoold/transactionrecord"
)

// Schema - access to the pending transactions of a store
//
// the store, ledger and codec are borrowed from the caller
type Schema struct {
	log    *logger.L
	store  Store
	ledger Ledger
	codec  Codec
}

// Summary - counts from one load of the queue
type Summary struct {
	Singles      int
	Batches      int
	Transactions int
}

// New - create a schema over an open store
//
// the logger must be initialised before calling this
func New(store Store, ledger Ledger, codec Codec) (*Schema, error) {
	if nil == store {
		return nil, fault.ErrDatabaseIsNil
	}
	log := logger.New("mempool")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	return &Schema{
		log:    log,
		store:  store,
		ledger: ledger,
		codec:  codec,
	}, nil
}

// LoadTxs - rebuild the queue in submission order
//
// consecutive rows bound to the same batch become one Batch, every
// other row becomes a Single.  If any payload cannot be decoded the
// whole load fails and no entries are returned.
func (s *Schema) LoadTxs() ([]Variant, error) {
	rows, err := s.store.PendingRows()
	if nil != err {
		return nil, err
	}

	txs := make([]Variant, 0, len(rows))

	for _, g := range groupRows(rows) {
		decoded := make([]transactionrecord.Transaction, len(g.rows))
		for i, row := range g.rows {
			tx, err := s.codec.Decode(row.Payload)
			if nil != err {
				s.log.Errorf("decode pending tx id: %d  hash: %s  error: %s", row.Id, row.Hash, err)
				return nil, err
			}
			decoded[i] = tx
		}

		if nil != g.batchId {
			txs = append(txs, Batch{Txs: decoded})
			continue
		}
		for _, tx := range decoded {
			txs = append(txs, Single{Tx: tx})
		}
	}

	s.log.Debugf("loaded rows: %d  entries: %d", len(rows), len(txs))
	return txs, nil
}

// InsertTx - append a transaction to the pending table
//
// no check is made for an existing row with the same hash
func (s *Schema) InsertTx(tx transactionrecord.Transaction) error {
	hash := tx.Hash().String()

	payload, err := s.codec.Encode(tx)
	if nil != err {
		return err
	}

	id, err := s.store.AppendTx(hash, payload)
	if nil != err {
		return err
	}

	s.log.Debugf("inserted id: %d  hash: %s", id, hash)
	return nil
}

// RemoveTx - delete every row with this hash
//
// a hash that is not present is not an error, any batch binding of the
// deleted rows is left in place
func (s *Schema) RemoveTx(hash merkle.Digest) error {
	return s.RemoveTxs([]merkle.Digest{hash})
}

// RemoveTxs - delete every row whose hash is in the list, in one write
func (s *Schema) RemoveTxs(hashes []merkle.Digest) error {
	if 0 == len(hashes) {
		return nil
	}

	text := make([]string, len(hashes))
	for i, hash := range hashes {
		text[i] = hash.String()
	}

	err := s.store.DeleteTxs(text)
	if nil != err {
		return err
	}

	s.log.Debugf("removed hashes: %d", len(text))
	return nil
}

// Summary - load the queue and count its entries
func (s *Schema) Summary() (Summary, error) {
	txs, err := s.LoadTxs()
	if nil != err {
		return Summary{}, err
	}

	summary := Summary{}
	for _, variant := range txs {
		switch v := variant.(type) {
		case Single:
			summary.Singles += 1
		case Batch:
			summary.Batches += 1
		default:
			s.log.Criticalf("unexpected queue entry: %#v", v)
		}
		summary.Transactions += variant.Len()
	}
	return summary, nil
}
