// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/mempool"
)

// counter name for pending row ids
var pendingCounterKey = []byte("pending")

// separates the hash from the id in the hash index
const hashSeparator = 0x00

func idKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

func hashPrefix(hash string) []byte {
	key := make([]byte, 0, len(hash)+1)
	key = append(key, hash...)
	return append(key, hashSeparator)
}

func hashKey(hash string, id uint64) []byte {
	return append(hashPrefix(hash), idKey(id)...)
}

// record value: uvarint(len(hash)) ++ hash ++ payload
func packRecord(hash string, payload []byte) []byte {
	buffer := make([]byte, binary.MaxVarintLen64, binary.MaxVarintLen64+len(hash)+len(payload))
	n := binary.PutUvarint(buffer, uint64(len(hash)))
	buffer = append(buffer[:n], hash...)
	return append(buffer, payload...)
}

func unpackRecord(record []byte) (string, []byte, error) {
	length, n := binary.Uvarint(record)
	if n <= 0 {
		return "", nil, fault.ErrInvalidRecord
	}
	record = record[n:]
	if uint64(len(record)) < length {
		return "", nil, fault.ErrInvalidRecord
	}
	return string(record[:length]), record[length:], nil
}

// AppendTx - add a pending row and return its id
//
// the counter, the row and its hash index entry are written atomically
func (d *Database) AppendTx(hash string, payload []byte) (uint64, error) {
	if "" == hash {
		return 0, fault.ErrMissingHash
	}

	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return 0, fault.ErrDatabaseIsNil
	}

	next, _, err := d.Pool.Counters.GetN(pendingCounterKey)
	if nil != err {
		return 0, err
	}
	id := next + 1

	batch := new(leveldb.Batch)
	d.Pool.Counters.batchPut(batch, pendingCounterKey, idKey(id))
	d.Pool.PendingTxs.batchPut(batch, idKey(id), packRecord(hash, payload))
	d.Pool.PendingHashes.batchPut(batch, hashKey(hash, id), []byte{})

	err = d.db.Write(batch, nil)
	if nil != err {
		return 0, err
	}
	return id, nil
}

// PendingRows - all pending rows in id order, each with its batch binding
//
// both pools are read from one snapshot
func (d *Database) PendingRows() ([]mempool.Row, error) {
	if nil == d.db {
		return nil, fault.ErrDatabaseIsNil
	}

	snapshot, err := d.db.GetSnapshot()
	if nil != err {
		return nil, err
	}
	defer snapshot.Release()

	rows := make([]mempool.Row, 0, 100)
	err = d.Pool.PendingTxs.newCursor(snapshot).Map(func(key []byte, value []byte) error {
		if 8 != len(key) {
			return fault.ErrInvalidRecord
		}
		id := binary.BigEndian.Uint64(key)

		hash, payload, err := unpackRecord(value)
		if nil != err {
			d.log.Errorf("pending id: %d  error: %s", id, err)
			return err
		}

		binding, err := d.Pool.BatchBindings.get(snapshot, key)
		if nil != err {
			return err
		}

		row := mempool.Row{
			Id:      id,
			Hash:    hash,
			Payload: payload,
		}
		if nil != binding {
			if 8 != len(binding) {
				d.log.Errorf("binding id: %d  length: %d", id, len(binding))
				return fault.ErrInvalidRecord
			}
			batchId := int64(binary.BigEndian.Uint64(binding))
			row.BatchId = &batchId
		}
		rows = append(rows, row)
		return nil
	})
	if nil != err {
		return nil, err
	}
	return rows, nil
}

// DeleteTxs - delete every pending row whose hash is listed
//
// unknown hashes are ignored and batch bindings are not touched
func (d *Database) DeleteTxs(hashes []string) error {
	if 0 == len(hashes) {
		return nil
	}

	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return fault.ErrDatabaseIsNil
	}

	batch := new(leveldb.Batch)
	for _, hash := range hashes {
		err := d.Pool.PendingHashes.NewFetchCursor().Prefix(hashPrefix(hash)).Map(func(key []byte, value []byte) error {
			if len(key) < 8 {
				return fault.ErrInvalidRecord
			}
			id := key[len(key)-8:]
			d.Pool.PendingTxs.batchDelete(batch, id)
			d.Pool.PendingHashes.batchDelete(batch, key)
			return nil
		})
		if nil != err {
			return err
		}
	}

	if 0 == batch.Len() {
		return nil
	}

	d.log.Debugf("delete: %d keys", batch.Len())
	return d.db.Write(batch, nil)
}

// BindBatch - record that a pending row belongs to a batch
//
// used by the batch acceptor; the rows of one batch must have
// consecutive ids
func (d *Database) BindBatch(id uint64, batchId int64) error {
	if nil == d.db {
		return fault.ErrDatabaseIsNil
	}
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, uint64(batchId))
	return d.Pool.BatchBindings.Put(idKey(id), value)
}

// Bindings - all batch bindings, including ones whose row was removed
func (d *Database) Bindings() (map[uint64]int64, error) {
	bindings := make(map[uint64]int64)
	err := d.Pool.BatchBindings.NewFetchCursor().Map(func(key []byte, value []byte) error {
		if 8 != len(key) || 8 != len(value) {
			return fault.ErrInvalidRecord
		}
		bindings[binary.BigEndian.Uint64(key)] = int64(binary.BigEndian.Uint64(value))
		return nil
	})
	return bindings, err
}
