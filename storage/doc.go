// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - LevelDB backing store for the pending transactions
//
// The database is split into a series of pools.  Each pool is defined
// by a prefix byte that is obtained from the prefix tag in the struct
// defining the available pools.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++           = concatenation of byte data
// 3. id           = pending row id as big endian uint64 (8 bytes)
// 4. hash         = transaction hash as lower case hex text
// 5. batch id     = big endian int64 (8 bytes)
// 6. uvarint(n)   = encoding/binary unsigned varint
//
// Counters:
//
//   N ++ name                  - next value to assign
//                                data: big endian uint64
//
// Pending transactions:
//
//   M ++ id                    - record store, key order is submission order
//                                data: uvarint(len(hash)) ++ hash ++ payload
//   H ++ hash ++ 0x00 ++ id    - hash index, used to delete by hash
//                                data: empty
//
// Batch bindings:
//
//   G ++ id                    - batch of a pending row, written by the batch acceptor
//                                data: batch id
//
// Finalized ledger:
//
//   T ++ hash                  - transactions included in a finalized block
//                                data: record
//
// Testing:
//   Z ++ key                   - testing data
package storage
