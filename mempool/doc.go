// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mempool - durable staging of transactions awaiting inclusion
// into a block
//
// Transactions accepted by the intake are appended to a pending table so
// that they survive a restart.  The queue is rebuilt from that table in
// submission order, with the rows bound to a batch collapsed into a
// single Batch entry.  Transactions that already appear in the finalized
// ledger are removed by the garbage collector.
//
// All operations act on a Store handle supplied by the caller; nothing
// here keeps state between calls.
package mempool
