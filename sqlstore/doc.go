// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package sqlstore - PostgreSQL backing for the pending transaction table
//
// tables:
//
//   mempool_txs            id BIGSERIAL, tx_hash TEXT, tx BYTEA
//   mempool_batch_binding  mempool_tx_id BIGINT, batch_id BIGINT
//   executed_transactions  tx_hash TEXT, tx BYTEA
//
// the binding table has no foreign key, deleting a pending transaction
// leaves its binding in place
package sqlstore
