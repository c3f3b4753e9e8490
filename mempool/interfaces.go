// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"github.com/bitmark-inc/mempoold/merkle"
	"github.com/bitmark-inc/mempoold/transactionrecord"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// Row - a pending transaction joined with its optional batch binding
type Row struct {
	Id      uint64
	Hash    string
	Payload []byte
	BatchId *int64 // nil if the transaction has no binding
}

// Store - the pending table and the batch binding index
//
// PendingRows must return every row ordered by ascending Id with the
// batch id of its binding, if any.  DeleteTxs must delete every row whose
// hash is in the list in one atomic write; hashes that are not present
// are ignored.
type Store interface {
	AppendTx(hash string, payload []byte) (uint64, error)
	PendingRows() ([]Row, error)
	DeleteTxs(hashes []string) error
}

// Ledger - lookup of transactions already included in a finalized block
type Ledger interface {
	GetTxByHash(hash merkle.Digest) ([]byte, bool, error)
}

// Codec - converts transactions to and from the stored payload
type Codec interface {
	Encode(tx transactionrecord.Transaction) ([]byte, error)
	Decode(payload []byte) (transactionrecord.Transaction, error)
}
