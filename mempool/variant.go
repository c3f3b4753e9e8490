// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"github.com/bitmark-inc/mempoold/merkle"
	"github.com/bitmark-inc/mempoold/transactionrecord"
)

// Variant - one entry of the rebuilt queue
//
// the only implementations are Single and Batch
type Variant interface {
	Hashes() []merkle.Digest
	Len() int
	variant()
}

// Single - a transaction that is not part of a batch
type Single struct {
	Tx transactionrecord.Transaction
}

// Batch - transactions that must be included atomically, in row order
type Batch struct {
	Txs []transactionrecord.Transaction
}

func (Single) variant() {}
func (Batch) variant()  {}

// Hashes - hash of the transaction
func (s Single) Hashes() []merkle.Digest {
	return []merkle.Digest{s.Tx.Hash()}
}

// Hashes - hashes of all transactions in batch order
func (b Batch) Hashes() []merkle.Digest {
	hashes := make([]merkle.Digest, len(b.Txs))
	for i, tx := range b.Txs {
		hashes[i] = tx.Hash()
	}
	return hashes
}

// Len - number of transactions
func (Single) Len() int { return 1 }

// Len - number of transactions
func (b Batch) Len() int { return len(b.Txs) }

// all hashes of a list of entries, flattened in queue order
func allHashes(variants []Variant) []merkle.Digest {
	n := 0
	for _, v := range variants {
		n += v.Len()
	}
	hashes := make([]merkle.Digest, 0, n)
	for _, v := range variants {
		hashes = append(hashes, v.Hashes()...)
	}
	return hashes
}
