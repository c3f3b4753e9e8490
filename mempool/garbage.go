// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"strings"

	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/merkle"
)

// FinalizedFunc - reports whether a hash is present in the finalized ledger
type FinalizedFunc func(hash merkle.Digest) (bool, error)

// BatchPolicy - decides whether garbage collection removes a batch
//
// an error aborts the collection pass before anything is deleted
type BatchPolicy interface {
	Removable(batch Batch, finalized FinalizedFunc) (bool, error)
	String() string
}

// names used in the configuration
const (
	FailOnBatchName            = "fail"
	RemoveFinalizedBatchesName = "finalized"
)

// FailOnBatch - any batch in the queue fails the collection pass with
// fault.ErrBatchReconciliationUndefined
var FailOnBatch BatchPolicy = failOnBatch{}

// RemoveFinalizedBatches - a batch is removed when all of its
// transactions are finalized and kept when none are; a partially
// finalized batch fails the pass with fault.ErrBatchPartiallyFinalized
var RemoveFinalizedBatches BatchPolicy = removeFinalizedBatches{}

type failOnBatch struct{}

func (failOnBatch) Removable(batch Batch, finalized FinalizedFunc) (bool, error) {
	return false, fault.ErrBatchReconciliationUndefined
}

func (failOnBatch) String() string { return FailOnBatchName }

type removeFinalizedBatches struct{}

func (removeFinalizedBatches) Removable(batch Batch, finalized FinalizedFunc) (bool, error) {
	if 0 == len(batch.Txs) {
		return false, fault.ErrEmptyBatch
	}

	count := 0
	for _, tx := range batch.Txs {
		found, err := finalized(tx.Hash())
		if nil != err {
			return false, err
		}
		if found {
			count += 1
		}
	}

	switch count {
	case 0:
		return false, nil
	case len(batch.Txs):
		return true, nil
	default:
		return false, fault.ErrBatchPartiallyFinalized
	}
}

func (removeFinalizedBatches) String() string { return RemoveFinalizedBatchesName }

// PolicyFromName - select a batch policy by its configuration name
func PolicyFromName(name string) (BatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FailOnBatchName:
		return FailOnBatch, nil
	case RemoveFinalizedBatchesName:
		return RemoveFinalizedBatches, nil
	default:
		return nil, fault.ErrInvalidBatchPolicy
	}
}

// CollectGarbage - remove pending transactions that are already finalized
//
// a transaction normally leaves the pending table when its block is
// finalized; any that remain are left over from a removal that did not
// complete.  This is expected to run at start up and then on a long
// interval.
//
// the load, the ledger lookups and the delete are separate operations,
// a concurrent insert or removal may be observed or missed
func (s *Schema) CollectGarbage(policy BatchPolicy) error {
	if nil == policy {
		return fault.ErrInvalidBatchPolicy
	}
	if nil == s.ledger {
		return fault.ErrDatabaseIsNil
	}

	txs, err := s.LoadTxs()
	if nil != err {
		return err
	}

	remove := make([]Variant, 0, len(txs))

	for _, variant := range txs {
		switch v := variant.(type) {

		case Single:
			found, err := s.isFinalized(v.Tx.Hash())
			if nil != err {
				s.log.Errorf("ledger lookup: %s  error: %s", v.Tx.Hash(), err)
				return err
			}
			if found {
				remove = append(remove, v)
			}

		case Batch:
			ok, err := policy.Removable(v, s.isFinalized)
			if nil != err {
				s.log.Errorf("batch of %d  policy: %s  error: %s", len(v.Txs), policy, err)
				return err
			}
			if ok {
				remove = append(remove, v)
			}

		default:
			s.log.Criticalf("unexpected queue entry: %#v", v)
			return fault.ErrUnknownTransactionType
		}
	}

	hashes := allHashes(remove)
	if 0 == len(hashes) {
		s.log.Infof("garbage: none in %d entries", len(txs))
		return nil
	}

	s.log.Infof("garbage: removing %d transactions in %d entries", len(hashes), len(remove))
	return s.RemoveTxs(hashes)
}

func (s *Schema) isFinalized(hash merkle.Digest) (bool, error) {
	_, found, err := s.ledger.GetTxByHash(hash)
	return found, err
}
