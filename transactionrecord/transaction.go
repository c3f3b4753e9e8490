// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/json"

	"github.com/bitmark-inc/mempoold/merkle"
)

// TagType - type code for transactions
type TagType byte

// enumerate the possible transaction record types
// this is the first byte of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	TransferTag = TagType(iota) // move an amount between two accounts
	WithdrawTag = TagType(iota) // move an amount out to an external address

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// Transaction - generic transaction interface
//
// the hash identifies the content, two transactions with the same
// fields have the same hash
type Transaction interface {
	Tag() TagType
	Hash() merkle.Digest
}

// Transfer - the unpacked Transfer structure
type Transfer struct {
	From      string       `json:"from"`          // account address
	To        string       `json:"to"`            // account address
	Token     uint16       `json:"token"`         // token identifier
	Amount    uint64       `json:"amount,string"` // in the smallest token unit
	Fee       uint64       `json:"fee,string"`    // in the smallest token unit
	Nonce     uint64       `json:"nonce"`         // sender nonce
	Signature HexSignature `json:"signature"`     // hex
}

// Withdraw - the unpacked Withdraw structure
type Withdraw struct {
	Account   string       `json:"account"`       // account address
	To        string       `json:"to"`            // external address
	Token     uint16       `json:"token"`         // token identifier
	Amount    uint64       `json:"amount,string"` // in the smallest token unit
	Fee       uint64       `json:"fee,string"`    // in the smallest token unit
	Nonce     uint64       `json:"nonce"`         // sender nonce
	Signature HexSignature `json:"signature"`     // hex
}

// Tag - type code of a transfer
func (tx *Transfer) Tag() TagType { return TransferTag }

// Tag - type code of a withdraw
func (tx *Withdraw) Tag() TagType { return WithdrawTag }

// Hash - content hash of a transfer
func (tx *Transfer) Hash() merkle.Digest { return hashOf(tx) }

// Hash - content hash of a withdraw
func (tx *Withdraw) Hash() merkle.Digest { return hashOf(tx) }

// Pack - tag byte followed by the JSON encoding of the record
func Pack(tx Transaction) (Packed, error) {
	buffer, err := json.Marshal(tx)
	if nil != err {
		return nil, err
	}
	packed := make(Packed, 1, len(buffer)+1)
	packed[0] = byte(tx.Tag())
	return append(packed, buffer...), nil
}

// MakeLink - the digest of a packed record
func (record Packed) MakeLink() merkle.Digest {
	return merkle.NewDigest(record)
}

func hashOf(tx Transaction) merkle.Digest {
	packed, err := Pack(tx)
	if nil != err {
		// only plain fields are present so marshalling cannot fail
		panic("transaction pack failed: " + err.Error())
	}
	return packed.MakeLink()
}
