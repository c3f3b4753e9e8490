// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/json"

	"github.com/bitmark-inc/mempoold/fault"
)

// names used in the type field of the stored JSON
const (
	transferName = "Transfer"
	withdrawName = "Withdraw"
)

// JSONCodec - convert transactions to and from the stored payload
//
// payload format: {"type": "Transfer", "tx": {...}}
type JSONCodec struct{}

type envelope struct {
	Type string          `json:"type"`
	Tx   json.RawMessage `json:"tx"`
}

// Encode - serialise a transaction with its type name
func (JSONCodec) Encode(tx Transaction) ([]byte, error) {
	name := ""
	switch tx.(type) {
	case *Transfer:
		name = transferName
	case *Withdraw:
		name = withdrawName
	default:
		return nil, fault.ErrUnknownTransactionType
	}

	data, err := json.Marshal(tx)
	if nil != err {
		return nil, err
	}
	return json.Marshal(envelope{
		Type: name,
		Tx:   data,
	})
}

// Decode - deserialise a payload produced by Encode
func (JSONCodec) Decode(payload []byte) (Transaction, error) {
	var e envelope
	err := json.Unmarshal(payload, &e)
	if nil != err {
		return nil, err
	}

	var tx Transaction
	switch e.Type {
	case transferName:
		tx = new(Transfer)
	case withdrawName:
		tx = new(Withdraw)
	default:
		return nil, fault.ErrUnknownTransactionType
	}

	if 0 == len(e.Tx) {
		return nil, fault.ErrInvalidRecord
	}
	err = json.Unmarshal(e.Tx, tx)
	if nil != err {
		return nil, err
	}
	return tx, nil
}
