// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/transactionrecord"
)

func TestTransferRoundTrip(t *testing.T) {
	codec := transactionrecord.JSONCodec{}

	tx := &transactionrecord.Transfer{
		From:      "sender",
		To:        "receiver",
		Token:     3,
		Amount:    18446744073709551615,
		Fee:       10,
		Nonce:     7,
		Signature: transactionrecord.HexSignature{0x01, 0x02, 0xfe},
	}

	payload, err := codec.Encode(tx)
	if nil != err {
		t.Fatalf("encode error: %s", err)
	}

	decoded, err := codec.Decode(payload)
	if nil != err {
		t.Fatalf("decode error: %s", err)
	}

	assert.Equal(t, tx, decoded, "wrong transfer")
	assert.Equal(t, tx.Hash(), decoded.Hash(), "hash changed after round trip")
}

func TestWithdrawRoundTrip(t *testing.T) {
	codec := transactionrecord.JSONCodec{}

	tx := &transactionrecord.Withdraw{
		Account:   "owner",
		To:        "0x0000000000000000000000000000000000000001",
		Amount:    99,
		Nonce:     1,
		Signature: transactionrecord.HexSignature{0xaa},
	}

	payload, err := codec.Encode(tx)
	if nil != err {
		t.Fatalf("encode error: %s", err)
	}
	assert.Contains(t, string(payload), `"type":"Withdraw"`, "missing type name")

	decoded, err := codec.Decode(payload)
	if nil != err {
		t.Fatalf("decode error: %s", err)
	}
	assert.Equal(t, tx, decoded, "wrong withdraw")
}

func TestHashDependsOnContentAndType(t *testing.T) {
	a := &transactionrecord.Transfer{From: "x", To: "y", Amount: 1, Nonce: 1}
	b := &transactionrecord.Transfer{From: "x", To: "y", Amount: 1, Nonce: 1}
	c := &transactionrecord.Transfer{From: "x", To: "y", Amount: 1, Nonce: 2}

	assert.Equal(t, a.Hash(), b.Hash(), "identical content must hash identically")
	assert.NotEqual(t, a.Hash(), c.Hash(), "different nonce must change the hash")

	packed, err := transactionrecord.Pack(a)
	assert.Nil(t, err, "pack error")
	assert.Equal(t, byte(transactionrecord.TransferTag), packed[0], "wrong tag byte")
	assert.Equal(t, packed.MakeLink(), a.Hash(), "hash is not the digest of the packed record")
}

func TestDecodeErrors(t *testing.T) {
	codec := transactionrecord.JSONCodec{}

	items := []struct {
		payload string
		isFault bool
	}{
		{`{"type":"Burn","tx":{}}`, true},
		{`{"type":"Transfer"}`, true},
		{`{"type":"Transfer","tx":{"amount":12}}`, false}, // amount must be a string
		{`not json`, false},
		{``, false},
	}

	for i, item := range items {
		tx, err := codec.Decode([]byte(item.payload))
		assert.Nil(t, tx, "%d: unexpected transaction", i)
		if assert.NotNil(t, err, "%d: expected an error", i) && item.isFault {
			assert.True(t, fault.IsErrInvalid(err) || fault.IsErrRecord(err), "%d: expected fault error, got: %s", i, err)
		}
	}
}

type unknownTx struct{ transactionrecord.Transfer }

func (u *unknownTx) Tag() transactionrecord.TagType { return transactionrecord.InvalidTag }

func TestEncodeUnknownType(t *testing.T) {
	_, err := transactionrecord.JSONCodec{}.Encode(&unknownTx{})
	assert.Equal(t, fault.ErrUnknownTransactionType, err, "unknown type accepted")
}
