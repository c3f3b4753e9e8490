// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/mempoold/mempool"
	"github.com/bitmark-inc/mempoold/storage"
	"github.com/bitmark-inc/mempoold/transactionrecord"
)

const (
	testingDirName   = "testing"
	databaseFileName = "test.leveldb"
)

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// a schema over a fresh LevelDB database
func setup(t *testing.T) (*mempool.Schema, *storage.Database) {
	setupTestLogger()

	db, err := storage.Open(filepath.Join(testingDirName, databaseFileName), storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}

	schema, err := mempool.New(db, db.Ledger(), transactionrecord.JSONCodec{})
	if nil != err {
		t.Fatalf("schema error: %s", err)
	}
	return schema, db
}

func teardown(db *storage.Database) {
	if nil != db {
		db.Close()
	}
	removeFiles()
}

// n distinct transfers from the same sender
func makeTransfers(n int) []transactionrecord.Transaction {
	txs := make([]transactionrecord.Transaction, n)
	for i := 0; i < n; i += 1 {
		txs[i] = &transactionrecord.Transfer{
			From:      "sender",
			To:        fmt.Sprintf("receiver-%d", i+1),
			Token:     1,
			Amount:    uint64(100 * (i + 1)),
			Fee:       1,
			Nonce:     uint64(i + 1),
			Signature: transactionrecord.HexSignature{byte(i + 1), 0xff},
		}
	}
	return txs
}

func insertAll(t *testing.T, schema *mempool.Schema, txs []transactionrecord.Transaction) {
	for _, tx := range txs {
		err := schema.InsertTx(tx)
		if nil != err {
			t.Fatalf("insert error: %s", err)
		}
	}
}

func single(tx transactionrecord.Transaction) mempool.Variant {
	return mempool.Single{Tx: tx}
}

func batch(txs ...transactionrecord.Transaction) mempool.Variant {
	return mempool.Batch{Txs: txs}
}
