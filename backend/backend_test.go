// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package backend_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mempoold/backend"
	"github.com/bitmark-inc/mempoold/configuration"
	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/ledger"
	"github.com/bitmark-inc/mempoold/merkle"
)

const testingDirName = "testing"

func setup(t *testing.T) configuration.DatabaseType {
	os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)

	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})

	return configuration.DatabaseType{
		Backend: configuration.LevelDBBackend,
		Name:    filepath.Join(testingDirName, "backend.leveldb"),
	}
}

func TestOpenLevelDB(t *testing.T) {
	database := setup(t)
	defer os.RemoveAll(testingDirName)

	h, err := backend.Open(database, false, 0)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer h.Close()

	hash := merkle.NewDigest([]byte("tx"))
	id, err := h.Store.AppendTx(hash.String(), []byte("payload"))
	assert.Nil(t, err, "append error")
	assert.Nil(t, h.Binder.BindBatch(id, 3), "bind error")
	assert.Nil(t, h.Recorder.PutTx(hash, []byte("record")), "record error")

	_, found, err := h.Ledger.GetTxByHash(hash)
	assert.Nil(t, err, "ledger error")
	assert.True(t, found, "recorded transaction not found")

	_, cached := h.Ledger.(*ledger.Cached)
	assert.False(t, cached, "cache enabled with zero duration")
}

func TestOpenWithCache(t *testing.T) {
	database := setup(t)
	defer os.RemoveAll(testingDirName)

	h, err := backend.Open(database, false, time.Minute)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	defer h.Close()

	_, cached := h.Ledger.(*ledger.Cached)
	assert.True(t, cached, "cache not enabled")

	h.Close()
	h.Close()
}

func TestOpenUnknownBackend(t *testing.T) {
	database := setup(t)
	defer os.RemoveAll(testingDirName)

	database.Backend = "bolt"
	_, err := backend.Open(database, false, 0)
	assert.Equal(t, fault.ErrInvalidDatabaseBackend, err, "unknown backend accepted")
}
