// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// mempool-cli - operator access to the pending transaction table
//
// uses the same configuration file as mempoold; with the leveldb
// backend the daemon must be stopped first as the database is locked
//
//   mempool-cli -c mempoold.conf list
//   mempool-cli -c mempoold.conf remove HASH...
//   mempool-cli -c mempoold.conf collect [--policy=finalized]
//   mempool-cli -c mempoold.conf bind --batch=N ID...
//   mempool-cli -c mempoold.conf bindings
//   mempool-cli -c mempoold.conf finalize HASH...
package main
