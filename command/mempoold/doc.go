// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// mempoold - keep the pending transaction table clean
//
// on start the pending queue is restored and summarised, then a
// garbage collection pass runs immediately and again on each
// collector interval.  Editing the configuration file changes the
// interval without a restart.
//
// usage:
//
//   mempoold --config-file=mempoold.conf
package main
