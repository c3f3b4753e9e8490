// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package counter - statistics counters safe for concurrent use
package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit unsigned event count
//
// on 32 bit platforms a Counter must be the first word of any struct
// that contains it
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (ic *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(ic), 1)
}

// Uint64 - returns current value
func (ic *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(ic))
}

// IsZero - check if no events have been counted
func (ic *Counter) IsZero() bool {
	return 0 == ic.Uint64()
}
