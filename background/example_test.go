// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/mempoold/background"
)

type ticker struct {
	passes int
}

func (state *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	interval := args.(time.Duration)

	fmt.Printf("initialise\n")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
			state.passes += 1
		}
	}

	fmt.Printf("finalise\n")
}

func Example() {
	proc := &ticker{}

	// list of background processes to start
	processes := background.Processes{
		proc,
	}

	p := background.Start(processes, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	p.Stop()

	// Output:
	// initialise
	// finalise
}
