// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mempoold/background"
)

type bg1 struct {
	count int
	final int
}

const (
	initialCount1 = 246
	finalCount1   = 987654321
	initialCount2 = 777
	finalCount2   = 897645312
)

func (state *bg1) Run(args interface{}, shutdown <-chan struct{}) {
	t := args.(*testing.T)

loop:
	for {
		select {
		case <-shutdown:
			break loop
		default:
		}
		state.count += 9
		time.Sleep(time.Millisecond)
	}

	if state.count < 0 {
		t.Errorf("count overflow: %d", state.count)
	}
	state.count = state.final
}

func TestBackground(t *testing.T) {
	proc1 := &bg1{
		count: initialCount1,
		final: finalCount1,
	}
	proc2 := &bg1{
		count: initialCount2,
		final: finalCount2,
	}

	// list of background processes to start
	var processes = background.Processes{
		proc1,
		proc2,
	}

	p := background.Start(processes, t)
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	assert.Equal(t, finalCount1, proc1.count, "process 1 did not finish")
	assert.Equal(t, finalCount2, proc2.count, "process 2 did not finish")

	// second stop must not block or panic
	p.Stop()
}

func TestStopNil(t *testing.T) {
	var p *background.T
	p.Stop()
}
