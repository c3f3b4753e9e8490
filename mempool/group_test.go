// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func key(n int64) *int64 {
	return &n
}

// batch key and row ids of each group
type shape struct {
	batchId *int64
	ids     []uint64
}

func shapeOf(groups []group) []shape {
	result := make([]shape, len(groups))
	for i, g := range groups {
		ids := make([]uint64, len(g.rows))
		for j, r := range g.rows {
			ids[j] = r.Id
		}
		result[i] = shape{batchId: g.batchId, ids: ids}
	}
	return result
}

func TestSameBatch(t *testing.T) {
	assert.True(t, sameBatch(nil, nil), "nil/nil")
	assert.False(t, sameBatch(nil, key(1)), "nil/some")
	assert.False(t, sameBatch(key(1), nil), "some/nil")
	assert.True(t, sameBatch(key(1), key(1)), "equal values at different addresses")
	assert.False(t, sameBatch(key(1), key(2)), "different values")
}

func TestGroupRows(t *testing.T) {
	items := []struct {
		rows     []Row
		expected []shape
	}{
		{
			rows:     nil,
			expected: []shape{},
		},
		{
			rows: []Row{{Id: 1}, {Id: 2}, {Id: 3}},
			expected: []shape{
				{nil, []uint64{1, 2, 3}},
			},
		},
		{
			rows: []Row{{Id: 1}, {Id: 2, BatchId: key(7)}, {Id: 3, BatchId: key(7)}, {Id: 4, BatchId: key(7)}, {Id: 5}},
			expected: []shape{
				{nil, []uint64{1}},
				{key(7), []uint64{2, 3, 4}},
				{nil, []uint64{5}},
			},
		},
		{
			rows: []Row{{Id: 1, BatchId: key(1)}, {Id: 2, BatchId: key(2)}, {Id: 3, BatchId: key(2)}},
			expected: []shape{
				{key(1), []uint64{1}},
				{key(2), []uint64{2, 3}},
			},
		},
		{
			rows: []Row{{Id: 1, BatchId: key(4)}, {Id: 2}, {Id: 3, BatchId: key(4)}},
			expected: []shape{
				{key(4), []uint64{1}},
				{nil, []uint64{2}},
				{key(4), []uint64{3}},
			},
		},
	}

	for i, item := range items {
		actual := shapeOf(groupRows(item.rows))
		assert.Equal(t, item.expected, actual, "%d: wrong groups", i)
	}
}

func TestAllHashes(t *testing.T) {
	assert.Equal(t, 0, len(allHashes(nil)), "hashes of nothing")
}
