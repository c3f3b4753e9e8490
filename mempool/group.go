// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mempool

// a run of consecutive rows sharing the same batch key
type group struct {
	batchId *int64
	rows    []Row
}

// two keys match if both are absent or both hold the same batch id
func sameBatch(a *int64, b *int64) bool {
	if nil == a || nil == b {
		return nil == a && nil == b
	}
	return *a == *b
}

// split rows into runs of equal batch key
//
// rows must already be in ascending id order; a batch whose rows are not
// contiguous is returned as several groups
func groupRows(rows []Row) []group {
	groups := make([]group, 0, len(rows))

	if 0 == len(rows) {
		return groups
	}

	currentKey := rows[0].BatchId
	currentBuffer := make([]Row, 0, 8)

	for _, row := range rows {
		if !sameBatch(currentKey, row.BatchId) {
			groups = append(groups, group{
				batchId: currentKey,
				rows:    currentBuffer,
			})
			currentKey = row.BatchId
			currentBuffer = make([]Row, 0, 8)
		}
		currentBuffer = append(currentBuffer, row)
	}

	return append(groups, group{
		batchId: currentKey,
		rows:    currentBuffer,
	})
}
