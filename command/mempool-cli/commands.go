// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/mempoold/fault"
	"github.com/bitmark-inc/mempoold/mempool"
	"github.com/bitmark-inc/mempoold/merkle"
)

type entry struct {
	Type   string   `json:"type"`
	Hashes []string `json:"hashes"`
}

type listing struct {
	Summary mempool.Summary `json:"summary"`
	Entries []entry         `json:"entries"`
}

func runList(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	txs, err := m.schema.LoadTxs()
	if nil != err {
		return err
	}

	result := listing{
		Entries: make([]entry, len(txs)),
	}
	for i, variant := range txs {
		e := entry{
			Hashes: make([]string, 0, variant.Len()),
		}
		switch variant.(type) {
		case mempool.Single:
			e.Type = "single"
			result.Summary.Singles += 1
		case mempool.Batch:
			e.Type = "batch"
			result.Summary.Batches += 1
		}
		for _, hash := range variant.Hashes() {
			e.Hashes = append(e.Hashes, hash.String())
		}
		result.Summary.Transactions += variant.Len()
		result.Entries[i] = e
	}

	return printJson(m.w, result)
}

func runRemove(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	hashes, err := parseHashes(c.Args())
	if nil != err {
		return err
	}

	err = m.schema.RemoveTxs(hashes)
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "removed: %d hashes\n", len(hashes))
	}
	return nil
}

func runCollect(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	name := c.String("policy")
	if "" == name {
		name = m.config.Collector.BatchPolicy
	}
	policy, err := mempool.PolicyFromName(name)
	if nil != err {
		return err
	}

	before, err := m.schema.Summary()
	if nil != err {
		return err
	}
	err = m.schema.CollectGarbage(policy)
	if nil != err {
		return err
	}
	after, err := m.schema.Summary()
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"policy":  policy.String(),
		"removed": before.Transactions - after.Transactions,
		"pending": after,
	})
}

func runBind(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if !c.IsSet("batch") {
		return fmt.Errorf("batch id is required")
	}
	batchId := c.Int64("batch")

	if 0 == len(c.Args()) {
		return fmt.Errorf("at least one row id is required")
	}
	for _, arg := range c.Args() {
		id, err := strconv.ParseUint(arg, 10, 64)
		if nil != err {
			return fmt.Errorf("row id: %q  error: %s", arg, err)
		}
		err = m.handle.Binder.BindBatch(id, batchId)
		if nil != err {
			return err
		}
	}
	return nil
}

func runBindings(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	bindings, err := m.handle.Binder.Bindings()
	if nil != err {
		return err
	}

	// JSON object keys must be strings
	result := make(map[string]int64, len(bindings))
	for id, batchId := range bindings {
		result[strconv.FormatUint(id, 10)] = batchId
	}
	return printJson(m.w, result)
}

func runFinalize(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	hashes, err := parseHashes(c.Args())
	if nil != err {
		return err
	}

	rows, err := m.handle.Store.PendingRows()
	if nil != err {
		return err
	}
	payloads := make(map[string][]byte, len(rows))
	for _, row := range rows {
		payloads[row.Hash] = row.Payload
	}

	for _, hash := range hashes {
		payload, ok := payloads[hash.String()]
		if !ok {
			return fmt.Errorf("hash: %s  error: %w", hash, fault.ErrTransactionNotFound)
		}
		err := m.handle.Recorder.PutTx(hash, payload)
		if nil != err {
			return err
		}
	}
	return nil
}

func parseHashes(args []string) ([]merkle.Digest, error) {
	if 0 == len(args) {
		return nil, fmt.Errorf("at least one hash is required")
	}
	hashes := make([]merkle.Digest, len(args))
	for i, arg := range args {
		hash, err := merkle.DigestFromHex(arg)
		if nil != err {
			return nil, fmt.Errorf("hash: %q  error: %w", arg, err)
		}
		hashes[i] = hash
	}
	return hashes, nil
}
