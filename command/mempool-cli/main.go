// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/mempoold/backend"
	"github.com/bitmark-inc/mempoold/configuration"
	"github.com/bitmark-inc/mempoold/mempool"
	"github.com/bitmark-inc/mempoold/storage"
	"github.com/bitmark-inc/mempoold/transactionrecord"
)

type metadata struct {
	config  *configuration.Configuration
	handle  *backend.Handle
	schema  *mempool.Schema
	verbose bool
	e       io.Writer
	w       io.Writer
}

var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "mempool-cli"
	app.Usage = "inspect and maintain the pending transaction table"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: "*mempoold configuration `FILE`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "list",
			Usage:  "show the pending queue in inclusion order",
			Action: runList,
		},
		{
			Name:      "remove",
			Usage:     "delete pending transactions",
			ArgsUsage: "HASH...",
			Action:    runRemove,
		},
		{
			Name:  "collect",
			Usage: "run one garbage collection pass",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "policy, p",
					Value: "",
					Usage: " batch `POLICY` [fail|finalized] (default from configuration)",
				},
			},
			Action: runCollect,
		},
		{
			Name:      "bind",
			Usage:     "bind pending rows to a batch",
			ArgsUsage: "ID...",
			Flags: []cli.Flag{
				cli.Int64Flag{
					Name:  "batch, b",
					Usage: "*batch `ID`",
				},
			},
			Action: runBind,
		},
		{
			Name:   "bindings",
			Usage:  "show all batch bindings, including those of deleted rows",
			Action: runBindings,
		},
		{
			Name:      "finalize",
			Usage:     "copy pending transactions to the finalized ledger",
			ArgsUsage: "HASH...",
			Action:    runFinalize,
		},
		{
			Name:  "version",
			Usage: "display mempool-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		command := c.Args().Get(0)
		switch command {
		case "", "help", "h", "version":
			return nil
		}

		e := c.App.ErrWriter
		verbose := c.GlobalBool("verbose")

		file := c.GlobalString("config-file")
		if "" == file {
			return fmt.Errorf("config-file is required")
		}
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.GetConfiguration(file)
		if nil != err {
			return err
		}

		if err := logger.Initialise(config.Logging); nil != err {
			return err
		}

		m := &metadata{
			config:  config,
			verbose: verbose,
			e:       e,
			w:       c.App.Writer,
		}
		c.App.Metadata["config"] = m

		m.handle, err = backend.Open(config.Database, storage.ReadWrite, 0)
		if nil != err {
			return err
		}

		m.schema, err = mempool.New(m.handle.Store, m.handle.Ledger, transactionrecord.JSONCodec{})
		return err
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok {
			return nil
		}
		m.handle.Close()
		logger.Finalise()
		delete(c.App.Metadata, "config")
		return nil
	}

	return app
}
