// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/namingdb"
)

type metadata struct {
	config  *Configuration
	db      *namingdb.DB
	log     *logger.L
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "hostsdb"
	app.Usage = "manage a host name database"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	listFlag := cli.StringFlag{
		Name:  "list, l",
		Value: "",
		Usage: " host list `NAME` [default: all lists for lookup, hosts.txt otherwise]",
	}
	attributeFlag := cli.StringSliceFlag{
		Name:  "attribute, a",
		Usage: " extra attribute `KEY=VALUE` (may be repeated)",
	}

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config-file, c",
			Value: "",
			Usage: " configuration `FILE` [default: none]",
		},
		cli.BoolFlag{
			Name:  "read-only, r",
			Usage: " open the database read-only",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "display database status",
			Action: runInfo,
		},
		{
			Name:      "lookup",
			Usage:     "display the destinations of a name",
			ArgsUsage: "NAME",
			Flags:     []cli.Flag{listFlag},
			Action:    runLookup,
		},
		{
			Name:      "put",
			Usage:     "set the destination of a name, replacing any others",
			ArgsUsage: "NAME BASE64",
			Flags: []cli.Flag{
				listFlag,
				attributeFlag,
				cli.BoolFlag{
					Name:  "if-absent, n",
					Usage: " fail if the name already exists",
				},
			},
			Action: runPut,
		},
		{
			Name:      "add",
			Usage:     "add a destination to a name",
			ArgsUsage: "NAME BASE64",
			Flags:     []cli.Flag{listFlag, attributeFlag},
			Action:    runAdd,
		},
		{
			Name:      "remove",
			Usage:     "remove a name, or one of its destinations",
			ArgsUsage: "NAME [BASE64]",
			Flags:     []cli.Flag{listFlag},
			Action:    runRemove,
		},
		{
			Name:  "list",
			Usage: "list names of a host list",
			Flags: []cli.Flag{
				listFlag,
				cli.StringFlag{
					Name:  "search, s",
					Value: "",
					Usage: " only names containing `STRING`",
				},
				cli.StringFlag{
					Name:  "starts-with, w",
					Value: "",
					Usage: " only names starting with `PREFIX` ([0-9] for any digit)",
				},
				cli.StringFlag{
					Name:  "begin-with, b",
					Value: "",
					Usage: " start at `NAME`",
				},
				cli.IntFlag{
					Name:  "skip, k",
					Value: 0,
					Usage: " skip `COUNT` names",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: " maximum names to output `COUNT` [default: all]",
				},
				cli.BoolFlag{
					Name:  "destinations, d",
					Usage: " include the primary destinations",
				},
			},
			Action: runList,
		},
		{
			Name:      "export",
			Usage:     "write a host list in hosts.txt format",
			ArgsUsage: "[FILE]",
			Flags:     []cli.Flag{listFlag},
			Action:    runExport,
		},
		{
			Name:      "import",
			Usage:     "read a file in hosts.txt format into a host list",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				listFlag,
				cli.StringFlag{
					Name:  "source, s",
					Value: "",
					Usage: " source `TEXT` for imported names [default: file name]",
				},
			},
			Action: runImport,
		},
		{
			Name:      "reverse",
			Usage:     "display the names of a destination",
			ArgsUsage: "BASE64|B32ADDRESS",
			Action:    runReverse,
		},
		{
			Name:  "generate",
			Usage: "generate a random destination",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "type, t",
					Value: destination.SigningEdDSASHA512Ed25519.String(),
					Usage: " signing `TYPE`",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "watch",
			Usage:     "import a hosts.txt file each time it changes",
			ArgsUsage: "FILE",
			Flags:     []cli.Flag{listFlag},
			Action:    runWatch,
		},
		{
			Name:  "version",
			Usage: "display hostsdb version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration and open the database
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// commands that do not need the database
		command := c.Args().Get(0)
		switch command {
		case "", "version", "generate", "help", "h":
			c.App.Metadata["config"] = &metadata{
				verbose: verbose,
				e:       e,
				w:       w,
			}
			return nil
		}

		file := c.GlobalString("config-file")
		if verbose && "" != file {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		configuration, err := getConfiguration(file)
		if nil != err {
			return err
		}
		if c.GlobalBool("read-only") {
			configuration.Database.ReadOnly = true
		}

		if err := logger.Initialise(configuration.Logging); nil != err {
			return err
		}

		log := logger.New("hostsdb")
		log.Info("starting…")
		log.Debugf("configuration: %#v", configuration)

		db, err := namingdb.Open(&configuration.Database)
		if nil != err {
			logger.Finalise()
			return err
		}

		if verbose {
			fmt.Fprintf(e, "database: %q  version: %d\n", db.Path(), db.Version())
		}

		c.App.Metadata["config"] = &metadata{
			config:  configuration,
			db:      db,
			log:     log,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	// close the database
	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok || nil == m.db {
			return nil
		}
		err := m.db.Close()
		m.log.Info("shutdown complete")
		logger.Finalise()
		return err
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("%s: terminated with error: %s", app.Name, err)
	}
}
