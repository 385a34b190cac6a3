// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/hostsdb/record"
	"github.com/bitmark-inc/hostsdb/reverse"
	"github.com/bitmark-inc/hostsdb/schema"
	"github.com/bitmark-inc/hostsdb/storage"
	"github.com/bitmark-inc/hostsdb/util"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// colours
const (
	keyColour1 = "\033[1;36m"
	keyColour2 = "\033[1;31m"
	valColour1 = "\033[1;33m"
	valColour2 = "\033[1;34m"
	endColour  = "\033[0m"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "pools", HasArg: getoptions.NO_ARGUMENT, Short: 'p'},
		{Long: "decode", HasArg: getoptions.NO_ARGUMENT, Short: 'd'},
		{Long: "colour", HasArg: getoptions.NO_ARGUMENT, Short: 'g'},
		{Long: "ascii", HasArg: getoptions.NO_ARGUMENT, Short: 'a'},
		{Long: "database", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "list", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'l'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 1 != len(options["database"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--pools] [--decode] [--count=N] --database=DIR [--list=NAME] [key-prefix]", program)
	}

	colour := len(options["colour"]) > 0
	ascii := len(options["ascii"]) > 0
	decode := len(options["decode"]) > 0
	verbose := len(options["verbose"]) > 0

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	filename := options["database"][0]

	list := schema.InfoPool
	if len(options["list"]) > 0 {
		list = options["list"][0]
	}

	prefix := []byte(nil)
	if len(arguments) > 0 {
		prefix = []byte(arguments[0])
	}

	if verbose {
		fmt.Printf("read list: %s from database: %q\n", list, filename)
	}

	logging := logger.Configuration{
		Directory: ".",
		File:      "hostsdb-dump.log",
		Size:      1048576,
		Count:     10,
		Console:   true,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	if err = logger.Initialise(logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// start of main processing
	store, err := storage.Open(filename, storage.ReadOnly)
	if nil != err {
		exitwithstatus.Message("%s: storage setup failed with error: %s", program, err)
	}
	defer store.Close()

	if len(options["pools"]) > 0 {
		fmt.Printf(" lists:\n")
		for _, name := range store.Pools() {
			n := 0
			if p := store.Pool(name); nil != p {
				n, _ = p.Size()
			}
			fmt.Printf("       %s → %d\n", name, n)
		}
		return
	}

	codec := record.Current
	if decode {
		header, err := schema.ReadHeader(store)
		if nil != err {
			exitwithstatus.Message("%s: read header error: %s", program, err)
		}
		codec = header.CodecFor(list)
		if verbose {
			fmt.Printf("version: %d  codec: %s  lists: %v\n", header.Version, codec, header.Lists)
		}
	}

	p := store.Pool(list)
	if nil == p {
		exitwithstatus.Message("%s: no list corresponding to: %q", program, list)
	}

	cursor := p.NewFetchCursor()
	if len(prefix) > 0 {
		cursor.Seek(prefix)
	}

	data, err := cursor.Fetch(count)
	if nil != err {
		exitwithstatus.Message("%s: error on Fetch: %s", program, err)
	}

	ck1 := ""
	ck2 := ""
	cv1 := ""
	cv2 := ""
	ce := ""
	if colour {
		ck1 = keyColour1
		ck2 = keyColour2
		cv1 = valColour1
		cv2 = valColour2
		ce = endColour
	}

	for i, e := range data {
		fmt.Printf("%d: %sKey: %s%q%s\n", i, ck1, ck2, e.Key, ce)

		if decode {
			if schema.InfoPool == list || reverse.PoolName == list {
				properties, err := record.DecodeProperties(e.Value)
				if nil == err {
					for _, k := range properties.Keys() {
						fmt.Printf("%d: %s%s: %s%s%s\n", i, cv1, k, cv2, properties[k], ce)
					}
					continue
				}
				fmt.Printf("%d: %sBad: %s%s%s\n", i, cv1, cv2, err, ce)
			} else {
				entry, err := codec.Unpack(e.Value)
				if nil == err {
					for j, pair := range entry.Pairs {
						fmt.Printf("%d.%d: %sDst: %s%s %s%s\n", i, j, cv1, cv2, pair.Destination.Base32Address(), pair.Destination.SigningType(), ce)
						for _, k := range pair.Attributes.Keys() {
							fmt.Printf("%d.%d: %s%s: %s%s%s\n", i, j, cv1, k, cv2, pair.Attributes[k], ce)
						}
					}
					continue
				}
				fmt.Printf("%d: %sBad: %s%s%s\n", i, cv1, cv2, err, ce)
			}
		}

		if ascii {
			label := fmt.Sprintf("%d: %sVal: %s", i, cv1, cv2)
			util.HexDump(os.Stdout, label, ce, e.Value)
		} else {
			fmt.Printf("%d: %sVal: %s%x%s\n", i, cv1, cv2, e.Value, ce)
		}
	}
}
