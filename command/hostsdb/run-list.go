// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/hostsdb/namingdb"
)

func runList(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	options := listOptions(c)
	for flag, option := range map[string]string{
		"search":      namingdb.OptionSearch,
		"starts-with": namingdb.OptionStartsWith,
		"begin-with":  namingdb.OptionBeginWith,
	} {
		if s := c.String(flag); "" != s {
			options[option] = s
		}
	}
	if n := c.Int("skip"); n > 0 {
		options[namingdb.OptionSkip] = strconv.Itoa(n)
	}
	if n := c.Int("count"); n > 0 {
		options[namingdb.OptionLimit] = strconv.Itoa(n)
	}

	if !c.Bool("destinations") {
		for _, name := range m.db.GetNames(options) {
			fmt.Fprintf(m.w, "%s\n", name)
		}
		return nil
	}

	entries := m.db.GetBase64Entries(options)
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(m.w, "%s=%s\n", name, entries[name])
	}
	return nil
}
