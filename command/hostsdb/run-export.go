// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"
)

func runExport(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	if 0 == c.NArg() {
		return m.db.Export(m.w, listOptions(c))
	}

	fileName := c.Args().Get(0)
	f, err := os.Create(fileName)
	if nil != err {
		return err
	}
	err = m.db.Export(f, listOptions(c))
	if e := f.Close(); nil == err {
		err = e
	}
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "exported: %d names to: %q\n", m.db.Size(listOptions(c)), filepath.Clean(fileName))
	}
	return nil
}
