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

	"github.com/bitmark-inc/hostsdb/namingdb"
	"github.com/bitmark-inc/hostsdb/util"
)

func runImport(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	if 1 != c.NArg() {
		return ErrMissingArguments
	}
	fileName := c.Args().Get(0)

	source := c.String("source")
	if "" == source {
		source = "Imported from " + filepath.Base(fileName) + " file"
	}

	n, err := importFile(m.db, fileName, source, listOptions(c))
	if nil != err {
		return err
	}

	m.log.Infof("imported: %d entries from: %q", n, fileName)
	if m.verbose {
		fmt.Fprintf(m.e, "imported: %d entries\n", n)
	}
	return nil
}

func importFile(db *namingdb.DB, fileName string, source string, options namingdb.Options) (int, error) {
	if !util.EnsureFileExists(fileName) {
		return 0, ErrFileNotFound
	}
	f, err := os.Open(fileName)
	if nil != err {
		return 0, err
	}
	defer f.Close()
	return db.Import(f, source, options)
}
