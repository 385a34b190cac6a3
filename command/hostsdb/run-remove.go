// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runRemove(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	switch c.NArg() {
	case 1:
		name := c.Args().Get(0)
		if err := m.db.Remove(name, listOptions(c)); nil != err {
			return err
		}
		if m.verbose {
			fmt.Fprintf(m.e, "removed: %s\n", name)
		}

	case 2:
		name, d, err := getNameAndDestination(c)
		if nil != err {
			return err
		}
		if err := m.db.RemoveDestination(name, d, listOptions(c)); nil != err {
			return err
		}
		if m.verbose {
			fmt.Fprintf(m.e, "removed: %s → %s\n", name, d.Base32Address())
		}

	default:
		return ErrMissingArguments
	}
	return nil
}
