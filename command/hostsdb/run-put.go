// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

func runPut(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	name, d, err := getNameAndDestination(c)
	if nil != err {
		return err
	}
	attributes, err := getAttributes(c)
	if nil != err {
		return err
	}

	if c.Bool("if-absent") {
		err = m.db.PutIfAbsent(name, d, attributes, listOptions(c))
	} else {
		err = m.db.Put(name, d, attributes, listOptions(c))
	}
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "stored: %s → %s\n", name, d.Base32Address())
	}
	return nil
}

func runAdd(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	name, d, err := getNameAndDestination(c)
	if nil != err {
		return err
	}
	attributes, err := getAttributes(c)
	if nil != err {
		return err
	}

	err = m.db.AddDestination(name, d, attributes, listOptions(c))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "added: %s → %s\n", name, d.Base32Address())
	}
	return nil
}
