// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/fault"
)

func runReverse(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	if 1 != c.NArg() {
		return ErrMissingArguments
	}
	arg := c.Args().Get(0)

	var names []string
	if destination.IsBase32Address(arg) {
		h, ok := destination.HashFromBase32Address(arg)
		if !ok {
			return fault.ErrInvalidName
		}
		names = m.db.ReverseLookupAllHash(h)
	} else {
		d, err := destination.FromBase64(arg)
		if nil != err {
			return err
		}
		names = m.db.ReverseLookupAll(d)
	}

	if 0 == len(names) {
		return fault.ErrNameNotFound
	}
	for _, name := range names {
		fmt.Fprintf(m.w, "%s\n", name)
	}
	return nil
}
