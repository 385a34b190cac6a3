// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/hostsdb/fault"
)

type lookupReply struct {
	Name         string            `json:"name"`
	Destinations []destinationInfo `json:"destinations"`
}

func runLookup(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	if 1 != c.NArg() {
		return ErrMissingArguments
	}
	name := c.Args().Get(0)

	destinations, attributes := m.db.LookupAllWithAttributes(name, listOptions(c))
	if 0 == len(destinations) {
		return fault.ErrNameNotFound
	}

	reply := lookupReply{
		Name:         name,
		Destinations: make([]destinationInfo, len(destinations)),
	}
	for i, d := range destinations {
		reply.Destinations[i] = makeDestinationInfo(d, attributes[i])
	}
	return m.printJSON(reply)
}
