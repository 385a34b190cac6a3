// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/hostsdb/destination"
)

var generateTypes = []destination.SigningType{
	destination.SigningDSASHA1,
	destination.SigningEdDSASHA512Ed25519,
	destination.SigningRedDSASHA512Ed25519,
}

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	name := c.String("type")
	signingType := destination.SigningType(0)
	found := false
	for _, t := range generateTypes {
		if strings.EqualFold(name, t.String()) {
			signingType = t
			found = true
			break
		}
	}
	if !found {
		return ErrInvalidSigningType
	}

	d, err := destination.Generate(signingType)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "destination: %d bytes\n", len(d.Bytes()))
	}

	return m.printJSON(makeDestinationInfo(d, nil))
}
