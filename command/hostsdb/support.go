// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/namingdb"
	"github.com/bitmark-inc/hostsdb/record"
)

// fetch the metadata for commands that need the database
func getMetadata(c *cli.Context) (*metadata, error) {
	m, ok := c.App.Metadata["config"].(*metadata)
	if !ok || nil == m.db {
		return nil, ErrNoDatabase
	}
	return m, nil
}

// indented JSON on the command output
func (m *metadata) printJSON(message interface{}) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}
	_, err = fmt.Fprintf(m.w, "%s\n", b)
	return err
}

// the list option from the command flags
func listOptions(c *cli.Context) namingdb.Options {
	options := namingdb.Options{}
	if list := c.String("list"); "" != list {
		options[namingdb.OptionList] = list
	}
	return options
}

// attributes from repeated KEY=VALUE flags
func getAttributes(c *cli.Context) (record.Attributes, error) {
	items := c.StringSlice("attribute")
	if 0 == len(items) {
		return nil, nil
	}
	attributes := make(record.Attributes)
	for _, item := range items {
		i := strings.IndexByte(item, '=')
		if i <= 0 {
			return nil, ErrInvalidAttribute
		}
		attributes[item[:i]] = item[i+1:]
	}
	return attributes, nil
}

// NAME BASE64 arguments
func getNameAndDestination(c *cli.Context) (string, *destination.Destination, error) {
	if c.NArg() < 2 {
		return "", nil, ErrMissingArguments
	}
	d, err := destination.FromBase64(c.Args().Get(1))
	if nil != err {
		return "", nil, err
	}
	return c.Args().Get(0), d, nil
}

// display form of a destination
type destinationInfo struct {
	Base64     string            `json:"base64"`
	Base32     string            `json:"base32"`
	Signing    string            `json:"signing"`
	Attributes record.Attributes `json:"attributes,omitempty"`
}

func makeDestinationInfo(d *destination.Destination, attributes record.Attributes) destinationInfo {
	return destinationInfo{
		Base64:     d.Base64(),
		Base32:     d.Base32Address(),
		Signing:    d.SigningType().String(),
		Attributes: attributes,
	}
}
