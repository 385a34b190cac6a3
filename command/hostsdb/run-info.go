// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/hostsdb/namingdb"
	"github.com/bitmark-inc/hostsdb/schema"
)

type listInfo struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Version int    `json:"version,omitempty"`
}

type infoReply struct {
	Name      string         `json:"name"`
	Path      string         `json:"path"`
	Version   int            `json:"version"`
	Codec     string         `json:"codec"`
	ReadOnly  bool           `json:"readOnly"`
	Created   time.Time      `json:"created"`
	Upgraded  *time.Time     `json:"upgraded,omitempty"`
	Lists     []listInfo     `json:"lists"`
	Converted []string       `json:"converted,omitempty"`
	Stats     namingdb.Stats `json:"stats"`
}

func runInfo(c *cli.Context) error {

	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	h := m.db.Header()
	info := infoReply{
		Name:     m.db.Name(),
		Path:     m.db.Path(),
		Version:  h.Version,
		Codec:    m.db.Codec().String(),
		ReadOnly: m.db.IsReadOnly(),
		Created:  h.Created,
		Lists:    make([]listInfo, 0, len(h.Lists)),
		Stats:    m.db.Stats(),
	}
	if !h.Upgraded.IsZero() {
		info.Upgraded = &h.Upgraded
	}
	for _, list := range h.Lists {
		info.Lists = append(info.Lists, listInfo{
			Name:    list,
			Size:    m.db.Size(namingdb.Options{namingdb.OptionList: list}),
			Version: h.ListVersions[list],
		})
	}

	// lists already converted by an interrupted upgrade
	if h.Version < schema.CurrentVersion {
		info.Converted = h.ListVersionKeys()
	}

	return m.printJSON(info)
}
