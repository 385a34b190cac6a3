// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namingdb_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/namingdb"
	"github.com/bitmark-inc/logger"
)

const (
	databaseDirectory = "testing.db"
	logDirectory      = "testing"
)

func removeFiles() {
	os.RemoveAll(databaseDirectory)
}

func configuration() *namingdb.Configuration {
	return &namingdb.Configuration{
		Directory: databaseDirectory,
	}
}

// open a new empty database
func setup(t *testing.T) *namingdb.DB {
	removeFiles()
	return open(t, configuration())
}

func open(t *testing.T, cfg *namingdb.Configuration) *namingdb.DB {
	db, err := namingdb.Open(cfg)
	if nil != err {
		t.Fatalf("open error: %s", err)
	}
	return db
}

func teardown(db *namingdb.DB) {
	db.Close()
	removeFiles()
}

func generate(t *testing.T, signingType destination.SigningType) *destination.Destination {
	d, err := destination.Generate(signingType)
	if nil != err {
		t.Fatalf("generate error: %s", err)
	}
	return d
}

func TestMain(m *testing.M) {
	_ = os.Mkdir(logDirectory, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	rc := m.Run()
	logger.Finalise()
	os.RemoveAll(logDirectory)
	removeFiles()
	os.Exit(rc)
}
