// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package reverse_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/reverse"
	"github.com/bitmark-inc/hostsdb/storage"
	"github.com/bitmark-inc/logger"
)

const (
	databaseFileName = "test.leveldb"
	logDirectory     = "testing"
)

func removeFiles() {
	os.RemoveAll(databaseFileName)
}

func setup(t *testing.T) *storage.Store {
	removeFiles()
	s, err := storage.Create(databaseFileName)
	if nil != err {
		t.Fatalf("storage create error: %s", err)
	}
	return s
}

func teardown(s *storage.Store) {
	s.Close()
	removeFiles()
}

func TestMain(m *testing.M) {
	_ = os.Mkdir(logDirectory, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
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

func makeDestination(t *testing.T) *destination.Destination {
	d, err := destination.Generate(destination.SigningEdDSASHA512Ed25519)
	if nil != err {
		t.Fatalf("generate error: %s", err)
	}
	return d
}

// forward data used to verify candidates
type forward map[string][]*destination.Destination

func (f forward) resolve(name string) []*destination.Destination {
	return f[name]
}

func TestKey(t *testing.T) {
	h := destination.Hash{0x80, 0, 0, 1}
	assert.Equal(t, int32(-2147483647), reverse.Key(h), "wrong negative key")

	h = destination.Hash{0x01, 0x02, 0x03, 0x04, 0xff}
	assert.Equal(t, int32(0x01020304), reverse.Key(h), "wrong positive key")
}

func TestAddLookupRemove(t *testing.T) {
	s := setup(t)
	defer teardown(s)

	x := reverse.New(s)
	assert.False(t, x.Exists(), "index exists before create")
	assert.Nil(t, x.Create(), "create error")
	assert.True(t, x.Exists(), "index missing after create")

	d1 := makeDestination(t)
	d2 := makeDestination(t)
	f := forward{
		"one.i2p":   {d1},
		"two.i2p":   {d2, d1},
		"stale.i2p": {d2},
	}

	assert.Nil(t, x.Add("one.i2p", d1), "add error")
	assert.Nil(t, x.Add("two.i2p", d1), "add error")
	assert.Nil(t, x.Add("two.i2p", d1), "repeated add error")
	assert.Nil(t, x.Add("two.i2p", d2), "add error")
	assert.Nil(t, x.Add("stale.i2p", d1), "add error")

	candidates, err := x.Candidates(d1.Hash())
	assert.Nil(t, err, "candidates error")
	assert.ElementsMatch(t, []string{"one.i2p", "stale.i2p", "two.i2p"}, candidates, "wrong candidates")

	names, err := x.Lookup(d1.Hash(), f.resolve)
	assert.Nil(t, err, "lookup error")
	assert.ElementsMatch(t, []string{"one.i2p", "two.i2p"}, names, "stale name not filtered")

	assert.Nil(t, x.Remove("one.i2p", d1), "remove error")
	assert.Nil(t, x.Remove("one.i2p", d1), "repeated remove error")
	assert.Nil(t, x.Remove("two.i2p", d1), "remove error")
	assert.Nil(t, x.Remove("stale.i2p", d1), "remove error")

	candidates, err = x.Candidates(d1.Hash())
	assert.Nil(t, err, "candidates error")
	assert.Empty(t, candidates, "entry not emptied")

	n, err := x.Size()
	assert.Nil(t, err, "size error")
	assert.Equal(t, 1, n, "empty entry not removed")
}

func TestMissingPool(t *testing.T) {
	s := setup(t)
	defer teardown(s)

	x := reverse.New(s)
	d := makeDestination(t)

	assert.Nil(t, x.Add("one.i2p", d), "add without pool")
	assert.Nil(t, x.Remove("one.i2p", d), "remove without pool")
	names, err := x.Lookup(d.Hash(), forward{}.resolve)
	assert.Nil(t, err, "lookup without pool")
	assert.Empty(t, names, "names without pool")
	assert.False(t, x.Exists(), "add created the pool")
}

func TestClear(t *testing.T) {
	s := setup(t)
	defer teardown(s)

	x := reverse.New(s)
	assert.Nil(t, x.Create(), "create error")
	d := makeDestination(t)
	assert.Nil(t, x.Add("one.i2p", d), "add error")

	assert.Nil(t, x.Clear(), "clear error")
	assert.True(t, x.Exists(), "clear dropped the index")
	n, err := x.Size()
	assert.Nil(t, err, "size error")
	assert.Equal(t, 0, n, "entries survived clear")
}
