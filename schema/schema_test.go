// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/fault"
	"github.com/bitmark-inc/hostsdb/record"
	"github.com/bitmark-inc/hostsdb/reverse"
	"github.com/bitmark-inc/hostsdb/schema"
	"github.com/bitmark-inc/hostsdb/storage"
	"github.com/bitmark-inc/logger"
)

const (
	databaseFileName = "test.leveldb"
	logDirectory     = "testing"
)

var testLists = []string{"hosts.txt", "privatehosts.txt"}

func removeFiles() {
	os.RemoveAll(databaseFileName)
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

// fixture: an old database with legacy records and no reverse index
type fixture struct {
	store   *storage.Store
	forward map[string]map[string]*destination.Destination
}

func makeFixture(t *testing.T, version int, count int) *fixture {
	removeFiles()
	s, err := storage.Create(databaseFileName)
	if nil != err {
		t.Fatalf("storage create error: %s", err)
	}

	h := schema.NewHeader(testLists, time.Now())
	h.Version = version
	if err := schema.WriteHeader(s, h); nil != err {
		t.Fatalf("write header error: %s", err)
	}

	f := &fixture{
		store:   s,
		forward: make(map[string]map[string]*destination.Destination),
	}
	for _, list := range testLists {
		p, err := s.MakePool(list)
		if nil != err {
			t.Fatalf("make pool error: %s", err)
		}
		f.forward[list] = make(map[string]*destination.Destination)
		for i := 0; i < count; i += 1 {
			d, err := destination.Generate(destination.SigningDSASHA1)
			if nil != err {
				t.Fatalf("generate error: %s", err)
			}
			name := fmt.Sprintf("host%02d.%s.i2p", i, list)
			packed, err := record.Legacy.Pack(record.New(d, record.Attributes{record.KeyAdded: "1"}))
			if nil != err {
				t.Fatalf("pack error: %s", err)
			}
			if err := p.Put([]byte(name), packed); nil != err {
				t.Fatalf("put error: %s", err)
			}
			f.forward[list][name] = d
		}
	}
	return f
}

func (f *fixture) close() {
	f.store.Close()
	removeFiles()
}

func (f *fixture) resolve(name string) []*destination.Destination {
	for _, names := range f.forward {
		if d, ok := names[name]; ok {
			return []*destination.Destination{d}
		}
	}
	return nil
}

// add a legacy list that is not named in the header
func (f *fixture) addList(t *testing.T, list string, count int) {
	p, err := f.store.MakePool(list)
	if nil != err {
		t.Fatalf("make pool error: %s", err)
	}
	f.forward[list] = make(map[string]*destination.Destination)
	for i := 0; i < count; i += 1 {
		d, err := destination.Generate(destination.SigningDSASHA1)
		if nil != err {
			t.Fatalf("generate error: %s", err)
		}
		name := fmt.Sprintf("extra%02d.i2p", i)
		packed, err := record.Legacy.Pack(record.New(d, record.Attributes{record.KeyAdded: "1"}))
		if nil != err {
			t.Fatalf("pack error: %s", err)
		}
		if err := p.Put([]byte(name), packed); nil != err {
			t.Fatalf("put error: %s", err)
		}
		f.forward[list][name] = d
	}
}

// the reverse index as it is expected at version 3
func (f *fixture) index(t *testing.T) {
	x := reverse.New(f.store)
	assert.Nil(t, x.Create(), "create index error")
	for _, names := range f.forward {
		for name, d := range names {
			assert.Nil(t, x.Add(name, d), "add error")
		}
	}
}

// rewrite one list in the current layout and set its marker
func (f *fixture) convert(t *testing.T, list string) {
	p := f.store.Pool(list)
	for name, d := range f.forward[list] {
		packed, err := record.Current.Pack(record.New(d, record.Attributes{record.KeyAdded: "1"}))
		assert.Nil(t, err, "pack error")
		assert.Nil(t, p.Put([]byte(name), packed), "put error")
	}
	h := mustReadHeader(t, f.store)
	h.ListVersions[list] = schema.CurrentVersion
	assert.Nil(t, schema.WriteHeader(f.store, h), "write header error")
}

// every forward record decodes with the codec and every pair verifies
// through the reverse index
func (f *fixture) check(t *testing.T, codec record.Codec) {
	f.verify(t, func(string) record.Codec {
		return codec
	})
}

// as check but with the codec the header selects for each list
func (f *fixture) checkLists(t *testing.T, h *schema.Header) {
	f.verify(t, h.CodecFor)
}

func (f *fixture) verify(t *testing.T, codecFor func(list string) record.Codec) {
	x := reverse.New(f.store)
	for list, names := range f.forward {
		p := f.store.Pool(list)
		codec := codecFor(list)
		for name, d := range names {
			value, err := p.Get([]byte(name))
			assert.Nil(t, err, "get error")
			e, err := codec.Unpack(value)
			if !assert.Nil(t, err, "%s: unpack error", name) {
				continue
			}
			assert.True(t, d.Equal(e.Primary().Destination), "%s: destination changed", name)
			assert.Equal(t, "1", e.Primary().Attributes[record.KeyAdded], "%s: attributes lost", name)

			found, err := x.Lookup(d.Hash(), f.resolve)
			assert.Nil(t, err, "reverse lookup error")
			assert.Contains(t, found, name, "reverse index missing %s", name)
		}
	}
}

func TestInitialise(t *testing.T) {
	removeFiles()
	s, err := storage.Create(databaseFileName)
	assert.Nil(t, err, "create error")
	defer func() {
		s.Close()
		removeFiles()
	}()

	now := time.Unix(1500000000, 123000000)
	h, err := schema.Initialise(s, testLists, now)
	assert.Nil(t, err, "initialise error")
	assert.Equal(t, schema.CurrentVersion, h.Version, "wrong version")
	assert.True(t, reverse.New(s).Exists(), "no reverse index")

	h2, err := schema.ReadHeader(s)
	assert.Nil(t, err, "read header error")
	assert.Equal(t, schema.CurrentVersion, h2.Version, "wrong version")
	assert.Equal(t, testLists, h2.Lists, "wrong lists")
	assert.True(t, now.Equal(h2.Created), "wrong created time: %s", h2.Created)
	assert.True(t, h2.Upgraded.IsZero(), "upgraded time set")
	assert.Equal(t, record.Current, h2.Codec(), "wrong codec")
}

func TestReadHeaderErrors(t *testing.T) {
	removeFiles()
	s, err := storage.Create(databaseFileName)
	assert.Nil(t, err, "create error")
	defer func() {
		s.Close()
		removeFiles()
	}()

	_, err = schema.ReadHeader(s)
	assert.Equal(t, fault.ErrNoHeader, err, "missing pool")

	p, _ := s.MakePool(schema.InfoPool)
	_, err = schema.ReadHeader(s)
	assert.Equal(t, fault.ErrNoHeaderInfo, err, "missing info")

	put := func(a record.Attributes) {
		b, err := record.EncodeProperties(a)
		assert.Nil(t, err, "encode error")
		assert.Nil(t, p.Put([]byte("info"), b), "put error")
	}

	put(record.Attributes{"version": "4"})
	_, err = schema.ReadHeader(s)
	assert.Equal(t, fault.ErrNoLists, err, "missing lists")

	put(record.Attributes{"lists": "hosts.txt"})
	_, err = schema.ReadHeader(s)
	assert.Equal(t, fault.ErrNoVersion, err, "missing version")

	put(record.Attributes{"lists": "hosts.txt", "version": "5"})
	_, err = schema.ReadHeader(s)
	assert.Equal(t, fault.ErrDatabaseVersionTooNew, err, "future version")

	put(record.Attributes{"lists": ",hosts.txt,,extra.txt", "version": "2", "custom": "kept"})
	h, err := schema.ReadHeader(s)
	assert.Nil(t, err, "read error")
	assert.Equal(t, []string{"hosts.txt", "extra.txt"}, h.Lists, "empty list names kept")
	assert.Equal(t, record.Legacy, h.Codec(), "wrong codec")

	// unknown properties survive a rewrite
	assert.Nil(t, schema.WriteHeader(s, h), "write error")
	value, _ := p.Get([]byte("info"))
	a, _ := record.DecodeProperties(value)
	assert.Equal(t, "kept", a["custom"], "unknown property lost")
}

func TestUpgradeFromVersion1(t *testing.T) {
	f := makeFixture(t, 1, 20)
	defer f.close()

	m := schema.NewManager(f.store, mustReadHeader(t, f.store), false)
	assert.True(t, m.NeedsUpgrade(), "upgrade not needed")

	codec := m.Upgrade()
	assert.Equal(t, record.Current, codec, "wrong codec")

	h := mustReadHeader(t, f.store)
	assert.Equal(t, schema.CurrentVersion, h.Version, "wrong stored version")
	assert.False(t, h.Upgraded.IsZero(), "upgrade time not set")
	for _, list := range testLists {
		assert.Equal(t, schema.CurrentVersion, h.ListVersions[list], "%s: marker not set", list)
	}
	assert.Equal(t, []string{"hosts.txt", "privatehosts.txt"}, h.ListVersionKeys(), "wrong markers")

	f.check(t, record.Current)
}

func TestResumePartialUpgrade(t *testing.T) {
	f := makeFixture(t, 3, 5)
	defer f.close()

	// hosts.txt was converted by an earlier interrupted run
	f.convert(t, "hosts.txt")
	f.index(t)

	codec := schema.NewManager(f.store, mustReadHeader(t, f.store), false).Upgrade()
	assert.Equal(t, record.Current, codec, "wrong codec")
	assert.Equal(t, schema.CurrentVersion, mustReadHeader(t, f.store).Version, "wrong version")

	// would fail if hosts.txt had been converted twice
	f.check(t, record.Current)
}

func TestDeferredUpgrade(t *testing.T) {
	f := makeFixture(t, 1, 3)
	defer f.close()

	codec := schema.NewManager(f.store, mustReadHeader(t, f.store), true).Upgrade()
	assert.Equal(t, record.Legacy, codec, "wrong codec")

	h := mustReadHeader(t, f.store)
	assert.Equal(t, 3, h.Version, "wrong version")
	assert.Empty(t, h.ListVersions, "list markers set")

	f.check(t, record.Legacy)

	// a later open completes the upgrade
	codec = schema.NewManager(f.store, h, false).Upgrade()
	assert.Equal(t, record.Current, codec, "wrong codec")
	f.check(t, record.Current)
}

func TestPartialUpgradeNotDeferred(t *testing.T) {
	f := makeFixture(t, 3, 5)
	defer f.close()

	f.convert(t, "hosts.txt")
	f.index(t)

	h := mustReadHeader(t, f.store)
	assert.Equal(t, record.Current, h.CodecFor("hosts.txt"), "converted list codec")
	assert.Equal(t, record.Legacy, h.CodecFor("privatehosts.txt"), "unconverted list codec")
	f.checkLists(t, h)

	// deferral does not apply once a list has been converted
	codec := schema.NewManager(f.store, h, true).Upgrade()
	assert.Equal(t, record.Current, codec, "wrong codec")
	assert.Equal(t, schema.CurrentVersion, mustReadHeader(t, f.store).Version, "wrong version")

	f.check(t, record.Current)
}

func TestFailedListUpgrade(t *testing.T) {
	f := makeFixture(t, 3, 5)
	defer f.close()
	f.index(t)

	m := schema.NewManager(f.store, mustReadHeader(t, f.store), false)
	schema.FailConversion(m, "privatehosts.txt")

	codec := m.Upgrade()
	assert.Equal(t, record.Legacy, codec, "wrong codec")

	h := mustReadHeader(t, f.store)
	assert.Equal(t, 3, h.Version, "version advanced")
	assert.Equal(t, schema.CurrentVersion, h.ListVersions["hosts.txt"], "converted list marker")
	_, ok := h.ListVersions["privatehosts.txt"]
	assert.False(t, ok, "failed list marker set")

	// both lists stay readable with their own layout
	assert.Equal(t, record.Current, h.CodecFor("hosts.txt"), "converted list codec")
	assert.Equal(t, record.Legacy, h.CodecFor("privatehosts.txt"), "failed list codec")
	f.checkLists(t, h)

	// the next open finishes the remaining list
	codec = schema.NewManager(f.store, h, false).Upgrade()
	assert.Equal(t, record.Current, codec, "wrong codec")
	assert.Equal(t, schema.CurrentVersion, mustReadHeader(t, f.store).Version, "wrong version")
	f.check(t, record.Current)
}

func TestUnlistedListUpgraded(t *testing.T) {
	f := makeFixture(t, 1, 3)
	defer f.close()
	f.addList(t, "extra.txt", 3)

	codec := schema.NewManager(f.store, mustReadHeader(t, f.store), false).Upgrade()
	assert.Equal(t, record.Current, codec, "wrong codec")

	h := mustReadHeader(t, f.store)
	assert.Equal(t, schema.CurrentVersion, h.ListVersions["extra.txt"], "extra list marker")
	assert.Equal(t, testLists, h.Lists, "header lists changed")

	f.check(t, record.Current)
}

func TestReadOnlyNotUpgraded(t *testing.T) {
	f := makeFixture(t, 1, 3)
	f.store.Close()

	s, err := storage.Open(databaseFileName, storage.ReadOnly)
	assert.Nil(t, err, "open error")
	f.store = s
	defer f.close()

	m := schema.NewManager(s, mustReadHeader(t, s), false)
	assert.False(t, m.NeedsUpgrade(), "read-only upgrade requested")
	assert.Equal(t, record.Legacy, m.Upgrade(), "wrong codec")
	assert.Equal(t, 1, mustReadHeader(t, s).Version, "version changed")
	assert.False(t, reverse.New(s).Exists(), "reverse index created")
}

func TestUnreadableRecordDropped(t *testing.T) {
	f := makeFixture(t, 3, 2)
	defer f.close()

	p := f.store.Pool("hosts.txt")
	assert.Nil(t, p.Put([]byte("broken.i2p"), []byte{0, 0, 1, 2, 3}), "put error")

	codec := schema.NewManager(f.store, mustReadHeader(t, f.store), false).Upgrade()
	assert.Equal(t, record.Current, codec, "wrong codec")

	found, err := p.Has([]byte("broken.i2p"))
	assert.Nil(t, err, "has error")
	assert.False(t, found, "unreadable record kept")
}

func TestCurrentNotUpgraded(t *testing.T) {
	removeFiles()
	s, err := storage.Create(databaseFileName)
	assert.Nil(t, err, "create error")
	defer func() {
		s.Close()
		removeFiles()
	}()

	h, err := schema.Initialise(s, testLists, time.Now())
	assert.Nil(t, err, "initialise error")

	m := schema.NewManager(s, h, false)
	assert.False(t, m.NeedsUpgrade(), "current version upgrade requested")
	assert.Equal(t, record.Current, m.Upgrade(), "wrong codec")
	assert.True(t, mustReadHeader(t, s).Upgraded.IsZero(), "upgrade time set")
}

func mustReadHeader(t *testing.T, s *storage.Store) *schema.Header {
	h, err := schema.ReadHeader(s)
	if nil != err {
		t.Fatalf("read header error: %s", err)
	}
	return h
}
