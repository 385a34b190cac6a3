// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/hostsdb/record"
	"github.com/bitmark-inc/hostsdb/reverse"
	"github.com/bitmark-inc/hostsdb/storage"
	"github.com/bitmark-inc/logger"
)

// Manager - brings an existing database up to the current version
type Manager struct {
	log    *logger.L
	store  *storage.Store
	index  *reverse.Index
	header *Header
	defer4 bool
	now    func() time.Time

	// re-encode one legacy record in the current layout
	convert func(list string, e *record.Entry) ([]byte, error)
}

// NewManager - create a manager for an opened database
//
// deferUpgrade leaves a version 3 database unconverted, the
// conversion is also skipped on android
func NewManager(store *storage.Store, header *Header, deferUpgrade bool) *Manager {
	return &Manager{
		log:     logger.New("schema"),
		store:   store,
		index:   reverse.New(store),
		header:  header,
		defer4:  deferUpgrade || "android" == runtime.GOOS,
		now:     time.Now,
		convert: convertRecord,
	}
}

func convertRecord(list string, e *record.Entry) ([]byte, error) {
	return record.Current.Pack(e)
}

// Header - the current header
func (m *Manager) Header() *Header {
	return m.header
}

// NeedsUpgrade - true if the database is old and writable
func (m *Manager) NeedsUpgrade() bool {
	if m.header.Version >= CurrentVersion {
		return false
	}
	if m.store.ReadOnly() {
		m.log.Warnf("not upgrading read-only database version %d", m.header.Version)
		return false
	}
	return true
}

// Upgrade - run every pending migration step
//
// a failed step is logged and leaves the database at the last version
// reached; the codec for that version is returned
func (m *Manager) Upgrade() record.Codec {
	if !m.NeedsUpgrade() {
		return m.header.Codec()
	}

	m.log.Warnf("upgrading database from version %d to %d  created: %s  lists: %v",
		m.header.Version, CurrentVersion, m.header.Created, m.header.Lists)

	steps := []struct {
		to int
		fn func() (bool, error)
	}{
		{2, m.createReverse},
		{3, m.rebuildReverse},
		{4, m.reformatLists},
	}

	for _, step := range steps {
		if m.header.Version >= step.to {
			continue
		}
		done, err := step.fn()
		if nil != err {
			m.log.Errorf("upgrade to version %d error: %s", step.to, err)
			break
		}
		if !done {
			break
		}
		if err := m.setVersion(step.to); nil != err {
			m.log.Errorf("set version %d error: %s", step.to, err)
			break
		}
	}
	return m.header.Codec()
}

func (m *Manager) setVersion(version int) error {
	previous := m.header.Version
	m.header.Version = version
	m.header.Upgraded = m.now()
	if err := WriteHeader(m.store, m.header); nil != err {
		m.header.Version = previous
		return err
	}
	m.log.Warnf("upgraded database from version %d to version %d", previous, version)
	return nil
}

// version 1 -> 2
func (m *Manager) createReverse() (bool, error) {
	if !m.index.Exists() {
		if err := m.index.Create(); nil != err {
			return false, err
		}
		m.log.Warn("created reverse index")
	}
	return true, nil
}

// version 2 -> 3
//
// the version 2 index was not kept up to date so start again
func (m *Manager) rebuildReverse() (bool, error) {
	if err := m.index.Clear(); nil != err {
		return false, err
	}

	n := 0
	for _, list := range m.lists() {
		p := m.store.Pool(list)
		if nil == p {
			continue
		}
		err := p.NewFetchCursor().Map(func(key []byte, value []byte) error {
			e, err := record.Legacy.Unpack(value)
			if nil != err {
				m.log.Warnf("list: %s  skip unreadable record: %q  error: %s", list, key, err)
				return nil
			}
			for _, d := range e.Destinations() {
				if err := m.index.Add(string(key), d); nil != err {
					return err
				}
				n += 1
			}
			return nil
		})
		if nil != err {
			return false, err
		}
	}
	m.log.Warnf("updated reverse index with %d entries", n)
	return true, nil
}

// version 3 -> 4
//
// each list is rewritten together with its progress marker in a
// single transaction so an interrupted run resumes with the lists
// not yet done; an upgrade already begun is never deferred
func (m *Manager) reformatLists() (bool, error) {
	if m.defer4 {
		if !m.started() {
			m.log.Warnf("deferring upgrade to version %d", CurrentVersion)
			return false, nil
		}
		m.log.Warnf("completing partial upgrade to version %d", CurrentVersion)
	}

	complete := true
	for _, list := range m.lists() {
		if v, ok := m.header.ListVersions[list]; ok && v >= CurrentVersion {
			m.log.Warnf("partial upgrade, list: %s already at version %d", list, v)
			continue
		}
		m.log.Warnf("upgrading list: %s from version 3 to %d", list, CurrentVersion)
		if err := m.reformatList(list); nil != err {
			m.log.Errorf("upgrade of list: %s to version %d error: %s", list, CurrentVersion, err)
			complete = false
		}
	}
	return complete, nil
}

// true if some list already has the current layout
func (m *Manager) started() bool {
	for _, v := range m.header.ListVersions {
		if v >= CurrentVersion {
			return true
		}
	}
	return false
}

// the header lists followed by any other list holding records
func (m *Manager) lists() []string {
	lists := append([]string{}, m.header.Lists...)
	seen := make(map[string]struct{}, len(lists))
	for _, list := range lists {
		seen[list] = struct{}{}
	}
	for _, name := range m.store.Pools() {
		if _, ok := seen[name]; ok || InfoPool == name || reverse.PoolName == name {
			continue
		}
		lists = append(lists, name)
	}
	return lists
}

func (m *Manager) reformatList(list string) error {
	trx := m.store.NewTransaction()

	if p := m.store.Pool(list); nil != p {
		err := p.NewFetchCursor().Map(func(key []byte, value []byte) error {
			e, err := record.Legacy.Unpack(value)
			if nil != err {
				m.log.Errorf("list: %s  drop unreadable record: %q  error: %s", list, key, err)
				trx.Delete(p, key)
				return nil
			}
			packed, err := m.convert(list, e)
			if nil != err {
				return err
			}
			trx.Put(p, key, packed)
			return nil
		})
		if nil != err {
			trx.Abort()
			return err
		}
	}

	m.header.ListVersions[list] = CurrentVersion
	if err := writeHeaderTo(trx, m.store, m.header); nil != err {
		delete(m.header.ListVersions, list)
		trx.Abort()
		return err
	}
	if err := trx.Commit(); nil != err {
		delete(m.header.ListVersions, list)
		return err
	}
	return nil
}
