// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"bytes"
	"sort"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/hostsdb/fault"
	"github.com/bitmark-inc/logger"
)

// key prefixes
const (
	catalogPrefix = 'C'
	poolPrefix    = 'P'
	separator     = 0x00
)

var mountedKey = []byte{0x00, 'm', 'o', 'u', 'n', 't', 'e', 'd'}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Store - handle to one on-disk database
type Store struct {
	sync.RWMutex
	log      *logger.L
	db       *leveldb.DB
	readOnly bool
	mounted  bool
	pools    map[string]*PoolHandle
}

// Open - open an existing database
//
// fails if the database does not exist
func Open(path string, readOnly bool) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: true,
		ReadOnly:       readOnly,
	}
	return open(path, opt)
}

// Create - create a new empty database
//
// fails if the database already exists
func Create(path string) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   true,
		ErrorIfMissing: false,
		ReadOnly:       false,
	}
	return open(path, opt)
}

func open(path string, opt *ldb_opt.Options) (*Store, error) {
	db, err := leveldb.OpenFile(path, opt)
	if nil != err {
		return nil, err
	}

	s := &Store{
		log:      logger.New("storage"),
		db:       db,
		readOnly: opt.ReadOnly,
		pools:    make(map[string]*PoolHandle),
	}

	mounted, err := db.Has(mountedKey, nil)
	if nil != err {
		db.Close()
		return nil, err
	}
	s.mounted = mounted

	if err := s.loadCatalog(); nil != err {
		db.Close()
		return nil, err
	}

	if !s.readOnly {
		if err := db.Put(mountedKey, []byte{}, nil); nil != err {
			db.Close()
			return nil, err
		}
	}

	s.log.Debugf("opened: %q  read only: %t  pools: %d", path, s.readOnly, len(s.pools))
	return s, nil
}

// read the names of all existing pools
func (s *Store) loadCatalog() error {
	catalogRange := ldb_util.Range{
		Start: []byte{catalogPrefix},
		Limit: []byte{catalogPrefix + 1},
	}
	iter := s.db.NewIterator(&catalogRange, nil)
	for iter.Next() {
		name := string(iter.Key()[1:])
		s.pools[name] = newPoolHandle(s, name)
	}
	iter.Release()
	return iter.Error()
}

// Close - close the database, clearing the open marker
func (s *Store) Close() error {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return nil
	}
	if !s.readOnly {
		if err := s.db.Delete(mountedKey, nil); nil != err {
			s.log.Warnf("clear mounted marker error: %s", err)
		}
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// ReadOnly - true if opened without write access
func (s *Store) ReadOnly() bool {
	return s.readOnly
}

// WasMounted - true if the open marker was present when opened
func (s *Store) WasMounted() bool {
	return s.mounted
}

// Pool - get an existing pool, nil if absent
func (s *Store) Pool(name string) *PoolHandle {
	s.RLock()
	defer s.RUnlock()
	return s.pools[name]
}

// MakePool - get a pool, creating it if absent
func (s *Store) MakePool(name string) (*PoolHandle, error) {
	if "" == name || bytes.IndexByte([]byte(name), separator) >= 0 {
		return nil, fault.ErrInvalidPoolName
	}

	s.Lock()
	defer s.Unlock()

	if p, ok := s.pools[name]; ok {
		return p, nil
	}
	if nil == s.db {
		return nil, fault.ErrDatabaseClosed
	}
	if s.readOnly {
		return nil, fault.ErrReadOnly
	}

	err := s.db.Put(catalogKey(name), []byte{}, nil)
	if nil != err {
		return nil, err
	}
	p := newPoolHandle(s, name)
	s.pools[name] = p
	return p, nil
}

// DropPool - remove a pool and all of its elements
func (s *Store) DropPool(name string) error {
	s.Lock()
	defer s.Unlock()

	p, ok := s.pools[name]
	if !ok {
		return fault.ErrPoolNotFound
	}
	if nil == s.db {
		return fault.ErrDatabaseClosed
	}
	if s.readOnly {
		return fault.ErrReadOnly
	}

	batch := new(leveldb.Batch)
	iter := s.db.NewIterator(p.maxRange(), nil)
	for iter.Next() {
		batch.Delete(append([]byte{}, iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); nil != err {
		return err
	}
	batch.Delete(catalogKey(name))

	if err := s.db.Write(batch, nil); nil != err {
		return err
	}
	delete(s.pools, name)
	return nil
}

// Pools - names of all pools in sorted order
func (s *Store) Pools() []string {
	s.RLock()
	defer s.RUnlock()

	names := make([]string, 0, len(s.pools))
	for name := range s.pools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// get the database, nil if closed
func (s *Store) database() *leveldb.DB {
	s.RLock()
	defer s.RUnlock()
	return s.db
}

func catalogKey(name string) []byte {
	key := make([]byte, 1, len(name)+1)
	key[0] = catalogPrefix
	return append(key, name...)
}
