// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/hostsdb/fault"
)

// PoolHandle - one named pool within a store
type PoolHandle struct {
	name   string
	prefix []byte
	limit  []byte
	store  *Store
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

func newPoolHandle(s *Store, name string) *PoolHandle {
	prefix := make([]byte, 0, len(name)+2)
	prefix = append(prefix, poolPrefix)
	prefix = append(prefix, name...)
	prefix = append(prefix, separator)

	limit := make([]byte, len(prefix))
	copy(limit, prefix)
	limit[len(limit)-1] = separator + 1

	return &PoolHandle{
		name:   name,
		prefix: prefix,
		limit:  limit,
		store:  s,
	}
}

// Name - the pool name
func (p *PoolHandle) Name() string {
	return p.name
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, len(p.prefix), len(p.prefix)+len(key))
	copy(prefixedKey, p.prefix)
	return append(prefixedKey, key...)
}

// the whole key range of the pool
func (p *PoolHandle) maxRange() *ldb_util.Range {
	return &ldb_util.Range{
		Start: p.prefix, // Start of key range, included in the range
		Limit: p.limit,  // Limit of key range, excluded from the range
	}
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) error {
	db := p.store.database()
	if nil == db {
		return fault.ErrDatabaseClosed
	}
	if p.store.readOnly {
		return fault.ErrReadOnly
	}
	return db.Put(p.prefixKey(key), value, nil)
}

// Remove - remove a key from the database
//
// returns the previous value, nil if the key was not present
func (p *PoolHandle) Remove(key []byte) ([]byte, error) {
	db := p.store.database()
	if nil == db {
		return nil, fault.ErrDatabaseClosed
	}
	if p.store.readOnly {
		return nil, fault.ErrReadOnly
	}
	prefixedKey := p.prefixKey(key)
	value, err := db.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	} else if nil != err {
		return nil, err
	}
	return value, db.Delete(prefixedKey, nil)
}

// Get - read a value for a given key
//
// returns nil without error if the key is not present
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	db := p.store.database()
	if nil == db {
		return nil, fault.ErrDatabaseClosed
	}
	value, err := db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	db := p.store.database()
	if nil == db {
		return false, fault.ErrDatabaseClosed
	}
	return db.Has(p.prefixKey(key), nil)
}

// Size - number of elements in the pool
func (p *PoolHandle) Size() (int, error) {
	db := p.store.database()
	if nil == db {
		return 0, fault.ErrDatabaseClosed
	}
	iter := db.NewIterator(p.maxRange(), nil)
	n := 0
	for iter.Next() {
		n += 1
	}
	iter.Release()
	return n, iter.Error()
}
