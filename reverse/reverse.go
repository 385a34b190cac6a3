// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package reverse - index from destination hash to candidate names
//
// The index key is the first four bytes of the destination hash, so
// several unrelated names may share one entry and entries may be
// stale.  Lookup therefore checks each candidate against the forward
// data before returning it.
//
// A store without the reverse pool (an old database opened read
// only) makes every operation a no-op.
package reverse

import (
	"encoding/binary"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/record"
	"github.com/bitmark-inc/hostsdb/storage"
)

// PoolName - name of the storage pool holding the index
const PoolName = "%%__REVERSE__%%"

// Resolver - fetch all current destinations for a name
type Resolver func(name string) []*destination.Destination

// Index - the reverse index
//
// not safe for concurrent use; callers serialise access
type Index struct {
	store *storage.Store
}

// New - index over a store
func New(store *storage.Store) *Index {
	return &Index{
		store: store,
	}
}

// Key - signed index key for a hash
func Key(h destination.Hash) int32 {
	return int32(binary.BigEndian.Uint32(h[:4]))
}

// encode a key so that byte order matches signed integer order
func keyBytes(k int32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(k)^0x80000000)
	return b
}

// Exists - true if the store holds an index
func (x *Index) Exists() bool {
	return nil != x.store.Pool(PoolName)
}

// Create - make an empty index if none exists
func (x *Index) Create() error {
	_, err := x.store.MakePool(PoolName)
	return err
}

// Clear - discard all entries
func (x *Index) Clear() error {
	if x.Exists() {
		if err := x.store.DropPool(PoolName); nil != err {
			return err
		}
	}
	return x.Create()
}

// Size - number of distinct keys
func (x *Index) Size() (int, error) {
	p := x.store.Pool(PoolName)
	if nil == p {
		return 0, nil
	}
	return p.Size()
}

// Add - record that a name may resolve to a destination
func (x *Index) Add(name string, d *destination.Destination) error {
	p := x.store.Pool(PoolName)
	if nil == p {
		return nil
	}
	key := keyBytes(Key(d.Hash()))
	names, err := read(p, key)
	if nil != err {
		return err
	}
	if _, ok := names[name]; ok {
		return nil
	}
	names[name] = ""
	return write(p, key, names)
}

// Remove - drop a name from the entry for a destination
func (x *Index) Remove(name string, d *destination.Destination) error {
	p := x.store.Pool(PoolName)
	if nil == p {
		return nil
	}
	key := keyBytes(Key(d.Hash()))
	names, err := read(p, key)
	if nil != err {
		return err
	}
	if _, ok := names[name]; !ok {
		return nil
	}
	delete(names, name)
	if 0 == len(names) {
		_, err := p.Remove(key)
		return err
	}
	return write(p, key, names)
}

// Candidates - unverified names sharing the key of a hash
func (x *Index) Candidates(h destination.Hash) ([]string, error) {
	p := x.store.Pool(PoolName)
	if nil == p {
		return nil, nil
	}
	names, err := read(p, keyBytes(Key(h)))
	if nil != err {
		return nil, err
	}
	return names.Keys(), nil
}

// Lookup - names whose current destinations include the hash
//
// the order of the result is not significant
func (x *Index) Lookup(h destination.Hash, resolve Resolver) ([]string, error) {
	candidates, err := x.Candidates(h)
	if nil != err {
		return nil, err
	}

	confirmed := make([]string, 0, len(candidates))
candidates:
	for _, name := range candidates {
		for _, d := range resolve(name) {
			if d.Hash() == h {
				confirmed = append(confirmed, name)
				continue candidates
			}
		}
	}
	return confirmed, nil
}

// a damaged entry reads as empty so that it is replaced on the next write
func read(p *storage.PoolHandle, key []byte) (record.Attributes, error) {
	value, err := p.Get(key)
	if nil != err {
		return nil, err
	}
	if nil == value {
		return record.Attributes{}, nil
	}
	names, err := record.DecodeProperties(value)
	if nil != err {
		return record.Attributes{}, nil
	}
	return names, nil
}

func write(p *storage.PoolHandle, key []byte, names record.Attributes) error {
	value, err := record.EncodeProperties(names)
	if nil != err {
		return err
	}
	return p.Put(key, value)
}
