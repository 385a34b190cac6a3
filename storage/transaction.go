// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/hostsdb/fault"
)

// Transaction - a set of writes applied atomically on Commit
type Transaction struct {
	store *Store
	batch *leveldb.Batch
}

// NewTransaction - start an empty transaction
func (s *Store) NewTransaction() *Transaction {
	return &Transaction{
		store: s,
		batch: new(leveldb.Batch),
	}
}

// Put - queue a store of a key/value pair
func (t *Transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.batch.Put(p.prefixKey(key), value)
}

// Delete - queue a removal of a key
func (t *Transaction) Delete(p *PoolHandle, key []byte) {
	t.batch.Delete(p.prefixKey(key))
}

// Len - number of queued operations
func (t *Transaction) Len() int {
	return t.batch.Len()
}

// Commit - write all queued operations
func (t *Transaction) Commit() error {
	db := t.store.database()
	if nil == db {
		return fault.ErrDatabaseClosed
	}
	if t.store.readOnly {
		return fault.ErrReadOnly
	}
	err := db.Write(t.batch, nil)
	t.batch.Reset()
	return err
}

// Abort - discard all queued operations
func (t *Transaction) Abort() {
	t.batch.Reset()
}
