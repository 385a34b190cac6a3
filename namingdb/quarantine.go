// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namingdb

import (
	"github.com/bitmark-inc/hostsdb/fault"
	"github.com/bitmark-inc/hostsdb/record"
)

// a record to be deleted when the current operation ends
type invalidEntry struct {
	name   string
	list   string
	reason error
}

// decode and check a stored value, lock must be held
//
// a bad record is queued for deletion and nil returned
func (db *DB) decode(name string, list string, value []byte) *record.Entry {
	codec := db.codecFor(list)
	e, err := codec.Unpack(value)
	if nil != err {
		db.quarantine(name, list, err)
		return nil
	}
	if nil != e.AttributeError {
		db.log.Warnf("list: %s  name: %q  attributes discarded: %s", list, name, e.AttributeError)
	}
	if err := validate(name, codec, e); nil != err {
		db.quarantine(name, list, err)
		return nil
	}
	return e
}

// the primary destination must have a usable public key; with the
// multiple destination layout no pair may be missing its destination
func validate(name string, codec record.Codec, e *record.Entry) error {
	if "" == name {
		return fault.ErrInvalidName
	}
	if nil == e || 0 == len(e.Pairs) {
		return fault.ErrMissingDestination
	}
	primary := e.Primary().Destination
	if nil == primary || nil == primary.PublicKey() {
		return fault.ErrMissingDestination
	}
	if record.Current == codec {
		for _, p := range e.Pairs[1:] {
			if nil == p.Destination {
				return fault.ErrMissingDestination
			}
		}
	}
	return nil
}

// queue a record for deletion, lock must be held
func (db *DB) quarantine(name string, list string, reason error) {
	db.log.Warnf("list: %s  invalid record: %q  error: %s", list, name, reason)
	if db.readOnly {
		return
	}
	db.invalid = append(db.invalid, invalidEntry{
		name:   name,
		list:   list,
		reason: reason,
	})
}

// delete every queued record in the order found, lock must be held
// and no scan may be in progress
func (db *DB) deleteInvalid() {
	if 0 == len(db.invalid) {
		return
	}
	db.log.Errorf("removing %d corrupt entries from database", len(db.invalid))

	for _, ie := range db.invalid {
		p := db.store.Pool(ie.list)
		if nil == p {
			db.log.Errorf("no list found to remove corrupt: %q from: %s", ie.name, ie.list)
			continue
		}
		old, err := p.Remove([]byte(ie.name))
		if nil != err {
			db.log.Errorf("error while removing corrupt: %q from: %s  error: %s", ie.name, ie.list, err)
			continue
		}
		if nil == old {
			db.log.Errorf("may have failed to remove corrupt: %q from: %s", ie.name, ie.list)
			continue
		}
		db.log.Errorf("removed corrupt: %q from: %s  reason: %s", ie.name, ie.list, ie.reason)
		db.positive.remove(ie.name)
		db.stats.quarantined.Increment()
	}
	db.invalid = db.invalid[:0]
}
