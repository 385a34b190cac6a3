// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namingdb

import (
	"strings"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/record"
)

// www. is only stripped from names longer than this ("www.i2p")
const wwwMinimumLength = 7

// what a lookup returns decides which shortcuts it may take
type lookupMode int

const (
	primaryOnly      lookupMode = iota // positive cache and base32 addresses
	allDestinations                    // base32 addresses
	storedAttributes                   // store only
)

// Lookup - primary destination for a name, nil if not found
//
// the "list" option restricts the search to one list
func (db *DB) Lookup(name string, options Options) *destination.Destination {
	e := db.lookupWithFallback(name, options, primaryOnly)
	return e.Primary().Destination
}

// LookupWithAttributes - primary destination and its stored attributes
func (db *DB) LookupWithAttributes(name string, options Options) (*destination.Destination, record.Attributes) {
	e := db.lookupWithFallback(name, options, storedAttributes)
	if nil == e {
		return nil, nil
	}
	p := e.Primary()
	return p.Destination, p.Attributes
}

// LookupAll - every destination for a name, preferred first
func (db *DB) LookupAll(name string, options Options) []*destination.Destination {
	e := db.lookupWithFallback(name, options, allDestinations)
	return e.Destinations()
}

// LookupAllWithAttributes - every destination with its attributes
func (db *DB) LookupAllWithAttributes(name string, options Options) ([]*destination.Destination, []record.Attributes) {
	e := db.lookupWithFallback(name, options, storedAttributes)
	return e.Destinations(), e.AttributeList()
}

// retry a miss on "www.name" as "name"
func (db *DB) lookupWithFallback(name string, options Options, mode lookupMode) *record.Entry {
	e := db.lookup(name, options, mode)
	if nil != e {
		return e
	}
	key := strings.ToLower(name)
	if strings.HasPrefix(key, "www.") && len(key) > wwwMinimumLength {
		stripped := key[4:]
		if !destination.IsBase32Address(stripped) {
			return db.lookup(stripped, options, mode)
		}
	}
	return nil
}

// a single lookup with no fallback
//
// a list option or a request for attributes always reads the store;
// the positive cache only holds the primary destination
func (db *DB) lookup(name string, options Options, mode lookupMode) *record.Entry {
	key := strings.ToLower(name)
	list := options.List()
	db.stats.lookups.Increment()

	if "" == list && storedAttributes != mode {
		if destination.IsBase32Address(key) {
			if d := db.resolveBase32(key); nil != d {
				return record.New(d, nil)
			}
			return nil
		}
		if primaryOnly == mode {
			if d := db.positive.get(key); nil != d {
				db.stats.cacheHits.Increment()
				return record.New(d, nil)
			}
		}
	}

	if db.negative.Exists(key) {
		db.stats.negativeHits.Increment()
		return nil
	}

	db.Lock()
	if db.closed {
		db.Unlock()
		return nil
	}
	e, _ := db.find(key, list)
	db.deleteInvalid()
	db.Unlock()

	if nil == e {
		db.stats.misses.Increment()
		db.negative.Add(key)
		return nil
	}
	db.stats.hits.Increment()
	db.negative.Remove(key)
	db.positive.put(key, e.Primary().Destination)
	return e
}

// self-describing addresses never touch the store
func (db *DB) resolveBase32(key string) *destination.Destination {
	if d := db.positive.get(key); nil != d {
		db.stats.cacheHits.Increment()
		return d
	}
	if nil == db.resolver {
		return nil
	}
	h, ok := destination.HashFromBase32Address(key)
	if !ok {
		return nil
	}
	d := db.resolver(h)
	if nil == d || d.Hash() != h {
		return nil
	}
	db.positive.put(key, d)
	return d
}

// search the lists for a name, lock must be held
//
// returns the first valid record and the list holding it
func (db *DB) find(key string, list string) (*record.Entry, string) {
	lists := db.header.Lists
	if "" != list {
		lists = []string{list}
	}
	for _, l := range lists {
		e, err := db.findIn(key, l)
		if nil != err {
			break
		}
		if nil != e {
			return e, l
		}
	}
	return nil, ""
}

// read one list, lock must be held
func (db *DB) findIn(key string, list string) (*record.Entry, error) {
	p := db.store.Pool(list)
	if nil == p {
		return nil, nil
	}
	value, err := p.Get([]byte(key))
	if nil != err {
		db.log.Errorf("list: %s  lookup: %q  error: %s", list, key, err)
		return nil, err
	}
	if nil == value {
		return nil, nil
	}
	return db.decode(key, list, value), nil
}

// ReverseLookup - a name currently resolving to the destination
//
// when several names match, which one is returned is not defined
func (db *DB) ReverseLookup(d *destination.Destination) string {
	if nil == d {
		return ""
	}
	return first(db.ReverseLookupAllHash(d.Hash()))
}

// ReverseLookupAll - all names currently resolving to the destination
func (db *DB) ReverseLookupAll(d *destination.Destination) []string {
	if nil == d {
		return nil
	}
	return db.ReverseLookupAllHash(d.Hash())
}

// ReverseLookupHash - a name resolving to a destination hash
func (db *DB) ReverseLookupHash(h destination.Hash) string {
	return first(db.ReverseLookupAllHash(h))
}

// ReverseLookupAllHash - all names resolving to a destination hash
func (db *DB) ReverseLookupAllHash(h destination.Hash) []string {
	db.Lock()
	defer db.Unlock()
	if db.closed {
		return nil
	}
	defer db.deleteInvalid()

	names, err := db.index.Lookup(h, func(name string) []*destination.Destination {
		e, _ := db.find(name, "")
		return e.Destinations()
	})
	if nil != err {
		db.log.Errorf("reverse lookup error: %s", err)
		return nil
	}
	if 0 == len(names) {
		return nil
	}
	return names
}

func first(names []string) string {
	if 0 == len(names) {
		return ""
	}
	return names[0]
}
