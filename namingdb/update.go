// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namingdb

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/fault"
	"github.com/bitmark-inc/hostsdb/hoststxt"
	"github.com/bitmark-inc/hostsdb/record"
)

// Put - store a single destination for a name, replacing any record
//
// the "list" option selects the list, default hosts.txt; the "a"
// attribute is set to the current time unless given
func (db *DB) Put(name string, d *destination.Destination, attributes record.Attributes, options Options) error {
	return db.put(name, d, attributes, options, false)
}

// PutIfAbsent - as Put but fails with fault.ErrNameExists if the name
// is already in the list
func (db *DB) PutIfAbsent(name string, d *destination.Destination, attributes record.Attributes, options Options) error {
	return db.put(name, d, attributes, options, true)
}

func (db *DB) put(name string, d *destination.Destination, attributes record.Attributes, options Options, checkExisting bool) error {
	key, err := db.checkUpdate(name, d, true)
	if nil != err {
		return err
	}
	list := options.listOrDefault()
	a := stamp(attributes)

	db.Lock()
	if db.closed {
		db.Unlock()
		return fault.ErrDatabaseClosed
	}
	err = db.write(key, list, record.New(d, a), checkExisting)
	db.unlockAndNotify()
	return err
}

// AddDestination - add a destination to the record for a name
//
// preferred signing types are placed before the others so they are
// returned first; with the legacy layout this is PutIfAbsent
func (db *DB) AddDestination(name string, d *destination.Destination, attributes record.Attributes, options Options) error {
	if record.Current != db.codecFor(options.listOrDefault()) {
		return db.PutIfAbsent(name, d, attributes, options)
	}

	key, err := db.checkUpdate(name, d, true)
	if nil != err {
		return err
	}
	list := options.listOrDefault()
	a := stamp(attributes)

	db.Lock()
	if db.closed {
		db.Unlock()
		return fault.ErrDatabaseClosed
	}
	err = db.addDestination(key, list, d, a)
	db.deleteInvalid()
	db.unlockAndNotify()
	return err
}

// lock must be held
func (db *DB) addDestination(key string, list string, d *destination.Destination, a record.Attributes) error {

	// no www. fallback here, that would copy another name's record
	e, err := db.findIn(key, list)
	if nil != err {
		return err
	}
	if nil == e {
		return db.write(key, list, record.New(d, a), false)
	}
	if e.Index(d) >= 0 {
		return fault.ErrDestinationExists
	}
	if len(e.Pairs) >= record.MaxDestinations {
		return fault.ErrTooManyDestinations
	}

	n := e.Clone()
	pair := record.Pair{
		Attributes:  a,
		Destination: d,
	}
	if d.SigningType().IsPreferred() {
		n.Pairs = append([]record.Pair{pair}, n.Pairs...)
	} else {
		n.Pairs = append(n.Pairs, pair)
	}
	return db.write(key, list, n, false)
}

// Remove - delete the whole record for a name
func (db *DB) Remove(name string, options Options) error {
	key, err := db.checkUpdate(name, nil, false)
	if nil != err {
		return err
	}
	list := options.listOrDefault()

	db.Lock()
	if db.closed {
		db.Unlock()
		return fault.ErrDatabaseClosed
	}
	err = db.remove(key, list)
	db.unlockAndNotify()
	return err
}

// RemoveDestination - delete one destination from the record for a
// name, removing the record if it was the last
func (db *DB) RemoveDestination(name string, d *destination.Destination, options Options) error {
	key, err := db.checkUpdate(name, d, true)
	if nil != err {
		return err
	}
	list := options.listOrDefault()

	db.Lock()
	if db.closed {
		db.Unlock()
		return fault.ErrDatabaseClosed
	}
	err = db.removeDestination(key, list, d)
	db.deleteInvalid()
	db.unlockAndNotify()
	return err
}

// lock must be held
func (db *DB) removeDestination(key string, list string, d *destination.Destination) error {
	e, err := db.findIn(key, list)
	if nil != err {
		return err
	}
	if nil == e {
		return fault.ErrNameNotFound
	}
	i := e.Index(d)
	if i < 0 {
		return fault.ErrDestinationNotFound
	}
	if 1 == len(e.Pairs) {
		return db.remove(key, list)
	}

	n := e.Clone()
	n.Pairs = append(n.Pairs[:i], n.Pairs[i+1:]...)
	if err := db.write(key, list, n, false); nil != err {
		return err
	}
	if err := db.index.Remove(key, d); nil != err {
		db.log.Errorf("reverse remove: %q  error: %s", key, err)
	}
	return nil
}

// delete a record and its reverse entries, lock must be held
func (db *DB) remove(key string, list string) error {
	p := db.store.Pool(list)
	if nil == p {
		return fault.ErrNameNotFound
	}
	old, err := p.Remove([]byte(key))
	if nil != err {
		db.log.Errorf("list: %s  remove: %q  error: %s", list, key, err)
		return err
	}
	if nil == old {
		return fault.ErrNameNotFound
	}
	db.positive.remove(key)
	db.stats.removes.Increment()

	if e, err := db.codecFor(list).Unpack(old); nil == err {
		for _, d := range e.Destinations() {
			if err := db.index.Remove(key, d); nil != err {
				db.log.Errorf("reverse remove: %q  error: %s", key, err)
			}
		}
	}
	db.queueEvent(eventRemoved, key, nil, nil)
	return nil
}

// store a record and add its reverse entries, lock must be held
func (db *DB) write(key string, list string, e *record.Entry, checkExisting bool) error {
	p, err := db.store.MakePool(list)
	if nil != err {
		return err
	}

	codec := db.codecFor(list)

	// an unreadable old value counts as absent
	existing := false
	if old, err := p.Get([]byte(key)); nil != err {
		return err
	} else if nil != old {
		_, err := codec.Unpack(old)
		existing = nil == err
	}
	if existing && checkExisting {
		return fault.ErrNameExists
	}

	packed, err := codec.Pack(e)
	if nil != err {
		return err
	}
	if err := p.Put([]byte(key), packed); nil != err {
		db.log.Errorf("list: %s  add: %q  error: %s", list, key, err)
		return err
	}
	db.stats.writes.Increment()
	db.negative.Remove(key)
	db.positive.remove(key)

	kind := eventAdded
	if existing {
		kind = eventChanged
	}
	for _, pair := range e.Pairs {
		if err := db.index.Add(key, pair.Destination); nil != err {
			db.log.Errorf("reverse add: %q  error: %s", key, err)
		}
		db.queueEvent(kind, key, pair.Destination, pair.Attributes)
	}
	return nil
}

// common checks for updates, returns the folded name
func (db *DB) checkUpdate(name string, d *destination.Destination, needDestination bool) (string, error) {
	if needDestination && nil == d {
		return "", fault.ErrMissingDestination
	}
	if db.readOnly {
		db.log.Errorf("update of: %q failed, read-only hosts database", name)
		return "", fault.ErrReadOnly
	}
	key := strings.ToLower(strings.TrimSpace(name))
	if "" == key {
		return "", fault.ErrInvalidName
	}
	db.negative.Remove(key)
	return key, nil
}

// copy attributes adding the time added, the list option is not an
// attribute
func stamp(attributes record.Attributes) record.Attributes {
	a := attributes.Clone()
	if nil == a {
		a = make(record.Attributes)
	}
	if _, ok := a[record.KeyAdded]; !ok {
		a[record.KeyAdded] = strconv.FormatInt(time.Now().UnixNano()/int64(time.Millisecond), 10)
	}
	delete(a, OptionList)
	return a
}

// Import - read a host list into a list of the database
//
// a name seen earlier in the same input gains the new destination,
// otherwise the record is replaced; source, if not empty, is stored
// as the "s" attribute where a line has none
func (db *DB) Import(r io.Reader, source string, options Options) (int, error) {
	seen := make(map[string]struct{})
	return hoststxt.Parse(r, db.log, func(entry *hoststxt.Entry) error {
		a := entry.Attributes.Clone()
		if nil == a {
			a = make(record.Attributes)
		}
		if _, ok := a[record.KeySource]; !ok && "" != source {
			a[record.KeySource] = source
		}

		if _, ok := seen[entry.Name]; ok {
			err := db.AddDestination(entry.Name, entry.Destination, a, options)
			if fault.IsErrExists(err) || fault.ErrTooManyDestinations == err {
				db.log.Warnf("import: %q  skipped: %s", entry.Name, err)
				return nil
			}
			return err
		}
		seen[entry.Name] = struct{}{}
		return db.Put(entry.Name, entry.Destination, a, options)
	})
}
