// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namingdb

import (
	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/record"
)

//go:generate mockgen -source=listener.go -destination=mocks/mock_listener.go -package=mocks

// Listener - receives change notifications
//
// methods are called after the database lock is released, in the
// order the changes were made
type Listener interface {
	EntryAdded(name string, d *destination.Destination, attributes record.Attributes)
	EntryChanged(name string, d *destination.Destination, attributes record.Attributes)
	EntryRemoved(name string)
}

type eventType int

const (
	eventAdded eventType = iota
	eventChanged
	eventRemoved
)

type event struct {
	kind       eventType
	name       string
	d          *destination.Destination
	attributes record.Attributes
}

// AddListener - register for change notifications
func (db *DB) AddListener(l Listener) {
	db.Lock()
	defer db.Unlock()
	db.listeners = append(db.listeners, l)
}

// RemoveListener - stop notifications to a listener
func (db *DB) RemoveListener(l Listener) {
	db.Lock()
	defer db.Unlock()
	for i, registered := range db.listeners {
		if registered == l {
			db.listeners = append(db.listeners[:i:i], db.listeners[i+1:]...)
			return
		}
	}
}

// queue a notification, lock must be held
func (db *DB) queueEvent(kind eventType, name string, d *destination.Destination, attributes record.Attributes) {
	if 0 == len(db.listeners) {
		return
	}
	db.events = append(db.events, event{
		kind:       kind,
		name:       name,
		d:          d,
		attributes: attributes,
	})
}

// unlock and deliver queued notifications
func (db *DB) unlockAndNotify() {
	events := db.events
	db.events = nil
	listeners := db.listeners
	db.Unlock()

	for _, e := range events {
		for _, l := range listeners {
			switch e.kind {
			case eventAdded:
				l.EntryAdded(e.name, e.d, e.attributes)
			case eventChanged:
				l.EntryChanged(e.name, e.d, e.attributes)
			case eventRemoved:
				l.EntryRemoved(e.name)
			}
		}
	}
}
