// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/hostsdb/destination"
)

// MaxDestinations - upper limit of pairs in one record
const MaxDestinations = 8

// Pair - one destination with its attributes
type Pair struct {
	Attributes  Attributes
	Destination *destination.Destination
}

// Entry - the value stored for a name
//
// Pairs[0] is the primary destination
type Entry struct {
	Pairs []Pair

	// non-fatal attribute block damage found by Unpack
	AttributeError error
}

// New - a single pair entry
func New(d *destination.Destination, a Attributes) *Entry {
	return &Entry{
		Pairs: []Pair{{Attributes: a, Destination: d}},
	}
}

// Primary - the first pair
func (e *Entry) Primary() Pair {
	if nil == e || 0 == len(e.Pairs) {
		return Pair{}
	}
	return e.Pairs[0]
}

// Destinations - all destinations in stored order
func (e *Entry) Destinations() []*destination.Destination {
	if nil == e {
		return nil
	}
	ds := make([]*destination.Destination, len(e.Pairs))
	for i, p := range e.Pairs {
		ds[i] = p.Destination
	}
	return ds
}

// AttributeList - all attribute maps in stored order
func (e *Entry) AttributeList() []Attributes {
	if nil == e {
		return nil
	}
	as := make([]Attributes, len(e.Pairs))
	for i, p := range e.Pairs {
		as[i] = p.Attributes
	}
	return as
}

// Index - position of a destination, -1 if absent
func (e *Entry) Index(d *destination.Destination) int {
	if nil == e {
		return -1
	}
	for i, p := range e.Pairs {
		if p.Destination.Equal(d) {
			return i
		}
	}
	return -1
}

// Clone - copy of the pair list so it can be modified
func (e *Entry) Clone() *Entry {
	c := &Entry{
		Pairs: make([]Pair, len(e.Pairs)),
	}
	for i, p := range e.Pairs {
		c.Pairs[i] = Pair{
			Attributes:  p.Attributes.Clone(),
			Destination: p.Destination,
		}
	}
	return c
}
