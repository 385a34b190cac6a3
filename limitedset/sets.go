// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package limitedset - a bounded set of strings, oldest item evicted first
package limitedset

import (
	"container/ring"
	"sync"
)

// LimitedSet - safe for concurrent use
//
// ring points at the slot written next, which holds the oldest item
type LimitedSet struct {
	sync.Mutex
	size int
	ring *ring.Ring
	hash map[string]*ring.Ring
}

// New - create a new limited set that holds up to 'n' items
func New(n int) *LimitedSet {
	if n < 1 {
		n = 1
	}
	return &LimitedSet{
		size: n,
		ring: ring.New(n),
		hash: make(map[string]*ring.Ring),
	}
}

// Add - add an item to the set, refreshing it if already present
func (ls *LimitedSet) Add(item string) {
	ls.Lock()
	defer ls.Unlock()
	if r, ok := ls.hash[item]; ok {
		if r == ls.ring {
			ls.ring = ls.ring.Next()
			return
		}
		r = r.Prev().Unlink(1)
		ls.ring.Prev().Link(r)
		return
	}
	if oldItem, ok := ls.ring.Value.(string); ok {
		delete(ls.hash, oldItem)
	}
	ls.ring.Value = item
	ls.hash[item] = ls.ring
	ls.ring = ls.ring.Next()
}

// Exists - check to see if item is in the set
func (ls *LimitedSet) Exists(item string) bool {
	ls.Lock()
	defer ls.Unlock()
	_, ok := ls.hash[item]
	return ok
}

// Remove - drop an item, its slot is reused by the next Add
func (ls *LimitedSet) Remove(item string) {
	ls.Lock()
	defer ls.Unlock()
	r, ok := ls.hash[item]
	if !ok {
		return
	}
	delete(ls.hash, item)
	r.Value = nil
	if r == ls.ring {
		return
	}
	r = r.Prev().Unlink(1)
	ls.ring.Prev().Link(r)
	ls.ring = r
}

// Clear - remove all items
func (ls *LimitedSet) Clear() {
	ls.Lock()
	defer ls.Unlock()
	ls.ring = ring.New(ls.size)
	ls.hash = make(map[string]*ring.Ring)
}

// Len - number of items held
func (ls *LimitedSet) Len() int {
	ls.Lock()
	defer ls.Unlock()
	return len(ls.hash)
}
