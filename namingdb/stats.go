// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namingdb

import (
	"github.com/bitmark-inc/hostsdb/counter"
)

type statistics struct {
	lookups      counter.Counter
	hits         counter.Counter
	misses       counter.Counter
	cacheHits    counter.Counter
	negativeHits counter.Counter
	writes       counter.Counter
	removes      counter.Counter
	quarantined  counter.Counter
}

// Stats - operation counts since open
type Stats struct {
	Lookups      uint64 `json:"lookups"`
	Hits         uint64 `json:"hits"`
	Misses       uint64 `json:"misses"`
	CacheHits    uint64 `json:"cacheHits"`
	NegativeHits uint64 `json:"negativeHits"`
	Writes       uint64 `json:"writes"`
	Removes      uint64 `json:"removes"`
	Quarantined  uint64 `json:"quarantined"`
}

// Stats - current counts
func (db *DB) Stats() Stats {
	return Stats{
		Lookups:      db.stats.lookups.Uint64(),
		Hits:         db.stats.hits.Uint64(),
		Misses:       db.stats.misses.Uint64(),
		CacheHits:    db.stats.cacheHits.Uint64(),
		NegativeHits: db.stats.negativeHits.Uint64(),
		Writes:       db.stats.writes.Uint64(),
		Removes:      db.stats.removes.Uint64(),
		Quarantined:  db.stats.quarantined.Uint64(),
	}
}
