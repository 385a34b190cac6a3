// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namingdb

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/fault"
	"github.com/bitmark-inc/hostsdb/hoststxt"
	"github.com/bitmark-inc/hostsdb/record"
	"github.com/bitmark-inc/hostsdb/storage"
)

// called for each record in range; e is nil when decoding is not
// requested
type visitor func(key string, e *record.Entry) error

// scan one list in key order, lock must be held
//
// skipped keys are neither decoded nor checked against startsWith;
// invalid records are queued for deletion after the scan
func (db *DB) iterate(q *query, decode bool, fn visitor) error {
	p := db.store.Pool(q.list)
	if nil == p {
		db.log.Warnf("no list found for lookup in: %s", q.list)
		return nil
	}

	cursor := p.NewFetchCursor()
	if "" != q.beginWith {
		cursor.Seek([]byte(q.beginWith))
	}

	skip := q.skip
	count := 0
	return cursor.Map(func(k []byte, value []byte) error {
		if skip > 0 {
			skip -= 1
			return nil
		}
		if count >= q.limit {
			return storage.ErrStopIteration
		}
		key := string(k)
		if !q.inRange(key) {
			return storage.ErrStopIteration
		}

		var e *record.Entry
		if decode {
			e = db.decode(key, q.list, value)
			if nil == e {
				return nil
			}
		}
		if !q.matches(key) {
			return nil
		}
		count += 1
		return fn(key, e)
	})
}

// GetEntries - primary destination of every matching name in one list
func (db *DB) GetEntries(options Options) map[string]*destination.Destination {
	result := make(map[string]*destination.Destination)
	db.enumerate(options, func(key string, e *record.Entry) error {
		result[key] = e.Primary().Destination
		return nil
	})
	return result
}

// GetBase64Entries - as GetEntries with Base64 destinations
func (db *DB) GetBase64Entries(options Options) map[string]string {
	result := make(map[string]string)
	db.enumerate(options, func(key string, e *record.Entry) error {
		result[key] = e.Primary().Destination.Base64()
		return nil
	})
	return result
}

func (db *DB) enumerate(options Options, fn visitor) {
	q := options.query()
	db.log.Debugf("searching: %s  begin with: %q  starts with: %q  search: %q  limit: %d  skip: %d",
		q.list, q.beginWith, q.startsWith, q.search, q.limit, q.skip)

	db.Lock()
	defer db.Unlock()
	if db.closed {
		return
	}
	if err := db.iterate(q, true, fn); nil != err {
		db.log.Errorf("list: %s  enumeration error: %s", q.list, err)
	}
	db.deleteInvalid()
}

// GetNames - matching names of one list in order, records are not
// checked
func (db *DB) GetNames(options Options) []string {
	q := options.query()
	names := make([]string, 0, 64)

	db.Lock()
	defer db.Unlock()
	if db.closed {
		return nil
	}
	err := db.iterate(q, false, func(key string, _ *record.Entry) error {
		names = append(names, key)
		return nil
	})
	if nil != err {
		db.log.Errorf("list: %s  enumeration error: %s", q.list, err)
		return nil
	}
	sort.Strings(names)
	return names
}

// Size - number of names in one list
func (db *DB) Size(options Options) int {
	list := options.listOrDefault()

	db.Lock()
	defer db.Unlock()
	if db.closed {
		return 0
	}
	p := db.store.Pool(list)
	if nil == p {
		return 0
	}
	n, err := p.Size()
	if nil != err {
		db.log.Errorf("list: %s  size error: %s", list, err)
		return 0
	}
	return n
}

// Export - write one list in host list format
//
// a record with several destinations is written oldest first so that
// an importer that overwrites on each line keeps the primary
func (db *DB) Export(w io.Writer, options Options) error {
	q := options.query()
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "# Address book: %s (%s)\n", db.name, q.list)
	fmt.Fprintf(out, "# Exported: %s\n", time.Now().Format(time.UnixDate))

	db.Lock()
	defer db.Unlock()
	if db.closed {
		out.Flush()
		return fault.ErrDatabaseClosed
	}
	defer db.deleteInvalid()

	p := db.store.Pool(q.list)
	if nil == p {
		db.log.Warnf("no list found for export of: %s", q.list)
		return out.Flush()
	}

	filtered := q.filtered()
	if !filtered {
		n, err := p.Size()
		if nil != err {
			return err
		}
		if n <= 0 {
			fmt.Fprintf(out, "# No entries\n")
			return out.Flush()
		}
		if n > 1 {
			fmt.Fprintf(out, "# %d entries\n", n)
		}
	}

	lines := 0
	err := db.iterate(q, true, func(key string, e *record.Entry) error {
		for i := len(e.Pairs) - 1; i >= 0; i -= 1 {
			pair := e.Pairs[i]
			if _, err := out.WriteString(hoststxt.FormatLine(key, pair.Destination, pair.Attributes) + "\n"); nil != err {
				return err
			}
			lines += 1
		}
		return nil
	})
	if nil != err {
		db.log.Errorf("list: %s  export error: %s", q.list, err)
		return err
	}

	if filtered {
		if lines <= 0 {
			fmt.Fprintf(out, "# No entries\n")
		} else if lines > 1 {
			fmt.Fprintf(out, "# %d entries\n", lines)
		}
	}
	return out.Flush()
}
