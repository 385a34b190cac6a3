// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"bytes"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/fault"
)

// Codec - the record layout in use by a database
type Codec int

// available codecs
const (
	Legacy  Codec = iota // single destination, short values
	Current              // multiple destinations, long values
)

// CurrentVersion - first database version using the Current codec
const CurrentVersion = 4

// ForVersion - codec for a given database version
func ForVersion(version int) Codec {
	if version >= CurrentVersion {
		return Current
	}
	return Legacy
}

// String - name of the codec
func (c Codec) String() string {
	switch c {
	case Legacy:
		return "legacy"
	case Current:
		return "current"
	default:
		return "unknown"
	}
}

// MaxPairs - number of destinations the codec can hold
func (c Codec) MaxPairs() int {
	if Current == c {
		return MaxDestinations
	}
	return 1
}

// Pack - convert an entry to bytes
func (c Codec) Pack(e *Entry) ([]byte, error) {
	n := len(e.Pairs)
	if 0 == n {
		return nil, fault.ErrMissingDestination
	}
	if n > c.MaxPairs() {
		return nil, fault.ErrTooManyDestinations
	}

	buffer := &bytes.Buffer{}
	long := Current == c
	if long {
		buffer.WriteByte(byte(n))
	}
	for _, p := range e.Pairs {
		if nil == p.Destination {
			return nil, fault.ErrMissingDestination
		}
		block, err := encodeBlock(p.Attributes, long)
		if nil != err {
			return nil, err
		}
		buffer.Write(block)
		buffer.Write(p.Destination.Bytes())
	}
	return buffer.Bytes(), nil
}

// Unpack - convert bytes to an entry
//
// any error returned means the record is unusable
func (c Codec) Unpack(buffer []byte) (*Entry, error) {
	n := 1
	long := Current == c
	if long {
		if 0 == len(buffer) {
			return nil, fault.ErrRecordTruncated
		}
		n = int(buffer[0])
		if 0 == n || n > MaxDestinations {
			return nil, fault.ErrBadDestinationCount
		}
		buffer = buffer[1:]
	}

	e := &Entry{
		Pairs: make([]Pair, 0, n),
	}
	for i := 0; i < n; i += 1 {
		a, length, err := decodeBlock(buffer, long)
		if 0 == length {
			return nil, err
		}
		if nil != err {
			if nil == e.AttributeError {
				e.AttributeError = err
			}
			a = Attributes{}
		}
		buffer = buffer[length:]

		d, length, err := destination.Read(buffer)
		if nil != err {
			return nil, err
		}
		buffer = buffer[length:]

		e.Pairs = append(e.Pairs, Pair{
			Attributes:  a,
			Destination: d,
		})
	}
	return e, nil
}
