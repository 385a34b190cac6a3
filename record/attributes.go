// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/bitmark-inc/hostsdb/fault"
)

// recognised attribute keys
const (
	KeyAdded     = "a" // milliseconds since the epoch
	KeyModified  = "m" // milliseconds since the epoch
	KeySource    = "s"
	KeyValidated = "v" // "true" or "false"
)

// limits
const (
	MaxKeyLength       = 255
	MaxShortValue      = 255
	MaxValueLength     = 4096
	MaxAttributeLength = 65535
	longMarker         = 0xff
)

// Attributes - metadata carried alongside a destination
type Attributes map[string]string

// Clone - independent copy, nil stays nil
func (a Attributes) Clone() Attributes {
	if nil == a {
		return nil
	}
	c := make(Attributes, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Keys - sorted list of keys
func (a Attributes) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EncodeProperties - short string attribute block
//
// this is the form used by legacy records, the database header and
// the reverse index
func EncodeProperties(a Attributes) ([]byte, error) {
	return encodeBlock(a, false)
}

// DecodeProperties - parse a complete short string attribute block
func DecodeProperties(buffer []byte) (Attributes, error) {
	a, n, err := decodeBlock(buffer, false)
	if nil != err {
		return nil, err
	}
	if n != len(buffer) {
		return nil, fault.ErrTrailingRecordData
	}
	return a, nil
}

func encodeBlock(a Attributes, long bool) ([]byte, error) {
	buffer := &bytes.Buffer{}
	buffer.Write([]byte{0, 0}) // length placeholder

	for _, k := range a.Keys() {
		if len(k) > MaxKeyLength {
			return nil, fault.ErrAttributeKeyTooLong
		}
		buffer.WriteByte(byte(len(k)))
		buffer.WriteString(k)
		buffer.WriteByte('=')

		v := a[k]
		if long {
			if len(v) > MaxValueLength {
				return nil, fault.ErrAttributeValueTooLong
			}
			if len(v) >= longMarker {
				buffer.WriteByte(longMarker)
				buffer.Write([]byte{byte(len(v) >> 8), byte(len(v))})
			} else {
				buffer.WriteByte(byte(len(v)))
			}
		} else {
			if len(v) > MaxShortValue {
				return nil, fault.ErrAttributeValueTooLong
			}
			buffer.WriteByte(byte(len(v)))
		}
		buffer.WriteString(v)
		buffer.WriteByte(';')
	}

	b := buffer.Bytes()
	size := len(b) - 2
	if size > MaxAttributeLength {
		return nil, fault.ErrAttributesTooBig
	}
	binary.BigEndian.PutUint16(b, uint16(size))
	return b, nil
}

// decode a block from the front of a buffer
//
// n is the total number of bytes occupied by the block, zero if the
// length itself could not be read; on a non-zero n the caller can
// continue after the block even though err is set
func decodeBlock(buffer []byte, long bool) (Attributes, int, error) {
	if len(buffer) < 2 {
		return nil, 0, fault.ErrRecordTruncated
	}
	size := int(binary.BigEndian.Uint16(buffer))
	n := 2 + size
	if len(buffer) < n {
		return nil, 0, fault.ErrRecordTruncated
	}

	a := make(Attributes)
	block := buffer[2:n]
	for len(block) > 0 {
		k, rest, err := readString(block, false)
		if nil != err {
			return nil, n, err
		}
		if 0 == len(rest) || '=' != rest[0] {
			return nil, n, fault.ErrBadAttributeSeparator
		}
		v, rest, err := readString(rest[1:], long)
		if nil != err {
			return nil, n, err
		}
		if 0 == len(rest) || ';' != rest[0] {
			return nil, n, fault.ErrBadAttributeSeparator
		}
		if _, ok := a[k]; ok {
			return nil, n, fault.ErrDuplicateAttributeKey
		}
		a[k] = v
		block = rest[1:]
	}
	return a, n, nil
}

func readString(buffer []byte, long bool) (string, []byte, error) {
	if 0 == len(buffer) {
		return "", nil, fault.ErrRecordTruncated
	}
	size := int(buffer[0])
	buffer = buffer[1:]
	if long && longMarker == size {
		if len(buffer) < 2 {
			return "", nil, fault.ErrRecordTruncated
		}
		size = int(binary.BigEndian.Uint16(buffer))
		buffer = buffer[2:]
		if size > MaxValueLength {
			return "", nil, fault.ErrAttributeValueTooLong
		}
	}
	if len(buffer) < size {
		return "", nil, fault.ErrRecordTruncated
	}
	return string(buffer[:size]), buffer[size:], nil
}
