// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - binary encoding of the value stored for a name
//
// Two layouts exist:
//
//   Legacy:   [attribute-block][destination]
//   Current:  [count:1] count * ([attribute-block][destination])
//
// attribute-block:
//
//   [length:2]  (key "=" value ";")*
//
// keys are a 1 byte length followed by UTF-8 data.  Legacy values
// have the same form; current values use a 1 byte length, or 0xff
// followed by a 2 byte length for values of 255 bytes or more (up to
// 4096 bytes).  All integers are big endian.
//
// A damaged attribute block is not fatal: the pair is kept with empty
// attributes and the error is reported in Entry.AttributeError.  A
// damaged destination makes the whole record unreadable.
package record
