// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package destination - overlay network endpoint identifiers
//
// A destination is serialised as:
//
//   encryption public key   256 bytes
//   signing public key      128 bytes
//   certificate             type(1) ++ length(2, big endian) ++ payload
//
// A key certificate (type 5) has a payload of:
//
//   signing type(2) ++ crypto type(2) ++ excess key data
//
// Keys shorter than their field are right aligned (signing) or left
// aligned (encryption) and the rest of the field is padding.
//
// The hash of a destination is SHA-256 of its serialised bytes, and
// the self-describing address is the lower case unpadded Base32 of
// that hash followed by ".b32.i2p"
package destination
