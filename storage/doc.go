// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// maintain the on-disk data store
//
// maintain separate named pools of elements in key->value form
//
// This maintains a LevelDB database split into a series of pools.
// Unlike a fixed table layout each pool is identified by a name,
// pools are created on demand and are recorded in a catalog so they
// can be enumerated after a restart.
//
// Notes:
// 1. ++           = concatenation of byte data
// 2. name         = pool name, UTF-8, must not contain 0x00
// 3. key          = caller supplied bytes, ordering is byte-wise
//
// Catalog:
//
//   C ++ name                  - pool exists
//                                data: empty
//
// Pool data:
//
//   P ++ name ++ 0x00 ++ key   - element of the pool
//                                data: caller supplied value
//
// Open marker:
//
//   0x00 ++ "mounted"          - present while a writable handle is open
//                                data: empty
//
// A marker still present when the database is opened means the
// previous writer did not close cleanly, or another process has the
// database open.
package storage
