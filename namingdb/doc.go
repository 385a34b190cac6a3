// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package namingdb - the host name database
//
// Names map to one or more destinations and are kept in named lists
// inside a single LevelDB store.  Unqualified lookups search the lists
// in header order.  A reverse index maps destinations back to names.
//
// All store access is serialised by one lock held by the DB.  A small
// negative cache of recent misses and an expiring positive cache are
// consulted before that lock is taken.
//
// Records found to be damaged while reading are queued and deleted at
// the end of the operation that found them, never during a scan.
package namingdb
