// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/hostsdb/fault"
)

// common errors - keep in alphabetic order
var (
	ErrFileNotFound       = fault.NotFoundError("file not found")
	ErrInvalidAttribute   = fault.InvalidError("attribute must be KEY=VALUE")
	ErrInvalidSigningType = fault.InvalidError("unknown signing type")
	ErrMissingArguments   = fault.InvalidError("missing arguments")
	ErrNoDatabase         = fault.ProcessError("database is not open")
)
