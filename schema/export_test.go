// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema

import (
	"github.com/bitmark-inc/hostsdb/fault"
	"github.com/bitmark-inc/hostsdb/record"
)

// FailConversion - make the version 4 rewrite of one list fail
func FailConversion(m *Manager, failing string) {
	m.convert = func(list string, e *record.Entry) ([]byte, error) {
		if failing == list {
			return nil, fault.ErrAttributesTooBig
		}
		return convertRecord(list, e)
	}
}
