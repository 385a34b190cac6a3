// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hostsdb/util"
)

func TestHexDump(t *testing.T) {
	buffer := &bytes.Buffer{}
	util.HexDump(buffer, "> ", " <", []byte("hello\x00world"))

	expected := "> 0000  68 65 6c 6c 6f 00 77 6f 72 6c 64 " +
		strings.Repeat("   ", 5) + " " + strings.Repeat("   ", 16) +
		" |hello.world| <\n"
	assert.Equal(t, expected, buffer.String(), "wrong dump")
}

func TestHexDumpLines(t *testing.T) {
	buffer := &bytes.Buffer{}
	util.HexDump(buffer, "", "", make([]byte, 65))
	lines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
	assert.Equal(t, 3, len(lines), "wrong line count")
	assert.True(t, strings.HasPrefix(lines[2], "0040  00 "), "wrong last line: %q", lines[2])
}

func TestHexDumpEmpty(t *testing.T) {
	buffer := &bytes.Buffer{}
	util.HexDump(buffer, "", "", nil)
	assert.Equal(t, "", buffer.String(), "output for empty data")
}
