// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package limitedset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hostsdb/limitedset"
)

func TestAddition(t *testing.T) {

	items := []string{
		"0123456789",
		"abcdefghijklmnopqrstuvwxyz",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"hijklmn",
		"opqrstu",
		"vwxyzab",
		"cdefghi",
		"jklmnop",
		"qrstuvw",
	}

	expected := []string{
		"opqrstu",
		"vwxyzab",
		"cdefghi",
		"jklmnop",
		"qrstuvw",
	}

	check(t, items, expected)

}

// add a list of items and check that all the expected ones are present
// compute the ones that should not pe present and check that they are not
func check(t *testing.T, items []string, expected []string) {

	setSize := len(expected)

	s1 := limitedset.New(setSize)
	if nil == s1 {
		t.Fatalf("failed to create a limitedset of size: %d", setSize)
	}

	for _, d := range items {
		s1.Add(d)
	}

	hash := make(map[string]struct{}) // record all the expected

	// all expected must be present
	for i, d := range expected {
		hash[d] = struct{}{}
		if !s1.Exists(d) {
			t.Errorf("item[%d] missing: %q", i, d)
		}
	}

	// check the inputs (exclude the expected)
	for i, d := range items {
		if _, ok := hash[d]; ok {
			continue
		}
		if s1.Exists(d) {
			t.Errorf("item[%d] present: %q", i, d)
		}
	}
}

func TestPullToFront(t *testing.T) {

	items := []string{
		"0123456789",
		"abcdefghijklmnopqrstuvwxyz",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"abcdefg",
		"hijklmn",
		"abcdefg",
		"opqrstu",
		"abcdefg",
		"vwxyzab",
		"abcdefg",
		"cdefghi",
		"abcdefg",
		"jklmnop",
		"abcdefg",
		"abcdefg",
		"qrstuvw",
		"abcdefg",
		"xyzabcd",
	}

	expected := []string{
		"cdefghi",
		"jklmnop",
		"qrstuvw",
		"abcdefg",
		"xyzabcd",
	}

	check(t, items, expected)
}

func TestRefreshOldest(t *testing.T) {
	s := limitedset.New(3)
	s.Add("a.i2p")
	s.Add("b.i2p")
	s.Add("c.i2p")

	// "a.i2p" is the oldest, refreshing it makes "b.i2p" the next evicted
	s.Add("a.i2p")
	s.Add("d.i2p")

	assert.True(t, s.Exists("a.i2p"), "refreshed item evicted")
	assert.False(t, s.Exists("b.i2p"), "oldest item kept")
	assert.True(t, s.Exists("c.i2p"), "item missing")
	assert.True(t, s.Exists("d.i2p"), "item missing")
	assert.Equal(t, 3, s.Len(), "wrong length")
}

func TestRemove(t *testing.T) {
	s := limitedset.New(3)
	s.Add("a.i2p")
	s.Add("b.i2p")
	s.Add("c.i2p")

	s.Remove("b.i2p")
	s.Remove("missing.i2p")
	assert.False(t, s.Exists("b.i2p"), "removed item present")
	assert.Equal(t, 2, s.Len(), "wrong length")

	// the freed slot is used first so nothing is evicted
	s.Add("d.i2p")
	assert.True(t, s.Exists("a.i2p"), "item evicted")
	assert.True(t, s.Exists("c.i2p"), "item evicted")
	assert.True(t, s.Exists("d.i2p"), "item missing")

	// then the oldest goes
	s.Add("e.i2p")
	assert.False(t, s.Exists("a.i2p"), "oldest item kept")
	assert.Equal(t, 3, s.Len(), "wrong length")

	// removing the oldest slot
	s.Remove("c.i2p")
	s.Add("f.i2p")
	s.Add("g.i2p")
	assert.False(t, s.Exists("d.i2p"), "oldest item kept")
	assert.True(t, s.Exists("e.i2p"), "item evicted")
	assert.True(t, s.Exists("f.i2p"), "item missing")
	assert.True(t, s.Exists("g.i2p"), "item missing")
}

func TestClear(t *testing.T) {
	s := limitedset.New(2)
	s.Add("a.i2p")
	s.Add("b.i2p")
	s.Clear()
	assert.Equal(t, 0, s.Len(), "items survived clear")
	assert.False(t, s.Exists("a.i2p"), "item survived clear")

	s.Add("c.i2p")
	s.Add("d.i2p")
	assert.Equal(t, 2, s.Len(), "wrong length")
}
