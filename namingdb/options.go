// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namingdb

import (
	"math"
	"strconv"
	"strings"
)

// Options - query and update modifiers
type Options map[string]string

// recognised option keys
const (
	OptionList       = "list"
	OptionSkip       = "skip"
	OptionLimit      = "limit"
	OptionSearch     = "search"
	OptionStartsWith = "startsWith"
	OptionBeginWith  = "beginWith"
)

// DigitClass - startsWith value matching any leading digit
const DigitClass = "[0-9]"

// List - the list named by the options, empty if none
func (o Options) List() string {
	return o[OptionList]
}

// listOrDefault - the named list or the default list
func (o Options) listOrDefault() string {
	if list := o.List(); "" != list {
		return list
	}
	return DefaultList
}

// enumeration parameters
type query struct {
	list       string
	search     string
	startsWith string
	beginWith  string
	skip       int
	limit      int
}

func (o Options) query() *query {
	q := &query{
		list:       o.listOrDefault(),
		search:     strings.ToLower(o[OptionSearch]),
		startsWith: strings.ToLower(o[OptionStartsWith]),
		beginWith:  strings.ToLower(o[OptionBeginWith]),
		skip:       0,
		limit:      math.MaxInt32,
	}
	if "" == q.beginWith && "" != q.startsWith {
		if DigitClass == q.startsWith {
			q.beginWith = "0"
		} else {
			q.beginWith = q.startsWith
		}
	}
	if n, err := strconv.Atoi(o[OptionLimit]); nil == err {
		q.limit = n
	}
	if n, err := strconv.Atoi(o[OptionSkip]); nil == err && n > 0 {
		q.skip = n
	}
	return q
}

// true while keys can still match, keys are visited in order so the
// first failure ends the scan
func (q *query) inRange(key string) bool {
	switch q.startsWith {
	case "":
		return true
	case DigitClass:
		return "" != key && key[0] <= '9'
	default:
		return strings.HasPrefix(key, q.startsWith)
	}
}

func (q *query) matches(key string) bool {
	return "" == q.search || strings.Contains(key, q.search)
}

// filtered - true if the scan does not start at the first key
func (q *query) filtered() bool {
	return "" != q.beginWith || "" != q.search
}
