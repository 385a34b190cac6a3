// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package schema

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/hostsdb/fault"
	"github.com/bitmark-inc/hostsdb/record"
	"github.com/bitmark-inc/hostsdb/reverse"
	"github.com/bitmark-inc/hostsdb/storage"
)

// header location
const (
	InfoPool = "%%__INFO__%%"
	infoKey  = "info"
)

// CurrentVersion - the version written by this code
const CurrentVersion = record.CurrentVersion

// header property names
const (
	propertyVersion     = "version"
	propertyCreated     = "created"
	propertyUpgraded    = "upgraded"
	propertyLists       = "lists"
	propertyListVersion = "listversion_"
)

// Header - database metadata
type Header struct {
	Version  int
	Created  time.Time
	Upgraded time.Time

	// searched in this order by unqualified lookups
	Lists []string

	// migration progress per list, absent means not yet upgraded
	ListVersions map[string]int

	// unrecognised properties, written back unchanged
	other record.Attributes
}

// NewHeader - header for a newly created database
func NewHeader(lists []string, now time.Time) *Header {
	return &Header{
		Version:      CurrentVersion,
		Created:      now,
		Lists:        append([]string{}, lists...),
		ListVersions: make(map[string]int),
		other:        make(record.Attributes),
	}
}

// Codec - the record codec matching the header version
func (h *Header) Codec() record.Codec {
	return record.ForVersion(h.Version)
}

// CodecFor - the record codec for one list
//
// a list converted by an unfinished upgrade already holds the current
// layout while the database version is still 3
func (h *Header) CodecFor(list string) record.Codec {
	if h.Version < CurrentVersion {
		if v, ok := h.ListVersions[list]; ok && v >= CurrentVersion {
			return record.Current
		}
	}
	return h.Codec()
}

// ReadHeader - fetch and check the header of an existing database
func ReadHeader(store *storage.Store) (*Header, error) {
	p := store.Pool(InfoPool)
	if nil == p {
		return nil, fault.ErrNoHeader
	}
	value, err := p.Get([]byte(infoKey))
	if nil != err {
		return nil, err
	}
	if nil == value {
		return nil, fault.ErrNoHeaderInfo
	}
	properties, err := record.DecodeProperties(value)
	if nil != err {
		return nil, err
	}
	return parseHeader(properties)
}

func parseHeader(properties record.Attributes) (*Header, error) {
	h := &Header{
		ListVersions: make(map[string]int),
		other:        make(record.Attributes),
	}

	lists, ok := properties[propertyLists]
	if !ok {
		return nil, fault.ErrNoLists
	}
	h.Lists = SplitLists(lists)

	version, ok := properties[propertyVersion]
	if !ok {
		return nil, fault.ErrNoVersion
	}
	v, err := strconv.Atoi(version)
	if nil != err || v < 1 {
		return nil, fault.ErrNoVersion
	}
	if v > CurrentVersion {
		return nil, fault.ErrDatabaseVersionTooNew
	}
	h.Version = v

	h.Created = parseTime(properties[propertyCreated])
	h.Upgraded = parseTime(properties[propertyUpgraded])

	for k, value := range properties {
		switch {
		case propertyLists == k, propertyVersion == k, propertyCreated == k, propertyUpgraded == k:
		case strings.HasPrefix(k, propertyListVersion):
			if n, err := strconv.Atoi(value); nil == err {
				h.ListVersions[strings.TrimPrefix(k, propertyListVersion)] = n
			}
		default:
			h.other[k] = value
		}
	}
	return h, nil
}

// WriteHeader - store the header
func WriteHeader(store *storage.Store, h *Header) error {
	p, err := store.MakePool(InfoPool)
	if nil != err {
		return err
	}
	value, err := h.pack()
	if nil != err {
		return err
	}
	return p.Put([]byte(infoKey), value)
}

// queue a header write in a transaction
func writeHeaderTo(trx *storage.Transaction, store *storage.Store, h *Header) error {
	p, err := store.MakePool(InfoPool)
	if nil != err {
		return err
	}
	value, err := h.pack()
	if nil != err {
		return err
	}
	trx.Put(p, []byte(infoKey), value)
	return nil
}

func (h *Header) pack() ([]byte, error) {
	properties := h.other.Clone()
	if nil == properties {
		properties = make(record.Attributes)
	}
	properties[propertyVersion] = strconv.Itoa(h.Version)
	properties[propertyLists] = strings.Join(h.Lists, ",")
	if !h.Created.IsZero() {
		properties[propertyCreated] = formatTime(h.Created)
	}
	if !h.Upgraded.IsZero() {
		properties[propertyUpgraded] = formatTime(h.Upgraded)
	}
	for list, v := range h.ListVersions {
		properties[propertyListVersion+list] = strconv.Itoa(v)
	}
	return record.EncodeProperties(properties)
}

// Initialise - write the metadata of a new empty database
func Initialise(store *storage.Store, lists []string, now time.Time) (*Header, error) {
	h := NewHeader(lists, now)
	if err := WriteHeader(store, h); nil != err {
		return nil, err
	}
	if err := reverse.New(store).Create(); nil != err {
		return nil, err
	}
	return h, nil
}

// SplitLists - parse a comma separated list, dropping empty items
func SplitLists(s string) []string {
	lists := make([]string, 0, 4)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if "" != item {
			lists = append(lists, item)
		}
	}
	return lists
}

// ListVersionKeys - names of the lists with recorded progress, sorted
func (h *Header) ListVersionKeys() []string {
	keys := make([]string, 0, len(h.ListVersions))
	for k := range h.ListVersions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// timestamps are milliseconds since the epoch
func formatTime(t time.Time) string {
	return strconv.FormatInt(t.UnixNano()/int64(time.Millisecond), 10)
}

func parseTime(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if nil != err || ms <= 0 {
		return time.Time{}
	}
	return time.Unix(0, ms*int64(time.Millisecond))
}
