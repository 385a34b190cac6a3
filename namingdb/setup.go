// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namingdb

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/hostsdb/destination"
	"github.com/bitmark-inc/hostsdb/limitedset"
	"github.com/bitmark-inc/hostsdb/record"
	"github.com/bitmark-inc/hostsdb/reverse"
	"github.com/bitmark-inc/hostsdb/schema"
	"github.com/bitmark-inc/hostsdb/storage"
	"github.com/bitmark-inc/hostsdb/util"
	"github.com/bitmark-inc/logger"
)

// defaults
const (
	DefaultName                = "hostsdb.leveldb"
	DefaultList                = "hosts.txt"
	defaultNegativeCacheSize   = 32
	defaultPositiveCacheExpiry = 10 * time.Minute
)

// Resolver - find the destination for a self-describing address
//
// called outside the database lock, may block
type Resolver func(hash destination.Hash) *destination.Destination

// Configuration - database settings
type Configuration struct {
	Directory           string   `gluamapper:"directory" json:"directory"`
	Name                string   `gluamapper:"name" json:"name"`
	Lists               []string `gluamapper:"lists" json:"lists"`
	ReadOnly            bool     `gluamapper:"read_only" json:"read_only"`
	DeferUpgrade        bool     `gluamapper:"defer_upgrade" json:"defer_upgrade"`
	NegativeCacheSize   int      `gluamapper:"negative_cache_size" json:"negative_cache_size"`
	PositiveCacheExpiry string   `gluamapper:"positive_cache_expiry" json:"positive_cache_expiry"`

	Resolver Resolver `gluamapper:"-" json:"-"`
}

// DB - an open naming database
type DB struct {
	sync.Mutex // guards every access to store and index

	log      *logger.L
	name     string
	path     string
	readOnly bool
	resolver Resolver

	store  *storage.Store
	index  *reverse.Index
	header *schema.Header
	closed bool

	listeners []Listener
	events    []event

	// records found damaged by the current operation
	invalid []invalidEntry

	negative *limitedset.LimitedSet
	positive *positiveCache
	stats    statistics
}

// Open - open a database, creating it if necessary
//
// an existing database that cannot be opened is renamed aside and a
// new one created in its place
func Open(configuration *Configuration) (*DB, error) {
	log := logger.New("namingdb")

	cfg, expiry, err := configuration.withDefaults()
	if nil != err {
		return nil, err
	}
	path := util.EnsureAbsolute(cfg.Directory, cfg.Name)

	var store *storage.Store
	var header *schema.Header
	readOnly := false

	// the store is a directory
	if util.EnsurePathExists(path) {
		readOnly = cfg.ReadOnly || !isWritable(path)
		store, header, err = openExisting(path, readOnly)
		if nil != err {
			corrupt := fmt.Sprintf("%s.%d.corrupt", path, time.Now().UnixNano()/int64(time.Millisecond))
			log.Criticalf("corrupt, unsupported version, or unreadable database: %q  moving to: %q  error: %s", path, corrupt, err)
			if err := os.Rename(path, corrupt); nil != err {
				log.Criticalf("failed to move corrupt database: %q  error: %s", path, err)
			}
			store = nil
		} else {
			if readOnly {
				log.Warnf("read-only hosts database: %q", path)
			}
			if store.WasMounted() {
				log.Warnf("database: %q was not closed cleanly or is in use by another process", path)
			}
		}
	}

	created := false
	if nil == store {
		store, err = storage.Create(path)
		if nil != err {
			log.Criticalf("failed to create database: %q  error: %s", path, err)
			return nil, err
		}
		header, err = schema.Initialise(store, cfg.Lists, time.Now())
		if nil != err {
			log.Criticalf("failed to initialise database: %q  error: %s", path, err)
			store.Close()
			return nil, err
		}
		readOnly = false
		created = true
	} else {
		log.Infof("found database version: %d  created: %s  lists: %v", header.Version, header.Created, header.Lists)
	}

	if 0 == len(header.Lists) {
		header.Lists = []string{DefaultList}
	}

	db := &DB{
		log:      log,
		name:     cfg.Name,
		path:     path,
		readOnly: readOnly,
		resolver: cfg.Resolver,
		store:    store,
		index:    reverse.New(store),
		header:   header,
		negative: limitedset.New(cfg.NegativeCacheSize),
		positive: newPositiveCache(expiry),
	}

	// migration completes before any other access
	codec := schema.NewManager(store, header, cfg.DeferUpgrade).Upgrade()

	if created {
		db.bootstrap(cfg.Directory)
		if cfg.ReadOnly {
			log.Warnf("replacement database: %q is read-only", path)
			db.readOnly = true
		}
	}

	log.Infof("opened: %q  version: %d  codec: %s  read only: %t", path, header.Version, codec, readOnly)
	return db, nil
}

func openExisting(path string, readOnly bool) (*storage.Store, *schema.Header, error) {
	store, err := storage.Open(path, readOnly)
	if nil != err {
		return nil, nil, err
	}
	header, err := schema.ReadHeader(store)
	if nil != err {
		store.Close()
		return nil, nil, err
	}
	return store, header, nil
}

// fill in defaults on a copy of the configuration
func (configuration *Configuration) withDefaults() (*Configuration, time.Duration, error) {
	cfg := &Configuration{}
	if nil != configuration {
		*cfg = *configuration
	}
	if "" == cfg.Name {
		cfg.Name = DefaultName
	}
	if 0 == len(cfg.Lists) {
		cfg.Lists = []string{DefaultList}
	}
	if cfg.NegativeCacheSize <= 0 {
		cfg.NegativeCacheSize = defaultNegativeCacheSize
	}
	expiry := defaultPositiveCacheExpiry
	if "" != cfg.PositiveCacheExpiry {
		d, err := time.ParseDuration(cfg.PositiveCacheExpiry)
		if nil != err {
			return nil, 0, err
		}
		expiry = d
	}
	return cfg, expiry, nil
}

// owner write permission on the database directory
func isWritable(path string) bool {
	info, err := os.Stat(path)
	if nil != err {
		return false
	}
	return 0 != info.Mode().Perm()&0200
}

// import the host lists named in the header into a new database
func (db *DB) bootstrap(directory string) {
	total := 0
	for _, list := range db.header.Lists {
		fileName := util.EnsureAbsolute(directory, list)
		if !util.EnsureFileExists(fileName) {
			continue
		}
		f, err := os.Open(fileName)
		if nil != err {
			db.log.Warnf("cannot open: %q  error: %s", fileName, err)
			continue
		}
		n, err := db.Import(f, "Imported from "+list+" file", Options{OptionList: list})
		f.Close()
		if nil != err {
			db.log.Errorf("failed to read hosts from: %q  error: %s", fileName, err)
		}
		db.log.Infof("migrating %d hosts from: %q to new hosts database", n, fileName)
		total += n
	}
	if total <= 0 {
		db.log.Warn("no host list files found, initialised hosts database with zero entries")
	}
}

// Close - close the database
//
// further calls fail softly
func (db *DB) Close() error {
	db.Lock()
	if db.closed {
		db.Unlock()
		return nil
	}
	err := db.store.Close()
	if nil != err {
		db.log.Warnf("close error: %s", err)
	}
	db.closed = true
	db.Unlock()

	db.negative.Clear()
	db.positive.clear()
	return err
}

// Name - the database name
func (db *DB) Name() string {
	return db.name
}

// Path - absolute path of the store
func (db *DB) Path() string {
	return db.path
}

// IsReadOnly - true if updates are refused
func (db *DB) IsReadOnly() bool {
	return db.readOnly
}

// Version - schema version in use
func (db *DB) Version() int {
	db.Lock()
	defer db.Unlock()
	return db.header.Version
}

// Lists - lists searched by unqualified lookups, in order
func (db *DB) Lists() []string {
	db.Lock()
	defer db.Unlock()
	return append([]string{}, db.header.Lists...)
}

// Header - copy of the database header
func (db *DB) Header() schema.Header {
	db.Lock()
	defer db.Unlock()
	return *db.header
}

// Codec - record layout for the database version
//
// lists converted by an unfinished upgrade use the current layout
func (db *DB) Codec() record.Codec {
	db.Lock()
	defer db.Unlock()
	return db.header.Codec()
}

// record layout of one list, lock must be held
func (db *DB) codecFor(list string) record.Codec {
	return db.header.CodecFor(list)
}
