// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package namingdb

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/hostsdb/destination"
)

// upper bound on cached names before expired items are purged
const positiveCacheLimit = 1024

// recent successful lookups, name -> primary destination
//
// there is no janitor goroutine; expired items are dropped on access
// or when the cache grows past its limit
type positiveCache struct {
	cache *cache.Cache
}

func newPositiveCache(expiry time.Duration) *positiveCache {
	return &positiveCache{
		cache: cache.New(expiry, 0),
	}
}

func (c *positiveCache) get(name string) *destination.Destination {
	obj, found := c.cache.Get(name)
	if !found {
		return nil
	}
	return obj.(*destination.Destination)
}

func (c *positiveCache) put(name string, d *destination.Destination) {
	if c.cache.ItemCount() >= positiveCacheLimit {
		c.cache.DeleteExpired()
		if c.cache.ItemCount() >= positiveCacheLimit {
			c.cache.Flush()
		}
	}
	c.cache.Set(name, d, cache.DefaultExpiration)
}

func (c *positiveCache) remove(name string) {
	c.cache.Delete(name)
}

func (c *positiveCache) clear() {
	c.cache.Flush()
}
