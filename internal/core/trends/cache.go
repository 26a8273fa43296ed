// Copyright 2025 CineGenie Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package trends holds the trend-ranking logic and the trend cache.
// This file implements the cache: time-bounded, per-process memoization of
// per-title trend analyses so independent workflow runs for the same title
// within the TTL window do not repeat the expensive scrape-and-analyze pass.
//
// A cache miss is not an error; it is the normal signal for the caller to
// recompute and Put the fresh result. There is no eviction beyond
// expiry-on-read: the key space is bounded by the distinct movie titles
// processed, so a size cap is not needed. Put is last-write-wins; concurrent
// runs racing on the same title is acceptable because a slightly stale trend
// analysis is a freshness concern, not a correctness one.
package trends

import (
	"strings"
	"sync"
	"time"

	"github.com/cinegenie/movie-reels/internal/core/model"
)

// DefaultTTL is how long a cached trend analysis is served before it is
// considered stale and recomputed.
const DefaultTTL = time.Hour

type cacheEntry struct {
	analysis   *model.TrendAnalysis
	computedAt time.Time
}

// Cache is a concurrency-safe TTL cache of trend analyses keyed by
// normalized movie title.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time // Injectable clock for tests.
	entries map[string]cacheEntry
}

// NewCache creates a cache with the given TTL. A non-positive ttl falls back
// to DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// NewCacheWithClock creates a cache whose notion of "now" comes from the
// given function. Used by tests to control expiry.
func NewCacheWithClock(ttl time.Duration, now func() time.Time) *Cache {
	c := NewCache(ttl)
	c.now = now
	return c
}

// Get returns the cached analysis for the title if one exists and is within
// the TTL. The boolean reports presence; absence means the caller should
// compute fresh data and Put it back.
func (c *Cache) Get(title string) (*model.TrendAnalysis, bool) {
	key := normalizeTitle(title)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.computedAt) >= c.ttl {
		return nil, false
	}
	return entry.analysis, true
}

// Put stores an analysis for the title, overwriting any existing entry.
func (c *Cache) Put(title string, analysis *model.TrendAnalysis) {
	key := normalizeTitle(title)

	c.mu.Lock()
	c.entries[key] = cacheEntry{analysis: analysis, computedAt: c.now()}
	c.mu.Unlock()
}

// normalizeTitle folds case and collapses whitespace runs so that
// "The  Matrix" and "the matrix" share an entry.
func normalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}
