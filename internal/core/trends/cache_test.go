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

package trends_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/core/trends"
)

// TestCacheRoundTrip verifies a stored analysis is served back while fresh
// and that title keys are case and whitespace insensitive.
func TestCacheRoundTrip(t *testing.T) {
	cache := trends.NewCache(time.Hour)
	analysis := &model.TrendAnalysis{MovieTitle: "The Last Ember", SocialMentions: 42}

	_, ok := cache.Get("The Last Ember")
	assert.False(t, ok)

	cache.Put("The Last Ember", analysis)

	got, ok := cache.Get("the  last   ember")
	assert.True(t, ok)
	assert.Same(t, analysis, got)
}

// TestCacheExpiry drives the injected clock past the TTL and verifies the
// entry stops being served. An entry aged exactly to the TTL boundary is
// already stale.
func TestCacheExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := trends.NewCacheWithClock(time.Hour, func() time.Time { return now })

	cache.Put("Quiet Harbor", &model.TrendAnalysis{MovieTitle: "Quiet Harbor"})

	now = now.Add(59 * time.Minute)
	_, ok := cache.Get("Quiet Harbor")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = cache.Get("Quiet Harbor")
	assert.False(t, ok)
}

// TestCacheOverwrite verifies Put is last-write-wins for the same title.
func TestCacheOverwrite(t *testing.T) {
	cache := trends.NewCache(time.Hour)

	cache.Put("Midnight Circuit", &model.TrendAnalysis{SocialMentions: 1})
	cache.Put("midnight circuit", &model.TrendAnalysis{SocialMentions: 2})

	got, ok := cache.Get("Midnight Circuit")
	assert.True(t, ok)
	assert.Equal(t, 2, got.SocialMentions)
}

// TestCacheConcurrentAccess hammers the cache with interleaved reads and
// writes from independent goroutines, the way concurrent workflow runs hit
// it. Run under the race detector; correctness here is the absence of data
// races plus every written title being readable afterwards.
func TestCacheConcurrentAccess(t *testing.T) {
	cache := trends.NewCache(time.Hour)
	const writers = 8
	const iterations = 50

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			title := fmt.Sprintf("Movie %d", w)
			for i := 0; i < iterations; i++ {
				cache.Put(title, &model.TrendAnalysis{MovieTitle: title, SocialMentions: i})
				if got, ok := cache.Get(title); ok {
					_ = got.SocialMentions
				}
				// Cross-read a neighbor's title to interleave lock holders.
				cache.Get(fmt.Sprintf("Movie %d", (w+1)%writers))
			}
		}(w)
	}
	wg.Wait()

	for w := 0; w < writers; w++ {
		got, ok := cache.Get(fmt.Sprintf("Movie %d", w))
		assert.True(t, ok)
		assert.Equal(t, iterations-1, got.SocialMentions)
	}
}

// TestCacheDefaultTTL verifies a non-positive TTL falls back to the default
// rather than disabling caching.
func TestCacheDefaultTTL(t *testing.T) {
	cache := trends.NewCache(0)
	cache.Put("Fallback", &model.TrendAnalysis{MovieTitle: "Fallback"})

	_, ok := cache.Get("Fallback")
	assert.True(t, ok)
}
