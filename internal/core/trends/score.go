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

// Package trends holds the trend-ranking logic shared by the trend-analysis
// and movie-selection stages, and the short-TTL cache for per-title trend
// analyses. This file implements the ranking: a deterministic, side-effect
// free scoring function over a candidate's raw popularity signals.
package trends

import (
	"sort"

	"github.com/cinegenie/movie-reels/internal/core/model"
)

// Signal weights for the trending score. Ratings are normalized from the
// [0,10] source scale; review counts saturate at 1000 and social mentions at
// 10000 so a single runaway signal cannot dominate the blend.
const (
	ratingWeight   = 0.3
	reviewWeight   = 0.2
	mentionWeight  = 0.3
	recencyWeight  = 0.2
	reviewSat      = 1000.0
	mentionSat     = 10000.0
	ratingMaxScale = 10.0
)

// Score computes the trending score for one set of raw signals. The result
// is monotonic in each signal and always clipped to [0,1].
func Score(rating float64, reviewCount, socialMentions int, isRecentRelease bool) float64 {
	normRating := rating / ratingMaxScale
	if normRating < 0 {
		normRating = 0
	}
	if normRating > 1 {
		normRating = 1
	}

	reviews := float64(reviewCount) / reviewSat
	if reviews > 1 {
		reviews = 1
	}
	if reviews < 0 {
		reviews = 0
	}

	mentions := float64(socialMentions) / mentionSat
	if mentions > 1 {
		mentions = 1
	}
	if mentions < 0 {
		mentions = 0
	}

	recency := 0.0
	if isRecentRelease {
		recency = 1.0
	}

	score := ratingWeight*normRating + reviewWeight*reviews + mentionWeight*mentions + recencyWeight*recency
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Rank computes scores for every candidate and orders the slice by viral
// potential, descending. The sort is stable so candidates with equal scores
// keep their input order. The slice is modified in place and returned for
// convenience.
func Rank(candidates []*model.Candidate) []*model.Candidate {
	for _, c := range candidates {
		s := Score(c.Rating, c.ReviewCount, c.SocialMentions, c.IsRecentRelease)
		c.TrendingScore = s
		c.ViralPotential = s
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ViralPotential > candidates[j].ViralPotential
	})
	return candidates
}
