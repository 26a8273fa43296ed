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

// Package trends_test contains unit tests for the trending-score formula
// and the candidate ranking.
package trends_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/core/trends"
)

// TestScoreBounds verifies the formula's extremes: all-zero signals score
// zero, and signals at or beyond every saturation point score exactly one.
func TestScoreBounds(t *testing.T) {
	assert.Equal(t, 0.0, trends.Score(0, 0, 0, false))
	assert.InDelta(t, 1.0, trends.Score(10, 1000, 10000, true), 1e-9)

	// Signals beyond the saturation points must not push the score past one.
	assert.InDelta(t, 1.0, trends.Score(10, 50000, 2000000, true), 1e-9)
}

// TestScoreWeights verifies each component contributes its configured
// weight in isolation.
func TestScoreWeights(t *testing.T) {
	assert.InDelta(t, 0.3, trends.Score(10, 0, 0, false), 1e-9)
	assert.InDelta(t, 0.2, trends.Score(0, 1000, 0, false), 1e-9)
	assert.InDelta(t, 0.3, trends.Score(0, 0, 10000, false), 1e-9)
	assert.InDelta(t, 0.2, trends.Score(0, 0, 0, true), 1e-9)

	// Half-saturated review and mention counts contribute half their weight.
	assert.InDelta(t, 0.1, trends.Score(0, 500, 0, false), 1e-9)
	assert.InDelta(t, 0.15, trends.Score(0, 0, 5000, false), 1e-9)
}

// TestScoreMonotonic verifies that improving any single signal never lowers
// the score.
func TestScoreMonotonic(t *testing.T) {
	base := trends.Score(5, 200, 1000, false)
	assert.Greater(t, trends.Score(6, 200, 1000, false), base)
	assert.Greater(t, trends.Score(5, 400, 1000, false), base)
	assert.Greater(t, trends.Score(5, 200, 2000, false), base)
	assert.Greater(t, trends.Score(5, 200, 1000, true), base)
}

// TestRankOrdersDescending verifies that ranking populates the derived
// scores and sorts the strongest candidate first.
func TestRankOrdersDescending(t *testing.T) {
	candidates := []*model.Candidate{
		{Title: "Weak", Rating: 3, ReviewCount: 10, SocialMentions: 50},
		{Title: "Strong", Rating: 9, ReviewCount: 2000, SocialMentions: 15000, IsRecentRelease: true},
		{Title: "Middle", Rating: 7, ReviewCount: 500, SocialMentions: 3000},
	}

	ranked := trends.Rank(candidates)

	assert.Len(t, ranked, 3)
	assert.Equal(t, "Strong", ranked[0].Title)
	assert.Equal(t, "Middle", ranked[1].Title)
	assert.Equal(t, "Weak", ranked[2].Title)
	for _, c := range ranked {
		assert.Equal(t, c.TrendingScore, c.ViralPotential)
		assert.GreaterOrEqual(t, c.TrendingScore, 0.0)
		assert.LessOrEqual(t, c.TrendingScore, 1.0)
	}
}

// TestRankStableOnTies verifies that candidates with identical signals keep
// their original relative order.
func TestRankStableOnTies(t *testing.T) {
	candidates := []*model.Candidate{
		{Title: "First", Rating: 5, ReviewCount: 100, SocialMentions: 100},
		{Title: "Second", Rating: 5, ReviewCount: 100, SocialMentions: 100},
		{Title: "Third", Rating: 5, ReviewCount: 100, SocialMentions: 100},
	}

	ranked := trends.Rank(candidates)

	assert.Equal(t, "First", ranked[0].Title)
	assert.Equal(t, "Second", ranked[1].Title)
	assert.Equal(t, "Third", ranked[2].Title)
}
