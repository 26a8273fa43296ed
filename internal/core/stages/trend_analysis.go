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

// Package stages provides the concrete workflow stages. This file implements
// the entry stage of every run: it asks the trend miner for current trending
// movie candidates, ranks them by computed viral potential (descending), and
// stores the ranked list. The router then branches on the run's AutoSelect
// flag: auto-selection continues to movie-selection, manual input skips
// straight to data-collection with the caller-supplied title.
package stages

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cinegenie/movie-reels/internal/core/graph"
	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/core/trends"
	"github.com/cinegenie/movie-reels/internal/storage"
)

// TrendAnalysisStage discovers and ranks trending movie candidates.
type TrendAnalysisStage struct {
	*graph.BaseStage
	miner     TrendMiner
	artifacts storage.ArtifactSink
}

// NewTrendAnalysisStage wires the stage to its trend-miner collaborator.
func NewTrendAnalysisStage(miner TrendMiner, artifacts storage.ArtifactSink) *TrendAnalysisStage {
	return &TrendAnalysisStage{
		BaseStage: graph.NewBaseStage(StageTrendAnalysis),
		miner:     miner,
		artifacts: artifacts,
	}
}

// Execute fetches and ranks trending candidates. An empty candidate list is
// treated as a failure, not a special case: every downstream auto-selection
// path depends on a non-empty ranking.
func (s *TrendAnalysisStage) Execute(ctx context.Context, state *model.WorkflowState) {
	state.CurrentStep = string(StageTrendAnalysis)
	slog.InfoContext(ctx, "executing trend analysis", "workflow_id", state.WorkflowID)

	candidates, err := s.miner.GetTrendingMovies(ctx)
	if err == nil && len(candidates) == 0 {
		err = errors.New("no trending movies available")
	}
	if err != nil {
		s.ErrorCounter.Add(ctx, 1)
		state.Fail("Trend analysis", err)
		return
	}

	state.TrendingMovies = trends.Rank(candidates)
	state.TrendAnalysisComplete = true
	s.SuccessCounter.Add(ctx, 1)
	writeArtifact(s.artifacts, state, StageTrendAnalysis, state.TrendingMovies)

	slog.InfoContext(ctx, "trend analysis complete",
		"workflow_id", state.WorkflowID, "candidates", len(state.TrendingMovies))
}
