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

package stages

import (
	"context"
	"log/slog"

	"github.com/cinegenie/movie-reels/internal/core/graph"
	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/storage"
)

// MovieAnalysisStage turns collected metadata into continuation insights via
// the analyzer collaborator.
type MovieAnalysisStage struct {
	*graph.BaseStage
	analyzer  MovieAnalyzer
	artifacts storage.ArtifactSink
}

// NewMovieAnalysisStage wires the stage to its analyzer collaborator.
func NewMovieAnalysisStage(analyzer MovieAnalyzer, artifacts storage.ArtifactSink) *MovieAnalysisStage {
	return &MovieAnalysisStage{
		BaseStage: graph.NewBaseStage(StageMovieAnalysis),
		analyzer:  analyzer,
		artifacts: artifacts,
	}
}

// Execute analyzes the movie using the data-collection slot.
func (s *MovieAnalysisStage) Execute(ctx context.Context, state *model.WorkflowState) {
	state.CurrentStep = string(StageMovieAnalysis)
	slog.InfoContext(ctx, "executing movie analysis",
		"workflow_id", state.WorkflowID, "movie_title", state.MovieTitle)

	analysis, err := s.analyzer.Analyze(ctx, state.MovieTitle, state.MovieData)
	if err != nil {
		s.ErrorCounter.Add(ctx, 1)
		state.Fail("Movie analysis", err)
		return
	}

	state.MovieAnalysis = analysis
	state.AnalysisComplete = true
	s.SuccessCounter.Add(ctx, 1)
	writeArtifact(s.artifacts, state, StageMovieAnalysis, analysis)
}
