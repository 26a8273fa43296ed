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
	"errors"
	"log/slog"

	"github.com/cinegenie/movie-reels/internal/core/graph"
	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/storage"
)

// MovieSelectionStage picks the movie the rest of the pipeline works on.
// It is the only pure stage: no collaborator, just the highest-ranked
// candidate from the trend-analysis slot. The ranking is already sorted
// descending, so selection is the head of the list.
type MovieSelectionStage struct {
	*graph.BaseStage
	artifacts storage.ArtifactSink
}

// NewMovieSelectionStage constructs the selection stage.
func NewMovieSelectionStage(artifacts storage.ArtifactSink) *MovieSelectionStage {
	return &MovieSelectionStage{
		BaseStage: graph.NewBaseStage(StageMovieSelection),
		artifacts: artifacts,
	}
}

// Execute selects the top-ranked candidate and fills in the run's movie
// title. An empty trending list is a failure (the trend-analysis stage also
// guards this, but selection must not depend on that).
func (s *MovieSelectionStage) Execute(ctx context.Context, state *model.WorkflowState) {
	state.CurrentStep = string(StageMovieSelection)

	if len(state.TrendingMovies) == 0 {
		s.ErrorCounter.Add(ctx, 1)
		state.Fail("Movie selection", errors.New("no trending movies available"))
		return
	}

	selected := state.TrendingMovies[0]
	state.SelectedMovie = selected
	state.MovieTitle = selected.Title
	state.SelectionComplete = true
	s.SuccessCounter.Add(ctx, 1)
	writeArtifact(s.artifacts, state, StageMovieSelection, selected)

	slog.InfoContext(ctx, "selected movie",
		"workflow_id", state.WorkflowID,
		"movie_title", selected.Title,
		"viral_potential", selected.ViralPotential)
}
