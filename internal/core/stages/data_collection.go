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

// DataCollectionStage gathers metadata for the run's movie title through the
// data-collector collaborator.
type DataCollectionStage struct {
	*graph.BaseStage
	collector DataCollector
	artifacts storage.ArtifactSink
}

// NewDataCollectionStage wires the stage to its collector collaborator.
func NewDataCollectionStage(collector DataCollector, artifacts storage.ArtifactSink) *DataCollectionStage {
	return &DataCollectionStage{
		BaseStage: graph.NewBaseStage(StageDataCollection),
		collector: collector,
		artifacts: artifacts,
	}
}

// Execute collects the movie metadata. A missing title means the routing
// contract was violated upstream (manual runs must supply one, auto runs get
// one from selection) and is reported as a stage failure.
func (s *DataCollectionStage) Execute(ctx context.Context, state *model.WorkflowState) {
	state.CurrentStep = string(StageDataCollection)
	slog.InfoContext(ctx, "executing data collection",
		"workflow_id", state.WorkflowID, "movie_title", state.MovieTitle)

	if state.MovieTitle == "" {
		s.ErrorCounter.Add(ctx, 1)
		state.Fail("Data collection", errors.New("no movie title provided"))
		return
	}

	data, err := s.collector.Collect(ctx, state.MovieTitle)
	if err != nil {
		s.ErrorCounter.Add(ctx, 1)
		state.Fail("Data collection", err)
		return
	}

	state.MovieData = data
	state.DataCollectionComplete = true
	s.SuccessCounter.Add(ctx, 1)
	writeArtifact(s.artifacts, state, StageDataCollection, data)
}
