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

// VideoGenerationStage assembles the final reel from the script and audio
// slots through the video-generator collaborator.
type VideoGenerationStage struct {
	*graph.BaseStage
	generator VideoGenerator
	artifacts storage.ArtifactSink
}

// NewVideoGenerationStage wires the stage to its generator collaborator.
func NewVideoGenerationStage(generator VideoGenerator, artifacts storage.ArtifactSink) *VideoGenerationStage {
	return &VideoGenerationStage{
		BaseStage: graph.NewBaseStage(StageVideoGeneration),
		generator: generator,
		artifacts: artifacts,
	}
}

// Execute generates the reel video.
func (s *VideoGenerationStage) Execute(ctx context.Context, state *model.WorkflowState) {
	state.CurrentStep = string(StageVideoGeneration)
	slog.InfoContext(ctx, "executing video generation",
		"workflow_id", state.WorkflowID, "movie_title", state.MovieTitle)

	video, err := s.generator.Generate(ctx, state.MovieTitle, state.ScriptData, state.MovieData, state.AudioData)
	if err != nil {
		s.ErrorCounter.Add(ctx, 1)
		state.Fail("Video generation", err)
		return
	}

	state.VideoData = video
	state.VideoComplete = true
	s.SuccessCounter.Add(ctx, 1)
	writeArtifact(s.artifacts, state, StageVideoGeneration, video)
}
