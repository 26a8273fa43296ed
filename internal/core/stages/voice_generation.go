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

// VoiceGenerationStage synthesizes narration audio for the generated script
// through the voice-generator collaborator.
type VoiceGenerationStage struct {
	*graph.BaseStage
	generator VoiceGenerator
	artifacts storage.ArtifactSink
}

// NewVoiceGenerationStage wires the stage to its generator collaborator.
func NewVoiceGenerationStage(generator VoiceGenerator, artifacts storage.ArtifactSink) *VoiceGenerationStage {
	return &VoiceGenerationStage{
		BaseStage: graph.NewBaseStage(StageVoiceGeneration),
		generator: generator,
		artifacts: artifacts,
	}
}

// Execute synthesizes the narration audio.
func (s *VoiceGenerationStage) Execute(ctx context.Context, state *model.WorkflowState) {
	state.CurrentStep = string(StageVoiceGeneration)
	slog.InfoContext(ctx, "executing voice generation",
		"workflow_id", state.WorkflowID, "movie_title", state.MovieTitle)

	audio, err := s.generator.Generate(ctx, state.MovieTitle, state.ScriptData, state.MovieData)
	if err != nil {
		s.ErrorCounter.Add(ctx, 1)
		state.Fail("Voice generation", err)
		return
	}

	state.AudioData = audio
	state.AudioComplete = true
	s.SuccessCounter.Add(ctx, 1)
	writeArtifact(s.artifacts, state, StageVoiceGeneration, audio)
}
