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

// ScriptGenerationStage produces the continuation script through the
// script-generator collaborator. The generator's contract requires a
// well-formed script or an error. A script with no parts is unusable by the
// voice and video stages, so it is rejected here rather than silently passed
// downstream.
type ScriptGenerationStage struct {
	*graph.BaseStage
	generator ScriptGenerator
	artifacts storage.ArtifactSink
}

// NewScriptGenerationStage wires the stage to its generator collaborator.
func NewScriptGenerationStage(generator ScriptGenerator, artifacts storage.ArtifactSink) *ScriptGenerationStage {
	return &ScriptGenerationStage{
		BaseStage: graph.NewBaseStage(StageScriptGeneration),
		generator: generator,
		artifacts: artifacts,
	}
}

// Execute generates the script from the collected movie data.
func (s *ScriptGenerationStage) Execute(ctx context.Context, state *model.WorkflowState) {
	state.CurrentStep = string(StageScriptGeneration)
	slog.InfoContext(ctx, "executing script generation",
		"workflow_id", state.WorkflowID, "movie_title", state.MovieTitle)

	script, err := s.generator.Generate(ctx, state.MovieTitle, state.MovieData)
	if err == nil && (script == nil || len(script.Parts) == 0) {
		err = errors.New("generator returned an empty script")
	}
	if err != nil {
		s.ErrorCounter.Add(ctx, 1)
		state.Fail("Script generation", err)
		return
	}

	state.ScriptData = script
	state.ScriptComplete = true
	s.SuccessCounter.Add(ctx, 1)
	writeArtifact(s.artifacts, state, StageScriptGeneration, script)
}
