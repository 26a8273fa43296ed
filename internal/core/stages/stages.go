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

// Package stages provides the concrete workflow stages of the movie reel
// pipeline. Each stage is one node of the orchestration graph: it reads
// earlier slots from the shared state, calls its external collaborator, and
// either populates its own slot and completion flag or records the failure.
// This file defines the stage identifiers and the collaborator contracts the
// stages consume. The collaborators themselves (scrapers, analyzers,
// generators, uploader) live in internal/agents; the stages only know these
// interfaces so tests can substitute fakes.
package stages

import (
	"context"
	"log/slog"

	"github.com/cinegenie/movie-reels/internal/core/graph"
	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/storage"
)

// Stage identifiers. These are the states of the workflow state machine;
// routing decisions are made over these values.
const (
	StageTrendAnalysis    graph.StageID = "trend-analysis"
	StageMovieSelection   graph.StageID = "movie-selection"
	StageDataCollection   graph.StageID = "data-collection"
	StageMovieAnalysis    graph.StageID = "movie-analysis"
	StageScriptGeneration graph.StageID = "script-generation"
	StageVoiceGeneration  graph.StageID = "voice-generation"
	StageVideoGeneration  graph.StageID = "video-generation"
	StageUpload           graph.StageID = "upload"
	StageErrorHandler     graph.StageID = "error-handler"
)

// TrendMiner surfaces trending movie candidates across sources.
type TrendMiner interface {
	GetTrendingMovies(ctx context.Context) ([]*model.Candidate, error)
}

// DataCollector gathers metadata for a specific title.
type DataCollector interface {
	Collect(ctx context.Context, title string) (*model.MovieData, error)
}

// MovieAnalyzer derives continuation insights from collected metadata.
type MovieAnalyzer interface {
	Analyze(ctx context.Context, title string, data *model.MovieData) (*model.MovieAnalysis, error)
}

// ScriptGenerator produces a structured continuation script.
type ScriptGenerator interface {
	Generate(ctx context.Context, title string, data *model.MovieData) (*model.ScriptData, error)
}

// VoiceGenerator synthesizes narration audio for a script.
type VoiceGenerator interface {
	Generate(ctx context.Context, title string, script *model.ScriptData, data *model.MovieData) (*model.AudioData, error)
}

// VideoGenerator assembles the final reel from script and audio.
type VideoGenerator interface {
	Generate(ctx context.Context, title string, script *model.ScriptData, data *model.MovieData, audio *model.AudioData) (*model.VideoData, error)
}

// Uploader publishes the finished reel to the configured platforms.
type Uploader interface {
	Upload(ctx context.Context, title string, video *model.VideoData, audio *model.AudioData, script *model.ScriptData) ([]*model.UploadResult, error)
}

// writeArtifact persists one stage's output as an intermediate artifact.
// Best-effort: artifact files exist for audit and debugging, so a write
// failure is logged and does not fail the stage.
func writeArtifact(sink storage.ArtifactSink, state *model.WorkflowState, stage graph.StageID, artifact any) {
	if sink == nil {
		return
	}
	if err := sink.WriteStageArtifact(state.WorkflowID, string(stage), artifact); err != nil {
		slog.Warn("failed to write stage artifact", "stage", stage, "workflow_id", state.WorkflowID, "error", err)
	}
}
