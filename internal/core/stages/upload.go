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

// UploadStage publishes the finished reel through the uploader collaborator.
// It is the last working stage of a run; its router terminates the workflow
// on success.
type UploadStage struct {
	*graph.BaseStage
	uploader  Uploader
	artifacts storage.ArtifactSink
}

// NewUploadStage wires the stage to its uploader collaborator.
func NewUploadStage(uploader Uploader, artifacts storage.ArtifactSink) *UploadStage {
	return &UploadStage{
		BaseStage: graph.NewBaseStage(StageUpload),
		uploader:  uploader,
		artifacts: artifacts,
	}
}

// Execute uploads the reel to every configured platform. An empty result
// list means nothing was published and counts as a failure.
func (s *UploadStage) Execute(ctx context.Context, state *model.WorkflowState) {
	state.CurrentStep = string(StageUpload)
	slog.InfoContext(ctx, "executing upload",
		"workflow_id", state.WorkflowID, "movie_title", state.MovieTitle)

	results, err := s.uploader.Upload(ctx, state.MovieTitle, state.VideoData, state.AudioData, state.ScriptData)
	if err == nil && len(results) == 0 {
		err = errors.New("uploader returned no results")
	}
	if err != nil {
		s.ErrorCounter.Add(ctx, 1)
		state.Fail("Upload", err)
		return
	}

	state.UploadResults = results
	state.UploadComplete = true
	s.SuccessCounter.Add(ctx, 1)
	writeArtifact(s.artifacts, state, StageUpload, results)

	slog.InfoContext(ctx, "upload complete",
		"workflow_id", state.WorkflowID, "platforms", len(results))
}
