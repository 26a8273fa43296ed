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

// Package stages_test contains unit tests for the individual workflow
// stages, exercised against fake collaborators.
package stages_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/core/stages"
	"github.com/cinegenie/movie-reels/internal/storage"
	"github.com/cinegenie/movie-reels/internal/testutil"
)

// TestTrendAnalysisRanksCandidates verifies a successful pass stores the
// mined candidates ranked by score and flags completion.
func TestTrendAnalysisRanksCandidates(t *testing.T) {
	store := storage.NewMemoryStore()
	miner := &testutil.FakeMiner{Candidates: testutil.SampleCandidates()}
	stage := stages.NewTrendAnalysisStage(miner, store)

	state := model.NewWorkflowState("", true)
	stage.Execute(context.Background(), state)

	assert.False(t, state.HasError())
	assert.True(t, state.TrendAnalysisComplete)
	assert.Equal(t, string(stages.StageTrendAnalysis), state.CurrentStep)
	require.Len(t, state.TrendingMovies, 3)
	assert.Equal(t, "The Last Ember", state.TrendingMovies[0].Title)

	_, ok := store.StageArtifact(state.WorkflowID, string(stages.StageTrendAnalysis))
	assert.True(t, ok)
}

// TestTrendAnalysisEmptyBatchFails verifies an empty candidate list is
// recorded as a stage failure.
func TestTrendAnalysisEmptyBatchFails(t *testing.T) {
	stage := stages.NewTrendAnalysisStage(&testutil.FakeMiner{}, nil)

	state := model.NewWorkflowState("", true)
	stage.Execute(context.Background(), state)

	assert.True(t, state.HasError())
	assert.Equal(t, "Trend analysis error: no trending movies available", state.ErrorMessage)
	assert.False(t, state.TrendAnalysisComplete)
}

// TestMovieSelectionPicksTopCandidate verifies selection takes the first
// (highest ranked) candidate and overwrites the state's title.
func TestMovieSelectionPicksTopCandidate(t *testing.T) {
	stage := stages.NewMovieSelectionStage(nil)

	state := model.NewWorkflowState("", true)
	state.TrendingMovies = []*model.Candidate{
		{Title: "Winner", TrendingScore: 0.9},
		{Title: "RunnerUp", TrendingScore: 0.5},
	}
	stage.Execute(context.Background(), state)

	assert.False(t, state.HasError())
	assert.True(t, state.SelectionComplete)
	assert.Equal(t, "Winner", state.MovieTitle)
	assert.Equal(t, "Winner", state.SelectedMovie.Title)
}

// TestMovieSelectionWithoutCandidatesFails verifies selection cannot run on
// an empty batch.
func TestMovieSelectionWithoutCandidatesFails(t *testing.T) {
	stage := stages.NewMovieSelectionStage(nil)

	state := model.NewWorkflowState("", true)
	stage.Execute(context.Background(), state)

	assert.True(t, state.HasError())
	assert.False(t, state.SelectionComplete)
}

// TestDataCollectionRequiresTitle verifies the stage fails fast when no
// movie title reached it.
func TestDataCollectionRequiresTitle(t *testing.T) {
	stage := stages.NewDataCollectionStage(&testutil.FakeCollector{}, nil)

	state := model.NewWorkflowState("", false)
	stage.Execute(context.Background(), state)

	assert.True(t, state.HasError())
	assert.Equal(t, "Data collection error: no movie title provided", state.ErrorMessage)
}

// TestDataCollectionStoresMetadata verifies the collected record lands in
// the state slot.
func TestDataCollectionStoresMetadata(t *testing.T) {
	store := storage.NewMemoryStore()
	stage := stages.NewDataCollectionStage(&testutil.FakeCollector{}, store)

	state := model.NewWorkflowState("Quiet Harbor", false)
	stage.Execute(context.Background(), state)

	assert.False(t, state.HasError())
	assert.True(t, state.DataCollectionComplete)
	require.NotNil(t, state.MovieData)
	assert.Equal(t, "Quiet Harbor", state.MovieData.Title)
}

// TestStageReentryIsIdempotent verifies executing a stage twice against the
// same state with the same collaborator leaves the state exactly as the
// first pass did: the slot, completion flag, and step marker do not change
// on re-entry.
func TestStageReentryIsIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()
	stage := stages.NewDataCollectionStage(&testutil.FakeCollector{}, store)

	state := model.NewWorkflowState("Quiet Harbor", false)
	stage.Execute(context.Background(), state)

	require.False(t, state.HasError())
	require.NotNil(t, state.MovieData)
	firstData := *state.MovieData
	firstStep := state.CurrentStep

	stage.Execute(context.Background(), state)

	assert.False(t, state.HasError())
	assert.True(t, state.DataCollectionComplete)
	assert.Equal(t, firstStep, state.CurrentStep)
	assert.Equal(t, firstData, *state.MovieData)
}

// TestScriptGenerationRejectsEmptyScript verifies a script without parts is
// treated as a failure even when the generator reports success.
func TestScriptGenerationRejectsEmptyScript(t *testing.T) {
	stage := stages.NewScriptGenerationStage(&testutil.FakeScriptWriter{Empty: true}, nil)

	state := model.NewWorkflowState("Quiet Harbor", false)
	stage.Execute(context.Background(), state)

	assert.True(t, state.HasError())
	assert.Equal(t, "Script generation error: generator returned an empty script", state.ErrorMessage)
	assert.False(t, state.ScriptComplete)
	assert.Nil(t, state.ScriptData)
}

// TestUploadRejectsEmptyResults verifies an uploader that publishes nowhere
// fails the stage.
func TestUploadRejectsEmptyResults(t *testing.T) {
	stage := stages.NewUploadStage(&testutil.FakePublisher{Empty: true}, nil)

	state := model.NewWorkflowState("Quiet Harbor", false)
	stage.Execute(context.Background(), state)

	assert.True(t, state.HasError())
	assert.Equal(t, "Upload error: uploader returned no results", state.ErrorMessage)
	assert.False(t, state.UploadComplete)
}

// TestErrorHandlerPersistsRecord verifies the handler writes the failure
// record and leaves the failing step untouched.
func TestErrorHandlerPersistsRecord(t *testing.T) {
	store := storage.NewMemoryStore()
	stage := stages.NewErrorHandlerStage(store)

	state := model.NewWorkflowState("Quiet Harbor", false)
	state.CurrentStep = string(stages.StageVoiceGeneration)
	state.Fail("Voice generation", errors.New("synthesis quota exhausted"))
	stage.Execute(context.Background(), state)

	assert.Equal(t, string(stages.StageVoiceGeneration), state.CurrentStep)
	record, ok := store.GetError(state.WorkflowID)
	require.True(t, ok)
	assert.Equal(t, string(stages.StageVoiceGeneration), record.Step)
	assert.Equal(t, "Voice generation error: synthesis quota exhausted", record.Error)
}

// TestErrorHandlerToleratesNilStore verifies the handler never panics
// without a store.
func TestErrorHandlerToleratesNilStore(t *testing.T) {
	stage := stages.NewErrorHandlerStage(nil)

	state := model.NewWorkflowState("Quiet Harbor", false)
	state.Fail("Upload", errors.New("boom"))

	assert.NotPanics(t, func() {
		stage.Execute(context.Background(), state)
	})
}
