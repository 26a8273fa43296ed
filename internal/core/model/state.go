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

// Package model defines the core data structures for the application.
// This file defines `WorkflowState`, the single mutable record threaded
// through every stage of a pipeline run.
//
// The state is a strongly-typed record rather than a property bag: each stage
// owns exactly one result slot and one completion flag. Slots start empty
// (nil) and are populated at most once per run by their producing stage;
// completion flags only ever transition false -> true. A stage that fails
// leaves its slot empty and records the failure in ErrorMessage instead, which
// short-circuits all subsequent routing to the error handler.
package model

import (
	"fmt"

	"github.com/google/uuid"
)

// WorkflowState is the shared state for one pipeline run. It is created once
// per run, owned exclusively by that run, and mutated in place by exactly one
// stage at a time. Independent runs never share a WorkflowState.
type WorkflowState struct {
	// Inputs, fixed at creation.
	WorkflowID string `json:"workflow_id"`
	MovieTitle string `json:"movie_title,omitempty"` // May be empty; filled in by movie-selection when AutoSelect is set.
	AutoSelect bool   `json:"auto_select"`

	// Per-stage result slots. Absent (nil/empty) until the producing stage runs.
	TrendingMovies []*Candidate    `json:"trending_movies,omitempty"`
	SelectedMovie  *Candidate      `json:"selected_movie,omitempty"`
	MovieData      *MovieData      `json:"movie_data,omitempty"`
	MovieAnalysis  *MovieAnalysis  `json:"movie_analysis,omitempty"`
	ScriptData     *ScriptData     `json:"script_data,omitempty"`
	AudioData      *AudioData      `json:"audio_data,omitempty"`
	VideoData      *VideoData      `json:"video_data,omitempty"`
	UploadResults  []*UploadResult `json:"upload_results,omitempty"`

	// Per-stage completion flags, monotonic false -> true.
	TrendAnalysisComplete  bool `json:"trend_analysis_complete"`
	SelectionComplete      bool `json:"selection_complete"`
	DataCollectionComplete bool `json:"data_collection_complete"`
	AnalysisComplete       bool `json:"analysis_complete"`
	ScriptComplete         bool `json:"script_complete"`
	AudioComplete          bool `json:"audio_complete"`
	VideoComplete          bool `json:"video_complete"`
	UploadComplete         bool `json:"upload_complete"`

	// Workflow control.
	CurrentStep  string `json:"current_step"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// NewWorkflowState creates the state for a fresh run with a newly generated
// workflow ID. movieTitle may be empty when autoSelect is true.
func NewWorkflowState(movieTitle string, autoSelect bool) *WorkflowState {
	return &WorkflowState{
		WorkflowID:  uuid.NewString(),
		MovieTitle:  movieTitle,
		AutoSelect:  autoSelect,
		CurrentStep: "start",
	}
}

// Fail records a stage failure. The stage name is kept in CurrentStep by the
// stage itself before doing any work, so the caller can always tell where a
// run died. Once set, ErrorMessage is never cleared for the lifetime of the
// run.
func (s *WorkflowState) Fail(stage string, err error) {
	s.ErrorMessage = fmt.Sprintf("%s error: %v", stage, err)
}

// HasError reports whether any stage has recorded a failure.
func (s *WorkflowState) HasError() bool {
	return s.ErrorMessage != ""
}
