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

// Package model_test contains unit tests for the workflow state record and
// the derived run result.
package model_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/cinegenie/movie-reels/internal/core/model"
)

// TestNewWorkflowState verifies the constructor assigns a parseable unique
// id, carries the caller's inputs, and starts with a clean error slot.
func TestNewWorkflowState(t *testing.T) {
	state := model.NewWorkflowState("The Last Ember", true)

	_, err := uuid.Parse(state.WorkflowID)
	assert.NoError(t, err)
	assert.Equal(t, "The Last Ember", state.MovieTitle)
	assert.True(t, state.AutoSelect)
	assert.Equal(t, "start", state.CurrentStep)
	assert.False(t, state.HasError())

	other := model.NewWorkflowState("The Last Ember", true)
	assert.NotEqual(t, state.WorkflowID, other.WorkflowID)
}

// TestFailFormatsErrorMessage verifies the stage-prefixed error message
// format and that HasError flips once a failure is recorded.
func TestFailFormatsErrorMessage(t *testing.T) {
	state := model.NewWorkflowState("Quiet Harbor", false)

	state.Fail("Trend analysis", errors.New("no trending movies available"))

	assert.True(t, state.HasError())
	assert.Equal(t, "Trend analysis error: no trending movies available", state.ErrorMessage)
}

// TestNewWorkflowResult verifies the result status is derived from the
// state's error slot.
func TestNewWorkflowResult(t *testing.T) {
	clean := model.NewWorkflowState("A", false)
	result := model.NewWorkflowResult(clean)
	assert.Equal(t, model.StatusCompleted, result.Status)
	assert.Equal(t, clean.WorkflowID, result.WorkflowID)
	assert.Same(t, clean, result.State)

	failed := model.NewWorkflowState("B", false)
	failed.Fail("Upload", errors.New("quota exceeded"))
	result = model.NewWorkflowResult(failed)
	assert.Equal(t, model.StatusError, result.Status)
}
