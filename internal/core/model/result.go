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

package model

import "time"

// Workflow result statuses reported through the polling interface.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusError     = "error"
)

// WorkflowResult is the durable snapshot of a run: the full final state plus
// a status. One record is persisted per run, keyed by WorkflowID, and served
// by the polling interface.
type WorkflowResult struct {
	WorkflowID  string         `json:"workflow_id"`
	Status      string         `json:"status"`
	State       *WorkflowState `json:"state"`
	CompletedAt time.Time      `json:"completed_at"`
}

// NewWorkflowResult snapshots a finished run. The status is derived from the
// terminal state: a run either completed every stage or carries an error
// message, never both.
func NewWorkflowResult(state *WorkflowState) *WorkflowResult {
	status := StatusCompleted
	if state.HasError() {
		status = StatusError
	}
	return &WorkflowResult{
		WorkflowID:  state.WorkflowID,
		Status:      status,
		State:       state,
		CompletedAt: time.Now(),
	}
}
