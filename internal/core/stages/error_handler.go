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
	"time"

	"github.com/cinegenie/movie-reels/internal/core/graph"
	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/storage"
)

// ErrorHandlerStage is the terminal node every failed run routes to. It
// persists a standalone error record for the run and nothing else: the
// handler must never fail the workflow further, so the write is best-effort
// and any store error is swallowed after logging.
//
// Unlike the other stages it does not set CurrentStep; the step where the
// run died is exactly what callers need to read back from the result.
type ErrorHandlerStage struct {
	*graph.BaseStage
	store storage.ErrorStore
}

// NewErrorHandlerStage wires the handler to the error-record store.
func NewErrorHandlerStage(store storage.ErrorStore) *ErrorHandlerStage {
	return &ErrorHandlerStage{
		BaseStage: graph.NewBaseStage(StageErrorHandler),
		store:     store,
	}
}

// Execute persists the failure details.
func (s *ErrorHandlerStage) Execute(ctx context.Context, state *model.WorkflowState) {
	slog.ErrorContext(ctx, "workflow failed",
		"workflow_id", state.WorkflowID,
		"step", state.CurrentStep,
		"error", state.ErrorMessage)

	record := &model.ErrorRecord{
		WorkflowID: state.WorkflowID,
		Step:       state.CurrentStep,
		Error:      state.ErrorMessage,
		Timestamp:  time.Now(),
	}
	if s.store == nil {
		return
	}
	if err := s.store.SaveError(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to persist error record",
			"workflow_id", state.WorkflowID, "error", err)
	}
}
