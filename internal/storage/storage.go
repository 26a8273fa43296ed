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

// Package storage defines the injected persistence collaborators for the
// workflow engine. Result and error records are written through these
// interfaces rather than process-global caches so that tests can substitute
// fakes and multiple orchestrator instances can coexist safely.
package storage

import (
	"context"
	"errors"

	"github.com/cinegenie/movie-reels/internal/core/model"
)

// ErrNotFound is returned by ResultStore.GetResult for unknown workflow IDs.
var ErrNotFound = errors.New("storage: workflow result not found")

// ResultStore persists one WorkflowResult per run, keyed by workflow ID.
// SaveResult overwrites: the orchestrator writes a "running" record at start
// and replaces it with the terminal snapshot at completion.
type ResultStore interface {
	SaveResult(ctx context.Context, result *model.WorkflowResult) error
	GetResult(ctx context.Context, workflowID string) (*model.WorkflowResult, error)
}

// ErrorStore persists the standalone error record the error handler writes
// for a failed run.
type ErrorStore interface {
	SaveError(ctx context.Context, record *model.ErrorRecord) error
}

// ArtifactSink receives per-stage intermediate artifacts. Writes are
// best-effort debugging aids; stages log and continue when a write fails.
type ArtifactSink interface {
	WriteStageArtifact(workflowID string, stage string, artifact any) error
}
