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

// Package storage defines the injected persistence collaborators.
// This file implements the filesystem-backed store used in production. Layout
// under the configured root directory:
//
//	workflow_results_<workflowId>.json   one terminal (or running) record per run
//	error_<workflowId>.json              standalone error record for failed runs
//	<workflowId>/<stage>.json            per-stage intermediate artifacts
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cinegenie/movie-reels/internal/core/model"
)

// FileStore persists records as pretty-printed JSON documents under a root
// directory. Each run writes to distinct file names, so no cross-run locking
// is needed.
type FileStore struct {
	root string
}

// NewFileStore creates the root directory if needed and returns the store.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", root, err)
	}
	return &FileStore{root: root}, nil
}

// SaveResult writes (or replaces) the run's result record.
func (f *FileStore) SaveResult(_ context.Context, result *model.WorkflowResult) error {
	path := filepath.Join(f.root, fmt.Sprintf("workflow_results_%s.json", result.WorkflowID))
	return writeJSON(path, result)
}

// GetResult loads the result record for the given workflow ID.
func (f *FileStore) GetResult(_ context.Context, workflowID string) (*model.WorkflowResult, error) {
	path := filepath.Join(f.root, fmt.Sprintf("workflow_results_%s.json", workflowID))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read result %s: %w", workflowID, err)
	}
	out := &model.WorkflowResult{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", workflowID, err)
	}
	return out, nil
}

// SaveError writes the standalone error record for a failed run.
func (f *FileStore) SaveError(_ context.Context, record *model.ErrorRecord) error {
	path := filepath.Join(f.root, fmt.Sprintf("error_%s.json", record.WorkflowID))
	return writeJSON(path, record)
}

// WriteStageArtifact writes one stage's output under the run's directory.
func (f *FileStore) WriteStageArtifact(workflowID string, stage string, artifact any) error {
	dir := filepath.Join(f.root, workflowID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create run dir %s: %w", dir, err)
	}
	return writeJSON(filepath.Join(dir, stage+".json"), artifact)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
