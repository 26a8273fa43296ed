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

package storage

import (
	"context"
	"sync"

	"github.com/cinegenie/movie-reels/internal/core/model"
)

// MemoryStore is an in-memory implementation of the store interfaces, used
// by tests and available as a lightweight default when durability is not
// required.
type MemoryStore struct {
	mu        sync.RWMutex
	results   map[string]*model.WorkflowResult
	errors    map[string]*model.ErrorRecord
	artifacts map[string]map[string]any
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		results:   make(map[string]*model.WorkflowResult),
		errors:    make(map[string]*model.ErrorRecord),
		artifacts: make(map[string]map[string]any),
	}
}

// SaveResult stores or replaces the run's result record.
func (m *MemoryStore) SaveResult(_ context.Context, result *model.WorkflowResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result.WorkflowID] = result
	return nil
}

// GetResult returns the stored record or ErrNotFound.
func (m *MemoryStore) GetResult(_ context.Context, workflowID string) (*model.WorkflowResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result, ok := m.results[workflowID]
	if !ok {
		return nil, ErrNotFound
	}
	return result, nil
}

// SaveError stores the error record for a failed run.
func (m *MemoryStore) SaveError(_ context.Context, record *model.ErrorRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[record.WorkflowID] = record
	return nil
}

// GetError returns the stored error record, if any. Test helper.
func (m *MemoryStore) GetError(workflowID string) (*model.ErrorRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.errors[workflowID]
	return record, ok
}

// WriteStageArtifact records a stage artifact in memory.
func (m *MemoryStore) WriteStageArtifact(workflowID string, stage string, artifact any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.artifacts[workflowID] == nil {
		m.artifacts[workflowID] = make(map[string]any)
	}
	m.artifacts[workflowID][stage] = artifact
	return nil
}

// StageArtifact returns a recorded artifact. Test helper.
func (m *MemoryStore) StageArtifact(workflowID string, stage string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	artifact, ok := m.artifacts[workflowID][stage]
	return artifact, ok
}
