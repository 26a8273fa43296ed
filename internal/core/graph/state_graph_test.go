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

// Package graph_test exercises the state-machine engine with small
// hand-built graphs.
package graph_test

import (
	"context"
	"errors"
	"testing"

	"github.com/zeebo/assert"

	"github.com/cinegenie/movie-reels/internal/core/graph"
	"github.com/cinegenie/movie-reels/internal/core/model"
)

// recordingStage appends its id to the shared trace so tests can assert the
// exact path a run took.
type recordingStage struct {
	*graph.BaseStage
	trace *[]graph.StageID
	fail  bool
}

func newRecordingStage(id graph.StageID, trace *[]graph.StageID, fail bool) *recordingStage {
	return &recordingStage{BaseStage: graph.NewBaseStage(id), trace: trace, fail: fail}
}

func (s *recordingStage) Execute(_ context.Context, state *model.WorkflowState) {
	*s.trace = append(*s.trace, s.ID())
	if s.fail {
		state.Fail(string(s.ID()), errors.New("boom"))
	}
}

// linearRouter routes to next unless the state carries an error, in which
// case it terminates.
func linearRouter(next graph.StageID) graph.Router {
	return func(state *model.WorkflowState) graph.StageID {
		if state.HasError() {
			return graph.End
		}
		return next
	}
}

func TestRunVisitsStagesInOrder(t *testing.T) {
	var trace []graph.StageID
	g := graph.NewStateGraph("test").
		AddStage(newRecordingStage("a", &trace, false)).
		AddStage(newRecordingStage("b", &trace, false)).
		AddStage(newRecordingStage("c", &trace, false)).
		SetEntryPoint("a")
	g.AddRouter("a", linearRouter("b"))
	g.AddRouter("b", linearRouter("c"))
	g.AddRouter("c", linearRouter(graph.End))

	state := model.NewWorkflowState("x", false)
	err := g.Run(context.Background(), state)

	assert.NoError(t, err)
	assert.DeepEqual(t, []graph.StageID{"a", "b", "c"}, trace)
	assert.False(t, state.HasError())
}

func TestRunStopsAtStageWithoutRouter(t *testing.T) {
	var trace []graph.StageID
	g := graph.NewStateGraph("test").
		AddStage(newRecordingStage("a", &trace, false)).
		AddStage(newRecordingStage("b", &trace, false)).
		SetEntryPoint("a")
	g.AddRouter("a", linearRouter("b"))
	// "b" has no router: it is terminal.

	err := g.Run(context.Background(), model.NewWorkflowState("x", false))

	assert.NoError(t, err)
	assert.DeepEqual(t, []graph.StageID{"a", "b"}, trace)
}

func TestRunRoutesOnError(t *testing.T) {
	var trace []graph.StageID
	g := graph.NewStateGraph("test").
		AddStage(newRecordingStage("work", &trace, true)).
		AddStage(newRecordingStage("handler", &trace, false)).
		SetEntryPoint("work")
	g.AddRouter("work", func(state *model.WorkflowState) graph.StageID {
		if state.HasError() {
			return "handler"
		}
		return graph.End
	})

	state := model.NewWorkflowState("x", false)
	err := g.Run(context.Background(), state)

	assert.NoError(t, err)
	assert.DeepEqual(t, []graph.StageID{"work", "handler"}, trace)
	assert.True(t, state.HasError())
}

func TestRunRejectsUnknownStage(t *testing.T) {
	var trace []graph.StageID
	g := graph.NewStateGraph("test").
		AddStage(newRecordingStage("a", &trace, false)).
		SetEntryPoint("a")
	g.AddRouter("a", linearRouter("missing"))

	err := g.Run(context.Background(), model.NewWorkflowState("x", false))
	assert.Error(t, err)
}

func TestRunBoundsMiswiredCycles(t *testing.T) {
	var trace []graph.StageID
	g := graph.NewStateGraph("test").
		AddStage(newRecordingStage("a", &trace, false)).
		AddStage(newRecordingStage("b", &trace, false)).
		SetEntryPoint("a")
	g.AddRouter("a", linearRouter("b"))
	g.AddRouter("b", linearRouter("a")) // Deliberate cycle.

	err := g.Run(context.Background(), model.NewWorkflowState("x", false))
	assert.Error(t, err)
}
