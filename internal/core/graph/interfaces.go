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

// Package graph provides the building blocks for the pipeline state machine:
// stages, routers and the graph that drives them. This file defines the core
// interfaces and identifiers that govern the behavior of all components.
//
// A workflow is a directed acyclic graph of named stages. After each stage
// executes against the shared WorkflowState, the stage's router inspects the
// state and names the next stage, routes to the error handler, or terminates
// the run. Keeping stages and routers as small separate units keeps both
// independently testable.
package graph

import (
	"context"

	"github.com/cinegenie/movie-reels/internal/core/model"
)

// StageID names one node of the workflow graph.
type StageID string

// End is the distinguished terminal identifier. A router returning End stops
// the run; no stage is ever registered under it.
const End StageID = "__end__"

// Stage is an atomic unit of work in the workflow graph: a single external
// service interaction plus a state update. A stage must never panic or return
// control abnormally because of a collaborator failure; it converts any
// failure into the state's error slot and returns normally.
type Stage interface {
	// ID returns the unique identifier of the stage, used for routing,
	// logging and telemetry.
	ID() StageID

	// Execute runs the stage against the shared state. Implementations set
	// state.CurrentStep on entry, then either populate their result slot and
	// completion flag or record a failure via state.Fail.
	Execute(ctx context.Context, state *model.WorkflowState)
}

// Router selects the next stage after one completes. Routers must be pure:
// the decision is a deterministic function of the state alone, with no side
// effects, so that the same state always yields the same route.
type Router func(state *model.WorkflowState) StageID
