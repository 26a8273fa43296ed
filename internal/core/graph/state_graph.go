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

// Package graph provides the building blocks for the pipeline state machine.
// This file defines `StateGraph`, the engine that drives a run from the entry
// stage to a terminal node.
//
// Logic flow:
//
//  1. Run starts at the configured entry stage.
//  2. Each iteration opens an OpenTelemetry span for the current stage,
//     executes it against the shared state, and marks the span Ok or Error
//     from the state's error slot.
//  3. The stage's router then inspects the state and names the next stage.
//     A missing router or a router returning End terminates the run.
//  4. The graph is acyclic by construction, so the loop is additionally
//     bounded by the number of registered stages; exceeding that bound means
//     a mis-wired routing table and is reported as an error rather than
//     looping forever.
package graph

import (
	"context"
	"fmt"

	"github.com/cinegenie/movie-reels/internal/core/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

// StateGraph holds the directed graph of stages and routers for one workflow
// definition. A single StateGraph is built once at startup and shared by all
// runs; per-run data lives entirely in the WorkflowState.
type StateGraph struct {
	name    string
	entry   StageID
	stages  map[StageID]Stage
	routers map[StageID]Router
}

// NewStateGraph constructs an empty graph. The name is used for the run span.
func NewStateGraph(name string) *StateGraph {
	return &StateGraph{
		name:    name,
		stages:  make(map[StageID]Stage),
		routers: make(map[StageID]Router),
	}
}

// AddStage registers a stage node. Returns the graph for fluent wiring.
func (g *StateGraph) AddStage(stage Stage) *StateGraph {
	g.stages[stage.ID()] = stage
	return g
}

// AddRouter attaches the routing decision that runs after the named stage.
// A stage without a router is terminal.
func (g *StateGraph) AddRouter(after StageID, router Router) *StateGraph {
	g.routers[after] = router
	return g
}

// SetEntryPoint names the stage every run starts from.
func (g *StateGraph) SetEntryPoint(entry StageID) *StateGraph {
	g.entry = entry
	return g
}

// Run drives the state machine from the entry stage to a terminal node,
// mutating the given state in place. It returns an error only for graph
// wiring defects (unknown stage, exceeded step bound); stage-level failures
// are not errors here, they are recorded in the state and routed to the
// error handler like any other transition.
func (g *StateGraph) Run(ctx context.Context, state *model.WorkflowState) error {
	tracer := otel.Tracer(g.name)
	runCtx, runSpan := tracer.Start(ctx, fmt.Sprintf("%s_run", g.name))
	defer runSpan.End()

	current := g.entry
	// One visit per stage at most; the +1 covers the error handler, which is
	// reachable from any other node.
	maxSteps := len(g.stages) + 1

	for steps := 0; current != End; steps++ {
		if steps >= maxSteps {
			runSpan.SetStatus(codes.Error, "routing exceeded stage count")
			return fmt.Errorf("graph %s: routing exceeded %d steps at stage %q", g.name, maxSteps, current)
		}

		stage, ok := g.stages[current]
		if !ok {
			runSpan.SetStatus(codes.Error, "route to unknown stage")
			return fmt.Errorf("graph %s: route to unknown stage %q", g.name, current)
		}

		stageCtx, stageSpan := tracer.Start(runCtx, string(current))
		stage.Execute(stageCtx, state)
		if state.HasError() {
			stageSpan.SetStatus(codes.Error, state.ErrorMessage)
		} else {
			stageSpan.SetStatus(codes.Ok, "stage completed")
		}
		stageSpan.End()

		router, ok := g.routers[current]
		if !ok {
			break // Terminal stage.
		}
		current = router(state)
	}

	if state.HasError() {
		runSpan.SetStatus(codes.Error, "workflow failed")
	} else {
		runSpan.SetStatus(codes.Ok, "workflow completed")
	}
	return nil
}
