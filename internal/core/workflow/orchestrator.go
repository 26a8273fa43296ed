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

// Package workflow assembles the movie-reel pipeline stages into a routed
// state graph and drives runs through it. The orchestrator owns run
// lifecycle: it creates the state record, executes the graph, and persists
// the final result so callers can poll for it by workflow id.
package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/cinegenie/movie-reels/internal/core/graph"
	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/core/stages"
	"github.com/cinegenie/movie-reels/internal/core/trends"
	"github.com/cinegenie/movie-reels/internal/storage"
)

// Collaborators bundles the stage dependencies the orchestrator wires into
// the graph. Every field is required except where a stage tolerates nil.
type Collaborators struct {
	TrendMiner      stages.TrendMiner
	DataCollector   stages.DataCollector
	MovieAnalyzer   stages.MovieAnalyzer
	ScriptGenerator stages.ScriptGenerator
	VoiceGenerator  stages.VoiceGenerator
	VideoGenerator  stages.VideoGenerator
	Uploader        stages.Uploader
}

// Orchestrator runs movie-reel workflows through the stage graph and
// persists their results.
type Orchestrator struct {
	graph      *graph.StateGraph
	miner      stages.TrendMiner
	results    storage.ResultStore
	runTimeout time.Duration
}

// NewOrchestrator builds the full pipeline graph from the given
// collaborators and stores. runTimeout bounds a single run end to end; zero
// disables the bound.
func NewOrchestrator(
	c Collaborators,
	results storage.ResultStore,
	errs storage.ErrorStore,
	artifacts storage.ArtifactSink,
	runTimeout time.Duration,
) *Orchestrator {
	g := graph.NewStateGraph("movie-reel").
		AddStage(stages.NewTrendAnalysisStage(c.TrendMiner, artifacts)).
		AddStage(stages.NewMovieSelectionStage(artifacts)).
		AddStage(stages.NewDataCollectionStage(c.DataCollector, artifacts)).
		AddStage(stages.NewMovieAnalysisStage(c.MovieAnalyzer, artifacts)).
		AddStage(stages.NewScriptGenerationStage(c.ScriptGenerator, artifacts)).
		AddStage(stages.NewVoiceGenerationStage(c.VoiceGenerator, artifacts)).
		AddStage(stages.NewVideoGenerationStage(c.VideoGenerator, artifacts)).
		AddStage(stages.NewUploadStage(c.Uploader, artifacts)).
		AddStage(stages.NewErrorHandlerStage(errs)).
		SetEntryPoint(stages.StageTrendAnalysis)

	for _, id := range []graph.StageID{
		stages.StageTrendAnalysis,
		stages.StageMovieSelection,
		stages.StageDataCollection,
		stages.StageMovieAnalysis,
		stages.StageScriptGeneration,
		stages.StageVoiceGeneration,
		stages.StageVideoGeneration,
		stages.StageUpload,
		stages.StageErrorHandler,
	} {
		g.AddRouter(id, routerFor(id))
	}

	return &Orchestrator{
		graph:      g,
		miner:      c.TrendMiner,
		results:    results,
		runTimeout: runTimeout,
	}
}

// Run executes a workflow synchronously and returns the final result. A run
// that fails inside a stage still returns a result (with error status); the
// returned error is reserved for graph wiring defects and result
// persistence failures.
func (o *Orchestrator) Run(ctx context.Context, movieTitle string, autoSelect bool) (*model.WorkflowResult, error) {
	state := model.NewWorkflowState(movieTitle, autoSelect)
	return o.run(ctx, state)
}

// Start launches a workflow in the background and returns its id
// immediately. A running placeholder result is persisted first so polls for
// the id never race the goroutine.
func (o *Orchestrator) Start(ctx context.Context, movieTitle string, autoSelect bool) (string, error) {
	state := model.NewWorkflowState(movieTitle, autoSelect)

	placeholder := &model.WorkflowResult{
		WorkflowID: state.WorkflowID,
		Status:     model.StatusRunning,
		State: &model.WorkflowState{
			WorkflowID:  state.WorkflowID,
			MovieTitle:  state.MovieTitle,
			AutoSelect:  state.AutoSelect,
			CurrentStep: state.CurrentStep,
		},
	}
	if err := o.results.SaveResult(ctx, placeholder); err != nil {
		return "", err
	}

	// The run must outlive the request that started it.
	bg := context.WithoutCancel(ctx)
	go func() {
		if _, err := o.run(bg, state); err != nil {
			slog.Error("background workflow run failed",
				"workflow_id", state.WorkflowID, "error", err)
		}
	}()

	return state.WorkflowID, nil
}

// Result returns the stored result for a workflow id. Callers get
// storage.ErrNotFound for unknown ids.
func (o *Orchestrator) Result(ctx context.Context, workflowID string) (*model.WorkflowResult, error) {
	return o.results.GetResult(ctx, workflowID)
}

// maxTrendingResults bounds the list served to API callers.
const maxTrendingResults = 10

// TrendingMovies exposes the top ranked candidates outside a workflow run,
// for callers that want to inspect trends before starting one.
func (o *Orchestrator) TrendingMovies(ctx context.Context) ([]*model.Candidate, error) {
	candidates, err := o.miner.GetTrendingMovies(ctx)
	if err != nil {
		return nil, err
	}
	ranked := trends.Rank(candidates)
	if len(ranked) > maxTrendingResults {
		ranked = ranked[:maxTrendingResults]
	}
	return ranked, nil
}

func (o *Orchestrator) run(ctx context.Context, state *model.WorkflowState) (*model.WorkflowResult, error) {
	if o.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.runTimeout)
		defer cancel()
	}

	slog.InfoContext(ctx, "starting workflow",
		"workflow_id", state.WorkflowID,
		"movie_title", state.MovieTitle,
		"auto_select", state.AutoSelect)

	if err := o.graph.Run(ctx, state); err != nil {
		return nil, err
	}

	result := model.NewWorkflowResult(state)
	if err := o.results.SaveResult(ctx, result); err != nil {
		return result, err
	}

	slog.InfoContext(ctx, "workflow finished",
		"workflow_id", state.WorkflowID, "status", result.Status)
	return result, nil
}
