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

package workflow

import (
	"github.com/cinegenie/movie-reels/internal/core/graph"
	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/core/stages"
)

// NextStage is the complete routing table for the movie-reel pipeline. It is
// a pure function of the stage that just ran, whether the state carries an
// error, and the auto-select flag; nothing else may influence routing.
//
// Any error routes to the error handler, which is itself terminal. The only
// branch on the happy path follows trend analysis: auto-select runs pick the
// top candidate via movie selection, manual runs go straight to data
// collection for the caller-provided title.
func NextStage(current graph.StageID, hasError, autoSelect bool) graph.StageID {
	if current == stages.StageErrorHandler {
		return graph.End
	}
	if hasError {
		return stages.StageErrorHandler
	}

	switch current {
	case stages.StageTrendAnalysis:
		if autoSelect {
			return stages.StageMovieSelection
		}
		return stages.StageDataCollection
	case stages.StageMovieSelection:
		return stages.StageDataCollection
	case stages.StageDataCollection:
		return stages.StageMovieAnalysis
	case stages.StageMovieAnalysis:
		return stages.StageScriptGeneration
	case stages.StageScriptGeneration:
		return stages.StageVoiceGeneration
	case stages.StageVoiceGeneration:
		return stages.StageVideoGeneration
	case stages.StageVideoGeneration:
		return stages.StageUpload
	case stages.StageUpload:
		return graph.End
	default:
		return graph.End
	}
}

// routerFor adapts the routing table into the per-stage router the graph
// expects.
func routerFor(current graph.StageID) graph.Router {
	return func(state *model.WorkflowState) graph.StageID {
		return NextStage(current, state.HasError(), state.AutoSelect)
	}
}
