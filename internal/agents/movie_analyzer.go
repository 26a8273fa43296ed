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

package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/cinegenie/movie-reels/internal/core/model"
)

// textGenerator is the slice of the quota-aware model the generative agents
// consume, kept narrow so tests can substitute canned responses.
type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Analyst derives continuation insights for a movie: what the audience
// responded to, which threads a continuation should pull on, and the tone a
// short should strike. It renders the configured prompt template with the
// collected metadata (and trend picture when available) and requires the
// model to answer in strict JSON.
type Analyst struct {
	model  textGenerator
	tmpl   *template.Template
	trends *TrendAgent
}

// analysisPromptData is the payload handed to the analysis prompt template.
type analysisPromptData struct {
	Title  string
	Data   *model.MovieData
	Trends *model.TrendAnalysis
}

// NewAnalyst parses the prompt template and wires the analyst to its model.
// The trend agent is optional; without it prompts omit the trend section.
func NewAnalyst(generator textGenerator, promptTemplate string, trendAgent *TrendAgent) (*Analyst, error) {
	tmpl, err := template.New("movie_analysis").Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("invalid movie-analysis prompt template: %w", err)
	}
	return &Analyst{model: generator, tmpl: tmpl, trends: trendAgent}, nil
}

// Analyze renders the prompt, queries the model, and parses the response.
// A response that is not valid JSON for the expected shape is a reported
// failure; the pipeline never substitutes a default analysis for a movie it
// could not actually analyze.
func (a *Analyst) Analyze(ctx context.Context, title string, data *model.MovieData) (*model.MovieAnalysis, error) {
	promptData := analysisPromptData{Title: title, Data: data}
	if a.trends != nil {
		trendAnalysis, err := a.trends.AnalyzeTrend(ctx, title)
		if err != nil {
			// Trend context is an enrichment, not a prerequisite.
			slog.WarnContext(ctx, "trend analysis unavailable for prompt",
				"movie_title", title, "error", err)
		} else {
			promptData.Trends = trendAnalysis
		}
	}

	var prompt bytes.Buffer
	if err := a.tmpl.Execute(&prompt, promptData); err != nil {
		return nil, fmt.Errorf("failed to render movie-analysis prompt: %w", err)
	}

	response, err := a.model.GenerateText(ctx, prompt.String())
	if err != nil {
		return nil, err
	}

	analysis := &model.MovieAnalysis{}
	if err := json.Unmarshal([]byte(response), analysis); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}
	if analysis.MovieTitle == "" {
		analysis.MovieTitle = title
	}
	return analysis, nil
}
