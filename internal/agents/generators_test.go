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
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegenie/movie-reels/internal/core/model"
)

// fakeTextGenerator returns a canned response and records the prompt it was
// asked to complete.
type fakeTextGenerator struct {
	response string
	err      error
	prompt   string
}

func (f *fakeTextGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func sampleData() *model.MovieData {
	return &model.MovieData{
		Title:       "The Last Ember",
		PlotSummary: "A salvage crew finds the wreck that should not exist.",
		Genres:      []string{"Science Fiction"},
	}
}

// TestAnalystParsesResponse verifies the prompt is rendered from the
// template and a well-formed JSON answer becomes the analysis record.
func TestAnalystParsesResponse(t *testing.T) {
	generator := &fakeTextGenerator{
		response: `{"movie_title":"The Last Ember","audience_sentiment":"positive","key_themes":["obsession"]}`,
	}
	analyst, err := NewAnalyst(generator, `Analyze {{ .Title }}: {{ .Data.PlotSummary }}`, nil)
	require.NoError(t, err)

	analysis, err := analyst.Analyze(context.Background(), "The Last Ember", sampleData())

	require.NoError(t, err)
	assert.Equal(t, "The Last Ember", analysis.MovieTitle)
	assert.Equal(t, "positive", analysis.AudienceSentiment)
	assert.Equal(t, []string{"obsession"}, analysis.KeyThemes)
	assert.Contains(t, generator.prompt, "Analyze The Last Ember")
	assert.Contains(t, generator.prompt, "salvage crew")
}

// TestAnalystRejectsMalformedJSON verifies a non-JSON model answer is a
// reported failure, never a default analysis.
func TestAnalystRejectsMalformedJSON(t *testing.T) {
	generator := &fakeTextGenerator{response: "The movie is great, everyone loves it."}
	analyst, err := NewAnalyst(generator, `Analyze {{ .Title }}`, nil)
	require.NoError(t, err)

	analysis, err := analyst.Analyze(context.Background(), "The Last Ember", sampleData())

	assert.Nil(t, analysis)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed analysis response")
}

// TestAnalystPropagatesModelError verifies generation failures surface
// unchanged.
func TestAnalystPropagatesModelError(t *testing.T) {
	generator := &fakeTextGenerator{err: errors.New("quota exhausted")}
	analyst, err := NewAnalyst(generator, `Analyze {{ .Title }}`, nil)
	require.NoError(t, err)

	_, err = analyst.Analyze(context.Background(), "The Last Ember", sampleData())
	assert.ErrorContains(t, err, "quota exhausted")
}

// TestNewAnalystRejectsBadTemplate verifies template errors fail at
// construction, not at run time.
func TestNewAnalystRejectsBadTemplate(t *testing.T) {
	_, err := NewAnalyst(&fakeTextGenerator{}, `{{ .Title `, nil)
	assert.Error(t, err)
}

// TestScriptWriterParsesResponse verifies a well-formed script answer is
// decoded with its parts in place.
func TestScriptWriterParsesResponse(t *testing.T) {
	generator := &fakeTextGenerator{
		response: `{
			"movie_title": "The Last Ember",
			"script_type": "continuation",
			"story_arc": "The wreck was a message.",
			"target_duration": 60,
			"parts": [
				{"part_num": 1, "structure": "Hook", "text": "They told us the wreck was empty."},
				{"part_num": 2, "structure": "Reveal", "text": "It had been waiting."}
			]
		}`,
	}
	writer, err := NewScriptWriter(generator, `Write a script for {{ .Title }}`)
	require.NoError(t, err)

	script, err := writer.Generate(context.Background(), "The Last Ember", sampleData())

	require.NoError(t, err)
	assert.Equal(t, "continuation", script.ScriptType)
	require.Len(t, script.Parts, 2)
	assert.Equal(t, "Hook", script.Parts[0].Structure)
}

// TestScriptWriterRejectsEmptyParts verifies a syntactically valid script
// without beats is still a failure.
func TestScriptWriterRejectsEmptyParts(t *testing.T) {
	generator := &fakeTextGenerator{response: `{"movie_title":"The Last Ember","parts":[]}`}
	writer, err := NewScriptWriter(generator, `Write a script for {{ .Title }}`)
	require.NoError(t, err)

	script, err := writer.Generate(context.Background(), "The Last Ember", sampleData())

	assert.Nil(t, script)
	assert.ErrorContains(t, err, "has no parts")
}

// TestScriptWriterRejectsMalformedJSON mirrors the analyst contract: prose
// answers are failures.
func TestScriptWriterRejectsMalformedJSON(t *testing.T) {
	generator := &fakeTextGenerator{response: "INT. WRECK - NIGHT"}
	writer, err := NewScriptWriter(generator, `Write a script for {{ .Title }}`)
	require.NoError(t, err)

	_, err = writer.Generate(context.Background(), "The Last Ember", sampleData())
	assert.ErrorContains(t, err, "malformed script response")
}

// TestSlugify verifies the output-directory naming rules.
func TestSlugify(t *testing.T) {
	assert.Equal(t, "the-last-ember", slugify("The Last Ember"))
	assert.Equal(t, "mad-max-fury-road", slugify("Mad Max: Fury Road!"))
	assert.Equal(t, "blade-runner-2049", slugify("  Blade Runner 2049  "))
	assert.Equal(t, "", slugify("!!!"))
}

// TestMovieTitleFromTrailer verifies marketing boilerplate is stripped from
// YouTube trailer titles.
func TestMovieTitleFromTrailer(t *testing.T) {
	assert.Equal(t, "The Last Ember", movieTitleFromTrailer("The Last Ember | Official Trailer (2026)"))
	assert.Equal(t, "Quiet Harbor", movieTitleFromTrailer("Quiet Harbor Official Teaser"))
	assert.Equal(t, "Midnight Circuit", movieTitleFromTrailer("Midnight Circuit - Final Trailer"))
	assert.Equal(t, "", movieTitleFromTrailer("Official Trailer"))
}

// TestReleaseYear verifies year extraction from TMDB release dates.
func TestReleaseYear(t *testing.T) {
	assert.Equal(t, 2025, releaseYear("2025-06-01"))
	assert.Equal(t, 0, releaseYear(""))
	assert.Equal(t, 0, releaseYear("soon"))
}
