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

// Package testutil provides fake collaborators and sample data for the test
// suite. The fakes implement the stage collaborator interfaces with canned
// results so workflow runs can be exercised end to end without any external
// service.
package testutil

import (
	"context"
	"sync/atomic"

	"github.com/cinegenie/movie-reels/internal/config"
	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/core/workflow"
)

// NewTestConfig returns a configuration with the defaults the tests assume.
func NewTestConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Application.Name = "movie-reels-test"
	cfg.Application.OutputDir = "output"
	cfg.Application.ThreadPoolSize = 2
	cfg.Trends.CacheTTLMinutes = 60
	cfg.Trends.MaxMovies = 5
	cfg.Trends.Subreddits = []string{"movies"}
	return cfg
}

// SampleCandidates returns an unranked trending batch with distinct signal
// profiles.
func SampleCandidates() []*model.Candidate {
	return []*model.Candidate{
		{Title: "Quiet Harbor", Source: "tmdb", Rating: 6.1, ReviewCount: 150, SocialMentions: 900},
		{Title: "The Last Ember", Source: "tmdb", Rating: 8.7, ReviewCount: 2400, SocialMentions: 12000, IsRecentRelease: true},
		{Title: "Midnight Circuit", Source: "tmdb", Rating: 7.4, ReviewCount: 800, SocialMentions: 4300},
	}
}

// SampleMovieData returns collected metadata for a fictional title.
func SampleMovieData(title string) *model.MovieData {
	return &model.MovieData{
		Title:       title,
		Year:        2025,
		Genres:      []string{"Science Fiction", "Thriller"},
		Director:    "R. Calloway",
		PlotSummary: "A salvage crew finds the wreck that should not exist.",
		Themes:      []string{"obsession", "grief"},
		Tone:        "tense",
	}
}

// SampleScript returns a three-beat script.
func SampleScript(title string) *model.ScriptData {
	return &model.ScriptData{
		MovieTitle:     title,
		ScriptType:     "continuation",
		StoryArc:       "The wreck was a message, not an accident.",
		TargetDuration: 60,
		Parts: []*model.ScriptPart{
			{PartNum: 1, Structure: "Hook", Text: "They told us the wreck was empty.", DurationEstimate: 15},
			{PartNum: 2, Structure: "Build", Text: "Every sensor said otherwise.", DurationEstimate: 25},
			{PartNum: 3, Structure: "Reveal", Text: "It had been waiting for a crew.", DurationEstimate: 20},
		},
	}
}

// FakeMiner implements stages.TrendMiner.
type FakeMiner struct {
	Candidates []*model.Candidate
	Err        error
	Calls      atomic.Int32
}

func (f *FakeMiner) GetTrendingMovies(_ context.Context) ([]*model.Candidate, error) {
	f.Calls.Add(1)
	return f.Candidates, f.Err
}

// FakeCollector implements stages.DataCollector.
type FakeCollector struct {
	Err error
}

func (f *FakeCollector) Collect(_ context.Context, title string) (*model.MovieData, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return SampleMovieData(title), nil
}

// FakeAnalyzer implements stages.MovieAnalyzer.
type FakeAnalyzer struct {
	Err error
}

func (f *FakeAnalyzer) Analyze(_ context.Context, title string, _ *model.MovieData) (*model.MovieAnalysis, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return &model.MovieAnalysis{
		MovieTitle:        title,
		AudienceSentiment: "positive",
		KeyThemes:         []string{"obsession"},
		ContinuationHooks: []string{"the wreck's origin"},
	}, nil
}

// FakeScriptWriter implements stages.ScriptGenerator.
type FakeScriptWriter struct {
	Err   error
	Empty bool
}

func (f *FakeScriptWriter) Generate(_ context.Context, title string, _ *model.MovieData) (*model.ScriptData, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Empty {
		return &model.ScriptData{MovieTitle: title}, nil
	}
	return SampleScript(title), nil
}

// FakeNarrator implements stages.VoiceGenerator.
type FakeNarrator struct {
	Err error
}

func (f *FakeNarrator) Generate(_ context.Context, title string, script *model.ScriptData, _ *model.MovieData) (*model.AudioData, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	audio := &model.AudioData{MovieTitle: title}
	for _, part := range script.Parts {
		audio.Tracks = append(audio.Tracks, &model.VoiceTrack{
			PartNum:  part.PartNum,
			FilePath: "/tmp/part.mp3",
			Duration: part.DurationEstimate,
		})
		audio.TotalDuration += part.DurationEstimate
	}
	return audio, nil
}

// FakeRenderer implements stages.VideoGenerator.
type FakeRenderer struct {
	Err error
}

func (f *FakeRenderer) Generate(_ context.Context, title string, _ *model.ScriptData, _ *model.MovieData, _ *model.AudioData) (*model.VideoData, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return &model.VideoData{
		MovieTitle:    title,
		VideoFiles:    []string{"/tmp/reel.mp4"},
		Resolution:    "1080x1920",
		TotalDuration: 60,
	}, nil
}

// FakePublisher implements stages.Uploader.
type FakePublisher struct {
	Err   error
	Empty bool
}

func (f *FakePublisher) Upload(_ context.Context, _ string, _ *model.VideoData, _ *model.AudioData, _ *model.ScriptData) ([]*model.UploadResult, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Empty {
		return nil, nil
	}
	return []*model.UploadResult{
		{Platform: "youtube", VideoID: "vid-123", URL: "https://www.youtube.com/watch?v=vid-123", Status: "success"},
	}, nil
}

// WorkingCollaborators returns a collaborator set whose every agent
// succeeds, seeded with the sample candidates.
func WorkingCollaborators() workflow.Collaborators {
	return workflow.Collaborators{
		TrendMiner:      &FakeMiner{Candidates: SampleCandidates()},
		DataCollector:   &FakeCollector{},
		MovieAnalyzer:   &FakeAnalyzer{},
		ScriptGenerator: &FakeScriptWriter{},
		VoiceGenerator:  &FakeNarrator{},
		VideoGenerator:  &FakeRenderer{},
		Uploader:        &FakePublisher{},
	}
}
