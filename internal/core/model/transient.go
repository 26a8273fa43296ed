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

// Package model defines the core data structures for the application.
// This file contains the per-stage payload types that flow through the
// workflow state. They are produced by the collaborator agents (scrapers,
// analyzers, generators, uploader) and consumed by downstream stages; each is
// also serialized as an intermediate artifact for audit and debugging.
package model

import "time"

// Candidate is one trending-movie entry: the raw popularity signals gathered
// from a single source plus the derived ranking scores. TrendingScore and
// ViralPotential are computed by a pure ranking function over the raw signals
// and are zero until the trend-analysis stage ranks the batch.
type Candidate struct {
	Title           string  `json:"title"`
	Source          string  `json:"source"` // e.g. "reddit", "youtube", "tmdb"
	Rating          float64 `json:"rating"` // Normalized to [0,10].
	ReviewCount     int     `json:"review_count"`
	SocialMentions  int     `json:"social_mentions"`
	IsRecentRelease bool    `json:"is_recent_release"`
	TrendingScore   float64 `json:"trending_score"`
	ViralPotential  float64 `json:"viral_potential"`
}

// TrendAnalysis is the full per-title trend and sentiment picture produced by
// the trend miner. Entries are memoized in the trend cache for one hour.
type TrendAnalysis struct {
	MovieTitle            string             `json:"movie_title"`
	PopularityScore       float64            `json:"popularity_score"`
	SocialMentions        int                `json:"social_mentions"`
	ReviewCount           int                `json:"review_count"`
	AverageRating         float64            `json:"average_rating"`
	SentimentDistribution map[string]float64 `json:"sentiment_distribution,omitempty"`
	TrendingTopics        []string           `json:"trending_topics,omitempty"`
	FanDesires            []string           `json:"fan_desires,omitempty"`
	ViralPotentialScore   float64            `json:"viral_potential_score"`
	AnalysisTimestamp     time.Time          `json:"analysis_timestamp"`
}

// CastMember pairs a character with the actor who plays them.
type CastMember struct {
	CharacterName string `json:"character_name"`
	ActorName     string `json:"actor_name"`
}

// MovieData holds the metadata gathered by the data-collection stage.
type MovieData struct {
	Title                string        `json:"title"`
	Year                 int           `json:"year,omitempty"`
	Genres               []string      `json:"genres,omitempty"`
	Director             string        `json:"director,omitempty"`
	Cast                 []*CastMember `json:"cast,omitempty"`
	PlotSummary          string        `json:"plot_summary"`
	Themes               []string      `json:"themes,omitempty"`
	Tone                 string        `json:"tone,omitempty"`
	EndingSummary        string        `json:"ending_summary,omitempty"`
	UnresolvedPlotPoints []string      `json:"unresolved_plot_points,omitempty"`
	RuntimeMinutes       int           `json:"runtime_minutes,omitempty"`
}

// MovieAnalysis is the analyzer's read on what a continuation should lean
// into, derived from the collected metadata and audience sentiment.
type MovieAnalysis struct {
	MovieTitle        string   `json:"movie_title"`
	AudienceSentiment string   `json:"audience_sentiment"` // "positive", "negative" or "mixed"
	KeyThemes         []string `json:"key_themes,omitempty"`
	ContinuationHooks []string `json:"continuation_hooks,omitempty"`
	TargetAudience    []string `json:"target_audience,omitempty"`
	EmotionalTone     string   `json:"emotional_tone,omitempty"`
}

// ScriptPart is one beat of the generated continuation script.
type ScriptPart struct {
	PartNum          int      `json:"part_num"`
	Structure        string   `json:"structure"` // e.g. "Hook", "Build", "Reveal"
	Text             string   `json:"text"`
	EmotionalArc     string   `json:"emotional_arc,omitempty"`
	ViralElements    []string `json:"viral_elements,omitempty"`
	DurationEstimate float64  `json:"duration_estimate,omitempty"`
}

// ScriptData is the full structured script produced by the script-generation
// stage.
type ScriptData struct {
	MovieTitle     string        `json:"movie_title"`
	ScriptType     string        `json:"script_type"` // "continuation", "prequel" or "spin-off"
	StoryArc       string        `json:"story_arc"`
	EmotionalTone  string        `json:"emotional_tone,omitempty"`
	TargetDuration int           `json:"target_duration"` // Seconds.
	Parts          []*ScriptPart `json:"parts"`
	MainCharacters []string      `json:"main_characters,omitempty"`
}

// VoiceTrack is one synthesized narration clip.
type VoiceTrack struct {
	PartNum   int     `json:"part_num"`
	FilePath  string  `json:"file_path"`
	VoiceID   string  `json:"voice_id,omitempty"`
	Duration  float64 `json:"duration,omitempty"`
	SizeBytes int     `json:"size_bytes,omitempty"`
}

// AudioData holds the outputs of the voice-generation stage.
type AudioData struct {
	MovieTitle      string        `json:"movie_title"`
	Tracks          []*VoiceTrack `json:"tracks"`
	BackgroundMusic string        `json:"background_music,omitempty"`
	TotalDuration   float64       `json:"total_duration,omitempty"`
}

// VideoData holds the outputs of the video-generation stage.
type VideoData struct {
	MovieTitle    string   `json:"movie_title"`
	VideoFiles    []string `json:"video_files"`
	ThumbnailPath string   `json:"thumbnail_path,omitempty"`
	Resolution    string   `json:"resolution,omitempty"`
	TotalDuration float64  `json:"total_duration,omitempty"`
}

// UploadResult is the outcome of publishing the finished reel to one platform.
type UploadResult struct {
	Platform   string    `json:"platform"`
	VideoID    string    `json:"video_id,omitempty"`
	URL        string    `json:"url,omitempty"`
	Status     string    `json:"status"` // "success", "failed" or "pending"
	Error      string    `json:"error,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ErrorRecord is the standalone failure record the error handler persists for
// a failed run.
type ErrorRecord struct {
	WorkflowID string    `json:"workflow_id"`
	Step       string    `json:"step"`
	Error      string    `json:"error"`
	Timestamp  time.Time `json:"timestamp"`
}
