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

// Package config defines the data structures for application configuration,
// loaded from TOML files. It provides a structured way to manage settings
// for the workflow engine, AI models, trend mining, media synthesis, and
// prompt templates.
//
// This file centralizes all configuration-related structs, making it easy
// to understand and manage the application's configurable parameters.
//
// Structs:
//   - LLMModel: Configuration for a generative language model.
//   - PromptTemplates: Holds the text templates for prompts sent to GenAI models.
//   - Trends: Configuration for the trend-mining sources and cache.
//   - Voice: Configuration for narration synthesis.
//   - Video: Configuration for reel rendering.
//   - Upload: Configuration for publishing the finished reel.
//   - Workflow: Configuration for the orchestration engine itself.
//   - Config: The top-level struct that aggregates all other configuration structs.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with empty maps.
package config

// LLMModel represents the configuration for a generative language model.
type LLMModel struct {
	Model              string  `toml:"model"`               // The model identifier (e.g., "gemini-2.0-flash").
	SystemInstructions string  `toml:"system_instructions"` // The system instructions for the model.
	Temperature        float32 `toml:"temperature"`         // The temperature parameter for the model.
	TopP               float32 `toml:"top_p"`               // The top_p parameter for the model.
	TopK               float32 `toml:"top_k"`               // The top_k parameter for the model.
	MaxTokens          int32   `toml:"max_tokens"`          // The maximum number of tokens for the model output.
	OutputFormat       string  `toml:"output_format"`       // The desired output MIME type (e.g., "application/json").
	RateLimit          int     `toml:"rate_limit"`          // The rate limit for the model in requests per second.
}

// PromptTemplates holds the templates for the different generation prompts.
// Each template is a Go text/template body; the agents supply the data.
type PromptTemplates struct {
	MovieAnalysis string `toml:"movie_analysis"` // The template for the movie-analysis prompt.
	Script        string `toml:"script"`         // The template for the script-generation prompt.
}

// Trends represents the configuration for trend mining and the trend cache.
type Trends struct {
	CacheTTLMinutes int      `toml:"cache_ttl_minutes"` // How long a per-title trend analysis stays fresh.
	MaxMovies       int      `toml:"max_movies"`        // The maximum number of candidates returned per mining pass.
	TimeWindow      string   `toml:"time_window"`       // The TMDB trending time window ("day" or "week").
	Subreddits      []string `toml:"subreddits"`        // The subreddits scanned for social mentions.
}

// Voice represents the configuration for narration synthesis.
type Voice struct {
	VoiceID        string `toml:"voice_id"`        // The ElevenLabs voice used for narration.
	ModelID        string `toml:"model_id"`        // The ElevenLabs model used for synthesis.
	TimeoutSeconds int    `toml:"timeout_seconds"` // The per-request synthesis timeout.
}

// Video represents the configuration for reel rendering.
type Video struct {
	RenderEndpoint string `toml:"render_endpoint"` // The URL of the rendering service.
	Width          int    `toml:"width"`           // The output video width in pixels.
	Height         int    `toml:"height"`          // The output video height in pixels.
	TimeoutSeconds int    `toml:"timeout_seconds"` // The per-request rendering timeout.
}

// Upload represents the configuration for publishing the finished reel.
type Upload struct {
	Platforms     []string `toml:"platforms"`      // The platforms the reel is published to.
	PrivacyStatus string   `toml:"privacy_status"` // The YouTube privacy status for uploads.
	CategoryID    string   `toml:"category_id"`    // The YouTube category id for uploads.
}

// Workflow represents the configuration for the orchestration engine.
type Workflow struct {
	RunTimeoutSeconds int `toml:"run_timeout_seconds"` // The end-to-end bound for a single run; zero disables it.
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other
// configuration structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name           string `toml:"name"`             // The name of the application.
		Port           int    `toml:"port"`             // The HTTP listen port.
		OutputDir      string `toml:"output_dir"`       // The root directory for run artifacts and results.
		ThreadPoolSize int    `toml:"thread_pool_size"` // The size of the worker pool for parallel mining tasks.
	} `toml:"application"`
	AgentModels     map[string]LLMModel `toml:"agent_models"`     // A map of generative models, keyed by a logical name (e.g., "analyst").
	PromptTemplates PromptTemplates     `toml:"prompt_templates"` // Prompt templates configuration.
	Trends          Trends              `toml:"trends"`           // Trend-mining configuration.
	Voice           Voice               `toml:"voice"`            // Narration synthesis configuration.
	Video           Video               `toml:"video"`            // Reel rendering configuration.
	Upload          Upload              `toml:"upload"`           // Publishing configuration.
	Workflow        Workflow            `toml:"workflow"`         // Orchestration engine configuration.
}

// NewConfig is a constructor function that creates a new, initialized Config
// instance. The map fields must be initialized so the configuration loader
// can populate them without nil-map panics.
//
// Outputs:
//   - *Config: A pointer to a new Config struct with its map fields initialized.
func NewConfig() *Config {
	return &Config{
		AgentModels: make(map[string]LLMModel),
	}
}
