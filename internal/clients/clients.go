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

// Package clients initializes and holds all the client objects needed to
// communicate with external services. It acts as a dependency injection
// container, creating a single, shared `ServiceClients` struct that is
// passed to the agents at startup.
//
// Logic Flow:
//  1. `NewServiceClients` is called at application startup with the loaded
//     configuration.
//  2. It initializes clients for the GenAI, TMDB, Reddit, ElevenLabs, and
//     YouTube APIs, reading credentials from environment variables.
//  3. It reads the agent-model configuration to build rate-limited,
//     quota-aware generative models, stored in a map by logical name.
//  4. The bundle is handed to the agents, which never construct clients
//     themselves.
//
// Structs:
//   - ServiceClients: the container for all initialized service clients.
//
// Functions:
//   - NewServiceClients: factory that builds the container from config and
//     environment credentials.
package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	tmdb "github.com/cyruzin/golang-tmdb"
	"github.com/haguro/elevenlabs-go"
	"github.com/vartanbeno/go-reddit/v2/reddit"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
	"google.golang.org/genai"

	"github.com/cinegenie/movie-reels/internal/config"
)

// Environment variable names for external service credentials. Credentials
// stay out of the TOML files so the files can be committed.
const (
	EnvGeminiAPIKey        = "GEMINI_API_KEY"
	EnvTMDBAPIKey          = "TMDB_API_KEY"
	EnvElevenLabsAPIKey    = "ELEVENLABS_API_KEY"
	EnvRedditClientID      = "REDDIT_CLIENT_ID"
	EnvRedditClientSecret  = "REDDIT_CLIENT_SECRET"
	EnvRedditUsername      = "REDDIT_USERNAME"
	EnvRedditPassword      = "REDDIT_PASSWORD"
	EnvYouTubeAPIKey       = "YOUTUBE_API_KEY"
	EnvYouTubeClientID     = "YOUTUBE_CLIENT_ID"
	EnvYouTubeClientSecret = "YOUTUBE_CLIENT_SECRET"
	EnvYouTubeRefreshToken = "YOUTUBE_REFRESH_TOKEN"
)

// ServiceClients is the central container for every client that talks to an
// external service. The agents receive it at construction time instead of
// building their own connections.
type ServiceClients struct {
	GenAI       *genai.Client               // Client for the Gemini generative API.
	TMDB        *tmdb.Client                // Client for The Movie Database.
	Reddit      *reddit.Client              // Client for the Reddit API (read-only without credentials).
	ElevenLabs  *elevenlabs.Client          // Client for ElevenLabs speech synthesis.
	YouTube     *youtube.Service            // Client for the YouTube Data API; nil when upload credentials are absent.
	HTTP        *http.Client                // Shared HTTP client for plain REST calls (rendering service, scrapers).
	AgentModels map[string]*QuotaAwareModel // Configured generative models, keyed by logical name from the config.
}

// NewServiceClients builds the full client container. The GenAI, TMDB, and
// ElevenLabs keys are required; Reddit falls back to the read-only client
// and YouTube degrades (search-only, or nil) as its credentials thin out.
func NewServiceClients(ctx context.Context, cfg *config.Config) (*ServiceClients, error) {
	geminiKey := os.Getenv(EnvGeminiAPIKey)
	if geminiKey == "" {
		return nil, fmt.Errorf("environment variable %s is not set", EnvGeminiAPIKey)
	}
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating genai client: %w", err)
	}

	tmdbKey := os.Getenv(EnvTMDBAPIKey)
	if tmdbKey == "" {
		return nil, fmt.Errorf("environment variable %s is not set", EnvTMDBAPIKey)
	}
	tmdbClient, err := tmdb.Init(tmdbKey)
	if err != nil {
		return nil, fmt.Errorf("error creating tmdb client: %w", err)
	}

	elevenKey := os.Getenv(EnvElevenLabsAPIKey)
	if elevenKey == "" {
		return nil, fmt.Errorf("environment variable %s is not set", EnvElevenLabsAPIKey)
	}
	voiceTimeout := time.Duration(cfg.Voice.TimeoutSeconds) * time.Second
	if voiceTimeout <= 0 {
		voiceTimeout = 30 * time.Second
	}
	elevenClient := elevenlabs.NewClient(ctx, elevenKey, voiceTimeout)

	redditClient, err := newRedditClient()
	if err != nil {
		return nil, err
	}

	youtubeService, err := newYouTubeService(ctx)
	if err != nil {
		return nil, err
	}

	// Wrap every configured agent model with its rate limiter and the shared
	// safety settings.
	agentModels := make(map[string]*QuotaAwareModel)
	for key, modelCfg := range cfg.AgentModels {
		generateConfig := &genai.GenerateContentConfig{
			Temperature:      genai.Ptr(modelCfg.Temperature),
			TopP:             genai.Ptr(modelCfg.TopP),
			MaxOutputTokens:  modelCfg.MaxTokens,
			ResponseMIMEType: modelCfg.OutputFormat,
			SafetySettings:   DefaultSafetySettings,
		}
		if modelCfg.SystemInstructions != "" {
			generateConfig.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: modelCfg.SystemInstructions}},
			}
		}
		agentModels[key] = NewQuotaAwareModel(genaiClient.Models, modelCfg.Model, generateConfig, modelCfg.RateLimit)
	}

	return &ServiceClients{
		GenAI:       genaiClient,
		TMDB:        tmdbClient,
		Reddit:      redditClient,
		ElevenLabs:  elevenClient,
		YouTube:     youtubeService,
		HTTP:        &http.Client{Timeout: time.Duration(cfg.Video.TimeoutSeconds) * time.Second},
		AgentModels: agentModels,
	}, nil
}

// newRedditClient builds an authenticated Reddit client when script-app
// credentials are present and falls back to the rate-limited read-only
// client otherwise. Trend mining only reads public listings, so the
// fallback is fully functional.
func newRedditClient() (*reddit.Client, error) {
	id := os.Getenv(EnvRedditClientID)
	secret := os.Getenv(EnvRedditClientSecret)
	if id == "" || secret == "" {
		slog.Warn("reddit credentials not set, using read-only client")
		return reddit.DefaultClient(), nil
	}
	client, err := reddit.NewClient(reddit.Credentials{
		ID:       id,
		Secret:   secret,
		Username: os.Getenv(EnvRedditUsername),
		Password: os.Getenv(EnvRedditPassword),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating reddit client: %w", err)
	}
	return client, nil
}

// newYouTubeService builds the YouTube client. With an offline OAuth
// refresh token the client can both search and upload; with only an API key
// it is search-only; with neither it is nil and the pipeline runs without
// the YouTube source or upload target.
func newYouTubeService(ctx context.Context) (*youtube.Service, error) {
	clientID := os.Getenv(EnvYouTubeClientID)
	clientSecret := os.Getenv(EnvYouTubeClientSecret)
	refreshToken := os.Getenv(EnvYouTubeRefreshToken)

	if clientID != "" && clientSecret != "" && refreshToken != "" {
		oauthConfig := &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{youtube.YoutubeUploadScope, youtube.YoutubeReadonlyScope},
		}
		tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
		service, err := youtube.NewService(ctx, option.WithTokenSource(tokenSource))
		if err != nil {
			return nil, fmt.Errorf("error creating youtube client: %w", err)
		}
		return service, nil
	}

	if apiKey := os.Getenv(EnvYouTubeAPIKey); apiKey != "" {
		slog.Warn("youtube oauth credentials not set, search-only client")
		service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("error creating youtube client: %w", err)
		}
		return service, nil
	}

	slog.Warn("youtube credentials not set, youtube client disabled")
	return nil, nil
}
