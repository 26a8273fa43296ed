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

// Package main contains the setup and initialization logic for the
// application's state. This file creates a centralized state manager that
// holds all shared dependencies: configuration, service clients, and the
// workflow orchestrator.
//
// Functions:
//   - SetupOS: Points the configuration loader at the configs directory and
//     the local runtime overrides.
//   - GetConfig: A singleton that loads the application's configuration
//     from TOML files exactly once.
//   - InitState: Creates the service clients, the agents, the stores, and
//     the orchestrator, and wires them together.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/cinegenie/movie-reels/internal/agents"
	"github.com/cinegenie/movie-reels/internal/clients"
	"github.com/cinegenie/movie-reels/internal/config"
	"github.com/cinegenie/movie-reels/internal/core/workflow"
	"github.com/cinegenie/movie-reels/internal/storage"
)

// StateManager holds all the shared dependencies for the application,
// acting as a centralized container so handlers never reach for globals of
// their own.
type StateManager struct {
	config       *config.Config
	clients      *clients.ServiceClients
	orchestrator *workflow.Orchestrator
}

// state is the single instance of StateManager for the process.
var state = &StateManager{}

// SetupOS sets the environment variables the configuration loader uses to
// find the TOML files: the configs directory and the "local" runtime, whose
// .env.local.toml overrides the base settings.
func SetupOS() (err error) {
	err = os.Setenv(config.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(config.EnvConfigRuntime, "local")
	return err
}

// GetConfig provides a singleton instance of the application configuration,
// loading it from the file system on first use.
func GetConfig() *config.Config {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup os environment: %v\n", err)
		}
		state.config = config.MustLoad()
	}
	return state.config
}

// InitState initializes the entire application state: the external service
// clients, the filesystem store for results and artifacts, the agents, and
// the orchestrator that runs them.
func InitState(ctx context.Context) {
	cfg := GetConfig()

	serviceClients, err := clients.NewServiceClients(ctx, cfg)
	if err != nil {
		panic(err)
	}
	state.clients = serviceClients

	outputDir := cfg.Application.OutputDir
	if outputDir == "" {
		outputDir = "output"
	}
	store, err := storage.NewFileStore(outputDir)
	if err != nil {
		panic(err)
	}

	trendAgent, err := agents.NewTrendAgent(serviceClients, cfg)
	if err != nil {
		panic(err)
	}
	analyst, err := agents.NewAnalyst(serviceClients.AgentModels["analyst"], cfg.PromptTemplates.MovieAnalysis, trendAgent)
	if err != nil {
		panic(err)
	}
	scriptWriter, err := agents.NewScriptWriter(serviceClients.AgentModels["writer"], cfg.PromptTemplates.Script)
	if err != nil {
		panic(err)
	}

	state.orchestrator = workflow.NewOrchestrator(
		workflow.Collaborators{
			TrendMiner:      trendAgent,
			DataCollector:   agents.NewTMDBCollector(serviceClients.TMDB),
			MovieAnalyzer:   analyst,
			ScriptGenerator: scriptWriter,
			VoiceGenerator:  agents.NewNarrator(serviceClients.ElevenLabs, cfg.Voice, outputDir),
			VideoGenerator:  agents.NewRenderer(serviceClients.HTTP, cfg.Video, outputDir),
			Uploader:        agents.NewPublisher(serviceClients.YouTube, cfg.Upload),
		},
		store,
		store,
		store,
		time.Duration(cfg.Workflow.RunTimeoutSeconds)*time.Second,
	)
}
