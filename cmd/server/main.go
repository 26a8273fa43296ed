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

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/cinegenie/movie-reels/internal/storage"
	"github.com/cinegenie/movie-reels/internal/telemetry"
)

// workflowRequest is the body of a run-creation request. A run either names
// the movie to work on or asks the pipeline to pick from the trending list.
type workflowRequest struct {
	MovieTitle string `json:"movie_title"`
	AutoSelect bool   `json:"auto_select"`
}

func main() {
	// Credentials come from the environment; a local .env file is a
	// convenience, not a requirement.
	_ = godotenv.Load()

	telemetry.SetupLogging()
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := GetConfig()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, config)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState(ctx)
	slog.Info("Initialized State")

	r := gin.Default()

	// Add OpenTelemetry middleware
	r.Use(otelgin.Middleware(config.Application.Name))

	// Allow all origins, methods, and headers. The server only ever fronts a
	// local dashboard; lock this down before exposing it anywhere else.
	r.Use(cors.Default())

	apiV1 := r.Group("/api/v1")
	{
		WorkflowRouter(apiV1)
		TrendingRouter(apiV1)
	}
	StatusRouter(r)

	port := config.Application.Port
	if port == 0 {
		port = 8080
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen: ", "error", err)
		}
	}()
	slog.Info("Server Ready", "port", port)

	// Wait for an interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed:", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed:", "error", err)
	}

	log.Println("Server exiting")
}

// WorkflowRouter sets up the routes for starting and polling workflow runs.
func WorkflowRouter(r *gin.RouterGroup) {
	workflows := r.Group("/workflows")
	{
		workflows.POST("", func(c *gin.Context) {
			var req workflowRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if req.MovieTitle == "" && !req.AutoSelect {
				c.JSON(http.StatusBadRequest, gin.H{"error": "movie_title is required unless auto_select is set"})
				return
			}

			workflowID, err := state.orchestrator.Start(c.Request.Context(), req.MovieTitle, req.AutoSelect)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusAccepted, gin.H{"workflow_id": workflowID})
		})

		workflows.GET("/:id", func(c *gin.Context) {
			result, err := state.orchestrator.Result(c.Request.Context(), c.Param("id"))
			if errors.Is(err, storage.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown workflow id"})
				return
			}
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, result)
		})
	}
}

// TrendingRouter exposes the ranked trending list outside of a run.
func TrendingRouter(r *gin.RouterGroup) {
	r.GET("/trending", func(c *gin.Context) {
		candidates, err := state.orchestrator.TrendingMovies(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"movies": candidates})
	})
}

// StatusRouter exposes liveness endpoints.
func StatusRouter(r *gin.Engine) {
	healthy := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/", healthy)
	r.GET("/status", healthy)
}
