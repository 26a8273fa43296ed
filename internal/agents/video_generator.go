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
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"

	"github.com/cinegenie/movie-reels/internal/config"
	"github.com/cinegenie/movie-reels/internal/core/model"
)

// renderRequest is the payload sent to the rendering service: the script
// beats, the narration tracks to lay under them, and the target frame size.
type renderRequest struct {
	Title  string              `json:"title"`
	Width  int                 `json:"width"`
	Height int                 `json:"height"`
	Parts  []*model.ScriptPart `json:"parts"`
	Tracks []*model.VoiceTrack `json:"tracks"`
}

// renderResponse is the rendering service's answer: where to fetch the
// finished reel and its poster frame from, plus the final duration.
type renderResponse struct {
	VideoURL  string  `json:"video_url"`
	PosterURL string  `json:"poster_url"`
	Duration  float64 `json:"duration"`
}

// Renderer assembles the final reel by driving the external rendering
// service, then downloads and validates the output. The poster frame is
// resized into the platform thumbnail locally.
type Renderer struct {
	client    *http.Client
	cfg       config.Video
	outputDir string
}

// NewRenderer wires the renderer to the rendering service.
func NewRenderer(client *http.Client, cfg config.Video, outputDir string) *Renderer {
	return &Renderer{client: client, cfg: cfg, outputDir: outputDir}
}

// Generate submits the render job, downloads the resulting video and poster,
// and writes them under the title's output directory. A response that is
// not actually a video file is rejected rather than passed to upload.
func (r *Renderer) Generate(ctx context.Context, title string, script *model.ScriptData, _ *model.MovieData, audio *model.AudioData) (*model.VideoData, error) {
	dir, err := mediaDir(r.outputDir, title, "video")
	if err != nil {
		return nil, err
	}

	rendered, err := r.submitRenderJob(ctx, title, script, audio)
	if err != nil {
		return nil, err
	}

	videoBytes, err := r.download(ctx, rendered.VideoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download rendered video: %w", err)
	}
	if !filetype.IsVideo(videoBytes) {
		return nil, fmt.Errorf("rendering service returned a non-video payload for %q", title)
	}
	videoPath := filepath.Join(dir, "reel.mp4")
	if err := os.WriteFile(videoPath, videoBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write video file %s: %w", videoPath, err)
	}

	video := &model.VideoData{
		MovieTitle:    title,
		VideoFiles:    []string{videoPath},
		Resolution:    fmt.Sprintf("%dx%d", r.cfg.Width, r.cfg.Height),
		TotalDuration: rendered.Duration,
	}

	// The thumbnail is an enrichment: a reel without one can still be
	// published, so poster failures are logged and skipped.
	thumbnailPath, err := r.writeThumbnail(ctx, dir, rendered.PosterURL)
	if err != nil {
		slog.WarnContext(ctx, "failed to build thumbnail",
			"movie_title", title, "error", err)
	} else {
		video.ThumbnailPath = thumbnailPath
	}

	return video, nil
}

// submitRenderJob posts the render request and decodes the service's reply.
func (r *Renderer) submitRenderJob(ctx context.Context, title string, script *model.ScriptData, audio *model.AudioData) (*renderResponse, error) {
	payload := renderRequest{
		Title:  title,
		Width:  r.cfg.Width,
		Height: r.cfg.Height,
		Parts:  script.Parts,
	}
	if audio != nil {
		payload.Tracks = audio.Tracks
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.RenderEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rendering service returned status %d", resp.StatusCode)
	}

	rendered := &renderResponse{}
	if err := json.NewDecoder(resp.Body).Decode(rendered); err != nil {
		return nil, fmt.Errorf("malformed render response: %w", err)
	}
	if rendered.VideoURL == "" {
		return nil, fmt.Errorf("render response carries no video url")
	}
	return rendered, nil
}

// writeThumbnail fetches the poster frame and resizes it to the configured
// frame size, cropping to fill.
func (r *Renderer) writeThumbnail(ctx context.Context, dir, posterURL string) (string, error) {
	if posterURL == "" {
		return "", fmt.Errorf("render response carries no poster url")
	}
	posterBytes, err := r.download(ctx, posterURL)
	if err != nil {
		return "", err
	}

	poster, err := imaging.Decode(bytes.NewReader(posterBytes))
	if err != nil {
		return "", fmt.Errorf("failed to decode poster image: %w", err)
	}
	thumbnail := imaging.Fill(poster, r.cfg.Width, r.cfg.Height, imaging.Center, imaging.Lanczos)

	path := filepath.Join(dir, "thumbnail.jpg")
	if err := imaging.Save(thumbnail, path); err != nil {
		return "", fmt.Errorf("failed to save thumbnail: %w", err)
	}
	return path, nil
}

func (r *Renderer) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download of %s returned status %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
