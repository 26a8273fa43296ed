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
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/h2non/filetype"
	"google.golang.org/api/youtube/v3"

	"github.com/cinegenie/movie-reels/internal/config"
	"github.com/cinegenie/movie-reels/internal/core/model"
)

// headerProbeSize is how many leading bytes of a file the type sniffer
// needs; matches the largest magic-number offset filetype knows about.
const headerProbeSize = 261

// Publisher uploads the finished reel to the configured platforms. YouTube
// is the only platform with a real backend today; unknown platform names
// produce failed results instead of aborting the batch, so one
// misconfigured target cannot block the others.
type Publisher struct {
	youtube *youtube.Service
	cfg     config.Upload
	now     func() time.Time
}

// NewPublisher wires the publisher to its upload clients. The YouTube
// service may be nil when upload credentials are absent; uploads then fail
// with an explicit result instead of a panic.
func NewPublisher(youtubeService *youtube.Service, cfg config.Upload) *Publisher {
	return &Publisher{youtube: youtubeService, cfg: cfg, now: time.Now}
}

// Upload publishes the reel to every configured platform and reports one
// result per platform. The video file is sniffed before any network call:
// publishing a corrupt render to a public channel is the one mistake this
// stage cannot take back.
func (p *Publisher) Upload(ctx context.Context, title string, video *model.VideoData, _ *model.AudioData, script *model.ScriptData) ([]*model.UploadResult, error) {
	if video == nil || len(video.VideoFiles) == 0 {
		return nil, fmt.Errorf("no video files to upload for %q", title)
	}
	videoPath := video.VideoFiles[0]
	if err := validateVideoFile(videoPath); err != nil {
		return nil, err
	}

	var results []*model.UploadResult
	for _, platform := range p.cfg.Platforms {
		var result *model.UploadResult
		switch platform {
		case "youtube":
			result = p.uploadYouTube(ctx, title, videoPath, script)
		default:
			result = &model.UploadResult{
				Platform:   platform,
				Status:     "failed",
				Error:      fmt.Sprintf("unsupported platform %q", platform),
				UploadedAt: p.now(),
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// uploadYouTube performs the resumable upload through the YouTube Data API.
func (p *Publisher) uploadYouTube(ctx context.Context, title, videoPath string, script *model.ScriptData) *model.UploadResult {
	result := &model.UploadResult{Platform: "youtube", UploadedAt: p.now()}
	if p.youtube == nil {
		result.Status = "failed"
		result.Error = "youtube client not configured"
		return result
	}

	file, err := os.Open(videoPath)
	if err != nil {
		result.Status = "failed"
		result.Error = fmt.Sprintf("failed to open video file: %v", err)
		return result
	}
	defer func() { _ = file.Close() }()

	upload := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       fmt.Sprintf("%s: What Happens Next", title),
			Description: uploadDescription(script),
			CategoryId:  p.cfg.CategoryID,
			Tags:        uploadTags(title, script),
		},
		Status: &youtube.VideoStatus{PrivacyStatus: p.cfg.PrivacyStatus},
	}

	response, err := p.youtube.Videos.Insert([]string{"snippet", "status"}, upload).
		Media(file).
		Context(ctx).
		Do()
	if err != nil {
		result.Status = "failed"
		result.Error = err.Error()
		return result
	}

	result.Status = "success"
	result.VideoID = response.Id
	result.URL = fmt.Sprintf("https://www.youtube.com/watch?v=%s", response.Id)
	slog.InfoContext(ctx, "reel published",
		"movie_title", title, "platform", "youtube", "video_id", response.Id)
	return result
}

// validateVideoFile sniffs the file header and rejects anything that is not
// a recognized video container.
func validateVideoFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open video file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	header := make([]byte, headerProbeSize)
	n, err := file.Read(header)
	if err != nil {
		return fmt.Errorf("failed to read video file %s: %w", path, err)
	}
	if !filetype.IsVideo(header[:n]) {
		return fmt.Errorf("file %s is not a video", path)
	}
	return nil
}

func uploadDescription(script *model.ScriptData) string {
	if script == nil || script.StoryArc == "" {
		return "An AI-imagined continuation."
	}
	return script.StoryArc
}

func uploadTags(title string, script *model.ScriptData) []string {
	tags := []string{title, "movies", "shorts"}
	if script != nil {
		tags = append(tags, script.MainCharacters...)
	}
	return tags
}
