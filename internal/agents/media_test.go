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
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/haguro/elevenlabs-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinegenie/movie-reels/internal/config"
	"github.com/cinegenie/movie-reels/internal/core/model"
)

// mp4Header is a minimal valid MP4 file signature, enough for the type
// sniffer to classify the payload as video.
var mp4Header = append([]byte{0x00, 0x00, 0x00, 0x18}, []byte("ftypmp42mp42isom")...)

// fakeSynth returns fixed bytes per clip and records the requested texts.
type fakeSynth struct {
	clip  []byte
	err   error
	texts []string
}

func (f *fakeSynth) TextToSpeech(_ string, req elevenlabs.TextToSpeechRequest, _ ...elevenlabs.QueryFunc) ([]byte, error) {
	f.texts = append(f.texts, req.Text)
	return f.clip, f.err
}

// TestNarratorWritesOneClipPerPart verifies each script beat becomes its
// own narration file under the title's audio directory.
func TestNarratorWritesOneClipPerPart(t *testing.T) {
	outputDir := t.TempDir()
	synth := &fakeSynth{clip: []byte("mp3-bytes")}
	narrator := NewNarrator(synth, config.Voice{VoiceID: "v1", ModelID: "m1"}, outputDir)

	script := &model.ScriptData{
		MovieTitle: "The Last Ember",
		Parts: []*model.ScriptPart{
			{PartNum: 1, Text: "Beat one.", DurationEstimate: 15},
			{PartNum: 2, Text: "Beat two.", DurationEstimate: 20},
		},
	}

	audio, err := narrator.Generate(context.Background(), "The Last Ember", script, nil)

	require.NoError(t, err)
	require.Len(t, audio.Tracks, 2)
	assert.Equal(t, []string{"Beat one.", "Beat two."}, synth.texts)
	assert.InDelta(t, 35, audio.TotalDuration, 1e-9)

	for i, track := range audio.Tracks {
		assert.Equal(t, i+1, track.PartNum)
		assert.Equal(t, "v1", track.VoiceID)
		data, err := os.ReadFile(track.FilePath)
		require.NoError(t, err)
		assert.Equal(t, "mp3-bytes", string(data))
		assert.Equal(t, filepath.Join(outputDir, "the-last-ember", "audio"), filepath.Dir(track.FilePath))
	}
}

// TestNarratorPropagatesSynthesisError verifies a failed clip aborts the
// batch with the part number in the error.
func TestNarratorPropagatesSynthesisError(t *testing.T) {
	synth := &fakeSynth{err: assert.AnError}
	narrator := NewNarrator(synth, config.Voice{}, t.TempDir())

	script := &model.ScriptData{Parts: []*model.ScriptPart{{PartNum: 3, Text: "Beat."}}}
	_, err := narrator.Generate(context.Background(), "X", script, nil)

	assert.ErrorContains(t, err, "part 3")
}

// TestRendererDownloadsAndValidates runs the renderer against a stub
// rendering service and verifies the reel, resolution, and thumbnail.
func TestRendererDownloadsAndValidates(t *testing.T) {
	var poster bytes.Buffer
	require.NoError(t, jpeg.Encode(&poster, image.NewRGBA(image.Rect(0, 0, 4, 8)), nil))

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/render", func(w http.ResponseWriter, r *http.Request) {
		var req renderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "The Last Ember", req.Title)
		_ = json.NewEncoder(w).Encode(renderResponse{
			VideoURL:  server.URL + "/video",
			PosterURL: server.URL + "/poster",
			Duration:  58.5,
		})
	})
	mux.HandleFunc("/video", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(mp4Header)
	})
	mux.HandleFunc("/poster", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(poster.Bytes())
	})

	outputDir := t.TempDir()
	renderer := NewRenderer(server.Client(), config.Video{
		RenderEndpoint: server.URL + "/render",
		Width:          108,
		Height:         192,
	}, outputDir)

	script := &model.ScriptData{Parts: []*model.ScriptPart{{PartNum: 1, Text: "Beat."}}}
	video, err := renderer.Generate(context.Background(), "The Last Ember", script, nil, &model.AudioData{})

	require.NoError(t, err)
	assert.Equal(t, "108x192", video.Resolution)
	assert.InDelta(t, 58.5, video.TotalDuration, 1e-9)
	require.Len(t, video.VideoFiles, 1)

	reel, err := os.ReadFile(video.VideoFiles[0])
	require.NoError(t, err)
	assert.Equal(t, mp4Header, reel)

	require.NotEmpty(t, video.ThumbnailPath)
	thumb, err := os.Open(video.ThumbnailPath)
	require.NoError(t, err)
	defer func() { _ = thumb.Close() }()
	decoded, _, err := image.Decode(thumb)
	require.NoError(t, err)
	assert.Equal(t, 108, decoded.Bounds().Dx())
	assert.Equal(t, 192, decoded.Bounds().Dy())
}

// TestRendererRejectsNonVideoPayload verifies a service answering with
// something other than a video fails the stage instead of shipping it.
func TestRendererRejectsNonVideoPayload(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/render", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(renderResponse{VideoURL: server.URL + "/video"})
	})
	mux.HandleFunc("/video", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html>not a video</html>")
	})

	renderer := NewRenderer(server.Client(), config.Video{RenderEndpoint: server.URL + "/render"}, t.TempDir())

	script := &model.ScriptData{Parts: []*model.ScriptPart{{PartNum: 1, Text: "Beat."}}}
	_, err := renderer.Generate(context.Background(), "X", script, nil, nil)

	assert.ErrorContains(t, err, "non-video payload")
}

// TestPublisherValidatesVideoFile verifies a non-video file on disk never
// reaches an upload call.
func TestPublisherValidatesVideoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reel.mp4")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a container"), 0o644))

	publisher := NewPublisher(nil, config.Upload{Platforms: []string{"youtube"}})
	_, err := publisher.Upload(context.Background(), "X", &model.VideoData{VideoFiles: []string{path}}, nil, nil)

	assert.ErrorContains(t, err, "is not a video")
}

// TestPublisherReportsPerPlatformResults verifies unsupported platforms and
// a missing YouTube client surface as failed results, not batch errors.
func TestPublisherReportsPerPlatformResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reel.mp4")
	require.NoError(t, os.WriteFile(path, mp4Header, 0o644))

	publisher := NewPublisher(nil, config.Upload{Platforms: []string{"youtube", "myspace"}})
	results, err := publisher.Upload(context.Background(), "X", &model.VideoData{VideoFiles: []string{path}}, nil, nil)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "failed", results[0].Status)
	assert.Contains(t, results[0].Error, "not configured")
	assert.Equal(t, "failed", results[1].Status)
	assert.Contains(t, results[1].Error, "unsupported platform")
}
