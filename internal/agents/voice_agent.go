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
	"path/filepath"

	"github.com/haguro/elevenlabs-go"

	"github.com/cinegenie/movie-reels/internal/config"
	"github.com/cinegenie/movie-reels/internal/core/model"
)

// speechSynthesizer is the slice of the ElevenLabs client the narrator
// consumes, kept narrow so tests can substitute canned audio.
type speechSynthesizer interface {
	TextToSpeech(voiceID string, ttsReq elevenlabs.TextToSpeechRequest, queries ...elevenlabs.QueryFunc) ([]byte, error)
}

// Narrator synthesizes one narration clip per script part through the
// ElevenLabs API and writes them under the title's output directory.
type Narrator struct {
	synth     speechSynthesizer
	cfg       config.Voice
	outputDir string
}

// NewNarrator wires the narrator to the synthesis client and output root.
func NewNarrator(synth speechSynthesizer, cfg config.Voice, outputDir string) *Narrator {
	return &Narrator{synth: synth, cfg: cfg, outputDir: outputDir}
}

// Generate synthesizes every script part in order. Parts are narrated
// sequentially: ElevenLabs enforces concurrency limits per key, and the
// clips are small enough that parallelism buys nothing.
func (n *Narrator) Generate(ctx context.Context, title string, script *model.ScriptData, _ *model.MovieData) (*model.AudioData, error) {
	dir, err := mediaDir(n.outputDir, title, "audio")
	if err != nil {
		return nil, err
	}

	audio := &model.AudioData{MovieTitle: title}
	for _, part := range script.Parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		clip, err := n.synth.TextToSpeech(n.cfg.VoiceID, elevenlabs.TextToSpeechRequest{
			Text:    part.Text,
			ModelID: n.cfg.ModelID,
		})
		if err != nil {
			return nil, fmt.Errorf("speech synthesis for part %d failed: %w", part.PartNum, err)
		}

		path := filepath.Join(dir, fmt.Sprintf("part_%02d.mp3", part.PartNum))
		if err := os.WriteFile(path, clip, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write narration clip %s: %w", path, err)
		}

		audio.Tracks = append(audio.Tracks, &model.VoiceTrack{
			PartNum:   part.PartNum,
			FilePath:  path,
			VoiceID:   n.cfg.VoiceID,
			Duration:  part.DurationEstimate,
			SizeBytes: len(clip),
		})
		audio.TotalDuration += part.DurationEstimate
	}

	slog.InfoContext(ctx, "narration synthesized",
		"movie_title", title, "tracks", len(audio.Tracks))
	return audio, nil
}
