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
	"text/template"

	"github.com/cinegenie/movie-reels/internal/core/model"
)

// ScriptWriter generates the structured continuation script for a movie. It
// renders the configured prompt template with the collected metadata and
// requires the model to answer in strict JSON matching the script shape.
type ScriptWriter struct {
	model textGenerator
	tmpl  *template.Template
}

// scriptPromptData is the payload handed to the script prompt template.
type scriptPromptData struct {
	Title string
	Data  *model.MovieData
}

// NewScriptWriter parses the prompt template and wires the writer to its
// model.
func NewScriptWriter(generator textGenerator, promptTemplate string) (*ScriptWriter, error) {
	tmpl, err := template.New("script").Parse(promptTemplate)
	if err != nil {
		return nil, fmt.Errorf("invalid script prompt template: %w", err)
	}
	return &ScriptWriter{model: generator, tmpl: tmpl}, nil
}

// Generate renders the prompt, queries the model, and parses the response.
// Malformed JSON and scripts without parts are reported failures: the
// voice and video stages need real beats to work with, so nothing is ever
// silently defaulted.
func (w *ScriptWriter) Generate(ctx context.Context, title string, data *model.MovieData) (*model.ScriptData, error) {
	var prompt bytes.Buffer
	if err := w.tmpl.Execute(&prompt, scriptPromptData{Title: title, Data: data}); err != nil {
		return nil, fmt.Errorf("failed to render script prompt: %w", err)
	}

	response, err := w.model.GenerateText(ctx, prompt.String())
	if err != nil {
		return nil, err
	}

	script := &model.ScriptData{}
	if err := json.Unmarshal([]byte(response), script); err != nil {
		return nil, fmt.Errorf("malformed script response: %w", err)
	}
	if len(script.Parts) == 0 {
		return nil, fmt.Errorf("script for %q has no parts", title)
	}
	if script.MovieTitle == "" {
		script.MovieTitle = title
	}
	return script, nil
}
