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

// Package clients provides the external service connections for the
// application. This file implements a wrapper around the Generative AI
// client using the Decorator pattern: it adds rate limiting, retries, and
// token-usage telemetry around the base model without altering its code.
//
// Why this is important:
//   - Rate Limiting: generative APIs enforce per-minute quotas; the wrapper
//     keeps the application under them instead of burning quota on errors.
//   - Retry Logic: network requests fail for transient reasons; the wrapper
//     retries a failed request before giving up.
//
// Structs:
//   - QuotaAwareModel: wraps a named model on a `genai.Models` handle with a
//     rate limiter and usage counters.
//
// Functions:
//   - NewQuotaAwareModel: constructor for the wrapper.
//   - GenerateContent: rate-limited, retried content generation.
//   - GenerateText: text-prompt convenience that concatenates the response
//     parts and strips markdown code fences.
package clients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// MaxRetries is the number of times a failed generation request is retried
// before the error is returned to the caller.
const MaxRetries = 3

// DefaultSafetySettings defines the default content safety thresholds for
// GenAI models. The prompts are built from trusted, structured movie data,
// so all categories are left unblocked.
var DefaultSafetySettings = []*genai.SafetySetting{
	{
		Category:  genai.HarmCategoryDangerousContent,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHarassment,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategoryHateSpeech,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
	{
		Category:  genai.HarmCategorySexuallyExplicit,
		Threshold: genai.HarmBlockThresholdBlockNone,
	},
}

// QuotaAwareModel decorates a named generative model with a rate limiter,
// retry logic, and OpenTelemetry counters for token usage.
type QuotaAwareModel struct {
	GenerateConfig *genai.GenerateContentConfig // The generation parameters applied to every request.
	ModelName      string                       // The model identifier the requests are issued against.
	Models         *genai.Models                // The underlying models handle from the GenAI client.

	limiter            *rate.Limiter
	inputTokenCounter  metric.Int64Counter
	outputTokenCounter metric.Int64Counter
	retryCounter       metric.Int64Counter
}

// NewQuotaAwareModel wraps the named model with a limiter allowing
// requestsPerSecond sustained calls (with an equal burst).
func NewQuotaAwareModel(models *genai.Models, name string, generateConfig *genai.GenerateContentConfig, requestsPerSecond int) *QuotaAwareModel {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	meter := otel.Meter("github.com/cinegenie/movie-reels")
	inputCounter, _ := meter.Int64Counter(fmt.Sprintf("genai.%s.tokens.input", name))
	outputCounter, _ := meter.Int64Counter(fmt.Sprintf("genai.%s.tokens.output", name))
	retryCounter, _ := meter.Int64Counter(fmt.Sprintf("genai.%s.retries", name))

	return &QuotaAwareModel{
		GenerateConfig:     generateConfig,
		ModelName:          name,
		Models:             models,
		limiter:            rate.NewLimiter(rate.Every(time.Second), requestsPerSecond),
		inputTokenCounter:  inputCounter,
		outputTokenCounter: outputCounter,
		retryCounter:       retryCounter,
	}
}

// GenerateContent issues a generation request, blocking on the rate limiter
// first and retrying transient failures up to MaxRetries times.
func (q *QuotaAwareModel) GenerateContent(ctx context.Context, content []*genai.Content) (*genai.GenerateContentResponse, error) {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if err := q.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := q.Models.GenerateContent(ctx, q.ModelName, content, q.GenerateConfig)
		if err == nil {
			if resp.UsageMetadata != nil {
				q.inputTokenCounter.Add(ctx, int64(resp.UsageMetadata.PromptTokenCount))
				q.outputTokenCounter.Add(ctx, int64(resp.UsageMetadata.CandidatesTokenCount))
			}
			return resp, nil
		}

		lastErr = err
		if attempt < MaxRetries {
			q.retryCounter.Add(ctx, 1)
		}
	}
	return nil, fmt.Errorf("generation failed after %d retries: %w", MaxRetries, lastErr)
}

// GenerateText sends a plain text prompt and returns the concatenated text
// of the response. Models asked for JSON output often wrap it in markdown
// code fences, so those are stripped before returning.
func (q *QuotaAwareModel) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := q.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var value string
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			value += part.Text
		}
	}
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "```json")
	value = strings.TrimPrefix(value, "```")
	value = strings.TrimSuffix(value, "```")
	return strings.TrimSpace(value), nil
}
