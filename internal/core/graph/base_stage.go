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

// Package graph provides the building blocks for the pipeline state machine.
// This file defines `BaseStage`, the foundational implementation every
// concrete stage embeds to inherit common functionality: a stable identifier
// plus OpenTelemetry tracing and success/error counters, so each stage is
// individually observable without boilerplate.
package graph

import (
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// BaseStage provides the identity and instrumentation shared by all stages.
type BaseStage struct {
	StageName      StageID             // The unique stage identifier.
	Tracer         trace.Tracer        // Tracer for spans created inside the stage.
	Meter          metric.Meter        // Meter for stage-level metrics.
	SuccessCounter metric.Int64Counter // Incremented on successful execution.
	ErrorCounter   metric.Int64Counter // Incremented when the stage records a failure.
}

// NewBaseStage initializes a stage identity with its OpenTelemetry
// instrumentation. Counter creation failures are logged and tolerated; a
// stage without metrics still has to run.
func NewBaseStage(name StageID) *BaseStage {
	meter := otel.Meter("github.com/cinegenie/movie-reels")

	successCounter, err := meter.Int64Counter(fmt.Sprintf("%s.counter.success", name))
	if err != nil {
		log.Printf("error creating success counter for stage '%s': %v\n", name, err)
	}
	errorCounter, err := meter.Int64Counter(fmt.Sprintf("%s.counter.error", name))
	if err != nil {
		log.Printf("error creating error counter for stage '%s': %v\n", name, err)
	}

	return &BaseStage{
		StageName:      name,
		Tracer:         otel.Tracer(string(name)),
		Meter:          meter,
		SuccessCounter: successCounter,
		ErrorCounter:   errorCounter,
	}
}

// ID returns the stage identifier.
func (s *BaseStage) ID() StageID {
	return s.StageName
}
