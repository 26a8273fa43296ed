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
	"strconv"
	"strings"

	tmdb "github.com/cyruzin/golang-tmdb"

	"github.com/cinegenie/movie-reels/internal/core/model"
)

// maxCastMembers caps how many cast entries are carried into the prompts;
// the top-billed few are what a short continuation script actually uses.
const maxCastMembers = 5

// TMDBCollector gathers movie metadata from The Movie Database: the best
// search match, its details, and the top-billed credits.
type TMDBCollector struct {
	client *tmdb.Client
}

// NewTMDBCollector wires the collector to its TMDB client.
func NewTMDBCollector(client *tmdb.Client) *TMDBCollector {
	return &TMDBCollector{client: client}
}

// Collect resolves the title against TMDB search and assembles the metadata
// record from the details and credits of the first match. An unknown title
// is an error, not an empty record: downstream prompts cannot work with a
// movie that has no plot summary.
func (c *TMDBCollector) Collect(_ context.Context, title string) (*model.MovieData, error) {
	search, err := c.client.GetSearchMovies(title, nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb search for %q failed: %w", title, err)
	}
	if len(search.Results) == 0 {
		return nil, fmt.Errorf("no TMDB results for %q", title)
	}
	movieID := int(search.Results[0].ID)

	details, err := c.client.GetMovieDetails(movieID, nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb details for %q failed: %w", title, err)
	}
	credits, err := c.client.GetMovieCredits(movieID, nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb credits for %q failed: %w", title, err)
	}

	data := &model.MovieData{
		Title:          details.Title,
		Year:           releaseYear(details.ReleaseDate),
		PlotSummary:    details.Overview,
		RuntimeMinutes: details.Runtime,
	}
	for _, genre := range details.Genres {
		data.Genres = append(data.Genres, genre.Name)
	}
	for _, crew := range credits.Crew {
		if crew.Job == "Director" {
			data.Director = crew.Name
			break
		}
	}
	for i, cast := range credits.Cast {
		if i == maxCastMembers {
			break
		}
		data.Cast = append(data.Cast, &model.CastMember{
			CharacterName: cast.Character,
			ActorName:     cast.Name,
		})
	}
	return data, nil
}

func releaseYear(releaseDate string) int {
	parts := strings.SplitN(releaseDate, "-", 2)
	if len(parts) == 0 || parts[0] == "" {
		return 0
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	return year
}
