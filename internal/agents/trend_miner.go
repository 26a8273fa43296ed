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

// Package agents implements the external-service collaborators the workflow
// stages call into: trend mining, metadata collection, generative analysis
// and script writing, narration synthesis, reel rendering, and publishing.
// Each agent satisfies one of the collaborator interfaces declared by the
// stages package.
package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cdipaolo/sentiment"
	tmdb "github.com/cyruzin/golang-tmdb"
	"github.com/vartanbeno/go-reddit/v2/reddit"
	"google.golang.org/api/youtube/v3"

	"github.com/cinegenie/movie-reels/internal/clients"
	"github.com/cinegenie/movie-reels/internal/config"
	"github.com/cinegenie/movie-reels/internal/core/model"
	"github.com/cinegenie/movie-reels/internal/core/trends"
)

const (
	defaultMaxMovies  = 10
	defaultTimeWindow = "week"
	// A release within this window counts as recent for ranking purposes.
	recentReleaseWindow = 90 * 24 * time.Hour
	// Listing size per subreddit scan.
	redditScanLimit = 100
	// Result size for the YouTube trailer search.
	youtubeSearchLimit = 25
)

// TrendAgent mines trending movie candidates from TMDB and YouTube and
// enriches them with social signals from Reddit. Per-title trend analyses
// (sentiment distribution, topics) are memoized in the trend cache so
// repeated runs in the same window do not rescan the sources.
type TrendAgent struct {
	tmdb      *tmdb.Client
	reddit    *reddit.Client
	youtube   *youtube.Service
	sentiment sentiment.Models
	cache     *trends.Cache
	cfg       config.Trends
	workers   int
	now       func() time.Time
}

// NewTrendAgent restores the bundled sentiment model and wires the agent to
// its source clients. The worker count bounds the concurrent per-title
// Reddit scans.
func NewTrendAgent(svc *clients.ServiceClients, cfg *config.Config) (*TrendAgent, error) {
	sentimentModel, err := sentiment.Restore()
	if err != nil {
		return nil, fmt.Errorf("failed to restore sentiment model: %w", err)
	}

	ttl := time.Duration(cfg.Trends.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = trends.DefaultTTL
	}
	workers := cfg.Application.ThreadPoolSize
	if workers <= 0 {
		workers = 4
	}

	return &TrendAgent{
		tmdb:      svc.TMDB,
		reddit:    svc.Reddit,
		youtube:   svc.YouTube,
		sentiment: sentimentModel,
		cache:     trends.NewCache(ttl),
		cfg:       cfg.Trends,
		workers:   workers,
		now:       time.Now,
	}, nil
}

// GetTrendingMovies returns the current candidate set, aggregated from the
// TMDB trending list and the hottest YouTube trailer searches, deduplicated
// by title. A single failing source is logged and skipped; the call fails
// only when no source produced a candidate. Each surviving entry is enriched
// with the social mention count gathered from the configured subreddits.
// Ranking is left to the caller; the candidates carry raw signals only.
func (a *TrendAgent) GetTrendingMovies(ctx context.Context) ([]*model.Candidate, error) {
	maxMovies := a.cfg.MaxMovies
	if maxMovies <= 0 {
		maxMovies = defaultMaxMovies
	}

	var (
		candidates []*model.Candidate
		srcErrs    []error
	)
	seen := make(map[string]bool)

	merge := func(source string, found []*model.Candidate, err error) {
		if err != nil {
			slog.WarnContext(ctx, "trend source failed", "source", source, "error", err)
			srcErrs = append(srcErrs, err)
			return
		}
		for _, c := range found {
			key := strings.Join(strings.Fields(strings.ToLower(c.Title)), " ")
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, c)
		}
	}

	found, err := a.tmdbCandidates()
	merge("tmdb", found, err)
	found, err = a.youtubeCandidates(ctx)
	merge("youtube", found, err)

	if len(candidates) == 0 {
		if len(srcErrs) > 0 {
			return nil, fmt.Errorf("all trend sources failed: %w", errors.Join(srcErrs...))
		}
		return nil, nil
	}
	if len(candidates) > maxMovies {
		candidates = candidates[:maxMovies]
	}

	a.fillSocialMentions(ctx, candidates)
	return candidates, nil
}

// tmdbCandidates lists the TMDB trending movies for the configured window.
func (a *TrendAgent) tmdbCandidates() ([]*model.Candidate, error) {
	window := a.cfg.TimeWindow
	if window == "" {
		window = defaultTimeWindow
	}

	trending, err := a.tmdb.GetTrending("movie", window, nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb trending lookup failed: %w", err)
	}

	var candidates []*model.Candidate
	for _, result := range trending.Results {
		if result.Title == "" {
			continue
		}
		candidates = append(candidates, &model.Candidate{
			Title:           result.Title,
			Source:          "tmdb",
			Rating:          float64(result.VoteAverage),
			ReviewCount:     int(result.VoteCount),
			IsRecentRelease: a.isRecentRelease(result.ReleaseDate),
		})
	}
	return candidates, nil
}

// youtubeCandidates searches YouTube for the most-viewed recent trailers and
// extracts the movie titles from the video titles. The source is skipped
// when no YouTube client is configured.
func (a *TrendAgent) youtubeCandidates(ctx context.Context) ([]*model.Candidate, error) {
	if a.youtube == nil {
		return nil, nil
	}

	response, err := a.youtube.Search.List([]string{"snippet"}).
		Q("official movie trailer").
		Type("video").
		Order("viewCount").
		PublishedAfter(a.now().Add(-recentReleaseWindow).Format(time.RFC3339)).
		MaxResults(youtubeSearchLimit).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube trailer search failed: %w", err)
	}

	var candidates []*model.Candidate
	for _, item := range response.Items {
		title := movieTitleFromTrailer(item.Snippet.Title)
		if title == "" {
			continue
		}
		candidates = append(candidates, &model.Candidate{
			Title:           title,
			Source:          "youtube",
			IsRecentRelease: true,
		})
	}
	return candidates, nil
}

// movieTitleFromTrailer strips the marketing boilerplate from a trailer's
// video title, e.g. "The Last Ember | Official Trailer (2026)" yields
// "The Last Ember". An empty result means the title was all boilerplate.
func movieTitleFromTrailer(videoTitle string) string {
	title := videoTitle
	for _, sep := range []string{"|", " - ", "("} {
		if idx := strings.Index(title, sep); idx >= 0 {
			title = title[:idx]
		}
	}
	lower := strings.ToLower(title)
	for _, marker := range []string{"official trailer", "official teaser", "final trailer", "teaser trailer", "trailer"} {
		if idx := strings.Index(lower, marker); idx >= 0 {
			title = title[:idx]
			lower = lower[:idx]
		}
	}
	return strings.TrimSpace(title)
}

// AnalyzeTrend builds the full per-title trend picture: mention volume and
// sentiment distribution over the matching Reddit posts, plus the hottest
// topics. Results are served from the cache while fresh.
func (a *TrendAgent) AnalyzeTrend(ctx context.Context, title string) (*model.TrendAnalysis, error) {
	if analysis, ok := a.cache.Get(title); ok {
		return analysis, nil
	}

	posts, err := a.matchingPosts(ctx, title)
	if err != nil {
		return nil, err
	}

	analysis := &model.TrendAnalysis{
		MovieTitle:            title,
		SentimentDistribution: map[string]float64{"positive": 0, "negative": 0},
		AnalysisTimestamp:     a.now(),
	}

	for _, post := range posts {
		analysis.SocialMentions += 1 + post.NumberOfComments
		if len(analysis.TrendingTopics) < 5 {
			analysis.TrendingTopics = append(analysis.TrendingTopics, post.Title)
		}
		result := a.sentiment.SentimentAnalysis(post.Title, sentiment.English)
		if result.Score == 1 {
			analysis.SentimentDistribution["positive"]++
		} else {
			analysis.SentimentDistribution["negative"]++
		}
	}

	if total := float64(len(posts)); total > 0 {
		analysis.SentimentDistribution["positive"] /= total
		analysis.SentimentDistribution["negative"] /= total
		analysis.PopularityScore = analysis.SentimentDistribution["positive"]
	}

	a.cache.Put(title, analysis)
	return analysis, nil
}

// fillSocialMentions fans the per-title Reddit scans out over the worker
// pool. A failed scan leaves the candidate's mention count at zero rather
// than failing the batch; mining should degrade, not abort, when one source
// is unavailable.
func (a *TrendAgent) fillSocialMentions(ctx context.Context, candidates []*model.Candidate) {
	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup

	for _, candidate := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(c *model.Candidate) {
			defer wg.Done()
			defer func() { <-sem }()

			posts, err := a.matchingPosts(ctx, c.Title)
			if err != nil {
				slog.WarnContext(ctx, "reddit scan failed",
					"movie_title", c.Title, "error", err)
				return
			}
			mentions := 0
			for _, post := range posts {
				mentions += 1 + post.NumberOfComments
			}
			c.SocialMentions = mentions
		}(candidate)
	}
	wg.Wait()
}

// matchingPosts scans the configured subreddits' top listings for posts
// mentioning the title.
func (a *TrendAgent) matchingPosts(ctx context.Context, title string) ([]*reddit.Post, error) {
	needle := strings.ToLower(title)
	var matches []*reddit.Post

	for _, sub := range a.cfg.Subreddits {
		posts, _, err := a.reddit.Subreddit.TopPosts(ctx, sub, &reddit.ListPostOptions{
			ListOptions: reddit.ListOptions{Limit: redditScanLimit},
			Time:        "week",
		})
		if err != nil {
			return nil, fmt.Errorf("reddit top posts for r/%s failed: %w", sub, err)
		}
		for _, post := range posts {
			if strings.Contains(strings.ToLower(post.Title), needle) {
				matches = append(matches, post)
			}
		}
	}
	return matches, nil
}

func (a *TrendAgent) isRecentRelease(releaseDate string) bool {
	if releaseDate == "" {
		return false
	}
	released, err := time.Parse("2006-01-02", releaseDate)
	if err != nil {
		return false
	}
	age := a.now().Sub(released)
	return age >= 0 && age <= recentReleaseWindow
}
