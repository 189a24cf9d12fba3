// Saucier - Recipe Catalog and Cooking Assistant API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/saucier

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/saucier/internal/cache"
	"github.com/tomtom215/saucier/internal/config"
	"github.com/tomtom215/saucier/internal/database"
	"github.com/tomtom215/saucier/internal/metrics"
	"github.com/tomtom215/saucier/internal/models"
)

// TrendingWindow is a sliding time window for trending queries.
type TrendingWindow string

// Supported trending windows.
const (
	WindowDay   TrendingWindow = "day"
	WindowWeek  TrendingWindow = "week"
	WindowMonth TrendingWindow = "month"
)

// Duration returns the window length, or (0, false) for unknown windows.
func (w TrendingWindow) Duration() (time.Duration, bool) {
	switch w {
	case WindowDay:
		return 24 * time.Hour, true
	case WindowWeek:
		return 7 * 24 * time.Hour, true
	case WindowMonth:
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Engine computes personalized recommendations over the catalog. Filtering
// and scoring run in memory over the full recipe set; personalized results
// are cached per user with a short TTL.
type Engine struct {
	db    *database.DB
	cache *cache.Cache
	cfg   *config.RecommendConfig
}

// NewEngine creates a recommendation engine with its own response cache.
func NewEngine(db *database.DB, cfg *config.RecommendConfig) *Engine {
	return &Engine{
		db:    db,
		cache: cache.New(cfg.CacheTTL),
		cfg:   cfg,
	}
}

// Recommend returns recipes matching the user's stored preferences, sorted by
// popularity desc then rating desc then name asc. Limit defaults to the
// configured value and is capped at the configured maximum.
func (e *Engine) Recommend(ctx context.Context, userID string, limit int) ([]models.Recipe, error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendation("personalized", time.Since(start)) }()

	limit = e.clampLimit(limit)

	// Keys are prefixed by user so a profile edit can invalidate every
	// cached limit variant at once.
	key := fmt.Sprintf("recommend:%s:%d", userID, limit)
	if cached, ok := e.cache.Get(key); ok {
		metrics.RecordCacheAccess("recommend", true)
		return cached.([]models.Recipe), nil
	}
	metrics.RecordCacheAccess("recommend", false)

	profile, err := e.db.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	recipes, err := e.db.GetAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	filter := BuildFilter(profile)
	matched := make([]models.Recipe, 0, limit)
	for i := range recipes {
		if filter.Matches(&recipes[i]) {
			matched = append(matched, recipes[i])
		}
	}

	sortByPopularity(matched)
	if len(matched) > limit {
		matched = matched[:limit]
	}

	e.cache.Set(key, matched)
	return matched, nil
}

// InvalidateUser drops the cached recommendations for a user. Called when the
// profile changes so stale preferences never outlive the edit.
func (e *Engine) InvalidateUser(userID string) {
	e.cache.DeletePrefix(fmt.Sprintf("recommend:%s:", userID))
}

// QuickRecipes returns recipes whose combined prep and cook time fits within
// maxTotalMinutes, sorted by popularity desc. A non-positive threshold uses
// the configured default.
func (e *Engine) QuickRecipes(ctx context.Context, maxTotalMinutes, limit int) ([]models.Recipe, error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendation("quick", time.Since(start)) }()

	if maxTotalMinutes <= 0 {
		maxTotalMinutes = e.cfg.QuickMinutes
	}
	limit = e.clampLimit(limit)

	recipes, err := e.db.GetAllRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	quick := make([]models.Recipe, 0, limit)
	for i := range recipes {
		if recipes[i].TotalMinutes() <= maxTotalMinutes {
			quick = append(quick, recipes[i])
		}
	}

	sortByPopularity(quick)
	if len(quick) > limit {
		quick = quick[:limit]
	}
	return quick, nil
}

// Trending returns recipes created within the sliding window, sorted by
// popularity desc. Unknown windows are rejected with a ValidationError.
func (e *Engine) Trending(ctx context.Context, window TrendingWindow, limit int) ([]models.Recipe, error) {
	start := time.Now()
	defer func() { metrics.RecordRecommendation("trending", time.Since(start)) }()

	duration, ok := window.Duration()
	if !ok {
		return nil, models.NewValidationError("window", "must be one of: day, week, month")
	}
	limit = e.clampLimit(limit)

	cutoff := time.Now().UTC().Add(-duration)
	return e.db.GetRecipesCreatedSince(ctx, cutoff, limit)
}

func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}
	if limit > e.cfg.MaxLimit {
		limit = e.cfg.MaxLimit
	}
	return limit
}

// sortByPopularity orders recipes by popularity desc, rating desc, then name
// asc so equal-popularity results stay deterministic.
func sortByPopularity(recipes []models.Recipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		if recipes[i].Popularity != recipes[j].Popularity {
			return recipes[i].Popularity > recipes[j].Popularity
		}
		if recipes[i].Rating.Average != recipes[j].Rating.Average {
			return recipes[i].Rating.Average > recipes[j].Rating.Average
		}
		return recipes[i].Name < recipes[j].Name
	})
}
