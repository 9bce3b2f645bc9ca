package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tabadul/exchange-engine/internal/catalog"
	"github.com/tabadul/exchange-engine/internal/events"
	"github.com/tabadul/exchange-engine/internal/metrics"
	"github.com/tabadul/exchange-engine/internal/store"
	"github.com/tabadul/exchange-engine/pkg/matcher"
	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// Candidate pool names, used for logging and metrics.
const (
	poolCategory = "category"
	poolExchange = "exchange"
	poolLegacy   = "legacy_text"
)

// FindMatches returns the ranked pairwise exchange matches for an origin
// listing, at most MaxResults entries, best first. An origin without a
// parseable wanted item has no exchange intent and yields no matches.
// Retrieval failures degrade to empty pools; the call itself never fails.
func (e *Engine) FindMatches(ctx context.Context, origin *domain.Listing) []domain.MatchResult {
	ctx, span := e.tracer.Start(ctx, "engine.FindMatches")
	defer span.End()

	start := time.Now()
	metrics.MatchRequestsTotal.Inc()
	defer func() {
		metrics.MatchDuration.Observe(time.Since(start).Seconds())
	}()

	want := e.parser.Parse(origin.Attributes)
	if want == nil {
		return nil
	}

	if e.cache != nil {
		if matches, ok := e.cache.GetMatches(ctx, origin.ID); ok {
			metrics.CacheHitsTotal.Inc()
			return matches
		}
		metrics.CacheMissesTotal.Inc()
	}

	candidates := e.retrieveCandidates(ctx, origin, want)
	results := e.rankCandidates(candidates, origin, want)

	e.log.Debug("matches computed",
		"origin", origin.ID,
		"candidates", len(candidates),
		"results", len(results),
	)

	if e.cache != nil {
		if err := e.cache.SetMatches(ctx, origin.ID, results); err != nil {
			e.log.Warn("caching matches failed", "origin", origin.ID, "error", err)
		}
	}

	event := events.MatchesComputed{
		OriginListingID: origin.ID,
		ResultCount:     len(results),
		ComputedAt:      time.Now().UTC(),
	}
	if len(results) > 0 {
		event.TopScore = results[0].Score
	}
	e.publish(events.SubjectMatchesComputed, event)

	return results
}

// retrieveCandidates collects the three candidate pools concurrently and
// merges them in pool order, deduplicating by listing ID. First occurrence
// wins, which decides whose narrative survives when a listing shows up in
// more than one pool. Dedup runs after all pools are collected, so the
// concurrent fetch order cannot affect the result.
func (e *Engine) retrieveCandidates(
	ctx context.Context,
	origin *domain.Listing,
	want *domain.WantedItem,
) []domain.Listing {
	ctx, span := e.tracer.Start(ctx, "engine.retrieveCandidates")
	defer span.End()

	var (
		wg                  sync.WaitGroup
		poolA, poolB, poolC []domain.Listing
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		poolA = e.fetchPool(ctx, poolCategory, func() ([]domain.Listing, error) {
			return e.store.QueryByCategory(ctx, store.CategoryQuery{
				CategoryID: want.CategoryID,
				ExcludeIDs: []string{origin.ID},
				Limit:      e.limits.PoolACap,
			})
		})
	}()
	go func() {
		defer wg.Done()
		poolB = e.fetchPool(ctx, poolExchange, func() ([]domain.Listing, error) {
			return e.store.QueryByTradeMode(ctx, store.TradeModeQuery{
				TradeMode:         domain.TradeExchange,
				ExcludeID:         origin.ID,
				ExcludeCategoryID: want.CategoryID,
				Limit:             e.limits.PoolBCap,
			})
		})
	}()

	// Pool C only exists for listings created before structured wanted
	// items; containment runs against the origin's title.
	if origin.LegacyText != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			poolC = e.fetchPool(ctx, poolLegacy, func() ([]domain.Listing, error) {
				return e.store.QueryByTextMatch(ctx, store.TextMatchQuery{
					Text:      origin.Title,
					ExcludeID: origin.ID,
					Limit:     e.limits.PoolCCap,
				})
			})
		}()
	}

	wg.Wait()

	seen := map[string]struct{}{origin.ID: {}}
	var merged []domain.Listing
	for _, pool := range [][]domain.Listing{poolA, poolB, poolC} {
		for _, l := range pool {
			if _, dup := seen[l.ID]; dup {
				continue
			}
			seen[l.ID] = struct{}{}
			merged = append(merged, l)
		}
	}
	return merged
}

// fetchPool runs one store query, absorbing failures into an empty pool.
func (e *Engine) fetchPool(
	ctx context.Context,
	pool string,
	query func() ([]domain.Listing, error),
) []domain.Listing {
	listings, err := query()
	if err != nil {
		if ctx.Err() == nil {
			e.log.Warn("candidate pool query failed", "pool", pool, "error", err)
		}
		metrics.RetrievalFailuresTotal.WithLabelValues(pool).Inc()
		return nil
	}
	metrics.CandidatePoolSize.WithLabelValues(pool).Observe(float64(len(listings)))
	return listings
}

// rankCandidates scores every candidate, drops noise below the floor
// threshold, and returns the top results ordered by score descending.
// The sort is stable so equal scores keep their pool order, which makes
// repeated calls over an unchanged snapshot return identical rankings.
func (e *Engine) rankCandidates(
	candidates []domain.Listing,
	origin *domain.Listing,
	want *domain.WantedItem,
) []domain.MatchResult {
	results := make([]domain.MatchResult, 0, len(candidates))

	for i := range candidates {
		cand := &candidates[i]
		scored := e.matcher.Score(cand, want, origin.CategoryID, origin.Attributes)
		if scored.Score < e.limits.FloorScore {
			continue
		}

		metrics.MatchScoreDistribution.Observe(float64(scored.Score))
		results = append(results, domain.MatchResult{
			Listing:      *cand,
			Score:        scored.Score,
			Tier:         matcher.TierFor(scored.Score),
			Reasons:      scored.Reasons,
			CategoryIcon: catalog.Icon(e.catalog, cand.CategoryID),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > e.limits.MaxResults {
		results = results[:e.limits.MaxResults]
	}
	return results
}
