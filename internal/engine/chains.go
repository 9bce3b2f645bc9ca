package engine

import (
	"context"
	"time"

	"github.com/tabadul/exchange-engine/internal/catalog"
	"github.com/tabadul/exchange-engine/internal/events"
	"github.com/tabadul/exchange-engine/internal/metrics"
	"github.com/tabadul/exchange-engine/internal/store"
	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// FindChains searches for closed 3-party trade loops A→B→C→A where A is the
// origin. B is fetched from the origin's wanted category, C from B's wanted
// category, and C must want A's own category to close the loop. A candidate
// B that wants A's category directly is a pairwise match, already surfaced
// by FindMatches, and is excluded here so the same trade is never reported
// twice. The search stops once MaxChains chains exist in total.
func (e *Engine) FindChains(ctx context.Context, origin *domain.Listing) []domain.ChainExchange {
	ctx, span := e.tracer.Start(ctx, "engine.FindChains")
	defer span.End()

	start := time.Now()
	metrics.ChainRequestsTotal.Inc()
	defer func() {
		metrics.ChainDuration.Observe(time.Since(start).Seconds())
	}()

	want := e.parser.Parse(origin.Attributes)
	if want == nil {
		return nil
	}

	if e.cache != nil {
		if chains, ok := e.cache.GetChains(ctx, origin.ID); ok {
			metrics.CacheHitsTotal.Inc()
			return chains
		}
		metrics.CacheMissesTotal.Inc()
	}

	chains := e.searchChains(ctx, origin, want)

	e.log.Debug("chains computed", "origin", origin.ID, "chains", len(chains))
	metrics.ChainsFoundTotal.Add(float64(len(chains)))

	if e.cache != nil {
		if err := e.cache.SetChains(ctx, origin.ID, chains); err != nil {
			e.log.Warn("caching chains failed", "origin", origin.ID, "error", err)
		}
	}

	e.publish(events.SubjectChainsComputed, events.ChainsComputed{
		OriginListingID: origin.ID,
		ChainCount:      len(chains),
		ComputedAt:      time.Now().UTC(),
	})

	return chains
}

func (e *Engine) searchChains(
	ctx context.Context,
	origin *domain.Listing,
	want *domain.WantedItem,
) []domain.ChainExchange {
	exchange := domain.TradeExchange

	bs := e.fetchPool(ctx, "chain_b", func() ([]domain.Listing, error) {
		return e.store.QueryByCategory(ctx, store.CategoryQuery{
			CategoryID: want.CategoryID,
			TradeMode:  &exchange,
			ExcludeIDs: []string{origin.ID},
			Limit:      e.limits.ChainBCap,
		})
	})

	var chains []domain.ChainExchange

	for i := range bs {
		b := &bs[i]

		bWant := e.parser.Parse(b.Attributes)
		if bWant == nil || bWant.CategoryID == origin.CategoryID {
			continue
		}

		targetCategory := bWant.CategoryID
		cs := e.fetchPool(ctx, "chain_c", func() ([]domain.Listing, error) {
			return e.store.QueryByCategory(ctx, store.CategoryQuery{
				CategoryID: targetCategory,
				TradeMode:  &exchange,
				ExcludeIDs: []string{origin.ID, b.ID},
				Limit:      e.limits.ChainCCap,
			})
		})

		for j := range cs {
			c := &cs[j]

			cWant := e.parser.Parse(c.Attributes)
			if cWant == nil || cWant.CategoryID != origin.CategoryID {
				continue
			}

			chains = append(chains, domain.ChainExchange{
				Links: []domain.ChainLink{
					e.chainLink(b, bWant),
					e.chainLink(c, cWant),
				},
				TotalScore: e.limits.ChainScore,
			})
			if len(chains) >= e.limits.MaxChains {
				return chains
			}
		}
	}

	return chains
}

// chainLink renders one intermediate listing for display: what its owner
// has and what they want in return.
func (e *Engine) chainLink(l *domain.Listing, want *domain.WantedItem) domain.ChainLink {
	displayWants := want.Title
	if displayWants == "" {
		displayWants = catalog.DisplayName(e.catalog, want.CategoryID)
	}

	return domain.ChainLink{
		Listing:      *l,
		DisplayHas:   l.Title,
		DisplayWants: displayWants,
		CategoryIcon: catalog.Icon(e.catalog, l.CategoryID),
	}
}
