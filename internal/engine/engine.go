// Package engine implements the exchange matching core: candidate retrieval,
// pairwise match ranking, and 3-party chain detection. The engine is
// stateless and strictly read-only against the listing store; every call is
// an independent best-effort pass with no retries.
package engine

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tabadul/exchange-engine/internal/cache"
	"github.com/tabadul/exchange-engine/internal/catalog"
	"github.com/tabadul/exchange-engine/internal/events"
	"github.com/tabadul/exchange-engine/internal/store"
	"github.com/tabadul/exchange-engine/pkg/matcher"
	"github.com/tabadul/exchange-engine/pkg/wanted"
)

// Limits bounds the engine's search breadth. These are deliberate caps, not
// claims of exhaustiveness; they keep latency predictable under any store
// size.
type Limits struct {
	// Pairwise matching.
	PoolACap   int // same-category pool
	PoolBCap   int // cross-category exchange pool
	PoolCCap   int // legacy-text containment pool
	FloorScore int // results below this are noise, dropped before ranking
	MaxResults int

	// Chain detection. MaxChains is a global cap across the whole search,
	// not per outer candidate.
	ChainBCap  int
	ChainCCap  int
	MaxChains  int
	ChainScore int // chains are flagged with a fixed score, not fine-scored
}

// DefaultLimits returns the production search bounds.
func DefaultLimits() Limits {
	return Limits{
		PoolACap:   15,
		PoolBCap:   10,
		PoolCCap:   6,
		FloorScore: 15,
		MaxResults: 12,
		ChainBCap:  10,
		ChainCCap:  5,
		MaxChains:  3,
		ChainScore: 70,
	}
}

// Engine computes exchange matches and trade chains for origin listings.
// Safe for concurrent use; it holds no mutable state between calls.
type Engine struct {
	store   store.ListingStore
	catalog catalog.Provider
	parser  *wanted.Parser
	matcher *matcher.Matcher

	cache     *cache.MatchCache
	publisher events.Publisher

	log    *slog.Logger
	tracer trace.Tracer
	limits Limits
}

// NewEngine creates an Engine reading from s with taxonomy from cat.
func NewEngine(s store.ListingStore, cat catalog.Provider, opts ...Option) *Engine {
	parser := wanted.NewParser(cat)

	eng := &Engine{
		store:   s,
		catalog: cat,
		parser:  parser,
		matcher: matcher.New(parser),
		log:     slog.Default(),
		tracer:  otel.Tracer("exchange-engine"),
		limits:  DefaultLimits(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithLimits overrides the default search bounds.
func WithLimits(l Limits) Option {
	return func(e *Engine) {
		e.limits = l
	}
}

// WithCache enables the Redis match-result cache.
func WithCache(c *cache.MatchCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithPublisher enables analytic event publishing.
func WithPublisher(p events.Publisher) Option {
	return func(e *Engine) {
		e.publisher = p
	}
}

// publish sends an analytic event when a publisher is configured. Broker
// trouble never affects the match pipeline.
func (e *Engine) publish(subject string, event any) {
	if e.publisher == nil {
		return
	}
	// Detached context: the event outlives the request that produced it.
	if err := e.publisher.Publish(context.Background(), subject, event); err != nil {
		e.log.Warn("event publish failed", "subject", subject, "error", err)
	}
}
