// Package store defines the listing-store abstraction the matching engine
// reads from. The engine depends on the ListingStore interface, never on a
// concrete implementation, which keeps it testable without a running
// database. The engine never writes listings: every method is a read.
package store

import (
	"context"

	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// CategoryQuery fetches active listings in one category. TradeMode, when
// set, narrows to a single trade mode (the chain detector only wants
// exchange-mode listings).
type CategoryQuery struct {
	CategoryID string
	TradeMode  *domain.TradeMode
	ExcludeIDs []string
	Limit      int
}

// TradeModeQuery fetches active listings by trade mode across categories.
// ExcludeCategoryID skips a category already covered by another pool.
type TradeModeQuery struct {
	TradeMode         domain.TradeMode
	ExcludeID         string
	ExcludeCategoryID string
	Limit             int
}

// TextMatchQuery fetches active listings whose title or legacy exchange text
// contains the given text, or whose title is contained in it. Plain substring
// containment, not fuzzy search; this is the compatibility path for listings
// created before structured wanted items existed.
type TextMatchQuery struct {
	Text      string
	ExcludeID string
	Limit     int
}

// ListingStore defines all listing reads the engine performs. Every query is
// implicitly restricted to active listings.
type ListingStore interface {
	GetListingByID(ctx context.Context, id string) (*domain.Listing, error)
	QueryByCategory(ctx context.Context, q CategoryQuery) ([]domain.Listing, error)
	QueryByTradeMode(ctx context.Context, q TradeModeQuery) ([]domain.Listing, error)
	QueryByTextMatch(ctx context.Context, q TextMatchQuery) ([]domain.Listing, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
