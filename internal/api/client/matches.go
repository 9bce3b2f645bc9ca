package client

import (
	"context"
	"fmt"

	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// MatchesResponse wraps a match lookup response.
type MatchesResponse struct {
	OriginID string               `json:"origin_id"`
	Matches  []domain.MatchResult `json:"matches"`
	Total    int                  `json:"total"`
}

// ChainsResponse wraps a chain lookup response.
type ChainsResponse struct {
	OriginID string                 `json:"origin_id"`
	Chains   []domain.ChainExchange `json:"chains"`
	Total    int                    `json:"total"`
}

// CategoriesResponse wraps the category catalog response.
type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
	Total      int               `json:"total"`
}

// GetListing returns a single listing by ID.
func (c *Client) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	var l domain.Listing
	if err := c.get(ctx, fmt.Sprintf("/api/v1/listings/%s", id), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Matches returns ranked exchange matches for a listing.
func (c *Client) Matches(ctx context.Context, id string) (*MatchesResponse, error) {
	var resp MatchesResponse
	if err := c.get(ctx, fmt.Sprintf("/api/v1/listings/%s/matches", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Chains returns three-party chain exchange proposals for a listing.
func (c *Client) Chains(ctx context.Context, id string) (*ChainsResponse, error) {
	var resp ChainsResponse
	if err := c.get(ctx, fmt.Sprintf("/api/v1/listings/%s/chains", id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Categories returns the category catalog.
func (c *Client) Categories(ctx context.Context) (*CategoriesResponse, error) {
	var resp CategoriesResponse
	if err := c.get(ctx, "/api/v1/catalog/categories", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
