package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tabadul/exchange-engine/internal/store"
	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// MatchFinder computes matches and chain exchanges for a listing.
// Satisfied by *engine.Engine.
type MatchFinder interface {
	FindMatches(ctx context.Context, origin *domain.Listing) []domain.MatchResult
	FindChains(ctx context.Context, origin *domain.Listing) []domain.ChainExchange
}

// MatchesHandler handles match and chain lookup endpoints.
type MatchesHandler struct {
	store  store.ListingStore
	finder MatchFinder
}

// NewMatchesHandler creates a new MatchesHandler.
func NewMatchesHandler(s store.ListingStore, f MatchFinder) *MatchesHandler {
	return &MatchesHandler{store: s, finder: f}
}

// GetMatchesInput is the input for the match lookup endpoint.
type GetMatchesInput struct {
	ID string `path:"id" doc:"Origin listing UUID"`
}

// GetMatchesOutput is the response for the match lookup endpoint.
type GetMatchesOutput struct {
	Body struct {
		OriginID string               `json:"origin_id" doc:"Origin listing UUID"`
		Matches  []domain.MatchResult `json:"matches"   doc:"Ranked matches, best first"`
		Total    int                  `json:"total"     doc:"Number of matches returned"`
	}
}

// GetChainsInput is the input for the chain lookup endpoint.
type GetChainsInput struct {
	ID string `path:"id" doc:"Origin listing UUID"`
}

// GetChainsOutput is the response for the chain lookup endpoint.
type GetChainsOutput struct {
	Body struct {
		OriginID string                 `json:"origin_id" doc:"Origin listing UUID"`
		Chains   []domain.ChainExchange `json:"chains"    doc:"Three-party chain proposals"`
		Total    int                    `json:"total"     doc:"Number of chains returned"`
	}
}

// GetMatches returns ranked exchange matches for a listing.
func (h *MatchesHandler) GetMatches(
	ctx context.Context,
	input *GetMatchesInput,
) (*GetMatchesOutput, error) {
	origin, err := h.store.GetListingByID(ctx, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("listing not found")
	}

	matches := h.finder.FindMatches(ctx, origin)
	if matches == nil {
		matches = []domain.MatchResult{}
	}

	out := &GetMatchesOutput{}
	out.Body.OriginID = origin.ID
	out.Body.Matches = matches
	out.Body.Total = len(matches)
	return out, nil
}

// GetChains returns three-party chain exchange proposals for a listing.
func (h *MatchesHandler) GetChains(
	ctx context.Context,
	input *GetChainsInput,
) (*GetChainsOutput, error) {
	origin, err := h.store.GetListingByID(ctx, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("listing not found")
	}

	chains := h.finder.FindChains(ctx, origin)
	if chains == nil {
		chains = []domain.ChainExchange{}
	}

	out := &GetChainsOutput{}
	out.Body.OriginID = origin.ID
	out.Body.Chains = chains
	out.Body.Total = len(chains)
	return out, nil
}

// RegisterMatchRoutes registers match and chain endpoints with the Huma API.
func RegisterMatchRoutes(api huma.API, h *MatchesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-listing-matches",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings/{id}/matches",
		Summary:     "Get exchange matches",
		Description: "Returns ranked exchange matches for the given listing.",
		Tags:        []string{"matches"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetMatches)

	huma.Register(api, huma.Operation{
		OperationID: "get-listing-chains",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings/{id}/chains",
		Summary:     "Get chain exchanges",
		Description: "Returns three-party chain exchange proposals for the given listing.",
		Tags:        []string{"matches"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetChains)
}
