package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tabadul/exchange-engine/internal/api/handlers"
	storeMocks "github.com/tabadul/exchange-engine/internal/store/mocks"
	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// fakeFinder returns canned results for match and chain lookups.
type fakeFinder struct {
	matches []domain.MatchResult
	chains  []domain.ChainExchange
}

func (f *fakeFinder) FindMatches(_ context.Context, _ *domain.Listing) []domain.MatchResult {
	return f.matches
}

func (f *fakeFinder) FindChains(_ context.Context, _ *domain.Listing) []domain.ChainExchange {
	return f.chains
}

func TestMatchesHandler_GetMatches(t *testing.T) {
	t.Parallel()

	origin := &domain.Listing{
		ID:         "a1",
		Title:      "iPhone 13",
		CategoryID: "phones",
		TradeMode:  domain.TradeExchange,
	}

	tests := []struct {
		name       string
		id         string
		finder     *fakeFinder
		setupMock  func(*storeMocks.MockListingStore)
		wantStatus int
		wantBody   string
	}{
		{
			name: "ranked matches returned",
			id:   "a1",
			finder: &fakeFinder{matches: []domain.MatchResult{
				{
					Listing: domain.Listing{ID: "b1", Title: "Galaxy S22"},
					Score:   85,
					Tier:    domain.TierPerfect,
					Reasons: []string{"same category"},
				},
			}},
			setupMock: func(m *storeMocks.MockListingStore) {
				m.On("GetListingByID", mock.Anything, "a1").
					Return(origin, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total":1`,
		},
		{
			name:   "no matches returns empty array",
			id:     "a1",
			finder: &fakeFinder{},
			setupMock: func(m *storeMocks.MockListingStore) {
				m.On("GetListingByID", mock.Anything, "a1").
					Return(origin, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"matches":[]`,
		},
		{
			name:   "unknown listing returns 404",
			id:     "missing",
			finder: &fakeFinder{},
			setupMock: func(m *storeMocks.MockListingStore) {
				m.On("GetListingByID", mock.Anything, "missing").
					Return(nil, assert.AnError).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `listing not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockStore := storeMocks.NewMockListingStore(t)
			tt.setupMock(mockStore)

			h := handlers.NewMatchesHandler(mockStore, tt.finder)

			_, api := humatest.New(t)
			handlers.RegisterMatchRoutes(api, h)

			resp := api.Get("/api/v1/listings/" + tt.id + "/matches")
			require.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestMatchesHandler_GetChains(t *testing.T) {
	t.Parallel()

	origin := &domain.Listing{
		ID:         "a1",
		Title:      "iPhone 13",
		CategoryID: "phones",
		TradeMode:  domain.TradeExchange,
	}

	tests := []struct {
		name       string
		id         string
		finder     *fakeFinder
		setupMock  func(*storeMocks.MockListingStore)
		wantStatus int
		wantBody   string
	}{
		{
			name: "chains returned",
			id:   "a1",
			finder: &fakeFinder{chains: []domain.ChainExchange{
				{
					Links: []domain.ChainLink{
						{Listing: domain.Listing{ID: "b1"}, DisplayHas: "Toyota Corolla"},
						{Listing: domain.Listing{ID: "c1"}, DisplayHas: "Gold bracelet"},
					},
					TotalScore: 70,
				},
			}},
			setupMock: func(m *storeMocks.MockListingStore) {
				m.On("GetListingByID", mock.Anything, "a1").
					Return(origin, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total_score":70`,
		},
		{
			name:   "no chains returns empty array",
			id:     "a1",
			finder: &fakeFinder{},
			setupMock: func(m *storeMocks.MockListingStore) {
				m.On("GetListingByID", mock.Anything, "a1").
					Return(origin, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"chains":[]`,
		},
		{
			name:   "unknown listing returns 404",
			id:     "missing",
			finder: &fakeFinder{},
			setupMock: func(m *storeMocks.MockListingStore) {
				m.On("GetListingByID", mock.Anything, "missing").
					Return(nil, assert.AnError).Once()
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `listing not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockStore := storeMocks.NewMockListingStore(t)
			tt.setupMock(mockStore)

			h := handlers.NewMatchesHandler(mockStore, tt.finder)

			_, api := humatest.New(t)
			handlers.RegisterMatchRoutes(api, h)

			resp := api.Get("/api/v1/listings/" + tt.id + "/chains")
			require.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}
