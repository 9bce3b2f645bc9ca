package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabadul/exchange-engine/internal/api/handlers"
	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// staticCatalog serves a fixed category list.
type staticCatalog struct {
	cats []domain.Category
}

func (s *staticCatalog) Category(id string) (*domain.Category, bool) {
	for i := range s.cats {
		if s.cats[i].ID == id {
			return &s.cats[i], true
		}
	}
	return nil, false
}

func (s *staticCatalog) Categories() []domain.Category {
	return s.cats
}

func TestCatalogHandler_ListCategories(t *testing.T) {
	t.Parallel()

	cat := &staticCatalog{cats: []domain.Category{
		{ID: "phones", DisplayName: "Phones", Icon: "phone"},
		{ID: "cars", DisplayName: "Cars", Icon: "car"},
	}}

	h := handlers.NewCatalogHandler(cat)
	_, api := humatest.New(t)
	handlers.RegisterCatalogRoutes(api, h)

	resp := api.Get("/api/v1/catalog/categories")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":2`)
	assert.Contains(t, resp.Body.String(), `"id":"phones"`)
	assert.Contains(t, resp.Body.String(), `"id":"cars"`)
}

func TestCatalogHandler_ListCategories_Empty(t *testing.T) {
	t.Parallel()

	h := handlers.NewCatalogHandler(&staticCatalog{})
	_, api := humatest.New(t)
	handlers.RegisterCatalogRoutes(api, h)

	resp := api.Get("/api/v1/catalog/categories")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total":0`)
}
