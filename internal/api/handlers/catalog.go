package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tabadul/exchange-engine/internal/catalog"
	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// CatalogHandler serves the category catalog.
type CatalogHandler struct {
	catalog catalog.Provider
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(p catalog.Provider) *CatalogHandler {
	return &CatalogHandler{catalog: p}
}

// ListCategoriesInput is the input for the category listing endpoint.
type ListCategoriesInput struct{}

// ListCategoriesOutput is the response for the category listing endpoint.
type ListCategoriesOutput struct {
	Body struct {
		Categories []domain.Category `json:"categories"`
		Total      int               `json:"total"`
	}
}

// ListCategories returns all catalog categories in file order.
func (h *CatalogHandler) ListCategories(
	_ context.Context,
	_ *ListCategoriesInput,
) (*ListCategoriesOutput, error) {
	cats := h.catalog.Categories()

	out := &ListCategoriesOutput{}
	out.Body.Categories = cats
	out.Body.Total = len(cats)
	return out, nil
}

// RegisterCatalogRoutes registers catalog endpoints with the Huma API.
func RegisterCatalogRoutes(api huma.API, h *CatalogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/categories",
		Summary:     "List categories",
		Description: "Returns the category catalog with fields and subcategories.",
		Tags:        []string{"catalog"},
	}, h.ListCategories)
}
