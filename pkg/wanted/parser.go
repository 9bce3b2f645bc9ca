// Package wanted decodes the structured wanted-item descriptor embedded in a
// listing's attribute bag and renders its human-readable title.
package wanted

import (
	"slices"
	"strings"

	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// Catalog is the read-only category lookup the parser needs. The full
// provider lives in internal/catalog; only the lookup is required here.
type Catalog interface {
	Category(id string) (*domain.Category, bool)
}

// Parser turns attribute bags into wanted-item descriptors. The catalog is
// injected so the parser stays testable with fixture categories.
type Parser struct {
	catalog Catalog
}

// NewParser creates a Parser backed by the given catalog.
func NewParser(c Catalog) *Parser {
	return &Parser{catalog: c}
}

// Parse extracts the wanted-item descriptor from an attribute bag.
// It fails soft: a missing descriptor, a malformed one, or a category ID the
// catalog does not know all yield nil, never an error. The returned item
// carries a generated title.
func (p *Parser) Parse(bag domain.AttributeBag) *domain.WantedItem {
	if len(bag) == 0 {
		return nil
	}

	raw, ok := bag[domain.WantedItemKey].(map[string]any)
	if !ok {
		return nil
	}

	categoryID, ok := domain.AttributeBag(raw).String("category_id")
	if !ok {
		return nil
	}
	if _, known := p.catalog.Category(categoryID); !known {
		return nil
	}

	item := &domain.WantedItem{
		CategoryID: categoryID,
		Fields:     map[string]string{},
	}
	if sub, ok := domain.AttributeBag(raw).String("subcategory_id"); ok {
		item.SubcategoryID = sub
	}

	// Only non-empty scalar values survive the parse boundary.
	if fields, ok := raw["fields"].(map[string]any); ok {
		for key, v := range fields {
			if s := strings.TrimSpace(domain.Stringify(v)); s != "" {
				item.Fields[key] = s
			}
		}
	}

	item.Title = p.Title(item.CategoryID, item.Fields, item.SubcategoryID)
	return item
}

// Title renders the human-readable label for a wanted item, mirroring how
// listing titles are auto-generated elsewhere in the marketplace: resolved
// labels of the category's required fields joined with an em-dash separator,
// falling back to the category display name when nothing resolves.
func (p *Parser) Title(categoryID string, fields map[string]string, subcategoryID string) string {
	cat, ok := p.catalog.Category(categoryID)
	if !ok {
		return ""
	}

	var labels []string
	for _, fieldID := range requiredFields(cat, subcategoryID) {
		value, ok := fields[fieldID]
		if !ok || value == "" {
			continue
		}
		label := value
		if def, ok := cat.Field(fieldID); ok && def.Type == domain.FieldSelect {
			label = def.OptionLabel(value)
		}
		labels = append(labels, label)
	}

	if len(labels) == 0 {
		return cat.DisplayName
	}
	return strings.Join(labels, " — ")
}

// requiredFields returns the category's required field IDs with any
// subcategory override applied and hidden fields excluded.
func requiredFields(cat *domain.Category, subcategoryID string) []string {
	required := cat.RequiredFieldIDs
	var hidden []string

	if subcategoryID != "" {
		if sub, ok := cat.Subcategory(subcategoryID); ok {
			if len(sub.RequiredFieldIDs) > 0 {
				required = sub.RequiredFieldIDs
			}
			hidden = sub.HiddenFieldIDs
		}
	}

	if len(hidden) == 0 {
		return required
	}

	out := make([]string, 0, len(required))
	for _, id := range required {
		if !slices.Contains(hidden, id) {
			out = append(out, id)
		}
	}
	return out
}
