// Package catalog provides the category taxonomy the engine consumes:
// display names, icons, field definitions, and required-field lists.
// The taxonomy is owned elsewhere; this package only reads a published
// snapshot and serves lookups.
package catalog

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// Provider is the read-only category lookup injected into every component
// that needs taxonomy data.
type Provider interface {
	Category(id string) (*domain.Category, bool)
	Categories() []domain.Category
}

// catalogFile is the on-disk shape of the taxonomy snapshot.
type catalogFile struct {
	Categories []domain.Category `yaml:"categories"`
}

// FileProvider serves the taxonomy from a YAML snapshot file. Reload swaps
// the whole snapshot atomically, so lookups never observe a half-loaded
// catalog.
type FileProvider struct {
	path string

	mu      sync.RWMutex
	byID    map[string]*domain.Category
	ordered []domain.Category
}

// NewFileProvider loads the taxonomy from path. The initial load must
// succeed; later reload failures keep the previous snapshot.
func NewFileProvider(path string) (*FileProvider, error) {
	p := &FileProvider{path: path}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the snapshot file and replaces the in-memory catalog.
func (p *FileProvider) Reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("reading catalog file: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if len(f.Categories) == 0 {
		return fmt.Errorf("catalog file %s defines no categories", p.path)
	}

	byID := make(map[string]*domain.Category, len(f.Categories))
	for i := range f.Categories {
		c := &f.Categories[i]
		if c.ID == "" {
			return fmt.Errorf("catalog file %s contains a category without an id", p.path)
		}
		if _, dup := byID[c.ID]; dup {
			return fmt.Errorf("catalog file %s defines category %q twice", p.path, c.ID)
		}
		byID[c.ID] = c
	}

	p.mu.Lock()
	p.byID = byID
	p.ordered = f.Categories
	p.mu.Unlock()

	return nil
}

// Category looks up a category by ID.
func (p *FileProvider) Category(id string) (*domain.Category, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c, ok := p.byID[id]
	return c, ok
}

// Categories returns all categories in file order.
func (p *FileProvider) Categories() []domain.Category {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ordered
}

// Icon returns the display icon for a category, or empty when unknown.
func Icon(p Provider, categoryID string) string {
	if c, ok := p.Category(categoryID); ok {
		return c.Icon
	}
	return ""
}

// DisplayName returns the display name for a category, or empty when unknown.
func DisplayName(p Provider, categoryID string) string {
	if c, ok := p.Category(categoryID); ok {
		return c.DisplayName
	}
	return ""
}
