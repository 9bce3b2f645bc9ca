// Package domain defines the core business types for the exchange
// matching engine.
package domain

import (
	"strings"
	"time"
)

// TradeMode represents how a listing is offered on the marketplace.
type TradeMode string

// Trade mode constants.
const (
	TradeCash     TradeMode = "cash"
	TradeAuction  TradeMode = "auction"
	TradeExchange TradeMode = "exchange"
)

// ListingStatus represents the lifecycle state of a listing.
type ListingStatus string

// Listing status constants. The engine only ever considers active listings.
const (
	StatusActive   ListingStatus = "active"
	StatusInactive ListingStatus = "inactive"
)

// AttributeBag is the open map of category-specific attributes attached to a
// listing (brand, storage, year, ...). For exchange-mode listings it may carry
// a nested wanted-item descriptor under WantedItemKey; everything else is a
// flat key to scalar value mapping. Values are validated at the parse
// boundary, never deeper in the pipeline.
type AttributeBag map[string]any

// WantedItemKey is the reserved bag key holding the structured wanted-item
// descriptor for exchange-mode listings.
const WantedItemKey = "wanted_item"

// String returns the bag value for key rendered as a string, with ok
// reporting whether the key exists with a non-empty scalar value.
func (b AttributeBag) String(key string) (string, bool) {
	v, ok := b[key]
	if !ok {
		return "", false
	}
	s := strings.TrimSpace(Stringify(v))
	return s, s != ""
}

// Listing represents a marketplace listing as read from the listing store.
// The engine never writes listings; this is a read-only snapshot.
type Listing struct {
	ID            string        `json:"id"                             db:"id"`
	Title         string        `json:"title"                          db:"title"`
	CategoryID    string        `json:"category_id"                    db:"category_id"`
	SubcategoryID string        `json:"subcategory_id,omitempty"       db:"subcategory_id"`
	TradeMode     TradeMode     `json:"trade_mode"                     db:"trade_mode"`
	Status        ListingStatus `json:"status"                         db:"status"`
	Price         *float64      `json:"price,omitempty"                db:"price"`
	Images        []string      `json:"images"                         db:"images"`
	Attributes    AttributeBag  `json:"attributes"                     db:"attributes"`
	LegacyText    string        `json:"legacy_exchange_text,omitempty" db:"legacy_exchange_text"`
	Governorate   string        `json:"governorate,omitempty"          db:"governorate"`
	City          string        `json:"city,omitempty"                 db:"city"`
	CreatedAt     time.Time     `json:"created_at"                     db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"                     db:"updated_at"`
}

// WantedItem is the structured description of what a seller wants in return
// for an exchange-mode listing. It is derived from the listing's attribute
// bag on each read and has no independent lifetime.
type WantedItem struct {
	CategoryID    string            `json:"category_id"`
	SubcategoryID string            `json:"subcategory_id,omitempty"`
	Fields        map[string]string `json:"fields"`
	Title         string            `json:"title"`
}

// MatchTier is the human-facing bucket for a numeric match score.
type MatchTier string

// Match tier constants, ordered best to worst.
const (
	TierPerfect MatchTier = "perfect"
	TierStrong  MatchTier = "strong"
	TierGood    MatchTier = "good"
	TierPartial MatchTier = "partial"
)

// MatchResult is one ranked pairwise match for an origin listing.
type MatchResult struct {
	Listing      Listing   `json:"listing"`
	Score        int       `json:"score"`
	Tier         MatchTier `json:"tier"`
	Reasons      []string  `json:"reasons"`
	CategoryIcon string    `json:"category_icon,omitempty"`
}

// ChainLink is one intermediate listing in a 3-party trade cycle.
type ChainLink struct {
	Listing      Listing `json:"listing"`
	DisplayHas   string  `json:"display_has"`
	DisplayWants string  `json:"display_wants"`
	CategoryIcon string  `json:"category_icon,omitempty"`
}

// ChainExchange is a closed 3-party trade loop A→B→C→A. Links holds exactly
// two entries: B then C. Chains are flagged with a fixed score, not
// fine-scored.
type ChainExchange struct {
	Links      []ChainLink `json:"links"`
	TotalScore int         `json:"total_score"`
}

// FieldOption is one selectable value of an enum category field.
type FieldOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field type constants for CategoryField.Type.
const (
	FieldText   = "text"
	FieldNumber = "number"
	FieldSelect = "select"
)

// CategoryField describes one attribute a category's listings may carry.
type CategoryField struct {
	ID      string        `json:"id"                yaml:"id"`
	Label   string        `json:"label"             yaml:"label"`
	Type    string        `json:"type"              yaml:"type"`
	Options []FieldOption `json:"options,omitempty" yaml:"options,omitempty"`
}

// OptionLabel resolves an enum value to its display label. Non-enum fields
// and unknown values fall back to the raw value.
func (f *CategoryField) OptionLabel(value string) string {
	for _, opt := range f.Options {
		if strings.EqualFold(opt.Value, value) {
			return opt.Label
		}
	}
	return value
}

// Subcategory describes a subcategory and its field overrides.
// RequiredFieldIDs, when non-empty, replaces the parent category's required
// list; HiddenFieldIDs removes fields from it.
type Subcategory struct {
	ID               string   `json:"id"                           yaml:"id"`
	DisplayName      string   `json:"display_name"                 yaml:"display_name"`
	RequiredFieldIDs []string `json:"required_field_ids,omitempty" yaml:"required_field_ids,omitempty"`
	HiddenFieldIDs   []string `json:"hidden_field_ids,omitempty"   yaml:"hidden_field_ids,omitempty"`
}

// Category is one node of the marketplace taxonomy as supplied by the
// category config provider.
type Category struct {
	ID               string          `json:"id"                      yaml:"id"`
	DisplayName      string          `json:"display_name"            yaml:"display_name"`
	Icon             string          `json:"icon,omitempty"          yaml:"icon,omitempty"`
	Fields           []CategoryField `json:"fields"                  yaml:"fields"`
	RequiredFieldIDs []string        `json:"required_field_ids"      yaml:"required_field_ids"`
	Subcategories    []Subcategory   `json:"subcategories,omitempty" yaml:"subcategories,omitempty"`
}

// Field looks up a field definition by ID.
func (c *Category) Field(id string) (*CategoryField, bool) {
	for i := range c.Fields {
		if c.Fields[i].ID == id {
			return &c.Fields[i], true
		}
	}
	return nil, false
}

// Subcategory looks up a subcategory definition by ID.
func (c *Category) Subcategory(id string) (*Subcategory, bool) {
	for i := range c.Subcategories {
		if c.Subcategories[i].ID == id {
			return &c.Subcategories[i], true
		}
	}
	return nil, false
}
