package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

const baseListingsSelect = `SELECT id, title, category_id, subcategory_id,
	trade_mode, status, price, COALESCE(images, '[]'), COALESCE(attributes, '{}'),
	COALESCE(legacy_exchange_text, ''), COALESCE(governorate, ''), COALESCE(city, ''),
	created_at, updated_at
FROM listings`

// Newest first keeps pool contents deterministic for an unchanged snapshot.
const defaultOrder = "created_at DESC, id"

// ToSQL builds the SQL and positional parameters for a category query.
func (q *CategoryQuery) ToSQL() (string, []any) {
	b := newQueryBuilder()
	b.where("category_id = %s", q.CategoryID)
	if q.TradeMode != nil {
		b.where("trade_mode = %s", string(*q.TradeMode))
	}
	b.excludeIDs(q.ExcludeIDs)
	return b.build(q.Limit)
}

// ToSQL builds the SQL and positional parameters for a trade-mode query.
func (q *TradeModeQuery) ToSQL() (string, []any) {
	b := newQueryBuilder()
	b.where("trade_mode = %s", string(q.TradeMode))
	if q.ExcludeID != "" {
		b.where("id <> %s", q.ExcludeID)
	}
	if q.ExcludeCategoryID != "" {
		b.where("category_id <> %s", q.ExcludeCategoryID)
	}
	return b.build(q.Limit)
}

// ToSQL builds the SQL and positional parameters for a text-containment
// query. Containment runs in both directions: the stored text may contain
// the needle or the needle may contain the stored title.
func (q *TextMatchQuery) ToSQL() (string, []any) {
	b := newQueryBuilder()
	b.where(
		"(title ILIKE '%%' || %s || '%%'"+
			" OR legacy_exchange_text ILIKE '%%' || %s || '%%'"+
			" OR %s ILIKE '%%' || title || '%%')",
		q.Text, q.Text, q.Text,
	)
	if q.ExcludeID != "" {
		b.where("id <> %s", q.ExcludeID)
	}
	return b.build(q.Limit)
}

// queryBuilder accumulates WHERE conditions with positional parameters.
// Every built query is restricted to active listings.
type queryBuilder struct {
	conditions []string
	args       []any
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{conditions: []string{"status = 'active'"}}
}

// where appends a condition; each %s in format becomes the next positional
// placeholder bound to the matching arg.
func (b *queryBuilder) where(format string, args ...any) {
	placeholders := make([]any, len(args))
	for i, a := range args {
		b.args = append(b.args, a)
		placeholders[i] = fmt.Sprintf("$%d", len(b.args))
	}
	b.conditions = append(b.conditions, fmt.Sprintf(format, placeholders...))
}

func (b *queryBuilder) excludeIDs(ids []string) {
	for _, id := range ids {
		if id != "" {
			b.where("id <> %s", id)
		}
	}
}

func (b *queryBuilder) build(limit int) (string, []any) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	sql := fmt.Sprintf(
		"%s WHERE %s ORDER BY %s LIMIT %d",
		baseListingsSelect,
		strings.Join(b.conditions, " AND "),
		defaultOrder,
		limit,
	)
	return sql, b.args
}
