// Package matcher computes pairwise compatibility between a candidate listing
// and a wanted-item descriptor. Scoring is deterministic, pure, and additive:
// beyond the category-mismatch short circuit no factor ever subtracts points.
package matcher

import (
	"fmt"
	"strings"

	domain "github.com/tabadul/exchange-engine/pkg/types"
)

// Scoring constants. Category contributes up to 30 points, field overlap up
// to 40, and the bidirectional factor up to 30, for a 100-point ceiling.
const (
	// MismatchScore is returned when the candidate's category differs from
	// the wanted category. It sits below every floor threshold by design
	// of the pairwise pipeline.
	MismatchScore = 5

	categoryPoints    = 20
	subcategoryPoints = 10

	fieldBudget       = 40
	perFieldCap       = 15
	emptyWantBaseline = 15

	reverseInterestPoints = 15
	reverseFieldBudget    = 15
)

// WantedParser extracts a wanted-item descriptor from an attribute bag.
// Satisfied by *wanted.Parser.
type WantedParser interface {
	Parse(bag domain.AttributeBag) *domain.WantedItem
}

// Result holds a compatibility score and the reasons behind it, in the order
// they were discovered.
type Result struct {
	Score   int
	Reasons []string
}

// Matcher scores candidate listings against wanted-item descriptors.
type Matcher struct {
	parser WantedParser
}

// New creates a Matcher using the given parser for the bidirectional factor.
func New(p WantedParser) *Matcher {
	return &Matcher{parser: p}
}

// Score computes the 0-100 compatibility between candidate and want.
// originCategoryID and originAttrs describe the listing the user is trading
// away; they feed the bidirectional factor only.
func (m *Matcher) Score(
	candidate *domain.Listing,
	want *domain.WantedItem,
	originCategoryID string,
	originAttrs domain.AttributeBag,
) Result {
	// Hard cutoff, not a penalty: a candidate in the wrong category is
	// never scored further.
	if candidate.CategoryID != want.CategoryID {
		return Result{Score: MismatchScore, Reasons: []string{"different category"}}
	}

	r := Result{}

	r.Score += categoryPoints
	r.Reasons = append(r.Reasons, "same category as requested")

	if want.SubcategoryID != "" && want.SubcategoryID == candidate.SubcategoryID {
		r.Score += subcategoryPoints
		r.Reasons = append(r.Reasons, "exact subcategory match")
	}

	m.scoreFields(&r, candidate, want)
	m.scoreReverse(&r, candidate, originCategoryID, originAttrs)

	r.Score = clamp(r.Score)
	return r
}

// scoreFields awards up to fieldBudget points for overlap between the wanted
// fields and the candidate's attributes. An unconstrained want gets a flat
// baseline instead.
func (m *Matcher) scoreFields(r *Result, candidate *domain.Listing, want *domain.WantedItem) {
	total := len(want.Fields)
	if total == 0 {
		r.Score += emptyWantBaseline
		return
	}

	// Capped so a single-field want cannot trivially take the full budget.
	perField := fieldBudget / total
	if perField > perFieldCap {
		perField = perFieldCap
	}

	matched := countFieldMatches(want.Fields, candidate.Attributes)
	r.Score += matched * perField

	switch {
	case matched == total:
		r.Reasons = append(r.Reasons, fmt.Sprintf("all %d requested fields match", total))
	case matched > 0:
		r.Reasons = append(r.Reasons, fmt.Sprintf("%d of %d requested fields match", matched, total))
	}
}

// scoreReverse awards up to 30 points when the candidate's own wanted item
// points back at the origin listing.
func (m *Matcher) scoreReverse(
	r *Result,
	candidate *domain.Listing,
	originCategoryID string,
	originAttrs domain.AttributeBag,
) {
	if candidate.TradeMode != domain.TradeExchange {
		return
	}

	theirs := m.parser.Parse(candidate.Attributes)
	if theirs == nil || theirs.CategoryID != originCategoryID {
		return
	}

	r.Score += reverseInterestPoints
	interestReason := "the other side wants what you have"

	total := len(theirs.Fields)
	if total == 0 {
		r.Reasons = append(r.Reasons, interestReason)
		return
	}

	matched := countFieldMatches(theirs.Fields, originAttrs)
	if matched == total {
		r.Score += reverseFieldBudget
		r.Reasons = append(r.Reasons, "perfect swap: each side has what the other wants")
		return
	}

	r.Score += matched * reverseFieldBudget / total
	r.Reasons = append(r.Reasons, interestReason)
}

// countFieldMatches compares desired field values against an attribute bag,
// case-insensitively as strings.
func countFieldMatches(fields map[string]string, bag domain.AttributeBag) int {
	matched := 0
	for key, wantValue := range fields {
		if haveValue, ok := bag.String(key); ok && strings.EqualFold(wantValue, haveValue) {
			matched++
		}
	}
	return matched
}

func clamp(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
