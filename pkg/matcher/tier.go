package matcher

import domain "github.com/tabadul/exchange-engine/pkg/types"

// Tier boundaries. Each boundary is inclusive on its lower bound; the
// ordering must be preserved exactly because UI copy names the four tiers.
const (
	tierPerfectMin = 80
	tierStrongMin  = 60
	tierGoodMin    = 40
)

// TierFor maps a score to its match tier. It is a monotonic step function.
func TierFor(score int) domain.MatchTier {
	switch {
	case score >= tierPerfectMin:
		return domain.TierPerfect
	case score >= tierStrongMin:
		return domain.TierStrong
	case score >= tierGoodMin:
		return domain.TierGood
	default:
		return domain.TierPartial
	}
}
