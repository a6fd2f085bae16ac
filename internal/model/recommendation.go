package model

import "math"

// Recommendation is the decision for a vessel/cargo pairing.
// Keep these values stable; they are intended for CSV and API output.
type Recommendation string

const (
	RecommendAssign  Recommendation = "ASSIGN"
	RecommendHedge   Recommendation = "HEDGE"
	RecommendDecline Recommendation = "DECLINE"
)

// hedgeBand is the fraction of the original profit an adjusted loss may
// reach before a hedge turns into a decline.
const hedgeBand = 0.05

// Recommend maps an adjusted profit to a decision:
// - adjusted >= 0 -> ASSIGN
// - -5% of max(1, original) < adjusted < 0 -> HEDGE
// - otherwise -> DECLINE
func Recommend(origProfit, adjProfit float64) Recommendation {
	switch {
	case adjProfit >= 0:
		return RecommendAssign
	case adjProfit > -hedgeBand*math.Max(1.0, origProfit):
		return RecommendHedge
	default:
		return RecommendDecline
	}
}

// Reasons returns the human-readable justification shown next to a decision.
func (r Recommendation) Reasons() []string {
	switch r {
	case RecommendAssign:
		return []string{
			"Adjusted profit is positive under provided bunker prices.",
			"TCE remains attractive relative to expected operating costs.",
		}
	case RecommendHedge:
		return []string{
			"Profit turned slightly negative; consider hedging bunker exposure.",
			"Monitor market and re-evaluate with updated FFA quotes.",
		}
	case RecommendDecline:
		return []string{
			"Adjusted profit materially negative; do not proceed without better rates.",
			"Consider re-pricing or waiting for improved market conditions.",
		}
	default:
		return nil
	}
}
