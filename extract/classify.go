// Package extract converts parsed page documents into typed claims:
// classification by prioritized keyword rules, numeric and duration
// extraction, and safety-flag detection.
package extract

import (
	"strings"

	"github.com/cdunford/claimharvest"
)

// overviewMinLength is the raw text length at or above which an unmatched
// text unit is treated as an overview rather than noise.
const overviewMinLength = 140

// rule pairs a claim type with the substrings that trigger it.
type rule struct {
	claimType claimharvest.ClaimType
	keywords  []string
}

// classifyRules is an ordered cascade: the first matching rule wins, so a
// sentence with both "warning" and "dose" classifies as a warning.
var classifyRules = []rule{
	{claimharvest.ClaimContraindication, []string{"contraindication", "do not take if", "do not use if"}},
	{claimharvest.ClaimWarning, []string{"warning", "important:", "mistake", "risk", "danger"}},
	{claimharvest.ClaimReconstitution, []string{"reconstitution", "mix with", "bac water", "bacteriostatic", "dilution", "reconstitute"}},
	{claimharvest.ClaimStorage, []string{"storage", "refriger", "room temperature", "freeze", "shelf life"}},
	{claimharvest.ClaimSideEffect, []string{"side effects", "adverse", "nausea", "headache", "fatigue", "insomnia"}},
	{claimharvest.ClaimCycleObserved, []string{"cycle", "washout"}},
	{claimharvest.ClaimScheduleObserved, []string{"daily", "weekly", "1x/day", "2x/day", "every", "per week"}},
	{claimharvest.ClaimDosingObserved, []string{"dose", "units", "mcg", "mg", "iu", "ml"}},
	{claimharvest.ClaimTitrationObserved, []string{"increase dose", "titrate", "intervals", "maximum dose"}},
	{claimharvest.ClaimStackingObserved, []string{"stacking", "suggested pairings", "pairings"}},
	{claimharvest.ClaimMechanism, []string{"mechanism", "pathway", "receptor", "binds", "agonist", "antagonist"}},
	{claimharvest.ClaimBenefit, []string{"benefit", "helps", "improves", "useful in", "promotes", "supports"}},
}

// Classify assigns a claim type to one text unit. Matching is
// case-insensitive substring containment over the ordered rule cascade;
// unmatched text falls back to overview if long enough, else other.
func Classify(text string) claimharvest.ClaimType {
	lower := strings.ToLower(text)
	for _, r := range classifyRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.claimType
			}
		}
	}
	if len(text) >= overviewMinLength {
		return claimharvest.ClaimOverview
	}
	return claimharvest.ClaimOther
}
