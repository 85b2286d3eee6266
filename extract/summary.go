package extract

import (
	"sort"

	"github.com/cdunford/claimharvest"
)

// topSlugCount is how many slugs the summary ranks by claim count.
const topSlugCount = 10

// Summarize aggregates a run's claims into deterministic summary counts:
// per-type and per-flag counts ordered by descending count then name, and
// the top slugs by claim count.
func Summarize(claims []claimharvest.Claim, runID, runDate, output string) *claimharvest.ClaimsSummary {
	byType := make(map[claimharvest.ClaimType]int)
	byFlag := make(map[string]int)
	bySlug := make(map[string]int)

	for _, c := range claims {
		byType[c.ClaimType]++
		for _, f := range c.Flags {
			byFlag[f]++
		}
		bySlug[c.Source.Slug]++
	}

	summary := &claimharvest.ClaimsSummary{
		RunID:       runID,
		RunDate:     runDate,
		ClaimsTotal: len(claims),
		ByType:      []claimharvest.TypeCount{},
		ByFlag:      []claimharvest.FlagCount{},
		TopSlugs:    []claimharvest.SlugCount{},
		Output:      output,
	}

	for claimType, count := range byType {
		summary.ByType = append(summary.ByType, claimharvest.TypeCount{Type: claimType, Count: count})
	}
	sort.Slice(summary.ByType, func(i, j int) bool {
		a, b := summary.ByType[i], summary.ByType[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Type < b.Type
	})

	for flag, count := range byFlag {
		summary.ByFlag = append(summary.ByFlag, claimharvest.FlagCount{Flag: flag, Count: count})
	}
	sort.Slice(summary.ByFlag, func(i, j int) bool {
		a, b := summary.ByFlag[i], summary.ByFlag[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Flag < b.Flag
	})

	for slug, count := range bySlug {
		summary.TopSlugs = append(summary.TopSlugs, claimharvest.SlugCount{Slug: slug, Count: count})
	}
	sort.Slice(summary.TopSlugs, func(i, j int) bool {
		a, b := summary.TopSlugs[i], summary.TopSlugs[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Slug < b.Slug
	})
	if len(summary.TopSlugs) > topSlugCount {
		summary.TopSlugs = summary.TopSlugs[:topSlugCount]
	}

	return summary
}
