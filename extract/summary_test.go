package extract_test

import (
	"testing"

	"github.com/cdunford/claimharvest"
	"github.com/cdunford/claimharvest/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimOf(slug string, claimType claimharvest.ClaimType, flags ...string) claimharvest.Claim {
	if flags == nil {
		flags = []string{}
	}
	return claimharvest.Claim{
		ID:        slug + ":1",
		Source:    claimharvest.ClaimSource{Slug: slug},
		ClaimType: claimType,
		Text:      "text",
		Flags:     flags,
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	claims := []claimharvest.Claim{
		claimOf("bpc-157", claimharvest.ClaimDosingObserved),
		claimOf("bpc-157", claimharvest.ClaimDosingObserved),
		claimOf("bpc-157", claimharvest.ClaimWarning, claimharvest.FlagCancer),
		claimOf("tb-500", claimharvest.ClaimStorage, claimharvest.FlagDisclaimer),
		claimOf("tb-500", claimharvest.ClaimBenefit),
	}

	summary := extract.Summarize(claims, "run-1", "2026-08-29", "claims/claims.jsonl")

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, "2026-08-29", summary.RunDate)
	assert.Equal(t, 5, summary.ClaimsTotal)
	assert.Equal(t, "claims/claims.jsonl", summary.Output)

	t.Run("types ordered by count then name", func(t *testing.T) {
		t.Parallel()

		require.Len(t, summary.ByType, 4)
		assert.Equal(t, claimharvest.TypeCount{Type: claimharvest.ClaimDosingObserved, Count: 2}, summary.ByType[0])
		// Remaining three all have count 1, so they sort by name.
		assert.Equal(t, claimharvest.ClaimBenefit, summary.ByType[1].Type)
		assert.Equal(t, claimharvest.ClaimStorage, summary.ByType[2].Type)
		assert.Equal(t, claimharvest.ClaimWarning, summary.ByType[3].Type)
	})

	t.Run("flags counted across claims", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []claimharvest.FlagCount{
			{Flag: claimharvest.FlagCancer, Count: 1},
			{Flag: claimharvest.FlagDisclaimer, Count: 1},
		}, summary.ByFlag)
	})

	t.Run("slugs ranked by claim count", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []claimharvest.SlugCount{
			{Slug: "bpc-157", Count: 3},
			{Slug: "tb-500", Count: 2},
		}, summary.TopSlugs)
	})
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	summary := extract.Summarize(nil, "run-1", "2026-08-29", "")

	assert.Zero(t, summary.ClaimsTotal)
	assert.Empty(t, summary.ByType)
	assert.Empty(t, summary.ByFlag)
	assert.Empty(t, summary.TopSlugs)
}

func TestSummarize_TopSlugsCapped(t *testing.T) {
	t.Parallel()

	var claims []claimharvest.Claim
	for i := 0; i < 12; i++ {
		claims = append(claims, claimOf(string(rune('a'+i)), claimharvest.ClaimOther))
	}

	summary := extract.Summarize(claims, "run-1", "2026-08-29", "")
	assert.Len(t, summary.TopSlugs, 10)
}
