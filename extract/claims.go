package extract

import (
	"fmt"
	"strings"

	"github.com/cdunford/claimharvest"
)

// extractedFrom records the provenance of every claim in this pipeline.
const extractedFrom = "html_snapshot"

// FromPage derives the ordered claim list for one parsed page. Claim IDs are
// "{slug}:{n}" with n starting at 1 and increasing in emission order; the
// sequence restarts for every page, so per-page output is deterministic
// regardless of how pages are scheduled.
func FromPage(page *claimharvest.PageDocument, site string) []claimharvest.Claim {
	var claims []claimharvest.Claim
	seq := 0

	for _, section := range page.Sections {
		for _, block := range section.Blocks {
			for _, unit := range block.TextUnits() {
				text := strings.TrimSpace(unit)
				if text == "" {
					continue
				}
				seq++

				claims = append(claims, claimharvest.Claim{
					ID: fmt.Sprintf("%s:%d", page.Slug, seq),
					Source: claimharvest.ClaimSource{
						Site:          site,
						URL:           page.URL,
						Slug:          page.Slug,
						SHA256:        page.SHA256,
						ExtractedFrom: extractedFrom,
					},
					PageTitle:           page.H1,
					SectionPath:         section.Path,
					ClaimType:           Classify(text),
					Text:                text,
					Numbers:             Numbers(text),
					Durations:           Durations(text),
					Flags:               Flags(text),
					ObservedNotGuidance: true,
				})
			}
		}
	}

	return claims
}
