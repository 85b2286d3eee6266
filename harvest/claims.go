package harvest

import (
	"context"

	"github.com/cdunford/claimharvest"
	"github.com/cdunford/claimharvest/extract"
)

// ExtractClaims classifies every stored page into claims and appends them to
// the log. Pages are processed in store order (sorted by slug) so claim IDs
// and JSONL order are stable across runs. The full claim list is returned
// for summarization.
func (h *Harvester) ExtractClaims(ctx context.Context, log claimharvest.ClaimLog) ([]claimharvest.Claim, error) {
	pages, err := h.Pages.ReadPages()
	if err != nil {
		return nil, err
	}

	var claims []claimharvest.Claim
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, claim := range extract.FromPage(page, h.Site) {
			if err := log.WriteClaim(&claim); err != nil {
				return nil, err
			}
			claims = append(claims, claim)
		}
	}

	return claims, nil
}
