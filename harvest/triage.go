package harvest

import (
	"context"

	"github.com/cdunford/claimharvest"
	"github.com/cdunford/claimharvest/triage"
)

// Triage scores every snapshot and labels it SHELL, PARTIAL, or FULL.
// Scoring runs over boilerplate-free text from the extractor, then the
// fallback extractor, then the stored text snapshot, so a page is never
// scored on markup alone. Results follow manifest order.
func (h *Harvester) Triage(ctx context.Context, entries []claimharvest.ManifestEntry) ([]claimharvest.TriageResult, error) {
	results := make([]claimharvest.TriageResult, 0, len(entries))

	for i := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry := &entries[i]

		text, err := h.triageText(entry)
		if err != nil {
			return nil, err
		}

		result := triage.Score(text)
		result.Slug = entry.Slug
		result.URL = entry.URL
		result.Bytes = entry.Bytes
		result.Status = entry.Status
		results = append(results, result)
	}

	return results, nil
}

func (h *Harvester) triageText(entry *claimharvest.ManifestEntry) (string, error) {
	html, err := h.Snapshots.ReadHTML(entry)
	if err != nil {
		return "", err
	}

	for _, extractor := range []claimharvest.TextExtractor{h.Extractor, h.Fallback} {
		if extractor == nil {
			continue
		}
		if text, err := extractor.ExtractText(string(html)); err == nil && text != "" {
			return text, nil
		}
	}

	return h.Snapshots.ReadText(entry)
}
