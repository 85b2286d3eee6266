package harvest

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/cdunford/claimharvest"
)

// ParseResult holds the outcome of the parse stage.
type ParseResult struct {
	Parsed int
	Failed int
}

// ParsePages parses every manifest entry's HTML snapshot into a page
// document and persists it. Pages are independent: a parse or write failure
// on one page is reported and the stage continues.
func (h *Harvester) ParsePages(ctx context.Context, entries []claimharvest.ManifestEntry, progress ProgressFunc) (*ParseResult, error) {
	total := len(entries)
	notify(progress, ProgressEvent{Type: ProgressStarted, Total: total})

	var completed, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency())

	for i := range entries {
		entry := entries[i]
		g.Go(func() error {
			err := h.parsePage(&entry)
			if gctx.Err() != nil {
				return gctx.Err()
			}

			event := ProgressEvent{
				Completed: int(completed.Add(1)),
				Total:     total,
				URL:       entry.URL,
			}
			if err != nil {
				failed.Add(1)
				event.Type = ProgressFailed
				event.Error = err
			} else {
				event.Type = ProgressCompleted
			}
			notify(progress, event)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	notify(progress, ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return &ParseResult{
		Parsed: total - int(failed.Load()),
		Failed: int(failed.Load()),
	}, nil
}

func (h *Harvester) parsePage(entry *claimharvest.ManifestEntry) error {
	html, err := h.Snapshots.ReadHTML(entry)
	if err != nil {
		return err
	}

	page, err := h.Parser.Parse(string(html))
	if err != nil {
		return err
	}

	page.Slug = entry.Slug
	page.URL = entry.URL
	page.SHA256 = entry.SHA256

	return h.Pages.WritePage(page)
}
