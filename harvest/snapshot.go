package harvest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cdunford/claimharvest"
	"github.com/cdunford/claimharvest/goquery"
)

// SnapshotResult holds the outcome of the snapshot stage. Manifest entries
// follow the input URL order; failed URLs appear in Failures instead.
type SnapshotResult struct {
	Manifest []claimharvest.ManifestEntry
	Failures []claimharvest.FetchFailure
}

// snapshotOutcome is one URL's snapshot result, tagged with its input position.
type snapshotOutcome struct {
	position int
	entry    *claimharvest.ManifestEntry
	failure  *claimharvest.FetchFailure
}

// Snapshot fetches every URL, writes its raw HTML and text snapshot, and
// builds the run manifest. Non-2xx responses are still snapshotted with
// their status recorded; only transport failures after retries land in
// Failures. Failures never abort the stage.
func (h *Harvester) Snapshot(ctx context.Context, urls []string, progress ProgressFunc) (*SnapshotResult, error) {
	total := len(urls)
	notify(progress, ProgressEvent{Type: ProgressStarted, Total: total})

	outcomeCh := make(chan snapshotOutcome, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency())

	go func() {
		for i, url := range urls {
			i, url := i, url
			g.Go(func() error {
				outcomeCh <- h.snapshotURL(gctx, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(outcomeCh)
	}()

	outcomes := make([]snapshotOutcome, total)
	for outcome := range outcomeCh {
		completed.Add(1)
		outcomes[outcome.position] = outcome

		event := ProgressEvent{
			Completed: int(completed.Load()),
			Total:     total,
			URL:       urls[outcome.position],
		}
		if outcome.failure != nil {
			event.Type = ProgressFailed
			event.Error = claimharvest.Errorf(claimharvest.EUNAVAILABLE, "%s", outcome.failure.Error)
		} else {
			event.Type = ProgressCompleted
		}
		notify(progress, event)
	}

	result := &SnapshotResult{
		Manifest: make([]claimharvest.ManifestEntry, 0, total),
		Failures: []claimharvest.FetchFailure{},
	}
	for _, outcome := range outcomes {
		if outcome.failure != nil {
			result.Failures = append(result.Failures, *outcome.failure)
			continue
		}
		if outcome.entry != nil {
			result.Manifest = append(result.Manifest, *outcome.entry)
		}
	}

	notify(progress, ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return result, nil
}

func (h *Harvester) snapshotURL(ctx context.Context, position int, url string) snapshotOutcome {
	slug := claimharvest.Slugify(url, h.Site)

	fail := func(err error) snapshotOutcome {
		return snapshotOutcome{
			position: position,
			failure: &claimharvest.FetchFailure{
				URL:         url,
				Slug:        slug,
				Error:       err.Error(),
				RetrievedAt: time.Now().UTC(),
			},
		}
	}

	if h.RateLimiter != nil {
		if err := h.RateLimiter.Wait(ctx, h.Site); err != nil {
			return fail(err)
		}
	}

	res, err := fetchWithRetry(ctx, h.Fetcher, url, h.retryDelays())
	if err != nil {
		return fail(err)
	}

	html := string(res.Body)
	text, err := h.Converter.Convert(html)
	if err != nil {
		// Unconvertible pages still get an HTML snapshot; triage will
		// label the empty text SHELL.
		text = ""
	}

	htmlFile, textFile, err := h.Snapshots.WriteSnapshot(slug, res.Body, text)
	if err != nil {
		return fail(err)
	}

	sum := sha256.Sum256(res.Body)
	return snapshotOutcome{
		position: position,
		entry: &claimharvest.ManifestEntry{
			URL:         url,
			Slug:        slug,
			Status:      res.StatusCode,
			RetrievedAt: time.Now().UTC(),
			Bytes:       len(res.Body),
			SHA256:      hex.EncodeToString(sum[:]),
			Title:       goquery.Title(html),
			HTMLFile:    htmlFile,
			TextFile:    textFile,
		},
	}
}
