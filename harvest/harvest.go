// Package harvest orchestrates the audit pipeline over one run directory:
// seed discovery, snapshotting, triage, structure parsing, and claim
// extraction. Stages operate on the manifest and are independently runnable;
// per-page failures are recorded and never abort a stage.
package harvest

import (
	"fmt"
	"time"

	"github.com/cdunford/claimharvest"
)

// Harvester coordinates the pipeline stages. Every collaborator is an
// interface from the root package so stages can be tested with mocks.
type Harvester struct {
	Site        string
	Fetcher     claimharvest.Fetcher
	Sitemaps    claimharvest.SitemapService
	Parser      claimharvest.StructureParser
	Extractor   claimharvest.TextExtractor
	Fallback    claimharvest.TextExtractor
	Converter   claimharvest.Converter
	Snapshots   claimharvest.SnapshotStore
	Pages       claimharvest.PageStore
	RateLimiter claimharvest.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// ProgressEvent reports progress during a pipeline stage.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting stage progress.
type ProgressFunc func(event ProgressEvent)

func (h *Harvester) concurrency() int {
	if h.Concurrency <= 0 {
		return 4
	}
	return h.Concurrency
}

func (h *Harvester) retryDelays() []time.Duration {
	if h.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return h.RetryDelays
}

func notify(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
