package claimharvest

import "context"

// FetchResult holds the outcome of fetching one URL. Non-2xx responses are
// results, not errors: the snapshot stage records the status alongside
// whatever body the server returned.
type FetchResult struct {
	StatusCode int
	FinalURL   string
	Body       []byte
}

// Fetcher retrieves raw page content from URLs.
type Fetcher interface {
	// Fetch retrieves the URL's content. The context controls timeout and
	// cancellation. An error is returned only for transport failures.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter rate limits outbound requests per domain.
type DomainLimiter interface {
	// Wait blocks until the domain's rate limit allows another request, or
	// the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// TextExtractor produces the readable text of an HTML page, with
// boilerplate (navigation, footers, ads) removed. The triage stage scores
// this text to label a snapshot SHELL, PARTIAL, or FULL.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}

// Converter transforms HTML into a markdown rendition, used for the
// human-readable text snapshot written next to each page's raw HTML.
type Converter interface {
	Convert(html string) (string, error)
}
