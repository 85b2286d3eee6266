// Package mock provides hand-written function-field mocks for the domain
// interfaces, used by CLI and orchestration tests.
package mock

import (
	"context"

	"github.com/cdunford/claimharvest"
)

var _ claimharvest.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of claimharvest.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*claimharvest.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*claimharvest.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
