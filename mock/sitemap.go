package mock

import (
	"context"

	"github.com/cdunford/claimharvest"
)

var _ claimharvest.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of claimharvest.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}

var _ claimharvest.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of claimharvest.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.WaitFn == nil {
		return nil
	}
	return d.WaitFn(ctx, domain)
}
