package harvest

import (
	"context"
	"sort"
	"time"

	"github.com/cdunford/claimharvest"
	"github.com/cdunford/claimharvest/bloom"
	"github.com/cdunford/claimharvest/goquery"
)

// minSeedCandidates is the smallest seed-page candidate set considered
// usable. Below it the sitemap fallback kicks in.
const minSeedCandidates = 5

// Bloom filter sizing for seed URL dedupe. The audited site has tens of
// pages; 10k keeps false positives out of reach.
const (
	seedFilterSize   = 10000
	seedFilterFPRate = 0.001
)

// Seed fetches the seed page and derives the run's candidate compound URLs.
// When the page yields fewer than minSeedCandidates, URLs discovered via the
// site's sitemap supplement the set. The raw seed page HTML is returned for
// the caller to persist.
func (h *Harvester) Seed(ctx context.Context, seedURL string) (*claimharvest.SeedSet, []byte, error) {
	if h.RateLimiter != nil {
		if err := h.RateLimiter.Wait(ctx, h.Site); err != nil {
			return nil, nil, err
		}
	}

	res, err := fetchWithRetry(ctx, h.Fetcher, seedURL, h.retryDelays())
	if err != nil {
		return nil, nil, claimharvest.Errorf(claimharvest.EUNAVAILABLE, "seed page fetch failed: %v", err)
	}
	html := string(res.Body)

	links, err := goquery.ExtractLinks(html, h.Site)
	if err != nil {
		return nil, nil, err
	}
	candidates := goquery.CandidateCompounds(links, h.Site)

	if len(candidates) < minSeedCandidates && h.Sitemaps != nil {
		candidates, err = h.supplementFromSitemap(ctx, candidates)
		if err != nil {
			return nil, nil, err
		}
	}

	taxonomy, err := goquery.ExtractTaxonomy(html, h.Site)
	if err != nil {
		return nil, nil, err
	}

	blocked := make([]string, 0, len(claimharvest.BlockedSlugs))
	for slug := range claimharvest.BlockedSlugs {
		blocked = append(blocked, slug)
	}
	sort.Strings(blocked)

	set := &claimharvest.SeedSet{
		SeedURL:       seedURL,
		RetrievedAt:   time.Now().UTC(),
		HTTPStatus:    res.StatusCode,
		TotalLinks:    len(links),
		NumCandidates: len(candidates),
		Candidates:    candidates,
		BlockedSlugs:  blocked,
		Taxonomy:      taxonomy,
	}
	return set, res.Body, nil
}

// supplementFromSitemap merges sitemap-discovered compound URLs into the
// seed-page candidates, deduplicating with a Bloom filter.
func (h *Harvester) supplementFromSitemap(ctx context.Context, candidates []string) ([]string, error) {
	urls, err := h.Sitemaps.DiscoverURLs(ctx, "https://"+h.Site)
	if err != nil {
		return nil, claimharvest.Errorf(claimharvest.EUNAVAILABLE, "sitemap discovery failed: %v", err)
	}

	seen := bloom.NewFilter(seedFilterSize, seedFilterFPRate)
	for _, u := range candidates {
		seen.Add(u)
	}

	merged := candidates
	for _, raw := range urls {
		u := goquery.NormalizeURL(raw, h.Site)
		if !goquery.IsCandidateCompoundURL(u, h.Site) {
			continue
		}
		if seen.AddIfNew(u) {
			merged = append(merged, u)
		}
	}
	sort.Strings(merged)
	return merged, nil
}
