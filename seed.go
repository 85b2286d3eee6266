package claimharvest

import (
	"context"
	"time"
)

// Link is one normalized same-site link discovered on the seed page.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// TaxonomyGroup is a best-effort grouping of candidate URLs under the seed
// page heading they appeared beneath.
type TaxonomyGroup struct {
	Heading string   `json:"heading"`
	URLs    []string `json:"urls"`
}

// SeedSet is the output of seed discovery: the canonical, sorted list of
// candidate compound URLs for a run.
type SeedSet struct {
	SeedURL       string          `json:"seed_url"`
	RetrievedAt   time.Time       `json:"retrieved_at"`
	HTTPStatus    int             `json:"http_status"`
	TotalLinks    int             `json:"num_total_links_found"`
	NumCandidates int             `json:"num_candidate_compound_urls"`
	Candidates    []string        `json:"candidate_compound_urls"`
	BlockedSlugs  []string        `json:"blocked_slugs"`
	Taxonomy      []TaxonomyGroup `json:"detected_groups,omitempty"`
}

// BlockedSlugs lists site pages that are clearly not compound pages and are
// excluded from seed candidates.
var BlockedSlugs = map[string]bool{
	"dosing-information":      true,
	"prep-injection-guide":    true,
	"research-use-disclaimer": true,
	"about-us":                true,
	"contact-us":              true,
	"privacy-policy":          true,
	"terms-of-service":        true,
	"shipping-policy":         true,
	"refund-policy":           true,
	"returns":                 true,
	"faq":                     true,
	"faqs":                    true,
	"blog":                    true,
	"account":                 true,
	"my-account":              true,
	"cart":                    true,
	"checkout":                true,
	"search":                  true,
	"sitemap_index.xml":       true,
}

// SitemapService discovers URLs from a site's sitemap. It is the fallback
// seed source when the seed page yields too few candidates.
type SitemapService interface {
	// DiscoverURLs finds page URLs for the site, checking robots.txt for
	// sitemap directives and falling back to /sitemap.xml. Sitemap indexes
	// are resolved recursively.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
