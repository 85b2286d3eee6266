package goquery

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cdunford/claimharvest"
	"golang.org/x/net/html"
)

// taxonomyStepCap bounds the sibling walk when grouping candidate URLs under
// seed-page headings.
const taxonomyStepCap = 250

// taxonomyMinGroup is the smallest URL count worth reporting as a group.
const taxonomyMinGroup = 3

// ExtractLinks parses a seed page and returns every normalized same-site
// link in document order. Fragment-only, mailto:, tel:, and off-site links
// are dropped.
func ExtractLinks(rawHTML, domain string) ([]claimharvest.Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, claimharvest.Errorf(claimharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []claimharvest.Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		u := NormalizeURL(href, domain)
		if u == "" {
			return
		}
		links = append(links, claimharvest.Link{URL: u, Text: normalize(sel.Text())})
	})
	return links, nil
}

// CandidateCompounds filters links down to the sorted, deduplicated set of
// candidate compound-page URLs.
func CandidateCompounds(links []claimharvest.Link, domain string) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, link := range links {
		if !IsCandidateCompoundURL(link.URL, domain) || seen[link.URL] {
			continue
		}
		seen[link.URL] = true
		urls = append(urls, link.URL)
	}
	sort.Strings(urls)
	return urls
}

// NormalizeURL normalizes a raw href to an absolute same-site URL without
// fragment or trailing slash. It returns "" for anything unusable.
func NormalizeURL(href, domain string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		if !strings.Contains(href, domain) {
			return ""
		}
		return trimURL(href)
	}
	if strings.HasPrefix(href, "/") {
		return trimURL("https://" + domain + href)
	}
	return ""
}

func trimURL(u string) string {
	if i := strings.Index(u, "#"); i >= 0 {
		u = u[:i]
	}
	return strings.TrimRight(u, "/")
}

// IsCandidateCompoundURL reports whether a normalized URL looks like a
// compound page: exactly one path segment, not a known site page, no query,
// and none of the common non-compound path prefixes.
func IsCandidateCompoundURL(u, domain string) bool {
	if u == "" {
		return false
	}
	path := strings.TrimPrefix(u, "https://"+domain)
	if strings.Count(path, "/") > 1 {
		return false
	}
	slug := strings.Trim(path, "/")
	if slug == "" || claimharvest.BlockedSlugs[slug] {
		return false
	}
	for _, prefix := range []string{"tag/", "category/", "product/", "page/"} {
		if strings.HasPrefix(slug, prefix) {
			return false
		}
	}
	return !strings.Contains(slug, "?")
}

// ExtractTaxonomy groups candidate URLs under the seed-page heading they
// appear beneath. Grouping is best-effort: the walk stops at the next h2/h3
// or after taxonomyStepCap sibling steps, and only groups with at least
// taxonomyMinGroup URLs are reported.
func ExtractTaxonomy(rawHTML, domain string) ([]claimharvest.TaxonomyGroup, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, claimharvest.Errorf(claimharvest.EINVALID, "failed to parse HTML: %v", err)
	}

	var groups []claimharvest.TaxonomyGroup
	doc.Find("h2, h3").Each(func(_ int, sel *goquery.Selection) {
		headingText := normalize(nodesText(sel.Nodes))
		if headingText == "" {
			return
		}

		seen := make(map[string]bool)
		var urls []string

		node := sel.Nodes[0].NextSibling
		for steps := 0; node != nil && steps < taxonomyStepCap; steps++ {
			if node.Type == html.ElementNode && (headingLevel(node) == 2 || headingLevel(node) == 3) {
				break
			}
			anchorURLs(node, domain, func(u string) {
				if IsCandidateCompoundURL(u, domain) && !seen[u] {
					seen[u] = true
					urls = append(urls, u)
				}
			})
			node = node.NextSibling
		}

		if len(urls) >= taxonomyMinGroup {
			groups = append(groups, claimharvest.TaxonomyGroup{Heading: headingText, URLs: urls})
		}
	})

	return groups, nil
}

// anchorURLs calls fn with the normalized URL of every anchor at or below n.
func anchorURLs(n *html.Node, domain string, fn func(string)) {
	visit := func(d *html.Node) {
		if d.Type != html.ElementNode || d.Data != "a" {
			return
		}
		for _, attr := range d.Attr {
			if attr.Key == "href" {
				if u := NormalizeURL(attr.Val, domain); u != "" {
					fn(u)
				}
				return
			}
		}
	}
	visit(n)
	eachDescendant(n, visit)
}
