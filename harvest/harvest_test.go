package harvest_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdunford/claimharvest"
	"github.com/cdunford/claimharvest/harvest"
	"github.com/cdunford/claimharvest/mock"
)

const testSite = "researchdosing.com"

func okFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*claimharvest.FetchResult, error) {
			body, ok := pages[url]
			if !ok {
				return &claimharvest.FetchResult{StatusCode: http.StatusNotFound, FinalURL: url}, nil
			}
			return &claimharvest.FetchResult{
				StatusCode: http.StatusOK,
				FinalURL:   url,
				Body:       []byte(body),
			}, nil
		},
	}
}

func memorySnapshots() (*mock.SnapshotStore, map[string][]byte, map[string]string) {
	var mu sync.Mutex
	htmls := make(map[string][]byte)
	texts := make(map[string]string)
	store := &mock.SnapshotStore{
		WriteSnapshotFn: func(slug string, html []byte, text string) (string, string, error) {
			mu.Lock()
			defer mu.Unlock()
			htmls[slug] = html
			texts[slug] = text
			return "raw_html/" + slug + ".html", "text/" + slug + ".md", nil
		},
		ReadHTMLFn: func(entry *claimharvest.ManifestEntry) ([]byte, error) {
			mu.Lock()
			defer mu.Unlock()
			html, ok := htmls[entry.Slug]
			if !ok {
				return nil, claimharvest.Errorf(claimharvest.ENOTFOUND, "no HTML snapshot for %q", entry.Slug)
			}
			return html, nil
		},
		ReadTextFn: func(entry *claimharvest.ManifestEntry) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			return texts[entry.Slug], nil
		},
	}
	return store, htmls, texts
}

func passthroughConverter() *mock.Converter {
	return &mock.Converter{
		ConvertFn: func(html string) (string, error) { return html, nil },
	}
}

func TestHarvester_Seed(t *testing.T) {
	t.Parallel()

	t.Run("extracts candidates from seed page", func(t *testing.T) {
		t.Parallel()

		seedHTML := `<html><body>
<h2>Healing Peptides</h2>
<ul>
<li><a href="/bpc-157">BPC-157</a></li>
<li><a href="/tb-500">TB-500</a></li>
<li><a href="/ghk-cu">GHK-Cu</a></li>
</ul>
<h2>Growth Peptides</h2>
<ul>
<li><a href="/cjc-1295">CJC-1295</a></li>
<li><a href="/ipamorelin">Ipamorelin</a></li>
</ul>
<a href="/about-us">About</a>
<a href="/cart">Cart</a>
</body></html>`

		h := &harvest.Harvester{
			Site:        testSite,
			Fetcher:     okFetcher(map[string]string{"https://researchdosing.com/dosing-information": seedHTML}),
			RetryDelays: []time.Duration{},
		}

		set, html, err := h.Seed(context.Background(), "https://researchdosing.com/dosing-information")
		require.NoError(t, err)
		assert.Equal(t, seedHTML, string(html))
		assert.Equal(t, http.StatusOK, set.HTTPStatus)
		assert.Equal(t, []string{
			"https://researchdosing.com/bpc-157",
			"https://researchdosing.com/cjc-1295",
			"https://researchdosing.com/ghk-cu",
			"https://researchdosing.com/ipamorelin",
			"https://researchdosing.com/tb-500",
		}, set.Candidates)
		assert.Equal(t, 5, set.NumCandidates)
		assert.Contains(t, set.BlockedSlugs, "about-us")

		require.Len(t, set.Taxonomy, 1)
		assert.Equal(t, "Healing Peptides", set.Taxonomy[0].Heading)
	})

	t.Run("falls back to sitemap when seed page is thin", func(t *testing.T) {
		t.Parallel()

		seedHTML := `<html><body><a href="/bpc-157">BPC-157</a></body></html>`

		h := &harvest.Harvester{
			Site:    testSite,
			Fetcher: okFetcher(map[string]string{"https://researchdosing.com/dosing-information": seedHTML}),
			Sitemaps: &mock.SitemapService{
				DiscoverURLsFn: func(_ context.Context, baseURL string) ([]string, error) {
					assert.Equal(t, "https://researchdosing.com", baseURL)
					return []string{
						"https://researchdosing.com/bpc-157",
						"https://researchdosing.com/tb-500/",
						"https://researchdosing.com/cart",
						"https://researchdosing.com/tag/popular",
					}, nil
				},
			},
			RetryDelays: []time.Duration{},
		}

		set, _, err := h.Seed(context.Background(), "https://researchdosing.com/dosing-information")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://researchdosing.com/bpc-157",
			"https://researchdosing.com/tb-500",
		}, set.Candidates)
	})

	t.Run("transport failure is unavailable", func(t *testing.T) {
		t.Parallel()

		h := &harvest.Harvester{
			Site: testSite,
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (*claimharvest.FetchResult, error) {
					return nil, errors.New("connection refused")
				},
			},
			RetryDelays: []time.Duration{},
		}

		_, _, err := h.Seed(context.Background(), "https://researchdosing.com/dosing-information")
		require.Error(t, err)
		assert.Equal(t, claimharvest.EUNAVAILABLE, claimharvest.ErrorCode(err))
	})
}

func TestHarvester_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("manifest follows input order", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://researchdosing.com/bpc-157": "<html><head><title>BPC-157 - Research Dosing</title></head><body>b</body></html>",
			"https://researchdosing.com/tb-500":  "<html><head><title>TB-500 - Research Dosing</title></head><body>t</body></html>",
			"https://researchdosing.com/ghk-cu":  "<html><head><title>GHK-Cu - Research Dosing</title></head><body>g</body></html>",
		}
		snapshots, htmls, _ := memorySnapshots()

		h := &harvest.Harvester{
			Site:        testSite,
			Fetcher:     okFetcher(pages),
			Converter:   passthroughConverter(),
			Snapshots:   snapshots,
			Concurrency: 3,
			RetryDelays: []time.Duration{},
		}

		urls := []string{
			"https://researchdosing.com/bpc-157",
			"https://researchdosing.com/tb-500",
			"https://researchdosing.com/ghk-cu",
		}
		result, err := h.Snapshot(context.Background(), urls, nil)
		require.NoError(t, err)

		require.Len(t, result.Manifest, 3)
		assert.Equal(t, "bpc-157", result.Manifest[0].Slug)
		assert.Equal(t, "tb-500", result.Manifest[1].Slug)
		assert.Equal(t, "ghk-cu", result.Manifest[2].Slug)
		assert.Equal(t, "BPC-157 - Research Dosing", result.Manifest[0].Title)
		assert.Len(t, result.Manifest[0].SHA256, 64)
		assert.Equal(t, len(pages[urls[0]]), result.Manifest[0].Bytes)
		assert.Empty(t, result.Failures)
		assert.Len(t, htmls, 3)
	})

	t.Run("non-200 is snapshotted with status recorded", func(t *testing.T) {
		t.Parallel()

		snapshots, _, _ := memorySnapshots()
		h := &harvest.Harvester{
			Site:        testSite,
			Fetcher:     okFetcher(map[string]string{}),
			Converter:   passthroughConverter(),
			Snapshots:   snapshots,
			RetryDelays: []time.Duration{},
		}

		result, err := h.Snapshot(context.Background(), []string{"https://researchdosing.com/gone"}, nil)
		require.NoError(t, err)
		require.Len(t, result.Manifest, 1)
		assert.Equal(t, http.StatusNotFound, result.Manifest[0].Status)
		assert.Empty(t, result.Failures)
	})

	t.Run("transport failure is recorded and does not abort", func(t *testing.T) {
		t.Parallel()

		snapshots, _, _ := memorySnapshots()
		h := &harvest.Harvester{
			Site: testSite,
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (*claimharvest.FetchResult, error) {
					if url == "https://researchdosing.com/broken" {
						return nil, errors.New("connection reset")
					}
					return &claimharvest.FetchResult{StatusCode: 200, FinalURL: url, Body: []byte("<html></html>")}, nil
				},
			},
			Converter:   passthroughConverter(),
			Snapshots:   snapshots,
			RetryDelays: []time.Duration{time.Millisecond},
		}

		result, err := h.Snapshot(context.Background(), []string{
			"https://researchdosing.com/broken",
			"https://researchdosing.com/bpc-157",
		}, nil)
		require.NoError(t, err)
		require.Len(t, result.Manifest, 1)
		assert.Equal(t, "bpc-157", result.Manifest[0].Slug)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "broken", result.Failures[0].Slug)
		assert.Contains(t, result.Failures[0].Error, "connection reset")
	})

	t.Run("emits progress events", func(t *testing.T) {
		t.Parallel()

		snapshots, _, _ := memorySnapshots()
		h := &harvest.Harvester{
			Site:        testSite,
			Fetcher:     okFetcher(map[string]string{"https://researchdosing.com/bpc-157": "<html></html>"}),
			Converter:   passthroughConverter(),
			Snapshots:   snapshots,
			RetryDelays: []time.Duration{},
		}

		var mu sync.Mutex
		var types []harvest.ProgressType
		_, err := h.Snapshot(context.Background(), []string{"https://researchdosing.com/bpc-157"}, func(e harvest.ProgressEvent) {
			mu.Lock()
			types = append(types, e.Type)
			mu.Unlock()
		})
		require.NoError(t, err)
		assert.Equal(t, []harvest.ProgressType{
			harvest.ProgressStarted,
			harvest.ProgressCompleted,
			harvest.ProgressFinished,
		}, types)
	})
}

func TestHarvester_ParsePages(t *testing.T) {
	t.Parallel()

	t.Run("parses and stores each page", func(t *testing.T) {
		t.Parallel()

		snapshots, htmls, _ := memorySnapshots()
		htmls["bpc-157"] = []byte("<html><body><h2>Dosing</h2><p>Inject 2mg weekly for 8 weeks.</p></body></html>")

		var mu sync.Mutex
		stored := make(map[string]*claimharvest.PageDocument)
		pages := &mock.PageStore{
			WritePageFn: func(doc *claimharvest.PageDocument) error {
				mu.Lock()
				defer mu.Unlock()
				stored[doc.Slug] = doc
				return nil
			},
		}

		h := &harvest.Harvester{
			Site:      testSite,
			Parser:    &mock.StructureParser{ParseFn: parseStub},
			Pages:     pages,
			Snapshots: snapshots,
		}

		entries := []claimharvest.ManifestEntry{{
			URL:    "https://researchdosing.com/bpc-157",
			Slug:   "bpc-157",
			SHA256: "abc",
		}}
		result, err := h.ParsePages(context.Background(), entries, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Parsed)
		assert.Equal(t, 0, result.Failed)

		doc := stored["bpc-157"]
		require.NotNil(t, doc)
		assert.Equal(t, "https://researchdosing.com/bpc-157", doc.URL)
		assert.Equal(t, "abc", doc.SHA256)
	})

	t.Run("missing snapshot is a per-page failure", func(t *testing.T) {
		t.Parallel()

		snapshots, htmls, _ := memorySnapshots()
		htmls["tb-500"] = []byte("<html></html>")

		pages := &mock.PageStore{
			WritePageFn: func(*claimharvest.PageDocument) error { return nil },
		}

		h := &harvest.Harvester{
			Site:      testSite,
			Parser:    &mock.StructureParser{ParseFn: parseStub},
			Pages:     pages,
			Snapshots: snapshots,
		}

		entries := []claimharvest.ManifestEntry{
			{URL: "https://researchdosing.com/missing", Slug: "missing"},
			{URL: "https://researchdosing.com/tb-500", Slug: "tb-500"},
		}
		result, err := h.ParsePages(context.Background(), entries, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Parsed)
		assert.Equal(t, 1, result.Failed)
	})
}

func parseStub(html string) (*claimharvest.PageDocument, error) {
	return &claimharvest.PageDocument{
		Title: "stub",
		H1:    "stub",
		Sections: []claimharvest.Section{{
			Path: claimharvest.RootSectionPath,
			Blocks: []claimharvest.Block{
				{Type: claimharvest.BlockRawText, Text: "stub"},
			},
		}},
	}, nil
}

func TestHarvester_Triage(t *testing.T) {
	t.Parallel()

	snapshots, htmls, texts := memorySnapshots()
	htmls["bpc-157"] = []byte("<html><body><p>thin page</p></body></html>")
	texts["bpc-157"] = "thin page"

	h := &harvest.Harvester{
		Site: testSite,
		Extractor: &mock.TextExtractor{
			ExtractTextFn: func(string) (string, error) { return "dosing reconstitution storage", nil },
		},
		Snapshots: snapshots,
	}

	entries := []claimharvest.ManifestEntry{{
		URL:    "https://researchdosing.com/bpc-157",
		Slug:   "bpc-157",
		Bytes:  42,
		Status: 200,
	}}
	results, err := h.Triage(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "bpc-157", results[0].Slug)
	assert.Equal(t, 42, results[0].Bytes)
	assert.Equal(t, 200, results[0].Status)
	assert.Equal(t, claimharvest.TriageShell, results[0].Label)
	assert.True(t, results[0].HasReconstitution)
}

func TestHarvester_Triage_FallsBackToTextSnapshot(t *testing.T) {
	t.Parallel()

	snapshots, htmls, texts := memorySnapshots()
	htmls["bpc-157"] = []byte("<html></html>")
	texts["bpc-157"] = "bacteriostatic water reconstitution"

	h := &harvest.Harvester{
		Site: testSite,
		Extractor: &mock.TextExtractor{
			ExtractTextFn: func(string) (string, error) { return "", nil },
		},
		Snapshots: snapshots,
	}

	entries := []claimharvest.ManifestEntry{{URL: "https://researchdosing.com/bpc-157", Slug: "bpc-157"}}
	results, err := h.Triage(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].HasReconstitution)
}

func TestHarvester_Triage_UsesFallbackExtractor(t *testing.T) {
	t.Parallel()

	snapshots, htmls, texts := memorySnapshots()
	htmls["bpc-157"] = []byte("<html></html>")
	texts["bpc-157"] = "text snapshot should not be reached"

	h := &harvest.Harvester{
		Site: testSite,
		Extractor: &mock.TextExtractor{
			ExtractTextFn: func(string) (string, error) { return "", nil },
		},
		Fallback: &mock.TextExtractor{
			ExtractTextFn: func(string) (string, error) { return "bacteriostatic water reconstitution", nil },
		},
		Snapshots: snapshots,
	}

	entries := []claimharvest.ManifestEntry{{URL: "https://researchdosing.com/bpc-157", Slug: "bpc-157"}}
	results, err := h.Triage(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].HasReconstitution)
}

func TestHarvester_ExtractClaims(t *testing.T) {
	t.Parallel()

	page := &claimharvest.PageDocument{
		Slug:   "bpc-157",
		URL:    "https://researchdosing.com/bpc-157",
		SHA256: "abc",
		Title:  "BPC-157 - Research Dosing",
		H1:     "BPC-157",
		Sections: []claimharvest.Section{{
			Path: []string{"BPC-157", "Dosing"},
			Blocks: []claimharvest.Block{
				{Type: claimharvest.BlockParagraph, Text: "Inject 2mg weekly for 8 weeks."},
			},
		}},
	}

	pages := &mock.PageStore{
		ReadPagesFn: func() ([]*claimharvest.PageDocument, error) {
			return []*claimharvest.PageDocument{page}, nil
		},
	}

	var mu sync.Mutex
	var written []claimharvest.Claim
	log := &mock.ClaimLog{
		WriteClaimFn: func(claim *claimharvest.Claim) error {
			mu.Lock()
			defer mu.Unlock()
			written = append(written, *claim)
			return nil
		},
	}

	h := &harvest.Harvester{Site: testSite, Pages: pages}

	claims, err := h.ExtractClaims(context.Background(), log)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, written, claims)
	assert.Equal(t, "bpc-157:1", claims[0].ID)
	assert.Equal(t, claimharvest.ClaimScheduleObserved, claims[0].ClaimType)
	assert.Equal(t, testSite, claims[0].Source.Site)
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("enforces rate within a domain", func(t *testing.T) {
		t.Parallel()

		limiter := harvest.NewDomainLimiter(50)

		start := time.Now()
		for range 3 {
			require.NoError(t, limiter.Wait(context.Background(), "researchdosing.com"))
		}
		// 50 rps with burst 1: two waits of ~20ms after the first token.
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("domains do not block each other", func(t *testing.T) {
		t.Parallel()

		limiter := harvest.NewDomainLimiter(1)

		start := time.Now()
		for i := range 5 {
			require.NoError(t, limiter.Wait(context.Background(), fmt.Sprintf("site%d.example", i)))
		}
		assert.Less(t, time.Since(start), 500*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := harvest.NewDomainLimiter(0.001)
		require.NoError(t, limiter.Wait(context.Background(), "slow.example"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		require.Error(t, limiter.Wait(ctx, "slow.example"))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", harvest.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", harvest.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", harvest.FormatBytes(2*1024*1024))
	})
}
