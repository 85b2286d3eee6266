package claimharvest

import (
	"regexp"
	"strings"
	"time"
)

var slugRe = regexp.MustCompile(`[^a-zA-Z0-9\-]+`)

// Slugify derives a page's slug from its URL: the path with the scheme and
// domain stripped, non-slug characters collapsed to hyphens. The site root
// slugifies to "index".
func Slugify(url, domain string) string {
	slug := strings.TrimPrefix(url, "https://"+domain)
	slug = strings.TrimPrefix(slug, "http://"+domain)
	slug = strings.TrimSpace(strings.Trim(slug, "/"))
	slug = slugRe.ReplaceAllString(slug, "-")
	if slug == "" {
		return "index"
	}
	return slug
}

// ManifestEntry records one snapshotted page. The manifest is the contract
// between the snapshot stage and every downstream stage: entries are ordered
// and each names the on-disk files holding the page's raw HTML and extracted
// text.
type ManifestEntry struct {
	URL         string    `json:"url"`
	Slug        string    `json:"slug"`
	Status      int       `json:"status"`
	RetrievedAt time.Time `json:"retrieved_at"`
	Bytes       int       `json:"bytes"`
	SHA256      string    `json:"sha256"`
	Title       string    `json:"title"`
	HTMLFile    string    `json:"html_file"`
	TextFile    string    `json:"text_file"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *ManifestEntry) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "manifest entry URL required")
	}
	if e.Slug == "" {
		return Errorf(EINVALID, "manifest entry slug required")
	}
	return nil
}

// FetchFailure records one page that could not be snapshotted.
// Failures are reported per page and never abort a run.
type FetchFailure struct {
	URL         string    `json:"url"`
	Slug        string    `json:"slug"`
	Error       string    `json:"error"`
	RetrievedAt time.Time `json:"retrieved_at"`
}

// SnapshotStore persists the artifacts of the snapshot stage and serves them
// back to later stages.
type SnapshotStore interface {
	// WriteSnapshot stores the raw HTML and extracted text for one slug and
	// returns the paths the files were written to.
	WriteSnapshot(slug string, html []byte, text string) (htmlFile, textFile string, err error)

	// ReadHTML returns the raw HTML recorded for a manifest entry.
	ReadHTML(entry *ManifestEntry) ([]byte, error)

	// ReadText returns the extracted text recorded for a manifest entry.
	ReadText(entry *ManifestEntry) (string, error)
}
