// Package fs provides the on-disk run layout and file-based persistence for
// seeds, snapshots, manifests, parsed pages, claims, and reports.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cdunford/claimharvest"
)

// Ensure RunDir implements claimharvest.SnapshotStore at compile time.
var _ claimharvest.SnapshotStore = (*RunDir)(nil)

// RunDir is one run's directory tree under the data root:
//
//	<root>/runs/<date>/{seeds,raw_html,text,parsed,claims,reports}
type RunDir struct {
	root string
	date string
}

// NewRunDir creates a RunDir rooted at root for the given run date.
func NewRunDir(root, date string) *RunDir {
	return &RunDir{root: root, date: date}
}

// Ensure creates every run subdirectory.
func (d *RunDir) Ensure() error {
	for _, dir := range []string{
		d.SeedsDir(), d.RawHTMLDir(), d.TextDir(), d.ParsedDir(), d.ClaimsDir(), d.ReportsDir(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Date returns the run date the directory was created for.
func (d *RunDir) Date() string { return d.date }

func (d *RunDir) base() string       { return filepath.Join(d.root, "runs", d.date) }
func (d *RunDir) SeedsDir() string   { return filepath.Join(d.base(), "seeds") }
func (d *RunDir) RawHTMLDir() string { return filepath.Join(d.base(), "raw_html") }
func (d *RunDir) TextDir() string    { return filepath.Join(d.base(), "text") }
func (d *RunDir) ParsedDir() string  { return filepath.Join(d.base(), "parsed") }
func (d *RunDir) ClaimsDir() string  { return filepath.Join(d.base(), "claims") }
func (d *RunDir) ReportsDir() string { return filepath.Join(d.base(), "reports") }

func (d *RunDir) SeedSetFile() string      { return filepath.Join(d.SeedsDir(), "seed_urls.json") }
func (d *RunDir) SeedSnapshotFile() string { return filepath.Join(d.SeedsDir(), "seed_page_snapshot.html") }
func (d *RunDir) TaxonomyFile() string     { return filepath.Join(d.SeedsDir(), "site_taxonomy.json") }
func (d *RunDir) ManifestFile() string     { return filepath.Join(d.ReportsDir(), "raw_html_manifest.json") }
func (d *RunDir) FailuresFile() string     { return filepath.Join(d.ReportsDir(), "fetch_failures.json") }
func (d *RunDir) TriageFile() string       { return filepath.Join(d.ReportsDir(), "page_triage.json") }
func (d *RunDir) TriageCSVFile() string    { return filepath.Join(d.ReportsDir(), "page_triage.csv") }
func (d *RunDir) ClaimsFile() string       { return filepath.Join(d.ClaimsDir(), "claims.jsonl") }
func (d *RunDir) SummaryFile() string      { return filepath.Join(d.ReportsDir(), "claims_summary.json") }

// WriteSnapshot stores one page's raw HTML and extracted text, returning the
// paths recorded in the manifest.
func (d *RunDir) WriteSnapshot(slug string, html []byte, text string) (string, string, error) {
	htmlFile := filepath.Join(d.RawHTMLDir(), slug+".html")
	if err := os.WriteFile(htmlFile, html, 0o644); err != nil {
		return "", "", err
	}
	textFile := filepath.Join(d.TextDir(), slug+".md")
	if err := os.WriteFile(textFile, []byte(text), 0o644); err != nil {
		return "", "", err
	}
	return htmlFile, textFile, nil
}

// ReadHTML returns the raw HTML recorded for a manifest entry.
func (d *RunDir) ReadHTML(entry *claimharvest.ManifestEntry) ([]byte, error) {
	b, err := os.ReadFile(entry.HTMLFile)
	if os.IsNotExist(err) {
		return nil, claimharvest.Errorf(claimharvest.ENOTFOUND, "no HTML snapshot for %q", entry.Slug)
	}
	return b, err
}

// ReadText returns the extracted text recorded for a manifest entry.
func (d *RunDir) ReadText(entry *claimharvest.ManifestEntry) (string, error) {
	b, err := os.ReadFile(entry.TextFile)
	if os.IsNotExist(err) {
		return "", claimharvest.Errorf(claimharvest.ENOTFOUND, "no text snapshot for %q", entry.Slug)
	}
	return string(b), err
}

// WriteManifest persists the run's ordered manifest.
func (d *RunDir) WriteManifest(entries []claimharvest.ManifestEntry) error {
	return writeJSON(d.ManifestFile(), entries)
}

// ReadManifest loads the run's ordered manifest.
func (d *RunDir) ReadManifest() ([]claimharvest.ManifestEntry, error) {
	b, err := os.ReadFile(d.ManifestFile())
	if os.IsNotExist(err) {
		return nil, claimharvest.Errorf(claimharvest.ENOTFOUND, "no manifest for run %s; run snapshot first", d.date)
	}
	if err != nil {
		return nil, err
	}
	var entries []claimharvest.ManifestEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, claimharvest.Errorf(claimharvest.EINVALID, "malformed manifest: %v", err)
	}
	return entries, nil
}

// WriteFailures persists the snapshot stage's per-page failures.
func (d *RunDir) WriteFailures(failures []claimharvest.FetchFailure) error {
	if failures == nil {
		failures = []claimharvest.FetchFailure{}
	}
	return writeJSON(d.FailuresFile(), failures)
}

// WriteSeedSet persists the seed discovery output.
func (d *RunDir) WriteSeedSet(set *claimharvest.SeedSet) error {
	return writeJSON(d.SeedSetFile(), set)
}

// ReadSeedSet loads the seed discovery output.
func (d *RunDir) ReadSeedSet() (*claimharvest.SeedSet, error) {
	b, err := os.ReadFile(d.SeedSetFile())
	if os.IsNotExist(err) {
		return nil, claimharvest.Errorf(claimharvest.ENOTFOUND, "no seed set for run %s; run seed first", d.date)
	}
	if err != nil {
		return nil, err
	}
	var set claimharvest.SeedSet
	if err := json.Unmarshal(b, &set); err != nil {
		return nil, claimharvest.Errorf(claimharvest.EINVALID, "malformed seed set: %v", err)
	}
	return &set, nil
}

// WriteTaxonomy persists the seed page's detected URL groupings.
func (d *RunDir) WriteTaxonomy(groups []claimharvest.TaxonomyGroup) error {
	if groups == nil {
		groups = []claimharvest.TaxonomyGroup{}
	}
	return writeJSON(d.TaxonomyFile(), groups)
}

// WriteSummary persists the run's claims summary.
func (d *RunDir) WriteSummary(summary *claimharvest.ClaimsSummary) error {
	return writeJSON(d.SummaryFile(), summary)
}

// ReadSummary loads the run's claims summary.
func (d *RunDir) ReadSummary() (*claimharvest.ClaimsSummary, error) {
	b, err := os.ReadFile(d.SummaryFile())
	if os.IsNotExist(err) {
		return nil, claimharvest.Errorf(claimharvest.ENOTFOUND, "no claims summary for run %s; run claims first", d.date)
	}
	if err != nil {
		return nil, err
	}
	var summary claimharvest.ClaimsSummary
	if err := json.Unmarshal(b, &summary); err != nil {
		return nil, claimharvest.Errorf(claimharvest.EINVALID, "malformed claims summary: %v", err)
	}
	return &summary, nil
}

// writeJSON writes indented JSON with a trailing newline.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
