package fs

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/cdunford/claimharvest"
)

// WriteTriage persists triage results as both JSON and CSV reports.
func (d *RunDir) WriteTriage(results []claimharvest.TriageResult) error {
	if results == nil {
		results = []claimharvest.TriageResult{}
	}
	if err := writeJSON(d.TriageFile(), results); err != nil {
		return err
	}
	return writeTriageCSV(d.TriageCSVFile(), results)
}

func writeTriageCSV(path string, results []claimharvest.TriageResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"slug", "url", "bytes", "status", "token_total", "token_unique",
		"section_keyword_hits", "has_disclaimer", "has_reconstitution",
		"has_storage", "has_measurement_terms", "label",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Slug,
			r.URL,
			strconv.Itoa(r.Bytes),
			strconv.Itoa(r.Status),
			strconv.Itoa(r.TokenTotal),
			strconv.Itoa(r.TokenUnique),
			strconv.Itoa(r.SectionKeywordHits),
			strconv.FormatBool(r.HasDisclaimer),
			strconv.FormatBool(r.HasReconstitution),
			strconv.FormatBool(r.HasStorage),
			strconv.FormatBool(r.HasMeasurementTerms),
			string(r.Label),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
