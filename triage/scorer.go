// Package triage assigns each snapshot a coarse completeness label before
// the expensive structure parse: SHELL pages carry almost no content,
// PARTIAL pages are thin, FULL pages look like real compound write-ups.
package triage

import (
	"regexp"
	"strings"

	"github.com/cdunford/claimharvest"
)

// Label thresholds, tuned for the audited site's page sizes.
const (
	shellTokenTotal    = 600
	shellTokenUnique   = 220
	partialTokenTotal  = 1200
	partialTokenUnique = 420
)

var tokenRe = regexp.MustCompile(`[A-Za-z0-9\-\+]+`)

var sectionKeywords = []string{
	"overview", "mechanism", "benefits", "side effects", "warnings",
	"dosage", "dosing", "cycle", "administration", "reconstitution", "storage",
}

var disclaimerKeywords = []string{"research use", "not medical advice", "educational", "disclaimer"}

var reconstitutionKeywords = []string{"reconstitution", "bacteriostatic", "bac water", "dilution", "reconstitute"}

var storageKeywords = []string{"storage", "refriger", "room temperature", "shelf life", "freeze"}

var measurementKeywords = []string{"ml", "mg", "mcg", "iu", "units", "syringe"}

// Score labels one snapshot's extracted text. The returned result carries
// the token counts and keyword signals that produced the label; identity
// fields (slug, URL, bytes, status) are filled in by the caller.
func Score(text string) claimharvest.TriageResult {
	lower := strings.ToLower(text)
	tokens := tokenRe.FindAllString(lower, -1)

	unique := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		unique[tok] = true
	}

	hits := 0
	for _, kw := range sectionKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}

	result := claimharvest.TriageResult{
		TokenTotal:          len(tokens),
		TokenUnique:         len(unique),
		SectionKeywordHits:  hits,
		HasDisclaimer:       containsAny(lower, disclaimerKeywords),
		HasReconstitution:   containsAny(lower, reconstitutionKeywords),
		HasStorage:          containsAny(lower, storageKeywords),
		HasMeasurementTerms: containsAny(lower, measurementKeywords),
	}

	switch {
	case result.TokenTotal < shellTokenTotal || result.TokenUnique < shellTokenUnique:
		result.Label = claimharvest.TriageShell
	case result.TokenTotal < partialTokenTotal || result.TokenUnique < partialTokenUnique:
		result.Label = claimharvest.TriagePartial
	default:
		result.Label = claimharvest.TriageFull
	}

	return result
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
