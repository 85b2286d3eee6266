package claimharvest

// TriageLabel is the coarse completeness label assigned to a snapshot.
type TriageLabel string

// Triage labels, from least to most complete.
const (
	TriageShell   TriageLabel = "SHELL"
	TriagePartial TriageLabel = "PARTIAL"
	TriageFull    TriageLabel = "FULL"
)

// TriageResult scores one snapshot's extracted text. The token counts and
// signal booleans explain how the label was reached.
type TriageResult struct {
	Slug                string      `json:"slug"`
	URL                 string      `json:"url"`
	Bytes               int         `json:"bytes"`
	Status              int         `json:"status"`
	TokenTotal          int         `json:"token_total"`
	TokenUnique         int         `json:"token_unique"`
	SectionKeywordHits  int         `json:"section_keyword_hits"`
	HasDisclaimer       bool        `json:"has_disclaimer"`
	HasReconstitution   bool        `json:"has_reconstitution"`
	HasStorage          bool        `json:"has_storage"`
	HasMeasurementTerms bool        `json:"has_measurement_terms"`
	Label               TriageLabel `json:"label"`
}
