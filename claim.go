package claimharvest

import "context"

// ClaimType is the fixed enumeration of claim categories.
type ClaimType string

// The complete set of claim types. The "_observed" suffix marks claims that
// record text as it appeared on the page, not a validated recommendation.
const (
	ClaimOverview          ClaimType = "overview"
	ClaimBenefit           ClaimType = "benefit"
	ClaimMechanism         ClaimType = "mechanism"
	ClaimContraindication  ClaimType = "contraindication"
	ClaimWarning           ClaimType = "warning"
	ClaimReconstitution    ClaimType = "reconstitution"
	ClaimDosingObserved    ClaimType = "dosing_observed"
	ClaimScheduleObserved  ClaimType = "schedule_observed"
	ClaimCycleObserved     ClaimType = "cycle_observed"
	ClaimTitrationObserved ClaimType = "titration_observed"
	ClaimStackingObserved  ClaimType = "stacking_observed"
	ClaimStorage           ClaimType = "storage"
	ClaimSideEffect        ClaimType = "side_effect"
	ClaimOther             ClaimType = "other"
)

// ClaimTypes lists every claim type in rule-priority order.
var ClaimTypes = []ClaimType{
	ClaimOverview,
	ClaimBenefit,
	ClaimMechanism,
	ClaimContraindication,
	ClaimWarning,
	ClaimReconstitution,
	ClaimDosingObserved,
	ClaimScheduleObserved,
	ClaimCycleObserved,
	ClaimTitrationObserved,
	ClaimStackingObserved,
	ClaimStorage,
	ClaimSideEffect,
	ClaimOther,
}

// Safety flag identifiers attached to claims independently of claim type.
const (
	FlagPregnancy  = "pregnancy_or_breastfeeding"
	FlagCancer     = "cancer"
	FlagDisclaimer = "disclaimer_present"
	FlagInjection  = "injection_or_reconstitution_reference"
	FlagTitration  = "titration_language"
	FlagStacking   = "stacking_language"
)

// Measurement is one extracted number-with-unit mention, e.g. 250 mcg.
type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Duration is one extracted duration mention, e.g. 4 weeks.
type Duration struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// ClaimSource identifies where a claim was extracted from.
type ClaimSource struct {
	Site          string `json:"site"`
	URL           string `json:"url"`
	Slug          string `json:"slug"`
	SHA256        string `json:"sha256"`
	ExtractedFrom string `json:"extracted_from"`
}

// Claim is one classified, atomic unit of extracted page text.
// IDs are "{slug}:{n}" with n starting at 1 in emission order.
type Claim struct {
	ID                  string        `json:"id"`
	Source              ClaimSource   `json:"source"`
	PageTitle           string        `json:"page_title"`
	SectionPath         []string      `json:"section_path"`
	ClaimType           ClaimType     `json:"claim_type"`
	Text                string        `json:"text"`
	Numbers             []Measurement `json:"numbers"`
	Durations           []Duration    `json:"durations"`
	Flags               []string      `json:"flags"`
	ObservedNotGuidance bool          `json:"observed_not_guidance"`
}

// Validate returns an error if the claim contains invalid fields.
func (c *Claim) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "claim ID required")
	}
	if c.Text == "" {
		return Errorf(EINVALID, "claim text required")
	}
	if c.ClaimType == "" {
		return Errorf(EINVALID, "claim type required")
	}
	return nil
}

// TypeCount pairs a claim type with its occurrence count.
type TypeCount struct {
	Type  ClaimType `json:"type"`
	Count int       `json:"count"`
}

// FlagCount pairs a flag with its occurrence count.
type FlagCount struct {
	Flag  string `json:"flag"`
	Count int    `json:"count"`
}

// SlugCount pairs a page slug with its claim count.
type SlugCount struct {
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// ClaimsSummary aggregates one run's claim collection. Count slices are
// ordered by descending count, ties broken by name, so the encoded form is
// deterministic.
type ClaimsSummary struct {
	RunID       string      `json:"run_id"`
	RunDate     string      `json:"run_date"`
	ClaimsTotal int         `json:"claims_total"`
	ByType      []TypeCount `json:"claims_by_type"`
	ByFlag      []FlagCount `json:"flag_counts"`
	TopSlugs    []SlugCount `json:"claims_by_slug_top10"`
	Output      string      `json:"output"`
}

// ClaimFilter selects indexed claims. Nil fields match everything.
type ClaimFilter struct {
	RunID     *string
	Slug      *string
	ClaimType *ClaimType
	Flag      *string

	Limit  int
	Offset int
}

// ClaimIndex stores extracted claims in a queryable run index.
type ClaimIndex interface {
	// CreateClaim indexes one claim under a run.
	CreateClaim(ctx context.Context, runID string, claim *Claim) error

	// FindClaims returns indexed claims matching the filter, ordered by
	// slug then claim ID.
	FindClaims(ctx context.Context, filter ClaimFilter) ([]*Claim, error)
}

// ClaimLog is an append-only, line-oriented sink for claims.
// Implementations must serialize concurrent writes so records never interleave.
type ClaimLog interface {
	WriteClaim(claim *Claim) error
	Close() error
}
