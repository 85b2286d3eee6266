// Package claimharvest audits a single research-peptide dosing site.
// It snapshots the site's compound pages, reconstructs each page's heading
// hierarchy into a section tree of typed content blocks, and classifies
// every extracted text unit into an atomic, typed claim with measurement,
// duration, and safety-flag annotations.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, fs/).
package claimharvest
