package sqlite

import (
	"context"
	"strings"

	"github.com/cdunford/claimharvest"
)

// Compile-time interface verification.
var _ claimharvest.ClaimIndex = (*ClaimService)(nil)

// ClaimService implements claimharvest.ClaimIndex using SQLite.
// Section paths, measurements, durations, and flags are stored as JSON text
// columns; flag filtering matches against the encoded array.
type ClaimService struct {
	db *DB
}

// NewClaimService creates a new ClaimService.
func NewClaimService(db *DB) *ClaimService {
	return &ClaimService{db: db}
}

// CreateClaim indexes one claim under a run.
func (s *ClaimService) CreateClaim(ctx context.Context, runID string, claim *claimharvest.Claim) error {
	if err := claim.Validate(); err != nil {
		return err
	}

	sectionPath, err := marshalJSON(claim.SectionPath)
	if err != nil {
		return err
	}
	numbers, err := marshalJSON(claim.Numbers)
	if err != nil {
		return err
	}
	durations, err := marshalJSON(claim.Durations)
	if err != nil {
		return err
	}
	flags, err := marshalJSON(claim.Flags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO claims (run_id, id, site, slug, url, sha256, extracted_from,
			page_title, section_path, claim_type, text, numbers, durations, flags,
			observed_not_guidance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, claim.ID, claim.Source.Site, claim.Source.Slug, claim.Source.URL,
		claim.Source.SHA256, claim.Source.ExtractedFrom, claim.PageTitle,
		sectionPath, string(claim.ClaimType), claim.Text,
		numbers, durations, flags, claim.ObservedNotGuidance)
	if err != nil && isUniqueViolation(err) {
		return claimharvest.Errorf(claimharvest.ECONFLICT, "claim %q already indexed for run %q", claim.ID, runID)
	}
	return err
}

// FindClaims returns indexed claims matching the filter, ordered by slug
// then claim ID.
func (s *ClaimService) FindClaims(ctx context.Context, filter claimharvest.ClaimFilter) ([]*claimharvest.Claim, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, site, slug, url, sha256, extracted_from,
		page_title, section_path, claim_type, text, numbers, durations, flags,
		observed_not_guidance
		FROM claims WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}
	if filter.ClaimType != nil {
		query.WriteString(" AND claim_type = ?")
		args = append(args, string(*filter.ClaimType))
	}
	if filter.Flag != nil {
		// Flags are a JSON array of strings; match the quoted element.
		query.WriteString(" AND flags LIKE ?")
		args = append(args, `%"`+*filter.Flag+`"%`)
	}

	query.WriteString(" ORDER BY slug ASC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []*claimharvest.Claim
	for rows.Next() {
		var claim claimharvest.Claim
		var claimType, sectionPath, numbers, durations, flags string

		if err := rows.Scan(&claim.ID, &claim.Source.Site, &claim.Source.Slug,
			&claim.Source.URL, &claim.Source.SHA256, &claim.Source.ExtractedFrom,
			&claim.PageTitle, &sectionPath, &claimType, &claim.Text,
			&numbers, &durations, &flags, &claim.ObservedNotGuidance); err != nil {
			return nil, err
		}

		claim.ClaimType = claimharvest.ClaimType(claimType)
		if err := unmarshalJSON(sectionPath, &claim.SectionPath, "section_path"); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(numbers, &claim.Numbers, "numbers"); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(durations, &claim.Durations, "durations"); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(flags, &claim.Flags, "flags"); err != nil {
			return nil, err
		}

		claims = append(claims, &claim)
	}

	return claims, rows.Err()
}

// CountByType returns per-type claim counts for a run, ordered by
// descending count then type name.
func (s *ClaimService) CountByType(ctx context.Context, runID string) ([]claimharvest.TypeCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT claim_type, COUNT(*) AS n
		FROM claims
		WHERE run_id = ?
		GROUP BY claim_type
		ORDER BY n DESC, claim_type ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []claimharvest.TypeCount
	for rows.Next() {
		var tc claimharvest.TypeCount
		var claimType string
		if err := rows.Scan(&claimType, &tc.Count); err != nil {
			return nil, err
		}
		tc.Type = claimharvest.ClaimType(claimType)
		counts = append(counts, tc)
	}

	return counts, rows.Err()
}
