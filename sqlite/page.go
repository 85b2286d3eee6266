package sqlite

import (
	"context"
	"strings"

	"github.com/cdunford/claimharvest"
)

// Compile-time interface verification.
var _ claimharvest.PageIndex = (*PageService)(nil)

// PageService implements claimharvest.PageIndex using SQLite.
// Section trees are stored as JSON text columns.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// CreatePage indexes one page document under a run.
func (s *PageService) CreatePage(ctx context.Context, runID string, doc *claimharvest.PageDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	sections, err := marshalJSON(doc.Sections)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pages (run_id, slug, url, sha256, title, h1, sections)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, doc.Slug, doc.URL, doc.SHA256, doc.Title, doc.H1, sections)
	if err != nil && isUniqueViolation(err) {
		return claimharvest.Errorf(claimharvest.ECONFLICT, "page %q already indexed for run %q", doc.Slug, runID)
	}
	return err
}

// FindPages returns indexed pages matching the filter, ordered by slug.
func (s *PageService) FindPages(ctx context.Context, filter claimharvest.PageFilter) ([]*claimharvest.PageDocument, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT slug, url, sha256, title, h1, sections FROM pages WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}

	query.WriteString(" ORDER BY slug ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*claimharvest.PageDocument
	for rows.Next() {
		var doc claimharvest.PageDocument
		var sections string

		if err := rows.Scan(&doc.Slug, &doc.URL, &doc.SHA256, &doc.Title, &doc.H1, &sections); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(sections, &doc.Sections, "sections"); err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}
