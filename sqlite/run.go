package sqlite

import (
	"context"
	"time"

	"github.com/cdunford/claimharvest"
)

// Run is one indexed pipeline run.
type Run struct {
	ID        string
	RunDate   string
	Site      string
	IndexedAt time.Time
}

// RunService records and lists indexed runs.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records a run. Indexing the same run ID twice is a conflict.
func (s *RunService) CreateRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		return claimharvest.Errorf(claimharvest.EINVALID, "run ID required")
	}
	run.IndexedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, run_date, site, indexed_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.RunDate, run.Site, run.IndexedAt.Format(time.RFC3339))
	if err != nil && isUniqueViolation(err) {
		return claimharvest.Errorf(claimharvest.ECONFLICT, "run %q already indexed", run.ID)
	}
	return err
}

// FindRuns lists indexed runs, newest first.
func (s *RunService) FindRuns(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_date, site, indexed_at
		FROM runs
		ORDER BY indexed_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var indexedAt string
		if err := rows.Scan(&run.ID, &run.RunDate, &run.Site, &indexedAt); err != nil {
			return nil, err
		}
		if run.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
