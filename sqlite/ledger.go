package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/heroscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ heroscrape.Ledger = (*Ledger)(nil)

// Ledger implements heroscrape.Ledger using SQLite.
type Ledger struct {
	db *DB
}

// NewLedger creates a new Ledger.
func NewLedger(db *DB) *Ledger {
	return &Ledger{db: db}
}

// CreateRun stores a new run, assigning its ID and start time if unset.
func (l *Ledger) CreateRun(ctx context.Context, run *heroscrape.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, total, saved, partial, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt),
		run.Total, run.Saved, run.Partial, run.Failed)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// RecordItem stores one item outcome. The artifact body is kept only as
// its content hash.
func (l *Ledger) RecordItem(ctx context.Context, runID string, res *heroscrape.ItemResult) error {
	if runID == "" {
		return heroscrape.Errorf(heroscrape.EINVALID, "run ID required")
	}

	var errText string
	if res.Err != nil {
		errText = res.Err.Error()
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO run_items (run_id, position, url, kind, status, path, content_hash, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, res.Position, res.Item.URL, string(res.Item.Kind), string(res.Status),
		res.Path, HashContent(res.Body), errText)
	if err != nil {
		return fmt.Errorf("failed to record item %d of run %s: %w", res.Position, runID, err)
	}
	return nil
}

// FinishRun stores the final counters and finish time of a run.
func (l *Ledger) FinishRun(ctx context.Context, run *heroscrape.Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}

	result, err := l.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, total = ?, saved = ?, partial = ?, failed = ?
		WHERE id = ?
	`, formatTime(run.FinishedAt), run.Total, run.Saved, run.Partial, run.Failed, run.ID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return heroscrape.Errorf(heroscrape.ENOTFOUND, "run not found")
	}
	return nil
}

// FindRuns retrieves runs matching the filter, most recent first.
func (l *Ledger) FindRuns(ctx context.Context, filter heroscrape.RunFilter) ([]*heroscrape.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, started_at, finished_at, total, saved, partial, failed FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit)

	rows, err := l.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*heroscrape.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// FindRunItems returns the items of a run in crawl order.
// Returns ENOTFOUND if the run does not exist.
func (l *Ledger) FindRunItems(ctx context.Context, runID string) ([]*heroscrape.RunItem, error) {
	var exists int
	err := l.db.QueryRowContext(ctx, "SELECT 1 FROM runs WHERE id = ?", runID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, heroscrape.Errorf(heroscrape.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	rows, err := l.db.QueryContext(ctx, `
		SELECT run_id, position, url, kind, status, path, content_hash, error
		FROM run_items
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*heroscrape.RunItem
	for rows.Next() {
		var item heroscrape.RunItem
		var kind, status string
		if err := rows.Scan(&item.RunID, &item.Position, &item.URL, &kind, &status,
			&item.Path, &item.ContentHash, &item.Error); err != nil {
			return nil, err
		}
		item.Kind = heroscrape.PageKind(kind)
		item.Status = heroscrape.ItemStatus(status)
		items = append(items, &item)
	}

	return items, rows.Err()
}

func scanRun(rows *sql.Rows) (*heroscrape.Run, error) {
	var run heroscrape.Run
	var startedAt, finishedAt string
	if err := rows.Scan(&run.ID, &startedAt, &finishedAt,
		&run.Total, &run.Saved, &run.Partial, &run.Failed); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}
	return &run, nil
}
