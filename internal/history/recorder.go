// Package history stores finished reports in MySQL, one row per check.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/alexanderjulianmartinez/data-quality/pkg/types"
)

const DefaultTable = "data_quality_results"

type Recorder struct {
	db      *sql.DB
	table   string
	timeout time.Duration
	now     func() time.Time
}

func NewRecorder(dsn, table string) (*Recorder, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}
	return NewRecorderFromDB(db, table), nil
}

func NewRecorderFromDB(db *sql.DB, table string) *Recorder {
	if table == "" {
		table = DefaultTable
	}
	return &Recorder{
		db:      db,
		table:   table,
		timeout: 10 * time.Second,
		now:     time.Now,
	}
}

func (r *Recorder) Close() error {
	return r.db.Close()
}

// Record inserts every report row under runID in a single transaction.
func (r *Recorder) Record(ctx context.Context, runID string, source string, rep *types.Report) (err error) {
	if rep == nil || len(rep.Rows) == 0 {
		return errors.New("empty report")
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s
			(run_id, source, position, test_id, description, result, details, issues_count, observations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, quoteIdent(r.table)))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	createdAt := r.now().UTC()
	for i, row := range rep.Rows {
		if _, err = stmt.ExecContext(ctx,
			runID, source, i, row.TestID, row.Description, row.Result,
			row.Details, row.IssuesCount, row.Observations, createdAt,
		); err != nil {
			return fmt.Errorf("insert %s: %w", row.TestID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
