package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Buu205/Vietnam-stock-sub000/internal/application/pipeline"
)

// Store persists scan runs and their ranked results to Postgres.
type Store struct {
	db      *sqlx.DB
	timeout time.Duration
}

// Open connects to Postgres and prepares the store.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return NewStore(db), nil
}

// NewStore wraps an existing connection, mainly for tests.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, timeout: 10 * time.Second}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

const schema = `
CREATE TABLE IF NOT EXISTS scan_runs (
	run_id      UUID PRIMARY KEY,
	scanned_at  TIMESTAMPTZ NOT NULL,
	total       INT NOT NULL,
	qualified   INT NOT NULL,
	duration    TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scan_results (
	run_id       UUID NOT NULL REFERENCES scan_runs(run_id) ON DELETE CASCADE,
	symbol       TEXT NOT NULL,
	trade_date   DATE NOT NULL,
	rank         INT NOT NULL,
	total_score  INT NOT NULL,
	quality      TEXT NOT NULL,
	direction    TEXT NOT NULL,
	action_label TEXT NOT NULL,
	breakdown    JSONB NOT NULL,
	PRIMARY KEY (run_id, symbol)
);

CREATE INDEX IF NOT EXISTS idx_scan_results_symbol_date
	ON scan_results (symbol, trade_date);
`

// Migrate creates the scan tables when they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate scan schema: %w", err)
	}
	return nil
}

// SaveReport stores a scan run and its ranked results in one transaction.
func (s *Store) SaveReport(ctx context.Context, report *pipeline.Report) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin scan tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scan_runs (run_id, scanned_at, total, qualified, duration)
		 VALUES ($1, $2, $3, $4, $5)`,
		report.RunID, report.Timestamp, report.Total, len(report.Qualified), report.Duration)
	if err != nil {
		return fmt.Errorf("insert scan run %s: %w", report.RunID, err)
	}

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO scan_results
		 (run_id, symbol, trade_date, rank, total_score, quality, direction, action_label, breakdown)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return fmt.Errorf("prepare result insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range report.Ranked {
		breakdown, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal breakdown for %s: %w", r.Symbol, err)
		}
		if _, err := stmt.ExecContext(ctx,
			report.RunID, r.Symbol, r.Date, i+1, r.TotalScore,
			string(r.Quality), string(r.Direction), r.ActionLabel, breakdown); err != nil {
			return fmt.Errorf("insert result %s: %w", r.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scan run %s: %w", report.RunID, err)
	}
	return nil
}

// LatestRun returns the most recent run header, or sql.ErrNoRows via the
// driver when the table is empty.
func (s *Store) LatestRun(ctx context.Context) (RunHeader, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var h RunHeader
	err := s.db.GetContext(ctx, &h,
		`SELECT run_id, scanned_at, total, qualified, duration
		 FROM scan_runs ORDER BY scanned_at DESC LIMIT 1`)
	if err != nil {
		return h, fmt.Errorf("query latest run: %w", err)
	}
	return h, nil
}

// RunHeader is the stored summary row of one scan run.
type RunHeader struct {
	RunID     string    `db:"run_id"`
	ScannedAt time.Time `db:"scanned_at"`
	Total     int       `db:"total"`
	Qualified int       `db:"qualified"`
	Duration  string    `db:"duration"`
}
