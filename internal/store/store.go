package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/hrd-survey/internal/config"
	"github.com/hrd-survey/internal/mapping"
	"github.com/hrd-survey/internal/report"
)

// Store persists mapping runs and their decisions to Postgres so past
// runs stay reviewable after the output files are gone.
type Store struct {
	db *sql.DB
}

// Open connects using PG* environment variables.
func Open() (*Store, error) {
	host := config.GetEnv("PGHOST", "localhost")
	port := config.GetEnv("PGPORT", "5432")
	user := config.GetEnv("PGUSER", "survey")
	password := config.GetEnv("PGPASSWORD", "survey")
	dbname := config.GetEnv("PGDATABASE", "hrd_survey")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the audit tables if they do not exist.
func (s *Store) EnsureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS mapping_run (
			run_id        BIGSERIAL PRIMARY KEY,
			source_file   TEXT NOT NULL,
			template_file TEXT NOT NULL,
			threshold     DOUBLE PRECISION NOT NULL,
			matched       INT NOT NULL,
			unmatched     INT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS mapping_decision (
			run_id         BIGINT NOT NULL REFERENCES mapping_run(run_id),
			row_index      INT NOT NULL,
			template_label TEXT NOT NULL,
			question_id    TEXT,
			score          DOUBLE PRECISION NOT NULL,
			accepted       BOOLEAN NOT NULL,
			status         TEXT NOT NULL,
			PRIMARY KEY (run_id, row_index)
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// RecordRun saves one mapping run with its full decision list and returns
// the new run id.
func (s *Store) RecordRun(sourceFile, templateFile string, threshold float64, decisions []mapping.Decision) (int64, error) {
	rep := report.Build(decisions)

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var runID int64
	err = tx.QueryRow(`
		INSERT INTO mapping_run (source_file, template_file, threshold, matched, unmatched, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING run_id
	`, sourceFile, templateFile, threshold, rep.Matched, rep.Unmatched, time.Now()).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO mapping_decision (run_id, row_index, template_label, question_id, score, accepted, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare decision insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range rep.Entries {
		var questionID *string
		if e.QuestionID != "" {
			questionID = &e.QuestionID
		}
		if _, err := stmt.Exec(runID, e.RowIndex, e.TemplateLabel, questionID, e.Score, e.Accepted, e.Status); err != nil {
			return 0, fmt.Errorf("failed to insert decision for row %d: %w", e.RowIndex, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// RunSummary is one row of the run history listing.
type RunSummary struct {
	RunID        int64     `json:"run_id"`
	SourceFile   string    `json:"source_file"`
	TemplateFile string    `json:"template_file"`
	Threshold    float64   `json:"threshold"`
	Matched      int       `json:"matched"`
	Unmatched    int       `json:"unmatched"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListRuns returns recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	rows, err := s.db.Query(`
		SELECT run_id, source_file, template_file, threshold, matched, unmatched, created_at
		FROM mapping_run
		ORDER BY run_id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.SourceFile, &r.TemplateFile, &r.Threshold,
			&r.Matched, &r.Unmatched, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunReport rebuilds the review report of a stored run.
func (s *Store) RunReport(runID int64) (*report.Report, error) {
	rows, err := s.db.Query(`
		SELECT row_index, template_label, COALESCE(question_id, ''), score, accepted
		FROM mapping_decision
		WHERE run_id = $1
		ORDER BY row_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer rows.Close()

	var decisions []mapping.Decision
	for rows.Next() {
		var d mapping.Decision
		if err := rows.Scan(&d.RowIndex, &d.TemplateLabel, &d.QuestionID, &d.Score, &d.Accepted); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if decisions == nil {
		return nil, fmt.Errorf("run %d not found", runID)
	}

	return report.Build(decisions), nil
}

// Ping checks connectivity and reports stored run/decision counts.
func (s *Store) Ping() (runs, decisions int, err error) {
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM mapping_run`).Scan(&runs); err != nil {
		return 0, 0, fmt.Errorf("failed to count runs: %w", err)
	}
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM mapping_decision`).Scan(&decisions); err != nil {
		return 0, 0, fmt.Errorf("failed to count decisions: %w", err)
	}
	return runs, decisions, nil
}
