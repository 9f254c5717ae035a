// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive persists completed research runs in a SQLite database so
// past reports can be listed, re-read, and exported without re-running the
// pipeline.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/deep-research/pkg/types"
)

const dbFile = "research.db"

// Store manages the run archive database.
type Store struct {
	db *sql.DB
}

// Record is one archived run. Report and Plan are populated by Get, not List.
type Record struct {
	ID              int64
	Topic           string
	Title           string
	Confidence      string
	Searches        int
	APICalls        int
	CostUSD         float64
	DurationSeconds float64
	CreatedAt       time.Time
	Report          *types.ResearchReport
	Plan            *types.SearchPlan
}

// Open opens or creates the archive database at dir/research.db, creating
// the schema if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening archive database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		topic TEXT NOT NULL,
		title TEXT,
		confidence TEXT,
		searches INTEGER,
		api_calls INTEGER,
		cost_usd REAL,
		duration_seconds REAL,
		plan_json TEXT,
		report_json TEXT,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Save archives a successful run and returns its row ID. Callers archive
// only success envelopes; failed runs carry nothing worth keeping.
func (s *Store) Save(ctx context.Context, res types.RunResult) (int64, error) {
	if res.Status != types.StatusSuccess || res.Report == nil {
		return 0, fmt.Errorf("only successful runs are archived")
	}

	planJSON, err := json.Marshal(res.Plan)
	if err != nil {
		return 0, fmt.Errorf("encoding plan: %w", err)
	}
	reportJSON, err := json.Marshal(res.Report)
	if err != nil {
		return 0, fmt.Errorf("encoding report: %w", err)
	}

	searches := 0
	if res.Plan != nil {
		searches = len(res.Plan.Searches)
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (topic, title, confidence, searches, api_calls, cost_usd, duration_seconds, plan_json, report_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.Topic, res.Report.Title, res.Report.Confidence, searches,
		res.Costs.APICalls, res.Costs.CostUSD, res.DurationSeconds,
		string(planJSON), string(reportJSON),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return result.LastInsertId()
}

// List returns the most recent runs, newest first, without report bodies.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, topic, title, confidence, searches, api_calls, cost_usd, duration_seconds, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var created string
		if err := rows.Scan(&r.ID, &r.Topic, &r.Title, &r.Confidence, &r.Searches,
			&r.APICalls, &r.CostUSD, &r.DurationSeconds, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Get returns one archived run with its full plan and report.
func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	var r Record
	var created, planJSON, reportJSON string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, topic, title, confidence, searches, api_calls, cost_usd, duration_seconds, plan_json, report_json, created_at
		 FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.Topic, &r.Title, &r.Confidence, &r.Searches,
			&r.APICalls, &r.CostUSD, &r.DurationSeconds, &planJSON, &reportJSON, &created)
	if err == sql.ErrNoRows {
		return Record{}, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("querying run %d: %w", id, err)
	}

	r.CreatedAt, _ = time.Parse(time.RFC3339, created)

	var plan types.SearchPlan
	if err := json.Unmarshal([]byte(planJSON), &plan); err != nil {
		return Record{}, fmt.Errorf("decoding plan for run %d: %w", id, err)
	}
	var report types.ResearchReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return Record{}, fmt.Errorf("decoding report for run %d: %w", id, err)
	}
	r.Plan = &plan
	r.Report = &report
	return r, nil
}
