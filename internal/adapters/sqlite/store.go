// Package sqlite is the offline SheetStore: the same four collections the
// spreadsheet holds, persisted in a local database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/commesse/internal/models"
	"github.com/example/commesse/internal/ports/secondary"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS jobs (
    id                 TEXT PRIMARY KEY,
    code               TEXT NOT NULL DEFAULT '',
    client             TEXT NOT NULL DEFAULT '',
    category           TEXT NOT NULL DEFAULT '',
    priority           INTEGER NOT NULL DEFAULT 1,
    requested_delivery TEXT NOT NULL DEFAULT '',
    assigned_operator  TEXT NOT NULL DEFAULT '',
    department         TEXT NOT NULL DEFAULT '',
    status             TEXT NOT NULL DEFAULT '',
    created_on         TEXT NOT NULL DEFAULT '',
    taken_in_charge    TEXT NOT NULL DEFAULT '',
    expected_finish    TEXT NOT NULL DEFAULT '',
    missing_materials  TEXT NOT NULL DEFAULT '',
    technical_notes    TEXT NOT NULL DEFAULT '',
    estimated_hours    INTEGER NOT NULL DEFAULT 0,
    completion         TEXT NOT NULL DEFAULT '',
    color              TEXT NOT NULL DEFAULT '',
    locked             INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS operators (
    id                   INTEGER PRIMARY KEY,
    name                 TEXT NOT NULL,
    department           TEXT NOT NULL,
    personal_color       TEXT NOT NULL DEFAULT '',
    show_estimated_hours INTEGER NOT NULL DEFAULT 0,
    email                TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS clients (
    id    TEXT PRIMARY KEY,
    name  TEXT NOT NULL,
    email TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS phase_logs (
    id          TEXT PRIMARY KEY,
    job_id      TEXT NOT NULL,
    phase       TEXT NOT NULL,
    start       TEXT NOT NULL DEFAULT '',
    end         TEXT NOT NULL DEFAULT '',
    phase_state TEXT NOT NULL DEFAULT '',
    actor       TEXT NOT NULL DEFAULT '',
    notes       TEXT NOT NULL DEFAULT ''
);
`

// Store implements secondary.SheetStore over a local SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Fetch loads the full snapshot.
func (s *Store) Fetch(ctx context.Context) (secondary.Snapshot, error) {
	var snap secondary.Snapshot

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, code, client, category, priority, requested_delivery, assigned_operator, department, status, created_on, taken_in_charge, expected_finish, missing_materials, technical_notes, estimated_hours, completion, color, locked FROM jobs ORDER BY id")
	if err != nil {
		return secondary.Snapshot{}, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var j models.Job
		err := rows.Scan(&j.ID, &j.Code, &j.Client, &j.Category, &j.Priority,
			&j.RequestedDelivery, &j.AssignedOperator, &j.Department, &j.Status,
			&j.CreatedOn, &j.TakenInCharge, &j.ExpectedFinish, &j.MissingMaterials,
			&j.TechnicalNotes, &j.EstimatedHours, &j.Completion, &j.Color, &j.Locked)
		if err != nil {
			return secondary.Snapshot{}, fmt.Errorf("failed to scan job: %w", err)
		}
		snap.Jobs = append(snap.Jobs, j)
	}
	if err := rows.Err(); err != nil {
		return secondary.Snapshot{}, fmt.Errorf("failed to read jobs: %w", err)
	}

	ops, err := s.db.QueryContext(ctx,
		"SELECT id, name, department, personal_color, show_estimated_hours, email FROM operators ORDER BY id")
	if err != nil {
		return secondary.Snapshot{}, fmt.Errorf("failed to query operators: %w", err)
	}
	defer ops.Close()
	for ops.Next() {
		var o models.Operator
		if err := ops.Scan(&o.ID, &o.Name, &o.Department, &o.PersonalColor, &o.ShowEstimatedHours, &o.Email); err != nil {
			return secondary.Snapshot{}, fmt.Errorf("failed to scan operator: %w", err)
		}
		snap.Operators = append(snap.Operators, o)
	}
	if err := ops.Err(); err != nil {
		return secondary.Snapshot{}, fmt.Errorf("failed to read operators: %w", err)
	}

	cls, err := s.db.QueryContext(ctx, "SELECT id, name, email, phone FROM clients ORDER BY id")
	if err != nil {
		return secondary.Snapshot{}, fmt.Errorf("failed to query clients: %w", err)
	}
	defer cls.Close()
	for cls.Next() {
		var c models.Client
		if err := cls.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
			return secondary.Snapshot{}, fmt.Errorf("failed to scan client: %w", err)
		}
		snap.Clients = append(snap.Clients, c)
	}
	if err := cls.Err(); err != nil {
		return secondary.Snapshot{}, fmt.Errorf("failed to read clients: %w", err)
	}

	lgs, err := s.db.QueryContext(ctx,
		"SELECT id, job_id, phase, start, end, phase_state, actor, notes FROM phase_logs ORDER BY id")
	if err != nil {
		return secondary.Snapshot{}, fmt.Errorf("failed to query phase logs: %w", err)
	}
	defer lgs.Close()
	for lgs.Next() {
		var l models.PhaseLog
		if err := lgs.Scan(&l.ID, &l.JobID, &l.Phase, &l.Start, &l.End, &l.PhaseState, &l.Actor, &l.Notes); err != nil {
			return secondary.Snapshot{}, fmt.Errorf("failed to scan phase log: %w", err)
		}
		snap.Logs = append(snap.Logs, l)
	}
	if err := lgs.Err(); err != nil {
		return secondary.Snapshot{}, fmt.Errorf("failed to read phase logs: %w", err)
	}

	return snap, nil
}

// Push rewrites the whole store with snap in one transaction, mirroring
// the clear-then-write cycle used against the remote spreadsheet.
func (s *Store) Push(ctx context.Context, snap secondary.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"jobs", "operators", "clients", "phase_logs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, j := range snap.Jobs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO jobs (id, code, client, category, priority, requested_delivery, assigned_operator, department, status, created_on, taken_in_charge, expected_finish, missing_materials, technical_notes, estimated_hours, completion, color, locked) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			j.ID, j.Code, j.Client, j.Category, j.Priority, j.RequestedDelivery,
			j.AssignedOperator, j.Department, j.Status, j.CreatedOn, j.TakenInCharge,
			j.ExpectedFinish, j.MissingMaterials, j.TechnicalNotes, j.EstimatedHours,
			j.Completion, j.Color, j.Locked)
		if err != nil {
			return fmt.Errorf("failed to insert job %s: %w", j.ID, err)
		}
	}

	for _, o := range snap.Operators {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO operators (id, name, department, personal_color, show_estimated_hours, email) VALUES (?, ?, ?, ?, ?, ?)",
			o.ID, o.Name, o.Department, o.PersonalColor, o.ShowEstimatedHours, o.Email)
		if err != nil {
			return fmt.Errorf("failed to insert operator %d: %w", o.ID, err)
		}
	}

	for _, c := range snap.Clients {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO clients (id, name, email, phone) VALUES (?, ?, ?, ?)",
			c.ID, c.Name, c.Email, c.Phone)
		if err != nil {
			return fmt.Errorf("failed to insert client %s: %w", c.ID, err)
		}
	}

	for _, l := range snap.Logs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO phase_logs (id, job_id, phase, start, end, phase_state, actor, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			l.ID, l.JobID, l.Phase, l.Start, l.End, l.PhaseState, l.Actor, l.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert phase log %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit push: %w", err)
	}
	return nil
}

// WriteHeaders is a no-op: the schema carries the column layout.
func (s *Store) WriteHeaders(ctx context.Context) error {
	return nil
}

// Ensure Store implements the interface
var _ secondary.SheetStore = (*Store)(nil)
