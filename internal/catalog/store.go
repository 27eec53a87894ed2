// Package catalog keeps the deadlines that countdown views display in an
// in-memory SQLite database. Nothing is written to disk.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// memoryDSN opens a private in-memory database.
const memoryDSN = ":memory:"

var (
	// ErrNotFound is returned when no entry matches a lookup.
	ErrNotFound = errors.New("deadline not found")
	// ErrDuplicate is returned when adding an id that already exists.
	ErrDuplicate = errors.New("deadline already exists")
)

// Catalog provides SQLite-backed lookup of deadlines.
type Catalog struct {
	db *sql.DB
}

// Open creates an empty catalog.
func Open(ctx context.Context) (*Catalog, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database, so pin to one.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := createTable(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{db: db}, nil
}

func createTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS deadlines (
			id       TEXT    PRIMARY KEY,
			title    TEXT    NOT NULL,
			code     TEXT    NOT NULL DEFAULT '',
			kind     TEXT    NOT NULL,
			location TEXT    NOT NULL DEFAULT '',
			due_ms   INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close releases the database. The catalog contents are gone afterwards.
func (c *Catalog) Close() error {
	return c.db.Close()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Add validates and inserts an entry.
func (c *Catalog) Add(ctx context.Context, e Entry) (*Entry, error) {
	return insert(ctx, c.db, e)
}

func insert(ctx context.Context, x execer, e Entry) (*Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	// One statement, so a concurrent add of the same id still reports ErrDuplicate.
	result, err := x.ExecContext(ctx, `
		INSERT INTO deadlines (id, title, code, kind, location, due_ms)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, e.ID, e.Title, e.Code, e.Kind, e.Location, e.Due.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to insert deadline %s: %w", e.ID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to insert deadline %s: %w", e.ID, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicate, e.ID)
	}

	e.Due = time.UnixMilli(e.Due.UnixMilli())
	return &e, nil
}

// Seed adds all entries in one transaction; either all are stored or none.
func (c *Catalog) Seed(ctx context.Context, entries []Entry) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		if _, err := insert(ctx, tx, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, title, code, kind, location, due_ms FROM deadlines`

// Get returns a single entry by id.
func (c *Catalog) Get(ctx context.Context, id string) (*Entry, error) {
	row := c.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get deadline: %w", err)
	}
	return e, nil
}

// List returns entries ordered by due time. An empty kind lists all.
func (c *Catalog) List(ctx context.Context, kind string) ([]Entry, error) {
	var rows *sql.Rows
	var err error

	if kind != "" {
		rows, err = c.db.QueryContext(ctx, selectColumns+` WHERE kind = ? ORDER BY due_ms ASC, id ASC`, kind)
	} else {
		rows, err = c.db.QueryContext(ctx, selectColumns+` ORDER BY due_ms ASC, id ASC`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list deadlines: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Next returns the first entry due strictly after now. When every entry has
// passed it falls back to the earliest one, so a view always has a target.
func (c *Catalog) Next(ctx context.Context, kind string, now time.Time) (*Entry, error) {
	query := selectColumns + ` WHERE due_ms > ?`
	args := []any{now.UnixMilli()}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY due_ms ASC, id ASC LIMIT 1`

	e, err := scanEntry(c.db.QueryRowContext(ctx, query, args...))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to find next deadline: %w", err)
	}

	entries, err := c.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNotFound
	}
	return &entries[0], nil
}

// InMonth returns entries due within the given calendar month in loc.
func (c *Catalog) InMonth(ctx context.Context, year int, month time.Month, loc *time.Location) ([]Entry, error) {
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	rows, err := c.db.QueryContext(ctx, selectColumns+`
		WHERE due_ms >= ? AND due_ms < ? ORDER BY due_ms ASC, id ASC
	`, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to list month: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Remove deletes an entry by id.
func (c *Catalog) Remove(ctx context.Context, id string) error {
	result, err := c.db.ExecContext(ctx, `DELETE FROM deadlines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deadline: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	var dueMS int64

	if err := s.Scan(&e.ID, &e.Title, &e.Code, &e.Kind, &e.Location, &dueMS); err != nil {
		return nil, err
	}
	e.Due = time.UnixMilli(dueMS)
	return &e, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deadline: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
