// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index owns the stored patent record table and its derived FTS5
// token index, and answers ranked queries and aggregations over them.
// Implements: prd002-search-index, prd003-query, prd004-aggregations;
//
//	docs/ARCHITECTURE § Index.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/pdiddy/patent-engine/pkg/types"
)

const defaultBusyTimeout = 30 * time.Second

// EngineName identifies the backing search engine in API responses.
const EngineName = "sqlite-fts5"

// Store manages the patent record table and FTS5 index. Concurrent
// readers need no external coordination: SQLite serializes writers, the
// busy timeout bounds waits on an in-flight rebuild, and reads never
// block other reads under WAL.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the index database at cfg.DBPath and creates
// the schema when missing. A store that cannot be opened or initialized
// reports ErrUnavailable. The sqlite3 driver must be compiled with the
// sqlite_fts5 build tag (mage passes it); without FTS5 the schema cannot
// be created.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "patent_search.db"
	}
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = defaultBusyTimeout
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d", dbPath, busy.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", ErrUnavailable, err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", ErrUnavailable, err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS patents (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL,
			description TEXT,
			claims TEXT,
			assignee TEXT,
			inventors TEXT,
			application_date TEXT,
			publication_date TEXT,
			ipc_class TEXT,
			ipc_classes TEXT,
			category TEXT,
			content_vector TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_patents_assignee ON patents(assignee)`,
		`CREATE INDEX IF NOT EXISTS idx_patents_category ON patents(category)`,
		`CREATE INDEX IF NOT EXISTS idx_patents_ipc_class ON patents(ipc_class)`,
		`CREATE INDEX IF NOT EXISTS idx_patents_pub_date ON patents(publication_date)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='patents_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE patents_fts USING fts5(
				title, abstract, description, claims,
				assignee, inventors, ipc_class, category,
				content=patents, content_rowid=rowid)`,
			`CREATE TRIGGER patents_ai AFTER INSERT ON patents BEGIN
				INSERT INTO patents_fts(rowid, title, abstract, description, claims, assignee, inventors, ipc_class, category)
				VALUES (new.rowid, new.title, new.abstract, new.description, new.claims, new.assignee, new.inventors, new.ipc_class, new.category);
			END`,
			`CREATE TRIGGER patents_ad AFTER DELETE ON patents BEGIN
				INSERT INTO patents_fts(patents_fts, rowid, title, abstract, description, claims, assignee, inventors, ipc_class, category)
				VALUES ('delete', old.rowid, old.title, old.abstract, old.description, old.claims, old.assignee, old.inventors, old.ipc_class, old.category);
			END`,
			`CREATE TRIGGER patents_au AFTER UPDATE ON patents BEGIN
				INSERT INTO patents_fts(patents_fts, rowid, title, abstract, description, claims, assignee, inventors, ipc_class, category)
				VALUES ('delete', old.rowid, old.title, old.abstract, old.description, old.claims, old.assignee, old.inventors, old.ipc_class, old.category);
				INSERT INTO patents_fts(rowid, title, abstract, description, claims, assignee, inventors, ipc_class, category)
				VALUES (new.rowid, new.title, new.abstract, new.description, new.claims, new.assignee, new.inventors, new.ipc_class, new.category);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Rebuild replaces the entire index with the given records in one
// transaction: every existing record and derived index entry is deleted,
// then all records are inserted. No concurrent query observes a state
// with some-but-not-all of the new records visible. Lock contention
// beyond the busy timeout reports ErrBusy.
func (s *Store) Rebuild(ctx context.Context, records []types.PatentRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapBusy(fmt.Errorf("beginning rebuild transaction: %w", err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM patents`); err != nil {
		return wrapBusy(fmt.Errorf("clearing patents: %w", err))
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO patents (
			id, title, abstract, description, claims, assignee,
			inventors, application_date, publication_date,
			ipc_class, ipc_classes, category, content_vector
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		inventorsJSON, _ := json.Marshal(rec.Inventors)
		ipcClassesJSON, _ := json.Marshal(rec.IPCClasses)

		_, err := stmt.ExecContext(ctx,
			rec.ID, rec.Title, rec.Abstract, rec.Description, rec.Claims,
			rec.Assignee, string(inventorsJSON),
			rec.ApplicationDate, rec.PublicationDate,
			rec.IPCClass, string(ipcClassesJSON), rec.Category,
			featureVector(rec),
		)
		if err != nil {
			return wrapBusy(fmt.Errorf("inserting record %s: %w", rec.ID, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapBusy(fmt.Errorf("committing rebuild: %w", err))
	}
	return nil
}

// wrapBusy tags SQLite lock-contention errors as retryable.
func wrapBusy(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%w: %v", ErrBusy, err)
	}
	return err
}
