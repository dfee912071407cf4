// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index persists extracted sections in a SQLite database with FTS5
// full-text search, for querying outlines across a corpus and for scoring
// sections against a persona query.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/outline-engine/pkg/types"
)

const dbFile = "outline.db"

// Store manages the section index database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// DocumentRecord is the per-document metadata stored alongside sections.
type DocumentRecord struct {
	ID     string
	Title  string
	Path   string
	Pages  int
	Script types.Script

	// ModTime is the source file's modification time in RFC3339 form,
	// used to skip unchanged documents on re-ingest.
	ModTime string
}

// NewStore opens or creates the index database at indexDir/outline.db,
// creating the schema when missing.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}
	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	return open(dbPath+"?_journal_mode=WAL&_foreign_keys=on", cfg.MaxResults)
}

// NewMemoryStore opens a throwaway in-memory index, used by the ranker.
func NewMemoryStore() (*Store, error) {
	return open(":memory:", 0)
}

func open(dsn string, maxResults int) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			title TEXT,
			path TEXT,
			pages INTEGER,
			script TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id TEXT NOT NULL REFERENCES documents(id),
			level TEXT NOT NULL,
			heading TEXT NOT NULL,
			page INTEGER NOT NULL,
			body TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sections_doc_id ON sections(doc_id)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			doc_id TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='sections_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE sections_fts USING fts5(heading, body, content=sections, content_rowid=rowid)`,
			`CREATE TRIGGER sections_ai AFTER INSERT ON sections BEGIN
				INSERT INTO sections_fts(rowid, heading, body) VALUES (new.rowid, new.heading, new.body);
			END`,
			`CREATE TRIGGER sections_ad AFTER DELETE ON sections BEGIN
				INSERT INTO sections_fts(sections_fts, rowid, heading, body) VALUES('delete', old.rowid, old.heading, old.body);
			END`,
			`CREATE TRIGGER sections_au AFTER UPDATE ON sections BEGIN
				INSERT INTO sections_fts(sections_fts, rowid, heading, body) VALUES('delete', old.rowid, old.heading, old.body);
				INSERT INTO sections_fts(rowid, heading, body) VALUES (new.rowid, new.heading, new.body);
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

// Unchanged reports whether the document was already ingested from a file
// with the same modification time.
func (s *Store) Unchanged(ctx context.Context, docID, modTime string) bool {
	if modTime == "" {
		return false
	}
	var stored string
	err := s.db.QueryRowContext(ctx,
		`SELECT file_mod_time FROM indexing_status WHERE doc_id = ?`, docID,
	).Scan(&stored)
	return err == nil && stored == modTime
}

// IngestDocument stores a document record and its sections, replacing any
// previous ingest of the same document.
func (s *Store) IngestDocument(ctx context.Context, doc DocumentRecord, sections []types.Section) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM sections WHERE doc_id = ?`, doc.ID); err != nil {
		return fmt.Errorf("clearing sections for %s: %w", doc.ID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (id, title, path, pages, script)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			path = excluded.path,
			pages = excluded.pages,
			script = excluded.script`,
		doc.ID, doc.Title, doc.Path, doc.Pages, string(doc.Script)); err != nil {
		return fmt.Errorf("upserting document %s: %w", doc.ID, err)
	}

	for _, sec := range sections {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sections (doc_id, level, heading, page, body)
			 VALUES (?, ?, ?, ?, ?)`,
			doc.ID, string(sec.Level), sec.Heading, sec.Page, sec.Body); err != nil {
			return fmt.Errorf("inserting section %q of %s: %w", sec.Heading, doc.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO indexing_status (doc_id, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(doc_id) DO UPDATE SET file_mod_time = excluded.file_mod_time`,
		doc.ID, doc.ModTime); err != nil {
		return fmt.Errorf("recording indexing status for %s: %w", doc.ID, err)
	}

	return tx.Commit()
}
