// Package manifest persists scan snapshots to SQLite so CI runs and the
// history command can inspect past corpus states without rescanning.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/docsite/internal/content"
)

// Store is a SQLite-backed scan-snapshot store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Record is one persisted scan run.
type Record struct {
	ID        string
	Version   string
	Locale    string
	CommitSHA string
	DocCount  int
	CreatedAt time.Time
}

// DocumentRow is one document inventory line within a scan record.
type DocumentRow struct {
	Slug     string
	FilePath string
	Title    string
	Position int
	Locale   string
	TabGroup string
}

// Open creates or opens the store. Use ":memory:" for ephemeral use.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scans (
		id TEXT PRIMARY KEY,
		version TEXT NOT NULL,
		locale TEXT NOT NULL,
		commit_sha TEXT,
		doc_count INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_scans_version ON scans(version, created_at);
	CREATE TABLE IF NOT EXISTS scan_documents (
		scan_id TEXT NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
		slug TEXT NOT NULL,
		file_path TEXT NOT NULL,
		title TEXT NOT NULL,
		position INTEGER NOT NULL,
		locale TEXT NOT NULL,
		tab_group TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_scan_documents_scan ON scan_documents(scan_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveScan stores a scan record together with its document inventory.
func (s *Store) SaveScan(ctx context.Context, rec Record, docs []*content.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO scans (id, version, locale, commit_sha, doc_count, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Version, rec.Locale, rec.CommitSHA, len(docs), rec.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO scan_documents (scan_id, slug, file_path, title, position, locale, tab_group) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare document insert: %w", err)
	}
	defer stmt.Close()

	for _, doc := range docs {
		_, err := stmt.ExecContext(ctx,
			rec.ID, doc.Slug, doc.FilePath, doc.Title, doc.Meta.Position(), doc.Locale, doc.TabGroup())
		if err != nil {
			return fmt.Errorf("insert scan document: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scan: %w", err)
	}
	return nil
}

// History returns the most recent scan records for a version, newest first.
// A limit of 0 returns everything.
func (s *Store) History(ctx context.Context, version string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, version, locale, commit_sha, doc_count, created_at FROM scans WHERE version = ? ORDER BY created_at DESC"
	args := []any{version}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var sha sql.NullString
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.Version, &rec.Locale, &sha, &rec.DocCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.CommitSHA = sha.String
		rec.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Documents returns the document inventory of one scan record.
func (s *Store) Documents(ctx context.Context, scanID string) ([]DocumentRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT slug, file_path, title, position, locale, tab_group FROM scan_documents WHERE scan_id = ? ORDER BY position, slug",
		scanID,
	)
	if err != nil {
		return nil, fmt.Errorf("query scan documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentRow
	for rows.Next() {
		var row DocumentRow
		if err := rows.Scan(&row.Slug, &row.FilePath, &row.Title, &row.Position, &row.Locale, &row.TabGroup); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		docs = append(docs, row)
	}
	return docs, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
