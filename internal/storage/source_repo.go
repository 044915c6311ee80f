package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_source_store.go -package=mocks github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/storage SourceStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

// SourceStore defines the interface for ingested file records.
type SourceStore interface {
	// GetByPath gets a source by its corpus-relative path.
	// Returns nil and ErrNotFound if not found.
	GetByPath(ctx context.Context, relPath string) (*SourceRecord, error)
	// Upsert inserts a new source or updates the hash of an existing one.
	Upsert(ctx context.Context, source *SourceRecord) error
	// List returns all sources ordered by path.
	List(ctx context.Context) ([]SourceRecord, error)
	// DeleteAll removes every source and, through the foreign key, every passage.
	DeleteAll(ctx context.Context) error
}

// SourceRepo implements SourceStore on SQLite.
type SourceRepo struct {
	db *sql.DB
}

// NewSourceRepo creates a new SourceRepo.
func NewSourceRepo(db *sql.DB) *SourceRepo {
	return &SourceRepo{db: db}
}

// GetByPath gets a source by relative path.
func (r *SourceRepo) GetByPath(ctx context.Context, relPath string) (*SourceRecord, error) {
	var s SourceRecord
	var docType, indexedAt string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, rel_path, doc_type, hash, indexed_at FROM sources WHERE rel_path = ?",
		relPath,
	).Scan(&s.ID, &s.RelPath, &docType, &s.Hash, &indexedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query source: %w", err)
	}

	s.DocType = legal.DocType(docType)
	s.IndexedAt, err = parseTimestamp(indexedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert inserts a new source or updates an existing one.
// New sources get a UUID; existing sources keep their ID.
func (r *SourceRepo) Upsert(ctx context.Context, source *SourceRecord) error {
	existing, err := r.GetByPath(ctx, source.RelPath)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check existing source: %w", err)
	}

	if existing != nil {
		source.ID = existing.ID
	} else if source.ID == "" {
		source.ID = uuid.New().String()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO sources (id, rel_path, doc_type, hash, indexed_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (rel_path) DO UPDATE SET
		 doc_type = excluded.doc_type, hash = excluded.hash, indexed_at = CURRENT_TIMESTAMP`,
		source.ID, source.RelPath, string(source.DocType), source.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert source: %w", err)
	}

	return nil
}

// List returns all sources ordered by path.
func (r *SourceRepo) List(ctx context.Context) ([]SourceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, rel_path, doc_type, hash, indexed_at FROM sources ORDER BY rel_path",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sources []SourceRecord
	for rows.Next() {
		var s SourceRecord
		var docType, indexedAt string
		if err := rows.Scan(&s.ID, &s.RelPath, &docType, &s.Hash, &indexedAt); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		s.DocType = legal.DocType(docType)
		if s.IndexedAt, err = parseTimestamp(indexedAt); err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sources, nil
}

// DeleteAll removes every source and passage.
func (r *SourceRepo) DeleteAll(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM passages"); err != nil {
		return fmt.Errorf("failed to delete passages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sources"); err != nil {
		return fmt.Errorf("failed to delete sources: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// SQLite may return DATETIME columns in either layout.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}
