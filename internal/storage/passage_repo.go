package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_passage_store.go -package=mocks github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/storage PassageStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// PassageStore defines the interface for passage metadata operations.
type PassageStore interface {
	// GetByID gets a passage by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*PassageRecord, error)
	// Insert inserts a single passage. The ID and TextHash must be set.
	Insert(ctx context.Context, passage *PassageRecord) error
	// ExistsByHash reports whether a passage with the same doc type and
	// text hash is already stored.
	ExistsByHash(ctx context.Context, docType legal.DocType, textHash string) (bool, error)
	// DeleteBySource deletes all passages of a source.
	DeleteBySource(ctx context.Context, sourceID string) error
	// ListIDsBySource returns the passage IDs of a source in chunk order.
	ListIDsBySource(ctx context.Context, sourceID string) ([]string, error)
	// CountByDocType returns the number of passages per doc type.
	CountByDocType(ctx context.Context) (map[legal.DocType]int, error)
}

// PassageRepo implements PassageStore on SQLite.
type PassageRepo struct {
	db *sql.DB
}

// NewPassageRepo creates a new PassageRepo.
func NewPassageRepo(db *sql.DB) *PassageRepo {
	return &PassageRepo{db: db}
}

// GetByID gets a passage by its ID. Returns ErrNotFound if not found.
func (r *PassageRepo) GetByID(ctx context.Context, id string) (*PassageRecord, error) {
	var p PassageRecord
	var docType string
	err := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.source_id, s.rel_path, p.chunk_index, p.doc_type, p.priority,
			p.part, p.part_title, p.chapter, p.chapter_title, p.section, p.subsection,
			p.text, p.text_hash
		 FROM passages p JOIN sources s ON s.id = p.source_id
		 WHERE p.id = ?`,
		id,
	).Scan(&p.ID, &p.SourceID, &p.SourcePath, &p.ChunkIndex, &docType, &p.Priority,
		&p.Structure.Part, &p.Structure.PartTitle, &p.Structure.Chapter, &p.Structure.ChapterTitle,
		&p.Structure.Section, &p.Structure.Subsection, &p.Text, &p.TextHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query passage: %w", err)
	}

	p.DocType = legal.DocType(docType)
	return &p, nil
}

// Insert inserts a single passage.
func (r *PassageRepo) Insert(ctx context.Context, p *PassageRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO passages (id, source_id, chunk_index, doc_type, priority,
			part, part_title, chapter, chapter_title, section, subsection, text, text_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SourceID, p.ChunkIndex, string(p.DocType), p.Priority,
		p.Structure.Part, p.Structure.PartTitle, p.Structure.Chapter, p.Structure.ChapterTitle,
		p.Structure.Section, p.Structure.Subsection, p.Text, p.TextHash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert passage: %w", err)
	}
	return nil
}

// ExistsByHash reports whether the (doc type, text hash) pair is stored.
func (r *PassageRepo) ExistsByHash(ctx context.Context, docType legal.DocType, textHash string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM passages WHERE doc_type = ? AND text_hash = ?",
		string(docType), textHash,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check passage hash: %w", err)
	}
	return n > 0, nil
}

// DeleteBySource deletes all passages of a source.
// Used when re-indexing a file to remove old passages before inserting new ones.
func (r *PassageRepo) DeleteBySource(ctx context.Context, sourceID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM passages WHERE source_id = ?", sourceID)
	if err != nil {
		return fmt.Errorf("failed to delete passages by source: %w", err)
	}
	return nil
}

// ListIDsBySource returns the passage IDs of a source, ordered by chunk index.
// Returns an empty slice if the source has no passages.
func (r *PassageRepo) ListIDsBySource(ctx context.Context, sourceID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM passages WHERE source_id = ? ORDER BY chunk_index",
		sourceID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query passage IDs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan passage ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ids, nil
}

// CountByDocType returns the number of passages per doc type. Doc types
// without passages are absent from the map.
func (r *PassageRepo) CountByDocType(ctx context.Context) (map[legal.DocType]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT doc_type, COUNT(*) FROM passages GROUP BY doc_type")
	if err != nil {
		return nil, fmt.Errorf("failed to count passages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	counts := make(map[legal.DocType]int)
	for rows.Next() {
		var docType string
		var n int
		if err := rows.Scan(&docType, &n); err != nil {
			return nil, fmt.Errorf("failed to scan passage count: %w", err)
		}
		counts[legal.DocType(docType)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}
