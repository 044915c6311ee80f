package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/contextutil"
)

// PGVectorStore implements VectorStore on PostgreSQL with the pgvector
// extension. Each collection is a table.
type PGVectorStore struct {
	pool *pgxpool.Pool
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// NewPGVectorStore connects to PostgreSQL and checks that the vector
// extension is installed.
func NewPGVectorStore(ctx context.Context, dsn string) (*PGVectorStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("PostgreSQL connection string is required")
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// Register pgvector types for each connection
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	var extExists bool
	err = pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'vector')",
	).Scan(&extExists)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to check pgvector extension: %w", err)
	}
	if !extExists {
		pool.Close()
		return nil, fmt.Errorf("pgvector extension not installed - run: CREATE EXTENSION vector")
	}

	return &PGVectorStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PGVectorStore) Close() error {
	s.pool.Close()
	return nil
}

func tableIdentifier(collection string) (string, error) {
	if !identifierPattern.MatchString(collection) {
		return "", fmt.Errorf("invalid collection name %q", collection)
	}
	return pgx.Identifier{collection}.Sanitize(), nil
}

// Upsert inserts or updates points. The doc_type payload key is also
// stored in its own column for filtering.
func (s *PGVectorStore) Upsert(ctx context.Context, collection string, points []Point) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(points) == 0 {
		return nil
	}

	table, err := tableIdentifier(collection)
	if err != nil {
		return err
	}

	upsertSQL := fmt.Sprintf(`
		INSERT INTO %s (id, doc_type, payload, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			doc_type = EXCLUDED.doc_type,
			payload = EXCLUDED.payload,
			embedding = EXCLUDED.embedding`, table)

	batch := &pgx.Batch{}
	for _, point := range points {
		payload, err := json.Marshal(point.Meta)
		if err != nil {
			return fmt.Errorf("failed to marshal payload for point %s: %w", point.ID, err)
		}
		docType, _ := point.Meta[FilterDocType].(string)
		batch.Queue(upsertSQL, point.ID, docType, payload, pgvector.NewVector(point.Vec))
	}

	results := s.pool.SendBatch(ctx, batch)
	defer func() {
		_ = results.Close()
	}()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			logger.ErrorContext(ctx, "failed to upsert points", "collection", collection, "count", len(points), "error", err)
			return fmt.Errorf("failed to upsert point %d: %w", i, err)
		}
	}

	logger.DebugContext(ctx, "upserted points", "collection", collection, "count", len(points))
	return nil
}

// buildSearchSQL renders the cosine similarity query. Only the doc_type
// column is filterable.
func buildSearchSQL(table string, filters map[string]any) (string, []any, error) {
	var where []string
	var args []any

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key != FilterDocType {
			return "", nil, fmt.Errorf("unsupported filter key %q", key)
		}
		value := fmt.Sprint(filters[key])
		args = append(args, value)
		where = append(where, fmt.Sprintf("doc_type = $%d", len(args)+2))
	}

	query := fmt.Sprintf(`
		SELECT id, payload, 1 - (embedding <=> $1) AS similarity
		FROM %s`, table)
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += `
		ORDER BY embedding <=> $1
		LIMIT $2`

	return query, args, nil
}

// Search performs a cosine similarity search.
func (s *PGVectorStore) Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	table, err := tableIdentifier(collection)
	if err != nil {
		return nil, err
	}

	querySQL, filterArgs, err := buildSearchSQL(table, filters)
	if err != nil {
		return nil, err
	}

	args := append([]any{pgvector.NewVector(query), k}, filterArgs...)
	rows, err := s.pool.Query(ctx, querySQL, args...)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search points", "collection", collection, "k", k, "error", err)
		return nil, fmt.Errorf("pgvector search failed: %w", err)
	}
	defer rows.Close()

	results := make([]SearchResult, 0, k)
	for rows.Next() {
		var (
			id         string
			payload    []byte
			similarity float64
		)
		if err := rows.Scan(&id, &payload, &similarity); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		meta := make(map[string]any)
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &meta); err != nil {
				return nil, fmt.Errorf("failed to parse payload: %w", err)
			}
		}

		results = append(results, SearchResult{
			PointID: id,
			Score:   float32(similarity),
			Meta:    meta,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	logger.DebugContext(ctx, "search completed", "collection", collection, "k", k, "filters", filters, "results", len(results))
	return results, nil
}

// Delete removes points by their IDs.
func (s *PGVectorStore) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	table, err := tableIdentifier(collection)
	if err != nil {
		return err
	}

	if _, err := s.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1)", table), ids); err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "deleted points", "collection", collection, "count", len(ids))
	return nil
}

// CollectionExists checks if the collection table exists.
func (s *PGVectorStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = $1)",
		collection,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check if table exists: %w", err)
	}
	return exists, nil
}

// EnsureCollection creates the collection table with an HNSW cosine index.
func (s *PGVectorStore) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	if vectorSize <= 0 {
		return fmt.Errorf("vector size must be positive")
	}

	table, err := tableIdentifier(collection)
	if err != nil {
		return err
	}

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			doc_type TEXT NOT NULL,
			payload JSONB,
			embedding vector(%d) NOT NULL
		)`, table, vectorSize),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (doc_type)`,
			pgx.Identifier{collection + "_doc_type_idx"}.Sanitize(), table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING hnsw (embedding vector_cosine_ops)`,
			pgx.Identifier{collection + "_embedding_idx"}.Sanitize(), table),
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", collection, err)
		}
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "collection validated", "collection", collection, "vector_size", vectorSize)
	return nil
}

// PointCount returns the number of rows in the collection table.
func (s *PGVectorStore) PointCount(ctx context.Context, collection string) (int, error) {
	table, err := tableIdentifier(collection)
	if err != nil {
		return 0, err
	}

	var n int
	if err := s.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count points: %w", err)
	}
	return n, nil
}
