package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/vectorstore VectorStore

import "context"

// FilterDocType is the payload key every point carries for tier filtering.
const FilterDocType = "doc_type"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
// Score is a cosine similarity, higher is closer.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search with optional exact-match filters.
	// Results are ordered by descending score.
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error
}

// CollectionManager is implemented by backends that own their collection
// lifecycle. Both backends implement it; the health check and startup use it.
type CollectionManager interface {
	CollectionExists(ctx context.Context, collection string) (bool, error)
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error
	PointCount(ctx context.Context, collection string) (int, error)
}
