package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_passage_embedder.go -package=mocks github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/indexer PassageEmbedder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/contextutil"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/corpus"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/metrics"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/storage"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/vectorstore"
)

// embedBatchSize bounds the passages sent per embeddings request.
const embedBatchSize = 32

// ErrIndexRunning is returned by IndexAll while another run is in progress.
var ErrIndexRunning = errors.New("indexing already in progress")

// PassageEmbedder embeds passages for storage.
type PassageEmbedder interface {
	EmbedPassages(ctx context.Context, passages []string) ([][]float32, error)
}

// Pipeline orchestrates the indexing of legal texts into SQLite and the
// vector store.
type Pipeline struct {
	corpus      *corpus.Corpus
	sourceRepo  storage.SourceStore
	passageRepo storage.PassageStore
	embedder    PassageEmbedder
	vectorStore vectorstore.VectorStore
	collection  string
	chunker     *SectionChunker
	metrics     *metrics.Metrics

	// running is held for the duration of an IndexAll run.
	running sync.Mutex
}

// NewPipeline creates a new indexing pipeline. A nil m records to a
// private registry.
func NewPipeline(
	c *corpus.Corpus,
	sourceRepo storage.SourceStore,
	passageRepo storage.PassageStore,
	embedder PassageEmbedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	m *metrics.Metrics,
) *Pipeline {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Pipeline{
		corpus:      c,
		sourceRepo:  sourceRepo,
		passageRepo: passageRepo,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		chunker:     NewSectionChunker(),
		metrics:     m,
	}
}

// FileResult describes what indexing did with one file.
type FileResult struct {
	RelPath    string `json:"rel_path"`
	Unchanged  bool   `json:"unchanged,omitempty"`
	Chunks     int    `json:"chunks"`
	Passages   int    `json:"passages"`
	Duplicates int    `json:"duplicates"`
}

// IndexFile indexes a single corpus file.
// It skips files whose hash is unchanged, replaces the passages of changed
// files, and skips passages whose (doc type, text) pair is already stored.
func (p *Pipeline) IndexFile(ctx context.Context, file corpus.ScannedFile) (FileResult, error) {
	logger := contextutil.LoggerFromContext(ctx)
	result := FileResult{RelPath: file.RelPath}

	content, err := os.ReadFile(file.AbsPath)
	if err != nil {
		return result, fmt.Errorf("failed to read file %s: %w", file.AbsPath, err)
	}
	hashHex := hashOf(string(content))

	existing, err := p.sourceRepo.GetByPath(ctx, file.RelPath)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return result, fmt.Errorf("failed to check existing source: %w", err)
	}

	if existing != nil && existing.Hash == hashHex {
		logger.DebugContext(ctx, "skipping unchanged file", "rel_path", file.RelPath, "hash", hashHex)
		result.Unchanged = true
		return result, nil
	}

	// The hash is recorded only once every passage is stored, so a failed
	// run is retried on the next one.
	source := &storage.SourceRecord{RelPath: file.RelPath, DocType: file.DocType}
	if existing != nil {
		source.ID = existing.ID
	}
	if err := p.sourceRepo.Upsert(ctx, source); err != nil {
		return result, fmt.Errorf("failed to upsert source: %w", err)
	}

	if existing != nil {
		if err := p.removePassages(ctx, source.ID); err != nil {
			return result, err
		}
	}

	chunks := p.chunker.Chunk(content, file.RelPath)
	result.Chunks = len(chunks)

	records := make([]*storage.PassageRecord, 0, len(chunks))
	seen := make(map[string]bool, len(chunks))
	for _, chunk := range chunks {
		textHash := hashOf(chunk.Text)
		if seen[textHash] {
			result.Duplicates++
			continue
		}
		seen[textHash] = true

		exists, err := p.passageRepo.ExistsByHash(ctx, file.DocType, textHash)
		if err != nil {
			return result, fmt.Errorf("failed to check duplicate passage: %w", err)
		}
		if exists {
			result.Duplicates++
			continue
		}

		records = append(records, &storage.PassageRecord{
			ID:         uuid.New().String(),
			SourceID:   source.ID,
			SourcePath: file.RelPath,
			ChunkIndex: chunk.Index,
			DocType:    file.DocType,
			Priority:   file.DocType.Priority(),
			Structure:  chunk.Structure,
			Text:       chunk.Text,
			TextHash:   textHash,
		})
	}

	for start := 0; start < len(records); start += embedBatchSize {
		end := min(start+embedBatchSize, len(records))
		if err := p.storeBatch(ctx, records[start:end]); err != nil {
			return result, err
		}
	}
	result.Passages = len(records)

	source.Hash = hashHex
	if err := p.sourceRepo.Upsert(ctx, source); err != nil {
		return result, fmt.Errorf("failed to record source hash: %w", err)
	}

	p.metrics.PassagesIndexedTotal.WithLabelValues(string(file.DocType)).Add(float64(len(records)))
	logger.InfoContext(ctx, "indexed file",
		"rel_path", file.RelPath,
		"doc_type", file.DocType,
		"chunks", len(chunks),
		"passages", len(records),
		"duplicates", result.Duplicates,
	)
	return result, nil
}

// storeBatch embeds a batch of passages and stores them in SQLite and the
// vector store.
func (p *Pipeline) storeBatch(ctx context.Context, records []*storage.PassageRecord) error {
	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Text
	}

	embeddings, err := p.embedder.EmbedPassages(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(records) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(embeddings))
	}

	points := make([]vectorstore.Point, len(records))
	for i, r := range records {
		points[i] = vectorstore.Point{
			ID:  r.ID,
			Vec: embeddings[i],
			Meta: map[string]any{
				vectorstore.FilterDocType: string(r.DocType),
				"priority":                r.Priority,
				"source_path":             r.SourcePath,
				"section":                 r.Structure.Section,
			},
		}
	}

	for _, r := range records {
		if err := p.passageRepo.Insert(ctx, r); err != nil {
			return fmt.Errorf("failed to insert passage: %w", err)
		}
	}

	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}
	return nil
}

// removePassages deletes a source's passages from both stores.
func (p *Pipeline) removePassages(ctx context.Context, sourceID string) error {
	logger := contextutil.LoggerFromContext(ctx)

	ids, err := p.passageRepo.ListIDsBySource(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("failed to list old passage IDs: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := p.vectorStore.Delete(ctx, p.collection, ids); err != nil {
		logger.WarnContext(ctx, "failed to delete old passages from vector store", "error", err, "count", len(ids))
		// Orphaned points are skipped at query time because their metadata is gone.
	}
	if err := p.passageRepo.DeleteBySource(ctx, sourceID); err != nil {
		return fmt.Errorf("failed to delete old passages from SQLite: %w", err)
	}
	return nil
}

// ClearAll removes every indexed passage and source.
func (p *Pipeline) ClearAll(ctx context.Context) error {
	sources, err := p.sourceRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sources: %w", err)
	}

	for _, s := range sources {
		ids, err := p.passageRepo.ListIDsBySource(ctx, s.ID)
		if err != nil {
			return fmt.Errorf("failed to list passages of %s: %w", s.RelPath, err)
		}
		if len(ids) == 0 {
			continue
		}
		if err := p.vectorStore.Delete(ctx, p.collection, ids); err != nil {
			return fmt.Errorf("failed to delete vectors of %s: %w", s.RelPath, err)
		}
	}

	if err := p.sourceRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete sources: %w", err)
	}
	return nil
}

// IndexAll scans the corpus and indexes every legal text. With force set,
// the index is cleared first so every file is re-ingested.
// Errors for individual files are logged but don't stop the indexing process.
// Only one run may be active; a concurrent call returns ErrIndexRunning.
func (p *Pipeline) IndexAll(ctx context.Context, force bool) (RunResult, error) {
	if !p.running.TryLock() {
		return RunResult{Force: force}, ErrIndexRunning
	}
	defer p.running.Unlock()

	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()
	run := RunResult{Force: force}

	if force {
		logger.InfoContext(ctx, "clearing index before re-ingestion")
		if err := p.ClearAll(ctx); err != nil {
			p.metrics.IndexRunsTotal.WithLabelValues("error").Inc()
			return run, err
		}
	}

	files, err := p.corpus.Scan(ctx)
	if err != nil {
		p.metrics.IndexRunsTotal.WithLabelValues("error").Inc()
		return run, fmt.Errorf("failed to scan corpus: %w", err)
	}

	logger.InfoContext(ctx, "starting indexing", "total_files", len(files), "force", force)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			p.metrics.IndexRunsTotal.WithLabelValues("error").Inc()
			return run, err
		}

		res, err := p.IndexFile(ctx, file)
		run.add(res, err)
		if err != nil {
			logger.ErrorContext(ctx, "failed to index file", "rel_path", file.RelPath, "error", err)
			continue
		}
	}
	run.DurationMs = time.Since(start).Milliseconds()

	logger.InfoContext(ctx, "indexing completed",
		"total_files", run.Files,
		"indexed", run.Indexed,
		"unchanged", run.Unchanged,
		"errors", run.Failed,
		"passages", run.Passages,
		"duplicates", run.Duplicates,
	)

	if run.Failed > 0 {
		p.metrics.IndexRunsTotal.WithLabelValues("partial").Inc()
		return run, fmt.Errorf("indexing completed with %d errors", run.Failed)
	}
	p.metrics.IndexRunsTotal.WithLabelValues("success").Inc()
	return run, nil
}

func hashOf(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
