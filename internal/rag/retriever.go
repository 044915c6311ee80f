package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/rag Embedder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/contextutil"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/metrics"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/storage"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/vectorstore"
)

var tracer = otel.Tracer("github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/rag")

// Embedder turns a query into a vector in the index's embedding space.
type Embedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}

// Retrieval is the outcome of one hierarchical retrieval.
type Retrieval struct {
	// Candidates holds the selected tier's passages followed by rule passages.
	Candidates []Candidate
	// SelectedTier is the first ordered tier with a vector hit, or "".
	SelectedTier legal.DocType
}

// Retriever searches the doc-type tiers in precedence order and stops at
// the first tier with a hit. Rules are always searched in addition.
type Retriever struct {
	embedder   Embedder
	vectors    vectorstore.VectorStore
	collection string
	passages   storage.PassageStore
	policy     Policy
	metrics    *metrics.Metrics
}

// NewRetriever creates a new hierarchical retriever. A nil m records to a
// private registry.
func NewRetriever(
	embedder Embedder,
	vectors vectorstore.VectorStore,
	collection string,
	passages storage.PassageStore,
	policy Policy,
	m *metrics.Metrics,
) *Retriever {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Retriever{
		embedder:   embedder,
		vectors:    vectors,
		collection: collection,
		passages:   passages,
		policy:     policy,
		metrics:    m,
	}
}

// Retrieve embeds the query once and runs the tier loop.
//
// Each returned candidate has SimilarityScore == RawScore and
// MetadataBoost == 1. Passages whose metadata is missing are skipped.
// A failing tier query aborts retrieval with ErrBackendUnavailable.
func (r *Retriever) Retrieve(ctx context.Context, query string) (Retrieval, error) {
	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()

	ctx, span := tracer.Start(ctx, "rag.retrieve")
	defer span.End()

	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "embed query")
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return Retrieval{}, fmt.Errorf("%w: embed query: %w", ErrExternalService, err)
	}

	var out Retrieval
	for _, tier := range legal.OrderedTiers {
		candidates, hits, err := r.searchTier(ctx, vec, tier)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "tier query")
			return Retrieval{}, err
		}
		// A vector hit settles the tier even when every lookup misses.
		if hits > 0 {
			out.Candidates = append(out.Candidates, candidates...)
			out.SelectedTier = tier
			break
		}
	}

	rules, _, err := r.searchTier(ctx, vec, legal.DocTypeRule)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rule query")
		return Retrieval{}, err
	}
	out.Candidates = append(out.Candidates, rules...)

	span.SetAttributes(
		attribute.String("legal.selected_tier", string(out.SelectedTier)),
		attribute.Int("legal.candidates", len(out.Candidates)),
	)
	r.metrics.RetrievedCandidates.Observe(float64(len(out.Candidates)))
	r.metrics.StageDuration.WithLabelValues("retrieve").Observe(time.Since(start).Seconds())

	logger.InfoContext(ctx, "hierarchical retrieval completed",
		"selected_tier", out.SelectedTier,
		"candidates", len(out.Candidates),
		"rule_candidates", len(rules),
	)

	return out, nil
}

// searchTier queries one tier and resolves passage metadata. It returns the
// resolved candidates in vector-score order and the raw vector hit count.
func (r *Retriever) searchTier(ctx context.Context, vec []float32, tier legal.DocType) ([]Candidate, int, error) {
	logger := contextutil.LoggerFromContext(ctx)
	limit := r.policy.Limit(tier)

	ctx, span := tracer.Start(ctx, "rag.search_tier", trace.WithAttributes(
		attribute.String("legal.tier", string(tier)),
		attribute.Int("legal.limit", limit),
	))
	defer span.End()

	results, err := r.vectors.Search(ctx, r.collection, vec, limit, map[string]any{
		vectorstore.FilterDocType: string(tier),
	})
	if err != nil {
		r.metrics.TierQueriesTotal.WithLabelValues(string(tier), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "vector search")
		logger.ErrorContext(ctx, "tier query failed", "tier", tier, "error", err)
		return nil, 0, fmt.Errorf("%w: search %s tier: %w", ErrBackendUnavailable, tier, err)
	}

	candidates, err := r.resolve(ctx, results)
	if err != nil {
		r.metrics.TierQueriesTotal.WithLabelValues(string(tier), "error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "metadata lookup")
		logger.ErrorContext(ctx, "metadata lookup failed", "tier", tier, "error", err)
		return nil, 0, err
	}

	outcome := "empty"
	if len(results) > 0 {
		outcome = "hit"
	}
	r.metrics.TierQueriesTotal.WithLabelValues(string(tier), outcome).Inc()
	span.SetAttributes(
		attribute.Int("legal.hits", len(results)),
		attribute.Int("legal.resolved", len(candidates)),
	)

	logger.InfoContext(ctx, "tier query",
		"tier", tier,
		"limit", limit,
		"hits", len(results),
		"resolved", len(candidates),
	)

	return candidates, len(results), nil
}

// resolve fetches passage metadata for each hit with bounded concurrency
// and keeps the vector-score order.
func (r *Retriever) resolve(ctx context.Context, results []vectorstore.SearchResult) ([]Candidate, error) {
	if len(results) == 0 {
		return nil, nil
	}
	logger := contextutil.LoggerFromContext(ctx)

	slots := make([]*Candidate, len(results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.policy.LookupConcurrency)

	for i, res := range results {
		g.Go(func() error {
			rec, err := r.passages.GetByID(gctx, res.PointID)
			if errors.Is(err, storage.ErrNotFound) {
				logger.WarnContext(gctx, "passage metadata missing, skipping", "passage_id", res.PointID)
				return nil
			}
			if err != nil {
				return fmt.Errorf("%w: get passage %s: %w", ErrBackendUnavailable, res.PointID, err)
			}
			score := float64(res.Score)
			slots[i] = &Candidate{
				Passage:         rec.Passage(),
				RawScore:        score,
				SimilarityScore: score,
				MetadataBoost:   1.0,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(results))
	for _, c := range slots {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	return candidates, nil
}
