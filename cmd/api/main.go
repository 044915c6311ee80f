package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/config"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/corpus"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/http"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/indexer"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/llm"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/metrics"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/rag"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/storage"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/tracing"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API answers questions about Nepali law from an indexed corpus of
// the constitution, the Muluki acts, other acts and rules.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Nepali Legal Assistant API
//   description: |
//     Retrieval-augmented question answering over Nepal's laws. Passages are
//     retrieved tier by tier in order of legal authority, reranked against
//     the sections, chapters and parts a question names, and scored for
//     confidence.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

const (
	serviceName    = "nepali-legal-assistant"
	serviceVersion = "1.0.0"
)

// vectorBackend is what the service needs from a vector index.
type vectorBackend interface {
	vectorstore.VectorStore
	vectorstore.CollectionManager
	Close() error
}

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		log.Fatalf("Invalid log level: %v", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", level.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, serviceName, serviceVersion, cfg.TracingEndpoint)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("Failed to flush traces", "error", err)
		}
	}()

	policy, err := policyFromConfig(cfg.Retrieval)
	if err != nil {
		log.Fatalf("Invalid retrieval policy: %v", err)
	}

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	sourceRepo := storage.NewSourceRepo(db)
	passageRepo := storage.NewPassageRepo(db)

	legalCorpus, err := corpus.New(cfg.CorpusPath)
	if err != nil {
		log.Fatalf("Failed to open corpus: %v", err)
	}
	slog.Info("Corpus opened", "root", legalCorpus.Root())

	vectors, err := openVectorBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create vector store: %v", err)
	}
	defer func() {
		_ = vectors.Close()
	}()

	collection := cfg.Collection()
	if err := vectors.EnsureCollection(ctx, collection, cfg.VectorSize); err != nil {
		log.Fatalf("Failed to ensure vector collection: %v", err)
	}
	slog.Info("Vector collection ready", "backend", cfg.VectorBackend, "collection", collection, "vector_size", cfg.VectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.VectorSize)
	if _, err := embedder.EmbedQuery(ctx, "स्वास्थ्य परीक्षण"); err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	slog.Info("Embedding client validated", "model", cfg.EmbeddingModelName, "vector_size", cfg.VectorSize)

	m := metrics.New(prometheus.DefaultRegisterer)

	pipeline := indexer.NewPipeline(legalCorpus, sourceRepo, passageRepo, embedder, vectors, collection, m)

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	retriever := rag.NewRetriever(embedder, vectors, collection, passageRepo, policy, m)
	ragEngine := rag.NewEngine(retriever, llmClient, policy, llm.ChatParams{
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: float32(cfg.LLMTemperature),
	}, m)
	slog.Info("RAG engine initialized", "model", cfg.LLMModelName)

	router := http.NewRouter(&http.Deps{
		RAGEngine:      ragEngine,
		Indexer:        pipeline,
		Collections:    vectors,
		DB:             db,
		CollectionName: collection,
		Metrics:        m,
	})

	// Start indexing in background after router is ready
	go func() {
		slog.Info("Starting background indexing of corpus")
		run, err := pipeline.IndexAll(ctx, false)
		if err != nil {
			slog.Error("Indexing completed with errors", "error", err, "failed", run.Failed)
			return
		}
		slog.Info("Indexing completed successfully", "indexed", run.Indexed, "unchanged", run.Unchanged, "passages", run.Passages)
	}()

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", server.Addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed: %v", err)
	}
}

// openVectorBackend connects to the backend selected by VECTOR_BACKEND.
func openVectorBackend(ctx context.Context, cfg *config.Config) (vectorBackend, error) {
	if cfg.VectorBackend == config.BackendPGVector {
		store, err := vectorstore.NewPGVectorStore(ctx, cfg.PGVectorDSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	store, err := vectorstore.NewQdrantStore(vectorstore.QdrantOptions{
		URL:    cfg.QdrantURL,
		APIKey: cfg.QdrantAPIKey,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}
