package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/contextutil"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/indexer"
)

// CorpusIndexer ingests the corpus and reports what is indexed.
// *indexer.Pipeline implements it.
type CorpusIndexer interface {
	IndexAll(ctx context.Context, force bool) (indexer.RunResult, error)
	Stats(ctx context.Context) (*indexer.CorpusStats, error)
}

// IndexHandler handles HTTP requests for triggering re-indexing.
type IndexHandler struct {
	indexer CorpusIndexer
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(idx CorpusIndexer) *IndexHandler {
	return &IndexHandler{indexer: idx}
}

// IndexResponse represents the response from the index endpoint.
//
// swagger:model IndexResponse
type IndexResponse struct {
	// "completed" or "completed_with_errors"
	Status string            `json:"status"`
	Result indexer.RunResult `json:"result"`
	Error  string            `json:"error,omitempty"`
}

// ServeHTTP runs an indexing pass over the corpus.
//
// swagger:route POST /api/v1/index indexCorpus
//
// # Index the legal corpus
//
// Ingests new and changed files. With `force=true` the index is cleared
// first and every file is re-ingested. Only one run may be active; a
// concurrent request gets 409.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Run summary
//	  schema:
//	    "$ref": "#/definitions/IndexResponse"
//	'409':
//	  description: An indexing run is already in progress
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	force := r.URL.Query().Get("force") == "true"
	if force {
		logger.InfoContext(ctx, "force re-indexing triggered via API")
	} else {
		logger.InfoContext(ctx, "re-indexing triggered via API")
	}

	// A client disconnect must not abort a half-written run.
	run, err := h.indexer.IndexAll(context.WithoutCancel(ctx), force)
	switch {
	case err == nil:
		writeJSON(ctx, w, http.StatusOK, IndexResponse{Status: "completed", Result: run})
	case errors.Is(err, indexer.ErrIndexRunning):
		logger.WarnContext(ctx, "indexing already in progress")
		writeError(w, http.StatusConflict, "Indexing already in progress")
	case run.Failed > 0:
		writeJSON(ctx, w, http.StatusOK, IndexResponse{Status: "completed_with_errors", Result: run, Error: err.Error()})
	default:
		logger.ErrorContext(ctx, "indexing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Indexing failed")
	}
}

// StatsHandler serves corpus statistics.
type StatsHandler struct {
	indexer CorpusIndexer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(idx CorpusIndexer) *StatsHandler {
	return &StatsHandler{indexer: idx}
}

// ServeHTTP returns passage and source counts per doc type.
//
// swagger:route GET /api/v1/corpus/stats corpusStats
//
// # Corpus statistics
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Counts per doc type
//	  schema:
//	    "$ref": "#/definitions/CorpusStats"
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	stats, err := h.indexer.Stats(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to compute corpus stats", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to compute corpus stats")
		return
	}
	writeJSON(ctx, w, http.StatusOK, stats)
}
