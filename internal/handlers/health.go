package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/contextutil"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/vectorstore"
)

// Pinger checks a database connection. *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	collections        vectorstore.CollectionManager
	db                 Pinger
	collectionName     string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(collections vectorstore.CollectionManager, db Pinger, collectionName string) *HealthHandler {
	return &HealthHandler{
		collections:        collections,
		db:                 db,
		collectionName:     collectionName,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// Number of points in the vector collection, when known
	IndexedPoints int `json:"indexed_points"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// swagger:route GET /api/health healthCheck
//
// # Health check endpoint
//
// Returns the health status of the vector index and the metadata store.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: System is healthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
//	'503':
//	  description: System is unhealthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    make(map[string]string),
	}

	if points, ok := h.checkVectorStore(checkCtx, logger); ok {
		response.Checks["vector_store"] = "ok"
		response.IndexedPoints = points
	} else {
		response.Checks["vector_store"] = "error"
		response.Issues = append(response.Issues, "vector_store_unavailable")
	}

	if err := h.db.PingContext(checkCtx); err != nil {
		logger.WarnContext(ctx, "metadata store health check failed", "error", err)
		response.Checks["metadata_store"] = "error"
		response.Issues = append(response.Issues, "metadata_store_unavailable")
	} else {
		response.Checks["metadata_store"] = "ok"
	}

	httpStatus := http.StatusOK
	if len(response.Issues) > 0 {
		response.Status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(ctx, w, httpStatus, response)
}

// checkVectorStore checks that the collection exists and returns its size.
func (h *HealthHandler) checkVectorStore(ctx context.Context, logger *slog.Logger) (int, bool) {
	exists, err := h.collections.CollectionExists(ctx, h.collectionName)
	if err != nil {
		logger.WarnContext(ctx, "vector store health check failed", "error", err)
		return 0, false
	}
	if !exists {
		logger.WarnContext(ctx, "vector store collection does not exist", "collection", h.collectionName)
		return 0, false
	}

	points, err := h.collections.PointCount(ctx, h.collectionName)
	if err != nil {
		logger.WarnContext(ctx, "failed to count vector points", "error", err)
		return 0, false
	}
	return points, true
}
