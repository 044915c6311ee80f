package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/contextutil"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/rag"
)

// AskHandler handles HTTP requests for legal questions.
type AskHandler struct {
	ragEngine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(ragEngine rag.Engine) *AskHandler {
	return &AskHandler{ragEngine: ragEngine}
}

// AskRequest represents the HTTP request payload for legal questions.
//
// swagger:model AskRequest
type AskRequest struct {
	// The question, in English or Nepali
	Question string `json:"question"`

	// Answer language, "en" or "ne". Detected from the question when empty.
	Language string `json:"language,omitempty"`
}

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for legal questions.
//
// swagger:route POST /api/v1/ask askQuestion
//
// # Ask a legal question
//
// Retrieves passages tier by tier (constitution, muluki act, act, then
// rules), reranks them against the sections, chapters and parts the
// question names, and generates an answer grounded in them. The response
// carries a confidence score and, when it is low, a warning.
//
// Use the `debug=true` query parameter to include every reranked
// candidate with its scores.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Answer with citations, confidence and sources
//	  schema:
//	    "$ref": "#/definitions/AskResponse"
//	'400':
//	  description: Bad request (empty or too long question, unknown language)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: Embedding or generation service error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'503':
//	  description: Vector index or metadata store unavailable
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	debug := false
	if debugParam := r.URL.Query().Get("debug"); debugParam != "" {
		debug = strings.ToLower(debugParam) == "true" || debugParam == "1"
	}

	resp, err := h.ragEngine.Ask(ctx, rag.AskRequest{
		Question: req.Question,
		Language: req.Language,
		Debug:    debug,
	})
	if err != nil {
		handleRAGError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

// handleRAGError maps engine errors to HTTP status codes.
func handleRAGError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	var validationErr *rag.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, "invalid question", "field", validationErr.Field, "error", err)
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, rag.ErrBackendUnavailable):
		logger.ErrorContext(ctx, "retrieval backend unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Retrieval backend unavailable")
	case errors.Is(err, rag.ErrExternalService):
		logger.ErrorContext(ctx, "external service error", "error", err)
		writeError(w, http.StatusBadGateway, "External service error")
	default:
		logger.ErrorContext(ctx, "failed to answer question", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to answer question")
	}
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
