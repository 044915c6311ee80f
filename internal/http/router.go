package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/handlers"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/metrics"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/rag"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	RAGEngine      rag.Engine
	Indexer        handlers.CorpusIndexer
	Collections    vectorstore.CollectionManager
	DB             handlers.Pinger
	CollectionName string
	Metrics        *metrics.Metrics
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(Metrics(deps.Metrics))
	r.Use(CORS)

	indexHandler := handlers.NewIndexHandler(deps.Indexer)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Collections, deps.DB, deps.CollectionName))

		r.Route("/v1", func(r chi.Router) {
			r.Method(http.MethodPost, "/ask", handlers.NewAskHandler(deps.RAGEngine))
			r.Method(http.MethodPost, "/index", indexHandler)
			r.Method(http.MethodGet, "/corpus/stats", handlers.NewStatsHandler(deps.Indexer))
		})
	})

	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	return r
}
