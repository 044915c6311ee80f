package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/rag Generator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/rag Engine

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/contextutil"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/llm"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/metrics"
)

const (
	maxQuestionChars = 2000
	previewChars     = 200
)

// Generator produces an answer from chat messages.
type Generator interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Engine provides RAG (Retrieval-Augmented Generation) functionality.
type Engine interface {
	// Ask answers a legal question from the indexed laws.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	retriever *Retriever
	reranker  *Reranker
	scorer    *Scorer
	generator Generator
	policy    Policy
	params    llm.ChatParams
	metrics   *metrics.Metrics
}

// NewEngine creates a new RAG engine. A nil m records to a private registry.
func NewEngine(
	retriever *Retriever,
	generator Generator,
	policy Policy,
	params llm.ChatParams,
	m *metrics.Metrics,
) Engine {
	if m == nil {
		m = metrics.New(nil)
	}
	return &ragEngine{
		retriever: retriever,
		reranker:  NewReranker(policy.Boosts),
		scorer:    NewScorer(policy, m),
		generator: generator,
		policy:    policy,
		params:    params,
		metrics:   m,
	}
}

// Ask runs retrieval, reranking, scoring, filtering and packing, then
// generates an answer. The generator is called even when no evidence
// was found; the response then carries confidence 0 and a warning.
func (e *ragEngine) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return AskResponse{}, &ValidationError{Field: "question", Message: "question is required"}
	}
	if utf8.RuneCountInString(question) > maxQuestionChars {
		return AskResponse{}, &ValidationError{
			Field:   "question",
			Message: fmt.Sprintf("question must be at most %d characters", maxQuestionChars),
		}
	}
	lang, ok := legal.ParseLanguage(req.Language)
	if !ok {
		return AskResponse{}, &ValidationError{Field: "language", Message: "language must be en or ne"}
	}
	if lang == "" {
		lang = legal.DetectLanguage(question)
	}

	logger.InfoContext(ctx, "legal query started",
		"question_length", utf8.RuneCountInString(question),
		"language", lang,
		"debug", req.Debug,
	)

	retrievalStart := time.Now()
	retrieval, err := e.retriever.Retrieve(ctx, question)
	if err != nil {
		return AskResponse{}, err
	}
	retrievalMs := time.Since(retrievalStart).Milliseconds()

	refs := legal.ExtractReferences(question)
	reranked := e.reranker.RerankWithReferences(retrieval.Candidates, refs)
	confidence := e.scorer.Score(ctx, reranked)
	filtered := FilterByScore(reranked, e.policy.MinSimilarity)
	contextText := BuildContext(filtered, e.policy.MaxContextChars)

	logger.InfoContext(ctx, "context built",
		"references", refs,
		"reranked", len(reranked),
		"filtered", len(filtered),
		"context_chars", utf8.RuneCountInString(contextText),
	)
	logger.DebugContext(ctx, "full context being sent to LLM", "context", contextText)

	generationStart := time.Now()
	answer, err := e.generator.ChatWithMessages(ctx, buildMessages(lang, contextText, question), e.params)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get LLM response", "error", err)
		return AskResponse{}, fmt.Errorf("%w: generate answer: %w", ErrExternalService, err)
	}
	generationMs := time.Since(generationStart).Milliseconds()
	e.metrics.StageDuration.WithLabelValues("generate").Observe(time.Since(generationStart).Seconds())

	resp := AskResponse{
		Answer:          answer,
		Citations:       legal.ExtractCitations(answer),
		Confidence:      confidence,
		ConfidenceLabel: ConfidenceLabel(confidence),
		Language:        lang,
		Sources:         sourceDocuments(filtered),
	}
	if resp.Citations == nil {
		resp.Citations = []legal.Citation{}
	}
	if confidence < e.policy.ConfidenceThreshold {
		resp.Warning = lowConfidenceWarning(lang)
		e.metrics.LowConfidenceTotal.WithLabelValues(lang).Inc()
	}

	if req.Debug {
		resp.Debug = &DebugInfo{
			SelectedTier: retrieval.SelectedTier,
			References:   refs,
			Candidates:   retrievedPassages(reranked, e.policy.MinSimilarity),
			ContextChars: utf8.RuneCountInString(contextText),
			RetrievalMs:  retrievalMs,
			GenerationMs: generationMs,
		}
	}

	logger.InfoContext(ctx, "legal query completed",
		"selected_tier", retrieval.SelectedTier,
		"sources", len(resp.Sources),
		"citations", len(resp.Citations),
		"confidence", confidence,
		"answer_length", len(answer),
	)

	return resp, nil
}

func sourceDocuments(candidates []Candidate) []SourceDocument {
	sources := make([]SourceDocument, 0, len(candidates))
	for _, c := range candidates {
		sources = append(sources, SourceDocument{
			ID:              c.Passage.ID,
			DocType:         c.Passage.DocType,
			SourcePath:      c.Passage.SourcePath,
			TextPreview:     preview(c.Passage.Text, previewChars),
			SimilarityScore: c.SimilarityScore,
			MetadataBoost:   c.MetadataBoost,
			Structure:       c.Passage.Structure,
		})
	}
	return sources
}

func retrievedPassages(candidates []Candidate, floor float64) []RetrievedPassage {
	out := make([]RetrievedPassage, 0, len(candidates))
	for i, c := range candidates {
		out = append(out, RetrievedPassage{
			ID:         c.Passage.ID,
			DocType:    c.Passage.DocType,
			Section:    c.Passage.Structure.Section,
			ScoreRaw:   c.RawScore,
			Boost:      c.MetadataBoost,
			ScoreFinal: c.SimilarityScore,
			Rank:       i + 1,
			Filtered:   c.SimilarityScore < floor,
		})
	}
	return out
}

// preview returns the first n characters of s.
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
