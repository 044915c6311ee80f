package rag

import (
	"context"
	"math"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/contextutil"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/metrics"
)

// Confidence labels.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Scorer turns a reranked candidate list into a confidence in [0, 1].
type Scorer struct {
	minSimilarity float64
	minSources    int
	penalties     Penalties
	metrics       *metrics.Metrics
}

// NewScorer creates a scorer from the policy. A nil m records to a private
// registry.
func NewScorer(policy Policy, m *metrics.Metrics) *Scorer {
	if m == nil {
		m = metrics.New(nil)
	}
	return &Scorer{
		minSimilarity: policy.MinSimilarity,
		minSources:    policy.MinSources,
		penalties:     policy.Penalties,
		metrics:       m,
	}
}

// Score computes a rank-weighted average of the candidates' scores, with
// weight 1/rank normalised to sum to 1. Each score is clipped to [0, 1]
// before weighting. The result is then penalised when the top candidate is
// weak or when there are too few candidates. An empty list scores 0.
func (s *Scorer) Score(ctx context.Context, candidates []Candidate) float64 {
	logger := contextutil.LoggerFromContext(ctx)

	if len(candidates) == 0 {
		logger.InfoContext(ctx, "confidence scored", "candidates", 0, "confidence", 0.0)
		s.metrics.ConfidenceScore.Observe(0)
		return 0
	}

	var weighted, weightSum float64
	for i, c := range candidates {
		weight := 1 / float64(i+1)
		weighted += weight * clamp01(c.SimilarityScore)
		weightSum += weight
	}
	// Rounding can leave the mean one ulp above 1.
	confidence := clamp01(weighted / weightSum)

	weakTop := candidates[0].SimilarityScore < s.minSimilarity
	if weakTop {
		confidence *= s.penalties.WeakTop
	}
	fewSources := len(candidates) < s.minSources
	if fewSources {
		confidence *= s.penalties.FewSources
	}

	logger.InfoContext(ctx, "confidence scored",
		"candidates", len(candidates),
		"top_score", candidates[0].SimilarityScore,
		"weak_top_penalty", weakTop,
		"few_sources_penalty", fewSources,
		"confidence", confidence,
	)
	s.metrics.ConfidenceScore.Observe(confidence)

	return confidence
}

// FilterByScore keeps the candidates whose SimilarityScore is at least
// minScore, in their original order.
func FilterByScore(candidates []Candidate, minScore float64) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.SimilarityScore >= minScore {
			out = append(out, c)
		}
	}
	return out
}

// ConfidenceLabel buckets a confidence score for display.
func ConfidenceLabel(confidence float64) string {
	switch {
	case confidence >= 0.7:
		return ConfidenceHigh
	case confidence >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
