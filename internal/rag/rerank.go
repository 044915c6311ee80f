package rag

import (
	"sort"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

// Reranker adjusts candidate scores by how well a passage's structure
// matches the references in a query, and by the passage's authority.
type Reranker struct {
	boosts Boosts
}

// NewReranker creates a reranker with the given boost factors.
func NewReranker(boosts Boosts) *Reranker {
	return &Reranker{boosts: boosts}
}

// Rerank extracts references from query and reranks by them.
func (r *Reranker) Rerank(candidates []Candidate, query string) []Candidate {
	return r.RerankWithReferences(candidates, legal.ExtractReferences(query))
}

// RerankWithReferences returns a new slice sorted by descending boosted
// score. Ties keep their input order. The input is not modified.
func (r *Reranker) RerankWithReferences(candidates []Candidate, refs legal.ReferenceSet) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		boost := r.Boost(c.Passage, refs)
		c.MetadataBoost = boost
		c.SimilarityScore = c.RawScore * boost
		out[i] = c
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SimilarityScore > out[j].SimilarityScore
	})
	return out
}

// Boost returns the product of every boost rule that applies to p.
// The result is always >= 1.
func (r *Reranker) Boost(p legal.Passage, refs legal.ReferenceSet) float64 {
	boost := 1.0

	s := p.Structure
	if refs.Has(legal.KindSection, legal.LocatorNumber(legal.KindSection, s.Section)) {
		boost *= r.boosts.Section
	}
	if refs.Has(legal.KindChapter, legal.LocatorNumber(legal.KindChapter, s.Chapter)) {
		boost *= r.boosts.Chapter
	}
	if refs.Has(legal.KindPart, legal.LocatorNumber(legal.KindPart, s.Part)) {
		boost *= r.boosts.Part
	}

	switch p.Priority {
	case 1:
		boost *= r.boosts.Priority1
	case 2:
		boost *= r.boosts.Priority2
	}

	return boost
}
