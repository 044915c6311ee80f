package rag

import (
	"fmt"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

// Boosts are the multiplicative reranking factors. All must be >= 1.
type Boosts struct {
	Section   float64
	Chapter   float64
	Part      float64
	Priority1 float64
	Priority2 float64
}

// Penalties are the multiplicative confidence penalties, each in (0, 1].
type Penalties struct {
	// WeakTop applies when the top candidate scores below MinSimilarity.
	WeakTop float64
	// FewSources applies when fewer than MinSources candidates exist.
	FewSources float64
}

// Policy holds the retrieval, scoring and packing knobs.
type Policy struct {
	TierLimits          map[legal.DocType]int
	MinSimilarity       float64
	ConfidenceThreshold float64
	MaxContextChars     int
	MinSources          int
	Boosts              Boosts
	Penalties           Penalties
	// LookupConcurrency bounds parallel metadata lookups per tier.
	LookupConcurrency int
}

// DefaultPolicy returns the production defaults.
func DefaultPolicy() Policy {
	return Policy{
		TierLimits: map[legal.DocType]int{
			legal.DocTypeConstitution: 3,
			legal.DocTypeMulukiAct:    3,
			legal.DocTypeAct:          3,
			legal.DocTypeRule:         5,
		},
		MinSimilarity:       0.3,
		ConfidenceThreshold: 0.5,
		MaxContextChars:     9000,
		MinSources:          2,
		Boosts: Boosts{
			Section:   1.30,
			Chapter:   1.20,
			Part:      1.15,
			Priority1: 1.10,
			Priority2: 1.05,
		},
		Penalties: Penalties{
			WeakTop:    0.5,
			FewSources: 0.7,
		},
		LookupConcurrency: 8,
	}
}

// Limit returns the configured result count for a tier.
func (p Policy) Limit(docType legal.DocType) int {
	return p.TierLimits[docType]
}

// Validate checks the policy for values the pipeline cannot honour.
func (p Policy) Validate() error {
	for _, dt := range legal.AllDocTypes {
		if p.TierLimits[dt] <= 0 {
			return fmt.Errorf("tier limit for %s must be positive", dt)
		}
	}
	if p.MinSimilarity < 0 || p.MinSimilarity > 1 {
		return fmt.Errorf("min similarity must be in [0,1], got %v", p.MinSimilarity)
	}
	if p.ConfidenceThreshold < 0 || p.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be in [0,1], got %v", p.ConfidenceThreshold)
	}
	if p.MaxContextChars <= 0 {
		return fmt.Errorf("max context chars must be positive")
	}
	if p.MinSources < 0 {
		return fmt.Errorf("min sources must not be negative")
	}
	for name, b := range map[string]float64{
		"section":    p.Boosts.Section,
		"chapter":    p.Boosts.Chapter,
		"part":       p.Boosts.Part,
		"priority 1": p.Boosts.Priority1,
		"priority 2": p.Boosts.Priority2,
	} {
		if b < 1 {
			return fmt.Errorf("%s boost must be >= 1, got %v", name, b)
		}
	}
	for name, f := range map[string]float64{
		"weak top":    p.Penalties.WeakTop,
		"few sources": p.Penalties.FewSources,
	} {
		if f <= 0 || f > 1 {
			return fmt.Errorf("%s penalty must be in (0,1], got %v", name, f)
		}
	}
	if p.LookupConcurrency <= 0 {
		return fmt.Errorf("lookup concurrency must be positive")
	}
	return nil
}
