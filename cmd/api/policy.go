package main

import (
	"fmt"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/config"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/rag"
)

// policyFromConfig builds and validates the retrieval policy.
func policyFromConfig(c config.RetrievalConfig) (rag.Policy, error) {
	p := rag.Policy{
		TierLimits: map[legal.DocType]int{
			legal.DocTypeConstitution: c.ConstitutionLimit,
			legal.DocTypeMulukiAct:    c.MulukiActLimit,
			legal.DocTypeAct:          c.ActLimit,
			legal.DocTypeRule:         c.RuleLimit,
		},
		MinSimilarity:       c.MinSimilarity,
		ConfidenceThreshold: c.ConfidenceThreshold,
		MaxContextChars:     c.MaxContextChars,
		MinSources:          c.MinSources,
		Boosts: rag.Boosts{
			Section:   c.Boosts.Section,
			Chapter:   c.Boosts.Chapter,
			Part:      c.Boosts.Part,
			Priority1: c.Boosts.Priority1,
			Priority2: c.Boosts.Priority2,
		},
		Penalties: rag.Penalties{
			WeakTop:    c.Penalties.WeakTop,
			FewSources: c.Penalties.FewSources,
		},
		LookupConcurrency: c.LookupConcurrency,
	}
	if err := p.Validate(); err != nil {
		return rag.Policy{}, fmt.Errorf("retrieval policy: %w", err)
	}
	return p, nil
}
