package rag

import (
	"context"
	"math/rand"
	"testing"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

func scored(scores ...float64) []Candidate {
	out := make([]Candidate, len(scores))
	for i, s := range scores {
		out[i] = candidate(passage("p", legal.DocTypeAct, legal.Structure{}), s)
	}
	return out
}

func TestScorer_Score(t *testing.T) {
	s := NewScorer(DefaultPolicy(), nil)

	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{
			name:   "empty",
			scores: nil,
			want:   0,
		},
		{
			name:   "two strong sources",
			scores: []float64{0.9, 0.85},
			want:   0.9*2.0/3.0 + 0.85*1.0/3.0,
		},
		{
			name:   "single source penalised",
			scores: []float64{0.9},
			want:   0.9 * 0.7,
		},
		{
			name:   "weak top penalised",
			scores: []float64{0.2, 0.1},
			want:   (0.2*2.0/3.0 + 0.1*1.0/3.0) * 0.5,
		},
		{
			name:   "weak single source gets both penalties",
			scores: []float64{0.2},
			want:   0.2 * 0.5 * 0.7,
		},
		{
			name:   "boosted scores capped at one",
			scores: []float64{1.43, 1.2},
			want:   1.0,
		},
		{
			name:   "three sources",
			scores: []float64{0.99, 0.935, 0.4},
			want:   (0.99*6 + 0.935*3 + 0.4*2) / 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(context.Background(), scored(tt.scores...))
			if !approxEqual(got, tt.want) {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScorer_ScoreBounded(t *testing.T) {
	s := NewScorer(DefaultPolicy(), nil)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		n := rng.Intn(12)
		scores := make([]float64, n)
		for j := range scores {
			// Boosted scores can exceed 1.
			scores[j] = rng.Float64() * 1.6
		}
		got := s.Score(context.Background(), scored(scores...))
		if got < 0 || got > 1 {
			t.Fatalf("Score(%v) = %v, want within [0,1]", scores, got)
		}
	}
}

func TestScorer_SaturatedScoresAreExactlyOne(t *testing.T) {
	s := NewScorer(DefaultPolicy(), nil)

	for n := 2; n <= 10; n++ {
		scores := make([]float64, n)
		for i := range scores {
			scores[i] = 1.1 + float64(i)*0.05
		}
		if got := s.Score(context.Background(), scored(scores...)); got != 1 {
			t.Errorf("Score(%v) = %v, want 1", scores, got)
		}
	}
}

func TestScorer_WeakTopHalvesConfidence(t *testing.T) {
	p := DefaultPolicy()
	penalised := NewScorer(p, nil)
	p.Penalties.WeakTop = 1
	unpenalised := NewScorer(p, nil)

	candidates := scored(0.25, 0.2, 0.1)
	got := penalised.Score(context.Background(), candidates)
	base := unpenalised.Score(context.Background(), candidates)

	if base == 0 {
		t.Fatal("base confidence is zero")
	}
	if ratio := got / base; ratio > 0.5+epsilon {
		t.Errorf("penalised/base = %v, want <= 0.5", ratio)
	}
}

func TestFilterByScore(t *testing.T) {
	candidates := []Candidate{
		candidate(passage("a", legal.DocTypeAct, legal.Structure{}), 0.9),
		candidate(passage("b", legal.DocTypeAct, legal.Structure{}), 0.1),
		candidate(passage("c", legal.DocTypeAct, legal.Structure{}), 0.3),
		candidate(passage("d", legal.DocTypeAct, legal.Structure{}), 0.29),
		candidate(passage("e", legal.DocTypeAct, legal.Structure{}), 0.5),
	}

	got := FilterByScore(candidates, 0.3)

	want := []string{"a", "c", "e"}
	if len(got) != len(want) {
		t.Fatalf("FilterByScore() returned %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].Passage.ID != id {
			t.Errorf("got[%d] = %s, want %s", i, got[i].Passage.ID, id)
		}
		if got[i].SimilarityScore < 0.3 {
			t.Errorf("got[%d] score %v below floor", i, got[i].SimilarityScore)
		}
	}

	if out := FilterByScore(nil, 0.3); len(out) != 0 {
		t.Errorf("FilterByScore(nil) = %v, want empty", out)
	}
}

func TestConfidenceLabel(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.95, ConfidenceHigh},
		{0.7, ConfidenceHigh},
		{0.69, ConfidenceMedium},
		{0.5, ConfidenceMedium},
		{0.49, ConfidenceLow},
		{0, ConfidenceLow},
	}

	for _, tt := range tests {
		if got := ConfidenceLabel(tt.confidence); got != tt.want {
			t.Errorf("ConfidenceLabel(%v) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}
