package rag

import (
	"math"
	"testing"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func passage(id string, dt legal.DocType, s legal.Structure) legal.Passage {
	return legal.Passage{ID: id, DocType: dt, Priority: dt.Priority(), Structure: s, Text: "text of " + id}
}

func candidate(p legal.Passage, raw float64) Candidate {
	return Candidate{Passage: p, RawScore: raw, SimilarityScore: raw, MetadataBoost: 1}
}

func TestReranker_Boost(t *testing.T) {
	r := NewReranker(DefaultPolicy().Boosts)

	tests := []struct {
		name    string
		passage legal.Passage
		query   string
		want    float64
	}{
		{
			name:    "section match",
			passage: passage("a", legal.DocTypeAct, legal.Structure{Section: "दफा 17"}),
			query:   "what does section 17 say",
			want:    1.30,
		},
		{
			name:    "section match across digit scripts",
			passage: passage("a", legal.DocTypeAct, legal.Structure{Section: "दफा १७"}),
			query:   "दफा 17 मा के छ",
			want:    1.30,
		},
		{
			name:    "section mismatch",
			passage: passage("a", legal.DocTypeAct, legal.Structure{Section: "दफा 7"}),
			query:   "section 17",
			want:    1.0,
		},
		{
			name:    "romanised subsection is not a section match",
			passage: passage("a", legal.DocTypeAct, legal.Structure{Section: "दफा २"}),
			query:   "upadafa 2 ma ke lekhiyeko cha",
			want:    1.0,
		},
		{
			name:    "spaced subsection is not a section match",
			passage: passage("a", legal.DocTypeAct, legal.Structure{Section: "Section 4"}),
			query:   "sub section 4 of the act",
			want:    1.0,
		},
		{
			name:    "chapter match with dash",
			passage: passage("a", legal.DocTypeAct, legal.Structure{Chapter: "परिच्छेद-2"}),
			query:   "chapter 2",
			want:    1.20,
		},
		{
			name:    "part match",
			passage: passage("a", legal.DocTypeAct, legal.Structure{Part: "भाग ३"}),
			query:   "part 3",
			want:    1.15,
		},
		{
			name:    "constitution priority only",
			passage: passage("a", legal.DocTypeConstitution, legal.Structure{}),
			query:   "fundamental rights",
			want:    1.10,
		},
		{
			name:    "muluki priority only",
			passage: passage("a", legal.DocTypeMulukiAct, legal.Structure{}),
			query:   "inheritance",
			want:    1.05,
		},
		{
			name:    "rule gets nothing",
			passage: passage("a", legal.DocTypeRule, legal.Structure{Section: "नियम 4"}),
			query:   "procedure",
			want:    1.0,
		},
		{
			name:    "boosts compound",
			passage: passage("a", legal.DocTypeConstitution, legal.Structure{Part: "भाग 3", Chapter: "परिच्छेद 1", Section: "धारा 16"}),
			query:   "भाग 3 परिच्छेद 1 दफा 16",
			want:    1.30 * 1.20 * 1.15 * 1.10,
		},
		{
			name:    "blank locator never matches",
			passage: passage("a", legal.DocTypeAct, legal.Structure{}),
			query:   "section 5 chapter 2 part 1",
			want:    1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Boost(tt.passage, legal.ExtractReferences(tt.query))
			if !approxEqual(got, tt.want) {
				t.Errorf("Boost() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReranker_Rerank(t *testing.T) {
	r := NewReranker(DefaultPolicy().Boosts)

	input := []Candidate{
		candidate(passage("s9", legal.DocTypeAct, legal.Structure{Section: "दफा 9"}), 0.70),
		candidate(passage("s5", legal.DocTypeAct, legal.Structure{Section: "दफा 5"}), 0.60),
		candidate(passage("plain", legal.DocTypeAct, legal.Structure{}), 0.65),
	}
	before := append([]Candidate(nil), input...)

	out := r.Rerank(input, "दफा 5 के हो?")

	wantOrder := []string{"s5", "s9", "plain"}
	if len(out) != len(wantOrder) {
		t.Fatalf("Rerank() returned %d candidates, want %d", len(out), len(wantOrder))
	}
	for i, id := range wantOrder {
		if out[i].Passage.ID != id {
			t.Errorf("out[%d] = %s, want %s", i, out[i].Passage.ID, id)
		}
	}
	if !approxEqual(out[0].SimilarityScore, 0.60*1.30) || !approxEqual(out[0].MetadataBoost, 1.30) {
		t.Errorf("boosted candidate = %+v", out[0])
	}

	for i := range input {
		if input[i] != before[i] {
			t.Errorf("input[%d] was modified: %+v", i, input[i])
		}
	}
}

func TestReranker_Invariants(t *testing.T) {
	r := NewReranker(DefaultPolicy().Boosts)

	input := []Candidate{
		candidate(passage("c1", legal.DocTypeConstitution, legal.Structure{Section: "धारा 16"}), 0.5),
		candidate(passage("m1", legal.DocTypeMulukiAct, legal.Structure{Chapter: "परिच्छेद 2"}), 0.8),
		candidate(passage("a1", legal.DocTypeAct, legal.Structure{Part: "भाग 1"}), 0.3),
		candidate(passage("r1", legal.DocTypeRule, legal.Structure{}), 0.9),
		candidate(passage("r2", legal.DocTypeRule, legal.Structure{}), 0.0),
	}

	out := r.Rerank(input, "section 16 chapter 2 part 1")

	for i, c := range out {
		if c.SimilarityScore < c.RawScore {
			t.Errorf("%s: similarity %v < raw %v", c.Passage.ID, c.SimilarityScore, c.RawScore)
		}
		if c.MetadataBoost < 1 {
			t.Errorf("%s: boost %v < 1", c.Passage.ID, c.MetadataBoost)
		}
		if !approxEqual(c.SimilarityScore, c.RawScore*c.MetadataBoost) {
			t.Errorf("%s: similarity %v != raw*boost %v", c.Passage.ID, c.SimilarityScore, c.RawScore*c.MetadataBoost)
		}
		if i > 0 && out[i-1].SimilarityScore < c.SimilarityScore {
			t.Errorf("not sorted at %d: %v < %v", i, out[i-1].SimilarityScore, c.SimilarityScore)
		}
	}
}

func TestReranker_StableOnTies(t *testing.T) {
	r := NewReranker(DefaultPolicy().Boosts)

	input := []Candidate{
		candidate(passage("first", legal.DocTypeAct, legal.Structure{}), 0.5),
		candidate(passage("second", legal.DocTypeAct, legal.Structure{}), 0.5),
		candidate(passage("third", legal.DocTypeAct, legal.Structure{}), 0.5),
	}

	out := r.Rerank(input, "anything")
	for i, want := range []string{"first", "second", "third"} {
		if out[i].Passage.ID != want {
			t.Errorf("out[%d] = %s, want %s", i, out[i].Passage.ID, want)
		}
	}
}

func TestReranker_Empty(t *testing.T) {
	r := NewReranker(DefaultPolicy().Boosts)
	if out := r.Rerank(nil, "section 1"); len(out) != 0 {
		t.Errorf("Rerank(nil) = %v, want empty", out)
	}
}
