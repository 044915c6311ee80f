package rag

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

func withText(c Candidate, text string) Candidate {
	c.Passage.Text = text
	return c
}

func TestBuildContext_BlockFormat(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		want      string
	}{
		{
			name: "all locators",
			candidate: withText(candidate(passage("a", legal.DocTypeConstitution, legal.Structure{
				Part: "भाग 3", Chapter: "परिच्छेद 1", Section: "धारा 16", Subsection: "(1)",
			}), 0.9), "सम्मानपूर्वक बाँच्न पाउने हक"),
			want: "Law Type: constitution\nभाग 3 परिच्छेद 1 धारा 16 (1)\nसम्मानपूर्वक बाँच्न पाउने हक\n\n",
		},
		{
			name: "blank locators skipped",
			candidate: withText(candidate(passage("a", legal.DocTypeAct, legal.Structure{
				Section: "दफा 5",
			}), 0.9), "body"),
			want: "Law Type: act\nदफा 5\nbody\n\n",
		},
		{
			name:      "no locators omits the line",
			candidate: withText(candidate(passage("a", legal.DocTypeRule, legal.Structure{}), 0.9), "body"),
			want:      "Law Type: rule\nbody\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildContext([]Candidate{tt.candidate}, 9000); got != tt.want {
				t.Errorf("BuildContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildContext_Budget(t *testing.T) {
	candidates := []Candidate{
		withText(candidate(passage("a", legal.DocTypeAct, legal.Structure{Section: "दफा 1"}), 0.9), strings.Repeat("क", 40)),
		withText(candidate(passage("b", legal.DocTypeAct, legal.Structure{Section: "दफा 2"}), 0.8), strings.Repeat("ख", 40)),
		withText(candidate(passage("c", legal.DocTypeAct, legal.Structure{}), 0.7), strings.Repeat("ग", 40)),
	}

	for maxChars := 0; maxChars <= 300; maxChars += 7 {
		got := BuildContext(candidates, maxChars)
		if n := utf8.RuneCountInString(got); n > maxChars {
			t.Fatalf("BuildContext(max=%d) length %d exceeds budget", maxChars, n)
		}
	}

	first := contextBlock(candidates[0])
	firstLen := utf8.RuneCountInString(first)
	if got := BuildContext(candidates, firstLen); got != first {
		t.Errorf("BuildContext(max=%d) = %q, want first block only", firstLen, got)
	}
	if got := BuildContext(candidates, firstLen-1); got != "" {
		t.Errorf("BuildContext(max=%d) = %q, want empty", firstLen-1, got)
	}
}

func TestBuildContext_StopsAtFirstOverflow(t *testing.T) {
	small := withText(candidate(passage("a", legal.DocTypeAct, legal.Structure{}), 0.9), "short")
	large := withText(candidate(passage("b", legal.DocTypeAct, legal.Structure{}), 0.8), strings.Repeat("x", 500))
	tiny := withText(candidate(passage("c", legal.DocTypeAct, legal.Structure{}), 0.7), "y")

	got := BuildContext([]Candidate{small, large, tiny}, 100)

	if got != contextBlock(small) {
		t.Errorf("BuildContext() = %q, want only the first block", got)
	}
}

func TestBuildContext_CountsCharacters(t *testing.T) {
	// 30 Devanagari runes are 90 bytes.
	c := withText(candidate(passage("a", legal.DocTypeAct, legal.Structure{}), 0.9), strings.Repeat("न", 30))
	block := contextBlock(c)
	runes := utf8.RuneCountInString(block)
	if len(block) <= runes {
		t.Fatalf("test block is not multi-byte")
	}

	if got := BuildContext([]Candidate{c}, runes); got != block {
		t.Errorf("BuildContext(max=%d runes) dropped a block that fits", runes)
	}
}

func TestBuildContext_Empty(t *testing.T) {
	if got := BuildContext(nil, 9000); got != "" {
		t.Errorf("BuildContext(nil) = %q, want empty", got)
	}
}
