package legal

import (
	"reflect"
	"testing"
)

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   []Citation
	}{
		{
			name:   "nepali answer",
			answer: "संविधानको भाग 3 को दफा 17 अनुसार ... दफा 17 ले स्पष्ट गर्छ।",
			want: []Citation{
				{Section: "दफा 17"},
				{Part: "भाग 3"},
			},
		},
		{
			name:   "english answer",
			answer: "Under section 5 of Chapter २, the employer must...",
			want: []Citation{
				{Section: "Section 5"},
				{Chapter: "Chapter 2"},
			},
		},
		{
			name:   "subsections are not cited as sections",
			answer: "See subsection 3 of the Act and उपदफा (2) of दफा 9.",
			want:   []Citation{{Section: "दफा 9"}},
		},
		{
			name:   "no citations",
			answer: "I could not find a relevant provision.",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCitations(tt.answer)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractCitations() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
