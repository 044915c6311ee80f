package legal

import (
	"regexp"
	"strings"
)

// Citation is one legal locator mentioned in a generated answer.
type Citation struct {
	Part    string `json:"part,omitempty"`
	Chapter string `json:"chapter,omitempty"`
	Section string `json:"section,omitempty"`
}

var (
	sectionCitation = regexp.MustCompile(`(?i)` + subsectionPrefix + `(दफा|section)\s*(` + digitClass + `+)`)
	chapterCitation = regexp.MustCompile(`(?i)(परिच्छेद|chapter)\s*[–-]?\s*(` + digitClass + `+)`)
	partCitation    = regexp.MustCompile(`(?i)(भाग|part)\s*[–-]?\s*(` + digitClass + `+)`)
)

// ExtractCitations lists the sections, chapters and parts an answer cites.
// Sections come first, then chapters, then parts. Repeats of the same
// locator are reported once.
func ExtractCitations(answer string) []Citation {
	var citations []Citation
	seen := make(map[Citation]bool)

	add := func(c Citation) {
		if seen[c] {
			return
		}
		seen[c] = true
		citations = append(citations, c)
	}

	for _, m := range sectionCitation.FindAllStringSubmatch(answer, -1) {
		if m[1] != "" {
			continue
		}
		add(Citation{Section: citationLabel(m[2], "दफा", "Section") + " " + NormalizeDigits(m[3])})
	}
	for _, m := range chapterCitation.FindAllStringSubmatch(answer, -1) {
		add(Citation{Chapter: citationLabel(m[1], "परिच्छेद", "Chapter") + " " + NormalizeDigits(m[2])})
	}
	for _, m := range partCitation.FindAllStringSubmatch(answer, -1) {
		add(Citation{Part: citationLabel(m[1], "भाग", "Part") + " " + NormalizeDigits(m[2])})
	}

	return citations
}

// citationLabel keeps the script the answer used and canonicalises case.
func citationLabel(matched, nepali, english string) string {
	if matched == nepali {
		return nepali
	}
	if strings.EqualFold(matched, english) {
		return english
	}
	return matched
}
