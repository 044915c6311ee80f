package legal

import (
	"regexp"
	"strings"
)

// Structure locates a passage inside its law. Empty fields are absent.
type Structure struct {
	Part         string `json:"part,omitempty"`
	PartTitle    string `json:"part_title,omitempty"`
	Chapter      string `json:"chapter,omitempty"`
	ChapterTitle string `json:"chapter_title,omitempty"`
	Section      string `json:"section,omitempty"`
	Subsection   string `json:"subsection,omitempty"`
}

// Locators returns the non-empty part, chapter, section and subsection
// values in hierarchy order.
func (s Structure) Locators() []string {
	locators := make([]string, 0, 4)
	for _, v := range []string{s.Part, s.Chapter, s.Section, s.Subsection} {
		if v != "" {
			locators = append(locators, v)
		}
	}
	return locators
}

// IsZero reports whether no locator or title was extracted.
func (s Structure) IsZero() bool {
	return s == Structure{}
}

const digitClass = `[0-9०-९]`

var (
	partLocator       = regexp.MustCompile(`((?:भाग|(?i:part))[ \t]*[–-]?[ \t]*` + digitClass + `+)[ \t]*(.*)`)
	chapterLocator    = regexp.MustCompile(`((?:परिच्छेद|(?i:chapter))[ \t]*[–-]?[ \t]*` + digitClass + `+)[ \t]*(.*)`)
	sectionLocator    = regexp.MustCompile(`((?:दफा|धारा|(?i:section))[ \t]*` + digitClass + `+)`)
	subsectionLocator = regexp.MustCompile(`(\(` + digitClass + `+\))`)
)

// ExtractStructure finds the first part, chapter, section and subsection
// markers in a passage. Titles are the rest of the marker's line.
func ExtractStructure(text string) Structure {
	var s Structure

	if m := partLocator.FindStringSubmatch(text); m != nil {
		s.Part = strings.TrimSpace(m[1])
		s.PartTitle = strings.TrimSpace(m[2])
	}
	if m := chapterLocator.FindStringSubmatch(text); m != nil {
		s.Chapter = strings.TrimSpace(m[1])
		s.ChapterTitle = strings.TrimSpace(m[2])
	}
	if m := sectionLocator.FindStringSubmatch(text); m != nil {
		s.Section = strings.TrimSpace(m[1])
	}
	if m := subsectionLocator.FindStringSubmatch(text); m != nil {
		s.Subsection = m[1]
	}

	return s
}

// LocatorNumber reduces a stored locator such as "दफा १७" or "भाग–3" to its
// bare ASCII numeral by removing the kind's label tokens, dashes, brackets
// and whitespace. It returns "" when nothing numeric remains.
func LocatorNumber(kind ReferenceKind, locator string) string {
	rest := strings.ToLower(locator)
	for _, label := range labelsFor(kind) {
		rest = strings.ReplaceAll(rest, strings.ToLower(label), "")
	}
	rest = strings.Trim(rest, " \t\n\r–-—().:")
	rest = NormalizeDigits(rest)
	if rest == "" {
		return ""
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return rest
}

// NormalizeDigits rewrites Devanagari digits as ASCII digits.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '०' && r <= '९' {
			return '0' + (r - '०')
		}
		return r
	}, s)
}
