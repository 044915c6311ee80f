package legal

import (
	"regexp"
	"strings"
)

// ReferenceKind names one level of the legal hierarchy a query can point at.
type ReferenceKind string

const (
	KindSection    ReferenceKind = "sections"
	KindChapter    ReferenceKind = "chapters"
	KindPart       ReferenceKind = "parts"
	KindSubsection ReferenceKind = "subsections"
)

// Label spellings per kind: Nepali, Hindi-style, English and romanised.
// Longer spellings come first so that label stripping never leaves a tail.
var (
	sectionLabels    = []string{"section", "sec.", "दफा", "धारा", "dapha", "dafa"}
	chapterLabels    = []string{"parichchhed", "parichhed", "pariched", "परिच्छेद", "chapter"}
	partLabels       = []string{"भाग", "part", "bhag"}
	subsectionLabels = []string{"sub-section", "subsection", "उपदफा", "upadafa"}
)

func labelsFor(kind ReferenceKind) []string {
	switch kind {
	case KindSection:
		return sectionLabels
	case KindChapter:
		return chapterLabels
	case KindPart:
		return partLabels
	case KindSubsection:
		return subsectionLabels
	}
	return nil
}

func alternation(labels []string) string {
	quoted := make([]string, len(labels))
	for i, l := range labels {
		quoted[i] = regexp.QuoteMeta(l)
	}
	return strings.Join(quoted, "|")
}

// subsectionPrefix turns a section label into a subsection label: "उपदफा",
// "upadafa", "subsection", "sub-section" and "sub section".
const subsectionPrefix = `(उप|upa|sub[\s-]*)?`

var (
	sectionRef    = regexp.MustCompile(`(?i)` + subsectionPrefix + `(?:` + alternation(sectionLabels) + `)\s*(` + digitClass + `+)`)
	chapterRef    = regexp.MustCompile(`(?i)(?:` + alternation(chapterLabels) + `)\s*[–-]?\s*(` + digitClass + `+)`)
	partRef       = regexp.MustCompile(`(?i)(?:` + alternation(partLabels) + `)\s*[–-]?\s*(` + digitClass + `+)`)
	subsectionRef = regexp.MustCompile(`(?i)(?:(?:` + alternation(subsectionLabels) + `)\s*)?\(\s*(` + digitClass + `+)\s*\)`)
	bareSubRef    = regexp.MustCompile(`(?i)(?:` + alternation(subsectionLabels) + `)\s*(` + digitClass + `+)`)
)

// ReferenceSet holds the numerals a query mentions, per kind, de-duplicated
// in first-seen order. Numerals are ASCII.
type ReferenceSet struct {
	Sections    []string `json:"sections"`
	Chapters    []string `json:"chapters"`
	Parts       []string `json:"parts"`
	Subsections []string `json:"subsections"`
}

// Has reports whether num was referenced for kind.
func (s ReferenceSet) Has(kind ReferenceKind, num string) bool {
	if num == "" {
		return false
	}
	for _, v := range s.values(kind) {
		if v == num {
			return true
		}
	}
	return false
}

// Empty reports whether the query referenced nothing.
func (s ReferenceSet) Empty() bool {
	return len(s.Sections) == 0 && len(s.Chapters) == 0 && len(s.Parts) == 0 && len(s.Subsections) == 0
}

func (s ReferenceSet) values(kind ReferenceKind) []string {
	switch kind {
	case KindSection:
		return s.Sections
	case KindChapter:
		return s.Chapters
	case KindPart:
		return s.Parts
	case KindSubsection:
		return s.Subsections
	}
	return nil
}

// ExtractReferences scans free text for section, chapter, part and
// subsection references in Nepali, English or romanised spelling.
func ExtractReferences(text string) ReferenceSet {
	var set ReferenceSet

	for _, m := range sectionRef.FindAllStringSubmatch(text, -1) {
		num := NormalizeDigits(m[2])
		if m[1] != "" {
			set.Subsections = appendUnique(set.Subsections, num)
			continue
		}
		set.Sections = appendUnique(set.Sections, num)
	}
	for _, m := range chapterRef.FindAllStringSubmatch(text, -1) {
		set.Chapters = appendUnique(set.Chapters, NormalizeDigits(m[1]))
	}
	for _, m := range partRef.FindAllStringSubmatch(text, -1) {
		set.Parts = appendUnique(set.Parts, NormalizeDigits(m[1]))
	}
	for _, m := range subsectionRef.FindAllStringSubmatch(text, -1) {
		set.Subsections = appendUnique(set.Subsections, NormalizeDigits(m[1]))
	}
	for _, m := range bareSubRef.FindAllStringSubmatch(text, -1) {
		set.Subsections = appendUnique(set.Subsections, NormalizeDigits(m[1]))
	}

	return set
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
