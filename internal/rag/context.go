package rag

import (
	"strings"
	"unicode/utf8"
)

// BuildContext packs candidate blocks in order until the next block would
// push the total past maxChars. Packing stops at the first block that does
// not fit. Lengths are counted in characters, not bytes.
func BuildContext(candidates []Candidate, maxChars int) string {
	var b strings.Builder
	total := 0

	for _, c := range candidates {
		block := contextBlock(c)
		n := utf8.RuneCountInString(block)
		if total+n > maxChars {
			break
		}
		b.WriteString(block)
		total += n
	}

	return b.String()
}

// contextBlock renders one passage with its law type and locator line.
// Blank locators are left out, as is the line when all are blank.
func contextBlock(c Candidate) string {
	var b strings.Builder
	b.WriteString("Law Type: ")
	b.WriteString(string(c.Passage.DocType))
	b.WriteString("\n")
	if locators := c.Passage.Structure.Locators(); len(locators) > 0 {
		b.WriteString(strings.Join(locators, " "))
		b.WriteString("\n")
	}
	b.WriteString(c.Passage.Text)
	b.WriteString("\n\n")
	return b.String()
}
