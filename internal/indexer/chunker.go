package indexer

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

const (
	minChunkSize = 100  // Chunks of this many runes or fewer are dropped
	maxChunkSize = 2000 // Max runes per chunk before splitting at paragraph boundaries
)

var (
	sectionStart = regexp.MustCompile(`^\s*(?:दफा|धारा|(?i:section))\s*[0-9०-९]+`)
	partStart    = regexp.MustCompile(`^\s*(?:भाग|(?i:part))\s*[–-]?\s*[0-9०-९]+`)
	chapterStart = regexp.MustCompile(`^\s*(?:परिच्छेद|(?i:chapter))\s*[–-]?\s*[0-9०-९]+`)
)

// SectionChunker splits legal texts into one chunk per section.
type SectionChunker struct {
	parser goldmark.Markdown
}

// NewSectionChunker creates a new section chunker.
func NewSectionChunker() *SectionChunker {
	return &SectionChunker{
		parser: goldmark.New(
			goldmark.WithExtensions(extension.Table),
		),
	}
}

// Chunk splits content at every line that opens a section, part or
// chapter. Markdown files are flattened to plain text first. Part and
// chapter headings carry into the structure of the sections that follow
// them. Chunks of minChunkSize runes or fewer are dropped.
func (c *SectionChunker) Chunk(content []byte, filename string) []Chunk {
	body := string(content)
	if strings.EqualFold(filepath.Ext(filename), ".md") {
		body = c.flattenMarkdown(content)
	}
	body = strings.ReplaceAll(body, "\r\n", "\n")

	var (
		chunks  []Chunk
		current []string
		running legal.Structure
		start   legal.Structure
	)

	flush := func() {
		chunkText := strings.TrimSpace(strings.Join(current, "\n"))
		current = current[:0]
		if utf8.RuneCountInString(chunkText) <= minChunkSize {
			return
		}
		s := legal.ExtractStructure(chunkText)
		if start.Part != "" {
			s.Part, s.PartTitle = start.Part, start.PartTitle
		}
		if start.Chapter != "" {
			s.Chapter, s.ChapterTitle = start.Chapter, start.ChapterTitle
		}
		for _, part := range splitOversized(chunkText) {
			chunks = append(chunks, Chunk{Index: len(chunks), Structure: s, Text: part})
		}
	}

	for _, line := range strings.Split(body, "\n") {
		switch {
		case partStart.MatchString(line):
			flush()
			hs := legal.ExtractStructure(line)
			running.Part, running.PartTitle = hs.Part, hs.PartTitle
			// A new part resets the chapter.
			running.Chapter, running.ChapterTitle = "", ""
			start = running
		case chapterStart.MatchString(line):
			flush()
			hs := legal.ExtractStructure(line)
			running.Chapter, running.ChapterTitle = hs.Chapter, hs.ChapterTitle
			start = running
		case sectionStart.MatchString(line):
			flush()
			start = running
		}
		current = append(current, line)
	}
	flush()

	return chunks
}

// flattenMarkdown renders the markdown AST as plain text with one line per
// block, so that section markers land at line starts.
func (c *SectionChunker) flattenMarkdown(content []byte) string {
	doc := c.parser.Parser().Parse(text.NewReader(content))

	var b strings.Builder
	newline := func() {
		if s := b.String(); len(s) > 0 && !strings.HasSuffix(s, "\n") {
			b.WriteByte('\n')
		}
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				newline()
			}
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				b.Write(line.Value(content))
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return b.String()
}

// splitOversized splits text longer than maxChunkSize runes, preferring
// paragraph, then line, then sentence boundaries.
func splitOversized(s string) []string {
	runes := []rune(s)
	if len(runes) <= maxChunkSize {
		return []string{s}
	}

	var parts []string
	for start := 0; start < len(runes); {
		end := start + maxChunkSize
		if end >= len(runes) {
			parts = append(parts, strings.TrimSpace(string(runes[start:])))
			break
		}

		window := runes[start:end]
		cut := end
		if i := lastIndex(window, "\n\n"); i > 0 {
			cut = start + i + 2
		} else if i := lastIndex(window, "\n"); i > 0 {
			cut = start + i + 1
		} else if i := lastIndex(window, "। "); i > 0 {
			cut = start + i + 2
		} else if i := lastIndex(window, ". "); i > 0 {
			cut = start + i + 2
		}

		parts = append(parts, strings.TrimSpace(string(runes[start:cut])))
		start = cut
	}
	return parts
}

// lastIndex is strings.LastIndex measured in runes.
func lastIndex(window []rune, sep string) int {
	i := strings.LastIndex(string(window), sep)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(string(window)[:i])
}
