package indexer

import "github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"

// Chunk represents one section-level passage of a legal text.
type Chunk struct {
	Index     int             // Chunk index within the file (starts at 0)
	Structure legal.Structure // Part and chapter carry over from earlier headings
	Text      string
}
