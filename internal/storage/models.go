package storage

import (
	"time"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

// SourceRecord is one ingested corpus file.
type SourceRecord struct {
	ID        string // UUID
	RelPath   string // Relative path from corpus root
	DocType   legal.DocType
	Hash      string // SHA256 hex string of file content
	IndexedAt time.Time
}

// PassageRecord is one stored passage. SourcePath is filled on reads.
type PassageRecord struct {
	ID         string // UUID (same as vector point ID)
	SourceID   string
	SourcePath string
	ChunkIndex int
	DocType    legal.DocType
	Priority   int
	Structure  legal.Structure
	Text       string
	TextHash   string // SHA256 hex of Text, unique per doc type
}

// Passage converts the record to the domain passage.
func (r *PassageRecord) Passage() legal.Passage {
	return legal.Passage{
		ID:         r.ID,
		DocType:    r.DocType,
		Priority:   r.Priority,
		SourcePath: r.SourcePath,
		Structure:  r.Structure,
		Text:       r.Text,
	}
}
