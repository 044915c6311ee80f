package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"
)

// RunResult summarises one IndexAll run.
type RunResult struct {
	Force bool `json:"force"`
	// Files is the number of corpus files visited.
	Files int `json:"files"`
	// Indexed is the number of new or changed files that were ingested.
	Indexed int `json:"indexed"`
	// Unchanged is the number of files skipped because their hash matched.
	Unchanged int `json:"unchanged"`
	// Failed is the number of files that could not be indexed.
	Failed int `json:"failed"`
	// Passages is the number of passages stored in this run.
	Passages int `json:"passages"`
	// Duplicates is the number of chunks skipped as already stored.
	Duplicates int   `json:"duplicates"`
	DurationMs int64 `json:"duration_ms"`
}

func (r *RunResult) add(res FileResult, err error) {
	r.Files++
	switch {
	case err != nil:
		r.Failed++
	case res.Unchanged:
		r.Unchanged++
	default:
		r.Indexed++
	}
	r.Passages += res.Passages
	r.Duplicates += res.Duplicates
}

// CorpusStats describes what is currently indexed.
type CorpusStats struct {
	Sources           int                   `json:"sources"`
	SourcesByDocType  map[legal.DocType]int `json:"sources_by_doc_type"`
	Passages          int                   `json:"passages"`
	PassagesByDocType map[legal.DocType]int `json:"passages_by_doc_type"`
	// LastIndexedAt is the most recent source indexing time, nil when empty.
	LastIndexedAt *time.Time `json:"last_indexed_at,omitempty"`
}

// Stats computes corpus statistics from the metadata store.
// Every known doc type is present in the maps, with zero when empty.
func (p *Pipeline) Stats(ctx context.Context) (*CorpusStats, error) {
	counts, err := p.passageRepo.CountByDocType(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count passages: %w", err)
	}
	sources, err := p.sourceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}

	stats := &CorpusStats{
		Sources:           len(sources),
		SourcesByDocType:  make(map[legal.DocType]int, len(legal.AllDocTypes)),
		PassagesByDocType: make(map[legal.DocType]int, len(legal.AllDocTypes)),
	}
	for _, dt := range legal.AllDocTypes {
		stats.SourcesByDocType[dt] = 0
		stats.PassagesByDocType[dt] = 0
	}

	for dt, n := range counts {
		stats.PassagesByDocType[dt] = n
		stats.Passages += n
	}
	for _, s := range sources {
		stats.SourcesByDocType[s.DocType]++
		if stats.LastIndexedAt == nil || s.IndexedAt.After(*stats.LastIndexedAt) {
			t := s.IndexedAt
			stats.LastIndexedAt = &t
		}
	}

	return stats, nil
}
