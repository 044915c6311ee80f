package rag

import "github.com/sanskar800/Nepali-Legal-Assistant-RAG-System-for-Nepal-s-Laws/internal/legal"

// Candidate is a passage scored for one query.
// After reranking SimilarityScore == RawScore * MetadataBoost.
type Candidate struct {
	Passage         legal.Passage
	RawScore        float64
	SimilarityScore float64
	MetadataBoost   float64
}

// AskRequest represents a legal question.
type AskRequest struct {
	// Question is the user's question, in English or Nepali.
	Question string `json:"question"`
	// Language forces the answer language ("en" or "ne"). Detected when empty.
	Language string `json:"language,omitempty"`
	// Debug enables debug mode, returning detailed retrieval information.
	Debug bool `json:"debug,omitempty"`
}

// SourceDocument is a passage that was handed to the generator.
type SourceDocument struct {
	ID              string          `json:"id"`
	DocType         legal.DocType   `json:"doc_type"`
	SourcePath      string          `json:"source_path"`
	TextPreview     string          `json:"text_preview"`
	SimilarityScore float64         `json:"similarity_score"`
	MetadataBoost   float64         `json:"metadata_boost"`
	Structure       legal.Structure `json:"structure"`
}

// AskResponse represents the answer to a legal question.
type AskResponse struct {
	Answer          string           `json:"answer"`
	Citations       []legal.Citation `json:"citations"`
	Confidence      float64          `json:"confidence"`
	ConfidenceLabel string           `json:"confidence_label"`
	Language        string           `json:"language"`
	Sources         []SourceDocument `json:"sources"`
	// Warning is set when confidence is below the configured threshold.
	Warning string     `json:"warning,omitempty"`
	Debug   *DebugInfo `json:"debug,omitempty"`
}

// DebugInfo contains detailed retrieval information for debugging and evaluation.
type DebugInfo struct {
	// SelectedTier is the ordered tier that satisfied retrieval, empty if none did.
	SelectedTier legal.DocType      `json:"selected_tier"`
	References   legal.ReferenceSet `json:"references"`
	// Candidates are all reranked candidates, including filtered ones.
	Candidates   []RetrievedPassage `json:"candidates"`
	ContextChars int                `json:"context_chars"`
	RetrievalMs  int64              `json:"retrieval_ms"`
	GenerationMs int64              `json:"generation_ms"`
}

// RetrievedPassage represents a reranked candidate with scoring information.
type RetrievedPassage struct {
	ID         string        `json:"id"`
	DocType    legal.DocType `json:"doc_type"`
	Section    string        `json:"section,omitempty"`
	ScoreRaw   float64       `json:"score_raw"`
	Boost      float64       `json:"boost"`
	ScoreFinal float64       `json:"score_final"`
	// Rank is 1-based, after reranking.
	Rank int `json:"rank"`
	// Filtered is true when the candidate fell below the similarity floor.
	Filtered bool `json:"filtered"`
}
