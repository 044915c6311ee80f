package legal

// Passage is an ingested chunk of a legal text. Passages are never updated
// after ingestion; re-indexing a file replaces its passages.
type Passage struct {
	ID         string    `json:"id"`
	DocType    DocType   `json:"doc_type"`
	Priority   int       `json:"priority"`
	SourcePath string    `json:"source_path"`
	Structure  Structure `json:"structure"`
	Text       string    `json:"text"`
}
