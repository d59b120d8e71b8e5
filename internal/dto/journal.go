package dto

// GenerateJournalResponse returns one generation run projected into the
// requested target system's column layout.
type GenerateJournalResponse struct {
	Target     string           `json:"target"`
	BatchCount int              `json:"batch_count"`
	LineCount  int              `json:"line_count"`
	Rows       []map[string]any `json:"rows"`
}

// ConflictResponse is the 409 payload of a stale optimistic save.
type ConflictResponse struct {
	Error         string `json:"error"`
	ClientVersion int    `json:"client_version"`
	ServerVersion int    `json:"server_version"`
}
