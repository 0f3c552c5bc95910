package models

import "time"

// ChatMessage is one message parsed from a chat export.
type ChatMessage struct {
	Sender    string `json:"sender"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

// ChatExport is a stored, summarized chat export.
type ChatExport struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Summary   *Summary  `json:"summary,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ExportsResponse is the payload of GET /api/exports.
type ExportsResponse struct {
	Exports []*ChatExport `json:"exports"`
}
