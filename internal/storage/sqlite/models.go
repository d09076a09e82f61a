package sqlite

import (
	"time"

	"github.com/qikCode/marithon-project/internal/extraction"
)

// Document processing statuses.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
	StatusFailed     = "failed"
)

// DocumentRecord represents an uploaded statement-of-facts file
type DocumentRecord struct {
	ID          int64      `json:"id"`
	Filename    string     `json:"filename"`
	StoredPath  string     `json:"-"`
	SizeBytes   int64      `json:"size_bytes"`
	SHA256      string     `json:"sha256"`
	Status      string     `json:"status"` // "uploaded", "processing", "processed", "failed"
	Error       string     `json:"error,omitempty"`
	UploadedAt  time.Time  `json:"uploaded_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// EventRecord represents a persisted extracted event
type EventRecord struct {
	ID         int64 `json:"id"`
	DocumentID int64 `json:"document_id"`
	extraction.Event
	CreatedAt time.Time `json:"created_at"`
}
