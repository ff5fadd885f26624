package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExtractedData represents the structured payload the analysis action
// pulls out of a petition or contract document
type ExtractedData map[string]interface{}

// Value implements driver.Valuer for JSONB
func (e ExtractedData) Value() (driver.Value, error) {
	return json.Marshal(e)
}

// Scan implements sql.Scanner for JSONB
func (e *ExtractedData) Scan(value interface{}) error {
	if value == nil {
		*e = make(ExtractedData)
		return nil
	}

	// Handle different types that pgx might return for JSONB
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*e = make(ExtractedData)
		return nil
	}

	if len(bytes) == 0 {
		*e = make(ExtractedData)
		return nil
	}

	return json.Unmarshal(bytes, e)
}

// Document represents a file attached to a case, together with the
// text and structured data extracted from it
type Document struct {
	ID            uuid.UUID     `json:"id"`
	CaseID        uuid.UUID     `json:"case_id"`
	UserID        uuid.UUID     `json:"user_id"`
	DocType       string        `json:"doc_type"`
	FileURL       *string       `json:"file_url,omitempty"`
	ExtractedText *string       `json:"extracted_text,omitempty"`
	ExtractedJSON ExtractedData `json:"extracted_json,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
