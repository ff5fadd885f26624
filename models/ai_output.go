package models

import (
	"time"

	"github.com/google/uuid"
)

// ScamRisk represents the model's assessment of how scam-like a message reads
type ScamRisk string

const (
	ScamRiskLow    ScamRisk = "baixo"
	ScamRiskMedium ScamRisk = "médio"
	ScamRiskHigh   ScamRisk = "alto"
)

// AiOutput represents the stored result of a generation or analysis
// action. Rows are insert-only and never mutated after creation.
type AiOutput struct {
	ID         uuid.UUID `json:"id"`
	CaseID     uuid.UUID `json:"case_id"`
	OutputType string    `json:"output_type"`
	Content    string    `json:"content"`
	Confidence int       `json:"confidence"` // 0-10
	ScamRisk   ScamRisk  `json:"scam_risk"`
	Rationale  string    `json:"rationale"`
	CreatedAt  time.Time `json:"created_at"`
}
