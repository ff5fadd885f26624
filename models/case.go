package models

import (
	"time"

	"github.com/google/uuid"
)

// CaseStatus represents the lifecycle status of a case
type CaseStatus string

const (
	CaseStatusActive   CaseStatus = "active"
	CaseStatusPaused   CaseStatus = "paused"
	CaseStatusClosed   CaseStatus = "closed"
	CaseStatusArchived CaseStatus = "archived"
)

// Case represents a tracked legal proceeding
type Case struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	ClientID           uuid.UUID  `json:"client_id"`
	Status             CaseStatus `json:"status"`
	CaseTitle          string     `json:"case_title"`
	Defendant          string     `json:"defendant"`
	CaseType           string     `json:"case_type"`
	Court              string     `json:"court"`
	ProcessNumber      string     `json:"process_number"`
	DistributionDate   *time.Time `json:"distribution_date,omitempty"`
	CaseValue          *float64   `json:"case_value,omitempty"`
	PartnerLawFirmName string     `json:"partner_law_firm_name"`
	PartnerLawyerName  string     `json:"partner_lawyer_name"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
