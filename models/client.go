package models

import (
	"time"

	"github.com/google/uuid"
)

// Client represents a person the operation communicates with about a case
type Client struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	FullName        string    `json:"full_name"`
	Phone           string    `json:"phone"`
	Email           *string   `json:"email,omitempty"`
	CPFOrIdentifier *string   `json:"cpf_or_identifier,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
