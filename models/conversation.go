package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageSender identifies who wrote a message
type MessageSender string

const (
	SenderClient   MessageSender = "client"
	SenderOperator MessageSender = "operator"
)

// Conversation represents one communication channel for a case,
// owned by a single operator. A case may have several.
type Conversation struct {
	ID        uuid.UUID `json:"id"`
	CaseID    uuid.UUID `json:"case_id"`
	UserID    uuid.UUID `json:"user_id"`
	Channel   string    `json:"channel"`
	CreatedAt time.Time `json:"created_at"`
}

// Message represents a single message within a conversation.
// Messages are causally ordered by CreatedAt ascending.
type Message struct {
	ID             uuid.UUID     `json:"id"`
	ConversationID uuid.UUID     `json:"conversation_id"`
	Sender         MessageSender `json:"sender"`
	Text           string        `json:"text"`
	CreatedAt      time.Time     `json:"created_at"`
}

// HistoryMessage is a message joined with its conversation, used when
// gathering an operator's prior transcripts across other cases.
type HistoryMessage struct {
	ConversationID uuid.UUID     `json:"conversation_id"`
	Sender         MessageSender `json:"sender"`
	Text           string        `json:"text"`
	CreatedAt      time.Time     `json:"created_at"`
}
