package repository

import (
	"context"

	"github.com/consultoriamelchior-max/nexus-processual/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository handles database operations for messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a new message
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (conversation_id, sender, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		msg.ConversationID,
		msg.Sender,
		msg.Text,
	).Scan(&msg.ID, &msg.CreatedAt)

	return err
}

// ListByConversationID retrieves all messages of a conversation in causal order
func (r *MessageRepository) ListByConversationID(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error) {
	query := `
		SELECT id, conversation_id, sender, text, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		msg := &models.Message{}
		err := rows.Scan(
			&msg.ID,
			&msg.ConversationID,
			&msg.Sender,
			&msg.Text,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

// ListRecentByOwnerExcludingCase retrieves up to limit of the most recent
// messages across an operator's conversations on other cases, returned in
// created_at ascending order so transcripts read causally.
func (r *MessageRepository) ListRecentByOwnerExcludingCase(ctx context.Context, userID, caseID uuid.UUID, limit int) ([]models.HistoryMessage, error) {
	query := `
		SELECT conversation_id, sender, text, created_at
		FROM (
			SELECT m.conversation_id, m.sender, m.text, m.created_at
			FROM messages m
			JOIN conversations c ON c.id = m.conversation_id
			WHERE c.user_id = $1 AND c.case_id <> $2
			ORDER BY m.created_at DESC
			LIMIT $3
		) recent
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, userID, caseID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.HistoryMessage
	for rows.Next() {
		var msg models.HistoryMessage
		err := rows.Scan(
			&msg.ConversationID,
			&msg.Sender,
			&msg.Text,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
