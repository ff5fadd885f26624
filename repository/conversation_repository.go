package repository

import (
	"context"

	"github.com/consultoriamelchior-max/nexus-processual/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConversationRepository handles database operations for conversations
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Create creates a new conversation
func (r *ConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	query := `
		INSERT INTO conversations (case_id, user_id, channel)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		conv.CaseID,
		conv.UserID,
		conv.Channel,
	).Scan(&conv.ID, &conv.CreatedAt)

	return err
}

// GetByID retrieves a conversation by ID
func (r *ConversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	conv := &models.Conversation{}
	query := `
		SELECT id, case_id, user_id, channel, created_at
		FROM conversations
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&conv.ID,
		&conv.CaseID,
		&conv.UserID,
		&conv.Channel,
		&conv.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return conv, nil
}

// ListByCaseID retrieves all conversations for a case
func (r *ConversationRepository) ListByCaseID(ctx context.Context, caseID uuid.UUID) ([]*models.Conversation, error) {
	query := `
		SELECT id, case_id, user_id, channel, created_at
		FROM conversations
		WHERE case_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		conv := &models.Conversation{}
		err := rows.Scan(
			&conv.ID,
			&conv.CaseID,
			&conv.UserID,
			&conv.Channel,
			&conv.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		conversations = append(conversations, conv)
	}

	return conversations, rows.Err()
}
