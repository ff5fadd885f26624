package repository

import (
	"context"

	"github.com/consultoriamelchior-max/nexus-processual/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AiOutputRepository handles database operations for AI outputs
type AiOutputRepository struct {
	db *pgxpool.Pool
}

// NewAiOutputRepository creates a new AI output repository
func NewAiOutputRepository(db *pgxpool.Pool) *AiOutputRepository {
	return &AiOutputRepository{db: db}
}

// Create inserts a new AI output row. Rows are never updated afterwards.
func (r *AiOutputRepository) Create(ctx context.Context, out *models.AiOutput) error {
	query := `
		INSERT INTO ai_outputs (
			case_id, output_type, content, confidence, scam_risk, rationale
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		out.CaseID,
		out.OutputType,
		out.Content,
		out.Confidence,
		out.ScamRisk,
		out.Rationale,
	).Scan(&out.ID, &out.CreatedAt)

	return err
}

// ListByCaseID retrieves all AI outputs for a case, newest first
func (r *AiOutputRepository) ListByCaseID(ctx context.Context, caseID uuid.UUID) ([]*models.AiOutput, error) {
	query := `
		SELECT id, case_id, output_type, content, confidence, scam_risk, rationale, created_at
		FROM ai_outputs
		WHERE case_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outputs []*models.AiOutput
	for rows.Next() {
		out := &models.AiOutput{}
		err := rows.Scan(
			&out.ID,
			&out.CaseID,
			&out.OutputType,
			&out.Content,
			&out.Confidence,
			&out.ScamRisk,
			&out.Rationale,
			&out.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}

	return outputs, rows.Err()
}
