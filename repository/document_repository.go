package repository

import (
	"context"

	"github.com/consultoriamelchior-max/nexus-processual/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository handles database operations for documents
type DocumentRepository struct {
	db *pgxpool.Pool
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (
			case_id, user_id, doc_type, file_url, extracted_text, extracted_json
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		doc.CaseID,
		doc.UserID,
		doc.DocType,
		doc.FileURL,
		doc.ExtractedText,
		doc.ExtractedJSON,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)

	return err
}

// GetByID retrieves a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	doc := &models.Document{}
	query := `
		SELECT id, case_id, user_id, doc_type, file_url, extracted_text, extracted_json,
			created_at, updated_at
		FROM documents
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID,
		&doc.CaseID,
		&doc.UserID,
		&doc.DocType,
		&doc.FileURL,
		&doc.ExtractedText,
		&doc.ExtractedJSON,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListByCaseID retrieves all documents for a case
func (r *DocumentRepository) ListByCaseID(ctx context.Context, caseID uuid.UUID) ([]*models.Document, error) {
	query := `
		SELECT id, case_id, user_id, doc_type, file_url, extracted_text, extracted_json,
			created_at, updated_at
		FROM documents
		WHERE case_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		err := rows.Scan(
			&doc.ID,
			&doc.CaseID,
			&doc.UserID,
			&doc.DocType,
			&doc.FileURL,
			&doc.ExtractedText,
			&doc.ExtractedJSON,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}

	return documents, rows.Err()
}

// UpdateExtraction updates only the extracted text and structured payload
func (r *DocumentRepository) UpdateExtraction(ctx context.Context, id uuid.UUID, extractedText string, extractedJSON models.ExtractedData) error {
	query := `
		UPDATE documents SET
			extracted_text = $2,
			extracted_json = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, extractedText, extractedJSON)
	return err
}

// Delete deletes a document record
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM documents WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
